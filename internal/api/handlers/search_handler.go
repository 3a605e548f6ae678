package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/services"
	"github.com/collegeconnect/backend/internal/utils"
)

// SearchHandler serves the natural-language directory search.
type SearchHandler struct {
	svc services.SearchService
}

func NewSearchHandler(svc services.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

func (h *SearchHandler) Analyze(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var body struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SearchHandler.Analyze", "invalid request body", err))
		return
	}

	res, err := h.svc.AnalyzeAndSearch(c.Request.Context(), caller, body.Query, utils.ParsePageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
