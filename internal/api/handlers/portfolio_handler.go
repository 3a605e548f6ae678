package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/services"
	"github.com/collegeconnect/backend/internal/utils"
)

type PortfolioHandler struct {
	svc services.PortfolioService
}

func NewPortfolioHandler(svc services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{svc: svc}
}

func (h *PortfolioHandler) List(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	out, err := h.svc.List(c.Request.Context(), caller.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PortfolioHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var body services.PortfolioInput
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "PortfolioHandler.Create", "invalid request body", err))
		return
	}

	item, err := h.svc.Create(c.Request.Context(), caller.UserID, body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *PortfolioHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var body services.PortfolioInput
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "PortfolioHandler.Update", "invalid request body", err))
		return
	}

	item, err := h.svc.Update(c.Request.Context(), caller.UserID, c.Param("id"), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), caller.UserID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Portfolio item deleted."})
}
