package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/services"
	"github.com/collegeconnect/backend/internal/utils"
)

type SupportHandler struct {
	svc services.SupportService
}

func NewSupportHandler(svc services.SupportService) *SupportHandler {
	return &SupportHandler{svc: svc}
}

func (h *SupportHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var body services.CreateTicketRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SupportHandler.Create", "invalid request body", err))
		return
	}

	ticket, err := h.svc.Create(c.Request.Context(), caller, body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *SupportHandler) List(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	tickets, err := h.svc.List(c.Request.Context(), caller, c.Query("status"), c.Query("type"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *SupportHandler) Get(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	ticket, err := h.svc.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *SupportHandler) UpdateStatus(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SupportHandler.UpdateStatus", "invalid request body", err))
		return
	}

	ticket, err := h.svc.UpdateStatus(c.Request.Context(), caller, c.Param("id"), body.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *SupportHandler) ListComments(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	comments, err := h.svc.ListComments(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *SupportHandler) AddComment(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SupportHandler.AddComment", "invalid request body", err))
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), caller, c.Param("id"), body.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
