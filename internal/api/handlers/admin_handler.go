package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/services"
	"github.com/collegeconnect/backend/internal/utils"
)

// AdminHandler serves the college-admin console. Every route behind it runs
// after RequireCollegeAdmin, so the caller's college id is always set.
type AdminHandler struct {
	svc services.AdminService
}

func NewAdminHandler(svc services.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) collegeID(c *gin.Context) (string, bool) {
	caller, ok := requireCaller(c)
	if !ok {
		return "", false
	}
	if caller.CollegeID == nil {
		writeError(c, utils.E(utils.CodeForbidden, "AdminHandler", "Access denied.", nil))
		return "", false
	}
	return *caller.CollegeID, true
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	collegeID, ok := h.collegeID(c)
	if !ok {
		return
	}

	res, err := h.svc.ListUsers(c.Request.Context(), collegeID,
		c.Query("search"), c.Query("role"), utils.ParsePageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ParseCSV returns the parsed roster rows without importing them, so the
// admin can review before syncing.
func (h *AdminHandler) ParseCSV(c *gin.Context) {
	if _, ok := h.collegeID(c); !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdminHandler.ParseCSV", "missing multipart field 'file'", err))
		return
	}
	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "AdminHandler.ParseCSV", "failed to open upload", err))
		return
	}
	defer file.Close()

	rows, err := h.svc.ParseRosterCSV(file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (h *AdminHandler) SyncUsers(c *gin.Context) {
	collegeID, ok := h.collegeID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdminHandler.SyncUsers", "missing multipart field 'file'", err))
		return
	}
	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "AdminHandler.SyncUsers", "failed to open upload", err))
		return
	}
	defer file.Close()

	rows, err := h.svc.ParseRosterCSV(file)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := h.svc.ImportRoster(c.Request.Context(), collegeID, rows)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) BulkUpdateRole(c *gin.Context) {
	collegeID, ok := h.collegeID(c)
	if !ok {
		return
	}

	var body struct {
		UserIDs []string `json:"userIds"`
		Role    string   `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdminHandler.BulkUpdateRole", "invalid request body", err))
		return
	}

	n, err := h.svc.BulkUpdateRole(c.Request.Context(), collegeID, body.UserIDs, body.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
