package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/services"
	"github.com/collegeconnect/backend/internal/utils"
)

// SuperHandler serves the super-admin console; routes run after
// RequireSuperAdmin.
type SuperHandler struct {
	colleges services.CollegeService
}

func NewSuperHandler(colleges services.CollegeService) *SuperHandler {
	return &SuperHandler{colleges: colleges}
}

func (h *SuperHandler) ListColleges(c *gin.Context) {
	out, err := h.colleges.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *SuperHandler) CreateCollege(c *gin.Context) {
	var body services.CreateCollegeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SuperHandler.CreateCollege", "invalid request body", err))
		return
	}

	college, err := h.colleges.Create(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, college)
}

func (h *SuperHandler) CreateCollegeAdmin(c *gin.Context) {
	var body services.CreateAdminRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SuperHandler.CreateCollegeAdmin", "invalid request body", err))
		return
	}

	admin, err := h.colleges.CreateAdmin(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, admin)
}
