package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/services"
	"github.com/collegeconnect/backend/internal/utils"
)

type SkillHandler struct {
	catalog services.CatalogService
}

func NewSkillHandler(catalog services.CatalogService) *SkillHandler {
	return &SkillHandler{catalog: catalog}
}

func (h *SkillHandler) List(c *gin.Context) {
	out, err := h.catalog.ListSkills(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *SkillHandler) Create(c *gin.Context) {
	var body services.SkillInput
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SkillHandler.Create", "invalid request body", err))
		return
	}

	skill, err := h.catalog.CreateSkill(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, skill)
}

func (h *SkillHandler) Update(c *gin.Context) {
	var body services.SkillInput
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SkillHandler.Update", "invalid request body", err))
		return
	}

	skill, err := h.catalog.UpdateSkill(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}

func (h *SkillHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteSkill(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Skill deleted."})
}

func (h *SkillHandler) Search(c *gin.Context) {
	q := c.Query("query")
	if q == "" {
		q = c.Query("q")
	}
	out, err := h.catalog.SearchSkills(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
