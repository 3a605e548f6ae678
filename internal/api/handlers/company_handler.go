package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/services"
	"github.com/collegeconnect/backend/internal/utils"
)

type CompanyHandler struct {
	catalog services.CatalogService
}

func NewCompanyHandler(catalog services.CatalogService) *CompanyHandler {
	return &CompanyHandler{catalog: catalog}
}

// List returns the catalog; with ?skill= it narrows to companies employing
// people who have that skill, scoped to the caller's college.
func (h *CompanyHandler) List(c *gin.Context) {
	if skill := c.Query("skill"); skill != "" {
		h.EmployingSkill(c)
		return
	}

	out, err := h.catalog.ListCompanies(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var body services.CompanyInput
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CompanyHandler.Create", "invalid request body", err))
		return
	}

	company, err := h.catalog.CreateCompany(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var body services.CompanyInput
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CompanyHandler.Update", "invalid request body", err))
		return
	}

	company, err := h.catalog.UpdateCompany(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteCompany(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Company deleted."})
}

func (h *CompanyHandler) Search(c *gin.Context) {
	q := c.Query("query")
	if q == "" {
		q = c.Query("q")
	}
	out, err := h.catalog.SearchCompanies(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// EmployingSkill lists companies where people with a given skill work.
func (h *CompanyHandler) EmployingSkill(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	out, err := h.catalog.CompaniesEmployingSkill(c.Request.Context(),
		caller.Role, caller.CollegeID, c.Query("skill"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
