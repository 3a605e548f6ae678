package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/services"
	"github.com/collegeconnect/backend/internal/utils"
)

type UserHandler struct {
	users   services.UserService
	resumes services.ResumeService
}

func NewUserHandler(users services.UserService, resumes services.ResumeService) *UserHandler {
	return &UserHandler{users: users, resumes: resumes}
}

// firstQuery returns the first non-empty value among aliased query params.
func firstQuery(c *gin.Context, names ...string) string {
	for _, n := range names {
		if v := c.Query(n); v != "" {
			return v
		}
	}
	return ""
}

// csvQuery splits a comma-separated query parameter (any of its aliases) into
// trimmed terms.
func csvQuery(c *gin.Context, names ...string) []string {
	raw := firstQuery(c, names...)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (h *UserHandler) Search(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	page := utils.ParsePageParams(c)
	p := pgrepo.SearchParams{
		NameLike:        firstQuery(c, "search", "name"),
		Skills:          csvQuery(c, "skill", "skills"),
		Companies:       csvQuery(c, "company", "companies"),
		GraduationYears: csvQuery(c, "graduationYear", "graduationYears"),
		Departments:     csvQuery(c, "department", "departments"),
		Sections:        csvQuery(c, "section", "sections"),
		Offset:          page.Offset(),
		Limit:           page.Limit,
	}
	if role := firstQuery(c, "userType", "role"); models.ValidRole(role) {
		r := models.Role(role)
		p.Role = &r
	}

	res, err := h.users.Search(c.Request.Context(), caller.Role, caller.CollegeID, p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) Me(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	user, err := h.users.GetMe(c.Request.Context(), caller.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetByUsername(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	user, err := h.users.GetByUsername(c.Request.Context(), caller.Role, caller.CollegeID, c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var body services.ProfileUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "UserHandler.UpdateProfile", "invalid request body", err))
		return
	}

	profile, err := h.users.UpdateProfile(c.Request.Context(), caller.UserID, body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) ReplaceCareer(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var body services.CareerUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "UserHandler.ReplaceCareer", "invalid request body", err))
		return
	}

	user, err := h.users.ReplaceCareer(c.Request.Context(), caller.UserID, body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UploadResume(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	data, err := readPDFUpload(c, "file")
	if err != nil {
		writeError(c, err)
		return
	}

	url, err := h.users.UploadResume(c.Request.Context(), caller.UserID, "application/pdf", data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumeUrl": url})
}

// ParseResume stores the uploaded resume like UploadResume does, then returns
// the structured data extracted from it.
func (h *UserHandler) ParseResume(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	data, err := readPDFUpload(c, "file")
	if err != nil {
		writeError(c, err)
		return
	}

	url, err := h.users.UploadResume(c.Request.Context(), caller.UserID, "application/pdf", data)
	if err != nil {
		writeError(c, err)
		return
	}

	parsed, err := h.resumes.Parse(c.Request.Context(), data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumeUrl": url, "parsed": parsed})
}
