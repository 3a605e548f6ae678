package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/services"
)

// AnalyticsHandler serves both the alumni analytics and the dashboard
// distributions.
type AnalyticsHandler struct {
	svc services.AnalyticsService
}

func NewAnalyticsHandler(svc services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// analyticsQuery reads the shared filters. graduationYear and department
// take comma-separated lists; unparseable years are dropped.
func analyticsQuery(c *gin.Context) services.AnalyticsQuery {
	q := services.AnalyticsQuery{
		CollegeID:   c.Query("collegeId"),
		Departments: csvQuery(c, "department"),
	}
	for _, y := range csvQuery(c, "graduationYear") {
		if n, err := strconv.Atoi(y); err == nil {
			q.GraduationYears = append(q.GraduationYears, n)
		}
	}
	return q
}

func (h *AnalyticsHandler) serve(c *gin.Context,
	load func(services.Caller, services.AnalyticsQuery) (any, error)) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	out, err := load(caller, analyticsQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHandler) Countries(c *gin.Context) {
	h.serve(c, func(caller services.Caller, q services.AnalyticsQuery) (any, error) {
		return h.svc.Countries(c.Request.Context(), caller, q)
	})
}

func (h *AnalyticsHandler) Departments(c *gin.Context) {
	h.serve(c, func(caller services.Caller, q services.AnalyticsQuery) (any, error) {
		return h.svc.Departments(c.Request.Context(), caller, q)
	})
}

func (h *AnalyticsHandler) Employers(c *gin.Context) {
	h.serve(c, func(caller services.Caller, q services.AnalyticsQuery) (any, error) {
		return h.svc.Employers(c.Request.Context(), caller, q)
	})
}

func (h *AnalyticsHandler) Skills(c *gin.Context) {
	h.serve(c, func(caller services.Caller, q services.AnalyticsQuery) (any, error) {
		return h.svc.Skills(c.Request.Context(), caller, q)
	})
}

func (h *AnalyticsHandler) Designations(c *gin.Context) {
	h.serve(c, func(caller services.Caller, q services.AnalyticsQuery) (any, error) {
		return h.svc.Designations(c.Request.Context(), caller, q)
	})
}

func (h *AnalyticsHandler) Summary(c *gin.Context) {
	h.serve(c, func(caller services.Caller, q services.AnalyticsQuery) (any, error) {
		return h.svc.Summary(c.Request.Context(), caller, q)
	})
}

func (h *AnalyticsHandler) BatchTrends(c *gin.Context) {
	h.serve(c, func(caller services.Caller, q services.AnalyticsQuery) (any, error) {
		return h.svc.BatchTrends(c.Request.Context(), caller, q)
	})
}

func (h *AnalyticsHandler) SkillsDistribution(c *gin.Context) {
	h.serve(c, func(caller services.Caller, q services.AnalyticsQuery) (any, error) {
		return h.svc.SkillsDistribution(c.Request.Context(), caller, q)
	})
}

func (h *AnalyticsHandler) ExperienceDistribution(c *gin.Context) {
	h.serve(c, func(caller services.Caller, q services.AnalyticsQuery) (any, error) {
		return h.svc.ExperienceDistribution(c.Request.Context(), caller, q)
	})
}

func (h *AnalyticsHandler) CompanyDistribution(c *gin.Context) {
	h.serve(c, func(caller services.Caller, q services.AnalyticsQuery) (any, error) {
		return h.svc.CompanyDistribution(c.Request.Context(), caller, q)
	})
}
