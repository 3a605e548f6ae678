package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/collegeconnect/backend/internal/cache"
	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

// AnalyticsQuery is the caller-facing filter set. College resolution happens
// in the service: non-super callers are pinned to their own college,
// super admins may pass any college id or none. The list fields come from
// comma-separated query values and match any of their entries.
type AnalyticsQuery struct {
	CollegeID       string
	GraduationYears []int
	Departments     []string
}

type AnalyticsService interface {
	Countries(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.NameValue, error)
	Departments(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.NameValue, error)
	Employers(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.NameValue, error)
	Skills(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.NameValue, error)
	Designations(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.NameValue, error)
	Summary(ctx context.Context, caller Caller, q AnalyticsQuery) (*pgrepo.AnalyticsSummary, error)
	BatchTrends(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.YearCount, error)

	SkillsDistribution(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.SkillUserCount, error)
	ExperienceDistribution(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.YearExperienceCount, error)
	CompanyDistribution(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.CompanyEmployeeCount, error)
}

type analyticsService struct {
	analytics pgrepo.AnalyticsRepository
	cache     cache.Cache
	ttl       time.Duration
}

const topN = 10

func NewAnalyticsService(analytics pgrepo.AnalyticsRepository, c cache.Cache) AnalyticsService {
	return &analyticsService{analytics: analytics, cache: c, ttl: 10 * time.Minute}
}

// resolve pins non-super callers to their own college.
func (s *analyticsService) resolve(caller Caller, q AnalyticsQuery) (*string, pgrepo.AnalyticsFilters) {
	var collegeID *string
	if caller.Role == models.RoleSuperAdmin {
		if q.CollegeID != "" {
			collegeID = &q.CollegeID
		}
	} else {
		collegeID = caller.CollegeID
	}
	return collegeID, pgrepo.AnalyticsFilters{
		CollegeID:       collegeID,
		GraduationYears: q.GraduationYears,
		Departments:     q.Departments,
	}
}

func (s *analyticsService) cacheKey(metric string, collegeID *string, q AnalyticsQuery) string {
	college := "all"
	if collegeID != nil {
		college = *collegeID
	}
	years := make([]string, len(q.GraduationYears))
	for i, y := range q.GraduationYears {
		years[i] = strconv.Itoa(y)
	}
	depts := strings.ToLower(strings.Join(q.Departments, ","))
	return cache.Key("analytics", metric, college, strings.Join(years, ","), depts)
}

// cached runs load through the cache when one is configured. Cache failures
// only log; the database answer still goes out.
func cached[T any](ctx context.Context, s *analyticsService, key string, load func() (T, error)) (T, error) {
	if s.cache != nil {
		var hit T
		ok, err := s.cache.GetJSON(ctx, key, &hit)
		if err != nil {
			logrus.WithError(err).WithField("key", key).Warn("analytics cache read failed")
		}
		if ok {
			return hit, nil
		}
	}

	out, err := load()
	if err != nil {
		return out, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, out, s.ttl); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("analytics cache write failed")
		}
	}
	return out, nil
}

func distribution[T any](ctx context.Context, s *analyticsService, caller Caller, q AnalyticsQuery, metric string,
	load func(context.Context, pgrepo.AnalyticsFilters) ([]T, error)) ([]T, error) {

	collegeID, f := s.resolve(caller, q)
	out, err := cached(ctx, s, s.cacheKey(metric, collegeID, q), func() ([]T, error) {
		return load(ctx, f)
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, "AnalyticsService."+metric, "failed to load "+metric, err)
	}
	return out, nil
}

func (s *analyticsService) Countries(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.NameValue, error) {
	return distribution(ctx, s, caller, q, "countries", func(ctx context.Context, f pgrepo.AnalyticsFilters) ([]pgrepo.NameValue, error) {
		return s.analytics.CountriesDistribution(ctx, f, topN)
	})
}

func (s *analyticsService) Departments(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.NameValue, error) {
	return distribution(ctx, s, caller, q, "departments", s.analytics.DepartmentsDistribution)
}

func (s *analyticsService) Employers(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.NameValue, error) {
	return distribution(ctx, s, caller, q, "employers", func(ctx context.Context, f pgrepo.AnalyticsFilters) ([]pgrepo.NameValue, error) {
		return s.analytics.TopEmployers(ctx, f, topN)
	})
}

func (s *analyticsService) Skills(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.NameValue, error) {
	return distribution(ctx, s, caller, q, "skills", func(ctx context.Context, f pgrepo.AnalyticsFilters) ([]pgrepo.NameValue, error) {
		return s.analytics.TopSkills(ctx, f, topN)
	})
}

func (s *analyticsService) Designations(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.NameValue, error) {
	return distribution(ctx, s, caller, q, "designations", func(ctx context.Context, f pgrepo.AnalyticsFilters) ([]pgrepo.NameValue, error) {
		return s.analytics.TopDesignations(ctx, f, topN)
	})
}

func (s *analyticsService) Summary(ctx context.Context, caller Caller, q AnalyticsQuery) (*pgrepo.AnalyticsSummary, error) {
	const op = "AnalyticsService.Summary"

	collegeID, _ := s.resolve(caller, q)
	out, err := cached(ctx, s, s.cacheKey("summary", collegeID, q), func() (*pgrepo.AnalyticsSummary, error) {
		return s.analytics.Summary(ctx, collegeID)
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load summary", err)
	}
	return out, nil
}

func (s *analyticsService) BatchTrends(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.YearCount, error) {
	const op = "AnalyticsService.BatchTrends"

	collegeID, _ := s.resolve(caller, q)
	out, err := cached(ctx, s, s.cacheKey("batch-trends", collegeID, q), func() ([]pgrepo.YearCount, error) {
		return s.analytics.BatchTrends(ctx, collegeID)
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load batch trends", err)
	}
	return out, nil
}

func (s *analyticsService) SkillsDistribution(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.SkillUserCount, error) {
	return distribution(ctx, s, caller, q, "skills-distribution", func(ctx context.Context, f pgrepo.AnalyticsFilters) ([]pgrepo.SkillUserCount, error) {
		return s.analytics.SkillsDistribution(ctx, f.CollegeID, topN)
	})
}

func (s *analyticsService) ExperienceDistribution(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.YearExperienceCount, error) {
	return distribution(ctx, s, caller, q, "experience-distribution", func(ctx context.Context, f pgrepo.AnalyticsFilters) ([]pgrepo.YearExperienceCount, error) {
		return s.analytics.ExperienceDistribution(ctx, f.CollegeID)
	})
}

func (s *analyticsService) CompanyDistribution(ctx context.Context, caller Caller, q AnalyticsQuery) ([]pgrepo.CompanyEmployeeCount, error) {
	return distribution(ctx, s, caller, q, "company-distribution", func(ctx context.Context, f pgrepo.AnalyticsFilters) ([]pgrepo.CompanyEmployeeCount, error) {
		return s.analytics.CompanyDistribution(ctx, f.CollegeID, topN)
	})
}
