package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/collegeconnect/backend/internal/models"
)

// AnalyticsFilters narrows alumni aggregates. Empty fields mean no filter;
// the list fields match any of their values.
type AnalyticsFilters struct {
	CollegeID       *string
	GraduationYears []int
	Departments     []string
}

// NameValue is one bucket of a grouped aggregate.
type NameValue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// YearCount is one bucket of a per-year aggregate.
type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// SkillUserCount is one row of the dashboard skills distribution.
type SkillUserCount struct {
	Name      string `json:"name"`
	UserCount int64  `json:"userCount"`
}

// YearExperienceCount is one row of the dashboard experience distribution.
type YearExperienceCount struct {
	Year            int   `json:"year"`
	ExperienceCount int64 `json:"experienceCount"`
}

// CompanyEmployeeCount is one row of the dashboard company distribution.
type CompanyEmployeeCount struct {
	Name          string `json:"name"`
	EmployeeCount int64  `json:"employeeCount"`
}

// AnalyticsSummary is the headline counter block for a college (or the whole
// platform when unscoped). GlobalReach counts distinct alumni countries.
type AnalyticsSummary struct {
	Alumni      int64 `json:"totalAlumni"`
	Students    int64 `json:"totalStudents"`
	Faculty     int64 `json:"totalFaculty"`
	GlobalReach int64 `json:"globalReach"`
	Companies   int64 `json:"corporateFootprint"`
	Skills      int64 `json:"skillVelocity"`
}

type AnalyticsRepository interface {
	CountriesDistribution(ctx context.Context, f AnalyticsFilters, limit int) ([]NameValue, error)
	DepartmentsDistribution(ctx context.Context, f AnalyticsFilters) ([]NameValue, error)
	TopEmployers(ctx context.Context, f AnalyticsFilters, limit int) ([]NameValue, error)
	TopSkills(ctx context.Context, f AnalyticsFilters, limit int) ([]NameValue, error)
	TopDesignations(ctx context.Context, f AnalyticsFilters, limit int) ([]NameValue, error)
	Summary(ctx context.Context, collegeID *string) (*AnalyticsSummary, error)
	// BatchTrends counts alumni per graduation year, ascending.
	BatchTrends(ctx context.Context, collegeID *string) ([]YearCount, error)

	SkillsDistribution(ctx context.Context, collegeID *string, limit int) ([]SkillUserCount, error)
	// ExperienceDistribution counts experiences per start year, ascending.
	ExperienceDistribution(ctx context.Context, collegeID *string) ([]YearExperienceCount, error)
	CompanyDistribution(ctx context.Context, collegeID *string, limit int) ([]CompanyEmployeeCount, error)
}

type analyticsRepo struct {
	db *gorm.DB
}

func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepo{db: db}
}

// yearExpr extracts the calendar year of a date column in the connected
// dialect's SQL.
func (r *analyticsRepo) yearExpr(col string) string {
	if r.db.Dialector.Name() == "sqlite" {
		return "CAST(strftime('%Y', " + col + ") AS INTEGER)"
	}
	return "CAST(EXTRACT(YEAR FROM " + col + ") AS INTEGER)"
}

// alumniBase joins users to profiles, keeps alumni only, and applies filters.
func (r *analyticsRepo) alumniBase(ctx context.Context, f AnalyticsFilters) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("users.role = ?", models.RoleAlumni)
	if f.CollegeID != nil {
		q = q.Where("users.college_id = ?", *f.CollegeID)
	}
	if len(f.GraduationYears) > 0 {
		q = q.Where("profiles.graduation_year IN ?", f.GraduationYears)
	}
	if len(f.Departments) > 0 {
		q = q.Where("profiles.department IN ?", f.Departments)
	}
	return q
}

func (r *analyticsRepo) CountriesDistribution(ctx context.Context, f AnalyticsFilters, limit int) ([]NameValue, error) {
	var out []NameValue
	err := r.alumniBase(ctx, f).
		Select("profiles.country AS name, COUNT(*) AS value").
		Where("profiles.country <> ''").
		Group("profiles.country").
		Order("value DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *analyticsRepo) DepartmentsDistribution(ctx context.Context, f AnalyticsFilters) ([]NameValue, error) {
	var out []NameValue
	err := r.alumniBase(ctx, f).
		Select("profiles.department AS name, COUNT(*) AS value").
		Where("profiles.department <> ''").
		Group("profiles.department").
		Order("value DESC").
		Scan(&out).Error
	return out, err
}

func (r *analyticsRepo) TopEmployers(ctx context.Context, f AnalyticsFilters, limit int) ([]NameValue, error) {
	var out []NameValue
	err := r.alumniBase(ctx, f).
		Joins("JOIN experiences ON experiences.user_id = users.id").
		Joins("JOIN companies ON companies.id = experiences.company_id").
		Where("experiences.end_date IS NULL").
		Select("companies.name AS name, COUNT(DISTINCT users.id) AS value").
		Group("companies.name").
		Order("value DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *analyticsRepo) TopSkills(ctx context.Context, f AnalyticsFilters, limit int) ([]NameValue, error) {
	var out []NameValue
	err := r.alumniBase(ctx, f).
		Joins("JOIN user_skills ON user_skills.user_id = users.id").
		Joins("JOIN skills ON skills.id = user_skills.skill_id").
		Select("skills.name AS name, COUNT(DISTINCT users.id) AS value").
		Group("skills.name").
		Order("value DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *analyticsRepo) TopDesignations(ctx context.Context, f AnalyticsFilters, limit int) ([]NameValue, error) {
	var out []NameValue
	err := r.alumniBase(ctx, f).
		Joins("JOIN experiences ON experiences.user_id = users.id").
		Where("experiences.end_date IS NULL AND experiences.title <> ''").
		Select("experiences.title AS name, COUNT(DISTINCT users.id) AS value").
		Group("experiences.title").
		Order("value DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *analyticsRepo) Summary(ctx context.Context, collegeID *string) (*AnalyticsSummary, error) {
	var s AnalyticsSummary

	countRole := func(role models.Role, dst *int64) error {
		q := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role)
		if collegeID != nil {
			q = q.Where("college_id = ?", *collegeID)
		}
		return q.Count(dst).Error
	}
	if err := countRole(models.RoleAlumni, &s.Alumni); err != nil {
		return nil, err
	}
	if err := countRole(models.RoleStudent, &s.Students); err != nil {
		return nil, err
	}
	if err := countRole(models.RoleFaculty, &s.Faculty); err != nil {
		return nil, err
	}

	gq := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("users.role = ? AND profiles.country <> ''", models.RoleAlumni)
	if collegeID != nil {
		gq = gq.Where("users.college_id = ?", *collegeID)
	}
	if err := gq.Distinct("profiles.country").Count(&s.GlobalReach).Error; err != nil {
		return nil, err
	}

	// companies are counted through the college's experiences so the number
	// stays tenant-relevant; the skills catalog is global
	cq := r.db.WithContext(ctx).Model(&models.Company{})
	if collegeID != nil {
		cq = cq.
			Joins("JOIN experiences ON experiences.company_id = companies.id").
			Joins("JOIN users ON users.id = experiences.user_id").
			Where("users.college_id = ?", *collegeID).
			Distinct("companies.id")
	}
	if err := cq.Count(&s.Companies).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Skill{}).Count(&s.Skills).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *analyticsRepo) BatchTrends(ctx context.Context, collegeID *string) ([]YearCount, error) {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("users.role = ? AND profiles.graduation_year IS NOT NULL", models.RoleAlumni)
	if collegeID != nil {
		q = q.Where("users.college_id = ?", *collegeID)
	}

	var out []YearCount
	err := q.Select("profiles.graduation_year AS year, COUNT(*) AS count").
		Group("profiles.graduation_year").
		Order("year ASC").
		Scan(&out).Error
	return out, err
}

func (r *analyticsRepo) SkillsDistribution(ctx context.Context, collegeID *string, limit int) ([]SkillUserCount, error) {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN user_skills ON user_skills.user_id = users.id").
		Joins("JOIN skills ON skills.id = user_skills.skill_id")
	if collegeID != nil {
		q = q.Where("users.college_id = ?", *collegeID)
	}

	var out []SkillUserCount
	err := q.Select("skills.name AS name, COUNT(DISTINCT users.id) AS user_count").
		Group("skills.name").
		Order("user_count DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *analyticsRepo) ExperienceDistribution(ctx context.Context, collegeID *string) ([]YearExperienceCount, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Experience{}).
		Joins("JOIN users ON users.id = experiences.user_id").
		Where("users.role = ?", models.RoleAlumni)
	if collegeID != nil {
		q = q.Where("users.college_id = ?", *collegeID)
	}

	yearExpr := r.yearExpr("experiences.start_date")
	var out []YearExperienceCount
	err := q.Select(yearExpr + " AS year, COUNT(*) AS experience_count").
		Group(yearExpr).
		Order("year ASC").
		Scan(&out).Error
	return out, err
}

func (r *analyticsRepo) CompanyDistribution(ctx context.Context, collegeID *string, limit int) ([]CompanyEmployeeCount, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Experience{}).
		Joins("JOIN companies ON companies.id = experiences.company_id").
		Joins("JOIN users ON users.id = experiences.user_id")
	if collegeID != nil {
		q = q.Where("users.college_id = ?", *collegeID)
	}

	var out []CompanyEmployeeCount
	err := q.Select("companies.name AS name, COUNT(DISTINCT experiences.user_id) AS employee_count").
		Group("companies.name").
		Order("employee_count DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
