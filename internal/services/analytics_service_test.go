package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
)

// memCache is a map-backed Cache for tests.
type memCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newMemCache() *memCache { return &memCache{store: map[string][]byte{}} }

func (m *memCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (m *memCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = b
	return nil
}

func (m *memCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.store, k)
	}
	return nil
}

func seedAlum(t *testing.T, db *gorm.DB, collegeID *string, username, country, department string, gradYear int) *models.User {
	t.Helper()

	u := seedUser(t, db, collegeID, username, "pw", models.RoleAlumni)
	p := &models.Profile{
		UserID:         u.ID,
		FullName:       username,
		Country:        country,
		Department:     department,
		GraduationYear: &gradYear,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return u
}

func seedExperience(t *testing.T, db *gorm.DB, userID, company, title string, start time.Time) {
	t.Helper()

	userSvc := NewUserService(pgrepo.NewUserRepo(db), nil)
	if _, err := userSvc.ReplaceCareer(testCtx(), userID, CareerUpdate{
		Experiences: []CareerExperienceInput{
			{Company: company, Title: title, StartDate: start.Format("2006-01-02")},
		},
	}); err != nil {
		t.Fatalf("seed experience: %v", err)
	}
}

func TestAnalyticsDistributions(t *testing.T) {
	db := newTestDB(t)
	college := seedCollege(t, db, "Test Institute", "testinst")

	a := seedAlum(t, db, &college.ID, "alum1", "India", "CSE", 2020)
	b := seedAlum(t, db, &college.ID, "alum2", "India", "ECE", 2021)
	c := seedAlum(t, db, &college.ID, "alum3", "Germany", "CSE", 2021)

	now := time.Now()
	seedExperience(t, db, a.ID, "Google", "SWE", now.AddDate(-1, 0, 0))
	seedExperience(t, db, b.ID, "Google", "SRE", now.AddDate(-8, 0, 0))
	seedExperience(t, db, c.ID, "SAP", "Engineer", now.AddDate(-4, 0, 0))

	svc := NewAnalyticsService(pgrepo.NewAnalyticsRepo(db), nil)
	admin := Caller{UserID: "x", Role: models.RoleCollegeAdmin, CollegeID: &college.ID}

	countries, err := svc.Countries(testCtx(), admin, AnalyticsQuery{})
	if err != nil {
		t.Fatalf("countries: %v", err)
	}
	if len(countries) != 2 || countries[0].Name != "India" || countries[0].Value != 2 {
		t.Fatalf("countries = %+v", countries)
	}

	employers, err := svc.Employers(testCtx(), admin, AnalyticsQuery{})
	if err != nil {
		t.Fatalf("employers: %v", err)
	}
	if len(employers) != 2 || employers[0].Name != "Google" || employers[0].Value != 2 {
		t.Fatalf("employers = %+v", employers)
	}

	trends, err := svc.BatchTrends(testCtx(), admin, AnalyticsQuery{})
	if err != nil {
		t.Fatalf("batch trends: %v", err)
	}
	if len(trends) != 2 || trends[0].Year != 2020 || trends[1].Count != 2 {
		t.Fatalf("trends = %+v", trends)
	}
}

func TestAnalyticsFiltersTakeLists(t *testing.T) {
	db := newTestDB(t)
	college := seedCollege(t, db, "Test Institute", "testinst")

	seedAlum(t, db, &college.ID, "alum1", "India", "CSE", 2020)
	seedAlum(t, db, &college.ID, "alum2", "India", "ECE", 2021)
	seedAlum(t, db, &college.ID, "alum3", "Germany", "CSE", 2022)

	svc := NewAnalyticsService(pgrepo.NewAnalyticsRepo(db), nil)
	admin := Caller{UserID: "x", Role: models.RoleCollegeAdmin, CollegeID: &college.ID}

	count := func(q AnalyticsQuery) int64 {
		t.Helper()
		rows, err := svc.Countries(testCtx(), admin, q)
		if err != nil {
			t.Fatalf("countries: %v", err)
		}
		var total int64
		for _, row := range rows {
			total += row.Value
		}
		return total
	}

	if got := count(AnalyticsQuery{GraduationYears: []int{2021}}); got != 1 {
		t.Fatalf("one year matched %d alumni, want 1", got)
	}
	// a list matches any of its entries
	if got := count(AnalyticsQuery{GraduationYears: []int{2020, 2022}}); got != 2 {
		t.Fatalf("two years matched %d alumni, want 2", got)
	}
	if got := count(AnalyticsQuery{Departments: []string{"CSE", "ECE"}}); got != 3 {
		t.Fatalf("two departments matched %d alumni, want 3", got)
	}
	if got := count(AnalyticsQuery{GraduationYears: []int{2020, 2021}, Departments: []string{"CSE"}}); got != 1 {
		t.Fatalf("combined filter matched %d alumni, want 1", got)
	}
}

func TestExperienceDistributionByStartYear(t *testing.T) {
	db := newTestDB(t)
	college := seedCollege(t, db, "Test Institute", "testinst")

	fresh := seedAlum(t, db, &college.ID, "fresh", "India", "CSE", 2023)
	veteran := seedAlum(t, db, &college.ID, "veteran", "India", "CSE", 2015)

	now := time.Now()
	seedExperience(t, db, fresh.ID, "Acme", "SWE", now.AddDate(-1, 0, 0))
	seedExperience(t, db, veteran.ID, "Acme", "Staff", now.AddDate(-8, 0, 0))

	svc := NewAnalyticsService(pgrepo.NewAnalyticsRepo(db), nil)
	admin := Caller{UserID: "x", Role: models.RoleCollegeAdmin, CollegeID: &college.ID}

	rows, err := svc.ExperienceDistribution(testCtx(), admin, AnalyticsQuery{})
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %+v, want 2", rows)
	}
	// one experience per start year, ascending
	if rows[0].Year != now.AddDate(-8, 0, 0).Year() || rows[0].ExperienceCount != 1 {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
	if rows[1].Year != now.AddDate(-1, 0, 0).Year() || rows[1].ExperienceCount != 1 {
		t.Fatalf("rows[1] = %+v", rows[1])
	}
}

func TestAnalyticsSummaryCounts(t *testing.T) {
	db := newTestDB(t)
	college := seedCollege(t, db, "Test Institute", "testinst")
	seedAlum(t, db, &college.ID, "alum1", "India", "CSE", 2020)
	seedUser(t, db, &college.ID, "stu1", "pw", models.RoleStudent)
	seedUser(t, db, &college.ID, "stu2", "pw", models.RoleStudent)
	seedUser(t, db, &college.ID, "prof", "pw", models.RoleFaculty)

	svc := NewAnalyticsService(pgrepo.NewAnalyticsRepo(db), nil)
	admin := Caller{UserID: "x", Role: models.RoleCollegeAdmin, CollegeID: &college.ID}

	sum, err := svc.Summary(testCtx(), admin, AnalyticsQuery{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Alumni != 1 || sum.Students != 2 || sum.Faculty != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.GlobalReach != 1 {
		t.Fatalf("globalReach = %d, want 1", sum.GlobalReach)
	}
}

func TestAnalyticsUsesCache(t *testing.T) {
	db := newTestDB(t)
	college := seedCollege(t, db, "Test Institute", "testinst")
	seedAlum(t, db, &college.ID, "alum1", "India", "CSE", 2020)

	mc := newMemCache()
	svc := NewAnalyticsService(pgrepo.NewAnalyticsRepo(db), mc)
	admin := Caller{UserID: "x", Role: models.RoleCollegeAdmin, CollegeID: &college.ID}

	first, err := svc.Countries(testCtx(), admin, AnalyticsQuery{})
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if len(mc.store) != 1 {
		t.Fatalf("cache entries = %d, want 1", len(mc.store))
	}

	// new data is invisible until the entry expires
	seedAlum(t, db, &college.ID, "alum2", "France", "CSE", 2021)
	second, err := svc.Countries(testCtx(), admin, AnalyticsQuery{})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("cached answer changed: %+v vs %+v", first, second)
	}
}
