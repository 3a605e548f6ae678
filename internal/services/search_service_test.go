package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

type fakeProvider struct {
	out string
	err error
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return f.out, f.err
}

func (f *fakeProvider) Close() error { return nil }

func seedDirectory(t *testing.T) (*gorm.DB, *models.College, Caller) {
	t.Helper()

	db := newTestDB(t)
	college := seedCollege(t, db, "Test Institute", "testinst")

	viewer := seedUser(t, db, &college.ID, "viewer", "pw", models.RoleStudent)
	seedProfile(t, db, viewer.ID, "Viewer")

	pythonista := seedUser(t, db, &college.ID, "pythonista", "pw", models.RoleAlumni)
	seedProfile(t, db, pythonista.ID, "Ravi Kumar")
	userSvc := NewUserService(pgrepo.NewUserRepo(db), nil)
	if _, err := userSvc.ReplaceCareer(testCtx(), pythonista.ID, CareerUpdate{
		Experiences: []CareerExperienceInput{
			{Company: "Google", Title: "SWE", StartDate: "2020-08-01"},
		},
		Skills: []string{"Python"},
	}); err != nil {
		t.Fatalf("career: %v", err)
	}

	gopher := seedUser(t, db, &college.ID, "gopher", "pw", models.RoleAlumni)
	seedProfile(t, db, gopher.ID, "Meera Nair")
	if _, err := userSvc.ReplaceCareer(testCtx(), gopher.ID, CareerUpdate{
		Skills: []string{"Go"},
	}); err != nil {
		t.Fatalf("career: %v", err)
	}

	caller := Caller{UserID: viewer.ID, Role: viewer.Role, CollegeID: viewer.CollegeID}
	return db, college, caller
}

func searchUsernames(t *testing.T, res *SearchResult) []string {
	t.Helper()

	users, ok := res.Results.Items.([]models.User)
	if !ok {
		t.Fatalf("items are %T, want []models.User", res.Results.Items)
	}
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Username
	}
	return names
}

func TestAnalyzeAppliesStructuredFilters(t *testing.T) {
	db, _, caller := seedDirectory(t)

	provider := &fakeProvider{out: `{"skills": ["Python"], "role": "ALUMNI"}`}
	svc := NewSearchService(pgrepo.NewUserRepo(db), NewLLMQueryAnalyzer(provider))

	res, err := svc.AnalyzeAndSearch(testCtx(), caller, "alumni who know python", utils.PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if names := searchUsernames(t, res); len(names) != 1 || names[0] != "pythonista" {
		t.Fatalf("results = %v, want [pythonista]", names)
	}
	if len(res.Filters.Skills) != 1 || res.Filters.Skills[0] != "Python" {
		t.Fatalf("filters = %+v", res.Filters)
	}
}

func TestAnalyzeStripsCodeFences(t *testing.T) {
	db, _, caller := seedDirectory(t)

	provider := &fakeProvider{out: "```json\n{\"companies\": [\"Google\"]}\n```"}
	svc := NewSearchService(pgrepo.NewUserRepo(db), NewLLMQueryAnalyzer(provider))

	res, err := svc.AnalyzeAndSearch(testCtx(), caller, "people at google", utils.PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if names := searchUsernames(t, res); len(names) != 1 || names[0] != "pythonista" {
		t.Fatalf("results = %v, want [pythonista]", names)
	}
}

func TestAnalyzeRecoversEmbeddedJSON(t *testing.T) {
	db, _, caller := seedDirectory(t)

	provider := &fakeProvider{out: `Here are your filters: {"skills": ["Go"]} hope that helps`}
	svc := NewSearchService(pgrepo.NewUserRepo(db), NewLLMQueryAnalyzer(provider))

	res, err := svc.AnalyzeAndSearch(testCtx(), caller, "go developers", utils.PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if names := searchUsernames(t, res); len(names) != 1 || names[0] != "gopher" {
		t.Fatalf("results = %v, want [gopher]", names)
	}
}

func TestAnalyzeFallsBackToNameOnGarbage(t *testing.T) {
	db, _, caller := seedDirectory(t)

	provider := &fakeProvider{out: "I cannot help with that"}
	svc := NewSearchService(pgrepo.NewUserRepo(db), NewLLMQueryAnalyzer(provider))

	res, err := svc.AnalyzeAndSearch(testCtx(), caller, "Ravi", utils.PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if res.Filters.Name != "Ravi" {
		t.Fatalf("fallback name = %q, want the raw query", res.Filters.Name)
	}
	if names := searchUsernames(t, res); len(names) != 1 || names[0] != "pythonista" {
		t.Fatalf("results = %v, want [pythonista]", names)
	}
}

func TestAnalyzeFallsBackOnProviderError(t *testing.T) {
	db, _, caller := seedDirectory(t)

	provider := &fakeProvider{err: errors.New("model unavailable")}
	svc := NewSearchService(pgrepo.NewUserRepo(db), NewLLMQueryAnalyzer(provider))

	res, err := svc.AnalyzeAndSearch(testCtx(), caller, "Meera", utils.PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if res.Filters.Name != "Meera" {
		t.Fatalf("fallback name = %q, want the raw query", res.Filters.Name)
	}
	if names := searchUsernames(t, res); len(names) != 1 || names[0] != "gopher" {
		t.Fatalf("results = %v, want [gopher]", names)
	}
}

func TestAnalyzeWithoutAnalyzerStillSearches(t *testing.T) {
	db, _, caller := seedDirectory(t)

	svc := NewSearchService(pgrepo.NewUserRepo(db), nil)

	res, err := svc.AnalyzeAndSearch(testCtx(), caller, "Ravi", utils.PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if names := searchUsernames(t, res); len(names) != 1 || names[0] != "pythonista" {
		t.Fatalf("results = %v, want [pythonista]", names)
	}
}
