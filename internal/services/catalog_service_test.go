package services

import (
	"net/http"
	"testing"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

func TestCreateCompanyDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(pgrepo.NewCatalogRepo(db))

	if _, err := svc.CreateCompany(testCtx(), CompanyInput{Name: "Acme"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.CreateCompany(testCtx(), CompanyInput{Name: "Acme"})
	wantStatus(t, err, http.StatusBadRequest)
	if got := utils.Message(err, ""); got != "Company already exists." {
		t.Fatalf("message = %q, want %q", got, "Company already exists.")
	}
}

func TestCreateSkillDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(pgrepo.NewCatalogRepo(db))

	if _, err := svc.CreateSkill(testCtx(), SkillInput{Name: "Python"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.CreateSkill(testCtx(), SkillInput{Name: "Python"})
	wantStatus(t, err, http.StatusBadRequest)
	if got := utils.Message(err, ""); got != "Skill already exists." {
		t.Fatalf("message = %q, want %q", got, "Skill already exists.")
	}
}

func TestUpdateCompany(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(pgrepo.NewCatalogRepo(db))

	c, err := svc.CreateCompany(testCtx(), CompanyInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	verified := true
	got, err := svc.UpdateCompany(testCtx(), c.ID, CompanyInput{
		Name: "Acme Corp", Industry: "Manufacturing", IsVerified: &verified,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Acme Corp" || !got.IsVerified || got.Industry != "Manufacturing" {
		t.Fatalf("company = %+v", got)
	}

	_, err = svc.UpdateCompany(testCtx(), "no-such-id", CompanyInput{Name: "X"})
	wantStatus(t, err, http.StatusNotFound)
}

func TestSearchCompaniesAutocomplete(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(pgrepo.NewCatalogRepo(db))

	for _, name := range []string{"Google", "GoDaddy", "Microsoft"} {
		if _, err := svc.CreateCompany(testCtx(), CompanyInput{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	refs, err := svc.SearchCompanies(testCtx(), "Go")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("matches = %d, want 2", len(refs))
	}
}

func TestCompaniesEmployingSkill(t *testing.T) {
	db := newTestDB(t)
	collegeA := seedCollege(t, db, "College A", "aaa")
	collegeB := seedCollege(t, db, "College B", "bbb")

	alumA := seedUser(t, db, &collegeA.ID, "alum-a", "pw", models.RoleAlumni)
	seedProfile(t, db, alumA.ID, "Alum A")
	alumB := seedUser(t, db, &collegeB.ID, "alum-b", "pw", models.RoleAlumni)
	seedProfile(t, db, alumB.ID, "Alum B")

	userSvc := NewUserService(pgrepo.NewUserRepo(db), nil)
	if _, err := userSvc.ReplaceCareer(testCtx(), alumA.ID, CareerUpdate{
		Experiences: []CareerExperienceInput{{Company: "Google", Title: "SWE", StartDate: "2020-01-01"}},
		Skills:      []string{"Python"},
	}); err != nil {
		t.Fatalf("career a: %v", err)
	}
	if _, err := userSvc.ReplaceCareer(testCtx(), alumB.ID, CareerUpdate{
		Experiences: []CareerExperienceInput{{Company: "Netflix", Title: "SRE", StartDate: "2020-01-01"}},
		Skills:      []string{"Python"},
	}); err != nil {
		t.Fatalf("career b: %v", err)
	}

	svc := NewCatalogService(pgrepo.NewCatalogRepo(db))

	// a college member only sees employers of their own college's people
	got, err := svc.CompaniesEmployingSkill(testCtx(), models.RoleStudent, &collegeA.ID, "Python")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Google" {
		t.Fatalf("companies = %+v, want [Google]", got)
	}

	// a super admin sees both
	all, err := svc.CompaniesEmployingSkill(testCtx(), models.RoleSuperAdmin, nil, "Python")
	if err != nil {
		t.Fatalf("super lookup: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("companies = %d, want 2", len(all))
	}
}
