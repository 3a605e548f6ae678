package services

import (
	"net/http"
	"strings"
	"testing"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

const rosterCSV = `Full Name,Roll Number,Email,Department,Section,Graduation Year,Role,DOB
Anita Desai,2021CS001,anita@example.edu,Computer Science,A,2025,STUDENT,2003-02-11
Bharat Rao,2018EC045,,Electronics,B,2022,ALUMNI,
`

func TestParseRosterCSV(t *testing.T) {
	svc := NewAdminService(nil)

	rows, err := svc.ParseRosterCSV(strings.NewReader(rosterCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	first := rows[0]
	if first.Name != "Anita Desai" || first.RollNumber != "2021CS001" {
		t.Fatalf("first row = %+v", first)
	}
	if first.GraduationYear == nil || *first.GraduationYear != 2025 {
		t.Fatalf("graduationYear = %v, want 2025", first.GraduationYear)
	}
	if rows[1].Email != "" || rows[1].Role != "ALUMNI" {
		t.Fatalf("second row = %+v", rows[1])
	}
}

func TestParseRosterCSVRejectsMissingColumns(t *testing.T) {
	svc := NewAdminService(nil)

	_, err := svc.ParseRosterCSV(strings.NewReader("email,department\na@b.c,CS\n"))
	wantStatus(t, err, http.StatusBadRequest)
}

func TestImportRosterCreatesAccounts(t *testing.T) {
	db := newTestDB(t)
	college := seedCollege(t, db, "Test Institute", "testinst")
	users := pgrepo.NewUserRepo(db)
	svc := NewAdminService(users)

	rows, err := svc.ParseRosterCSV(strings.NewReader(rosterCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	res, err := svc.ImportRoster(testCtx(), college.ID, rows)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Success != 2 || res.Failed != 0 {
		t.Fatalf("result = %+v, want 2 successes", res)
	}

	anita, err := users.FindByUsernameAndCollege(testCtx(), "2021CS001", college.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	// initial password is the name prefix plus the roll number suffix
	if err := utils.CheckPassword(anita.PasswordHash, utils.RosterPassword("Anita Desai", "2021CS001")); err != nil {
		t.Fatal("roster password does not match")
	}

	bharat, err := users.FindByUsernameAndCollege(testCtx(), "2018EC045", college.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if bharat.Email == nil || !strings.HasPrefix(*bharat.Email, "2018ec045@") {
		t.Fatalf("fallback email = %v", bharat.Email)
	}
	if bharat.Role != models.RoleAlumni {
		t.Fatalf("role = %s, want ALUMNI", bharat.Role)
	}

	profile, err := users.GetProfile(testCtx(), anita.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.FullName != "Anita Desai" || profile.Department != "Computer Science" {
		t.Fatalf("profile = %+v", profile)
	}
}

func TestImportRosterReimportKeepsCredentials(t *testing.T) {
	db := newTestDB(t)
	college := seedCollege(t, db, "Test Institute", "testinst")
	users := pgrepo.NewUserRepo(db)
	svc := NewAdminService(users)

	rows := []RosterRow{{Name: "Anita Desai", RollNumber: "2021CS001", Role: "STUDENT"}}
	if _, err := svc.ImportRoster(testCtx(), college.ID, rows); err != nil {
		t.Fatalf("import: %v", err)
	}

	before, _ := users.FindByUsernameAndCollege(testCtx(), "2021CS001", college.ID)
	if err := users.UpdatePassword(testCtx(), before.ID, "user-chosen-hash"); err != nil {
		t.Fatalf("update password: %v", err)
	}

	// same person graduates, only the role moves
	rows[0].Role = "ALUMNI"
	res, err := svc.ImportRoster(testCtx(), college.ID, rows)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if res.Success != 1 {
		t.Fatalf("result = %+v", res)
	}

	after, _ := users.FindByUsernameAndCollege(testCtx(), "2021CS001", college.ID)
	if after.Role != models.RoleAlumni {
		t.Fatalf("role = %s, want ALUMNI", after.Role)
	}
	if after.PasswordHash != "user-chosen-hash" {
		t.Fatal("re-import overwrote the password")
	}
}

func TestImportRosterReportsBadRows(t *testing.T) {
	db := newTestDB(t)
	college := seedCollege(t, db, "Test Institute", "testinst")
	svc := NewAdminService(pgrepo.NewUserRepo(db))

	rows := []RosterRow{
		{Name: "Good Row", RollNumber: "R1"},
		{Name: "", RollNumber: "R2"},
		{Name: "Bad Role", RollNumber: "R3", Role: "SUPER_ADMIN"},
	}
	res, err := svc.ImportRoster(testCtx(), college.ID, rows)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Success != 1 || res.Failed != 2 || len(res.Errors) != 2 {
		t.Fatalf("result = %+v", res)
	}
}

func TestBulkUpdateRole(t *testing.T) {
	db := newTestDB(t)
	collegeA := seedCollege(t, db, "College A", "aaa")
	collegeB := seedCollege(t, db, "College B", "bbb")
	u1 := seedUser(t, db, &collegeA.ID, "u1", "pw", models.RoleStudent)
	u2 := seedUser(t, db, &collegeA.ID, "u2", "pw", models.RoleStudent)
	outsider := seedUser(t, db, &collegeB.ID, "u3", "pw", models.RoleStudent)
	users := pgrepo.NewUserRepo(db)
	svc := NewAdminService(users)

	_, err := svc.BulkUpdateRole(testCtx(), collegeA.ID, []string{u1.ID}, "SUPER_ADMIN")
	wantStatus(t, err, http.StatusBadRequest)

	// the other college's user silently drops out of the update
	n, err := svc.BulkUpdateRole(testCtx(), collegeA.ID, []string{u1.ID, u2.ID, outsider.ID}, "ALUMNI")
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	if n != 2 {
		t.Fatalf("updated = %d, want 2", n)
	}

	kept, _ := users.FindByID(testCtx(), outsider.ID)
	if kept.Role != models.RoleStudent {
		t.Fatalf("outsider role = %s, want STUDENT", kept.Role)
	}

	// an update that matches nobody in the college is a 404
	_, err = svc.BulkUpdateRole(testCtx(), collegeA.ID, []string{outsider.ID}, "ALUMNI")
	wantStatus(t, err, http.StatusNotFound)
}
