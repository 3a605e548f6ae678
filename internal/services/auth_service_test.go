package services

import (
	"net/http"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

func newAuthFixture(t *testing.T) (AuthService, pgrepo.UserRepository, *models.College) {
	t.Helper()

	db := newTestDB(t)
	users := pgrepo.NewUserRepo(db)
	colleges := pgrepo.NewCollegeRepo(db)
	college := seedCollege(t, db, "Test Institute", "testinst")
	svc := NewAuthService(users, colleges, DefaultAuthConfig("test-secret"))
	return svc, users, college
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, users, college := newAuthFixture(t)
	u := &models.User{CollegeID: &college.ID, Username: "2021CS042", Role: models.RoleStudent}
	hash, _ := utils.HashPassword("right-password")
	u.PasswordHash = hash
	if err := users.Create(testCtx(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	_, err := svc.Login(testCtx(), LoginRequest{
		Login:     "2021CS042",
		Password:  "wrong-password",
		Subdomain: "testinst",
	})
	wantStatus(t, err, http.StatusBadRequest)
	if got := utils.Message(err, ""); got != "Invalid credentials." {
		t.Fatalf("message = %q, want %q", got, "Invalid credentials.")
	}
}

func TestLoginScopesToSubdomain(t *testing.T) {
	svc, users, college := newAuthFixture(t)
	u := &models.User{CollegeID: &college.ID, Username: "student1", Role: models.RoleStudent}
	u.PasswordHash, _ = utils.HashPassword("pw")
	if err := users.Create(testCtx(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	res, err := svc.Login(testCtx(), LoginRequest{Login: "student1", Password: "pw", Subdomain: "testinst"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}

	// a subdomain-less login is reserved for super admins
	_, err = svc.Login(testCtx(), LoginRequest{Login: "student1", Password: "pw"})
	wantStatus(t, err, http.StatusNotFound)
}

func TestLoginSuperAdminWithoutSubdomain(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	su := &models.User{Username: "root", Role: models.RoleSuperAdmin}
	su.PasswordHash, _ = utils.HashPassword("secret")
	if err := users.Create(testCtx(), su); err != nil {
		t.Fatalf("create super admin: %v", err)
	}

	res, err := svc.Login(testCtx(), LoginRequest{Login: "root", Password: "secret"})
	if err != nil {
		t.Fatalf("super admin login: %v", err)
	}
	if res.User.Role != models.RoleSuperAdmin {
		t.Fatalf("role = %s, want SUPER_ADMIN", res.User.Role)
	}
}

func TestRefreshReusesStoredToken(t *testing.T) {
	svc, users, college := newAuthFixture(t)
	u := &models.User{CollegeID: &college.ID, Username: "alum1", Role: models.RoleAlumni}
	u.PasswordHash, _ = utils.HashPassword("pw")
	if err := users.Create(testCtx(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	res, err := svc.Login(testCtx(), LoginRequest{Login: "alum1", Password: "pw", Subdomain: "testinst"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	access, err := svc.Refresh(testCtx(), res.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if access == "" {
		t.Fatal("expected an access token")
	}

	// the refresh token is not rotated; the same one keeps working
	if _, err := svc.Refresh(testCtx(), res.RefreshToken); err != nil {
		t.Fatalf("second refresh with the same token: %v", err)
	}
	stored, err := users.FindByID(testCtx(), u.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.RefreshToken == nil || *stored.RefreshToken != res.RefreshToken {
		t.Fatal("refresh changed the stored token")
	}

	// a later login replaces the stored token and retires the old one
	again, err := svc.Login(testCtx(), LoginRequest{Login: "alum1", Password: "pw", Subdomain: "testinst"})
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	_, err = svc.Refresh(testCtx(), res.RefreshToken)
	wantStatus(t, err, http.StatusForbidden)
	if _, err := svc.Refresh(testCtx(), again.RefreshToken); err != nil {
		t.Fatalf("refresh with current token: %v", err)
	}
}

func TestLogoutInvalidatesRefresh(t *testing.T) {
	svc, users, college := newAuthFixture(t)
	u := &models.User{CollegeID: &college.ID, Username: "stu2", Role: models.RoleStudent}
	u.PasswordHash, _ = utils.HashPassword("pw")
	if err := users.Create(testCtx(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	res, err := svc.Login(testCtx(), LoginRequest{Login: "stu2", Password: "pw", Subdomain: "testinst"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(testCtx(), res.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	// the token matches nothing now; logout stays a no-op
	if err := svc.Logout(testCtx(), res.RefreshToken); err != nil {
		t.Fatalf("second logout: %v", err)
	}

	_, err = svc.Refresh(testCtx(), res.RefreshToken)
	wantStatus(t, err, http.StatusForbidden)
}

func TestRecoverPasswordVerifiesDOB(t *testing.T) {
	svc, users, college := newAuthFixture(t)
	dob := datatypes.Date(time.Date(2003, 5, 17, 0, 0, 0, 0, time.UTC))
	u := &models.User{CollegeID: &college.ID, Username: "stu3", Role: models.RoleStudent, DOB: &dob}
	u.PasswordHash, _ = utils.HashPassword("old-pw")
	if err := users.Create(testCtx(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	err := svc.RecoverPassword(testCtx(), RecoverPasswordRequest{
		Login: "stu3", Subdomain: "testinst", DOB: "2000-01-01", NewPassword: "new-pw",
	})
	wantStatus(t, err, http.StatusBadRequest)

	err = svc.RecoverPassword(testCtx(), RecoverPasswordRequest{
		Login: "stu3", Subdomain: "testinst", DOB: "2003-05-17", NewPassword: "new-pw",
	})
	if err != nil {
		t.Fatalf("recover: %v", err)
	}

	if _, err := svc.Login(testCtx(), LoginRequest{Login: "stu3", Password: "old-pw", Subdomain: "testinst"}); err == nil {
		t.Fatal("old password still accepted")
	}
	if _, err := svc.Login(testCtx(), LoginRequest{Login: "stu3", Password: "new-pw", Subdomain: "testinst"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestBootstrapSuperAdminOnce(t *testing.T) {
	svc, users, _ := newAuthFixture(t)

	if err := svc.BootstrapSuperAdmin(testCtx(), "root", "root@example.com", "pw"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if err := svc.BootstrapSuperAdmin(testCtx(), "root2", "root2@example.com", "pw"); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}

	if _, err := users.FindByUsername(testCtx(), "root2"); err == nil {
		t.Fatal("second bootstrap created another super admin")
	}
}
