package utils

import (
	"testing"

	"github.com/collegeconnect/backend/internal/models"
)

func TestCanAccessTenant(t *testing.T) {
	a, b := "college-a", "college-b"

	cases := []struct {
		name     string
		role     models.Role
		caller   *string
		resource *string
		want     bool
	}{
		{"same college", models.RoleStudent, &a, &a, true},
		{"other college", models.RoleStudent, &a, &b, false},
		{"college admin other college", models.RoleCollegeAdmin, &a, &b, false},
		{"super admin crosses colleges", models.RoleSuperAdmin, nil, &b, true},
		{"super admin global resource", models.RoleSuperAdmin, nil, nil, true},
		{"member cannot reach global resource", models.RoleStudent, &a, nil, false},
		{"global caller global resource", models.RoleFaculty, nil, nil, true},
		{"global caller scoped resource", models.RoleFaculty, nil, &a, false},
	}
	for _, c := range cases {
		if got := CanAccessTenant(c.role, c.caller, c.resource); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}
