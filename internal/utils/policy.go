package utils

import (
	"gorm.io/gorm"

	"github.com/collegeconnect/backend/internal/models"
)

// CanAccessTenant is the single cross-tenant rule: super admins see every
// college, everyone else only their own. Both sides nil counts as a match so
// super-admin-owned resources stay reachable.
func CanAccessTenant(callerRole models.Role, callerCollegeID, resourceCollegeID *string) bool {
	if callerRole == models.RoleSuperAdmin {
		return true
	}
	if callerCollegeID == nil || resourceCollegeID == nil {
		return callerCollegeID == nil && resourceCollegeID == nil
	}
	return *callerCollegeID == *resourceCollegeID
}

// TenantScope restricts a query to the caller's college on the given column
// unless the caller is a super admin. Intended for gorm's Scopes().
func TenantScope(callerRole models.Role, callerCollegeID *string, column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if callerRole == models.RoleSuperAdmin {
			return db
		}
		return db.Where(column+" = ?", callerCollegeID)
	}
}
