package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/models"
)

// RequireRole rejects callers whose role is not in the allowed set. Must run
// after JWTAuth.
func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	allow := map[models.Role]struct{}{}
	for _, a := range allowed {
		allow[a] = struct{}{}
	}

	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Access denied."})
			return
		}
		if _, ok := allow[id.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Access denied."})
			return
		}
		c.Next()
	}
}

func RequireCollegeAdmin() gin.HandlerFunc { return RequireRole(models.RoleCollegeAdmin) }

func RequireSuperAdmin() gin.HandlerFunc { return RequireRole(models.RoleSuperAdmin) }
