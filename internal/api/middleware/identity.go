package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quesadillascandy/candy-backend/internal/domain"
)

const (
	headerUserID   = "X-User-Id"
	headerUserName = "X-User-Name"
	headerUserRole = "X-User-Role"

	ctxUserID   = "identity.user_id"
	ctxUserName = "identity.user_name"
	ctxUserRole = "identity.user_role"
)

// Identity reads the caller identity forwarded by the gateway. The gateway
// authenticates; this server only consumes the result. Requests without an
// identity are rejected before any handler runs.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(headerUserID))
		role := domain.Role(strings.TrimSpace(c.GetHeader(headerUserRole)))

		if userID == "" || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxUserName, strings.TrimSpace(c.GetHeader(headerUserName)))
		c.Set(ctxUserRole, role)

		c.Next()
	}
}

// RequireStaff aborts requests whose role is not back-office staff.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !RoleFrom(c).IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff role required"})
			return
		}
		c.Next()
	}
}

func UserIDFrom(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func UserNameFrom(c *gin.Context) string {
	return c.GetString(ctxUserName)
}

func RoleFrom(c *gin.Context) domain.Role {
	if v, ok := c.Get(ctxUserRole); ok {
		if role, ok := v.(domain.Role); ok {
			return role
		}
	}
	return ""
}
