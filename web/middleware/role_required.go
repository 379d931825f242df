package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RoleRequired lets the request through only when the role set by AuthRequired
// is one of roles. Roles compare case-insensitively.
func RoleRequired(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, r := range roles {
		allowed[strings.ToLower(r)] = true
	}
	return func(c *gin.Context) {
		role, exists := c.Get(KeyRole)
		if !exists {
			abort(c, http.StatusUnauthorized, "login.required")
			return
		}
		r, ok := role.(string)
		if !ok || !allowed[strings.ToLower(r)] {
			abort(c, http.StatusForbidden, "adminOnly")
			return
		}
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleRequired("admin")
}
