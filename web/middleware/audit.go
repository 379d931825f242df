package middleware

import (
	"net/http"
	"strings"

	"github.com/inventaris/panel/logger"
	"github.com/inventaris/panel/web/service"

	"github.com/gin-gonic/gin"
)

// KeyAuditResource lets a handler name the resource it created, since the
// public id is not in the path on POST.
const KeyAuditResource = "audit_resource_uuid"

// AuditMiddleware records every mutating request made by a logged-in user.
// It must run after AuthRequired.
func AuditMiddleware() gin.HandlerFunc {
	auditService := service.AuditLogService{}

	return func(c *gin.Context) {
		action, ok := auditAction(c.Request.Method)
		if !ok {
			c.Next()
			return
		}

		c.Next()

		user := CurrentUser(c)
		if user == nil {
			return
		}
		resourceUuid := c.GetString(KeyAuditResource)
		if resourceUuid == "" {
			resourceUuid = c.Param("id")
		}
		details := map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}
		if err := auditService.LogAction(c.Request.Context(), service.AuditEntry{
			User:         user,
			Action:       action,
			Resource:     auditResource(c.FullPath()),
			ResourceUuid: resourceUuid,
			Status:       c.Writer.Status(),
			IP:           c.ClientIP(),
			UserAgent:    c.GetHeader("User-Agent"),
			Details:      details,
		}); err != nil {
			logger.Warning("Failed to log audit action:", err)
		}
	}
}

func auditAction(method string) (string, bool) {
	switch method {
	case http.MethodPost:
		return "CREATE", true
	case http.MethodPatch, http.MethodPut:
		return "UPDATE", true
	case http.MethodDelete:
		return "DELETE", true
	}
	return "", false
}

// auditResource derives the resource name from the matched route pattern.
func auditResource(route string) string {
	switch {
	case strings.Contains(route, "/products"):
		return "product"
	case strings.Contains(route, "/users"):
		return "user"
	case strings.Contains(route, "/logout"), strings.Contains(route, "/login"):
		return "session"
	}
	return "unknown"
}
