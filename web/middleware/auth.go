// Package middleware holds the gin middleware of the inventory panel.
package middleware

import (
	"errors"
	"net/http"

	"github.com/inventaris/panel/database/model"
	"github.com/inventaris/panel/logger"
	"github.com/inventaris/panel/web/access"
	"github.com/inventaris/panel/web/entity"
	"github.com/inventaris/panel/web/locale"
	"github.com/inventaris/panel/web/service"
	"github.com/inventaris/panel/web/session"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthRequired.
const (
	KeyUser   = "user"
	KeyUserID = "user_id"
	KeyRole   = "role"
)

// AuthRequired resolves the session's user and rejects the request with 401
// when there is none. A session pointing at a deleted user is cleared.
func AuthRequired() gin.HandlerFunc {
	userService := service.UserService{}

	return func(c *gin.Context) {
		uuid := session.GetLoginUser(c)
		if uuid == "" {
			abort(c, http.StatusUnauthorized, "login.required")
			return
		}
		user, err := userService.GetByUuid(c.Request.Context(), uuid)
		if err != nil {
			if !errors.Is(err, service.ErrUserNotFound) {
				logger.Warning("resolve session user:", err)
			}
			if err := session.ClearSession(c); err != nil {
				logger.Warning("Unable to clear session:", err)
			}
			abort(c, http.StatusUnauthorized, "login.required")
			return
		}
		c.Set(KeyUser, user)
		c.Set(KeyUserID, user.Id)
		c.Set(KeyRole, user.Role)
		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthRequired, or nil.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(KeyUser); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}

// CurrentCaller returns the access policy identity of the request.
func CurrentCaller(c *gin.Context) access.Caller {
	return access.Caller{UserID: c.GetInt(KeyUserID), Role: c.GetString(KeyRole)}
}

func abort(c *gin.Context, status int, key string, params ...string) {
	c.AbortWithStatusJSON(status, entity.Msg{
		Success: false,
		Msg:     locale.I18n(c, key, params...),
	})
}
