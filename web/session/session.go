// Package session keeps the logged-in user's public id in the gin session.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the session cookie set on the browser.
	CookieName = "inventaris"

	loginUser = "LOGIN_USER"
)

// SetLoginUser stores the user's public id and persists the session.
func SetLoginUser(c *gin.Context, userUuid string, maxAge int) error {
	s := sessions.Default(c)
	s.Set(loginUser, userUuid)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

// GetLoginUser returns the stored public id, or "" when not logged in.
func GetLoginUser(c *gin.Context) string {
	s := sessions.Default(c)
	if v, ok := s.Get(loginUser).(string); ok {
		return v
	}
	return ""
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != ""
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
