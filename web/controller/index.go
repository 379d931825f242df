package controller

import (
	"net/http"
	"strings"

	"github.com/inventaris/panel/config"
	"github.com/inventaris/panel/logger"
	"github.com/inventaris/panel/web/entity"
	"github.com/inventaris/panel/web/middleware"
	"github.com/inventaris/panel/web/service"
	"github.com/inventaris/panel/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController handles login, logout and the current user.
type IndexController struct {
	BaseController

	userService  service.UserService
	auditService service.AuditLogService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.POST("/login",
		middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(config.GetLoginRateLimit())),
		a.login)

	auth := g.Group("", middleware.AuthRequired())
	auth.GET("/me", a.me)
	auth.DELETE("/logout", middleware.AuditMiddleware(), a.logout)
}

func (a *IndexController) login(c *gin.Context) {
	var form entity.LoginForm
	if !bindForm(c, &form) {
		return
	}
	form.Email = strings.TrimSpace(form.Email)
	if form.Email == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "login.required"))
		return
	}

	ctx := c.Request.Context()
	user := a.userService.CheckUser(ctx, form.Email, form.Password)
	if user == nil {
		logger.Warningf("wrong email or password: \"%s\", IP: \"%s\"", form.Email, getRemoteIp(c))
		_ = a.auditService.LogAction(ctx, service.AuditEntry{
			Action:    "LOGIN",
			Resource:  "session",
			Status:    http.StatusUnauthorized,
			IP:        getRemoteIp(c),
			UserAgent: c.GetHeader("User-Agent"),
			Details:   map[string]any{"email": form.Email},
		})
		pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "login.wrongCredentials"))
		return
	}

	if err := session.SetLoginUser(c, user.Uuid, config.GetSessionMaxAge()*60); err != nil {
		a.fail(c, err)
		return
	}
	logger.Infof("%s logged in successfully, Ip Address: %s", user.Email, getRemoteIp(c))
	_ = a.auditService.LogAction(ctx, service.AuditEntry{
		User:      user,
		Action:    "LOGIN",
		Resource:  "session",
		Status:    http.StatusOK,
		IP:        getRemoteIp(c),
		UserAgent: c.GetHeader("User-Agent"),
	})
	jsonMsgObj(c, http.StatusOK, I18nWeb(c, "login.success"), entity.NewUserView(user))
}

func (a *IndexController) me(c *gin.Context) {
	jsonObj(c, entity.NewUserView(middleware.CurrentUser(c)))
}

func (a *IndexController) logout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := session.ClearSession(c); err != nil {
		a.fail(c, err)
		return
	}
	logger.Infof("%s logged out successfully", user.Email)
	jsonMsg(c, http.StatusOK, I18nWeb(c, "login.logout"))
}
