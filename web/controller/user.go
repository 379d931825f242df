package controller

import (
	"net/http"

	"github.com/inventaris/panel/web/entity"
	"github.com/inventaris/panel/web/middleware"
	"github.com/inventaris/panel/web/service"

	"github.com/gin-gonic/gin"
)

// UserController is the admin-only account management API.
type UserController struct {
	BaseController

	userService service.UserService
}

func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	users := g.Group("/users", middleware.AuthRequired(), middleware.AdminOnly(), middleware.AuditMiddleware())
	users.GET("", a.list)
	users.GET("/:id", a.get)
	users.POST("", a.create)
	users.PATCH("/:id", a.update)
	users.DELETE("/:id", a.delete)
}

func (a *UserController) list(c *gin.Context) {
	users, err := a.userService.List(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	views := make([]entity.UserView, 0, len(users))
	for i := range users {
		views = append(views, entity.NewUserView(&users[i]))
	}
	jsonObj(c, views)
}

func (a *UserController) get(c *gin.Context) {
	user, err := a.userService.GetByUuid(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	jsonObj(c, entity.NewUserView(user))
}

func (a *UserController) create(c *gin.Context) {
	var form entity.UserForm
	if !bindForm(c, &form) {
		return
	}
	user, err := a.userService.Create(c.Request.Context(), form)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.Set(middleware.KeyAuditResource, user.Uuid)
	jsonMsgObj(c, http.StatusCreated, I18nWeb(c, "user.created"), entity.NewUserView(user))
}

func (a *UserController) update(c *gin.Context) {
	var form entity.UserForm
	if !bindForm(c, &form) {
		return
	}
	user, err := a.userService.Update(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		a.fail(c, err)
		return
	}
	jsonMsgObj(c, http.StatusOK, I18nWeb(c, "user.updated"), entity.NewUserView(user))
}

func (a *UserController) delete(c *gin.Context) {
	if err := a.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	jsonMsg(c, http.StatusOK, I18nWeb(c, "user.deleted"))
}
