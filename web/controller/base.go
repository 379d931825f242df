// Package controller provides the HTTP handlers of the inventory panel: login,
// products, users and the audit trail.
package controller

import (
	"errors"
	"net/http"

	"github.com/inventaris/panel/logger"
	"github.com/inventaris/panel/web/entity"
	"github.com/inventaris/panel/web/locale"
	"github.com/inventaris/panel/web/middleware"
	"github.com/inventaris/panel/web/service"

	"github.com/gin-gonic/gin"
)

// BaseController provides the error mapping shared by all controllers.
type BaseController struct{}

// fail writes err as a localized envelope with the status its kind maps to.
func (a *BaseController) fail(c *gin.Context, err error) {
	if ve, ok := service.IsValidation(err); ok {
		fields := make(map[string]string, len(ve.Fields))
		for name, fe := range ve.Fields {
			fields[name] = I18nWeb(c, fe.Key, fe.Params...)
		}
		c.JSON(http.StatusBadRequest, entity.Msg{
			Success: false,
			Msg:     I18nWeb(c, "validationFailed"),
			Obj:     fields,
		})
		return
	}
	status, key := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	pureJsonMsg(c, status, false, I18nWeb(c, key))
}

// errorStatus maps a service error to an HTTP status and message id.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "user.notFound"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "product.notFound"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "user.emailTaken"
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, "product.serialTaken"
	case errors.Is(err, service.ErrSerialExhausted):
		return http.StatusInternalServerError, "product.serialExhausted"
	}
	return http.StatusInternalServerError, "serverError"
}

// I18nWeb retrieves a message for the request's locale.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	return locale.I18n(c, name, params...)
}

// bindForm binds the request body, answering 400 itself on failure.
func bindForm(c *gin.Context, form any) bool {
	if err := c.ShouldBind(form); err != nil {
		logger.Debug("bind form:", err)
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "invalidFormData"))
		return false
	}
	return true
}

var caller = middleware.CurrentCaller
