package controller

import (
	"strconv"

	"github.com/inventaris/panel/web/entity"
	"github.com/inventaris/panel/web/middleware"
	"github.com/inventaris/panel/web/service"

	"github.com/gin-gonic/gin"
)

// AuditController lets admins read the audit trail.
type AuditController struct {
	BaseController

	auditService service.AuditLogService
}

// NewAuditController creates a new audit controller
func NewAuditController(g *gin.RouterGroup) *AuditController {
	a := &AuditController{}
	a.initRouter(g)
	return a
}

func (a *AuditController) initRouter(g *gin.RouterGroup) {
	g.GET("/audit", middleware.AuthRequired(), middleware.AdminOnly(), a.getAuditLogs)
}

func (a *AuditController) getAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := a.auditService.Recent(c.Request.Context(), limit)
	if err != nil {
		a.fail(c, err)
		return
	}
	views := make([]entity.AuditView, 0, len(logs))
	for _, l := range logs {
		views = append(views, entity.AuditView{
			ID:           l.ID,
			UserUuid:     l.UserUuid,
			Email:        l.Email,
			Action:       l.Action,
			Resource:     l.Resource,
			ResourceUuid: l.ResourceUuid,
			Status:       l.Status,
			IP:           l.IP,
			Timestamp:    l.Timestamp,
		})
	}
	jsonObj(c, views)
}
