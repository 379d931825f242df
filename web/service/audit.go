package service

import (
	"context"
	"fmt"
	"time"

	"github.com/inventaris/panel/database"
	"github.com/inventaris/panel/database/model"
	"github.com/inventaris/panel/logger"

	"github.com/goccy/go-json"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

// AuditLogService records and prunes the audit trail.
type AuditLogService struct{}

// AuditEntry describes one audited request.
type AuditEntry struct {
	User         *model.User
	Action       string // CREATE, UPDATE, DELETE, LOGIN, LOGOUT
	Resource     string // product, user, session
	ResourceUuid string
	Status       int
	IP           string
	UserAgent    string
	Details      map[string]any
}

// LogAction stores an entry. Failures are logged and returned.
func (s *AuditLogService) LogAction(ctx context.Context, e AuditEntry) error {
	detailsJSON := ""
	if e.Details != nil {
		data, err := json.Marshal(e.Details)
		if err != nil {
			logger.Warning("Failed to marshal audit log details:", err)
		} else {
			detailsJSON = string(data)
		}
	}

	auditLog := model.AuditLog{
		Action:       e.Action,
		Resource:     e.Resource,
		ResourceUuid: e.ResourceUuid,
		Status:       e.Status,
		IP:           e.IP,
		UserAgent:    e.UserAgent,
		Details:      detailsJSON,
		Timestamp:    time.Now(),
	}
	if e.User != nil {
		auditLog.UserID = e.User.Id
		auditLog.UserUuid = e.User.Uuid
		auditLog.Email = e.User.Email
	}

	if err := database.GetDB().WithContext(ctx).Create(&auditLog).Error; err != nil {
		logger.Warningf("Failed to create audit log: user=%s, action=%s, resource=%s, error=%v",
			auditLog.Email, e.Action, e.Resource, err)
		return err
	}
	return nil
}

// Recent returns the newest entries. limit <= 0 means the default page size.
func (s *AuditLogService) Recent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	var logs []model.AuditLog
	err := database.GetDB().WithContext(ctx).
		Order("timestamp DESC").Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// CleanOldLogs removes entries older than days.
func (s *AuditLogService) CleanOldLogs(days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("days must be greater than 0")
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	result := database.GetDB().Where("timestamp < ?", cutoff).Delete(&model.AuditLog{})
	if result.Error != nil {
		return 0, result.Error
	}
	logger.Infof("Cleaned %d old audit logs (older than %d days)", result.RowsAffected, days)
	return result.RowsAffected, nil
}
