// Package job holds the cron jobs scheduled by the web server.
package job

import (
	"github.com/inventaris/panel/config"
	"github.com/inventaris/panel/logger"
	"github.com/inventaris/panel/util/common"
	"github.com/inventaris/panel/web/service"
)

// AuditCleanupJob prunes audit log entries past the retention period.
type AuditCleanupJob struct {
	auditService  service.AuditLogService
	retentionDays int
}

// NewAuditCleanupJob creates a job using the configured retention.
func NewAuditCleanupJob() *AuditCleanupJob {
	return &AuditCleanupJob{retentionDays: config.GetAuditRetentionDays()}
}

// Run cleans up old audit logs
func (j *AuditCleanupJob) Run() {
	defer common.Recover("audit cleanup")
	logger.Debug("Audit cleanup job started")

	retentionDays := j.retentionDays
	if retentionDays <= 0 {
		retentionDays = 90
	}

	if _, err := j.auditService.CleanOldLogs(retentionDays); err != nil {
		logger.Warning("Failed to clean old audit logs:", err)
	} else {
		logger.Debugf("Audit cleanup completed (retention: %d days)", retentionDays)
	}
}
