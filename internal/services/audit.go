package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/baharkarakas/program-catalog/internal/metrics"
	"github.com/baharkarakas/program-catalog/internal/models"
	repo "github.com/baharkarakas/program-catalog/internal/repository"
	"github.com/baharkarakas/program-catalog/internal/worker"
)

// Auditor writes audit entries on the worker pool. Failures are logged and
// never reach the caller.
type Auditor struct {
	logs    repo.AuditLogs
	wp      *worker.Pool
	log     *slog.Logger
	timeout time.Duration
}

func NewAuditor(logs repo.AuditLogs, wp *worker.Pool, log *slog.Logger) *Auditor {
	if log == nil {
		log = slog.Default()
	}
	return &Auditor{logs: logs, wp: wp, log: log, timeout: 5 * time.Second}
}

func (a *Auditor) Record(entityType, entityID, action string, details map[string]any) {
	if a == nil || a.logs == nil {
		return
	}
	entry := models.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
	}
	job := func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		if err := a.logs.Create(ctx, entry); err != nil {
			metrics.AuditFailures.Inc()
			a.log.Warn("audit write failed", "entity", entityType, "id", entityID, "action", action, "err", err)
		}
	}
	if a.wp == nil {
		job()
		return
	}
	if err := a.wp.Submit(job); err != nil {
		metrics.AuditFailures.Inc()
		a.log.Warn("audit dropped", "entity", entityType, "id", entityID, "action", action, "err", err)
	}
}
