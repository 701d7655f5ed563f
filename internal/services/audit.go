package services

import (
	"context"
	"log/slog"

	"github.com/baharkarakas/tours-backend/internal/models"
	repo "github.com/baharkarakas/tours-backend/internal/repository"
	"github.com/baharkarakas/tours-backend/internal/worker"
)

// Auditor writes audit-log entries through the worker pool so a slow or
// failing audit write never blocks or fails the operation it describes.
type Auditor struct {
	logs repo.AuditLogs
	wp   *worker.Pool
}

func NewAuditor(logs repo.AuditLogs, wp *worker.Pool) *Auditor {
	return &Auditor{logs: logs, wp: wp}
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
	write := func() {
		if err := a.logs.Create(context.Background(), entry); err != nil {
			slog.Warn("audit write failed", "entity", entityType, "action", action, "err", err)
		}
	}
	if a.wp != nil {
		a.wp.Submit(write)
		return
	}
	write()
}
