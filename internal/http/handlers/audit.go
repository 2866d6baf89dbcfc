package handlers

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"rapv/site/internal/models"
)

type AuditStore interface {
	CreateAuditEvent(ctx context.Context, event models.AuditEvent) error
	ListAuditEvents(ctx context.Context, limit int) ([]models.AuditEvent, error)
}

var (
	auditStore  AuditStore
	auditLogger = zap.NewNop()
)

// SetAuditStore wires the audit sink. A nil store keeps audit records in the
// log only.
func SetAuditStore(store AuditStore, log *zap.Logger) {
	auditStore = store
	if log != nil {
		auditLogger = log.With(zap.String("component", "audit"))
	}
}

func auditLog(ctx context.Context, action, actor string, payload map[string]interface{}) {
	auditLogger.Info("admin action", zap.String("action", action), zap.String("actor", actor), zap.Any("payload", payload))
	if auditStore == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte(`{}`)
	}
	if err := auditStore.CreateAuditEvent(ctx, models.AuditEvent{
		Actor:   actor,
		Action:  action,
		Payload: raw,
	}); err != nil {
		auditLogger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
	}
}
