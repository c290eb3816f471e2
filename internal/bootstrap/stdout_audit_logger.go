package bootstrap

import (
	"context"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit entries through the process logger.
// Good enough for development and single-node deployments; a durable
// trail would ship these rows to storage instead.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
	}
	if len(entry.Meta) > 0 {
		fields = append(fields, zap.Any("meta", entry.Meta))
	}
	zap.L().Named("audit").Info("audit event", fields...)
}
