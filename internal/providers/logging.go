package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
)

// logWithNamespace emits a log entry if logger is non-nil and always includes the namespace.
func logWithNamespace(ctx context.Context, logger *slog.Logger, level slog.Level, ns domain.Namespace, msg string, args ...any) {
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldNamespace, string(ns)))
	logger.Log(ctx, level, msg, args...)
}
