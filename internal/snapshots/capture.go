package snapshots

import (
	"encoding/json"
	"log/slog"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
)

// UpdateFunc has the shape of the bridge update hook.
type UpdateFunc func(ns domain.Namespace, raw json.RawMessage) error

// Capture wraps next so every accepted update is also written to disk.
// A failed write is logged and never rejects the update.
func (w *Writer) Capture(next UpdateFunc, logger *slog.Logger) UpdateFunc {
	if w == nil {
		return next
	}
	return func(ns domain.Namespace, raw json.RawMessage) error {
		if err := next(ns, raw); err != nil {
			return err
		}
		if err := w.Write(ns, raw); err != nil {
			logging.Warn(logger, "snapshot capture failed", logging.FieldNamespace, string(ns), "error", err)
		}
		return nil
	}
}
