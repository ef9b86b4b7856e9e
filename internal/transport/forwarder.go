package transport

import (
	"context"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
)

type logLine struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

// ForwardLog ships one log line to the host's system log. It satisfies
// logging.Forwarder, so the bridge can back a forwarding handler.
func (b *Bridge) ForwardLog(_ context.Context, message, path string) error {
	return b.Send(Message{
		Namespace:          domain.NamespaceSystem,
		FunctionDefinition: FuncLog,
		Data:               logLine{Message: message, Path: path},
	}, nil)
}
