package emulation

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/transport"
)

// LoopbackConn stands in for the native host. Outbound messages are logged
// and kept; any message expecting a reply is answered with an empty object.
type LoopbackConn struct {
	bridge *transport.Bridge
	logger *slog.Logger

	mu   sync.Mutex
	sent []transport.Outbound
}

func NewLoopbackConn(b *transport.Bridge, logger *slog.Logger) *LoopbackConn {
	return &LoopbackConn{bridge: b, logger: logger}
}

func (c *LoopbackConn) WriteEnvelope(env transport.Outbound) error {
	c.mu.Lock()
	c.sent = append(c.sent, env)
	c.mu.Unlock()

	logging.Info(c.logger, "emulated native message",
		logging.FieldNamespace, string(env.Payload.Namespace),
		logging.FieldFunction, env.Payload.FunctionDefinition,
		logging.FieldCallbackID, env.CallbackID,
	)
	if env.CallbackID == transport.NoCallback {
		return nil
	}

	id := env.CallbackID
	reply, err := json.Marshal(transport.Inbound{
		Type:       transport.TypeCallback,
		Data:       json.RawMessage(`{}`),
		CallbackID: &id,
	})
	if err != nil {
		return err
	}
	return c.bridge.HandleInbound(reply)
}

// Sent returns the messages written so far.
func (c *LoopbackConn) Sent() []transport.Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]transport.Outbound(nil), c.sent...)
}
