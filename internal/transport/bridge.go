// Package transport carries envelopes between the middleware and the native host.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/metrics"
)

// Conn writes envelopes to the host. Implementations must be safe for use
// from multiple goroutines.
type Conn interface {
	WriteEnvelope(env Outbound) error
}

// closer is implemented by connections that own a session which must end
// when a newer connection replaces them.
type closer interface {
	Close() error
}

// Callback receives the data of a host reply.
type Callback func(data json.RawMessage)

// UpdateHook receives every data update pushed by the host.
type UpdateHook func(ns domain.Namespace, payload json.RawMessage) error

// Bridge correlates requests with host replies. Each callback id is used once;
// a reply for an unknown or already resolved id is dropped.
type Bridge struct {
	logger  *slog.Logger
	metrics *metrics.Recorder

	mu       sync.Mutex
	conn     Conn
	onUpdate UpdateHook
	nextID   int64
	pending  map[int64]Callback
}

// NewBridge constructs a bridge with no connection attached. The logger must
// not forward to the bridge itself.
func NewBridge(logger *slog.Logger, recorder *metrics.Recorder) *Bridge {
	return &Bridge{
		logger:  logger,
		metrics: recorder,
		pending: make(map[int64]Callback),
	}
}

// SetUpdateHook installs the receiver for data updates.
func (b *Bridge) SetUpdateHook(fn UpdateHook) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onUpdate = fn
}

// Attach makes conn the active connection, replacing any previous one. A
// replaced connection with a Close method is closed so its session stops
// feeding inbound envelopes. The returned func detaches conn if it is still
// the active connection.
func (b *Bridge) Attach(conn Conn) (detach func()) {
	b.mu.Lock()
	prev := b.conn
	b.conn = conn
	b.mu.Unlock()
	logging.Info(b.logger, "native bridge attached", logging.FieldComponent, "transport")

	if c, ok := prev.(closer); ok && prev != conn {
		if err := c.Close(); err != nil {
			logging.Warn(b.logger, "superseded bridge close failed", "error", err, logging.FieldComponent, "transport")
		} else {
			logging.Info(b.logger, "superseded bridge closed", logging.FieldComponent, "transport")
		}
	}

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.conn == conn {
			b.conn = nil
			logging.Info(b.logger, "native bridge detached", logging.FieldComponent, "transport")
		}
	}
}

// Connected reports whether a host connection is attached.
func (b *Bridge) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn != nil
}

// Pending returns the number of callbacks still waiting for a reply.
func (b *Bridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Send writes msg to the host. When cb is non-nil it is stored under the next
// callback id and invoked at most once with the host's reply. Nothing is
// queued when no connection is attached.
func (b *Bridge) Send(msg Message, cb Callback) error {
	if err := validate.Struct(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	b.mu.Lock()
	conn := b.conn
	if conn == nil {
		b.mu.Unlock()
		logging.Error(b.logger, "cannot send native message, no connection available", ErrBridgeUnavailable,
			logging.FieldNamespace, string(msg.Namespace),
			logging.FieldFunction, msg.FunctionDefinition,
		)
		return ErrBridgeUnavailable
	}
	id := NoCallback
	if cb != nil {
		id = b.nextID
		b.nextID++
		b.pending[id] = cb
	}
	b.mu.Unlock()

	if err := conn.WriteEnvelope(Outbound{Payload: msg, CallbackID: id}); err != nil {
		if id != NoCallback {
			b.mu.Lock()
			delete(b.pending, id)
			b.mu.Unlock()
		}
		logging.Error(b.logger, "native message write failed", err, logging.FieldFunction, msg.FunctionDefinition)
		return fmt.Errorf("send %s/%s: %w", msg.Namespace, msg.FunctionDefinition, err)
	}
	b.metrics.RecordNativeMessage(metrics.DirectionOutbound, msg.FunctionDefinition)
	return nil
}

// Request sends msg and waits for the reply or for ctx to end. The callback
// stays registered after ctx ends, so a late reply is still consumed.
func (b *Bridge) Request(ctx context.Context, msg Message) (json.RawMessage, error) {
	replies := make(chan json.RawMessage, 1)
	if err := b.Send(msg, func(data json.RawMessage) { replies <- data }); err != nil {
		return nil, err
	}
	select {
	case data := <-replies:
		return data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// HandleInbound decodes one envelope from the host and routes it.
func (b *Bridge) HandleInbound(raw []byte) error {
	var env Inbound
	if err := json.Unmarshal(raw, &env); err != nil {
		logging.Warn(b.logger, "native envelope unreadable", "error", err)
		return fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	b.metrics.RecordNativeMessage(metrics.DirectionInbound, string(env.Type))

	switch env.Type {
	case TypeDataUpdate:
		return b.handleDataUpdate(env.Data)
	case TypeCallback:
		b.resolve(env)
		return nil
	default:
		logging.Warn(b.logger, "native envelope type unknown", "type", string(env.Type))
		return nil
	}
}

func (b *Bridge) handleDataUpdate(data json.RawMessage) error {
	var update DataUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		logging.Warn(b.logger, "data update unreadable", "error", err)
		return fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	ns, err := domain.ParseNamespace(update.Namespace)
	if err != nil {
		logging.Warn(b.logger, "data update for unknown namespace", logging.FieldNamespace, update.Namespace)
		return err
	}

	b.mu.Lock()
	hook := b.onUpdate
	b.mu.Unlock()
	if hook == nil {
		logging.Warn(b.logger, "data update dropped, no receiver", logging.FieldNamespace, string(ns))
		return nil
	}
	return hook(ns, update.Payload)
}

func (b *Bridge) resolve(env Inbound) {
	if env.CallbackID == nil || *env.CallbackID == NoCallback {
		b.metrics.RecordCallback(false)
		return
	}
	id := *env.CallbackID

	b.mu.Lock()
	cb, ok := b.pending[id]
	delete(b.pending, id)
	b.mu.Unlock()

	if !ok {
		b.metrics.RecordCallback(false)
		logging.Debug(b.logger, "callback reply dropped", logging.FieldCallbackID, id)
		return
	}
	b.metrics.RecordCallback(true)

	defer func() {
		if r := recover(); r != nil {
			logging.Error(b.logger, "callback panicked", nil, logging.FieldCallbackID, id, "panic", r)
		}
	}()
	cb(env.Data)
}
