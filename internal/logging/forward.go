package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Forwarder ships log lines to the native host while a bridge is attached.
type Forwarder interface {
	Connected() bool
	ForwardLog(ctx context.Context, message, path string) error
}

// ForwardingHandler writes every record to inner and copies records at or
// above level to a Forwarder.
type ForwardingHandler struct {
	inner  slog.Handler
	fwd    Forwarder
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

// NewForwardingHandler wraps inner. A nil forwarder makes it a pass-through.
func NewForwardingHandler(inner slog.Handler, fwd Forwarder, level slog.Level) *ForwardingHandler {
	return &ForwardingHandler{inner: inner, fwd: fwd, level: level}
}

// NewForwardingLogger wraps the handler behind base.
func NewForwardingLogger(base *slog.Logger, fwd Forwarder, level slog.Level) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	return slog.New(NewForwardingHandler(base.Handler(), fwd, level))
}

func (h *ForwardingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level) || (h.fwd != nil && level >= h.level)
}

func (h *ForwardingHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if h.inner.Enabled(ctx, r.Level) {
		err = h.inner.Handle(ctx, r)
	}
	if h.fwd == nil || r.Level < h.level || !h.fwd.Connected() {
		return err
	}

	path := ""
	var b strings.Builder
	b.WriteString(r.Level.String())
	b.WriteByte(' ')
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		if a.Key == FieldComponent {
			path = a.Value.String()
		}
		key := a.Key
		if len(h.groups) > 0 {
			key = strings.Join(h.groups, ".") + "." + key
		}
		fmt.Fprintf(&b, " %s=%v", key, a.Value.Any())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)

	// The bridge logs its own send failures through an unwrapped logger.
	_ = h.fwd.ForwardLog(ctx, b.String(), path)
	return err
}

func (h *ForwardingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.inner = h.inner.WithAttrs(attrs)
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *ForwardingHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.inner = h.inner.WithGroup(name)
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}
