package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

type recordingForwarder struct {
	connected bool
	messages  []string
	paths     []string
}

func (f *recordingForwarder) Connected() bool { return f.connected }

func (f *recordingForwarder) ForwardLog(_ context.Context, message, path string) error {
	f.messages = append(f.messages, message)
	f.paths = append(f.paths, path)
	return nil
}

func TestForwardingHandlerForwardsAtOrAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	fwd := &recordingForwarder{connected: true}
	base := slog.New(slog.NewTextHandler(&buf, nil))
	logger := NewForwardingLogger(base, fwd, slog.LevelWarn)

	logger.Info("kept local")
	logger.With(FieldComponent, "normalizer").Error("parse failed", FieldNamespace, "weather")

	if len(fwd.messages) != 1 {
		t.Fatalf("expected 1 forwarded message, got %d", len(fwd.messages))
	}
	if !strings.HasPrefix(fwd.messages[0], "ERROR parse failed") {
		t.Fatalf("unexpected forwarded line %q", fwd.messages[0])
	}
	if !strings.Contains(fwd.messages[0], "namespace=weather") {
		t.Fatalf("expected attrs in forwarded line, got %q", fwd.messages[0])
	}
	if fwd.paths[0] != "normalizer" {
		t.Fatalf("expected component as path, got %q", fwd.paths[0])
	}
	if !strings.Contains(buf.String(), "kept local") || !strings.Contains(buf.String(), "parse failed") {
		t.Fatalf("expected both records written locally, got %s", buf.String())
	}
}

func TestForwardingHandlerSkipsWhenDisconnected(t *testing.T) {
	fwd := &recordingForwarder{}
	logger := NewForwardingLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), fwd, slog.LevelDebug)
	logger.Error("nobody listening")
	if len(fwd.messages) != 0 {
		t.Fatalf("expected nothing forwarded while disconnected, got %v", fwd.messages)
	}
}

func TestForwardingHandlerEnablesForwardedLevels(t *testing.T) {
	fwd := &recordingForwarder{connected: true}
	inner := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError})
	h := NewForwardingHandler(inner, fwd, slog.LevelInfo)
	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("expected info enabled for forwarding")
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("expected debug disabled")
	}

	slog.New(h).WithGroup("req").Info("routed", "id", 7)
	if len(fwd.messages) != 1 || !strings.Contains(fwd.messages[0], "req.id=7") {
		t.Fatalf("expected grouped attr in forwarded line, got %v", fwd.messages)
	}
}
