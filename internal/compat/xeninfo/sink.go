package xeninfo

import (
	"log/slog"
	"sync"

	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/store"
)

// Sink receives a recomputed section as flat bindings.
type Sink interface {
	Publish(section string, bindings map[string]any)
}

// MainUpdate is the page-level hook legacy widgets define to learn which
// section changed.
type MainUpdate func(section string)

// GlobalsSink writes bindings into a process-wide store and then calls the
// registered MainUpdate, if any.
type GlobalsSink struct {
	store  *store.MemoryStore
	logger *slog.Logger

	mu         sync.RWMutex
	mainUpdate MainUpdate
}

func NewGlobalsSink(s *store.MemoryStore, logger *slog.Logger) *GlobalsSink {
	if s == nil {
		s = store.NewMemoryStore()
	}
	return &GlobalsSink{store: s, logger: logger}
}

// Store exposes the bindings written so far.
func (g *GlobalsSink) Store() *store.MemoryStore {
	return g.store
}

// SetMainUpdate installs fn as the notification hook. Nil removes it.
func (g *GlobalsSink) SetMainUpdate(fn MainUpdate) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mainUpdate = fn
}

func (g *GlobalsSink) Publish(section string, bindings map[string]any) {
	g.store.Assign(section, bindings)

	g.mu.RLock()
	fn := g.mainUpdate
	g.mu.RUnlock()
	if fn == nil {
		return
	}

	defer func() {
		if p := recover(); p != nil {
			logging.Error(g.logger, "mainUpdate panicked", nil, logging.FieldSection, section, "panic", p)
		}
	}()
	fn(section)
}
