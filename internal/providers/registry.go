package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
)

// Updatable is the type-erased view of a Provider used by the registry.
type Updatable interface {
	Namespace() domain.Namespace
	Apply(raw json.RawMessage) error
	Revision() uint64
	StateAny() any
}

// Registry maps each namespace to its provider. Updates are applied one at a
// time so every fan-out completes before the next payload is normalized.
type Registry struct {
	logger *slog.Logger

	dispatchMu sync.Mutex

	mu        sync.RWMutex
	providers map[domain.Namespace]Updatable
	order     []domain.Namespace
}

// NewRegistry constructs an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:    logger,
		providers: make(map[domain.Namespace]Updatable),
	}
}

// Register adds a provider. Registering an invalid or duplicate namespace panics.
func (r *Registry) Register(p Updatable) {
	ns := p.Namespace()
	if !ns.Valid() {
		panic(fmt.Sprintf("providers: register of unknown namespace %q", ns))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[ns]; exists {
		panic(fmt.Sprintf("providers: namespace %q registered twice", ns))
	}
	r.providers[ns] = p
	r.order = append(r.order, ns)
}

// Get returns the provider for ns. Namespaces are a closed set, so a missing
// provider is a programming error and panics.
func (r *Registry) Get(ns domain.Namespace) Updatable {
	p, ok := r.Lookup(ns)
	if !ok {
		panic(fmt.Sprintf("providers: no provider registered for namespace %q", ns))
	}
	return p
}

// Lookup returns the provider for ns without panicking.
func (r *Registry) Lookup(ns domain.Namespace) (Updatable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[ns]
	return p, ok
}

// Namespaces returns the registered namespaces in registration order.
func (r *Registry) Namespaces() []domain.Namespace {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Namespace(nil), r.order...)
}

// DispatchUpdate normalizes raw into the provider for ns and fans it out.
// An *IgnoredError means the previous snapshot was kept.
func (r *Registry) DispatchUpdate(ns domain.Namespace, raw json.RawMessage) error {
	p := r.Get(ns)

	r.dispatchMu.Lock()
	defer r.dispatchMu.Unlock()

	err := p.Apply(raw)
	if err != nil {
		logWithNamespace(context.Background(), r.logger, slog.LevelDebug, ns, "update ignored", "error", err)
		return err
	}
	logWithNamespace(context.Background(), r.logger, slog.LevelDebug, ns, "update applied", "revision", p.Revision())
	return nil
}
