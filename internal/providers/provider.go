package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/metrics"
)

// NormalizeFunc turns a raw host payload into a canonical snapshot. A non-nil
// error means the payload is ignored and the current snapshot kept.
type NormalizeFunc[T any] func(raw json.RawMessage) (T, error)

// Observer receives the snapshot after every accepted update.
type Observer[T any] func(snapshot T)

// ObserverID identifies a registered observer for removal.
type ObserverID uint64

type observerEntry[T any] struct {
	id ObserverID
	fn Observer[T]
}

// State is a snapshot together with its bookkeeping.
type State[T any] struct {
	Namespace domain.Namespace `json:"namespace"`
	Revision  uint64           `json:"revision"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Snapshot  T                `json:"snapshot"`
}

// Provider holds the canonical snapshot for one namespace and fans updates
// out to its observers in registration order.
type Provider[T any] struct {
	ns        domain.Namespace
	normalize NormalizeFunc[T]
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time

	mu        sync.RWMutex
	snapshot  T
	revision  uint64
	updatedAt time.Time
	observers []observerEntry[T]
	nextID    ObserverID
}

// NewProvider constructs a provider seeded with the default snapshot.
func NewProvider[T any](ns domain.Namespace, defaults T, normalize NormalizeFunc[T], logger *slog.Logger, recorder *metrics.Recorder) *Provider[T] {
	return &Provider[T]{
		ns:        ns,
		normalize: normalize,
		logger:    logger,
		metrics:   recorder,
		now:       time.Now,
		snapshot:  defaults,
	}
}

func (p *Provider[T]) Namespace() domain.Namespace {
	return p.ns
}

// Snapshot returns the current canonical snapshot.
func (p *Provider[T]) Snapshot() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Revision counts accepted updates since start; zero means defaults only.
func (p *Provider[T]) Revision() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.revision
}

// State returns the snapshot with its revision and update time.
func (p *Provider[T]) State() State[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return State[T]{Namespace: p.ns, Revision: p.revision, UpdatedAt: p.updatedAt, Snapshot: p.snapshot}
}

// StateAny is State with the snapshot type erased, for transports that serve any namespace.
func (p *Provider[T]) StateAny() any {
	return p.State()
}

// Observe registers fn. If an update has already been accepted, fn is called
// with the current snapshot before Observe returns.
func (p *Provider[T]) Observe(fn Observer[T]) ObserverID {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.observers = append(p.observers, observerEntry[T]{id: id, fn: fn})
	replay := p.revision > 0
	snap := p.snapshot
	p.mu.Unlock()

	if replay {
		p.call(fn, snap)
	}
	return id
}

// Unobserve removes an observer. It reports whether the id was registered.
func (p *Provider[T]) Unobserve(id ObserverID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, entry := range p.observers {
		if entry.id == id {
			p.observers = append(p.observers[:i:i], p.observers[i+1:]...)
			return true
		}
	}
	return false
}

// Apply normalizes raw and, when accepted, swaps the snapshot and notifies observers.
func (p *Provider[T]) Apply(raw json.RawMessage) error {
	start := time.Now()
	snap, err := p.normalize(raw)
	if err != nil {
		p.metrics.RecordUpdate(string(p.ns), time.Since(start), false)
		return &IgnoredError{Namespace: p.ns, Err: err}
	}
	p.Set(snap)
	p.metrics.RecordUpdate(string(p.ns), time.Since(start), true)
	return nil
}

// Set replaces the snapshot directly and notifies observers.
func (p *Provider[T]) Set(snap T) {
	p.mu.Lock()
	p.snapshot = snap
	p.revision++
	p.updatedAt = p.now()
	observers := make([]Observer[T], len(p.observers))
	for i, entry := range p.observers {
		observers[i] = entry.fn
	}
	p.mu.Unlock()

	for _, fn := range observers {
		p.call(fn, snap)
	}
}

func (p *Provider[T]) call(fn Observer[T], snap T) {
	defer func() {
		if r := recover(); r != nil {
			p.metrics.RecordObserverFault(string(p.ns))
			logWithNamespace(context.Background(), p.logger, slog.LevelError, p.ns, "observer panicked", "panic", r)
		}
	}()
	fn(snap)
}
