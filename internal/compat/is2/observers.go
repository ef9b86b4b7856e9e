package is2

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/preston-bernstein/widgetbridge/internal/logging"
)

type registration struct {
	identifier string
	token      string
	fn         Callback
}

// observerTable maps caller identifiers to callbacks. Notification follows
// first registration order; registering an identifier again replaces its
// callback in place.
type observerTable struct {
	object string
	logger *slog.Logger

	mu      sync.Mutex
	entries []registration
}

func newObserverTable(object string, logger *slog.Logger) *observerTable {
	return &observerTable{object: object, logger: logger}
}

// register stores fn under identifier and returns a fresh token for it.
func (t *observerTable) register(identifier string, fn Callback) string {
	token := uuid.NewString()

	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.entries {
		if t.entries[i].identifier == identifier {
			t.entries[i].fn = fn
			t.entries[i].token = token
			return token
		}
	}
	t.entries = append(t.entries, registration{identifier: identifier, token: token, fn: fn})
	return token
}

func (t *observerTable) unregister(identifier string) bool {
	return t.remove(func(r registration) bool { return r.identifier == identifier })
}

func (t *observerTable) unregisterToken(token string) bool {
	return t.remove(func(r registration) bool { return r.token == token })
}

func (t *observerTable) remove(match func(registration) bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, r := range t.entries {
		if match(r) {
			t.entries = append(t.entries[:i:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (t *observerTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// notify calls every callback outside the lock. A panicking callback is
// logged and the rest still run.
func (t *observerTable) notify() {
	t.mu.Lock()
	entries := append([]registration(nil), t.entries...)
	t.mu.Unlock()

	for _, r := range entries {
		t.call(r)
	}
}

func (t *observerTable) call(r registration) {
	defer func() {
		if p := recover(); p != nil {
			logging.Error(t.logger, "legacy callback panicked", nil,
				logging.FieldObject, t.object,
				"identifier", r.identifier,
				"panic", p,
			)
		}
	}()
	r.fn()
}
