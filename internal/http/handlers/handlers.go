package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/providers"
)

const maxArgsBody = 64 << 10

// ProviderSource looks up providers by namespace. providers.Registry satisfies it.
type ProviderSource interface {
	Lookup(ns domain.Namespace) (providers.Updatable, bool)
	Namespaces() []domain.Namespace
}

// GlobalsSource exposes the XenInfo globals. store.MemoryStore satisfies it.
type GlobalsSource interface {
	All() map[string]any
	Section(section string) (map[string]any, bool)
}

// SelectorCaller invokes IS2 selectors. is2.Dispatcher satisfies it.
type SelectorCaller interface {
	Call(objectName, selector string, args ...any) (any, bool)
}

// StatusFunc reports readiness and, when not ready, why.
type StatusFunc func() (ready bool, reason string)

// Deps are the runtime pieces the handler serves.
type Deps struct {
	Providers ProviderSource
	Globals   GlobalsSource
	Legacy    SelectorCaller
	Status    StatusFunc
}

// Handler serves read-only views of the runtime plus legacy selector calls.
type Handler struct {
	providers ProviderSource
	globals   GlobalsSource
	legacy    SelectorCaller
	statusFn  StatusFunc
	logger    *slog.Logger
}

// NewHandler constructs a Handler with defaults.
func NewHandler(deps Deps, logger *slog.Logger) *Handler {
	return &Handler{
		providers: deps.Providers,
		globals:   deps.Globals,
		legacy:    deps.Legacy,
		statusFn:  deps.Status,
		logger:    logger,
	}
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/providers":
		h.ProviderIndex(w, r)
	case strings.HasPrefix(r.URL.Path, "/providers/"):
		h.ProviderState(w, r)
	case r.URL.Path == "/xeninfo":
		h.Globals(w, r)
	case strings.HasPrefix(r.URL.Path, "/xeninfo/"):
		h.GlobalsSection(w, r)
	case strings.HasPrefix(r.URL.Path, "/is2/"):
		h.Selector(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether a host (real or emulated) is feeding the providers.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	ready, reason := h.statusFn()
	if ready {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if reason == "" {
		reason = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, reason, h.logger)
}

type providerSummary struct {
	Namespace domain.Namespace `json:"namespace"`
	Revision  uint64           `json:"revision"`
}

// ProviderIndex lists the registered namespaces with their revisions.
func (h *Handler) ProviderIndex(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.providers == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "providers not configured", h.logger)
		return
	}
	namespaces := h.providers.Namespaces()
	out := make([]providerSummary, 0, len(namespaces))
	for _, ns := range namespaces {
		if p, ok := h.providers.Lookup(ns); ok {
			out = append(out, providerSummary{Namespace: ns, Revision: p.Revision()})
		}
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"providers": out}, h.logger)
}

// ProviderState returns the canonical snapshot of one namespace.
func (h *Handler) ProviderState(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.providers == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "providers not configured", h.logger)
		return
	}
	raw, ok := pathParams(r.URL.EscapedPath(), "/providers/", 1)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid namespace", h.logger)
		return
	}
	ns, err := domain.ParseNamespace(raw[0])
	if err != nil {
		writeError(w, r, nethttp.StatusNotFound, "unknown namespace", h.logger)
		return
	}
	p, ok := h.providers.Lookup(ns)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "unknown namespace", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, p.StateAny(), h.logger)
}

// Globals returns every XenInfo global as one flat object.
func (h *Handler) Globals(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.globals == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "globals not configured", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.globals.All(), h.logger)
}

// GlobalsSection returns the globals written by one XenInfo section.
func (h *Handler) GlobalsSection(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.globals == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "globals not configured", h.logger)
		return
	}
	params, ok := pathParams(r.URL.EscapedPath(), "/xeninfo/", 1)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid section", h.logger)
		return
	}
	bindings, ok := h.globals.Section(params[0])
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "unknown section", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, bindings, h.logger)
}

// Selector invokes an IS2 selector. The body is an optional JSON array of
// positional arguments.
func (h *Handler) Selector(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.legacy == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "legacy api not configured", h.logger)
		return
	}
	params, ok := pathParams(r.URL.EscapedPath(), "/is2/", 2)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "expected /is2/{object}/{selector}", h.logger)
		return
	}
	args, err := decodeArgs(nethttp.MaxBytesReader(w, r.Body, maxArgsBody))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "arguments must be a JSON array", h.logger)
		return
	}

	object, selector := params[0], params[1]
	result, found := h.legacy.Call(object, selector, args...)
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "selector not found", h.logger)
		return
	}
	logging.Debug(loggerFromContext(r, h.logger), "legacy selector served",
		logging.FieldObject, object,
		logging.FieldSelector, selector,
	)
	writeJSON(w, nethttp.StatusOK, map[string]any{"result": result}, h.logger)
}

// pathParams splits the escaped path after prefix into exactly n non-empty segments.
func pathParams(path, prefix string, n int) ([]string, bool) {
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.Split(rest, "/")
	if len(parts) != n {
		return nil, false
	}
	for i, part := range parts {
		decoded, err := url.PathUnescape(part)
		if err != nil || strings.TrimSpace(decoded) == "" {
			return nil, false
		}
		parts[i] = decoded
	}
	return parts, true
}

func decodeArgs(body io.Reader) ([]any, error) {
	if body == nil {
		return nil, nil
	}
	var args []any
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return args, nil
}
