package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/widgetbridge/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. The bridge handler is mounted
// at bridgePath when non-nil.
func NewRouter(handler *handlers.Handler, bridge nethttp.Handler, bridgePath string) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/providers", handler.ProviderIndex)
	mux.HandleFunc("/providers/", handler.ProviderState)
	mux.HandleFunc("/xeninfo", handler.Globals)
	mux.HandleFunc("/xeninfo/", handler.GlobalsSection)
	mux.HandleFunc("/is2/", handler.Selector)
	if bridge != nil && bridgePath != "" {
		mux.Handle(bridgePath, bridge)
	}
	return mux
}
