package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/widgetbridge/internal/metrics"
)

// NewTelemetryRecorder builds a recorder backed by a Prometheus-only meter
// provider. scrape returns the current exposition text. The provider is shut
// down when the test ends.
func NewTelemetryRecorder(t *testing.T) (rec *metrics.Recorder, scrape func() string) {
	t.Helper()
	rec, handler, shutdown, err := metrics.Setup(context.Background(), metrics.TelemetryConfig{Enabled: true})
	if err != nil {
		t.Fatalf("telemetry setup: %v", err)
	}
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	return rec, func() string {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		return rr.Body.String()
	}
}
