// Package emulation drives the providers from embedded sample payloads so
// widgets can be developed without a native host.
package emulation

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/providers"
)

// Dispatcher routes a payload to its provider. providers.Registry satisfies it.
type Dispatcher interface {
	DispatchUpdate(ns domain.Namespace, raw json.RawMessage) error
}

// Harness pushes fixtures through the same path host updates take.
type Harness struct {
	dispatcher Dispatcher
	units      Units
	logger     *slog.Logger
}

var _ Dispatcher = (*providers.Registry)(nil)

func NewHarness(d Dispatcher, units Units, logger *slog.Logger) *Harness {
	if units == "" {
		units = UnitsMetric
	}
	return &Harness{dispatcher: d, units: units, logger: logger}
}

// Load pushes the system, resources and weather fixtures for city once.
// System goes first so projections see the clock format before weather.
func (h *Harness) Load(city City) error {
	weather, err := WeatherFixture(city, h.units)
	if err != nil {
		return err
	}
	system, err := Fixture("system")
	if err != nil {
		return err
	}
	resources, err := Fixture("resources")
	if err != nil {
		return err
	}

	updates := []struct {
		ns      domain.Namespace
		payload []byte
	}{
		{domain.NamespaceSystem, system},
		{domain.NamespaceResources, resources},
		{domain.NamespaceWeather, weather},
	}
	for _, u := range updates {
		if err := h.dispatcher.DispatchUpdate(u.ns, u.payload); err != nil {
			return fmt.Errorf("emulate %s: %w", u.ns, err)
		}
	}
	logging.Debug(h.logger, "emulation fixtures loaded", "city", string(city), "units", string(h.units))
	return nil
}

// CaptureSource yields previously captured host payloads. snapshots.FSStore satisfies it.
type CaptureSource interface {
	Captured() ([]domain.Namespace, error)
	Latest(ns domain.Namespace) (json.RawMessage, error)
}

// LoadCaptured pushes the newest capture of every captured namespace,
// system first, and returns how many namespaces were loaded.
func (h *Harness) LoadCaptured(src CaptureSource) (int, error) {
	captured, err := src.Captured()
	if err != nil {
		return 0, err
	}
	ordered := make([]domain.Namespace, 0, len(captured))
	for _, ns := range captured {
		if ns == domain.NamespaceSystem {
			ordered = append([]domain.Namespace{ns}, ordered...)
			continue
		}
		ordered = append(ordered, ns)
	}

	for _, ns := range ordered {
		raw, err := src.Latest(ns)
		if err != nil {
			return 0, err
		}
		if err := h.dispatcher.DispatchUpdate(ns, raw); err != nil {
			return 0, fmt.Errorf("replay %s: %w", ns, err)
		}
	}
	logging.Debug(h.logger, "captured payloads loaded", "namespaces", len(ordered))
	return len(ordered), nil
}
