package emulation

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/providers"
	"github.com/preston-bernstein/widgetbridge/internal/snapshots"
)

type orderDispatcher struct{ order []domain.Namespace }

func (o *orderDispatcher) DispatchUpdate(ns domain.Namespace, _ json.RawMessage) error {
	o.order = append(o.order, ns)
	return nil
}

type stubSource struct {
	captured []domain.Namespace
	err      error
}

func (s stubSource) Captured() ([]domain.Namespace, error) { return s.captured, s.err }

func (s stubSource) Latest(domain.Namespace) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func TestLoadCapturedReplaysNewestPayloads(t *testing.T) {
	dir := t.TempDir()
	w := snapshots.NewWriter(dir, 5)
	weather, err := WeatherFixture(CityLondon, UnitsImperial)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	if err := w.Write(domain.NamespaceWeather, weather); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Write(domain.NamespaceResources, []byte(`{"battery":{"percentage":64}}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	set := providers.NewSet(providers.Options{Location: time.UTC})
	h := NewHarness(set.Registry, UnitsMetric, nil)
	n, err := h.LoadCaptured(snapshots.NewFSStore(dir))
	if err != nil {
		t.Fatalf("expected replay to succeed, got %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 namespaces replayed, got %d", n)
	}
	if city := set.Weather.Snapshot().Metadata.Address.City; city != "London" {
		t.Fatalf("expected London weather, got %q", city)
	}
	if pct := set.Resources.Snapshot().Battery.Percentage; pct != 64 {
		t.Fatalf("expected battery 64, got %v", pct)
	}
}

func TestLoadCapturedPushesSystemFirst(t *testing.T) {
	d := &orderDispatcher{}
	h := NewHarness(d, UnitsMetric, nil)
	src := stubSource{captured: []domain.Namespace{domain.NamespaceWeather, domain.NamespaceSystem, domain.NamespaceMedia}}
	if _, err := h.LoadCaptured(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.Namespace{domain.NamespaceSystem, domain.NamespaceWeather, domain.NamespaceMedia}
	for i := range want {
		if d.order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, d.order)
		}
	}
}

func TestLoadCapturedPropagatesErrors(t *testing.T) {
	h := NewHarness(&orderDispatcher{}, UnitsMetric, nil)
	if _, err := h.LoadCaptured(stubSource{err: errors.New("unreadable")}); err == nil {
		t.Fatalf("expected source error to surface")
	}

	h = NewHarness(failingDispatcher{err: errors.New("rejected")}, UnitsMetric, nil)
	if _, err := h.LoadCaptured(stubSource{captured: []domain.Namespace{domain.NamespaceMedia}}); err == nil {
		t.Fatalf("expected dispatch error to surface")
	}
}
