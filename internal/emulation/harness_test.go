package emulation

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/providers"
	"github.com/preston-bernstein/widgetbridge/internal/transport"
)

func TestFixturesDecode(t *testing.T) {
	for _, name := range []string{"system", "resources", "weather_sf_metric", "weather_sf_imperial", "weather_london_metric", "weather_london_imperial"} {
		raw, err := Fixture(name)
		if err != nil {
			t.Fatalf("%s: expected fixture, got %v", name, err)
		}
		var v map[string]any
		if err := json.Unmarshal(raw, &v); err != nil {
			t.Fatalf("%s: expected JSON object, got %v", name, err)
		}
	}
	if _, err := Fixture("missing"); err == nil {
		t.Fatalf("expected missing fixture to error")
	}
}

func TestParseCityAndUnits(t *testing.T) {
	cases := map[string]City{"sf": CitySanFrancisco, "san_francisco": CitySanFrancisco, " London ": CityLondon}
	for raw, want := range cases {
		got, err := ParseCity(raw)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s (%v)", raw, want, got, err)
		}
	}
	if _, err := ParseCity("paris"); err == nil {
		t.Fatalf("expected unknown city to error")
	}
	if u, _ := ParseUnits(""); u != UnitsMetric {
		t.Fatalf("expected empty units to be metric, got %s", u)
	}
	if _, err := ParseUnits("kelvin"); err == nil {
		t.Fatalf("expected unknown units to error")
	}
}

func TestHarnessLoadFeedsNormalizer(t *testing.T) {
	set := providers.NewSet(providers.Options{Location: time.UTC})
	h := NewHarness(set.Registry, UnitsMetric, nil)

	if err := h.Load(CitySanFrancisco); err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}

	w := set.Weather.Snapshot()
	if w.Metadata.Address.City != "San Francisco" || !w.Units.IsMetric {
		t.Fatalf("unexpected weather metadata %+v", w.Metadata)
	}
	// Sunset carries Z and the device is UTC, so hourly timestamps stay put.
	want := time.Date(2020, 5, 14, 9, 0, 0, 0, time.UTC)
	if len(w.Hourly) != 3 || !w.Hourly[0].Timestamp.Equal(want) {
		t.Fatalf("expected first hourly at %v, got %+v", want, w.Hourly)
	}
	if len(w.Now.AirQuality.Pollutants) != 3 {
		t.Fatalf("expected pollutants keyed by name to become a list, got %+v", w.Now.AirQuality.Pollutants)
	}
	if !set.System.Snapshot().IsTwentyFourHourTimeEnabled || set.Resources.Snapshot().Battery.Percentage != 76 {
		t.Fatalf("expected system and resources fixtures to load")
	}
}

func TestHarnessLoadImperialLondon(t *testing.T) {
	set := providers.NewSet(providers.Options{Location: time.UTC})
	if err := NewHarness(set.Registry, UnitsImperial, nil).Load(CityLondon); err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	w := set.Weather.Snapshot()
	if w.Units.IsMetric || w.Units.Speed != "mph" || w.Now.Temperature.Current != 56 {
		t.Fatalf("unexpected imperial snapshot units=%+v current=%v", w.Units, w.Now.Temperature.Current)
	}
}

type failingDispatcher struct{ err error }

func (f failingDispatcher) DispatchUpdate(domain.Namespace, json.RawMessage) error { return f.err }

func TestHarnessLoadPropagatesErrors(t *testing.T) {
	h := NewHarness(failingDispatcher{err: errors.New("rejected")}, UnitsMetric, nil)
	if err := h.Load(CityLondon); err == nil {
		t.Fatalf("expected dispatch error to surface")
	}
}

type countingDispatcher struct {
	mu    sync.Mutex
	calls int
	done  chan struct{}
}

func (c *countingDispatcher) DispatchUpdate(domain.Namespace, json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.calls == 3 {
		close(c.done)
	}
	return nil
}

func TestReplayerRunsImmediatelyAndReportsStatus(t *testing.T) {
	d := &countingDispatcher{done: make(chan struct{})}
	r := NewReplayer(NewHarness(d, UnitsMetric, nil), CitySanFrancisco, nil, nil, time.Hour)
	if r.Status().IsReady() {
		t.Fatalf("expected replayer not ready before start")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := r.Start(ctx); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	defer r.Stop(context.Background())

	select {
	case <-d.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected first replay to run on start")
	}

	deadline := time.Now().Add(2 * time.Second)
	for !r.Status().IsReady() {
		if time.Now().After(deadline) {
			t.Fatalf("expected replayer to become ready, status %+v", r.Status())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestReplayerStatusTracksFailures(t *testing.T) {
	r := NewReplayer(NewHarness(failingDispatcher{err: errors.New("nope")}, UnitsMetric, nil), CityLondon, nil, nil, 0)
	if r.interval != defaultReplayInterval {
		t.Fatalf("expected default interval, got %v", r.interval)
	}
	r.replayOnce()
	r.replayOnce()

	st := r.Status()
	if st.ConsecutiveFailures != 2 || st.LastError == "" || st.IsReady() {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestLoopbackConnAnswersRequests(t *testing.T) {
	b := transport.NewBridge(nil, nil)
	conn := NewLoopbackConn(b, nil)
	b.Attach(conn)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	reply, err := b.Request(ctx, transport.Message{Namespace: domain.NamespaceSystem, FunctionDefinition: transport.FuncLockDevice})
	if err != nil {
		t.Fatalf("expected loopback reply, got %v", err)
	}
	if string(reply) != "{}" {
		t.Fatalf("expected empty object reply, got %s", reply)
	}
	if err := b.Send(transport.Message{Namespace: domain.NamespaceSystem, FunctionDefinition: transport.FuncLog, Data: map[string]string{"message": "hi"}}, nil); err != nil {
		t.Fatalf("expected fire-and-forget send, got %v", err)
	}

	sent := conn.Sent()
	if len(sent) != 2 || sent[1].CallbackID != transport.NoCallback || b.Pending() != 0 {
		t.Fatalf("unexpected loopback traffic %+v pending=%d", sent, b.Pending())
	}
}
