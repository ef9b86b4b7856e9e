package app

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/compat/is2"
	"github.com/preston-bernstein/widgetbridge/internal/compat/xeninfo"
	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/emulation"
	"github.com/preston-bernstein/widgetbridge/internal/metrics"
	"github.com/preston-bernstein/widgetbridge/internal/snapshots"
	"github.com/preston-bernstein/widgetbridge/internal/testutil"
	"github.com/preston-bernstein/widgetbridge/internal/transport"
)

func newTestRuntime(t *testing.T) (*Runtime, *metrics.Recorder) {
	t.Helper()
	rec := metrics.NewRecorder()
	logger, _ := testutil.NewBufferLogger()
	rt := New(Options{
		Location: time.UTC,
		Logger:   logger,
		Metrics:  rec,
		Now:      testutil.FixedClock(time.Date(2020, 5, 14, 12, 0, 0, 0, time.UTC)),
	})
	return rt, rec
}

func TestHostUpdatesReachEveryConsumer(t *testing.T) {
	rt, _ := newTestRuntime(t)

	update := []byte(`{"type":"dataupdate","data":{"namespace":"resources","payload":{"battery":{"percentage":42,"state":1}}}}`)
	if err := rt.Bridge.HandleInbound(update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rt.Providers.Resources.Revision(); got != 1 {
		t.Fatalf("expected resources revision 1, got %d", got)
	}
	if got, ok := rt.IS2.Call(is2.ObjectSystem, "batteryPercent"); !ok || got != float64(42) {
		t.Fatalf("expected batteryPercent 42, got %v %v", got, ok)
	}
	if got, ok := rt.Globals.Store().Get("batteryPercent"); !ok || got != float64(42) {
		t.Fatalf("expected batteryPercent global 42, got %v %v", got, ok)
	}
}

func TestEmulationDrivesProvidersAndAnswersActions(t *testing.T) {
	rt, _ := newTestRuntime(t)
	emu := rt.Emulate(emulation.CitySanFrancisco, emulation.UnitsMetric, time.Minute)
	defer emu.Close()

	if !rt.Bridge.Connected() {
		t.Fatalf("expected loopback to attach")
	}
	if err := emu.Harness.Load(emulation.CitySanFrancisco); err != nil {
		t.Fatalf("load fixtures: %v", err)
	}

	if got, ok := rt.IS2.Call(is2.ObjectWeather, "currentTemperature"); !ok || got != float64(17) {
		t.Fatalf("expected current temperature 17, got %v %v", got, ok)
	}
	global, ok := rt.Globals.Store().Get("weather")
	w, isWeather := global.(xeninfo.Weather)
	if !ok || !isWeather || w.City != "San Francisco" {
		t.Fatalf("expected weather global for San Francisco, got %v %v", global, ok)
	}

	if _, ok := rt.IS2.Call(is2.ObjectSystem, "lockDevice"); !ok {
		t.Fatalf("expected lockDevice to resolve")
	}
	sent := emu.Conn.Sent()
	if len(sent) == 0 {
		t.Fatalf("expected lockDevice to reach the loopback host")
	}
	last := sent[len(sent)-1]
	if last.Payload.Namespace != domain.NamespaceSystem || last.Payload.FunctionDefinition != transport.FuncLockDevice {
		t.Fatalf("unexpected message %+v", last.Payload)
	}
	if rt.Bridge.Pending() != 0 {
		t.Fatalf("expected loopback replies to clear pending callbacks, got %d", rt.Bridge.Pending())
	}
}

func TestWarningsForwardToHostLog(t *testing.T) {
	rt, _ := newTestRuntime(t)
	emu := rt.Emulate(emulation.CityLondon, emulation.UnitsImperial, time.Minute)
	defer emu.Close()

	rt.Logger.Warn("widget misbehaved")

	var found bool
	for _, env := range emu.Conn.Sent() {
		if env.Payload.FunctionDefinition != transport.FuncLog {
			continue
		}
		data, err := json.Marshal(env.Payload.Data)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if strings.Contains(string(data), "widget misbehaved") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a log message to reach the host")
	}
}

func TestSnapshotsCaptureAcceptedHostUpdates(t *testing.T) {
	dir := t.TempDir()
	logger, _ := testutil.NewBufferLogger()
	rt := New(Options{Location: time.UTC, Logger: logger, Snapshots: snapshots.NewWriter(dir, 3)})

	accepted := []byte(`{"type":"dataupdate","data":{"namespace":"system","payload":{"deviceName":"Desk"}}}`)
	if err := rt.Bridge.HandleInbound(accepted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Weather without now/sun/moon is ignored, so nothing is captured for it.
	_ = rt.Bridge.HandleInbound([]byte(`{"type":"dataupdate","data":{"namespace":"weather","payload":{}}}`))

	captured, err := snapshots.NewFSStore(dir).Captured()
	if err != nil {
		t.Fatalf("captured: %v", err)
	}
	if len(captured) != 1 || captured[0] != domain.NamespaceSystem {
		t.Fatalf("expected only the system update captured, got %v", captured)
	}
}
