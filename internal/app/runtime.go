// Package app assembles providers, legacy shims and the native bridge into
// one runtime shared by the server and the CLI.
package app

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/compat/is2"
	"github.com/preston-bernstein/widgetbridge/internal/compat/xeninfo"
	"github.com/preston-bernstein/widgetbridge/internal/emulation"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/metrics"
	"github.com/preston-bernstein/widgetbridge/internal/providers"
	"github.com/preston-bernstein/widgetbridge/internal/snapshots"
	"github.com/preston-bernstein/widgetbridge/internal/transport"
)

// Options configures a Runtime.
type Options struct {
	// Location is the device zone. Defaults to time.Local.
	Location *time.Location
	// Logger is the base logger. The bridge logs through it directly; every
	// other component also forwards to the host log at ForwardLevel and above.
	Logger       *slog.Logger
	ForwardLevel slog.Level
	Metrics      *metrics.Recorder
	Now          func() time.Time
	// Snapshots, when set, captures every accepted host update to disk.
	Snapshots *snapshots.Writer
}

// Runtime is the wired middleware.
type Runtime struct {
	Logger    *slog.Logger
	Bridge    *transport.Bridge
	Providers *providers.Set
	IS2       *is2.Dispatcher
	Globals   *xeninfo.GlobalsSink
	XenInfo   *xeninfo.Shim

	baseLogger *slog.Logger
	metrics    *metrics.Recorder
}

func New(opts Options) *Runtime {
	base := opts.Logger
	if base == nil {
		base = logging.NewLogger(logging.Config{})
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	bridge := transport.NewBridge(base.With(logging.FieldComponent, "transport"), opts.Metrics)
	logger := logging.NewForwardingLogger(base, bridge, opts.ForwardLevel)

	set := providers.NewSet(providers.Options{
		Location: opts.Location,
		Logger:   logger,
		Metrics:  opts.Metrics,
	})
	capture := opts.Snapshots.Capture(set.Registry.DispatchUpdate, base.With(logging.FieldComponent, "snapshots"))
	bridge.SetUpdateHook(transport.UpdateHook(capture))

	dispatcher := is2.NewDispatcher(is2.Options{
		Providers: set,
		Actions:   transport.NewActions(bridge),
		Location:  opts.Location,
		Logger:    logger.With(logging.FieldComponent, "is2"),
		Metrics:   opts.Metrics,
	})

	xenLogger := logger.With(logging.FieldComponent, "xeninfo")
	globals := xeninfo.NewGlobalsSink(nil, xenLogger)
	shim := xeninfo.NewShim(xeninfo.Options{
		Providers: set,
		Sink:      globals,
		Location:  opts.Location,
		Logger:    xenLogger,
		Now:       opts.Now,
	})

	return &Runtime{
		Logger:     logger,
		Bridge:     bridge,
		Providers:  set,
		IS2:        dispatcher,
		Globals:    globals,
		XenInfo:    shim,
		baseLogger: base,
		metrics:    opts.Metrics,
	}
}

// Emulation is the fixture harness attached to a runtime.
type Emulation struct {
	Harness  *emulation.Harness
	Replayer *emulation.Replayer
	Conn     *emulation.LoopbackConn
	detach   func()
}

// Close detaches the loopback connection.
func (e *Emulation) Close() {
	if e.detach != nil {
		e.detach()
	}
}

// Emulate attaches a loopback host and prepares fixture replay for city.
// Nothing is pushed until the harness or replayer runs.
func (r *Runtime) Emulate(city emulation.City, units emulation.Units, interval time.Duration) *Emulation {
	logger := r.Logger.With(logging.FieldComponent, "emulation")
	conn := emulation.NewLoopbackConn(r.Bridge, r.baseLogger.With(logging.FieldComponent, "loopback"))
	harness := emulation.NewHarness(r.Providers.Registry, units, logger)
	return &Emulation{
		Harness:  harness,
		Replayer: emulation.NewReplayer(harness, city, logger, r.metrics, interval),
		Conn:     conn,
		detach:   r.Bridge.Attach(conn),
	}
}
