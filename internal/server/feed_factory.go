package server

import (
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/widgetbridge/internal/app"
	"github.com/preston-bernstein/widgetbridge/internal/config"
	"github.com/preston-bernstein/widgetbridge/internal/emulation"
	"github.com/preston-bernstein/widgetbridge/internal/http/handlers"
	"github.com/preston-bernstein/widgetbridge/internal/transport"
)

const (
	feedEmulation = "emulation"
	feedDial      = "dial"
	feedListen    = "listen"
)

// feedComponents is what drives the providers for one configuration.
type feedComponents struct {
	name string
	// feed is nil in listen mode; the host connects to bridgeHandler instead.
	feed          Feed
	bridgeHandler http.Handler
	status        handlers.StatusFunc
	emulation     *app.Emulation
}

// feedFactory picks fixture replay, an outbound bridge connection or an
// inbound WebSocket endpoint.
type feedFactory struct {
	logger *slog.Logger
}

func newFeedFactory(logger *slog.Logger) feedFactory {
	return feedFactory{logger: logger}
}

func (f feedFactory) build(cfg config.Config, rt *app.Runtime) feedComponents {
	socket := transport.SocketConfig{PingInterval: cfg.Bridge.PingInterval}

	switch {
	case cfg.Emulation.Enabled:
		city, err := emulation.ParseCity(cfg.Emulation.City)
		if err != nil {
			if f.logger != nil {
				f.logger.Warn("unknown emulation city, falling back", "city", cfg.Emulation.City, "fallback", string(emulation.CitySanFrancisco))
			}
			city = emulation.CitySanFrancisco
		}
		units, err := emulation.ParseUnits(cfg.Emulation.Units)
		if err != nil {
			units = emulation.UnitsMetric
		}
		emu := rt.Emulate(city, units, cfg.Emulation.ReplayInterval)
		return feedComponents{
			name:      feedEmulation,
			feed:      emu.Replayer,
			emulation: emu,
			status: func() (bool, string) {
				st := emu.Replayer.Status()
				return st.IsReady(), st.LastError
			},
		}
	case cfg.Bridge.Dial():
		dialer := transport.NewDialer(rt.Bridge, transport.DialConfig{
			URL:        cfg.Bridge.URL,
			Socket:     socket,
			MaxBackoff: cfg.Bridge.ReconnectMax,
		}, f.logger)
		return feedComponents{
			name:   feedDial,
			feed:   newDialFeed(dialer, f.logger),
			status: bridgeStatus(rt.Bridge),
		}
	default:
		return feedComponents{
			name:          feedListen,
			bridgeHandler: rt.Bridge.Handler(socket),
			status:        bridgeStatus(rt.Bridge),
		}
	}
}

func bridgeStatus(b *transport.Bridge) handlers.StatusFunc {
	return func() (bool, string) {
		if b.Connected() {
			return true, ""
		}
		return false, "native host not attached"
	}
}
