package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/app"
	"github.com/preston-bernstein/widgetbridge/internal/config"
	httpserver "github.com/preston-bernstein/widgetbridge/internal/http"
	"github.com/preston-bernstein/widgetbridge/internal/http/handlers"
	"github.com/preston-bernstein/widgetbridge/internal/http/middleware"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/metrics"
	"github.com/preston-bernstein/widgetbridge/internal/snapshots"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	runtime       *app.Runtime
	feeds         feedComponents
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	// baseCancel ends contexts of hijacked bridge sockets, which Shutdown does not track.
	baseCancel context.CancelFunc
}

// New constructs a server wired for the configured bridge mode.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	loc, err := cfg.Location()
	if err != nil {
		logger.Warn("timezone unavailable, using process zone", "timezone", cfg.Timezone, "error", err)
		loc = time.Local
	}
	var capture *snapshots.Writer
	if cfg.Snapshots.Enabled() {
		capture = snapshots.NewWriter(cfg.Snapshots.Dir, cfg.Snapshots.Retention)
		logger.Info("capturing host updates", "dir", cfg.Snapshots.Dir, "retention", cfg.Snapshots.Retention)
	}
	rt := app.New(app.Options{
		Location:     loc,
		Logger:       logger,
		ForwardLevel: logging.ParseLevel(cfg.Log.ForwardLevel),
		Metrics:      recorder,
		Snapshots:    capture,
	})
	feeds := newFeedFactory(logger).build(cfg, rt)

	baseCtx, baseCancel := context.WithCancel(context.Background())
	httpSrv := buildHTTPServer(cfg, rt, feeds, logger, recorder, baseCtx)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		runtime:       rt,
		feeds:         feeds,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		baseCancel:    baseCancel,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, feed Feed) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		feeds:      feedComponents{name: "stub", feed: feed},
		httpServer: httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, rt *app.Runtime, feeds feedComponents, logger *slog.Logger, recorder *metrics.Recorder, baseCtx context.Context) httpServer {
	handler := handlers.NewHandler(handlers.Deps{
		Providers: rt.Providers.Registry,
		Globals:   rt.Globals.Store(),
		Legacy:    rt.IS2,
		Status:    feeds.status,
	}, rt.Logger.With(logging.FieldComponent, "http"))
	router := httpserver.NewRouter(handler, feeds.bridgeHandler, cfg.Bridge.Path)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		BaseContext:  func(net.Listener) context.Context { return baseCtx },
	}

	return netHTTPServer{srv: srv}
}

// Run starts the feed and HTTP servers, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.startFeed(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startFeed(ctx context.Context) {
	if s.feeds.feed == nil {
		if s.logger != nil {
			s.logger.Info("waiting for native host", slog.String("path", s.cfg.Bridge.Path))
		}
		return
	}
	if err := s.feeds.feed.Start(ctx); err != nil && s.logger != nil {
		s.logger.Error("failed to start feed", "feed", s.feeds.name, "error", err)
	}
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()), slog.String("feed", s.feeds.name))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.feeds.feed != nil {
		if err := s.feeds.feed.Stop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("failed to stop feed", "feed", s.feeds.name, "error", err)
		}
	}
	if s.feeds.emulation != nil {
		s.feeds.emulation.Close()
	}

	if s.baseCancel != nil {
		s.baseCancel()
	}
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig(cfg.Metrics)

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              cfg.Metrics.ScrapeAddr(),
				Handler:           mux,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Runtime exposes the wired runtime (useful for tests).
func (s *Server) Runtime() *app.Runtime {
	return s.runtime
}
