package transport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/widgetbridge/internal/logging"
)

const (
	defaultInitialBackoff = 500 * time.Millisecond
	defaultMaxBackoff     = 30 * time.Second
)

// DialConfig configures the outbound connection to the host.
type DialConfig struct {
	URL            string
	Socket         SocketConfig
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Dialer keeps the bridge connected to a host that listens for us.
type Dialer struct {
	bridge  *Bridge
	cfg     DialConfig
	logger  *slog.Logger
	breaker *gobreaker.CircuitBreaker
	dial    func(ctx context.Context, url string) (*websocket.Conn, error)
}

func NewDialer(b *Bridge, cfg DialConfig, logger *slog.Logger) *Dialer {
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = defaultMaxBackoff
	}
	cfg.Socket = cfg.Socket.withDefaults()

	return &Dialer{
		bridge: b,
		cfg:    cfg,
		logger: logger,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "native-bridge",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     cfg.MaxBackoff,
		}),
		dial: func(ctx context.Context, url string) (*websocket.Conn, error) {
			conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
			return conn, err
		},
	}
}

// Run connects, serves the socket and reconnects after it drops. It returns
// nil once ctx ends.
func (d *Dialer) Run(ctx context.Context) error {
	for {
		conn, err := d.connect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		logging.Info(d.logger, "bridge dialed", logging.FieldRemote, d.cfg.URL)

		err = d.bridge.serveSocket(ctx, conn, d.cfg.Socket)
		if ctx.Err() != nil {
			return nil
		}
		logClosed(d.logger, err, d.cfg.URL)
	}
}

func (d *Dialer) connect(ctx context.Context) (*websocket.Conn, error) {
	var conn *websocket.Conn
	op := func() error {
		res, err := d.breaker.Execute(func() (interface{}, error) {
			return d.dial(ctx, d.cfg.URL)
		})
		if err != nil {
			return err
		}
		conn = res.(*websocket.Conn)
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = d.cfg.InitialBackoff
	policy.MaxInterval = d.cfg.MaxBackoff
	policy.MaxElapsedTime = 0

	notify := func(err error, wait time.Duration) {
		logging.Warn(d.logger, "bridge dial failed",
			"error", err,
			"retry_in_ms", wait.Milliseconds(),
			"breaker", d.breaker.State().String(),
			logging.FieldRemote, d.cfg.URL,
		)
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(policy, ctx), notify); err != nil {
		return nil, fmt.Errorf("dial %s: %w", d.cfg.URL, err)
	}
	return conn, nil
}
