package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/widgetbridge/internal/http/requestutil"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
)

const (
	defaultWriteWait    = 10 * time.Second
	defaultPingInterval = 54 * time.Second
	outboundBuffer      = 32
)

var errConnClosed = errors.New("bridge connection closed")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// SocketConfig tunes keepalive on a bridge socket.
type SocketConfig struct {
	PingInterval time.Duration
	WriteWait    time.Duration
}

func (c SocketConfig) withDefaults() SocketConfig {
	if c.PingInterval <= 0 {
		c.PingInterval = defaultPingInterval
	}
	if c.WriteWait <= 0 {
		c.WriteWait = defaultWriteWait
	}
	return c
}

// pongWait allows one missed ping before the read deadline expires.
func (c SocketConfig) pongWait() time.Duration {
	return c.PingInterval * 10 / 9
}

// socketConn hands envelopes to the single writer goroutine of one socket.
// Close ends the session that owns it.
type socketConn struct {
	out    chan Outbound
	done   <-chan struct{}
	cancel context.CancelFunc
}

func (c *socketConn) Close() error {
	c.cancel()
	return nil
}

func (c *socketConn) WriteEnvelope(env Outbound) error {
	select {
	case c.out <- env:
		return nil
	case <-c.done:
		return errConnClosed
	}
}

// Handler upgrades host connections and serves them until they close. A new
// connection replaces the one attached before it and ends that session.
func (b *Bridge) Handler(cfg SocketConfig) http.Handler {
	cfg = cfg.withDefaults()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		remote := requestutil.ClientIP(r)
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Warn(b.logger, "bridge upgrade failed", "error", err, logging.FieldRemote, remote)
			return
		}
		err = b.serveSocket(r.Context(), conn, cfg)
		logClosed(b.logger, err, remote)
	})
}

// serveSocket attaches conn to the bridge and reads envelopes until the socket
// fails or ctx ends. Inbound envelopes are handled one at a time.
func (b *Bridge) serveSocket(ctx context.Context, conn *websocket.Conn, cfg SocketConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(cfg.pongWait())); err != nil {
		_ = conn.Close()
		return err
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(cfg.pongWait()))
	})

	sc := &socketConn{out: make(chan Outbound, outboundBuffer), done: ctx.Done(), cancel: cancel}
	detach := b.Attach(sc)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		b.writeLoop(ctx, cancel, conn, sc, cfg)
	}()

	defer func() {
		detach()
		cancel()
		<-writerDone
		_ = conn.Close()
	}()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		// Errors are logged by HandleInbound; a bad envelope does not end the session.
		_ = b.HandleInbound(data)
	}
}

func (b *Bridge) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, sc *socketConn, cfg SocketConfig) {
	ticker := time.NewTicker(cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(cfg.WriteWait))
			return
		case env := <-sc.out:
			if err := conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait)); err != nil {
				cancel()
				return
			}
			if err := conn.WriteJSON(env); err != nil {
				logging.Warn(b.logger, "bridge write failed", "error", err)
				cancel()
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait)); err != nil {
				cancel()
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				cancel()
				return
			}
		}
	}
}

func logClosed(logger *slog.Logger, err error, remote string) {
	if err == nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		logging.Info(logger, "bridge connection closed", logging.FieldRemote, remote)
		return
	}
	logging.Warn(logger, "bridge connection ended", "error", err, logging.FieldRemote, remote)
}
