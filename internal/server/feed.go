package server

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/transport"
)

// Feed is a background source of host updates the server starts and stops.
type Feed interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// dialFeed runs a transport.Dialer until stopped.
type dialFeed struct {
	run    func(ctx context.Context) error
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func newDialFeed(d *transport.Dialer, logger *slog.Logger) *dialFeed {
	return &dialFeed{run: d.Run, logger: logger}
}

func (f *dialFeed) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	f.cancel, f.done = cancel, done

	go func() {
		defer close(done)
		if err := f.run(ctx); err != nil {
			logging.Error(f.logger, "bridge dialer stopped", err)
		}
	}()
	return nil
}

func (f *dialFeed) Stop(ctx context.Context) error {
	f.mu.Lock()
	cancel, done := f.cancel, f.done
	f.mu.Unlock()
	if done == nil {
		return nil
	}

	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Join(errors.New("bridge dialer did not stop"), ctx.Err())
	}
}
