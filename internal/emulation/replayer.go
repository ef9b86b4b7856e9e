package emulation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/preston-bernstein/widgetbridge/internal/logging"
	"github.com/preston-bernstein/widgetbridge/internal/metrics"
)

const defaultReplayInterval = 30 * time.Second

// Status describes the recent health of the replay loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether fixtures have been pushed and replay is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Replayer pushes a city's fixtures on start and then on an interval.
type Replayer struct {
	harness   *Harness
	city      City
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	scheduler *gocron.Scheduler

	startMu sync.Mutex
	started bool

	statusMu sync.RWMutex
	status   Status
}

func NewReplayer(h *Harness, city City, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Replayer {
	if interval <= 0 {
		interval = defaultReplayInterval
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Replayer{
		harness:   h,
		city:      city,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		scheduler: s,
	}
}

// Start schedules the replay job. The first run happens right away.
func (r *Replayer) Start(ctx context.Context) error {
	r.startMu.Lock()
	defer r.startMu.Unlock()
	if r.started {
		return nil
	}

	if _, err := r.scheduler.Every(r.interval).Do(r.replayOnce); err != nil {
		return err
	}
	r.scheduler.StartAsync()
	r.started = true
	logging.Info(r.logger, "emulation replay started",
		"city", string(r.city),
		logging.FieldDurationMS, r.interval.Milliseconds(),
	)

	go func() {
		<-ctx.Done()
		_ = r.Stop(context.Background())
	}()
	return nil
}

// Stop halts the replay job.
func (r *Replayer) Stop(ctx context.Context) error {
	_ = ctx
	r.startMu.Lock()
	defer r.startMu.Unlock()
	if !r.started {
		return nil
	}
	r.scheduler.Stop()
	r.scheduler.Clear()
	r.started = false
	logging.Info(r.logger, "emulation replay stopped")
	return nil
}

func (r *Replayer) replayOnce() {
	start := time.Now()
	r.recordAttempt(start)
	err := r.harness.Load(r.city)
	r.metrics.RecordReplayCycle(time.Since(start), err)
	if err != nil {
		logging.Error(r.logger, "emulation replay failed", err, logging.FieldDurationMS, time.Since(start).Milliseconds())
		r.recordFailure(err, start)
		return
	}
	r.recordSuccess(start)
}

func (r *Replayer) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Replayer) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Replayer) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the replay loop's recent health.
func (r *Replayer) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}
