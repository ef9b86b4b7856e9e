package metrics

import (
	"sync"
	"time"
)

type namespaceStats struct {
	updates           int
	ignored           int
	observerFaults    int
	lastUpdateLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about update traffic and
// mirrors them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*namespaceStats
	messages  map[string]int
	callbacks map[string]int
	legacy    map[string]int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:     make(map[string]*namespaceStats),
		messages:  make(map[string]int),
		callbacks: make(map[string]int),
		legacy:    make(map[string]int),
		otel:      otel,
	}
}

// RecordUpdate counts a data update for a namespace. Ignored updates left the
// previous snapshot in place.
func (r *Recorder) RecordUpdate(namespace string, duration time.Duration, applied bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(namespace)
	if applied {
		stats.updates++
		stats.lastUpdateLatency = duration
	} else {
		stats.ignored++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpdate(namespace, duration, applied)
	}
}

// RecordObserverFault counts an observer that panicked during fan-out.
func (r *Recorder) RecordObserverFault(namespace string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureStats(namespace).observerFaults++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordObserverFault(namespace)
	}
}

// RecordNativeMessage counts an envelope crossing the bridge.
func (r *Recorder) RecordNativeMessage(direction, kind string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.messages[direction+"/"+kind]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordNativeMessage(direction, kind)
	}
}

// RecordCallback counts a callback reply as resolved or dropped.
func (r *Recorder) RecordCallback(resolved bool) {
	if r == nil {
		return
	}
	result := "dropped"
	if resolved {
		result = "resolved"
	}

	r.mu.Lock()
	r.callbacks[result]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCallback(result)
	}
}

// RecordLegacyCall counts a legacy selector call and whether it resolved.
func (r *Recorder) RecordLegacyCall(object string, found bool) {
	if r == nil {
		return
	}
	result := "miss"
	if found {
		result = "hit"
	}

	r.mu.Lock()
	r.legacy[result]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLegacyCall(object, result)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordReplayCycle tracks emulation replay cycles and errors.
func (r *Recorder) RecordReplayCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordReplay(duration, err)
}

// Snapshot is a copy of the stats for one namespace.
type Snapshot struct {
	Updates           int
	Ignored           int
	ObserverFaults    int
	LastUpdateLatency time.Duration
}

// Snapshot returns a copy of the current stats for the namespace.
func (r *Recorder) Snapshot(namespace string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[namespace]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Updates:           stats.updates,
		Ignored:           stats.ignored,
		ObserverFaults:    stats.observerFaults,
		LastUpdateLatency: stats.lastUpdateLatency,
	}
}

// NativeMessages returns how many envelopes of kind crossed in direction.
func (r *Recorder) NativeMessages(direction, kind string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.messages[direction+"/"+kind]
}

// Callbacks returns the resolved and dropped callback counts.
func (r *Recorder) Callbacks() (resolved, dropped int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callbacks["resolved"], r.callbacks["dropped"]
}

// LegacyCalls returns the hit and miss counts for legacy selector calls.
func (r *Recorder) LegacyCalls() (hits, misses int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.legacy["hit"], r.legacy["miss"]
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(namespace string) *namespaceStats {
	stats, ok := r.stats[namespace]
	if !ok {
		stats = &namespaceStats{}
		r.stats[namespace] = stats
	}
	return stats
}
