package metrics

import (
	"sync"
	"time"
)

type upstreamStats struct {
	calls           int
	errors          int
	cacheHits       int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about upstream calls and cache use.
// When built by Setup it also forwards to OpenTelemetry instruments.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*upstreamStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*upstreamStats),
		otel:  otel,
	}
}

// RecordUpstreamAttempt counts one call to an upstream source (schedule API, stream redirect,
// manifest) and stores its latency.
func (r *Recorder) RecordUpstreamAttempt(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.update(source, func(s *upstreamStats) {
		s.calls++
		s.lastCallLatency = duration
		if err != nil {
			s.errors++
		}
	})
	if r.otel != nil {
		r.otel.recordUpstreamAttempt(source, duration, err)
	}
}

// RecordCacheHit counts a request answered from an in-process cache.
func (r *Recorder) RecordCacheHit(cache string) {
	if r == nil {
		return
	}

	r.update(cache, func(s *upstreamStats) { s.cacheHits++ })
	if r.otel != nil {
		r.otel.recordCacheHit(cache)
	}
}

// UpstreamCalls returns the total attempts recorded for a source.
func (r *Recorder) UpstreamCalls(source string) int {
	return r.Snapshot(source).Calls
}

// UpstreamErrors returns the total failed attempts recorded for a source.
func (r *Recorder) UpstreamErrors(source string) int {
	return r.Snapshot(source).Errors
}

// CacheHits returns the number of hits recorded for a cache.
func (r *Recorder) CacheHits(cache string) int {
	return r.Snapshot(cache).CacheHits
}

// LastCallLatency returns the last recorded latency for a source.
func (r *Recorder) LastCallLatency(source string) time.Duration {
	return r.Snapshot(source).LastCallLatency
}

// Snapshot is a copy of the counters kept for one name.
type Snapshot struct {
	Calls           int
	Errors          int
	CacheHits       int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(name string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stats[name]
	if !ok || s == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           s.calls,
		Errors:          s.errors,
		CacheHits:       s.cacheHits,
		LastCallLatency: s.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

func (r *Recorder) update(name string, fn func(*upstreamStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stats[name]
	if !ok {
		s = &upstreamStats{}
		r.stats[name] = s
	}
	fn(s)
}
