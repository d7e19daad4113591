// Package ratelimit implements a per-client sliding-window rate limiter
// with a soft-throttle tier and a hard-block tier.
//
// Each client key owns a window anchored at the first request after the
// previous reset. Within a window of W, the first N requests pass untouched,
// requests N+1..2N pass with an artificial delay as a backpressure signal,
// and anything beyond 2N is rejected until the window expires. The count
// keeps incrementing while blocked, so an abusive client stays blocked for
// the remainder of its window.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Outcome classifies an admission decision.
type Outcome int

const (
	Admitted Outcome = iota
	Throttled
	Blocked
)

// String returns the metric label for the outcome.
func (o Outcome) String() string {
	switch o {
	case Throttled:
		return "throttled"
	case Blocked:
		return "blocked"
	default:
		return "admitted"
	}
}

// Config holds the limiter knobs. Zero values fall back to the defaults
// below.
type Config struct {
	// Enabled turns the limiter on. When false, Admit always returns
	// Admitted and mutates no state.
	Enabled bool
	// MaxRequests is N: requests per window admitted without throttling.
	// The throttle tier spans N+1..2N; beyond 2N requests are blocked.
	MaxRequests int
	// Window is W, the fixed window duration.
	Window time.Duration
	// ThrottleDelay is the artificial delay imposed on throttled requests.
	ThrottleDelay time.Duration
}

const (
	defaultMaxRequests   = 5
	defaultWindow        = time.Minute
	defaultThrottleDelay = 500 * time.Millisecond
)

// window is the per-key state. Its mutex serializes the read-modify-write
// of (start, count) for one key; requests for different keys never contend.
type window struct {
	mu    sync.Mutex
	start time.Time
	count int
}

// Limiter tracks one window per client key. The key map is owned by the
// Limiter instance: no package-level state.
type Limiter struct {
	cfg     Config
	entries sync.Map // string -> *window

	// injectable for tests
	now   func() time.Time
	sleep func(time.Duration)
}

// New builds a Limiter, applying defaults for any zero Config field.
func New(cfg Config) *Limiter {
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = defaultMaxRequests
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultWindow
	}
	if cfg.ThrottleDelay <= 0 {
		cfg.ThrottleDelay = defaultThrottleDelay
	}
	return &Limiter{
		cfg:   cfg,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Admit records one request for the client key and returns the outcome.
// Throttled calls sleep for the configured delay before returning; the
// per-key lock is not held during the sleep, so parallel requests for the
// same key are counted while one of them is delayed.
func (l *Limiter) Admit(key string) Outcome {
	if !l.cfg.Enabled {
		return Admitted
	}

	v, _ := l.entries.LoadOrStore(key, &window{start: l.now()})
	w := v.(*window)

	w.mu.Lock()
	now := l.now()
	if now.Sub(w.start) > l.cfg.Window {
		w.start = now
		w.count = 0
	}
	w.count++
	count := w.count
	w.mu.Unlock()

	switch {
	case count <= l.cfg.MaxRequests:
		return Admitted
	case count <= 2*l.cfg.MaxRequests:
		l.sleep(l.cfg.ThrottleDelay)
		return Throttled
	default:
		return Blocked
	}
}

// Sweep drops windows whose last reset is older than three full window
// durations. Idle client keys would otherwise accumulate for the lifetime
// of the process.
func (l *Limiter) Sweep() {
	if !l.cfg.Enabled {
		return
	}
	cutoff := l.now().Add(-3 * l.cfg.Window)
	l.entries.Range(func(key, v any) bool {
		w := v.(*window)
		w.mu.Lock()
		stale := w.start.Before(cutoff)
		w.mu.Unlock()
		if stale {
			l.entries.Delete(key)
		}
		return true
	})
}

// Run sweeps stale windows periodically until ctx is cancelled. Intended to
// be launched as a background goroutine at startup.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(5 * l.cfg.Window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
