// Package health serves liveness and readiness probes. Checks run on
// demand when a probe is hit; there is no background scheduling, which is
// enough for a single-process service with in-memory state.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/errors"
)

// CheckFunc reports nil when the checked component is healthy.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc
}

// Health tracks readiness and a set of liveness checks.
type Health struct {
	ready atomic.Bool

	mu     sync.RWMutex
	checks []check
}

// New returns a Health in the not-ready state; call SetReady(true) once
// startup completes.
func New() *Health {
	return &Health{}
}

// AddCheck registers a liveness check.
func (h *Health) AddCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks = append(h.checks, check{name: name, timeout: timeout, fn: fn})
}

// SetReady flips the readiness gate. Flip to false before shutdown so load
// balancers drain the instance.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// LivenessHandler serves /livez: 200 when every check passes, 503 with the
// failing checks otherwise.
func (h *Health) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.mu.RLock()
		checks := make([]check, len(h.checks))
		copy(checks, h.checks)
		h.mu.RUnlock()

		failures := make(map[string]string)
		for _, c := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
			err := c.fn(ctx)
			cancel()
			if err != nil {
				failures[c.name] = err.Error()
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if len(failures) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "fail", "checks": failures})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
}

// ReadinessHandler serves /readyz from the readiness gate alone.
func (h *Health) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !h.ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
}

// GoroutineCountCheck flags a goroutine leak once the count passes the
// threshold.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(context.Context) error {
		if n := runtime.NumGoroutine(); n > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", n, threshold)
		}
		return nil
	}
}
