package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
)

func probe(t *testing.T, h http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestReadinessGate(t *testing.T) {
	h := New()

	rec := probe(t, h.ReadinessHandler())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	h.SetReady(true)
	rec = probe(t, h.ReadinessHandler())
	assert.Equal(t, http.StatusOK, rec.Code)

	// Drain for shutdown.
	h.SetReady(false)
	rec = probe(t, h.ReadinessHandler())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLivenessReportsFailingChecks(t *testing.T) {
	h := New()
	h.AddCheck("always-ok", time.Second, func(context.Context) error { return nil })

	rec := probe(t, h.LivenessHandler())
	assert.Equal(t, http.StatusOK, rec.Code)

	h.AddCheck("broken", time.Second, func(context.Context) error {
		return errors.New("disk on fire")
	})
	rec = probe(t, h.LivenessHandler())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "broken")
	assert.Contains(t, rec.Body.String(), "disk on fire")
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(1_000_000)(context.Background()))
	assert.Error(t, GoroutineCountCheck(0)(context.Background()))
}
