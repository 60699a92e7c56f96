package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func TestHealth(t *testing.T) {
	h := &Handler{health: &MockHealthChecker{}}
	rr := httptest.NewRecorder()

	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestReady(t *testing.T) {
	t.Run("database available", func(t *testing.T) {
		var hasDeadline bool
		h := &Handler{health: &MockHealthChecker{PingFunc: func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		}}}
		rr := httptest.NewRecorder()

		h.Ready(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, hasDeadline, "ping runs under a timeout")
	})

	t.Run("database down", func(t *testing.T) {
		h := &Handler{health: &MockHealthChecker{PingFunc: func(ctx context.Context) error {
			return errors.New("connection refused")
		}}}
		rr := httptest.NewRecorder()

		h.Ready(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, "database unavailable", rr.Body.String())
	})
}
