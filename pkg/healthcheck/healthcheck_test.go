package healthcheck

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected bool
	}{
		{name: "ok", status: http.StatusOK, expected: true},
		{name: "no content", status: http.StatusNoContent, expected: true},
		{name: "accepted", status: http.StatusAccepted, expected: true},
		{name: "server error", status: http.StatusInternalServerError, expected: false},
		{name: "not found", status: http.StatusNotFound, expected: false},
		{name: "service unavailable", status: http.StatusServiceUnavailable, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			p := New(srv.URL)
			p.Out = &bytes.Buffer{}
			assert.Equal(t, tt.expected, p.Healthy(context.Background()))
		})
	}
}

func TestHealthy_Unreachable(t *testing.T) {
	// Reserve a port and close it so nothing is listening.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := New(url)
	p.Out = &bytes.Buffer{}
	assert.False(t, p.Healthy(context.Background()))
}

func TestWait_ProceedsOnFirstSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := New(srv.URL)
	p.Interval = 5 * time.Millisecond
	p.Out = &bytes.Buffer{}

	err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWait_DoesNotProceedWhileUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := New(srv.URL)
	p.Interval = 5 * time.Millisecond
	p.Out = &bytes.Buffer{}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWait_RetryCap(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := New(srv.URL)
	p.Interval = time.Millisecond
	p.Retries = 4
	p.Out = &bytes.Buffer{}

	err := p.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready after 4 attempts")
	assert.Equal(t, int32(4), calls.Load())
}
