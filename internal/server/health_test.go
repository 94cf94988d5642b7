package server_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RajatSinghRajawat/maanvibackend/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockDBPinger struct {
	ShouldFail bool
}

func (m *MockDBPinger) Ping(_ context.Context) error {
	if m.ShouldFail {
		return errors.New("mock db error")
	}
	return nil
}

func TestHealthChecker(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name         string
		checks       []server.Check
		expectedCode int
		expectedBody string
	}{
		{
			name:         "database ok",
			checks:       []server.Check{server.DatabaseCheck(&MockDBPinger{})},
			expectedCode: http.StatusOK,
			expectedBody: `{"database":"ok"}`,
		},
		{
			name:         "database unavailable",
			checks:       []server.Check{server.DatabaseCheck(&MockDBPinger{ShouldFail: true})},
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `{"database":"unavailable"}`,
		},
		{
			name: "one failing probe degrades the whole report",
			checks: []server.Check{
				server.DatabaseCheck(&MockDBPinger{}),
				{Name: "telegram", Probe: func(context.Context) error { return errors.New("timeout") }},
			},
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `{"database":"ok", "telegram":"unavailable"}`,
		},
		{
			name:         "no probes",
			expectedCode: http.StatusOK,
			expectedBody: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			healthChecker := server.NewHealthChecker(logger, tt.checks...)
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rr := httptest.NewRecorder()
			healthChecker.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			require.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestMonitoringHandler(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "test counter"})
	reg.MustRegister(counter)
	counter.Inc()

	handler := server.NewMonitoringHandler(logger, reg, server.DatabaseCheck(&MockDBPinger{}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "probe_total 1")

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"database":"ok"}`, rr.Body.String())
}

func TestStartMonitoringServerStopsOnCancel(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		server.StartMonitoringServer(ctx, logger, prometheus.NewRegistry(), "0")
		close(done)
	}()

	cancel()
	<-done
}
