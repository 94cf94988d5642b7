package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
)

// NewMonitoringHandler routes /healthz and /metrics.
func NewMonitoringHandler(log *slog.Logger, reg *prometheus.Registry, checks ...Check) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/healthz", NewHealthChecker(log, checks...))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}

// StartMonitoringServer serves health checks and metrics on port until ctx is done.
//
// Parameters:
// - ctx: cancels the server and triggers a graceful shutdown.
// - log: logger for server events and errors.
// - reg: registry with Prometheus collectors.
// - port: the port number the server listens on.
// - checks: dependency probes reported by /healthz.
func StartMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	port string,
	checks ...Check,
) {
	server := &http.Server{
		Addr:         net.JoinHostPort("", port),
		Handler:      NewMonitoringHandler(log, reg, checks...),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	log.InfoContext(ctx, "Starting monitoring server", "port", port)

	var err error
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), readTimeout)
		defer cancel()
		log.InfoContext(ctx, "Monitoring server shutting down.")
		if err = server.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(ctx, "Monitoring server failed to shutdown", "error", err)
		}
	case err = <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "Monitoring server failed", "error", err)
		}
	}
}
