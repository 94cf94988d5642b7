package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

const probeTimeout = 2 * time.Second

// DBPinger is satisfied by the connection pool.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Check is a named dependency probe reported by /healthz.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// DatabaseCheck probes the database connection.
func DatabaseCheck(db DBPinger) Check {
	return Check{Name: "database", Probe: db.Ping}
}

// HealthChecker answers 200 when every probe succeeds and 503 otherwise.
type HealthChecker struct {
	log    *slog.Logger
	checks []Check
}

func NewHealthChecker(log *slog.Logger, checks ...Check) *HealthChecker {
	return &HealthChecker{log: log, checks: checks}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	status := make(map[string]string, len(h.checks))
	overallStatus := http.StatusOK

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(req.Context(), probeTimeout)
		err := check.Probe(ctx)
		cancel()

		if err != nil {
			status[check.Name] = "unavailable"
			overallStatus = http.StatusServiceUnavailable
			h.log.WarnContext(req.Context(), "Health check failed", "check", check.Name, "error", err)
			continue
		}
		status[check.Name] = "ok"
	}

	body, err := sonic.Marshal(status)
	if err != nil {
		h.log.ErrorContext(req.Context(), "Failed to encode health check response", "error", err)
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if _, err = writer.Write(body); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", "error", err)
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}
