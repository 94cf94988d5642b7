package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the application.
// It includes counters and a histogram for the HTTP API, counters for
// logins, attendance marks and new enquiries, and a histogram for report generation.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec   // Counter for served API requests
	HTTPDuration     *prometheus.HistogramVec // Histogram for API request latency
	LoginAttempts    *prometheus.CounterVec   // Counter for admin login attempts
	AttendanceMarks  *prometheus.CounterVec   // Counter for attendance upserts
	EnquiriesCreated prometheus.Counter       // Counter for newly created enquiries
	ReportGeneration *prometheus.HistogramVec // Histogram for report excel generation durations
}

// NewMetrics creates a new Metrics instance with the provided Prometheus Registerer.
//
// Parameters:
//   - reg: A Prometheus Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of served API requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LoginAttempts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "admin_login_attempts_total",
			Help: "Total number of admin login attempts",
		}, []string{"result"}), // result: success, invalid, deactivated
		AttendanceMarks: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_marks_total",
			Help: "Total number of attendance marks",
		}, []string{"outcome"}), // outcome: created, updated
		EnquiriesCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "enquiries_created_total",
			Help: "Total number of created enquiries",
		}),
		ReportGeneration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name: "report_generation_duration_seconds",
			Help: "Duration of report excel generation.",
		}, []string{"report"}), // report: attendance_month
	}
}
