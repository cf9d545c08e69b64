package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Invitation counters
	InvitationCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "school_invitations_total",
			Help: "Total number of organization invitations issued",
		},
	)

	// Signup counters
	SignupCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "school_signups_total",
			Help: "Total number of completed organization signups",
		},
	)

	// Login counters
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "school_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Organization operation counter
	OrganizationOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "school_organization_operations_total",
			Help: "Total number of organization operations",
		},
		[]string{"operation"}, // operation can be "invite", "activate", "list", etc.
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "school_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "school_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "login_failure", "invalid_token", "missing_token" etc.
	)

	// Organization-specific error counter
	OrganizationErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "school_organization_errors_total",
			Help: "Total number of organization-related errors",
		},
		[]string{"organization_id", "error_type"},
	)

	// Email delivery counter
	EmailCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "school_emails_total",
			Help: "Total number of email delivery attempts",
		},
		[]string{"kind", "outcome"}, // kind is "invitation" or "welcome", outcome "sent" or "failed"
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "school_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "school_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "school_info",
			Help: "Information about the school service",
		},
		[]string{"version"},
	)

	// Pending organizations
	PendingOrganizationsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "school_pending_organizations",
			Help: "Number of organizations awaiting signup completion",
		},
	)

	// Students per organization
	StudentsPerOrganizationGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "school_students_per_organization",
			Help: "Number of students per organization",
		},
		[]string{"organization_id", "organization_name"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(InvitationCounter)
	prometheus.MustRegister(SignupCounter)
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(OrganizationOperationCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(OrganizationErrorCounter)
	prometheus.MustRegister(EmailCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(InfoGauge)
	prometheus.MustRegister(PendingOrganizationsGauge)
	prometheus.MustRegister(StudentsPerOrganizationGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// InitMetrics records static service information once configuration is loaded
func InitMetrics(version string) {
	InfoGauge.With(prometheus.Labels{"version": version}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			// Record metrics
			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordOrganizationError records an organization-related error
func RecordOrganizationError(organizationID uint, errorType string) {
	OrganizationErrorCounter.With(prometheus.Labels{
		"organization_id": strconv.FormatUint(uint64(organizationID), 10),
		"error_type":      errorType,
	}).Inc()
}

// RecordOrganizationOperation records an organization operation
func RecordOrganizationOperation(operation string) {
	OrganizationOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordEmail records an email delivery attempt by kind and outcome
func RecordEmail(kind, outcome string) {
	EmailCounter.With(prometheus.Labels{"kind": kind, "outcome": outcome}).Inc()
}

// UpdatePendingOrganizations updates the pending organizations gauge
func UpdatePendingOrganizations(count int) {
	PendingOrganizationsGauge.Set(float64(count))
}

// UpdateStudentsPerOrganization updates the students per organization gauge
func UpdateStudentsPerOrganization(organizationID uint, organizationName string, count int) {
	StudentsPerOrganizationGauge.With(prometheus.Labels{
		"organization_id":   strconv.FormatUint(uint64(organizationID), 10),
		"organization_name": organizationName,
	}).Set(float64(count))
}
