package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	callsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calls_logged_total",
			Help: "Total number of call outcomes logged",
		},
		[]string{"status"},
	)

	reportsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daily_reports_total",
			Help: "Daily summary dispatch attempts by trigger and outcome",
		},
		[]string{"trigger", "outcome"},
	)

	webhookDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_dispatches_total",
			Help: "Webhook POSTs by payload type and outcome",
		},
		[]string{"type", "outcome"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern keeps label cardinality bounded by preferring the chi route
// template over the raw path.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func RecordCallLogged(status string) {
	callsLogged.WithLabelValues(status).Inc()
}

func RecordDailyReport(trigger, outcome string) {
	reportsSent.WithLabelValues(trigger, outcome).Inc()
}

func RecordWebhookDispatch(payloadType, outcome string) {
	webhookDispatches.WithLabelValues(payloadType, outcome).Inc()
}
