// Package metrics exposes the Prometheus instrumentation for the HTTP
// layer, the WebSocket hub, the threat detector and the FL coordinator.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agisfl"

func counterVec(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

func counter(subsystem, name, help string) prometheus.Counter {
	return promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	})
}

func gauge(subsystem, name, help string) prometheus.Gauge {
	return promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	})
}

func gaugeVec(subsystem, name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

func histogramVec(subsystem, name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets,
	}, labels)
}

var (
	httpRequestsTotal = counterVec("http", "requests_total",
		"Total number of HTTP requests", "method", "path", "status")
	httpRequestDuration = histogramVec("http", "request_duration_seconds",
		"HTTP request duration in seconds",
		[]float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		"method", "path", "status")
	httpRequestsInFlight = gauge("http", "requests_in_flight",
		"Number of HTTP requests currently being served")

	wsActiveConnections = gauge("ws", "active_connections",
		"Number of active WebSocket connections")
	wsMessagesTotal = counterVec("ws", "messages_total",
		"Total number of WebSocket messages sent", "type")

	threatsDetectedTotal = counterVec("detection", "threats_total",
		"Total number of threats recorded by the detector", "severity")
	incidentsOpenedTotal = counter("detection", "incidents_total",
		"Total number of incidents opened by the detector")
	activeThreats = gaugeVec("detection", "active_threats",
		"Number of active (unmitigated) threats", "severity")

	flRoundsTotal = counter("fl", "rounds_total",
		"Total FL training rounds completed")
	flModelAccuracy = gauge("fl", "model_accuracy",
		"Current global model accuracy")

	dbQueryDuration = histogramVec("db", "query_duration_seconds",
		"Database query duration in seconds",
		[]float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		"operation", "table")
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Middleware records request count, latency and in-flight gauge per chi
// route pattern, so path cardinality stays bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unknown"
		}
		status := strconv.Itoa(rec.status)

		httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the /metrics scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func SetActiveWSConnections(count float64) {
	wsActiveConnections.Set(count)
}

func RecordWSMessage(msgType string) {
	wsMessagesTotal.WithLabelValues(msgType).Inc()
}

func RecordThreatDetected(severity string) {
	threatsDetectedTotal.WithLabelValues(severity).Inc()
}

func RecordIncidentOpened() {
	incidentsOpenedTotal.Inc()
}

func SetActiveThreats(severity string, count float64) {
	activeThreats.WithLabelValues(severity).Set(count)
}

// RecordFLRound bumps the round counter and records the new accuracy.
func RecordFLRound(accuracy float64) {
	flRoundsTotal.Inc()
	flModelAccuracy.Set(accuracy)
}

func ObserveDBQuery(operation, table string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}
