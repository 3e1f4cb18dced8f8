package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "medihub"

// HTTPServerMetrics collects request and credential issuance metrics on a
// private registry.
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal      *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	requestInFlight   prometheus.Gauge
	credentialsIssued *prometheus.CounterVec
	credentialBytes   prometheus.Counter
}

func NewHTTPServerMetrics() *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
		},
	)
	credentialsIssued := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "credentials",
			Name:      "requests_total",
			Help:      "Write credential requests by document type and outcome.",
		},
		[]string{"type", "status"},
	)
	credentialBytes := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "credentials",
			Name:      "announced_bytes_total",
			Help:      "Cumulative declared size of files granted a write credential.",
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		credentialsIssued,
		credentialBytes,
	)

	return &HTTPServerMetrics{
		registry:          registry,
		requestTotal:      requestTotal,
		requestDuration:   requestDuration,
		requestInFlight:   requestInFlight,
		credentialsIssued: credentialsIssued,
		credentialBytes:   credentialBytes,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records every request under its route template so that
// parameterised paths do not explode label cardinality.
func (m *HTTPServerMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			m.requestInFlight.Inc()
			defer m.requestInFlight.Dec()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method

			m.requestTotal.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
			m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}

// RecordCredential counts one write credential request.
func (m *HTTPServerMetrics) RecordCredential(classification string, status int, sizeBytes int64) {
	if m == nil {
		return
	}
	m.credentialsIssued.WithLabelValues(classificationLabel(classification), strconv.Itoa(status)).Inc()
	if status == http.StatusOK && sizeBytes > 0 {
		m.credentialBytes.Add(float64(sizeBytes))
	}
}

// classificationLabel bounds the type label to the known classifications.
// The value comes from the request body, rejected requests included.
func classificationLabel(classification string) string {
	switch classification {
	case "patient":
		return "patient"
	case "general", "":
		return "general"
	default:
		return "invalid"
	}
}
