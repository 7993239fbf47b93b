// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface handlers use to record outcomes.
type Recorder interface {
	RecordAuthSuccess(operation string)
	RecordAuthFailure(operation string)
	RecordHTTPStatus(statusCode int)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	registry    *prometheus.Registry
	authSuccess *prometheus.CounterVec
	authFailure *prometheus.CounterVec
	httpStatus  *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on a fresh
// registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		authSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forum_auth_success_total",
			Help: "Successful auth operations by operation name",
		}, []string{"operation"}),
		authFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forum_auth_failure_total",
			Help: "Failed auth operations by operation name",
		}, []string{"operation"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forum_http_status_total",
			Help: "HTTP responses by status code",
		}, []string{"status_code"}),
	}

	c.registry.MustRegister(
		c.authSuccess,
		c.authFailure,
		c.httpStatus,
	)

	return c
}

func (c *Collector) RecordAuthSuccess(operation string) {
	c.authSuccess.WithLabelValues(operation).Inc()
}

func (c *Collector) RecordAuthFailure(operation string) {
	c.authFailure.WithLabelValues(operation).Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler exposes the registry for scraping.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// NopRecorder discards every observation. Useful in tests.
type NopRecorder struct{}

func (NopRecorder) RecordAuthSuccess(string) {}
func (NopRecorder) RecordAuthFailure(string) {}
func (NopRecorder) RecordHTTPStatus(int)     {}
