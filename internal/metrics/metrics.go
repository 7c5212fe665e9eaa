// Package metrics exposes prometheus collectors for the unread pollers and
// outbound API calls. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portal"

// Metrics groups the collectors registered by New.
type Metrics struct {
	gatherer prometheus.Gatherer

	polls    *prometheus.CounterVec
	unread   *prometheus.GaugeVec
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
// Registration panics on duplicate collectors, like prometheus.MustRegister.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_total",
			Help:      "Unread poll fetches by source and result.",
		}, []string{"source", "result"}),
		unread: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unread_items",
			Help:      "Last computed unread count by source.",
		}, []string{"source"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Outbound API requests by method and status.",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Outbound API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(m.polls, m.unread, m.requests, m.duration)
	return m
}

// ObservePoll counts one poll fetch for source.
func (m *Metrics) ObservePoll(source string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.polls.WithLabelValues(source, result).Inc()
}

// SetUnread records the latest unread count for source.
func (m *Metrics) SetUnread(source string, n int) {
	if m == nil {
		return
	}
	m.unread.WithLabelValues(source).Set(float64(n))
}

// ObserveAPI records one outbound request. Status 0 means the request failed
// before a response arrived.
func (m *Metrics) ObserveAPI(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(method, label).Inc()
	m.duration.WithLabelValues(method).Observe(d.Seconds())
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
