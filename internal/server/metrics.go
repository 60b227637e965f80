package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics держит собственный реестр, чтобы несколько серверов
// (например, в тестах) не конфликтовали при регистрации.
type Metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	feedDuration *prometheus.HistogramVec
	feedErrors   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogfront_http_requests_total",
			Help: "Rendered pages by page kind and status code.",
		}, []string{"page", "status"}),
		feedDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blogfront_feed_load_duration_seconds",
			Help:    "Time spent loading the post feed.",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		feedErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogfront_feed_load_errors_total",
			Help: "Failed post feed loads.",
		}, []string{"source"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.feedDuration,
		m.feedErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(page string, status int) {
	m.requests.WithLabelValues(page, strconv.Itoa(status)).Inc()
}

func (m *Metrics) observeFeed(source string, started time.Time, err error) {
	m.feedDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
	if err != nil {
		m.feedErrors.WithLabelValues(source).Inc()
	}
}
