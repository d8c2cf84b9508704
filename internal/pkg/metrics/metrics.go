package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the portal's Prometheus collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	tokenRefreshes   *prometheus.CounterVec
	navigations      *prometheus.CounterVec
	toasts           *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Outbound API requests broken down by client, method and status code.",
		}, []string{"client", "method", "status"}),
		upstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portal",
			Subsystem: "upstream",
			Name:      "latency_seconds",
			Help:      "Latency distribution of outbound API requests.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"client"}),
		tokenRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "session",
			Name:      "token_refreshes_total",
			Help:      "Access token refresh attempts by result.",
		}, []string{"client", "result"}),
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "guard",
			Name:      "navigations_total",
			Help:      "Route guard decisions by outcome.",
		}, []string{"outcome"}),
		toasts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "notify",
			Name:      "toasts_total",
			Help:      "Toasts published by color.",
		}, []string{"color"}),
	}
}

// ObserveRequest records one outbound request; status 0 means a transport error.
func (m *Metrics) ObserveRequest(client, method string, status int, duration time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.upstreamRequests.WithLabelValues(client, method, code).Inc()
	m.upstreamLatency.WithLabelValues(client).Observe(duration.Seconds())
}

func (m *Metrics) ObserveRefresh(client string, ok bool) {
	result := "failed"
	if ok {
		result = "ok"
	}
	m.tokenRefreshes.WithLabelValues(client, result).Inc()
}

func (m *Metrics) ObserveNavigation(outcome string) {
	m.navigations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveToast(color string) {
	m.toasts.WithLabelValues(color).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
