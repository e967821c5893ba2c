package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wadjakorntonsri/weblinks/pkg/ports"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	requests   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weblinks",
			Name:      "store_operations_total",
			Help:      "Link writes by action and result.",
		}, []string{"action", "result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weblinks",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "code"}),
	}
	m.registry.MustRegister(
		m.operations,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveOperation counts a store write.
func (m *Metrics) ObserveOperation(action string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(action, result).Inc()
}

// ObserveRequest counts a served request.
func (m *Metrics) ObserveRequest(method, route string, code int) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Ensure interface compliance
var _ ports.OperationObserver = (*Metrics)(nil)
