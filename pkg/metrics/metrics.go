package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's prometheus collectors.
type Metrics struct {
	// method, path, status_code
	HTTPRequestsTotal *prometheus.CounterVec

	// method, path
	HTTPRequestDuration *prometheus.HistogramVec

	// status: created, seat_taken, out_of_range, not_found, invalid, error
	OrdersTotal *prometheus.CounterVec

	TicketsSoldTotal prometheus.Counter

	// result: hit, miss, error
	CacheRequestsTotal *prometheus.CounterVec

	// status: published, failed
	OrderEventsTotal *prometheus.CounterVec
}

// New registers the collectors on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		OrdersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_total",
				Help: "Total number of order attempts by outcome",
			},
			[]string{"status"},
		),
		TicketsSoldTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tickets_sold_total",
				Help: "Total number of tickets committed",
			},
		),
		CacheRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_requests_total",
				Help: "Screening list cache lookups by result",
			},
			[]string{"result"},
		),
		OrderEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_events_total",
				Help: "order.created publish attempts by outcome",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.OrdersTotal,
		m.TicketsSoldTotal,
		m.CacheRequestsTotal,
		m.OrderEventsTotal,
	)

	return m
}

// The helpers below accept a nil *Metrics so callers without a registry
// can skip instrumentation.

func (m *Metrics) ObserveOrder(status string, tickets int) {
	if m == nil {
		return
	}
	m.OrdersTotal.WithLabelValues(status).Inc()
	if tickets > 0 {
		m.TicketsSoldTotal.Add(float64(tickets))
	}
}

func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.CacheRequestsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveOrderEvent(status string) {
	if m == nil {
		return
	}
	m.OrderEventsTotal.WithLabelValues(status).Inc()
}
