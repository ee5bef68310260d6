package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics - все коллекторы сервиса. nil *Metrics допустим и ничего не пишет.
type Metrics struct {
	// HTTP метрики
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Торговые метрики
	OrdersTotal       *prometheus.CounterVec
	LedgerAdjustments *prometheus.CounterVec
	SignalsGenerated  *prometheus.CounterVec
	SignalFeedClients prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests in flight",
			},
		),
		OrdersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paper_orders_total",
				Help: "Paper orders by side and outcome",
			},
			[]string{"side", "outcome"},
		),
		LedgerAdjustments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_adjustments_total",
				Help: "Applied balance adjustments by direction",
			},
			[]string{"direction"},
		),
		SignalsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signals_generated_total",
				Help: "Generated entry signals by direction",
			},
			[]string{"direction"},
		),
		SignalFeedClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "signal_feed_clients",
				Help: "Number of connected signal feed websocket clients",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.HTTPRequestsTotal,
			m.HTTPRequestDuration,
			m.HTTPRequestsInFlight,
			m.OrdersTotal,
			m.LedgerAdjustments,
			m.SignalsGenerated,
			m.SignalFeedClients,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return m
}

func (m *Metrics) ObserveOrder(side, outcome string) {
	if m == nil {
		return
	}
	m.OrdersTotal.WithLabelValues(side, outcome).Inc()
}

func (m *Metrics) ObserveAdjustment(direction string) {
	if m == nil {
		return
	}
	m.LedgerAdjustments.WithLabelValues(direction).Inc()
}

func (m *Metrics) ObserveSignal(direction string) {
	if m == nil {
		return
	}
	m.SignalsGenerated.WithLabelValues(direction).Inc()
}

func (m *Metrics) FeedClientConnected() {
	if m == nil {
		return
	}
	m.SignalFeedClients.Inc()
}

func (m *Metrics) FeedClientDisconnected() {
	if m == nil {
		return
	}
	m.SignalFeedClients.Dec()
}
