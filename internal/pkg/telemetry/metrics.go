package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the process counters. Build one per registry; the process uses
// prometheus.DefaultRegisterer and tests use a fresh registry.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	CheckoutsTotal   *prometheus.CounterVec
	DispatchOutcomes *prometheus.CounterVec
	OutboxRelayed    prometheus.Counter
	OrdersExpired    prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roadside_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "code", "method"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "roadside_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		CheckoutsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roadside_checkouts_total",
				Help: "Orders placed, by payment method",
			},
			[]string{"payment_method"},
		),
		DispatchOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roadside_dispatch_outcomes_total",
				Help: "Dispatch attempts, by outcome",
			},
			[]string{"outcome"},
		),
		OutboxRelayed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "roadside_outbox_relayed_total",
				Help: "Outbox messages published",
			},
		),
		OrdersExpired: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "roadside_orders_expired_total",
				Help: "Pending online orders cancelled by expiry",
			},
		),
	}
}
