package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ReservationMetrics struct {
	RequestsTotal    prometheus.Counter
	CreatedTotal     prometheus.Counter
	UnavailableTotal prometheus.Counter
	RequestDuration  prometheus.Histogram
}

func newReservationMetrics() *ReservationMetrics {
	return &ReservationMetrics{
		RequestsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reservation_requests_total",
			Help: "Total number of reservation requests received",
		}),

		CreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reservations_created_total",
			Help: "Total number of reservations created",
		}),

		UnavailableTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reservation_unavailable_total",
			Help: "Total number of requests rejected because the listing was unavailable",
		}),

		RequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "reservation_request_duration_seconds",
			Help:    "Duration of reservation request handling",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Metrics is registered once on the default prometheus registry.
var Metrics = newReservationMetrics()
