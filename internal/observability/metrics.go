package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reservations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_reservations_total",
			Help: "Reservation attempts by outcome",
		},
		[]string{"outcome"},
	)

	releases = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_releases_total",
			Help: "Inventory reservations released after payment failure or expiry",
		},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_notifications_total",
			Help: "Webhook notifications by provider status and outcome",
		},
		[]string{"transaction_status", "outcome"},
	)

	chargeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gateway_charge_duration_seconds",
			Help:    "Latency of outbound gateway charge calls",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	expiredTickets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "expired_tickets_total",
			Help: "Pending tickets expired by the sweep",
		},
	)
)

func ObserveReservation(outcome string) {
	reservations.WithLabelValues(outcome).Inc()
}

func ObserveRelease() {
	releases.Inc()
}

func ObserveNotification(transactionStatus, outcome string) {
	notifications.WithLabelValues(transactionStatus, outcome).Inc()
}

func ObserveChargeDuration(d time.Duration) {
	chargeDuration.Observe(d.Seconds())
}

func ObserveExpiredTicket() {
	expiredTickets.Inc()
}
