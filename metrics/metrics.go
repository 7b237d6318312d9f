// Package metrics exposes the engine's prometheus counters. Handlers bump
// them at the edge; services stay metrics-free.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkouts_total",
		Help: "Checkout attempts by result.",
	}, []string{"result"})

	PaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_total",
		Help: "Payment attempts by provider and immediate status.",
	}, []string{"provider", "status"})

	WebhooksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhooks_total",
		Help: "Provider callbacks by provider and handling result.",
	}, []string{"provider", "result"})

	CheckoutDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Wall time of the checkout transaction.",
		Buckets: prometheus.DefBuckets,
	})
)
