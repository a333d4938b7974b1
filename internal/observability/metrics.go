package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutSessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blackbox",
			Name:      "checkout_sessions_created_total",
			Help:      "Hosted checkout sessions created at the payment provider",
		},
	)

	OrdersReconciled = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blackbox",
			Name:      "orders_reconciled_total",
			Help:      "Paid orders recorded from completed checkout events",
		},
	)

	WebhookEventsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blackbox",
			Name:      "webhook_events_skipped_total",
			Help:      "Webhook events acknowledged without creating an order, by reason",
		},
		[]string{"reason"},
	)

	ReconciliationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blackbox",
			Name:      "reconciliation_failures_total",
			Help:      "Completed payments that could not be reconciled, by reason",
		},
		[]string{"reason"},
	)

	WebhookSignatureRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blackbox",
			Name:      "webhook_signature_rejected_total",
			Help:      "Webhook deliveries rejected for a bad or stale signature",
		},
	)

	ReconciliationRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blackbox",
			Name:      "reconciliation_retries_total",
			Help:      "Background retry outcomes for stored reconciliation failures",
		},
		[]string{"outcome"},
	)
)
