package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EscrowTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escrow_transitions_total",
			Help: "Escrow state transitions attempted, by outcome",
		},
		[]string{"transition", "result"},
	)

	ProjectTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_transitions_total",
			Help: "Project lifecycle transitions committed",
		},
		[]string{"transition"},
	)

	PaymentGatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_gateway_duration_seconds",
			Help:    "Latency of payment gateway calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_failed_total",
			Help: "Notifications the sink failed to accept",
		},
		[]string{"template"},
	)

	JournalFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_journal_failures_total",
			Help: "Ledger journal writes that failed after a committed transition",
		},
	)
)

// Result labels.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)
