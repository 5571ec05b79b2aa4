// Package metrics exposes the prometheus instruments for the service layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExpensesCreated counts expenses admitted to the store.
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitpay_expenses_created_total",
		Help: "Number of expenses created.",
	})

	// SettlementsFinished counts settlement attempts by terminal status.
	SettlementsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitpay_settlements_finished_total",
		Help: "Number of settlement attempts reaching a terminal status.",
	}, []string{"status"})

	// PaymentStepDuration observes the latency of each payment bridge step.
	PaymentStepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "splitpay_payment_step_duration_seconds",
		Help:    "Duration of payment bridge calls by step.",
		Buckets: prometheus.DefBuckets,
	}, []string{"step"})
)
