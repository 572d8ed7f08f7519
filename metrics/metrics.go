/*
Package metrics declares the prometheus collectors of the fee pipeline.

All collectors are registered with the default registry on package
initialization. The exec command of the command line tool writes them in the
text exposition format when given a metrics file.
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tollgate_build_info",
			Help: "Build information of tollgate",
		},
		[]string{"version"},
	)

	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tollgate_transactions_total",
			Help: "Total number of processed transactions",
		},
		[]string{"path", "mode", "status"},
	)

	TransactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tollgate_transaction_duration_seconds",
			Help:    "Duration of transaction processing",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
		},
		[]string{"path"},
	)

	FeesComputedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tollgate_fees_computed_total",
			Help: "Total number of fee computations",
		},
		[]string{"operation", "discounted"},
	)

	FeesCollectedAmount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tollgate_fees_collected_amount_total",
			Help: "Sum of collected fees in token units",
		},
		[]string{"token", "destination"},
	)

	TreasuryDistributionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tollgate_treasury_distributions_total",
			Help: "Total number of treasury distributions",
		},
		[]string{"token", "trigger"},
	)

	TreasuryDistributedAmount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tollgate_treasury_distributed_amount_total",
			Help: "Sum of token units paid out to treasury recipients",
		},
		[]string{"token"},
	)

	RewardCyclesClosedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tollgate_reward_cycles_closed_total",
			Help: "Total number of closed reward cycles",
		},
	)

	RewardClaimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tollgate_reward_claims_total",
			Help: "Total number of reward claims",
		},
		[]string{"token"},
	)

	RewardClaimedAmount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tollgate_reward_claimed_amount_total",
			Help: "Sum of token units paid out as rewards",
		},
		[]string{"token"},
	)
)
