package utils

import (
	"time"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/metrics"
)

// Metrics is a decorator that counts processed transactions by their path
// and result and observes the delivery duration.
type Metrics struct{}

var _ tollgate.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator
func NewMetrics() Metrics {
	return Metrics{}
}

func (Metrics) Check(ctx tollgate.Context, store tollgate.KVStore, tx tollgate.Tx, next tollgate.Checker) (*tollgate.CheckResult, error) {
	res, err := next.Check(ctx, store, tx)
	metrics.TransactionsTotal.WithLabelValues(tollgate.GetPath(tx), "check", status(err)).Inc()
	return res, err
}

func (Metrics) Deliver(ctx tollgate.Context, store tollgate.KVStore, tx tollgate.Tx, next tollgate.Deliverer) (*tollgate.DeliverResult, error) {
	path := tollgate.GetPath(tx)
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	metrics.TransactionDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	metrics.TransactionsTotal.WithLabelValues(path, "deliver", status(err)).Inc()
	return res, err
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
