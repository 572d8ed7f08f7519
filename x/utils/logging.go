package utils

import (
	"time"

	"github.com/tollgate-dao/tollgate"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ tollgate.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (r Logging) Check(ctx tollgate.Context, store tollgate.KVStore, tx tollgate.Tx, next tollgate.Checker) (*tollgate.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx tollgate.Context, store tollgate.KVStore, tx tollgate.Tx, next tollgate.Deliverer) (*tollgate.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx tollgate.Context, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := tollgate.GetLogger(ctx).With("duration", delta/time.Microsecond)

	if err != nil {
		logger = logger.With("err", err)
	}

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.

	switch {
	case err != nil && lowPrio:
		logger.Info(msg)
	case err != nil:
		logger.Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
