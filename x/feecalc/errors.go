package feecalc

import "github.com/tollgate-dao/tollgate/errors"

// Fee calculator reserves 1000~1009 error codes.
var (
	ErrOperationDisabled = errors.RegisterIn(errors.ErrState, 1000, "operation disabled")
)
