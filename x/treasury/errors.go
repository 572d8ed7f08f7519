package treasury

import "github.com/tollgate-dao/tollgate/errors"

// Treasury reserves 1100~1109 error codes.
var (
	ErrUnsupportedToken = errors.RegisterIn(errors.ErrConfiguration, 1100, "unsupported token")
	ErrCooldown         = errors.RegisterIn(errors.ErrState, 1101, "cooldown not elapsed")
	ErrBelowMinimum     = errors.RegisterIn(errors.ErrState, 1102, "balance below minimum distribution amount")
)
