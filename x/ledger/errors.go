package ledger

import "github.com/tollgate-dao/tollgate/errors"

// Ledger reserves 1300~1309 error codes.
var (
	ErrInsufficientAllowance = errors.RegisterIn(errors.ErrResource, 1300, "insufficient allowance")
	ErrUnknownToken          = errors.RegisterIn(errors.ErrConfiguration, 1301, "unknown token")
)
