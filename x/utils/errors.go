package utils

import "github.com/tollgate-dao/tollgate/errors"

// ErrReentrancy is returned when a guarded section is entered again before
// it was left.
var ErrReentrancy = errors.RegisterIn(errors.ErrState, 30, "reentrant call")
