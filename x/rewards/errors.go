package rewards

import "github.com/tollgate-dao/tollgate/errors"

// Rewards reserves 1200~1209 error codes.
var (
	ErrCycleNotEnded       = errors.RegisterIn(errors.ErrState, 1200, "cycle not ended")
	ErrAlreadyDistributed  = errors.RegisterIn(errors.ErrState, 1201, "cycle already distributed")
	ErrAlreadyClaimed      = errors.RegisterIn(errors.ErrState, 1202, "already claimed")
	ErrCycleNotDistributed = errors.RegisterIn(errors.ErrState, 1203, "cycle not distributed")
	ErrNotParticipant      = errors.RegisterIn(errors.ErrUnauthorized, 1204, "not an active participant")
)
