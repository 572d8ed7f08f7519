package rewards

import (
	"encoding/binary"
	"strconv"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/gconf"
	"github.com/tollgate-dao/tollgate/x"
	"github.com/tollgate-dao/tollgate/x/roles"
)

const (
	// RoleDistributor is required to close a cycle.
	RoleDistributor = "reward-distributor"
	// RoleAdmin is required to manage participants and to unpause.
	RoleAdmin = "reward-admin"
	// RoleEmergency is required to pause.
	RoleEmergency = "reward-emergency"
)

// RegisterRoutes registers handlers for reward message processing.
func RegisterRoutes(r tollgate.Registry, auth x.Authenticator, authz roles.Authorizer, d *Distributor) {
	r.Handle(pathDistributeRewardsMsg, &distributeHandler{authz: authz, dist: d})
	r.Handle(pathClaimMsg, &claimHandler{auth: auth, dist: d})
	r.Handle(pathAddParticipantMsg, &participantHandler{authz: authz, dist: d})
	r.Handle(pathUpdateParticipantMsg, &participantHandler{authz: authz, dist: d})
	r.Handle(pathRemoveParticipantMsg, &participantHandler{authz: authz, dist: d})
	r.Handle(pathPauseMsg, &pauseHandler{authz: authz, dist: d})
	r.Handle(pathUnpauseMsg, &pauseHandler{authz: authz, dist: d})
	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth, d))
}

// NewConfigHandler returns a handler of configuration patches signed by the
// configuration owner. The open cycle follows a changed duration.
func NewConfigHandler(auth x.Authenticator, d *Distributor) tollgate.Handler {
	var conf Configuration
	return &configHandler{
		Handler: gconf.NewUpdateConfigurationHandler(packageName, &conf, auth, nil),
		dist:    d,
	}
}

type configHandler struct {
	tollgate.Handler
	dist *Distributor
}

func (h *configHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	res, err := h.Handler.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.dist.SyncCycleDuration(db); err != nil {
		return nil, errors.Wrap(err, "cycle duration")
	}
	return res, nil
}

type distributeHandler struct {
	authz roles.Authorizer
	dist  *Distributor
}

func (h *distributeHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *distributeHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	next, err := h.dist.DistributeRewards(ctx, db, caller)
	if err != nil {
		return nil, err
	}
	tags := []common.KVPair{
		{Key: []byte("cycle"), Value: []byte(strconv.FormatUint(next.Number-1, 10))},
	}
	return &tollgate.DeliverResult{Data: cycleKey(next.Number), Tags: tags}, nil
}

func (h *distributeHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (tollgate.Address, error) {
	var msg DistributeRewardsMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return h.authz.Authorize(ctx, db, RoleDistributor)
}

type claimHandler struct {
	auth x.Authenticator
	dist *Distributor
}

func (h *claimHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	msg, signer, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.dist.activeParticipant(db, signer); err != nil {
		return nil, err
	}
	if err := h.dist.requireDistributed(db, msg.Cycle); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *claimHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	amount, err := h.dist.Claim(ctx, db, signer, msg.Token, msg.Cycle)
	if err != nil {
		return nil, err
	}
	tags := []common.KVPair{
		{Key: []byte("token"), Value: []byte(msg.Token.String())},
		{Key: []byte("cycle"), Value: []byte(strconv.FormatUint(msg.Cycle, 10))},
	}
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, amount)
	return &tollgate.DeliverResult{Data: data, Tags: tags}, nil
}

func (h *claimHandler) validate(ctx tollgate.Context, tx tollgate.Tx) (*ClaimMsg, tollgate.Address, error) {
	var msg ClaimMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return &msg, signer.Address(), nil
}

// participantHandler processes the three participant messages, all of
// them reserved to the admin role.
type participantHandler struct {
	authz roles.Authorizer
	dist  *Distributor
}

func (h *participantHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *participantHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	switch msg := msg.(type) {
	case *AddParticipantMsg:
		err = h.dist.AddParticipant(db, msg.Participant, msg.SharesBps)
	case *UpdateParticipantMsg:
		err = h.dist.UpdateParticipant(db, msg.Participant, msg.SharesBps)
	case *RemoveParticipantMsg:
		err = h.dist.RemoveParticipant(db, msg.Participant)
	default:
		err = errors.WithType(errors.ErrMsg, msg)
	}
	if err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{}, nil
}

func (h *participantHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (tollgate.Msg, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "nil message")
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	if _, err := h.authz.Authorize(ctx, db, RoleAdmin); err != nil {
		return nil, err
	}
	return msg, nil
}

// pauseHandler pauses with the emergency role and unpauses with the admin
// role.
type pauseHandler struct {
	authz roles.Authorizer
	dist  *Distributor
}

func (h *pauseHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *pauseHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	pause, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if pause {
		err = h.dist.Pause(db)
	} else {
		err = h.dist.Unpause(db)
	}
	if err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{}, nil
}

func (h *pauseHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (bool, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return false, errors.Wrap(err, "load msg")
	}
	if msg == nil {
		return false, errors.Wrap(errors.ErrMsg, "nil message")
	}
	if err := msg.Validate(); err != nil {
		return false, errors.Wrap(err, "invalid message")
	}
	var (
		pause bool
		role  string
	)
	switch msg.(type) {
	case *PauseMsg:
		pause, role = true, RoleEmergency
	case *UnpauseMsg:
		role = RoleAdmin
	default:
		return false, errors.WithType(errors.ErrMsg, msg)
	}
	if _, err := h.authz.Authorize(ctx, db, role); err != nil {
		return false, err
	}
	return pause, nil
}
