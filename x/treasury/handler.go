package treasury

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
	// RoleAdmin is required to manage recipients, tokens and funds.
	RoleAdmin = "treasury-admin"
	// RoleDistributor is required to start a manual distribution.
	RoleDistributor = "treasury-distributor"
)

// RegisterRoutes registers handlers for treasury message processing.
func RegisterRoutes(r tollgate.Registry, auth x.Authenticator, authz roles.Authorizer, t *Treasury) {
	r.Handle(pathReceiveMsg, &receiveHandler{auth: auth, treasury: t})
	r.Handle(pathDistributeMsg, &distributeHandler{authz: authz, treasury: t})

	admin := func(newMsg func() tollgate.Msg, deliver deliverFn) tollgate.Handler {
		return &adminHandler{authz: authz, newMsg: newMsg, deliver: deliver}
	}
	r.Handle(pathAddRecipientMsg, admin(
		func() tollgate.Msg { return &AddRecipientMsg{} },
		func(ctx tollgate.Context, db tollgate.KVStore, m tollgate.Msg) ([]byte, error) {
			msg := m.(*AddRecipientMsg)
			return t.AddRecipient(db, msg.Name, msg.Address, msg.AllocationBps)
		}))
	r.Handle(pathUpdateRecipientMsg, admin(
		func() tollgate.Msg { return &UpdateRecipientMsg{} },
		func(ctx tollgate.Context, db tollgate.KVStore, m tollgate.Msg) ([]byte, error) {
			msg := m.(*UpdateRecipientMsg)
			return msg.RecipientID, t.UpdateRecipient(db, msg.RecipientID, msg.Address, msg.AllocationBps)
		}))
	r.Handle(pathRemoveRecipientMsg, admin(
		func() tollgate.Msg { return &RemoveRecipientMsg{} },
		func(ctx tollgate.Context, db tollgate.KVStore, m tollgate.Msg) ([]byte, error) {
			msg := m.(*RemoveRecipientMsg)
			return msg.RecipientID, t.RemoveRecipient(db, msg.RecipientID)
		}))
	r.Handle(pathAddTokenMsg, admin(
		func() tollgate.Msg { return &AddTokenMsg{} },
		func(ctx tollgate.Context, db tollgate.KVStore, m tollgate.Msg) ([]byte, error) {
			msg := m.(*AddTokenMsg)
			return msg.Token, t.AddToken(db, msg.Token)
		}))
	r.Handle(pathRemoveTokenMsg, admin(
		func() tollgate.Msg { return &RemoveTokenMsg{} },
		func(ctx tollgate.Context, db tollgate.KVStore, m tollgate.Msg) ([]byte, error) {
			msg := m.(*RemoveTokenMsg)
			return msg.Token, t.RemoveToken(db, msg.Token)
		}))
	r.Handle(pathWithdrawMsg, admin(
		func() tollgate.Msg { return &WithdrawMsg{} },
		func(ctx tollgate.Context, db tollgate.KVStore, m tollgate.Msg) ([]byte, error) {
			msg := m.(*WithdrawMsg)
			if err := t.Withdraw(ctx, db, msg.Token, msg.Destination, msg.Amount); err != nil {
				return nil, err
			}
			return encodeAmount(msg.Amount), nil
		}))
	r.Handle(pathRecoverMsg, admin(
		func() tollgate.Msg { return &RecoverMsg{} },
		func(ctx tollgate.Context, db tollgate.KVStore, m tollgate.Msg) ([]byte, error) {
			msg := m.(*RecoverMsg)
			amount, err := t.Recover(ctx, db, msg.Token, msg.Destination)
			if err != nil {
				return nil, err
			}
			return encodeAmount(amount), nil
		}))
	r.Handle(pathPauseMsg, admin(
		func() tollgate.Msg { return &PauseMsg{} },
		func(ctx tollgate.Context, db tollgate.KVStore, m tollgate.Msg) ([]byte, error) {
			return nil, t.Pause(db)
		}))
	r.Handle(pathUnpauseMsg, admin(
		func() tollgate.Msg { return &UnpauseMsg{} },
		func(ctx tollgate.Context, db tollgate.KVStore, m tollgate.Msg) ([]byte, error) {
			return nil, t.Unpause(db)
		}))
	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth))
}

// NewConfigHandler returns a handler of configuration patches signed by the
// configuration owner.
func NewConfigHandler(auth x.Authenticator) tollgate.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(packageName, &conf, auth, nil)
}

func encodeAmount(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

type receiveHandler struct {
	auth     x.Authenticator
	treasury *Treasury
}

func (h *receiveHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *receiveHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	source := msg.Source
	if source == "" {
		source = "direct"
	}
	if err := h.treasury.Receive(ctx, db, sender, msg.Token, msg.Amount, source); err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{}, nil
}

func (h *receiveHandler) validate(ctx tollgate.Context, tx tollgate.Tx) (*ReceiveMsg, tollgate.Address, error) {
	var msg ReceiveMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return &msg, signer.Address(), nil
}

type distributeHandler struct {
	authz    roles.Authorizer
	treasury *Treasury
}

func (h *distributeHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *distributeHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	dist, err := h.treasury.Distribute(ctx, db, msg.Token)
	if err != nil {
		return nil, err
	}
	tags := []common.KVPair{
		{Key: []byte("token"), Value: []byte(msg.Token.String())},
		{Key: []byte("paid"), Value: []byte(strconv.FormatUint(dist.TotalPaid, 10))},
		{Key: []byte("remainder"), Value: []byte(strconv.FormatUint(dist.Remainder, 10))},
	}
	return &tollgate.DeliverResult{Data: encodeAmount(dist.TotalPaid), Tags: tags}, nil
}

func (h *distributeHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*DistributeMsg, error) {
	var msg DistributeMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.authz.Authorize(ctx, db, RoleDistributor); err != nil {
		return nil, err
	}
	return &msg, nil
}

type deliverFn func(ctx tollgate.Context, db tollgate.KVStore, msg tollgate.Msg) ([]byte, error)

// adminHandler authorizes the treasury admin role and delegates the message
// processing to deliver.
type adminHandler struct {
	authz   roles.Authorizer
	newMsg  func() tollgate.Msg
	deliver deliverFn
}

func (h *adminHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *adminHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	data, err := h.deliver(ctx, db, msg)
	if err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{Data: data}, nil
}

func (h *adminHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (tollgate.Msg, error) {
	msg := h.newMsg()
	if err := tollgate.LoadMsg(tx, msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.authz.Authorize(ctx, db, RoleAdmin); err != nil {
		return nil, err
	}
	return msg, nil
}
