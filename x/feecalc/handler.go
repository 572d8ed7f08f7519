package feecalc

import (
	"strconv"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/gconf"
	"github.com/tollgate-dao/tollgate/x"
	"github.com/tollgate-dao/tollgate/x/roles"
)

// RoleFeeAdmin is required to change fee schedules, overrides and
// discounts.
const RoleFeeAdmin = "fee-admin"

// RegisterRoutes registers handlers for fee calculator message processing.
func RegisterRoutes(r tollgate.Registry, auth x.Authenticator, authz roles.Authorizer, calc *Calculator) {
	r.Handle(pathComputeFeeMsg, &computeFeeHandler{auth: auth, calc: calc})
	r.Handle(pathSetOperationFeeMsg, &setOperationFeeHandler{authz: authz, calc: calc})
	r.Handle(pathSetAssetOverrideMsg, &setAssetOverrideHandler{authz: authz, calc: calc})
	r.Handle(pathClearAssetOverrideMsg, &clearAssetOverrideHandler{authz: authz, calc: calc})
	r.Handle(pathSetDiscountMsg, &setDiscountHandler{authz: authz, calc: calc})
	r.Handle(pathSetDiscountsEnabledMsg, &setDiscountsEnabledHandler{authz: authz, calc: calc})
	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth))
}

// NewConfigHandler returns a handler of configuration patches signed by the
// configuration owner.
func NewConfigHandler(auth x.Authenticator) tollgate.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(packageName, &conf, auth, nil)
}

type computeFeeHandler struct {
	auth x.Authenticator
	calc *Calculator
}

func (h *computeFeeHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	msg, payer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.calc.Quote(db, msg.Operation, msg.Asset, msg.Amount, payer); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *computeFeeHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, payer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	fee, err := h.calc.ComputeFee(ctx, db, msg.Operation, msg.Asset, msg.Amount, payer)
	if err != nil {
		return nil, err
	}
	tags := []common.KVPair{
		{Key: []byte("operation"), Value: []byte(msg.Operation)},
		{Key: []byte("fee"), Value: []byte(strconv.FormatUint(fee, 10))},
	}
	return &tollgate.DeliverResult{Data: encodeFee(fee), Tags: tags}, nil
}

func (h *computeFeeHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*ComputeFeeMsg, tollgate.Address, error) {
	var msg ComputeFeeMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	payer := msg.Payer
	if len(payer) == 0 {
		if signer := x.MainSigner(ctx, h.auth); signer != nil {
			payer = signer.Address()
		}
	}
	return &msg, payer, nil
}

type setOperationFeeHandler struct {
	authz roles.Authorizer
	calc  *Calculator
}

func (h *setOperationFeeHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *setOperationFeeHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.calc.SetOperationFee(db, msg.OperationFee()); err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{Data: []byte(msg.Operation)}, nil
}

func (h *setOperationFeeHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*SetOperationFeeMsg, error) {
	var msg SetOperationFeeMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.authz.Authorize(ctx, db, RoleFeeAdmin); err != nil {
		return nil, err
	}
	return &msg, nil
}

type setAssetOverrideHandler struct {
	authz roles.Authorizer
	calc  *Calculator
}

func (h *setAssetOverrideHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *setAssetOverrideHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.calc.SetAssetOverride(db, msg.Asset, msg.Operation, msg.PercentageBps); err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{Data: msg.Asset}, nil
}

func (h *setAssetOverrideHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*SetAssetOverrideMsg, error) {
	var msg SetAssetOverrideMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.authz.Authorize(ctx, db, RoleFeeAdmin); err != nil {
		return nil, err
	}
	return &msg, nil
}

type clearAssetOverrideHandler struct {
	authz roles.Authorizer
	calc  *Calculator
}

func (h *clearAssetOverrideHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *clearAssetOverrideHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.calc.ClearAssetOverride(db, msg.Asset); err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{Data: msg.Asset}, nil
}

func (h *clearAssetOverrideHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*ClearAssetOverrideMsg, error) {
	var msg ClearAssetOverrideMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.authz.Authorize(ctx, db, RoleFeeAdmin); err != nil {
		return nil, err
	}
	return &msg, nil
}

type setDiscountHandler struct {
	authz roles.Authorizer
	calc  *Calculator
}

func (h *setDiscountHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *setDiscountHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.calc.SetDiscount(db, msg.Level, msg.DiscountBps); err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{}, nil
}

func (h *setDiscountHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*SetDiscountMsg, error) {
	var msg SetDiscountMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.authz.Authorize(ctx, db, RoleFeeAdmin); err != nil {
		return nil, err
	}
	return &msg, nil
}

type setDiscountsEnabledHandler struct {
	authz roles.Authorizer
	calc  *Calculator
}

func (h *setDiscountsEnabledHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *setDiscountsEnabledHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.calc.SetDiscountsEnabled(db, msg.Enabled); err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{}, nil
}

func (h *setDiscountsEnabledHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*SetDiscountsEnabledMsg, error) {
	var msg SetDiscountsEnabledMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.authz.Authorize(ctx, db, RoleFeeAdmin); err != nil {
		return nil, err
	}
	return &msg, nil
}
