package identity

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/x/roles"
)

// RoleRegistrar is required to register and revoke verifications.
const RoleRegistrar = "identity-registrar"

// RegisterRoutes registers handlers for identity message processing.
func RegisterRoutes(r tollgate.Registry, authz roles.Authorizer, ctrl *Controller) {
	r.Handle(pathRegisterMsg, &registerHandler{authz: authz, ctrl: ctrl})
	r.Handle(pathRevokeMsg, &revokeHandler{authz: authz, ctrl: ctrl})
}

type registerHandler struct {
	authz roles.Authorizer
	ctrl  *Controller
}

func (h *registerHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *registerHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, operator, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := tollgate.BlockUnixTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	v := &Verification{
		Metadata: &tollgate.Metadata{Schema: 1},
		Address:  msg.Address,
		Level:    msg.Level,
		Operator: operator,
		Note:     msg.Note,
		Since:    now,
	}
	if err := h.ctrl.Register(db, v); err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{Data: msg.Address}, nil
}

func (h *registerHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*RegisterMsg, tollgate.Address, error) {
	var msg RegisterMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	operator, err := h.authz.Authorize(ctx, db, RoleRegistrar)
	if err != nil {
		return nil, nil, err
	}
	return &msg, operator, nil
}

type revokeHandler struct {
	authz roles.Authorizer
	ctrl  *Controller
}

func (h *revokeHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *revokeHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Revoke(db, msg.Address); err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{Data: msg.Address}, nil
}

func (h *revokeHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*RevokeMsg, error) {
	var msg RevokeMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.authz.Authorize(ctx, db, RoleRegistrar); err != nil {
		return nil, err
	}
	return &msg, nil
}
