package roles

import (
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// RegisterRoutes registers handlers for role management messages.
func RegisterRoutes(r tollgate.Registry, authz Authorizer, ctrl *Controller) {
	r.Handle(pathGrantRoleMsg, &grantHandler{authz: authz, ctrl: ctrl})
	r.Handle(pathRevokeRoleMsg, &revokeHandler{authz: authz, ctrl: ctrl})
}

type grantHandler struct {
	authz Authorizer
	ctrl  *Controller
}

func (h *grantHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *grantHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Grant(db, msg.Role, msg.Address); err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{Tags: roleTags(msg.Role, msg.Address)}, nil
}

func (h *grantHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*GrantRoleMsg, error) {
	var msg GrantRoleMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.authz.Authorize(ctx, db, RoleAdmin); err != nil {
		return nil, err
	}
	return &msg, nil
}

type revokeHandler struct {
	authz Authorizer
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
	if err := h.ctrl.Revoke(db, msg.Role, msg.Address); err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{Tags: roleTags(msg.Role, msg.Address)}, nil
}

func (h *revokeHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*RevokeRoleMsg, error) {
	var msg RevokeRoleMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.authz.Authorize(ctx, db, RoleAdmin); err != nil {
		return nil, err
	}
	return &msg, nil
}

func roleTags(role string, addr tollgate.Address) []common.KVPair {
	return []common.KVPair{
		{Key: []byte("role"), Value: []byte(role)},
		{Key: []byte("address"), Value: []byte(addr.String())},
	}
}
