package ledger

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/x"
	"github.com/tollgate-dao/tollgate/x/roles"
)

// RoleMinter is required to create tokens and mint them.
const RoleMinter = "minter"

// RegisterRoutes registers handlers for ledger message processing.
func RegisterRoutes(r tollgate.Registry, auth x.Authenticator, authz roles.Authorizer, ctrl *Controller) {
	r.Handle(pathTransferMsg, &transferHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathApproveMsg, &approveHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathMintMsg, &mintHandler{authz: authz, ctrl: ctrl})
	r.Handle(pathCreateTokenMsg, &createTokenHandler{authz: authz, ctrl: ctrl})
}

// signer returns the address of the main transaction signer.
func signer(ctx tollgate.Context, auth x.Authenticator) (tollgate.Address, error) {
	main := x.MainSigner(ctx, auth)
	if main == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return main.Address(), nil
}

type transferHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

func (h *transferHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *transferHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, src, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(ctx, db, msg.Token, src, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{}, nil
}

func (h *transferHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*TransferMsg, tollgate.Address, error) {
	var msg TransferMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	src, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, src, nil
}

type approveHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

func (h *approveHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *approveHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Approve(db, msg.Token, owner, msg.Spender, msg.Amount); err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{}, nil
}

func (h *approveHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*ApproveMsg, tollgate.Address, error) {
	var msg ApproveMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, owner, nil
}

type mintHandler struct {
	authz roles.Authorizer
	ctrl  *Controller
}

func (h *mintHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *mintHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Mint(ctx, db, msg.Token, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{}, nil
}

func (h *mintHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*MintMsg, error) {
	var msg MintMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.authz.Authorize(ctx, db, RoleMinter); err != nil {
		return nil, err
	}
	return &msg, nil
}

type createTokenHandler struct {
	authz roles.Authorizer
	ctrl  *Controller
}

func (h *createTokenHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *createTokenHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.CreateToken(db, msg.Symbol)
	if err != nil {
		return nil, err
	}
	return &tollgate.DeliverResult{Data: addr}, nil
}

func (h *createTokenHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*CreateTokenMsg, error) {
	var msg CreateTokenMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.authz.Authorize(ctx, db, RoleMinter); err != nil {
		return nil, err
	}
	return &msg, nil
}
