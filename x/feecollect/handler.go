package feecollect

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

// RoleFeeCollector is required to charge fees.
const RoleFeeCollector = "fee-collector"

// RegisterRoutes registers handlers for fee collection.
func RegisterRoutes(r tollgate.Registry, auth x.Authenticator, authz roles.Authorizer, collector *Collector) {
	r.Handle(pathCollectMsg, &collectHandler{authz: authz, collector: collector})
	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth))
}

// NewConfigHandler returns a handler of configuration patches signed by the
// configuration owner.
func NewConfigHandler(auth x.Authenticator) tollgate.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(packageName, &conf, auth, nil)
}

type collectHandler struct {
	authz     roles.Authorizer
	collector *Collector
}

func (h *collectHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h *collectHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	fee, err := h.collector.Collect(ctx, db, caller, msg.Token, msg.Amount, msg.Operation)
	if err != nil {
		return nil, err
	}
	tags := []common.KVPair{
		{Key: []byte("token"), Value: []byte(msg.Token.String())},
		{Key: []byte("fee"), Value: []byte(strconv.FormatUint(fee, 10))},
	}
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, fee)
	return &tollgate.DeliverResult{Data: data, Tags: tags}, nil
}

func (h *collectHandler) validate(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*CollectMsg, tollgate.Address, error) {
	var msg CollectMsg
	if err := tollgate.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := h.authz.Authorize(ctx, db, RoleFeeCollector)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}
