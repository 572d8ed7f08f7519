package gconf

import (
	"reflect"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/x"
)

// OwnedConfig must have an Owner field. A configuration update message must
// be signed by an owner in order to be authorized to apply the change.
type OwnedConfig interface {
	Configuration
	GetOwner() tollgate.Address
}

// UpdateConfigurationHandler applies configuration patches.
type UpdateConfigurationHandler struct {
	pkg string
	// We require this type to load the data.
	config    OwnedConfig
	auth      x.Authenticator
	initAdmin func(tollgate.ReadOnlyKVStore) (tollgate.Address, error)
}

var _ tollgate.Handler = (*UpdateConfigurationHandler)(nil)

// NewUpdateConfigurationHandler returns a message handler that process
// configuration patch message.
//
// To pass authentication step, each message must be signed by the current
// configuration owner.
//
// When the configuration does not exist yet (it was not created via
// genesis), nobody owns it and nobody could create it. An optional
// initConfAdmin function can be given to provide a creation only admin
// address. It is used to authenticate the transaction only when no
// configuration exists. Once a configuration is created, the
// authentication relies only on the configuration's owner declaration.
func NewUpdateConfigurationHandler(
	pkg string,
	config OwnedConfig,
	auth x.Authenticator,
	initConfAdmin func(tollgate.ReadOnlyKVStore) (tollgate.Address, error),
) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:       pkg,
		config:    config,
		auth:      auth,
		initAdmin: initConfAdmin,
	}
}

func (h UpdateConfigurationHandler) Check(ctx tollgate.Context, store tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	return &tollgate.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx tollgate.Context, store tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	tollgate.GetLogger(ctx).Info("configuration updated", "package", h.pkg)
	return &tollgate.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx tollgate.Context, store tollgate.KVStore, tx tollgate.Tx) error {
	// The handler instance is shared, state of a previous call must not
	// leak into this one.
	h.config.Reset()

	switch err := Load(store, h.pkg, h.config); {
	case err == nil:
		// Configuration owner must sign the transaction in order to
		// authenticate the change.
		owner := h.config.GetOwner()
		if owner == nil {
			return errors.Wrap(errors.ErrUnauthorized, "owner signature required")
		}
		if !h.auth.HasAddress(ctx, owner) {
			return errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
		}
	case errors.ErrNotFound.Is(err):
		if h.initAdmin == nil {
			return errors.Wrap(errors.ErrUnauthorized, "configuration does not exist and cannot be initialized")
		}
		admin, err := h.initAdmin(store)
		if err != nil {
			return errors.Wrap(err, "get init admin")
		}
		if !h.auth.HasAddress(ctx, admin) {
			return errors.Wrap(errors.ErrUnauthorized, "initialization admin signature required")
		}
	default:
		return errors.Wrap(err, "load current configuration")
	}

	payload, clear, err := patchPayload(tx)
	if err != nil {
		return errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(h.config, payload, clear); err != nil {
		return errors.Wrap(err, "cannot patch config with message payload")
	}

	if err := Save(store, h.pkg, h.config); err != nil {
		return errors.Wrap(err, "cannot save updated config")
	}
	return nil
}

// patch resets the fields listed in clear and then copies all non zero
// fields of the payload into the config.
func patch(config OwnedConfig, payload OwnedConfig, clear []string) error {
	pType := reflect.TypeOf(payload)
	cType := reflect.TypeOf(config)
	if pType != cType {
		return errors.Wrapf(errors.ErrMsg, "patch of type %s does not match %s configuration", pType, cType)
	}

	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()

	for _, name := range clear {
		f := cval.FieldByName(name)
		if !f.IsValid() || !f.CanSet() || name == "Metadata" || name == "Owner" {
			return errors.Wrapf(errors.ErrInput, "field %q cannot be cleared", name)
		}
		f.Set(reflect.Zero(f.Type()))
	}

	for i := 0; i < cval.NumField(); i++ {
		if !cval.Field(i).CanSet() {
			continue
		}
		got := pval.Field(i)

		// Zero values do not update the original configuration.
		if isZero(got) {
			continue
		}

		cval.Field(i).Set(got)
	}

	return nil
}

// isZero returns true if given value represents a zero value of a given type.
func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload expects the transaction to have a message with "Patch" field of
// the same type as the configuration. Content of this field is extracted and
// returned, together with the content of an optional "Clear" field listing
// the names of configuration fields that must be reset to their zero value.
func patchPayload(tx tollgate.Tx) (OwnedConfig, []string, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, err
	}
	if msg == nil {
		return nil, nil, errors.Wrap(errors.ErrMsg, "nil message")
	}

	if err := msg.Validate(); err != nil {
		return nil, nil, err
	}

	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}

	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr {
		return nil, nil, errors.Wrapf(errors.ErrInput, `%T has no "Patch" field`, msg)
	}
	if field.IsNil() {
		return nil, nil, errors.Wrap(errors.ErrEmpty, `"Patch" field is required`)
	}
	payload, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, nil, errors.Wrap(errors.ErrInput, `"Patch" field is of a wrong type`)
	}

	var clear []string
	if f := pval.Elem().FieldByName("Clear"); f.IsValid() {
		names, ok := f.Interface().([]string)
		if !ok {
			return nil, nil, errors.Wrap(errors.ErrInput, `"Clear" field must be a list of names`)
		}
		clear = names
	}
	return payload, clear, nil
}
