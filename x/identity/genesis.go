package identity

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// Initializer loads verifications from the "identity" section of the
// genesis file.
type Initializer struct{}

var _ tollgate.Initializer = (*Initializer)(nil)

func (*Initializer) FromGenesis(ctx tollgate.Context, opts tollgate.Options, db tollgate.KVStore) error {
	var verifications []struct {
		Address tollgate.Address `json:"address"`
		Level   uint32           `json:"level"`
		Note    string           `json:"note"`
	}
	if err := opts.ReadOptions("identity", &verifications); err != nil {
		return errors.Wrap(err, "cannot load identity")
	}
	if len(verifications) == 0 {
		return nil
	}
	now, err := tollgate.BlockUnixTime(ctx)
	if err != nil {
		return errors.Wrap(err, "genesis time")
	}
	ctrl := NewController()
	for i, v := range verifications {
		err := ctrl.Register(db, &Verification{
			Metadata: &tollgate.Metadata{Schema: 1},
			Address:  v.Address,
			Level:    v.Level,
			Note:     v.Note,
			Since:    now,
		})
		if err != nil {
			return errors.Wrapf(err, "verification %d", i)
		}
	}
	return nil
}
