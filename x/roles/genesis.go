package roles

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// Initializer fulfils the Initializer interface to load role assignments
// from the "roles" section of the genesis file.
type Initializer struct{}

var _ tollgate.Initializer = (*Initializer)(nil)

// FromGenesis grants every listed role.
func (*Initializer) FromGenesis(ctx tollgate.Context, opts tollgate.Options, db tollgate.KVStore) error {
	var assignments []struct {
		Role    string           `json:"role"`
		Address tollgate.Address `json:"address"`
	}
	if err := opts.ReadOptions("roles", &assignments); err != nil {
		return errors.Wrap(err, "cannot load roles")
	}
	ctrl := NewController()
	for i, a := range assignments {
		if err := validateRole(a.Role); err != nil {
			return errors.Wrapf(err, "assignment %d", i)
		}
		if err := ctrl.Grant(db, a.Role, a.Address); err != nil {
			return errors.Wrapf(err, "assignment %d", i)
		}
	}
	return nil
}
