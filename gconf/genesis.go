package gconf

import (
	"sort"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// Initializer loads the configuration of every registered package from the
// "conf" section of the genesis file. A registered package without a
// configuration fails the initialization.
type Initializer struct {
	// Configs maps a package name to an instance of its configuration,
	// used as the decoding destination.
	Configs map[string]Configuration
}

var _ tollgate.Initializer = Initializer{}

// FromGenesis saves all registered configurations. Packages are processed
// in name order so that the first failure is always the same.
func (i Initializer) FromGenesis(ctx tollgate.Context, opts tollgate.Options, db tollgate.KVStore) error {
	names := make([]string, 0, len(i.Configs))
	for name := range i.Configs {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs error
	for _, name := range names {
		if err := InitConfig(db, opts, name, i.Configs[name]); err != nil {
			errs = errors.Append(errs, err)
		}
	}
	return errs
}
