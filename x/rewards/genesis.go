package rewards

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// Initializer registers participants from the "rewards" section of the
// genesis file and opens the first cycle at the genesis time. The package
// configuration must be loaded first so that the first cycle gets the
// configured duration.
type Initializer struct {
	Ledger Ledger
}

var _ tollgate.Initializer = (*Initializer)(nil)

func (i *Initializer) FromGenesis(ctx tollgate.Context, opts tollgate.Options, db tollgate.KVStore) error {
	var genesis struct {
		Participants []struct {
			Address   tollgate.Address `json:"address"`
			SharesBps uint32           `json:"shares_bps"`
		} `json:"participants"`
	}
	if err := opts.ReadOptions("rewards", &genesis); err != nil {
		return errors.Wrap(err, "cannot load rewards")
	}

	d := NewDistributor(i.Ledger)
	for _, p := range genesis.Participants {
		if err := d.AddParticipant(db, p.Address, p.SharesBps); err != nil {
			return errors.Wrapf(err, "participant %s", p.Address)
		}
	}
	if _, err := d.Start(ctx, db); err != nil {
		return errors.Wrap(err, "cannot open the first cycle")
	}
	return nil
}
