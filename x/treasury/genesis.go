package treasury

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// Initializer registers supported tokens and recipients from the
// "treasury" section of the genesis file. The ledger must be initialized
// first so that the tokens exist.
type Initializer struct {
	Ledger Ledger
}

var _ tollgate.Initializer = (*Initializer)(nil)

func (i *Initializer) FromGenesis(ctx tollgate.Context, opts tollgate.Options, db tollgate.KVStore) error {
	var genesis struct {
		Tokens     []tollgate.Address `json:"tokens"`
		Recipients []struct {
			Name          string           `json:"name"`
			Address       tollgate.Address `json:"address"`
			AllocationBps uint32           `json:"allocation_bps"`
		} `json:"recipients"`
	}
	if err := opts.ReadOptions("treasury", &genesis); err != nil {
		return errors.Wrap(err, "cannot load treasury")
	}

	t := NewTreasury(i.Ledger)
	for _, token := range genesis.Tokens {
		if err := t.AddToken(db, token); err != nil {
			return errors.Wrapf(err, "token %s", token)
		}
	}
	for _, r := range genesis.Recipients {
		if _, err := t.AddRecipient(db, r.Name, r.Address, r.AllocationBps); err != nil {
			return errors.Wrapf(err, "recipient %q", r.Name)
		}
	}
	return nil
}
