package ledger

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// GenesisToken is used to parse the json from the genesis file. Addresses
// are in hex, not base64.
type GenesisToken struct {
	Symbol   string `json:"symbol"`
	Balances []struct {
		Owner  tollgate.Address `json:"owner"`
		Amount uint64           `json:"amount"`
	} `json:"balances"`
	Allowances []struct {
		Owner   tollgate.Address `json:"owner"`
		Spender tollgate.Address `json:"spender"`
		Amount  uint64           `json:"amount"`
	} `json:"allowances"`
}

// Initializer loads tokens and balances from the "ledger" section of the
// genesis file.
type Initializer struct {
	// Ctrl is the controller used to create the state. Receive hooks
	// registered on it are called for the initial balances.
	Ctrl *Controller
}

var _ tollgate.Initializer = (*Initializer)(nil)

func (i *Initializer) FromGenesis(ctx tollgate.Context, opts tollgate.Options, db tollgate.KVStore) error {
	var tokens []GenesisToken
	if err := opts.ReadOptions("ledger", &tokens); err != nil {
		return errors.Wrap(err, "cannot load ledger")
	}
	ctrl := i.Ctrl
	if ctrl == nil {
		ctrl = NewController()
	}
	for _, t := range tokens {
		addr, err := ctrl.CreateToken(db, t.Symbol)
		if err != nil {
			return errors.Wrapf(err, "token %q", t.Symbol)
		}
		for _, b := range t.Balances {
			if err := ctrl.Mint(ctx, db, addr, b.Owner, b.Amount); err != nil {
				return errors.Wrapf(err, "token %q balance of %s", t.Symbol, b.Owner)
			}
		}
		for _, a := range t.Allowances {
			if err := ctrl.Approve(db, addr, a.Owner, a.Spender, a.Amount); err != nil {
				return errors.Wrapf(err, "token %q allowance of %s", t.Symbol, a.Spender)
			}
		}
	}
	return nil
}
