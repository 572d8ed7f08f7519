package ledger

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/coin"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/orm"
)

// ReceiveHook is called after the hooked address was credited. An error
// aborts the transfer.
type ReceiveHook func(ctx tollgate.Context, db tollgate.KVStore, token, from tollgate.Address, amount uint64) error

// Controller implements the token ledger operations.
type Controller struct {
	tokens     orm.ModelBucket
	balances   orm.ModelBucket
	allowances orm.ModelBucket
	hooks      map[string]ReceiveHook
}

// NewController returns a controller using the default buckets.
func NewController() *Controller {
	return &Controller{
		tokens:     NewTokenBucket(),
		balances:   NewBalanceBucket(),
		allowances: NewAllowanceBucket(),
		hooks:      make(map[string]ReceiveHook),
	}
}

// OnReceive registers a hook called every time the address is credited.
// Only one hook per address can be registered. Use only during the
// application setup.
func (c *Controller) OnReceive(addr tollgate.Address, hook ReceiveHook) {
	key := string(addr)
	if _, ok := c.hooks[key]; ok {
		panic("receive hook already registered for " + addr.String())
	}
	c.hooks[key] = hook
}

// CreateToken registers a new token with zero supply and returns its
// address.
func (c *Controller) CreateToken(db tollgate.KVStore, symbol string) (tollgate.Address, error) {
	addr := TokenAddress(symbol)
	switch err := c.tokens.Has(db, addr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "token %s", symbol)
	case !errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(err, "cannot load token")
	}
	t := &Token{Metadata: &tollgate.Metadata{Schema: 1}, Symbol: symbol}
	if _, err := c.tokens.Put(db, addr, t); err != nil {
		return nil, errors.Wrap(err, "cannot store token")
	}
	return addr, nil
}

// Token returns the token registered under the address.
func (c *Controller) Token(db tollgate.ReadOnlyKVStore, token tollgate.Address) (*Token, error) {
	var t Token
	switch err := c.tokens.One(db, token, &t); {
	case err == nil:
		return &t, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrUnknownToken, "%s", token)
	default:
		return nil, errors.Wrap(err, "cannot load token")
	}
}

// TotalSupply returns the amount of the token in circulation. It fails for
// an unknown token.
func (c *Controller) TotalSupply(db tollgate.ReadOnlyKVStore, token tollgate.Address) (uint64, error) {
	t, err := c.Token(db, token)
	if err != nil {
		return 0, err
	}
	return t.TotalSupply, nil
}

// BalanceOf returns the amount of the token held by the owner. An unknown
// owner holds nothing.
func (c *Controller) BalanceOf(db tollgate.ReadOnlyKVStore, token, owner tollgate.Address) (uint64, error) {
	var b Balance
	switch err := c.balances.One(db, compositeKey(token, owner), &b); {
	case err == nil:
		return b.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "cannot load balance")
	}
}

// Allowance returns the amount the spender may move from the owner
// account.
func (c *Controller) Allowance(db tollgate.ReadOnlyKVStore, token, owner, spender tollgate.Address) (uint64, error) {
	var a Allowance
	switch err := c.allowances.One(db, compositeKey(token, owner, spender), &a); {
	case err == nil:
		return a.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "cannot load allowance")
	}
}

// Approve sets the amount the spender may move from the owner account.
func (c *Controller) Approve(db tollgate.KVStore, token, owner, spender tollgate.Address, amount uint64) error {
	if _, err := c.Token(db, token); err != nil {
		return err
	}
	return c.setAllowance(db, token, owner, spender, amount)
}

func (c *Controller) setAllowance(db tollgate.KVStore, token, owner, spender tollgate.Address, amount uint64) error {
	a := &Allowance{
		Metadata: &tollgate.Metadata{Schema: 1},
		Token:    token,
		Owner:    owner,
		Spender:  spender,
		Amount:   amount,
	}
	if _, err := c.allowances.Put(db, compositeKey(token, owner, spender), a); err != nil {
		return errors.Wrap(err, "cannot store allowance")
	}
	return nil
}

// Mint creates new tokens on the destination account.
func (c *Controller) Mint(ctx tollgate.Context, db tollgate.KVStore, token, dest tollgate.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	t, err := c.Token(db, token)
	if err != nil {
		return err
	}
	if t.TotalSupply, err = coin.Add(t.TotalSupply, amount); err != nil {
		return errors.Wrap(err, "total supply")
	}
	if _, err := c.tokens.Put(db, token, t); err != nil {
		return errors.Wrap(err, "cannot store token")
	}
	return c.credit(ctx, db, token, nil, dest, amount)
}

// Transfer moves tokens owned by src to dest.
func (c *Controller) Transfer(ctx tollgate.Context, db tollgate.KVStore, token, src, dest tollgate.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if _, err := c.Token(db, token); err != nil {
		return err
	}
	if err := c.debit(db, token, src, amount); err != nil {
		return err
	}
	return c.credit(ctx, db, token, src, dest, amount)
}

// TransferFrom moves tokens owned by src to dest on behalf of the spender.
// The spender allowance is decreased by the amount.
func (c *Controller) TransferFrom(ctx tollgate.Context, db tollgate.KVStore, token, spender, src, dest tollgate.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	allowed, err := c.Allowance(db, token, src, spender)
	if err != nil {
		return err
	}
	if allowed < amount {
		return errors.Wrapf(ErrInsufficientAllowance, "%d approved, %d requested", allowed, amount)
	}
	if err := c.setAllowance(db, token, src, spender, allowed-amount); err != nil {
		return err
	}
	return c.Transfer(ctx, db, token, src, dest, amount)
}

func (c *Controller) debit(db tollgate.KVStore, token, owner tollgate.Address, amount uint64) error {
	have, err := c.BalanceOf(db, token, owner)
	if err != nil {
		return err
	}
	left, err := coin.Sub(have, amount)
	if err != nil {
		return errors.Wrapf(err, "balance of %s", owner)
	}
	return c.setBalance(db, token, owner, left)
}

func (c *Controller) credit(ctx tollgate.Context, db tollgate.KVStore, token, src, dest tollgate.Address, amount uint64) error {
	have, err := c.BalanceOf(db, token, dest)
	if err != nil {
		return err
	}
	total, err := coin.Add(have, amount)
	if err != nil {
		return errors.Wrapf(err, "balance of %s", dest)
	}
	if err := c.setBalance(db, token, dest, total); err != nil {
		return err
	}
	if hook, ok := c.hooks[string(dest)]; ok {
		if err := hook(ctx, db, token, src, amount); err != nil {
			return errors.Wrap(err, "receive hook")
		}
	}
	return nil
}

func (c *Controller) setBalance(db tollgate.KVStore, token, owner tollgate.Address, amount uint64) error {
	b := &Balance{
		Metadata: &tollgate.Metadata{Schema: 1},
		Token:    token,
		Owner:    owner,
		Amount:   amount,
	}
	if _, err := c.balances.Put(db, compositeKey(token, owner), b); err != nil {
		return errors.Wrap(err, "cannot store balance")
	}
	return nil
}

// Balances returns all non zero balances of the token.
func (c *Controller) Balances(db tollgate.ReadOnlyKVStore, token tollgate.Address) ([]*Balance, error) {
	it, err := c.balances.PrefixScan(db, token, false)
	if err != nil {
		return nil, errors.Wrap(err, "cannot scan balances")
	}
	defer it.Release()

	var res []*Balance
	for {
		var b Balance
		switch _, err := it.LoadNext(&b); {
		case err == nil:
			if b.Amount != 0 {
				res = append(res, &b)
			}
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, errors.Wrap(err, "cannot load balance")
		}
	}
}
