package treasury

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/coin"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/metrics"
	"github.com/tollgate-dao/tollgate/orm"
	"github.com/tollgate-dao/tollgate/x"
	"github.com/tollgate-dao/tollgate/x/utils"
)

// Ledger holds the tokens of the treasury account.
type Ledger interface {
	Transfer(ctx tollgate.Context, db tollgate.KVStore, token, src, dest tollgate.Address, amount uint64) error
	BalanceOf(db tollgate.ReadOnlyKVStore, token, owner tollgate.Address) (uint64, error)
	TotalSupply(db tollgate.ReadOnlyKVStore, token tollgate.Address) (uint64, error)
}

// Treasury manages the tracked balances and their distribution.
type Treasury struct {
	ledger        Ledger
	account       tollgate.Address
	guard         utils.Guard
	pauser        utils.Pauser
	recipients    orm.ModelBucket
	tokens        orm.ModelBucket
	collections   orm.ModelBucket
	distributions orm.ModelBucket
	payouts       orm.ModelBucket
}

// NewTreasury returns a treasury holding its tokens on the ledger.
func NewTreasury(ledger Ledger) *Treasury {
	return &Treasury{
		ledger:        ledger,
		account:       x.ModuleAddress(packageName),
		guard:         utils.NewGuard(packageName),
		pauser:        utils.NewPauser(packageName),
		recipients:    NewRecipientBucket(),
		tokens:        NewTokenBalanceBucket(),
		collections:   NewCollectionBucket(),
		distributions: NewDistributionBucket(),
		payouts:       NewRecipientDistributionBucket(),
	}
}

// Account returns the address holding the treasury tokens.
func (t *Treasury) Account() tollgate.Address {
	return t.account
}

// Receive moves tokens from the caller to the treasury and adds them to the
// tracked balance. A distribution is started when the balance reaches the
// automatic distribution threshold and the cooldown elapsed.
func (t *Treasury) Receive(ctx tollgate.Context, db tollgate.KVStore, caller, token tollgate.Address, amount uint64, source string) error {
	if err := caller.Validate(); err != nil {
		return errors.Wrap(err, "caller")
	}
	if err := token.Validate(); err != nil {
		return errors.Wrap(err, "token")
	}
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be greater than zero")
	}
	if err := validateSource(source); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := t.pauser.RequireActive(db); err != nil {
		return err
	}
	return t.guard.Run(db, func() error {
		tb, err := t.tokenBalance(db, token)
		if err != nil {
			return err
		}
		now, err := tollgate.BlockUnixTime(ctx)
		if err != nil {
			return errors.Wrap(err, "block time")
		}

		if tb.Balance, err = coin.Add(tb.Balance, amount); err != nil {
			return errors.Wrap(err, "balance")
		}
		if _, err := t.tokens.Put(db, token, tb); err != nil {
			return errors.Wrap(err, "cannot store balance")
		}
		record := &Collection{
			Metadata:  &tollgate.Metadata{Schema: 1},
			Token:     token,
			Sender:    caller,
			Amount:    amount,
			Source:    source,
			CreatedAt: now,
		}
		if _, err := t.collections.Put(db, nil, record); err != nil {
			return errors.Wrap(err, "cannot store collection")
		}
		if err := t.ledger.Transfer(ctx, db, token, caller, t.account, amount); err != nil {
			return errors.Wrap(err, "cannot receive tokens")
		}

		conf, err := loadConfiguration(db)
		if err != nil {
			return err
		}
		if conf.AutoDistributeThreshold == 0 || tb.Balance < conf.AutoDistributeThreshold {
			return nil
		}
		if !cooldownElapsed(tb, conf, now) {
			return nil
		}
		switch _, err := t.distribute(ctx, db, tb, now, TriggerAuto); {
		case err == nil, errors.ErrEmpty.Is(err):
			return nil
		default:
			return err
		}
	})
}

// Distribute pays the tracked balance of a token to the recipients.
func (t *Treasury) Distribute(ctx tollgate.Context, db tollgate.KVStore, token tollgate.Address) (*Distribution, error) {
	if err := token.Validate(); err != nil {
		return nil, errors.Wrap(err, "token")
	}
	if err := t.pauser.RequireActive(db); err != nil {
		return nil, err
	}
	var dist *Distribution
	err := t.guard.Run(db, func() error {
		tb, err := t.tokenBalance(db, token)
		if err != nil {
			return err
		}
		conf, err := loadConfiguration(db)
		if err != nil {
			return err
		}
		if tb.Balance == 0 || tb.Balance < conf.MinDistributionAmount {
			return errors.Wrapf(ErrBelowMinimum, "balance %d, minimum %d", tb.Balance, conf.MinDistributionAmount)
		}
		now, err := tollgate.BlockUnixTime(ctx)
		if err != nil {
			return errors.Wrap(err, "block time")
		}
		if !cooldownElapsed(tb, conf, now) {
			next := tb.LastDistribution.Add(conf.Cooldown())
			return errors.Wrapf(ErrCooldown, "next distribution at %s", next.Time())
		}
		dist, err = t.distribute(ctx, db, tb, now, TriggerManual)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dist, nil
}

func cooldownElapsed(tb *TokenBalance, conf *Configuration, now tollgate.UnixTime) bool {
	if tb.LastDistribution.IsZero() {
		return true
	}
	return now >= tb.LastDistribution.Add(conf.Cooldown())
}

// distribute must be called while holding the guard. The tracked balance
// is zeroed before any transfer and the remainder restored afterwards.
// ErrEmpty is returned when no recipient would be paid.
func (t *Treasury) distribute(
	ctx tollgate.Context,
	db tollgate.KVStore,
	tb *TokenBalance,
	now tollgate.UnixTime,
	trigger string,
) (*Distribution, error) {
	balance := tb.Balance
	recipients, keys, err := t.activeRecipients(db)
	if err != nil {
		return nil, err
	}
	type payout struct {
		key    []byte
		to     tollgate.Address
		amount uint64
	}
	var (
		payouts   []payout
		totalPaid uint64
	)
	for i, r := range recipients {
		share := coin.Share(balance, r.AllocationBps)
		if share == 0 {
			continue
		}
		payouts = append(payouts, payout{key: keys[i], to: r.Address, amount: share})
		totalPaid += share
	}
	if totalPaid > balance {
		return nil, errors.Wrapf(errors.ErrHuman, "paid %d out of %d", totalPaid, balance)
	}
	// Nothing is recorded and the cooldown does not restart.
	if totalPaid == 0 {
		return nil, errors.Wrapf(errors.ErrEmpty, "no active recipient is owed any of %d", balance)
	}
	remainder := balance - totalPaid

	tb.Balance = 0
	tb.LastDistribution = now
	if _, err := t.tokens.Put(db, tb.Token, tb); err != nil {
		return nil, errors.Wrap(err, "cannot store balance")
	}

	dist := &Distribution{
		Metadata:  &tollgate.Metadata{Schema: 1},
		Token:     tb.Token,
		Balance:   balance,
		TotalPaid: totalPaid,
		Remainder: remainder,
		Trigger:   trigger,
		CreatedAt: now,
	}
	distID, err := t.distributions.Put(db, nil, dist)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store distribution")
	}
	for _, p := range payouts {
		record := &RecipientDistribution{
			Metadata:       &tollgate.Metadata{Schema: 1},
			DistributionID: distID,
			RecipientID:    p.key,
			Address:        p.to,
			Amount:         p.amount,
		}
		if _, err := t.payouts.Put(db, nil, record); err != nil {
			return nil, errors.Wrap(err, "cannot store payout")
		}
	}
	if remainder != 0 {
		tb.Balance = remainder
		if _, err := t.tokens.Put(db, tb.Token, tb); err != nil {
			return nil, errors.Wrap(err, "cannot store balance")
		}
	}

	for _, p := range payouts {
		if err := t.ledger.Transfer(ctx, db, tb.Token, t.account, p.to, p.amount); err != nil {
			return nil, errors.Wrapf(err, "cannot pay %s", p.to)
		}
	}

	tokenLabel := tb.Token.String()
	metrics.TreasuryDistributionsTotal.WithLabelValues(tokenLabel, trigger).Inc()
	metrics.TreasuryDistributedAmount.WithLabelValues(tokenLabel).Add(float64(totalPaid))
	tollgate.GetLogger(ctx).Info("treasury distribution",
		"token", tokenLabel,
		"trigger", trigger,
		"balance", balance,
		"paid", totalPaid,
		"remainder", remainder,
		"recipients", len(payouts))
	return dist, nil
}

// Withdraw moves tracked tokens out of the treasury.
func (t *Treasury) Withdraw(ctx tollgate.Context, db tollgate.KVStore, token, dest tollgate.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be greater than zero")
	}
	if err := t.pauser.RequireActive(db); err != nil {
		return err
	}
	return t.guard.Run(db, func() error {
		tb, err := t.tokenBalance(db, token)
		if err != nil {
			return err
		}
		if tb.Balance, err = coin.Sub(tb.Balance, amount); err != nil {
			return errors.Wrap(err, "tracked balance")
		}
		if _, err := t.tokens.Put(db, token, tb); err != nil {
			return errors.Wrap(err, "cannot store balance")
		}
		if err := t.ledger.Transfer(ctx, db, token, t.account, dest, amount); err != nil {
			return errors.Wrap(err, "cannot withdraw")
		}
		return nil
	})
}

// Recover moves tokens held by the treasury account that are not part of
// the tracked balance. Tokens that are not supported are recovered in full.
func (t *Treasury) Recover(ctx tollgate.Context, db tollgate.KVStore, token, dest tollgate.Address) (uint64, error) {
	if err := token.Validate(); err != nil {
		return 0, errors.Wrap(err, "token")
	}
	if err := dest.Validate(); err != nil {
		return 0, errors.Wrap(err, "destination")
	}
	if err := t.pauser.RequireActive(db); err != nil {
		return 0, err
	}
	var amount uint64
	err := t.guard.Run(db, func() error {
		held, err := t.ledger.BalanceOf(db, token, t.account)
		if err != nil {
			return errors.Wrap(err, "ledger balance")
		}
		var tracked uint64
		switch tb, err := t.tokenBalance(db, token); {
		case err == nil:
			tracked = tb.Balance
		case ErrUnsupportedToken.Is(err):
		default:
			return err
		}
		if held <= tracked {
			return errors.Wrap(errors.ErrEmpty, "nothing to recover")
		}
		amount = held - tracked
		if err := t.ledger.Transfer(ctx, db, token, t.account, dest, amount); err != nil {
			return errors.Wrap(err, "cannot recover")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}

// Pause stops receives, distributions, withdrawals and recoveries.
func (t *Treasury) Pause(db tollgate.KVStore) error {
	return t.pauser.Pause(db)
}

// Unpause reverts Pause.
func (t *Treasury) Unpause(db tollgate.KVStore) error {
	return t.pauser.Unpause(db)
}

// IsPaused returns true if the treasury is paused.
func (t *Treasury) IsPaused(db tollgate.ReadOnlyKVStore) (bool, error) {
	return t.pauser.IsPaused(db)
}

// AddToken registers a supported token. The ledger must know the token.
func (t *Treasury) AddToken(db tollgate.KVStore, token tollgate.Address) error {
	if err := token.Validate(); err != nil {
		return errors.Wrap(err, "token")
	}
	switch err := t.tokens.Has(db, token); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "token %s", token)
	case !errors.ErrNotFound.Is(err):
		return errors.Wrap(err, "cannot load token")
	}
	if _, err := t.ledger.TotalSupply(db, token); err != nil {
		return errors.Wrapf(err, "token %s failed the liveness check", token)
	}
	tb := &TokenBalance{Metadata: &tollgate.Metadata{Schema: 1}, Token: token}
	if _, err := t.tokens.Put(db, token, tb); err != nil {
		return errors.Wrap(err, "cannot store token")
	}
	return nil
}

// RemoveToken unregisters a supported token. Its tracked balance must be
// distributed or withdrawn first.
func (t *Treasury) RemoveToken(db tollgate.KVStore, token tollgate.Address) error {
	tb, err := t.tokenBalance(db, token)
	if err != nil {
		return err
	}
	if tb.Balance != 0 {
		return errors.Wrapf(errors.ErrState, "token %s has a tracked balance of %d", token, tb.Balance)
	}
	if err := t.tokens.Delete(db, token); err != nil {
		return errors.Wrap(err, "cannot delete token")
	}
	return nil
}

// Balance returns the tracked balance of a supported token.
func (t *Treasury) Balance(db tollgate.ReadOnlyKVStore, token tollgate.Address) (*TokenBalance, error) {
	return t.tokenBalance(db, token)
}

// Tokens returns the supported tokens with their tracked balances.
func (t *Treasury) Tokens(db tollgate.ReadOnlyKVStore) ([]*TokenBalance, error) {
	it, err := t.tokens.PrefixScan(db, nil, false)
	if err != nil {
		return nil, errors.Wrap(err, "scan")
	}
	defer it.Release()
	var res []*TokenBalance
	for {
		var tb TokenBalance
		switch _, err := it.LoadNext(&tb); {
		case err == nil:
			res = append(res, &tb)
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

func (t *Treasury) tokenBalance(db tollgate.ReadOnlyKVStore, token tollgate.Address) (*TokenBalance, error) {
	var tb TokenBalance
	switch err := t.tokens.One(db, token, &tb); {
	case err == nil:
		return &tb, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrUnsupportedToken, "token %s", token)
	default:
		return nil, errors.Wrap(err, "cannot load token")
	}
}
