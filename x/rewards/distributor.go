package rewards

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/coin"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/metrics"
	"github.com/tollgate-dao/tollgate/orm"
	"github.com/tollgate-dao/tollgate/x"
	"github.com/tollgate-dao/tollgate/x/utils"
)

// Ledger holds the tokens of the reward pool.
type Ledger interface {
	Transfer(ctx tollgate.Context, db tollgate.KVStore, token, src, dest tollgate.Address, amount uint64) error
	BalanceOf(db tollgate.ReadOnlyKVStore, token, owner tollgate.Address) (uint64, error)
}

// Distributor manages cycles, participants and claims.
type Distributor struct {
	ledger       Ledger
	account      tollgate.Address
	guard        utils.Guard
	pauser       utils.Pauser
	participants orm.ModelBucket
	cycles       orm.ModelBucket
	closes       orm.ModelBucket
	claims       orm.ModelBucket
	pools        orm.ModelBucket
	reserves     orm.ModelBucket
}

// NewDistributor returns a distributor paying from its module account.
func NewDistributor(ledger Ledger) *Distributor {
	return &Distributor{
		ledger:       ledger,
		account:      x.ModuleAddress(packageName),
		guard:        utils.NewGuard(packageName),
		pauser:       utils.NewPauser(packageName),
		participants: NewParticipantBucket(),
		cycles:       NewCycleBucket(),
		closes:       NewCycleCloseBucket(),
		claims:       NewClaimBucket(),
		pools:        NewPoolBucket(),
		reserves:     NewReserveBucket(),
	}
}

// Account returns the address of the reward pool. Fees destined to
// participants are sent to it.
func (d *Distributor) Account() tollgate.Address {
	return d.account
}

// Start opens the first cycle at the block time. It does nothing if a
// cycle exists already.
func (d *Distributor) Start(ctx tollgate.Context, db tollgate.KVStore) (*Cycle, error) {
	switch cur, err := d.CurrentCycle(db); {
	case err == nil:
		return cur, nil
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	now, err := tollgate.BlockUnixTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	return d.openCycle(db, 1, now)
}

func (d *Distributor) openCycle(db tollgate.KVStore, number uint64, now tollgate.UnixTime) (*Cycle, error) {
	conf, err := loadConfiguration(db)
	if err != nil {
		return nil, err
	}
	c := &Cycle{
		Metadata:  &tollgate.Metadata{Schema: 1},
		Number:    number,
		StartTime: now,
		EndTime:   now.Add(conf.CycleDuration()),
	}
	if _, err := d.cycles.Put(db, cycleKey(number), c); err != nil {
		return nil, errors.Wrap(err, "cannot store cycle")
	}
	return c, nil
}

// CurrentCycle returns the open cycle. ErrNotFound is returned before the
// first cycle is started.
func (d *Distributor) CurrentCycle(db tollgate.ReadOnlyKVStore) (*Cycle, error) {
	it, err := d.cycles.PrefixScan(db, nil, true)
	if err != nil {
		return nil, errors.Wrap(err, "scan")
	}
	defer it.Release()
	var c Cycle
	switch _, err := it.LoadNext(&c); {
	case err == nil:
		return &c, nil
	case errors.ErrIteratorDone.Is(err):
		return nil, errors.Wrap(errors.ErrNotFound, "no cycle started")
	default:
		return nil, err
	}
}

// Cycle returns a cycle by number.
func (d *Distributor) Cycle(db tollgate.ReadOnlyKVStore, number uint64) (*Cycle, error) {
	var c Cycle
	if err := d.cycles.One(db, cycleKey(number), &c); err != nil {
		return nil, errors.Wrapf(err, "cycle %d", number)
	}
	return &c, nil
}

// DistributeRewards closes the current cycle once its end time passed and
// opens the next one. The caller is recorded in the audit trail.
func (d *Distributor) DistributeRewards(ctx tollgate.Context, db tollgate.KVStore, caller tollgate.Address) (*Cycle, error) {
	if err := d.pauser.RequireActive(db); err != nil {
		return nil, err
	}
	var next *Cycle
	err := d.guard.Run(db, func() error {
		cur, err := d.CurrentCycle(db)
		if err != nil {
			return err
		}
		if cur.Distributed {
			return errors.Wrapf(ErrAlreadyDistributed, "cycle %d", cur.Number)
		}
		now, err := tollgate.BlockUnixTime(ctx)
		if err != nil {
			return errors.Wrap(err, "block time")
		}
		if !cur.Ended(now) {
			return errors.Wrapf(ErrCycleNotEnded, "cycle %d ends at %s", cur.Number, cur.EndTime.Time())
		}

		cur.Distributed = true
		cur.DistributedAt = now
		if _, err := d.cycles.Put(db, cycleKey(cur.Number), cur); err != nil {
			return errors.Wrap(err, "cannot store cycle")
		}
		shares, err := d.TotalShares(db)
		if err != nil {
			return err
		}
		record := &CycleClose{
			Metadata:  &tollgate.Metadata{Schema: 1},
			Cycle:     cur.Number,
			ClosedBy:  caller,
			ClosedAt:  now,
			SharesBps: shares,
		}
		if _, err := d.closes.Put(db, nil, record); err != nil {
			return errors.Wrap(err, "cannot store cycle close")
		}
		if next, err = d.openCycle(db, cur.Number+1, now); err != nil {
			return err
		}

		metrics.RewardCyclesClosedTotal.Inc()
		tollgate.GetLogger(ctx).Info("reward cycle closed",
			"cycle", cur.Number,
			"shares_bps", shares,
			"next_end", next.EndTime.Time())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Claim pays the participant its share of the given token for a closed
// cycle. A triple (cycle, token, participant) is paid at most once.
func (d *Distributor) Claim(ctx tollgate.Context, db tollgate.KVStore, participant, token tollgate.Address, cycle uint64) (uint64, error) {
	if err := participant.Validate(); err != nil {
		return 0, errors.Wrap(err, "participant")
	}
	if err := token.Validate(); err != nil {
		return 0, errors.Wrap(err, "token")
	}
	if err := d.pauser.RequireActive(db); err != nil {
		return 0, err
	}
	var amount uint64
	err := d.guard.Run(db, func() error {
		p, err := d.activeParticipant(db, participant)
		if err != nil {
			return err
		}
		if err := d.requireDistributed(db, cycle); err != nil {
			return err
		}
		key := claimKey(cycle, token, participant)
		switch err := d.claims.Has(db, key); {
		case err == nil:
			return errors.Wrapf(ErrAlreadyClaimed, "cycle %d", cycle)
		case !errors.ErrNotFound.Is(err):
			return errors.Wrap(err, "cannot load claim")
		}
		now, err := tollgate.BlockUnixTime(ctx)
		if err != nil {
			return errors.Wrap(err, "block time")
		}
		conf, err := loadConfiguration(db)
		if err != nil {
			return err
		}

		var (
			pool     *Pool
			reserve  *Reserve
			released []*Pool
		)
		if conf.Snapshot() {
			if pool, err = d.pool(db, cycle, token); err != nil {
				return err
			}
			if pool == nil {
				if reserve, released, err = d.releasePools(db, cycle, token); err != nil {
					return err
				}
				if pool, err = d.freezePool(db, cycle, token, reserve); err != nil {
					return err
				}
			} else if reserve, err = d.reserve(db, token); err != nil {
				return err
			}
			amount = coin.Min(coin.Share(pool.Base, p.SharesBps), pool.Unclaimed())
		} else {
			available, err := d.available(db, token)
			if err != nil {
				return err
			}
			amount = coin.Share(available, p.SharesBps)
		}
		if amount == 0 {
			return errors.Wrap(errors.ErrEmpty, "nothing to claim")
		}

		// Bookkeeping is stored before the transfer.
		claim := &Claim{
			Metadata:    &tollgate.Metadata{Schema: 1},
			Cycle:       cycle,
			Token:       token,
			Participant: participant,
			Amount:      amount,
			SharesBps:   p.SharesBps,
			ClaimedAt:   now,
		}
		if _, err := d.claims.Put(db, key, claim); err != nil {
			return errors.Wrap(err, "cannot store claim")
		}
		p.LastClaim = now
		if _, err := d.participants.Put(db, participant, p); err != nil {
			return errors.Wrap(err, "cannot store participant")
		}
		for _, r := range released {
			if _, err := d.pools.Put(db, poolKey(r.Cycle, token), r); err != nil {
				return errors.Wrap(err, "cannot store released pool")
			}
		}
		if pool != nil {
			pool.Claimed += amount
			reserve.Amount -= amount
			if _, err := d.pools.Put(db, poolKey(cycle, token), pool); err != nil {
				return errors.Wrap(err, "cannot store pool")
			}
			if _, err := d.reserves.Put(db, token, reserve); err != nil {
				return errors.Wrap(err, "cannot store reserve")
			}
		}

		if err := d.ledger.Transfer(ctx, db, token, d.account, participant, amount); err != nil {
			return errors.Wrap(err, "cannot pay claim")
		}

		tokenLabel := token.String()
		metrics.RewardClaimsTotal.WithLabelValues(tokenLabel).Inc()
		metrics.RewardClaimedAmount.WithLabelValues(tokenLabel).Add(float64(amount))
		tollgate.GetLogger(ctx).Info("reward claimed",
			"cycle", cycle,
			"token", tokenLabel,
			"participant", participant.String(),
			"amount", amount)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}

func (d *Distributor) requireDistributed(db tollgate.ReadOnlyKVStore, number uint64) error {
	cur, err := d.CurrentCycle(db)
	if err != nil {
		return err
	}
	if number == 0 || number >= cur.Number {
		return errors.Wrapf(ErrCycleNotDistributed, "cycle %d is not closed", number)
	}
	c, err := d.Cycle(db, number)
	if err != nil {
		return err
	}
	if !c.Distributed {
		return errors.Wrapf(ErrCycleNotDistributed, "cycle %d", number)
	}
	return nil
}

// Claimed returns the claim of a participant, or ErrNotFound.
func (d *Distributor) Claimed(db tollgate.ReadOnlyKVStore, participant, token tollgate.Address, cycle uint64) (*Claim, error) {
	var c Claim
	if err := d.claims.One(db, claimKey(cycle, token, participant), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// pool returns the frozen pool or nil if there is none yet.
func (d *Distributor) pool(db tollgate.ReadOnlyKVStore, cycle uint64, token tollgate.Address) (*Pool, error) {
	var p Pool
	switch err := d.pools.One(db, poolKey(cycle, token), &p); {
	case err == nil:
		return &p, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "cannot load pool")
	}
}

// available returns the reward balance of a token that no frozen pool
// reserves.
func (d *Distributor) available(db tollgate.ReadOnlyKVStore, token tollgate.Address) (uint64, error) {
	reserve, err := d.reserve(db, token)
	if err != nil {
		return 0, err
	}
	held, err := d.ledger.BalanceOf(db, token, d.account)
	if err != nil {
		return 0, errors.Wrap(err, "pool balance")
	}
	available, err := coin.Sub(held, reserve.Amount)
	if err != nil {
		return 0, errors.Wrap(err, "reserved amount is not held")
	}
	return available, nil
}

// freezePool creates the pool of a cycle from the available balance. Only
// the part allocated to the active shares is added to the reserve.
func (d *Distributor) freezePool(db tollgate.ReadOnlyKVStore, cycle uint64, token tollgate.Address, reserve *Reserve) (*Pool, error) {
	held, err := d.ledger.BalanceOf(db, token, d.account)
	if err != nil {
		return nil, errors.Wrap(err, "pool balance")
	}
	base, err := coin.Sub(held, reserve.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "reserved amount is not held")
	}
	shares, err := d.TotalShares(db)
	if err != nil {
		return nil, err
	}
	pool := &Pool{
		Metadata: &tollgate.Metadata{Schema: 1},
		Cycle:    cycle,
		Token:    token,
		Base:     base,
		Amount:   coin.Share(base, shares),
	}
	reserve.Amount += pool.Amount
	return pool, nil
}

// releasePools returns the unclaimed part of every pool of an earlier
// cycle to the reward balance. Claims against those cycles are no longer
// paid once a later cycle is frozen. The updated reserve and the released
// pools are returned, storing them is left to the caller.
func (d *Distributor) releasePools(db tollgate.ReadOnlyKVStore, cycle uint64, token tollgate.Address) (*Reserve, []*Pool, error) {
	reserve, err := d.reserve(db, token)
	if err != nil {
		return nil, nil, err
	}
	var pools []*Pool
	if _, err := d.pools.ByIndex(db, "token", token, &pools); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load pools")
	}
	var released []*Pool
	for _, p := range pools {
		unclaimed := p.Unclaimed()
		if p.Cycle >= cycle || unclaimed == 0 {
			continue
		}
		p.Released += unclaimed
		if reserve.Amount, err = coin.Sub(reserve.Amount, unclaimed); err != nil {
			return nil, nil, errors.Wrap(err, "released amount is not reserved")
		}
		released = append(released, p)
	}
	return reserve, released, nil
}

func (d *Distributor) reserve(db tollgate.ReadOnlyKVStore, token tollgate.Address) (*Reserve, error) {
	var r Reserve
	switch err := d.reserves.One(db, token, &r); {
	case err == nil:
		return &r, nil
	case errors.ErrNotFound.Is(err):
		return &Reserve{Metadata: &tollgate.Metadata{Schema: 1}, Token: token}, nil
	default:
		return nil, errors.Wrap(err, "cannot load reserve")
	}
}

// Reserved returns the frozen and not yet claimed amount of a token.
func (d *Distributor) Reserved(db tollgate.ReadOnlyKVStore, token tollgate.Address) (uint64, error) {
	r, err := d.reserve(db, token)
	if err != nil {
		return 0, err
	}
	return r.Amount, nil
}

// SyncCycleDuration moves the end time of the open cycle to match the
// configured duration. Closed cycles are not changed.
func (d *Distributor) SyncCycleDuration(db tollgate.KVStore) error {
	cur, err := d.CurrentCycle(db)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil
	case err != nil:
		return err
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return err
	}
	cur.EndTime = cur.StartTime.Add(conf.CycleDuration())
	if _, err := d.cycles.Put(db, cycleKey(cur.Number), cur); err != nil {
		return errors.Wrap(err, "cannot store cycle")
	}
	return nil
}

// Pause stops cycle closing and claims.
func (d *Distributor) Pause(db tollgate.KVStore) error {
	return d.pauser.Pause(db)
}

func (d *Distributor) Unpause(db tollgate.KVStore) error {
	return d.pauser.Unpause(db)
}

func (d *Distributor) IsPaused(db tollgate.ReadOnlyKVStore) (bool, error) {
	return d.pauser.IsPaused(db)
}
