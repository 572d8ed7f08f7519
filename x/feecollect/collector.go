package feecollect

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/coin"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/metrics"
	"github.com/tollgate-dao/tollgate/orm"
	"github.com/tollgate-dao/tollgate/x"
	"github.com/tollgate-dao/tollgate/x/utils"
)

// SourceFees is the source tag of fees received by the treasury.
const SourceFees = "fees"

// FeeCalculator computes the fee of an operation.
type FeeCalculator interface {
	ComputeFee(ctx tollgate.Context, db tollgate.KVStore, operation string, asset tollgate.Address, amount uint64, payer tollgate.Address) (uint64, error)
}

// Ledger moves fees between accounts.
type Ledger interface {
	Transfer(ctx tollgate.Context, db tollgate.KVStore, token, src, dest tollgate.Address, amount uint64) error
	TransferFrom(ctx tollgate.Context, db tollgate.KVStore, token, spender, src, dest tollgate.Address, amount uint64) error
}

// Treasury records fees sent to its account.
type Treasury interface {
	Account() tollgate.Address
	Receive(ctx tollgate.Context, db tollgate.KVStore, caller, token tollgate.Address, amount uint64, source string) error
}

// Collector charges fees and forwards them.
type Collector struct {
	calc     FeeCalculator
	ledger   Ledger
	treasury Treasury
	records  orm.ModelBucket
	guard    utils.Guard
	account  tollgate.Address
}

// NewCollector returns a collector. The treasury is optional, without it
// the treasury share is a plain transfer to the configured address.
func NewCollector(calc FeeCalculator, ledger Ledger, treasury Treasury) *Collector {
	return &Collector{
		calc:     calc,
		ledger:   ledger,
		treasury: treasury,
		records:  NewCollectionRecordBucket(),
		guard:    utils.NewGuard(packageName),
		account:  x.ModuleAddress(packageName),
	}
}

// Account returns the address holding fees while they are forwarded.
func (c *Collector) Account() tollgate.Address {
	return c.account
}

// Collect charges the fee of an operation to the caller and returns it. A
// zero fee is not transferred.
func (c *Collector) Collect(
	ctx tollgate.Context,
	db tollgate.KVStore,
	caller, token tollgate.Address,
	gross uint64,
	operation string,
) (uint64, error) {
	if err := token.Validate(); err != nil {
		return 0, errors.Wrap(err, "token")
	}
	if err := caller.Validate(); err != nil {
		return 0, errors.Wrap(err, "caller")
	}
	if gross == 0 {
		return 0, errors.Wrap(errors.ErrAmount, "gross amount must be greater than zero")
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return 0, err
	}

	var fee uint64
	err = c.guard.Run(db, func() error {
		fee, err = c.calc.ComputeFee(ctx, db, operation, token, gross, caller)
		if err != nil {
			return errors.Wrap(err, "compute fee")
		}
		if fee == 0 {
			return nil
		}
		return c.collect(ctx, db, conf, caller, token, gross, fee, operation)
	})
	if err != nil {
		return 0, err
	}
	return fee, nil
}

func (c *Collector) collect(
	ctx tollgate.Context,
	db tollgate.KVStore,
	conf *Configuration,
	caller, token tollgate.Address,
	gross, fee uint64,
	operation string,
) error {
	treasuryAmount, rewardAmount := fee, uint64(0)
	if conf.IsSplit() {
		treasuryAmount = coin.Share(fee, conf.TreasuryShareBps)
		rewardAmount = fee - treasuryAmount
	}

	now, err := tollgate.BlockUnixTime(ctx)
	if err != nil {
		return errors.Wrap(err, "block time")
	}
	record := &CollectionRecord{
		Metadata:       &tollgate.Metadata{Schema: 1},
		Token:          token,
		Payer:          caller,
		Operation:      operation,
		Gross:          gross,
		Fee:            fee,
		TreasuryAmount: treasuryAmount,
		RewardAmount:   rewardAmount,
		CreatedAt:      now,
	}
	if _, err := c.records.Put(db, nil, record); err != nil {
		return errors.Wrap(err, "cannot store collection record")
	}

	if err := c.ledger.TransferFrom(ctx, db, token, c.account, caller, c.account, fee); err != nil {
		return errors.Wrap(err, "cannot pull fee")
	}
	if treasuryAmount != 0 {
		if err := c.forwardToTreasury(ctx, db, conf.Treasury, token, treasuryAmount); err != nil {
			return err
		}
	}
	if rewardAmount != 0 {
		if err := c.ledger.Transfer(ctx, db, token, c.account, conf.RewardPool, rewardAmount); err != nil {
			return errors.Wrap(err, "cannot forward reward share")
		}
	}

	tokenLabel := token.String()
	metrics.FeesCollectedAmount.WithLabelValues(tokenLabel, "treasury").Add(float64(treasuryAmount))
	metrics.FeesCollectedAmount.WithLabelValues(tokenLabel, "reward_pool").Add(float64(rewardAmount))
	tollgate.GetLogger(ctx).Info("fee collected",
		"token", tokenLabel,
		"operation", operation,
		"fee", fee,
		"treasury", treasuryAmount,
		"reward", rewardAmount)
	return nil
}

// forwardToTreasury sends the treasury share. When the configured address
// is the treasury account, the treasury records it as a fee collection.
func (c *Collector) forwardToTreasury(ctx tollgate.Context, db tollgate.KVStore, dest, token tollgate.Address, amount uint64) error {
	if c.treasury != nil && dest.Equals(c.treasury.Account()) {
		if err := c.treasury.Receive(ctx, db, c.account, token, amount, SourceFees); err != nil {
			return errors.Wrap(err, "treasury receive")
		}
		return nil
	}
	if err := c.ledger.Transfer(ctx, db, token, c.account, dest, amount); err != nil {
		return errors.Wrap(err, "cannot forward treasury share")
	}
	return nil
}
