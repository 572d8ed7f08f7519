package feecalc

import (
	"strconv"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/coin"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/gconf"
	"github.com/tollgate-dao/tollgate/metrics"
	"github.com/tollgate-dao/tollgate/orm"
)

// IdentityController is the verification registry queried for discount
// eligibility. Level 0 means the address is not eligible.
type IdentityController interface {
	VerificationLevel(db tollgate.ReadOnlyKVStore, addr tollgate.Address) (uint8, error)
}

// Quote is the outcome of a fee resolution.
type Quote struct {
	Fee uint64
	// PercentageBps is the percentage charged, after the discount.
	PercentageBps uint32
	FlatFee       uint64
	// Overridden is set when an asset override was used.
	Overridden      bool
	DiscountApplied bool
	DiscountBps     uint32
}

// Calculator resolves and records operation fees.
type Calculator struct {
	identity  IdentityController
	fees      orm.ModelBucket
	overrides orm.ModelBucket
	discounts orm.ModelBucket
	records   orm.ModelBucket
}

// NewCalculator returns a calculator that uses the given registry to look
// up verification levels of payers. A nil registry disables discounts.
func NewCalculator(identity IdentityController) *Calculator {
	return &Calculator{
		identity:  identity,
		fees:      NewOperationFeeBucket(),
		overrides: NewAssetOverrideBucket(),
		discounts: NewDiscountBucket(),
		records:   NewFeeRecordBucket(),
	}
}

// ComputeFee returns the fee charged for the operation and appends it to
// the fee audit table.
func (c *Calculator) ComputeFee(
	ctx tollgate.Context,
	db tollgate.KVStore,
	operation string,
	asset tollgate.Address,
	amount uint64,
	payer tollgate.Address,
) (uint64, error) {
	q, err := c.Quote(db, operation, asset, amount, payer)
	if err != nil {
		return 0, err
	}
	now, err := tollgate.BlockUnixTime(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "block time")
	}
	record := &FeeRecord{
		Metadata:             &tollgate.Metadata{Schema: 1},
		Asset:                asset,
		Payer:                payer,
		Operation:            operation,
		Amount:               amount,
		Fee:                  q.Fee,
		AppliedPercentageBps: q.PercentageBps,
		DiscountApplied:      q.DiscountApplied,
		DiscountBps:          q.DiscountBps,
		CreatedAt:            now,
	}
	if _, err := c.records.Put(db, nil, record); err != nil {
		return 0, errors.Wrap(err, "cannot store fee record")
	}
	metrics.FeesComputedTotal.WithLabelValues(operation, strconv.FormatBool(q.DiscountApplied)).Inc()
	return q.Fee, nil
}

// Quote resolves the fee of an operation without recording it.
func (c *Calculator) Quote(
	db tollgate.ReadOnlyKVStore,
	operation string,
	asset tollgate.Address,
	amount uint64,
	payer tollgate.Address,
) (*Quote, error) {
	if amount == 0 {
		return nil, errors.Wrap(errors.ErrAmount, "amount must be greater than zero")
	}
	var schedule OperationFee
	switch err := c.fees.One(db, []byte(operation), &schedule); {
	case err == nil:
		if !schedule.Enabled {
			return nil, errors.Wrapf(ErrOperationDisabled, "operation %q", operation)
		}
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrOperationDisabled, "operation %q is not configured", operation)
	default:
		return nil, errors.Wrap(err, "cannot load operation fee")
	}

	q, err := c.basePercentage(db, &schedule, asset, amount)
	if err != nil {
		return nil, err
	}

	discount, err := c.discountOf(db, payer)
	if err != nil {
		return nil, err
	}
	if discount != 0 {
		pct, err := coin.Discount(uint64(q.PercentageBps), discount)
		if err != nil {
			return nil, errors.Wrap(err, "discount")
		}
		q.PercentageBps = uint32(pct)
		q.DiscountApplied = true
		q.DiscountBps = discount
	}

	fee, err := coin.MulBps(amount, q.PercentageBps)
	if err != nil {
		return nil, errors.Wrap(err, "percentage fee")
	}
	// A flat fee greater than the remaining amount is capped below, the
	// addition must not wrap around first.
	if fee, err = coin.Add(fee, q.FlatFee); err != nil {
		fee = amount
	}
	q.Fee = coin.Min(fee, amount)
	return q, nil
}

// basePercentage resolves the percentage and flat fee before any discount.
// Asset overrides take precedence over tiers, tiers over the defaults.
func (c *Calculator) basePercentage(db tollgate.ReadOnlyKVStore, schedule *OperationFee, asset tollgate.Address, amount uint64) (*Quote, error) {
	if len(asset) != 0 {
		var override AssetOverride
		switch err := c.overrides.One(db, asset, &override); {
		case err == nil:
			if pct := override.PercentageOf(schedule.Operation); pct != 0 {
				return &Quote{PercentageBps: pct, Overridden: true}, nil
			}
		case errors.ErrNotFound.Is(err):
		default:
			return nil, errors.Wrap(err, "cannot load asset override")
		}
	}
	if schedule.UsesTiers {
		for _, t := range schedule.Tiers {
			if t.Contains(amount) {
				return &Quote{PercentageBps: t.PercentageBps, FlatFee: t.FlatFee}, nil
			}
		}
	}
	return &Quote{PercentageBps: schedule.DefaultPercentageBps, FlatFee: schedule.DefaultFlatFee}, nil
}

// discountOf returns the discount granted to the payer, 0 if none applies.
func (c *Calculator) discountOf(db tollgate.ReadOnlyKVStore, payer tollgate.Address) (uint32, error) {
	if c.identity == nil || len(payer) == 0 {
		return 0, nil
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return 0, err
	}
	if !conf.DiscountsEnabled {
		return 0, nil
	}
	level, err := c.identity.VerificationLevel(db, payer)
	if err != nil {
		return 0, errors.Wrap(err, "verification level")
	}
	if level == 0 {
		return 0, nil
	}
	var d Discount
	switch err := c.discounts.One(db, levelKey(uint32(level)), &d); {
	case err == nil:
		return d.DiscountBps, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "cannot load discount")
	}
}

// SetOperationFee stores the schedule of an operation, replacing the
// previous one.
func (c *Calculator) SetOperationFee(db tollgate.KVStore, fee *OperationFee) error {
	if _, err := c.fees.Put(db, []byte(fee.Operation), fee); err != nil {
		return errors.Wrap(err, "cannot store operation fee")
	}
	return nil
}

// OperationFee returns the schedule of an operation.
func (c *Calculator) OperationFee(db tollgate.ReadOnlyKVStore, operation string) (*OperationFee, error) {
	var fee OperationFee
	if err := c.fees.One(db, []byte(operation), &fee); err != nil {
		return nil, errors.Wrapf(err, "operation %q", operation)
	}
	return &fee, nil
}

// SetAssetOverride declares the percentage charged for an operation on an
// asset. A zero percentage removes the declaration. An override without
// any declaration left is deleted.
func (c *Calculator) SetAssetOverride(db tollgate.KVStore, asset tollgate.Address, operation string, pct uint32) error {
	var override AssetOverride
	switch err := c.overrides.One(db, asset, &override); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		override = AssetOverride{Metadata: &tollgate.Metadata{Schema: 1}, Asset: asset}
	default:
		return errors.Wrap(err, "cannot load asset override")
	}

	percentages := make([]*OperationPercentage, 0, len(override.Percentages)+1)
	for _, p := range override.Percentages {
		if p.Operation != operation {
			percentages = append(percentages, p)
		}
	}
	if pct != 0 {
		percentages = append(percentages, &OperationPercentage{Operation: operation, PercentageBps: pct})
	}
	override.Percentages = percentages

	if len(override.Percentages) == 0 {
		return c.ClearAssetOverride(db, asset)
	}
	if _, err := c.overrides.Put(db, asset, &override); err != nil {
		return errors.Wrap(err, "cannot store asset override")
	}
	return nil
}

// ClearAssetOverride removes every override declared for the asset.
func (c *Calculator) ClearAssetOverride(db tollgate.KVStore, asset tollgate.Address) error {
	switch err := c.overrides.Delete(db, asset); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "cannot delete asset override")
	}
}

// SetDiscount declares the discount of a verification level. A zero
// discount removes the declaration.
func (c *Calculator) SetDiscount(db tollgate.KVStore, level uint32, discountBps uint32) error {
	key := levelKey(level)
	if discountBps == 0 {
		switch err := c.discounts.Delete(db, key); {
		case err == nil, errors.ErrNotFound.Is(err):
			return nil
		default:
			return errors.Wrap(err, "cannot delete discount")
		}
	}
	d := &Discount{
		Metadata:    &tollgate.Metadata{Schema: 1},
		Level:       level,
		DiscountBps: discountBps,
	}
	if _, err := c.discounts.Put(db, key, d); err != nil {
		return errors.Wrap(err, "cannot store discount")
	}
	return nil
}

// SetDiscountsEnabled toggles the discount system.
func (c *Calculator) SetDiscountsEnabled(db tollgate.KVStore, enabled bool) error {
	conf, err := loadConfiguration(db)
	if err != nil {
		return err
	}
	conf.DiscountsEnabled = enabled
	if err := gconf.Save(db, packageName, conf); err != nil {
		return errors.Wrap(err, "save configuration")
	}
	return nil
}
