package feecalc

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// Initializer loads fee schedules, asset overrides and discounts from the
// "feecalc" section of the genesis file.
type Initializer struct{}

var _ tollgate.Initializer = (*Initializer)(nil)

func (*Initializer) FromGenesis(ctx tollgate.Context, opts tollgate.Options, db tollgate.KVStore) error {
	var genesis struct {
		Operations []struct {
			Operation            string  `json:"operation"`
			Enabled              bool    `json:"enabled"`
			UsesTiers            bool    `json:"uses_tiers"`
			DefaultPercentageBps uint32  `json:"default_percentage_bps"`
			DefaultFlatFee       uint64  `json:"default_flat_fee"`
			Tiers                []*Tier `json:"tiers"`
		} `json:"operations"`
		Overrides []struct {
			Asset       tollgate.Address       `json:"asset"`
			Percentages []*OperationPercentage `json:"percentages"`
		} `json:"overrides"`
		Discounts []struct {
			Level       uint32 `json:"level"`
			DiscountBps uint32 `json:"discount_bps"`
		} `json:"discounts"`
	}
	if err := opts.ReadOptions("feecalc", &genesis); err != nil {
		return errors.Wrap(err, "cannot load feecalc")
	}

	calc := NewCalculator(nil)
	for _, op := range genesis.Operations {
		fee := &OperationFee{
			Metadata:             &tollgate.Metadata{Schema: 1},
			Operation:            op.Operation,
			Enabled:              op.Enabled,
			UsesTiers:            op.UsesTiers,
			DefaultPercentageBps: op.DefaultPercentageBps,
			DefaultFlatFee:       op.DefaultFlatFee,
			Tiers:                op.Tiers,
		}
		if err := calc.SetOperationFee(db, fee); err != nil {
			return errors.Wrapf(err, "operation %q", op.Operation)
		}
	}
	for _, o := range genesis.Overrides {
		for _, p := range o.Percentages {
			if err := p.Validate(); err != nil {
				return errors.Wrapf(err, "override of %s", o.Asset)
			}
			if err := calc.SetAssetOverride(db, o.Asset, p.Operation, p.PercentageBps); err != nil {
				return errors.Wrapf(err, "override of %s", o.Asset)
			}
		}
	}
	for _, d := range genesis.Discounts {
		if err := validateLevel(d.Level); err != nil {
			return errors.Wrapf(err, "discount of level %d", d.Level)
		}
		// Stored models are validated, an out of range discount fails.
		if err := calc.SetDiscount(db, d.Level, d.DiscountBps); err != nil {
			return errors.Wrapf(err, "discount of level %d", d.Level)
		}
	}
	return nil
}
