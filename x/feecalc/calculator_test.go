package feecalc

import (
	"context"
	"testing"
	"time"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/orm"
	"github.com/tollgate-dao/tollgate/store"
	"github.com/tollgate-dao/tollgate/tollgatetest"
	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
)

type levels map[string]uint8

func (l levels) VerificationLevel(db tollgate.ReadOnlyKVStore, addr tollgate.Address) (uint8, error) {
	return l[addr.String()], nil
}

func TestCalculatorQuote(t *testing.T) {
	asset := tollgatetest.NewAddress()
	otherAsset := tollgatetest.NewAddress()
	verified := tollgatetest.NewAddress()
	unverified := tollgatetest.NewAddress()
	meta := &tollgate.Metadata{Schema: 1}

	tiered := &OperationFee{
		Metadata:             meta,
		Operation:            "divest",
		Enabled:              true,
		UsesTiers:            true,
		DefaultPercentageBps: 50,
		Tiers: []*Tier{
			{MinAmount: 100, MaxAmount: 500, PercentageBps: 200},
			{MinAmount: 501, PercentageBps: 100},
		},
	}

	cases := map[string]struct {
		Fees      []*OperationFee
		Overrides map[string]uint32
		Discounts map[uint32]uint32
		Enabled   bool
		Operation string
		Asset     tollgate.Address
		Amount    uint64
		Payer     tollgate.Address
		WantErr   *errors.Error
		WantFee   uint64
		WantPct   uint32
	}{
		"default percentage": {
			Fees:      []*OperationFee{{Metadata: meta, Operation: "invest", Enabled: true, DefaultPercentageBps: 1000}},
			Operation: "invest",
			Amount:    10000,
			WantFee:   1000,
			WantPct:   1000,
		},
		"first tier": {
			Fees:      []*OperationFee{tiered},
			Operation: "divest",
			Amount:    300,
			WantFee:   6,
			WantPct:   200,
		},
		"unbounded tier": {
			Fees:      []*OperationFee{tiered},
			Operation: "divest",
			Amount:    1000,
			WantFee:   10,
			WantPct:   100,
		},
		"no tier matches": {
			Fees:      []*OperationFee{tiered},
			Operation: "divest",
			Amount:    50,
			WantFee:   0,
			WantPct:   50,
		},
		"tier upper bound is inclusive": {
			Fees:      []*OperationFee{tiered},
			Operation: "divest",
			Amount:    500,
			WantFee:   10,
			WantPct:   200,
		},
		"asset override takes precedence over tiers": {
			Fees:      []*OperationFee{tiered},
			Overrides: map[string]uint32{"divest": 300},
			Operation: "divest",
			Asset:     asset,
			Amount:    1000,
			WantFee:   30,
			WantPct:   300,
		},
		"asset override does not apply to other assets": {
			Fees:      []*OperationFee{tiered},
			Overrides: map[string]uint32{"divest": 300},
			Operation: "divest",
			Asset:     otherAsset,
			Amount:    1000,
			WantFee:   10,
			WantPct:   100,
		},
		"asset override drops the flat fee": {
			Fees:      []*OperationFee{{Metadata: meta, Operation: "invest", Enabled: true, DefaultPercentageBps: 100, DefaultFlatFee: 7}},
			Overrides: map[string]uint32{"invest": 200},
			Operation: "invest",
			Asset:     asset,
			Amount:    1000,
			WantFee:   20,
			WantPct:   200,
		},
		"flat fee is added": {
			Fees:      []*OperationFee{{Metadata: meta, Operation: "invest", Enabled: true, DefaultPercentageBps: 100, DefaultFlatFee: 7}},
			Operation: "invest",
			Amount:    1000,
			WantFee:   17,
			WantPct:   100,
		},
		"fee is capped at the amount": {
			Fees:      []*OperationFee{{Metadata: meta, Operation: "invest", Enabled: true, DefaultPercentageBps: 5000, DefaultFlatFee: 1 << 63}},
			Operation: "invest",
			Amount:    10,
			WantFee:   10,
			WantPct:   5000,
		},
		"discount composition": {
			Fees:      []*OperationFee{{Metadata: meta, Operation: "invest", Enabled: true, DefaultPercentageBps: 1000}},
			Discounts: map[uint32]uint32{2: 2500},
			Enabled:   true,
			Operation: "invest",
			Amount:    10000,
			Payer:     verified,
			WantFee:   750,
			WantPct:   750,
		},
		"discount requires the global flag": {
			Fees:      []*OperationFee{{Metadata: meta, Operation: "invest", Enabled: true, DefaultPercentageBps: 1000}},
			Discounts: map[uint32]uint32{2: 2500},
			Operation: "invest",
			Amount:    10000,
			Payer:     verified,
			WantFee:   1000,
			WantPct:   1000,
		},
		"unverified payer pays the full fee": {
			Fees:      []*OperationFee{{Metadata: meta, Operation: "invest", Enabled: true, DefaultPercentageBps: 1000}},
			Discounts: map[uint32]uint32{2: 2500},
			Enabled:   true,
			Operation: "invest",
			Amount:    10000,
			Payer:     unverified,
			WantFee:   1000,
			WantPct:   1000,
		},
		"level without a discount": {
			Fees:      []*OperationFee{{Metadata: meta, Operation: "invest", Enabled: true, DefaultPercentageBps: 1000}},
			Discounts: map[uint32]uint32{3: 2500},
			Enabled:   true,
			Operation: "invest",
			Amount:    10000,
			Payer:     verified,
			WantFee:   1000,
			WantPct:   1000,
		},
		"disabled operation": {
			Fees:      []*OperationFee{{Metadata: meta, Operation: "invest", DefaultPercentageBps: 1000}},
			Operation: "invest",
			Amount:    10000,
			WantErr:   ErrOperationDisabled,
		},
		"unknown operation": {
			Operation: "invest",
			Amount:    10000,
			WantErr:   ErrOperationDisabled,
		},
		"zero amount": {
			Fees:      []*OperationFee{{Metadata: meta, Operation: "invest", Enabled: true, DefaultPercentageBps: 1000}},
			Operation: "invest",
			WantErr:   errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			calc := NewCalculator(levels{verified.String(): 2})

			for _, f := range tc.Fees {
				assert.Nil(t, calc.SetOperationFee(db, f))
			}
			for op, pct := range tc.Overrides {
				assert.Nil(t, calc.SetAssetOverride(db, asset, op, pct))
			}
			for level, d := range tc.Discounts {
				assert.Nil(t, calc.SetDiscount(db, level, d))
			}
			assert.Nil(t, calc.SetDiscountsEnabled(db, tc.Enabled))

			q, err := calc.Quote(db, tc.Operation, tc.Asset, tc.Amount, tc.Payer)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.WantErr != nil {
				return
			}
			assert.Equal(t, tc.WantFee, q.Fee)
			assert.Equal(t, tc.WantPct, q.PercentageBps)
			if q.Fee > tc.Amount {
				t.Fatalf("fee %d exceeds the amount %d", q.Fee, tc.Amount)
			}
		})
	}
}

func TestInvestScenario(t *testing.T) {
	db := store.MemStore()
	node := tollgatetest.NewAddress()
	calc := NewCalculator(levels{node.String(): 2})

	assert.Nil(t, calc.SetOperationFee(db, &OperationFee{
		Metadata:             &tollgate.Metadata{Schema: 1},
		Operation:            "invest",
		Enabled:              true,
		DefaultPercentageBps: 1000,
	}))
	assert.Nil(t, calc.SetDiscount(db, 2, 5000))
	assert.Nil(t, calc.SetDiscountsEnabled(db, true))

	ctx := tollgate.WithBlockTime(context.Background(), time.Unix(1600000000, 0))
	fee, err := calc.ComputeFee(ctx, db, "invest", nil, 10000, node)
	assert.Nil(t, err)
	assert.Equal(t, uint64(500), fee)

	var records []*FeeRecord
	keys, err := NewFeeRecordBucket().ByIndex(db, "payer", node, &records)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{orm.EncodeSequence(1)}, keys)
	assert.Equal(t, &FeeRecord{
		Metadata:             &tollgate.Metadata{Schema: 1},
		Payer:                node,
		Operation:            "invest",
		Amount:               10000,
		Fee:                  500,
		AppliedPercentageBps: 500,
		DiscountApplied:      true,
		DiscountBps:          5000,
		CreatedAt:            1600000000,
	}, records[0])
}

func TestAssetOverrideLifecycle(t *testing.T) {
	db := store.MemStore()
	calc := NewCalculator(nil)
	asset := tollgatetest.NewAddress()
	bucket := NewAssetOverrideBucket()

	assert.Nil(t, calc.SetAssetOverride(db, asset, "invest", 300))
	assert.Nil(t, calc.SetAssetOverride(db, asset, "divest", 200))
	assert.Nil(t, calc.SetAssetOverride(db, asset, "invest", 400))

	var o AssetOverride
	assert.Nil(t, bucket.One(db, asset, &o))
	assert.Equal(t, uint32(400), o.PercentageOf("invest"))
	assert.Equal(t, uint32(200), o.PercentageOf("divest"))

	// Clearing the last operation removes the override.
	assert.Nil(t, calc.SetAssetOverride(db, asset, "invest", 0))
	assert.Nil(t, calc.SetAssetOverride(db, asset, "divest", 0))
	if err := bucket.Has(db, asset); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want override deleted, got %+v", err)
	}

	assert.Nil(t, calc.SetAssetOverride(db, asset, "invest", 300))
	assert.Nil(t, calc.ClearAssetOverride(db, asset))
	if err := bucket.Has(db, asset); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want override deleted, got %+v", err)
	}
	// Clearing twice is not an error.
	assert.Nil(t, calc.ClearAssetOverride(db, asset))
}

func TestOperationFeeValidation(t *testing.T) {
	meta := &tollgate.Metadata{Schema: 1}
	cases := map[string]struct {
		Fee     *OperationFee
		WantErr *errors.Error
	}{
		"valid": {
			Fee: &OperationFee{Metadata: meta, Operation: "invest", DefaultPercentageBps: 5000},
		},
		"percentage above the maximum": {
			Fee:     &OperationFee{Metadata: meta, Operation: "invest", DefaultPercentageBps: 5001},
			WantErr: errors.ErrConfiguration,
		},
		"tier percentage above the maximum": {
			Fee: &OperationFee{Metadata: meta, Operation: "invest", Tiers: []*Tier{
				{MinAmount: 1, PercentageBps: 6000},
			}},
			WantErr: errors.ErrConfiguration,
		},
		"tier without a minimum": {
			Fee: &OperationFee{Metadata: meta, Operation: "invest", Tiers: []*Tier{
				{MaxAmount: 10, PercentageBps: 10},
			}},
			WantErr: errors.ErrConfiguration,
		},
		"tier maximum below the minimum": {
			Fee: &OperationFee{Metadata: meta, Operation: "invest", Tiers: []*Tier{
				{MinAmount: 10, MaxAmount: 10, PercentageBps: 10},
			}},
			WantErr: errors.ErrConfiguration,
		},
		"invalid operation name": {
			Fee:     &OperationFee{Metadata: meta, Operation: "Invest!"},
			WantErr: errors.ErrInput,
		},
		"missing metadata": {
			Fee:     &OperationFee{Operation: "invest"},
			WantErr: errors.ErrMetadata,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.Fee.Validate(); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestDiscountValidation(t *testing.T) {
	db := store.MemStore()
	calc := NewCalculator(nil)

	if err := calc.SetDiscount(db, 1, 10001); !errors.ErrConfiguration.Is(err) {
		t.Fatalf("want configuration error, got %+v", err)
	}
	assert.Nil(t, calc.SetDiscount(db, 1, 10000))
	if err := calc.SetDiscount(db, 256, 10); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
	// Zero removes the entry.
	assert.Nil(t, calc.SetDiscount(db, 1, 0))
	if err := NewDiscountBucket().Has(db, levelKey(1)); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want discount deleted, got %+v", err)
	}
}

func TestTierErrorsNameTheTier(t *testing.T) {
	fee := &OperationFee{
		Metadata:  &tollgate.Metadata{Schema: 1},
		Operation: "invest",
		Tiers: []*Tier{
			{MinAmount: 1, MaxAmount: 100, PercentageBps: 10},
			nil,
			{MinAmount: 200, PercentageBps: 6000},
		},
	}
	err := fee.Validate()
	assert.FieldError(t, err, "Tiers.0", nil)
	assert.FieldError(t, err, "Tiers.1", errors.ErrEmpty)
	assert.FieldError(t, err, "Tiers.2", errors.ErrConfiguration)
	if n := len(errors.FieldErrors(err, "Tiers")); n != 2 {
		t.Fatalf("want 2 tier errors, got %d", n)
	}
}
