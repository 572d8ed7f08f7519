package feecalc

import (
	"encoding/binary"
	"math"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/coin"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/orm"
)

// MaxFeeBps is the highest fee percentage that can be configured.
const MaxFeeBps = 5000

var isOperation = regexp.MustCompile(`^[a-z][a-z0-9_\-]{1,31}$`).MatchString

func validateOperation(op string) error {
	if !isOperation(op) {
		return errors.Wrapf(errors.ErrInput, "invalid operation %q", op)
	}
	return nil
}

// OperationFee is the fee schedule of a single operation type.
type OperationFee struct {
	Metadata  *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Operation string             `protobuf:"bytes,2,opt,name=operation,proto3" json:"operation,omitempty"`
	Enabled   bool               `protobuf:"varint,3,opt,name=enabled,proto3" json:"enabled,omitempty"`
	UsesTiers bool               `protobuf:"varint,4,opt,name=uses_tiers,json=usesTiers,proto3" json:"uses_tiers,omitempty"`
	// DefaultPercentageBps and DefaultFlatFee apply when no tier matches
	// the amount.
	DefaultPercentageBps uint32  `protobuf:"varint,5,opt,name=default_percentage_bps,json=defaultPercentageBps,proto3" json:"default_percentage_bps,omitempty"`
	DefaultFlatFee       uint64  `protobuf:"varint,6,opt,name=default_flat_fee,json=defaultFlatFee,proto3" json:"default_flat_fee,omitempty"`
	Tiers                []*Tier `protobuf:"bytes,7,rep,name=tiers,proto3" json:"tiers,omitempty"`
}

func (m *OperationFee) Reset()         { *m = OperationFee{} }
func (m *OperationFee) String() string { return proto.CompactTextString(m) }
func (*OperationFee) ProtoMessage()    {}

func (m *OperationFee) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Operation", validateOperation(m.Operation))
	errs = errors.AppendField(errs, "DefaultPercentageBps", coin.ValidateBps(m.DefaultPercentageBps, MaxFeeBps))
	errs = errors.Append(errs, validateTiers(m.Tiers))
	return errs
}

func validateTiers(tiers []*Tier) error {
	var errs error
	for i, t := range tiers {
		if t == nil {
			errs = errors.AppendIndexField(errs, "Tiers", i, errors.ErrEmpty)
			continue
		}
		errs = errors.AppendIndexField(errs, "Tiers", i, t.Validate())
	}
	return errs
}

// Tier is an amount range with its own fee rule. A zero MaxAmount means
// the range is unbounded.
type Tier struct {
	MinAmount     uint64 `protobuf:"varint,1,opt,name=min_amount,json=minAmount,proto3" json:"min_amount,omitempty"`
	MaxAmount     uint64 `protobuf:"varint,2,opt,name=max_amount,json=maxAmount,proto3" json:"max_amount,omitempty"`
	PercentageBps uint32 `protobuf:"varint,3,opt,name=percentage_bps,json=percentageBps,proto3" json:"percentage_bps,omitempty"`
	FlatFee       uint64 `protobuf:"varint,4,opt,name=flat_fee,json=flatFee,proto3" json:"flat_fee,omitempty"`
}

func (m *Tier) Reset()         { *m = Tier{} }
func (m *Tier) String() string { return proto.CompactTextString(m) }
func (*Tier) ProtoMessage()    {}

func (m *Tier) Validate() error {
	var errs error
	if m.MinAmount == 0 {
		errs = errors.AppendField(errs, "MinAmount", errors.Wrap(errors.ErrConfiguration, "must be greater than zero"))
	}
	if m.MaxAmount != 0 && m.MaxAmount <= m.MinAmount {
		errs = errors.AppendField(errs, "MaxAmount", errors.Wrap(errors.ErrConfiguration, "must exceed the minimum amount"))
	}
	errs = errors.AppendField(errs, "PercentageBps", coin.ValidateBps(m.PercentageBps, MaxFeeBps))
	return errs
}

// Contains returns true if the amount is within the tier range, both ends
// included.
func (m *Tier) Contains(amount uint64) bool {
	if amount < m.MinAmount {
		return false
	}
	return m.MaxAmount == 0 || amount <= m.MaxAmount
}

// NewOperationFeeBucket returns a bucket of fee schedules keyed by the
// operation name.
func NewOperationFeeBucket() orm.ModelBucket {
	return orm.NewModelBucket("opfee", &OperationFee{})
}

// AssetOverride declares per operation percentages charged for an asset.
type AssetOverride struct {
	Metadata    *tollgate.Metadata     `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Asset       tollgate.Address       `protobuf:"bytes,2,opt,name=asset,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"asset,omitempty"`
	Percentages []*OperationPercentage `protobuf:"bytes,3,rep,name=percentages,proto3" json:"percentages,omitempty"`
}

func (m *AssetOverride) Reset()         { *m = AssetOverride{} }
func (m *AssetOverride) String() string { return proto.CompactTextString(m) }
func (*AssetOverride) ProtoMessage()    {}

func (m *AssetOverride) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Asset", m.Asset.Validate())
	if len(m.Percentages) == 0 {
		errs = errors.AppendField(errs, "Percentages", errors.ErrEmpty)
	}
	seen := make(map[string]struct{}, len(m.Percentages))
	for i, p := range m.Percentages {
		if p == nil {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrEmpty, "percentage %d", i))
			continue
		}
		if _, ok := seen[p.Operation]; ok {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrDuplicate, "operation %q", p.Operation))
		}
		seen[p.Operation] = struct{}{}
		if err := p.Validate(); err != nil {
			errs = errors.Append(errs, errors.Wrapf(err, "percentage %d", i))
		}
	}
	return errs
}

// PercentageOf returns the override declared for the operation, 0 if none.
func (m *AssetOverride) PercentageOf(operation string) uint32 {
	for _, p := range m.Percentages {
		if p.Operation == operation {
			return p.PercentageBps
		}
	}
	return 0
}

// OperationPercentage is a single entry of an asset override.
type OperationPercentage struct {
	Operation     string `protobuf:"bytes,1,opt,name=operation,proto3" json:"operation,omitempty"`
	PercentageBps uint32 `protobuf:"varint,2,opt,name=percentage_bps,json=percentageBps,proto3" json:"percentage_bps,omitempty"`
}

func (m *OperationPercentage) Reset()         { *m = OperationPercentage{} }
func (m *OperationPercentage) String() string { return proto.CompactTextString(m) }
func (*OperationPercentage) ProtoMessage()    {}

func (m *OperationPercentage) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Operation", validateOperation(m.Operation))
	if m.PercentageBps == 0 {
		errs = errors.AppendField(errs, "PercentageBps", errors.Wrap(errors.ErrConfiguration, "must be greater than zero"))
	} else {
		errs = errors.AppendField(errs, "PercentageBps", coin.ValidateBps(m.PercentageBps, MaxFeeBps))
	}
	return errs
}

// NewAssetOverrideBucket returns a bucket of overrides keyed by the asset
// address.
func NewAssetOverrideBucket() orm.ModelBucket {
	return orm.NewModelBucket("assetfee", &AssetOverride{})
}

// Discount is the fee percentage reduction granted to a verification
// level.
type Discount struct {
	Metadata    *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Level       uint32             `protobuf:"varint,2,opt,name=level,proto3" json:"level,omitempty"`
	DiscountBps uint32             `protobuf:"varint,3,opt,name=discount_bps,json=discountBps,proto3" json:"discount_bps,omitempty"`
}

func (m *Discount) Reset()         { *m = Discount{} }
func (m *Discount) String() string { return proto.CompactTextString(m) }
func (*Discount) ProtoMessage()    {}

func (m *Discount) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Level", validateLevel(m.Level))
	if m.DiscountBps == 0 {
		errs = errors.AppendField(errs, "DiscountBps", errors.Wrap(errors.ErrConfiguration, "must be greater than zero"))
	} else {
		errs = errors.AppendField(errs, "DiscountBps", coin.ValidateBps(m.DiscountBps, coin.MaxBps))
	}
	return errs
}

func validateLevel(level uint32) error {
	if level == 0 || level > math.MaxUint8 {
		return errors.Wrapf(errors.ErrInput, "level must be within 1 and %d", math.MaxUint8)
	}
	return nil
}

func levelKey(level uint32) []byte {
	return []byte{byte(level)}
}

// NewDiscountBucket returns a bucket of discounts keyed by the
// verification level.
func NewDiscountBucket() orm.ModelBucket {
	return orm.NewModelBucket("discount", &Discount{})
}

// FeeRecord is the audit entry of a computed fee.
type FeeRecord struct {
	Metadata             *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Asset                tollgate.Address   `protobuf:"bytes,2,opt,name=asset,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"asset,omitempty"`
	Payer                tollgate.Address   `protobuf:"bytes,3,opt,name=payer,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"payer,omitempty"`
	Operation            string             `protobuf:"bytes,4,opt,name=operation,proto3" json:"operation,omitempty"`
	Amount               uint64             `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
	Fee                  uint64             `protobuf:"varint,6,opt,name=fee,proto3" json:"fee,omitempty"`
	AppliedPercentageBps uint32             `protobuf:"varint,7,opt,name=applied_percentage_bps,json=appliedPercentageBps,proto3" json:"applied_percentage_bps,omitempty"`
	DiscountApplied      bool               `protobuf:"varint,8,opt,name=discount_applied,json=discountApplied,proto3" json:"discount_applied,omitempty"`
	DiscountBps          uint32             `protobuf:"varint,9,opt,name=discount_bps,json=discountBps,proto3" json:"discount_bps,omitempty"`
	CreatedAt            tollgate.UnixTime  `protobuf:"varint,10,opt,name=created_at,json=createdAt,proto3,casttype=github.com/tollgate-dao/tollgate.UnixTime" json:"created_at,omitempty"`
}

func (m *FeeRecord) Reset()         { *m = FeeRecord{} }
func (m *FeeRecord) String() string { return proto.CompactTextString(m) }
func (*FeeRecord) ProtoMessage()    {}

func (m *FeeRecord) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Operation", validateOperation(m.Operation))
	if len(m.Asset) != 0 {
		errs = errors.AppendField(errs, "Asset", m.Asset.Validate())
	}
	if len(m.Payer) != 0 {
		errs = errors.AppendField(errs, "Payer", m.Payer.Validate())
	}
	if m.Fee > m.Amount {
		errs = errors.AppendField(errs, "Fee", errors.Wrap(errors.ErrModel, "greater than the amount"))
	}
	errs = errors.AppendField(errs, "CreatedAt", m.CreatedAt.Validate())
	return errs
}

// NewFeeRecordBucket returns the append only fee audit table. Records are
// indexed by payer.
func NewFeeRecordBucket() orm.ModelBucket {
	return orm.NewModelBucket("feerecord", &FeeRecord{},
		orm.WithIDSequence(orm.NewSequence("feerecord", "id")),
		orm.WithIndex("payer", payerIndexer, false),
	)
}

func payerIndexer(obj orm.Model) ([]byte, error) {
	r, ok := obj.(*FeeRecord)
	if !ok {
		return nil, errors.WithType(errors.ErrType, obj)
	}
	if len(r.Payer) == 0 {
		return nil, nil
	}
	return r.Payer, nil
}

// encodeFee returns the big endian representation of the fee, used as the
// result data of fee computation messages.
func encodeFee(fee uint64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, fee)
	return raw
}
