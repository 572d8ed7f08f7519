package feecalc

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/coin"
	"github.com/tollgate-dao/tollgate/errors"
)

const (
	pathComputeFeeMsg          = "feecalc/compute_fee"
	pathSetOperationFeeMsg     = "feecalc/set_operation_fee"
	pathSetAssetOverrideMsg    = "feecalc/set_asset_override"
	pathClearAssetOverrideMsg  = "feecalc/clear_asset_override"
	pathSetDiscountMsg         = "feecalc/set_discount"
	pathSetDiscountsEnabledMsg = "feecalc/set_discounts_enabled"
	pathUpdateConfigurationMsg = "feecalc/update_configuration"
)

// ComputeFeeMsg computes and records the fee of an operation. When no
// payer is given, the main signer of the transaction is the payer.
type ComputeFeeMsg struct {
	Metadata  *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Operation string             `protobuf:"bytes,2,opt,name=operation,proto3" json:"operation,omitempty"`
	Asset     tollgate.Address   `protobuf:"bytes,3,opt,name=asset,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"asset,omitempty"`
	Amount    uint64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	Payer     tollgate.Address   `protobuf:"bytes,5,opt,name=payer,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"payer,omitempty"`
}

func (m *ComputeFeeMsg) Reset()         { *m = ComputeFeeMsg{} }
func (m *ComputeFeeMsg) String() string { return proto.CompactTextString(m) }
func (*ComputeFeeMsg) ProtoMessage()    {}

func (ComputeFeeMsg) Path() string {
	return pathComputeFeeMsg
}

func (m *ComputeFeeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Operation", validateOperation(m.Operation))
	if len(m.Asset) != 0 {
		errs = errors.AppendField(errs, "Asset", m.Asset.Validate())
	}
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	if len(m.Payer) != 0 {
		errs = errors.AppendField(errs, "Payer", m.Payer.Validate())
	}
	return errs
}

// SetOperationFeeMsg replaces the fee schedule of an operation.
type SetOperationFeeMsg struct {
	Metadata             *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Operation            string             `protobuf:"bytes,2,opt,name=operation,proto3" json:"operation,omitempty"`
	Enabled              bool               `protobuf:"varint,3,opt,name=enabled,proto3" json:"enabled,omitempty"`
	UsesTiers            bool               `protobuf:"varint,4,opt,name=uses_tiers,json=usesTiers,proto3" json:"uses_tiers,omitempty"`
	DefaultPercentageBps uint32             `protobuf:"varint,5,opt,name=default_percentage_bps,json=defaultPercentageBps,proto3" json:"default_percentage_bps,omitempty"`
	DefaultFlatFee       uint64             `protobuf:"varint,6,opt,name=default_flat_fee,json=defaultFlatFee,proto3" json:"default_flat_fee,omitempty"`
	Tiers                []*Tier            `protobuf:"bytes,7,rep,name=tiers,proto3" json:"tiers,omitempty"`
}

func (m *SetOperationFeeMsg) Reset()         { *m = SetOperationFeeMsg{} }
func (m *SetOperationFeeMsg) String() string { return proto.CompactTextString(m) }
func (*SetOperationFeeMsg) ProtoMessage()    {}

func (SetOperationFeeMsg) Path() string {
	return pathSetOperationFeeMsg
}

func (m *SetOperationFeeMsg) Validate() error {
	return m.OperationFee().Validate()
}

// OperationFee returns the schedule declared by this message.
func (m *SetOperationFeeMsg) OperationFee() *OperationFee {
	return &OperationFee{
		Metadata:             m.Metadata,
		Operation:            m.Operation,
		Enabled:              m.Enabled,
		UsesTiers:            m.UsesTiers,
		DefaultPercentageBps: m.DefaultPercentageBps,
		DefaultFlatFee:       m.DefaultFlatFee,
		Tiers:                m.Tiers,
	}
}

// SetAssetOverrideMsg declares the percentage of an operation for an
// asset. A zero percentage clears the declaration.
type SetAssetOverrideMsg struct {
	Metadata      *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Asset         tollgate.Address   `protobuf:"bytes,2,opt,name=asset,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"asset,omitempty"`
	Operation     string             `protobuf:"bytes,3,opt,name=operation,proto3" json:"operation,omitempty"`
	PercentageBps uint32             `protobuf:"varint,4,opt,name=percentage_bps,json=percentageBps,proto3" json:"percentage_bps,omitempty"`
}

func (m *SetAssetOverrideMsg) Reset()         { *m = SetAssetOverrideMsg{} }
func (m *SetAssetOverrideMsg) String() string { return proto.CompactTextString(m) }
func (*SetAssetOverrideMsg) ProtoMessage()    {}

func (SetAssetOverrideMsg) Path() string {
	return pathSetAssetOverrideMsg
}

func (m *SetAssetOverrideMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Asset", m.Asset.Validate())
	errs = errors.AppendField(errs, "Operation", validateOperation(m.Operation))
	errs = errors.AppendField(errs, "PercentageBps", coin.ValidateBps(m.PercentageBps, MaxFeeBps))
	return errs
}

// ClearAssetOverrideMsg removes all overrides of an asset.
type ClearAssetOverrideMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Asset    tollgate.Address   `protobuf:"bytes,2,opt,name=asset,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"asset,omitempty"`
}

func (m *ClearAssetOverrideMsg) Reset()         { *m = ClearAssetOverrideMsg{} }
func (m *ClearAssetOverrideMsg) String() string { return proto.CompactTextString(m) }
func (*ClearAssetOverrideMsg) ProtoMessage()    {}

func (ClearAssetOverrideMsg) Path() string {
	return pathClearAssetOverrideMsg
}

func (m *ClearAssetOverrideMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Asset", m.Asset.Validate())
	return errs
}

// SetDiscountMsg declares the discount of a verification level. A zero
// discount clears the declaration.
type SetDiscountMsg struct {
	Metadata    *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Level       uint32             `protobuf:"varint,2,opt,name=level,proto3" json:"level,omitempty"`
	DiscountBps uint32             `protobuf:"varint,3,opt,name=discount_bps,json=discountBps,proto3" json:"discount_bps,omitempty"`
}

func (m *SetDiscountMsg) Reset()         { *m = SetDiscountMsg{} }
func (m *SetDiscountMsg) String() string { return proto.CompactTextString(m) }
func (*SetDiscountMsg) ProtoMessage()    {}

func (SetDiscountMsg) Path() string {
	return pathSetDiscountMsg
}

func (m *SetDiscountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Level", validateLevel(m.Level))
	errs = errors.AppendField(errs, "DiscountBps", coin.ValidateBps(m.DiscountBps, coin.MaxBps))
	return errs
}

// SetDiscountsEnabledMsg toggles the discount system.
type SetDiscountsEnabledMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Enabled  bool               `protobuf:"varint,2,opt,name=enabled,proto3" json:"enabled,omitempty"`
}

func (m *SetDiscountsEnabledMsg) Reset()         { *m = SetDiscountsEnabledMsg{} }
func (m *SetDiscountsEnabledMsg) String() string { return proto.CompactTextString(m) }
func (*SetDiscountsEnabledMsg) ProtoMessage()    {}

func (SetDiscountsEnabledMsg) Path() string {
	return pathSetDiscountsEnabledMsg
}

func (m *SetDiscountsEnabledMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

// UpdateConfigurationMsg patches the package configuration.
type UpdateConfigurationMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *Configuration     `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
	// Clear lists configuration fields reset before the patch is applied.
	Clear []string `protobuf:"bytes,3,rep,name=clear,proto3" json:"clear,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		errs = errors.AppendField(errs, "Patch", errors.ErrEmpty)
	} else if len(m.Patch.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", m.Patch.Owner.Validate())
	}
	return errs
}
