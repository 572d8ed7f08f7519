package feecollect

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/coin"
	"github.com/tollgate-dao/tollgate/errors"
)

const (
	pathCollectMsg             = "feecollect/collect"
	pathUpdateConfigurationMsg = "feecollect/update_configuration"
)

// CollectMsg charges the fee of an operation to the signer.
type CollectMsg struct {
	Metadata  *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token     tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Amount    uint64             `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Operation string             `protobuf:"bytes,4,opt,name=operation,proto3" json:"operation,omitempty"`
}

func (m *CollectMsg) Reset()         { *m = CollectMsg{} }
func (m *CollectMsg) String() string { return proto.CompactTextString(m) }
func (*CollectMsg) ProtoMessage()    {}

func (CollectMsg) Path() string {
	return pathCollectMsg
}

func (m *CollectMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	if m.Operation == "" {
		errs = errors.AppendField(errs, "Operation", errors.ErrEmpty)
	}
	return errs
}

// UpdateConfigurationMsg patches the package configuration. Fields listed
// in Clear are reset first, which is the only way to set a share to zero.
type UpdateConfigurationMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *Configuration     `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
	Clear    []string           `protobuf:"bytes,3,rep,name=clear,proto3" json:"clear,omitempty"`
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
		return errors.AppendField(errs, "Patch", errors.ErrEmpty)
	}
	if len(m.Patch.Treasury) != 0 {
		errs = errors.AppendField(errs, "Patch.Treasury", m.Patch.Treasury.Validate())
	}
	if len(m.Patch.RewardPool) != 0 {
		errs = errors.AppendField(errs, "Patch.RewardPool", m.Patch.RewardPool.Validate())
	}
	errs = errors.AppendField(errs, "Patch.TreasuryShareBps", coin.ValidateBps(m.Patch.TreasuryShareBps, coin.MaxBps))
	errs = errors.AppendField(errs, "Patch.RewardShareBps", coin.ValidateBps(m.Patch.RewardShareBps, coin.MaxBps))
	return errs
}
