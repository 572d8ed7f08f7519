package rewards

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

const (
	pathDistributeRewardsMsg   = "rewards/distribute"
	pathClaimMsg               = "rewards/claim"
	pathAddParticipantMsg      = "rewards/add_participant"
	pathUpdateParticipantMsg   = "rewards/update_participant"
	pathRemoveParticipantMsg   = "rewards/remove_participant"
	pathPauseMsg               = "rewards/pause"
	pathUnpauseMsg             = "rewards/unpause"
	pathUpdateConfigurationMsg = "rewards/update_configuration"
)

// DistributeRewardsMsg closes the current cycle.
type DistributeRewardsMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

func (m *DistributeRewardsMsg) Reset()         { *m = DistributeRewardsMsg{} }
func (m *DistributeRewardsMsg) String() string { return proto.CompactTextString(m) }
func (*DistributeRewardsMsg) ProtoMessage()    {}

func (DistributeRewardsMsg) Path() string {
	return pathDistributeRewardsMsg
}

func (m *DistributeRewardsMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

// ClaimMsg pays the signer its share of a token for a closed cycle.
type ClaimMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token    tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Cycle    uint64             `protobuf:"varint,3,opt,name=cycle,proto3" json:"cycle,omitempty"`
}

func (m *ClaimMsg) Reset()         { *m = ClaimMsg{} }
func (m *ClaimMsg) String() string { return proto.CompactTextString(m) }
func (*ClaimMsg) ProtoMessage()    {}

func (ClaimMsg) Path() string {
	return pathClaimMsg
}

func (m *ClaimMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	if m.Cycle == 0 {
		errs = errors.AppendField(errs, "Cycle", errors.Wrap(errors.ErrInput, "cycles are numbered from 1"))
	}
	return errs
}

type AddParticipantMsg struct {
	Metadata    *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Participant tollgate.Address   `protobuf:"bytes,2,opt,name=participant,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"participant,omitempty"`
	SharesBps   uint32             `protobuf:"varint,3,opt,name=shares_bps,json=sharesBps,proto3" json:"shares_bps,omitempty"`
}

func (m *AddParticipantMsg) Reset()         { *m = AddParticipantMsg{} }
func (m *AddParticipantMsg) String() string { return proto.CompactTextString(m) }
func (*AddParticipantMsg) ProtoMessage()    {}

func (AddParticipantMsg) Path() string {
	return pathAddParticipantMsg
}

func (m *AddParticipantMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Participant", m.Participant.Validate())
	errs = errors.AppendField(errs, "SharesBps", validateShares(m.SharesBps))
	return errs
}

type UpdateParticipantMsg struct {
	Metadata    *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Participant tollgate.Address   `protobuf:"bytes,2,opt,name=participant,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"participant,omitempty"`
	SharesBps   uint32             `protobuf:"varint,3,opt,name=shares_bps,json=sharesBps,proto3" json:"shares_bps,omitempty"`
}

func (m *UpdateParticipantMsg) Reset()         { *m = UpdateParticipantMsg{} }
func (m *UpdateParticipantMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateParticipantMsg) ProtoMessage()    {}

func (UpdateParticipantMsg) Path() string {
	return pathUpdateParticipantMsg
}

func (m *UpdateParticipantMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Participant", m.Participant.Validate())
	errs = errors.AppendField(errs, "SharesBps", validateShares(m.SharesBps))
	return errs
}

type RemoveParticipantMsg struct {
	Metadata    *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Participant tollgate.Address   `protobuf:"bytes,2,opt,name=participant,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"participant,omitempty"`
}

func (m *RemoveParticipantMsg) Reset()         { *m = RemoveParticipantMsg{} }
func (m *RemoveParticipantMsg) String() string { return proto.CompactTextString(m) }
func (*RemoveParticipantMsg) ProtoMessage()    {}

func (RemoveParticipantMsg) Path() string {
	return pathRemoveParticipantMsg
}

func (m *RemoveParticipantMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Participant", m.Participant.Validate())
	return errs
}

// PauseMsg stops cycle closing and claims. It is reserved to the
// emergency role.
type PauseMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

func (m *PauseMsg) Reset()         { *m = PauseMsg{} }
func (m *PauseMsg) String() string { return proto.CompactTextString(m) }
func (*PauseMsg) ProtoMessage()    {}

func (PauseMsg) Path() string {
	return pathPauseMsg
}

func (m *PauseMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

type UnpauseMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

func (m *UnpauseMsg) Reset()         { *m = UnpauseMsg{} }
func (m *UnpauseMsg) String() string { return proto.CompactTextString(m) }
func (*UnpauseMsg) ProtoMessage()    {}

func (UnpauseMsg) Path() string {
	return pathUnpauseMsg
}

func (m *UnpauseMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

// UpdateConfigurationMsg patches the package configuration. A new cycle
// duration applies to the open cycle.
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
	return errs
}
