package treasury

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/orm"
)

const (
	pathReceiveMsg             = "treasury/receive"
	pathDistributeMsg          = "treasury/distribute"
	pathAddRecipientMsg        = "treasury/add_recipient"
	pathUpdateRecipientMsg     = "treasury/update_recipient"
	pathRemoveRecipientMsg     = "treasury/remove_recipient"
	pathAddTokenMsg            = "treasury/add_token"
	pathRemoveTokenMsg         = "treasury/remove_token"
	pathWithdrawMsg            = "treasury/withdraw"
	pathRecoverMsg             = "treasury/recover"
	pathPauseMsg               = "treasury/pause"
	pathUnpauseMsg             = "treasury/unpause"
	pathUpdateConfigurationMsg = "treasury/update_configuration"
)

// ReceiveMsg moves tokens from the signer into the treasury.
type ReceiveMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token    tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Amount   uint64             `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Source   string             `protobuf:"bytes,4,opt,name=source,proto3" json:"source,omitempty"`
}

func (m *ReceiveMsg) Reset()         { *m = ReceiveMsg{} }
func (m *ReceiveMsg) String() string { return proto.CompactTextString(m) }
func (*ReceiveMsg) ProtoMessage()    {}

func (ReceiveMsg) Path() string {
	return pathReceiveMsg
}

func (m *ReceiveMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	if m.Source != "" {
		errs = errors.AppendField(errs, "Source", validateSource(m.Source))
	}
	return errs
}

// DistributeMsg starts a manual distribution of a token.
type DistributeMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token    tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
}

func (m *DistributeMsg) Reset()         { *m = DistributeMsg{} }
func (m *DistributeMsg) String() string { return proto.CompactTextString(m) }
func (*DistributeMsg) ProtoMessage()    {}

func (DistributeMsg) Path() string {
	return pathDistributeMsg
}

func (m *DistributeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	return errs
}

// AddRecipientMsg registers a recipient.
type AddRecipientMsg struct {
	Metadata      *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Name          string             `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Address       tollgate.Address   `protobuf:"bytes,3,opt,name=address,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"address,omitempty"`
	AllocationBps uint32             `protobuf:"varint,4,opt,name=allocation_bps,json=allocationBps,proto3" json:"allocation_bps,omitempty"`
}

func (m *AddRecipientMsg) Reset()         { *m = AddRecipientMsg{} }
func (m *AddRecipientMsg) String() string { return proto.CompactTextString(m) }
func (*AddRecipientMsg) ProtoMessage()    {}

func (AddRecipientMsg) Path() string {
	return pathAddRecipientMsg
}

func (m *AddRecipientMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Name", validateName(m.Name))
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	errs = errors.AppendField(errs, "AllocationBps", validateAllocation(m.AllocationBps))
	return errs
}

// UpdateRecipientMsg changes the allocation of a recipient and optionally
// its address.
type UpdateRecipientMsg struct {
	Metadata      *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	RecipientID   []byte             `protobuf:"bytes,2,opt,name=recipient_id,json=recipientId,proto3" json:"recipient_id,omitempty"`
	Address       tollgate.Address   `protobuf:"bytes,3,opt,name=address,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"address,omitempty"`
	AllocationBps uint32             `protobuf:"varint,4,opt,name=allocation_bps,json=allocationBps,proto3" json:"allocation_bps,omitempty"`
}

func (m *UpdateRecipientMsg) Reset()         { *m = UpdateRecipientMsg{} }
func (m *UpdateRecipientMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateRecipientMsg) ProtoMessage()    {}

func (UpdateRecipientMsg) Path() string {
	return pathUpdateRecipientMsg
}

func (m *UpdateRecipientMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "RecipientID", orm.ValidateSequence(m.RecipientID))
	if len(m.Address) != 0 {
		errs = errors.AppendField(errs, "Address", m.Address.Validate())
	}
	errs = errors.AppendField(errs, "AllocationBps", validateAllocation(m.AllocationBps))
	return errs
}

// RemoveRecipientMsg deactivates a recipient.
type RemoveRecipientMsg struct {
	Metadata    *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	RecipientID []byte             `protobuf:"bytes,2,opt,name=recipient_id,json=recipientId,proto3" json:"recipient_id,omitempty"`
}

func (m *RemoveRecipientMsg) Reset()         { *m = RemoveRecipientMsg{} }
func (m *RemoveRecipientMsg) String() string { return proto.CompactTextString(m) }
func (*RemoveRecipientMsg) ProtoMessage()    {}

func (RemoveRecipientMsg) Path() string {
	return pathRemoveRecipientMsg
}

func (m *RemoveRecipientMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "RecipientID", orm.ValidateSequence(m.RecipientID))
	return errs
}

// AddTokenMsg registers a supported token.
type AddTokenMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token    tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
}

func (m *AddTokenMsg) Reset()         { *m = AddTokenMsg{} }
func (m *AddTokenMsg) String() string { return proto.CompactTextString(m) }
func (*AddTokenMsg) ProtoMessage()    {}

func (AddTokenMsg) Path() string {
	return pathAddTokenMsg
}

func (m *AddTokenMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	return errs
}

// RemoveTokenMsg unregisters a supported token.
type RemoveTokenMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token    tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
}

func (m *RemoveTokenMsg) Reset()         { *m = RemoveTokenMsg{} }
func (m *RemoveTokenMsg) String() string { return proto.CompactTextString(m) }
func (*RemoveTokenMsg) ProtoMessage()    {}

func (RemoveTokenMsg) Path() string {
	return pathRemoveTokenMsg
}

func (m *RemoveTokenMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	return errs
}

// WithdrawMsg moves tracked tokens out of the treasury.
type WithdrawMsg struct {
	Metadata    *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token       tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Destination tollgate.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"destination,omitempty"`
	Amount      uint64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *WithdrawMsg) Reset()         { *m = WithdrawMsg{} }
func (m *WithdrawMsg) String() string { return proto.CompactTextString(m) }
func (*WithdrawMsg) ProtoMessage()    {}

func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

func (m *WithdrawMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

// RecoverMsg moves untracked tokens out of the treasury account.
type RecoverMsg struct {
	Metadata    *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token       tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Destination tollgate.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"destination,omitempty"`
}

func (m *RecoverMsg) Reset()         { *m = RecoverMsg{} }
func (m *RecoverMsg) String() string { return proto.CompactTextString(m) }
func (*RecoverMsg) ProtoMessage()    {}

func (RecoverMsg) Path() string {
	return pathRecoverMsg
}

func (m *RecoverMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	return errs
}

// PauseMsg stops every movement of treasury funds.
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

// UpdateConfigurationMsg patches the package configuration. Fields listed
// in Clear are reset first, for example to disable automatic distributions.
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
	if m.Patch.CooldownSeconds < 0 {
		errs = errors.AppendField(errs, "Patch.CooldownSeconds", errors.Wrap(errors.ErrInput, "negative"))
	}
	return errs
}
