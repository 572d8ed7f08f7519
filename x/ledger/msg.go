package ledger

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

const (
	pathTransferMsg    = "ledger/transfer"
	pathApproveMsg     = "ledger/approve"
	pathMintMsg        = "ledger/mint"
	pathCreateTokenMsg = "ledger/create_token"
)

// TransferMsg moves tokens of the signer to the destination.
type TransferMsg struct {
	Metadata    *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token       tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Destination tollgate.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"destination,omitempty"`
	Amount      uint64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "Amount", validateAmount(m.Amount))
	return errs
}

// ApproveMsg sets the amount the spender may move from the signer account.
// A zero amount removes the approval.
type ApproveMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token    tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Spender  tollgate.Address   `protobuf:"bytes,3,opt,name=spender,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"spender,omitempty"`
	Amount   uint64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveMsg) ProtoMessage()    {}

func (ApproveMsg) Path() string {
	return pathApproveMsg
}

func (m *ApproveMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	errs = errors.AppendField(errs, "Spender", m.Spender.Validate())
	return errs
}

// MintMsg creates new tokens on the destination account.
type MintMsg struct {
	Metadata    *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token       tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Destination tollgate.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"destination,omitempty"`
	Amount      uint64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *MintMsg) Reset()         { *m = MintMsg{} }
func (m *MintMsg) String() string { return proto.CompactTextString(m) }
func (*MintMsg) ProtoMessage()    {}

func (MintMsg) Path() string {
	return pathMintMsg
}

func (m *MintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "Amount", validateAmount(m.Amount))
	return errs
}

// CreateTokenMsg registers a new token.
type CreateTokenMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Symbol   string             `protobuf:"bytes,2,opt,name=symbol,proto3" json:"symbol,omitempty"`
}

func (m *CreateTokenMsg) Reset()         { *m = CreateTokenMsg{} }
func (m *CreateTokenMsg) String() string { return proto.CompactTextString(m) }
func (*CreateTokenMsg) ProtoMessage()    {}

func (CreateTokenMsg) Path() string {
	return pathCreateTokenMsg
}

func (m *CreateTokenMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if !IsSymbol(m.Symbol) {
		errs = errors.AppendField(errs, "Symbol", errors.Wrapf(errors.ErrInput, "invalid symbol %q", m.Symbol))
	}
	return errs
}

func validateAmount(amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "must be greater than zero")
	}
	return nil
}
