package identity

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

const (
	pathRegisterMsg = "identity/register"
	pathRevokeMsg   = "identity/revoke"
)

// RegisterMsg declares the verification level of an address.
type RegisterMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address  tollgate.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"address,omitempty"`
	Level    uint32             `protobuf:"varint,3,opt,name=level,proto3" json:"level,omitempty"`
	Note     string             `protobuf:"bytes,4,opt,name=note,proto3" json:"note,omitempty"`
}

func (m *RegisterMsg) Reset()         { *m = RegisterMsg{} }
func (m *RegisterMsg) String() string { return proto.CompactTextString(m) }
func (*RegisterMsg) ProtoMessage()    {}

func (RegisterMsg) Path() string {
	return pathRegisterMsg
}

func (m *RegisterMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	errs = errors.AppendField(errs, "Level", validateLevel(m.Level))
	if len(m.Note) > maxNoteLength {
		errs = errors.AppendField(errs, "Note", errors.Wrapf(errors.ErrInput, "longer than %d", maxNoteLength))
	}
	return errs
}

// RevokeMsg removes the verification of an address.
type RevokeMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address  tollgate.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"address,omitempty"`
}

func (m *RevokeMsg) Reset()         { *m = RevokeMsg{} }
func (m *RevokeMsg) String() string { return proto.CompactTextString(m) }
func (*RevokeMsg) ProtoMessage()    {}

func (RevokeMsg) Path() string {
	return pathRevokeMsg
}

func (m *RevokeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	return errs
}
