package roles

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

const (
	pathGrantRoleMsg  = "roles/grant"
	pathRevokeRoleMsg = "roles/revoke"
)

// GrantRoleMsg assigns a role to an address.
type GrantRoleMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Role     string             `protobuf:"bytes,2,opt,name=role,proto3" json:"role,omitempty"`
	Address  tollgate.Address   `protobuf:"bytes,3,opt,name=address,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"address,omitempty"`
}

func (m *GrantRoleMsg) Reset()         { *m = GrantRoleMsg{} }
func (m *GrantRoleMsg) String() string { return proto.CompactTextString(m) }
func (*GrantRoleMsg) ProtoMessage()    {}

func (GrantRoleMsg) Path() string {
	return pathGrantRoleMsg
}

func (m *GrantRoleMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Role", validateRole(m.Role))
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	return errs
}

// RevokeRoleMsg removes a role from an address.
type RevokeRoleMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Role     string             `protobuf:"bytes,2,opt,name=role,proto3" json:"role,omitempty"`
	Address  tollgate.Address   `protobuf:"bytes,3,opt,name=address,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"address,omitempty"`
}

func (m *RevokeRoleMsg) Reset()         { *m = RevokeRoleMsg{} }
func (m *RevokeRoleMsg) String() string { return proto.CompactTextString(m) }
func (*RevokeRoleMsg) ProtoMessage()    {}

func (RevokeRoleMsg) Path() string {
	return pathRevokeRoleMsg
}

func (m *RevokeRoleMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Role", validateRole(m.Role))
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	return errs
}
