package roles

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/orm"
)

// RoleAdmin is allowed to grant and revoke any role.
const RoleAdmin = "admin"

var isRoleName = regexp.MustCompile(`^[a-z][a-z0-9\-]{2,31}$`).MatchString

// Assignment declares that an address holds a role.
type Assignment struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Role     string             `protobuf:"bytes,2,opt,name=role,proto3" json:"role,omitempty"`
	Address  tollgate.Address   `protobuf:"bytes,3,opt,name=address,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"address,omitempty"`
}

func (m *Assignment) Reset()         { *m = Assignment{} }
func (m *Assignment) String() string { return proto.CompactTextString(m) }
func (*Assignment) ProtoMessage()    {}

func (m *Assignment) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Role", validateRole(m.Role))
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	return errs
}

func validateRole(role string) error {
	if !isRoleName(role) {
		return errors.Wrapf(errors.ErrInput, "invalid role name %q", role)
	}
	return nil
}

// assignmentKey returns the primary key of the assignment of a role to an
// address.
func assignmentKey(role string, addr tollgate.Address) []byte {
	key := make([]byte, 0, len(role)+1+len(addr))
	key = append(key, role...)
	key = append(key, '/')
	return append(key, addr...)
}

func indexByAddress(m orm.Model) ([]byte, error) {
	a, ok := m.(*Assignment)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return a.Address, nil
}

// NewAssignmentBucket returns a bucket of role assignments, indexed by the
// address.
func NewAssignmentBucket() orm.ModelBucket {
	return orm.NewModelBucket("roles", &Assignment{},
		orm.WithIndex("address", indexByAddress, false),
	)
}
