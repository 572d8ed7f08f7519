package tollgate

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate/errors"
)

// Metadata is present in every persisted model and message. The schema
// version allows migrating the format of the stored data.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}

// Validate returns an error if the metadata is missing or has no schema
// version.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "nil")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be greater than zero")
	}
	return nil
}

// Copy returns a shallow copy of this metadata.
func (m *Metadata) Copy() *Metadata {
	cpy := *m
	return &cpy
}
