package identity

import (
	"math"

	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/orm"
)

// Verification declares the verification level of an address.
type Verification struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address  tollgate.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"address,omitempty"`
	Level    uint32             `protobuf:"varint,3,opt,name=level,proto3" json:"level,omitempty"`
	// Operator is the registrar that declared this verification.
	Operator tollgate.Address  `protobuf:"bytes,4,opt,name=operator,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"operator,omitempty"`
	Note     string            `protobuf:"bytes,5,opt,name=note,proto3" json:"note,omitempty"`
	Since    tollgate.UnixTime `protobuf:"varint,6,opt,name=since,proto3,casttype=github.com/tollgate-dao/tollgate.UnixTime" json:"since,omitempty"`
}

func (m *Verification) Reset()         { *m = Verification{} }
func (m *Verification) String() string { return proto.CompactTextString(m) }
func (*Verification) ProtoMessage()    {}

const maxNoteLength = 128

func (m *Verification) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	errs = errors.AppendField(errs, "Level", validateLevel(m.Level))
	if len(m.Operator) != 0 {
		errs = errors.AppendField(errs, "Operator", m.Operator.Validate())
	}
	if len(m.Note) > maxNoteLength {
		errs = errors.AppendField(errs, "Note", errors.Wrapf(errors.ErrInput, "longer than %d", maxNoteLength))
	}
	errs = errors.AppendField(errs, "Since", m.Since.Validate())
	return errs
}

func validateLevel(level uint32) error {
	switch {
	case level == 0:
		return errors.Wrap(errors.ErrInput, "level must be greater than zero")
	case level > math.MaxUint8:
		return errors.Wrapf(errors.ErrInput, "level must not be greater than %d", math.MaxUint8)
	}
	return nil
}

// NewVerificationBucket returns a bucket of verifications keyed by the
// verified address.
func NewVerificationBucket() orm.ModelBucket {
	return orm.NewModelBucket("verification", &Verification{})
}
