package tollgate

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate/errors"
)

// Marshal serializes given model or message using the protobuf wire format.
func Marshal(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrType, "cannot marshal %T: %s", m, err)
	}
	return raw, nil
}

// Unmarshal deserializes protobuf encoded data into given model or message.
func Unmarshal(raw []byte, m proto.Message) error {
	if err := proto.Unmarshal(raw, m); err != nil {
		return errors.Wrapf(errors.ErrType, "cannot unmarshal %T: %s", m, err)
	}
	return nil
}
