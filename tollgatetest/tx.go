package tollgatetest

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
)

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg tollgate.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ tollgate.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (tollgate.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message that is routed by its path and validates
// according to its Err attribute.
type Msg struct {
	// RoutePath is returned by the path method, consumed by the router.
	RoutePath string `protobuf:"bytes,1,opt,name=route_path,json=routePath,proto3" json:"route_path,omitempty"`
	// Err if set is returned by the Validate method.
	Err error `protobuf:"-" json:"-"`
}

var _ tollgate.Msg = (*Msg)(nil)

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return proto.CompactTextString(m) }
func (*Msg) ProtoMessage()    {}

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
