package tollgate

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate/errors"
)

type pingMsg struct {
	Metadata *Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Text     string    `protobuf:"bytes,2,opt,name=text,proto3" json:"text,omitempty"`
	Owner    Address   `protobuf:"bytes,3,opt,name=owner,proto3,casttype=Address" json:"owner,omitempty"`
	When     UnixTime  `protobuf:"varint,4,opt,name=when,proto3,casttype=UnixTime" json:"when,omitempty"`
}

func (m *pingMsg) Reset()         { *m = pingMsg{} }
func (m *pingMsg) String() string { return proto.CompactTextString(m) }
func (*pingMsg) ProtoMessage()    {}

func (*pingMsg) Path() string { return "test/ping" }

func (m *pingMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Text == "" {
		errs = errors.AppendField(errs, "Text", errors.ErrEmpty)
	}
	return errs
}

type pongMsg struct {
	pingMsg
}

type txStub struct {
	msg Msg
	err error
}

func (tx *txStub) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	valid := &pingMsg{Metadata: &Metadata{Schema: 1}, Text: "hello"}

	cases := map[string]struct {
		tx      Tx
		wantErr *errors.Error
	}{
		"valid message": {
			tx: &txStub{msg: valid},
		},
		"invalid message": {
			tx:      &txStub{msg: &pingMsg{Metadata: &Metadata{Schema: 1}}},
			wantErr: errors.ErrEmpty,
		},
		"missing message": {
			tx:      &txStub{},
			wantErr: errors.ErrMsg,
		},
		"message of a different type": {
			tx:      &txStub{msg: &pongMsg{}},
			wantErr: errors.ErrType,
		},
		"transaction error": {
			tx:      &txStub{err: errors.ErrNotFound},
			wantErr: errors.ErrNotFound,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var msg *pingMsg
			if err := LoadMsg(tc.tx, &msg); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && msg.Text != "hello" {
				t.Fatalf("unexpected message: %v", msg)
			}
		})
	}
}

func TestLoadMsgIntoValue(t *testing.T) {
	tx := &txStub{msg: &pingMsg{Metadata: &Metadata{Schema: 1}, Text: "hello"}}
	var msg pingMsg
	if err := LoadMsg(tx, &msg); err != nil {
		t.Fatalf("cannot load: %+v", err)
	}
	if msg.Text != "hello" {
		t.Fatalf("unexpected message: %v", msg)
	}
	var other pongMsg
	if err := LoadMsg(tx, &other); !errors.ErrType.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	msg := &pingMsg{
		Metadata: &Metadata{Schema: 1},
		Text:     "hello",
		Owner:    NewAddress([]byte("owner")),
		When:     1554370540,
	}
	raw, err := Marshal(msg)
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	var got pingMsg
	if err := Unmarshal(raw, &got); err != nil {
		t.Fatalf("cannot unmarshal: %s", err)
	}
	if got.Text != msg.Text || !got.Owner.Equals(msg.Owner) || got.When != msg.When || got.Metadata.Schema != 1 {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestGetPath(t *testing.T) {
	if got := GetPath(&txStub{msg: &pingMsg{}}); got != "test/ping" {
		t.Fatalf("unexpected path %q", got)
	}
	if got := GetPath(&txStub{}); got != "(missing)" {
		t.Fatalf("unexpected path %q", got)
	}
}
