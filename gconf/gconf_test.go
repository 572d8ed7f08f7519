package gconf

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/store"
	"github.com/tollgate-dao/tollgate/tollgatetest"
	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
)

func TestSaveLoad(t *testing.T) {
	owner := tollgatetest.NewAddress()

	cases := map[string]struct {
		Conf        *myconfig
		WantSaveErr *errors.Error
	}{
		"all fields set": {
			Conf: &myconfig{
				Metadata: &tollgate.Metadata{Schema: 1},
				Owner:    owner,
				Num:      852151421,
				Str:      "foobar",
			},
		},
		"zero values": {
			Conf: &myconfig{
				Metadata: &tollgate.Metadata{Schema: 1},
				Owner:    owner,
			},
		},
		"invalid address cannot be saved": {
			Conf: &myconfig{
				Metadata: &tollgate.Metadata{Schema: 1},
				Owner:    tollgate.Address("too short"),
			},
			WantSaveErr: errors.ErrInput,
		},
		"missing metadata cannot be saved": {
			Conf: &myconfig{
				Owner: owner,
			},
			WantSaveErr: errors.ErrMetadata,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got myconfig
			if err := Load(db, "mypkg", &got); err != nil {
				t.Fatalf("cannot load configuration: %s", err)
			}
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	var c myconfig
	if err := Load(db, "mypkg", &c); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found error, got %+v", err)
	}
}

func TestConfigurationsAreSeparatedByPackage(t *testing.T) {
	db := store.MemStore()
	a := &myconfig{Metadata: &tollgate.Metadata{Schema: 1}, Owner: tollgatetest.NewAddress(), Str: "a"}
	b := &myconfig{Metadata: &tollgate.Metadata{Schema: 1}, Owner: tollgatetest.NewAddress(), Str: "b"}
	assert.Nil(t, Save(db, "first", a))
	assert.Nil(t, Save(db, "second", b))

	var got myconfig
	assert.Nil(t, Load(db, "first", &got))
	assert.Equal(t, a, &got)
	assert.Nil(t, Load(db, "second", &got))
	assert.Equal(t, b, &got)
}

type myconfig struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    tollgate.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"owner,omitempty"`
	Num      int64              `protobuf:"varint,3,opt,name=num,proto3" json:"num,omitempty"`
	Str      string             `protobuf:"bytes,4,opt,name=str,proto3" json:"str,omitempty"`
}

func (c *myconfig) Reset()                     { *c = myconfig{} }
func (c *myconfig) String() string             { return proto.CompactTextString(c) }
func (*myconfig) ProtoMessage()                {}
func (c *myconfig) GetOwner() tollgate.Address { return c.Owner }

func (c *myconfig) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if c.Num < 0 {
		return errors.Wrap(errors.ErrInput, "negative num")
	}
	return nil
}

type myconfigMsg struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *myconfig          `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
	Clear    []string           `protobuf:"bytes,3,rep,name=clear,proto3" json:"clear,omitempty"`
}

var _ tollgate.Msg = (*myconfigMsg)(nil)

func (m *myconfigMsg) Reset()         { *m = myconfigMsg{} }
func (m *myconfigMsg) String() string { return proto.CompactTextString(m) }
func (*myconfigMsg) ProtoMessage()    {}
func (*myconfigMsg) Path() string     { return "mypkg/update_configuration" }

func (m *myconfigMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if m.Patch.Num < 0 {
		return errors.Wrap(errors.ErrInput, "negative num")
	}
	return nil
}
