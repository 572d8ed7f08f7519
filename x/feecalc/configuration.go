package feecalc

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/gconf"
)

const packageName = "feecalc"

// Configuration holds the package wide settings of the fee calculator.
type Configuration struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Owner is allowed to update the configuration.
	Owner            tollgate.Address `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"owner,omitempty"`
	DiscountsEnabled bool             `protobuf:"varint,3,opt,name=discounts_enabled,json=discountsEnabled,proto3" json:"discounts_enabled,omitempty"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

func (c *Configuration) GetOwner() tollgate.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	// Owner field is optional.
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	return errs
}

// loadConfiguration returns the stored configuration. A missing
// configuration is not an error, discounts are disabled then.
func loadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{Metadata: &tollgate.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}
