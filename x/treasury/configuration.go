package treasury

import (
	"math"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/gconf"
)

const packageName = "treasury"

// maxSeconds is the longest cooldown a time.Duration can represent.
const maxSeconds = math.MaxInt64 / int64(time.Second)

// Configuration controls when distributions happen.
type Configuration struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    tollgate.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"owner,omitempty"`
	// MinDistributionAmount is the smallest balance a manual distribution
	// accepts.
	MinDistributionAmount uint64 `protobuf:"varint,3,opt,name=min_distribution_amount,json=minDistributionAmount,proto3" json:"min_distribution_amount,omitempty"`
	// AutoDistributeThreshold is the balance starting a distribution on
	// receive. Zero disables automatic distributions.
	AutoDistributeThreshold uint64 `protobuf:"varint,4,opt,name=auto_distribute_threshold,json=autoDistributeThreshold,proto3" json:"auto_distribute_threshold,omitempty"`
	CooldownSeconds         int64  `protobuf:"varint,5,opt,name=cooldown_seconds,json=cooldownSeconds,proto3" json:"cooldown_seconds,omitempty"`
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
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	switch {
	case c.CooldownSeconds < 0:
		errs = errors.AppendField(errs, "CooldownSeconds", errors.Wrap(errors.ErrConfiguration, "negative"))
	case c.CooldownSeconds > maxSeconds:
		errs = errors.AppendField(errs, "CooldownSeconds", errors.Wrapf(errors.ErrConfiguration, "must not exceed %d", int64(maxSeconds)))
	}
	return errs
}

// Cooldown returns the minimum time between two distributions of a token.
func (c *Configuration) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

// loadConfiguration returns the stored configuration or the zero
// configuration: no minimum, no automatic distribution and no cooldown.
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
