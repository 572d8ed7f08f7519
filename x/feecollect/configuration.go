package feecollect

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/coin"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/gconf"
)

const packageName = "feecollect"

// Configuration declares where collected fees are sent.
type Configuration struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    tollgate.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"owner,omitempty"`
	Treasury tollgate.Address   `protobuf:"bytes,3,opt,name=treasury,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"treasury,omitempty"`
	// RewardPool is optional. Without it every fee goes to the treasury.
	RewardPool       tollgate.Address `protobuf:"bytes,4,opt,name=reward_pool,json=rewardPool,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"reward_pool,omitempty"`
	TreasuryShareBps uint32           `protobuf:"varint,5,opt,name=treasury_share_bps,json=treasuryShareBps,proto3" json:"treasury_share_bps,omitempty"`
	RewardShareBps   uint32           `protobuf:"varint,6,opt,name=reward_share_bps,json=rewardShareBps,proto3" json:"reward_share_bps,omitempty"`
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
	errs = errors.AppendField(errs, "Treasury", c.Treasury.Validate())
	if len(c.RewardPool) != 0 {
		errs = errors.AppendField(errs, "RewardPool", c.RewardPool.Validate())
	}
	switch total, err := coin.SumBps(c.TreasuryShareBps, c.RewardShareBps); {
	case err != nil:
		errs = errors.AppendField(errs, "TreasuryShareBps", err)
	case total != coin.MaxBps:
		errs = errors.AppendField(errs, "TreasuryShareBps",
			errors.Wrapf(errors.ErrConfiguration, "shares must sum to %d, got %d + %d",
				coin.MaxBps, c.TreasuryShareBps, c.RewardShareBps))
	}
	return errs
}

// IsSplit returns true if fees are shared between the treasury and the
// reward pool.
func (c *Configuration) IsSplit() bool {
	return len(c.RewardPool) != 0 && c.TreasuryShareBps < coin.MaxBps
}

func loadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
