package rewards

import (
	"math"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/gconf"
)

const packageName = "rewards"

const (
	// ClaimModeLive pays a share of the pool balance at claim time.
	ClaimModeLive = "live"
	// ClaimModeSnapshot pays a share of the pool frozen at the first claim
	// of a cycle and token.
	ClaimModeSnapshot = "snapshot"
)

// DefaultCycleSeconds is the cycle duration used when none is configured.
const DefaultCycleSeconds = 7 * 24 * 60 * 60

// maxSeconds is the longest cycle a time.Duration can represent.
const maxSeconds = math.MaxInt64 / int64(time.Second)

type Configuration struct {
	Metadata     *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner        tollgate.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"owner,omitempty"`
	CycleSeconds int64              `protobuf:"varint,3,opt,name=cycle_seconds,json=cycleSeconds,proto3" json:"cycle_seconds,omitempty"`
	// ClaimMode is either "live" or "snapshot". Empty means live.
	ClaimMode string `protobuf:"bytes,4,opt,name=claim_mode,json=claimMode,proto3" json:"claim_mode,omitempty"`
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
	case c.CycleSeconds < 0:
		errs = errors.AppendField(errs, "CycleSeconds", errors.Wrap(errors.ErrConfiguration, "negative"))
	case c.CycleSeconds > maxSeconds:
		errs = errors.AppendField(errs, "CycleSeconds", errors.Wrapf(errors.ErrConfiguration, "must not exceed %d", int64(maxSeconds)))
	}
	switch c.ClaimMode {
	case "", ClaimModeLive, ClaimModeSnapshot:
	default:
		errs = errors.AppendField(errs, "ClaimMode", errors.Wrapf(errors.ErrConfiguration, "unknown mode %q", c.ClaimMode))
	}
	return errs
}

// CycleDuration returns the configured duration or the default one.
func (c *Configuration) CycleDuration() time.Duration {
	if c.CycleSeconds == 0 {
		return DefaultCycleSeconds * time.Second
	}
	return time.Duration(c.CycleSeconds) * time.Second
}

// Snapshot returns true if claims are paid from frozen pools.
func (c *Configuration) Snapshot() bool {
	return c.ClaimMode == ClaimModeSnapshot
}

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
