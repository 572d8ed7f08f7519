package rewards

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/coin"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/orm"
)

// Participant holds a share of every cycle. Removed participants are kept
// inactive so that their claims remain attributable.
type Participant struct {
	Metadata  *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address   tollgate.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"address,omitempty"`
	Active    bool               `protobuf:"varint,3,opt,name=active,proto3" json:"active,omitempty"`
	SharesBps uint32             `protobuf:"varint,4,opt,name=shares_bps,json=sharesBps,proto3" json:"shares_bps,omitempty"`
	LastClaim tollgate.UnixTime  `protobuf:"varint,5,opt,name=last_claim,json=lastClaim,proto3,casttype=github.com/tollgate-dao/tollgate.UnixTime" json:"last_claim,omitempty"`
}

func (m *Participant) Reset()         { *m = Participant{} }
func (m *Participant) String() string { return proto.CompactTextString(m) }
func (*Participant) ProtoMessage()    {}

func (m *Participant) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	errs = errors.AppendField(errs, "SharesBps", validateShares(m.SharesBps))
	errs = errors.AppendField(errs, "LastClaim", m.LastClaim.Validate())
	return errs
}

func validateShares(bps uint32) error {
	if bps == 0 {
		return errors.Wrap(errors.ErrConfiguration, "must be greater than zero")
	}
	return coin.ValidateBps(bps, coin.MaxBps)
}

// NewParticipantBucket returns a bucket of participants keyed by address.
func NewParticipantBucket() orm.ModelBucket {
	return orm.NewModelBucket("participant", &Participant{})
}

// Cycle is an accounting period. Cycles are numbered from 1 and keyed by
// their encoded number.
type Cycle struct {
	Metadata      *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Number        uint64             `protobuf:"varint,2,opt,name=number,proto3" json:"number,omitempty"`
	StartTime     tollgate.UnixTime  `protobuf:"varint,3,opt,name=start_time,json=startTime,proto3,casttype=github.com/tollgate-dao/tollgate.UnixTime" json:"start_time,omitempty"`
	EndTime       tollgate.UnixTime  `protobuf:"varint,4,opt,name=end_time,json=endTime,proto3,casttype=github.com/tollgate-dao/tollgate.UnixTime" json:"end_time,omitempty"`
	Distributed   bool               `protobuf:"varint,5,opt,name=distributed,proto3" json:"distributed,omitempty"`
	DistributedAt tollgate.UnixTime  `protobuf:"varint,6,opt,name=distributed_at,json=distributedAt,proto3,casttype=github.com/tollgate-dao/tollgate.UnixTime" json:"distributed_at,omitempty"`
}

func (m *Cycle) Reset()         { *m = Cycle{} }
func (m *Cycle) String() string { return proto.CompactTextString(m) }
func (*Cycle) ProtoMessage()    {}

func (m *Cycle) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Number == 0 {
		errs = errors.AppendField(errs, "Number", errors.Wrap(errors.ErrModel, "cycles are numbered from 1"))
	}
	errs = errors.AppendField(errs, "StartTime", m.StartTime.Validate())
	if m.EndTime < m.StartTime {
		errs = errors.AppendField(errs, "EndTime", errors.Wrap(errors.ErrModel, "before start"))
	}
	if m.Distributed == m.DistributedAt.IsZero() {
		errs = errors.AppendField(errs, "DistributedAt", errors.Wrap(errors.ErrModel, "must be set when distributed"))
	}
	return errs
}

// Ended returns true if the cycle can be closed at the given time.
func (m *Cycle) Ended(now tollgate.UnixTime) bool {
	return now >= m.EndTime
}

func cycleKey(n uint64) []byte {
	return orm.EncodeSequence(int64(n))
}

// NewCycleBucket returns a bucket of cycles keyed by number.
func NewCycleBucket() orm.ModelBucket {
	return orm.NewModelBucket("cycle", &Cycle{})
}

// CycleClose is the audit entry of a cycle distribution.
type CycleClose struct {
	Metadata  *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Cycle     uint64             `protobuf:"varint,2,opt,name=cycle,proto3" json:"cycle,omitempty"`
	ClosedBy  tollgate.Address   `protobuf:"bytes,3,opt,name=closed_by,json=closedBy,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"closed_by,omitempty"`
	ClosedAt  tollgate.UnixTime  `protobuf:"varint,4,opt,name=closed_at,json=closedAt,proto3,casttype=github.com/tollgate-dao/tollgate.UnixTime" json:"closed_at,omitempty"`
	SharesBps uint32             `protobuf:"varint,5,opt,name=shares_bps,json=sharesBps,proto3" json:"shares_bps,omitempty"`
}

func (m *CycleClose) Reset()         { *m = CycleClose{} }
func (m *CycleClose) String() string { return proto.CompactTextString(m) }
func (*CycleClose) ProtoMessage()    {}

func (m *CycleClose) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Cycle == 0 {
		errs = errors.AppendField(errs, "Cycle", errors.ErrModel)
	}
	if len(m.ClosedBy) != 0 {
		errs = errors.AppendField(errs, "ClosedBy", m.ClosedBy.Validate())
	}
	errs = errors.AppendField(errs, "ClosedAt", m.ClosedAt.Validate())
	return errs
}

// NewCycleCloseBucket returns the append only cycle close audit table.
func NewCycleCloseBucket() orm.ModelBucket {
	return orm.NewModelBucket("cycle_close", &CycleClose{},
		orm.WithIDSequence(orm.NewSequence("cycle_close", "id")),
	)
}

// Claim is the audit entry of a paid claim. Its presence marks the
// (cycle, token, participant) triple as claimed.
type Claim struct {
	Metadata    *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Cycle       uint64             `protobuf:"varint,2,opt,name=cycle,proto3" json:"cycle,omitempty"`
	Token       tollgate.Address   `protobuf:"bytes,3,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Participant tollgate.Address   `protobuf:"bytes,4,opt,name=participant,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"participant,omitempty"`
	Amount      uint64             `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
	SharesBps   uint32             `protobuf:"varint,6,opt,name=shares_bps,json=sharesBps,proto3" json:"shares_bps,omitempty"`
	ClaimedAt   tollgate.UnixTime  `protobuf:"varint,7,opt,name=claimed_at,json=claimedAt,proto3,casttype=github.com/tollgate-dao/tollgate.UnixTime" json:"claimed_at,omitempty"`
}

func (m *Claim) Reset()         { *m = Claim{} }
func (m *Claim) String() string { return proto.CompactTextString(m) }
func (*Claim) ProtoMessage()    {}

func (m *Claim) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Cycle == 0 {
		errs = errors.AppendField(errs, "Cycle", errors.ErrModel)
	}
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	errs = errors.AppendField(errs, "Participant", m.Participant.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrModel)
	}
	errs = errors.AppendField(errs, "ClaimedAt", m.ClaimedAt.Validate())
	return errs
}

func claimKey(cycle uint64, token, participant tollgate.Address) []byte {
	key := make([]byte, 0, 8+len(token)+len(participant))
	key = append(key, orm.EncodeSequence(int64(cycle))...)
	key = append(key, token...)
	return append(key, participant...)
}

// NewClaimBucket returns the claim table keyed by (cycle, token,
// participant) and indexed by participant.
func NewClaimBucket() orm.ModelBucket {
	return orm.NewModelBucket("claim", &Claim{},
		orm.WithIndex("participant", claimParticipantIndexer, false),
	)
}

func claimParticipantIndexer(obj orm.Model) ([]byte, error) {
	c, ok := obj.(*Claim)
	if !ok {
		return nil, errors.WithType(errors.ErrType, obj)
	}
	return c.Participant, nil
}

// Pool is the frozen amount of a cycle and token in the snapshot claim
// mode. Base is the balance available when the pool was frozen and
// participant payouts are computed against it. Amount is the part of Base
// allocated to the active shares, the only part that is reserved.
type Pool struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Cycle    uint64             `protobuf:"varint,2,opt,name=cycle,proto3" json:"cycle,omitempty"`
	Token    tollgate.Address   `protobuf:"bytes,3,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Amount   uint64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	Claimed  uint64             `protobuf:"varint,5,opt,name=claimed,proto3" json:"claimed,omitempty"`
	Base     uint64             `protobuf:"varint,6,opt,name=base,proto3" json:"base,omitempty"`
	// Released is the unclaimed part returned to the reward balance when
	// the pool of a later cycle was frozen.
	Released uint64 `protobuf:"varint,7,opt,name=released,proto3" json:"released,omitempty"`
}

func (m *Pool) Reset()         { *m = Pool{} }
func (m *Pool) String() string { return proto.CompactTextString(m) }
func (*Pool) ProtoMessage()    {}

func (m *Pool) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Cycle == 0 {
		errs = errors.AppendField(errs, "Cycle", errors.ErrModel)
	}
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	if m.Amount > m.Base {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrModel, "exceeds the base"))
	}
	if m.Claimed > m.Amount || m.Released > m.Amount-m.Claimed {
		errs = errors.AppendField(errs, "Claimed", errors.Wrap(errors.ErrModel, "exceeds the pool"))
	}
	return errs
}

// Unclaimed returns the part of the pool still reserved.
func (m *Pool) Unclaimed() uint64 {
	return m.Amount - m.Claimed - m.Released
}

func poolKey(cycle uint64, token tollgate.Address) []byte {
	return append(orm.EncodeSequence(int64(cycle)), token...)
}

// NewPoolBucket returns the frozen pools keyed by (cycle, token) and
// indexed by token.
func NewPoolBucket() orm.ModelBucket {
	return orm.NewModelBucket("reward_pool", &Pool{},
		orm.WithIndex("token", poolTokenIndexer, false),
	)
}

func poolTokenIndexer(obj orm.Model) ([]byte, error) {
	p, ok := obj.(*Pool)
	if !ok {
		return nil, errors.WithType(errors.ErrType, obj)
	}
	return p.Token, nil
}

// Reserve is the sum of the unclaimed amounts of all frozen pools of a
// token.
type Reserve struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token    tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Amount   uint64             `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Reserve) Reset()         { *m = Reserve{} }
func (m *Reserve) String() string { return proto.CompactTextString(m) }
func (*Reserve) ProtoMessage()    {}

func (m *Reserve) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	return errs
}

// NewReserveBucket returns the reserved amounts keyed by token.
func NewReserveBucket() orm.ModelBucket {
	return orm.NewModelBucket("reward_reserve", &Reserve{})
}
