package treasury

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/coin"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/orm"
)

const (
	maxNameLength   = 64
	maxSourceLength = 32
)

// Recipient receives a share of every distribution while it is active.
// Removed recipients are kept inactive for the audit trail.
type Recipient struct {
	Metadata      *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Name          string             `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Address       tollgate.Address   `protobuf:"bytes,3,opt,name=address,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"address,omitempty"`
	AllocationBps uint32             `protobuf:"varint,4,opt,name=allocation_bps,json=allocationBps,proto3" json:"allocation_bps,omitempty"`
	Active        bool               `protobuf:"varint,5,opt,name=active,proto3" json:"active,omitempty"`
}

func (m *Recipient) Reset()         { *m = Recipient{} }
func (m *Recipient) String() string { return proto.CompactTextString(m) }
func (*Recipient) ProtoMessage()    {}

func (m *Recipient) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Name", validateName(m.Name))
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	errs = errors.AppendField(errs, "AllocationBps", validateAllocation(m.AllocationBps))
	return errs
}

func validateName(name string) error {
	switch n := len(name); {
	case n == 0:
		return errors.ErrEmpty
	case n > maxNameLength:
		return errors.Wrapf(errors.ErrInput, "longer than %d", maxNameLength)
	}
	return nil
}

func validateAllocation(bps uint32) error {
	if bps == 0 {
		return errors.Wrap(errors.ErrConfiguration, "must be greater than zero")
	}
	return coin.ValidateBps(bps, coin.MaxBps)
}

// NewRecipientBucket returns a bucket of recipients keyed by a sequence,
// so that a scan returns them in registration order.
func NewRecipientBucket() orm.ModelBucket {
	return orm.NewModelBucket("recipient", &Recipient{},
		orm.WithIDSequence(orm.NewSequence("recipient", "id")),
		orm.WithIndex("address", recipientAddressIndexer, false),
	)
}

func recipientAddressIndexer(obj orm.Model) ([]byte, error) {
	r, ok := obj.(*Recipient)
	if !ok {
		return nil, errors.WithType(errors.ErrType, obj)
	}
	// Only active recipients are indexed, an address can be registered
	// again once removed.
	if !r.Active {
		return nil, nil
	}
	return r.Address, nil
}

// TokenBalance is the tracked balance of a supported token.
type TokenBalance struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token    tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Balance  uint64             `protobuf:"varint,3,opt,name=balance,proto3" json:"balance,omitempty"`
	// LastDistribution is zero until the first distribution.
	LastDistribution tollgate.UnixTime `protobuf:"varint,4,opt,name=last_distribution,json=lastDistribution,proto3,casttype=github.com/tollgate-dao/tollgate.UnixTime" json:"last_distribution,omitempty"`
}

func (m *TokenBalance) Reset()         { *m = TokenBalance{} }
func (m *TokenBalance) String() string { return proto.CompactTextString(m) }
func (*TokenBalance) ProtoMessage()    {}

func (m *TokenBalance) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	errs = errors.AppendField(errs, "LastDistribution", m.LastDistribution.Validate())
	return errs
}

// NewTokenBalanceBucket returns a bucket of supported tokens keyed by the
// token address.
func NewTokenBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("treasury_token", &TokenBalance{})
}

// Collection is the audit entry of received tokens.
type Collection struct {
	Metadata  *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token     tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Sender    tollgate.Address   `protobuf:"bytes,3,opt,name=sender,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"sender,omitempty"`
	Amount    uint64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	Source    string             `protobuf:"bytes,5,opt,name=source,proto3" json:"source,omitempty"`
	CreatedAt tollgate.UnixTime  `protobuf:"varint,6,opt,name=created_at,json=createdAt,proto3,casttype=github.com/tollgate-dao/tollgate.UnixTime" json:"created_at,omitempty"`
}

func (m *Collection) Reset()         { *m = Collection{} }
func (m *Collection) String() string { return proto.CompactTextString(m) }
func (*Collection) ProtoMessage()    {}

func (m *Collection) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	errs = errors.AppendField(errs, "Sender", m.Sender.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrModel)
	}
	errs = errors.AppendField(errs, "Source", validateSource(m.Source))
	errs = errors.AppendField(errs, "CreatedAt", m.CreatedAt.Validate())
	return errs
}

func validateSource(source string) error {
	switch n := len(source); {
	case n == 0:
		return errors.ErrEmpty
	case n > maxSourceLength:
		return errors.Wrapf(errors.ErrInput, "longer than %d", maxSourceLength)
	}
	return nil
}

// NewCollectionBucket returns the append only receive audit table.
func NewCollectionBucket() orm.ModelBucket {
	return orm.NewModelBucket("collection", &Collection{},
		orm.WithIDSequence(orm.NewSequence("collection", "id")),
		orm.WithIndex("token", collectionTokenIndexer, false),
	)
}

func collectionTokenIndexer(obj orm.Model) ([]byte, error) {
	c, ok := obj.(*Collection)
	if !ok {
		return nil, errors.WithType(errors.ErrType, obj)
	}
	return c.Token, nil
}

// Distribution trigger names.
const (
	TriggerManual = "manual"
	TriggerAuto   = "auto"
)

// Distribution is the audit entry of a distribution round.
type Distribution struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token    tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	// Balance is the tracked balance before the distribution.
	Balance   uint64            `protobuf:"varint,3,opt,name=balance,proto3" json:"balance,omitempty"`
	TotalPaid uint64            `protobuf:"varint,4,opt,name=total_paid,json=totalPaid,proto3" json:"total_paid,omitempty"`
	Remainder uint64            `protobuf:"varint,5,opt,name=remainder,proto3" json:"remainder,omitempty"`
	Trigger   string            `protobuf:"bytes,6,opt,name=trigger,proto3" json:"trigger,omitempty"`
	CreatedAt tollgate.UnixTime `protobuf:"varint,7,opt,name=created_at,json=createdAt,proto3,casttype=github.com/tollgate-dao/tollgate.UnixTime" json:"created_at,omitempty"`
}

func (m *Distribution) Reset()         { *m = Distribution{} }
func (m *Distribution) String() string { return proto.CompactTextString(m) }
func (*Distribution) ProtoMessage()    {}

func (m *Distribution) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	if m.TotalPaid+m.Remainder != m.Balance {
		errs = errors.AppendField(errs, "Remainder", errors.Wrap(errors.ErrModel, "paid and remainder must sum to the balance"))
	}
	if m.Trigger != TriggerManual && m.Trigger != TriggerAuto {
		errs = errors.AppendField(errs, "Trigger", errors.Wrapf(errors.ErrModel, "unknown trigger %q", m.Trigger))
	}
	errs = errors.AppendField(errs, "CreatedAt", m.CreatedAt.Validate())
	return errs
}

// NewDistributionBucket returns the append only distribution audit table.
func NewDistributionBucket() orm.ModelBucket {
	return orm.NewModelBucket("distribution", &Distribution{},
		orm.WithIDSequence(orm.NewSequence("distribution", "id")),
	)
}

// RecipientDistribution is the audit entry of a single payout.
type RecipientDistribution struct {
	Metadata       *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	DistributionID []byte             `protobuf:"bytes,2,opt,name=distribution_id,json=distributionId,proto3" json:"distribution_id,omitempty"`
	RecipientID    []byte             `protobuf:"bytes,3,opt,name=recipient_id,json=recipientId,proto3" json:"recipient_id,omitempty"`
	Address        tollgate.Address   `protobuf:"bytes,4,opt,name=address,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"address,omitempty"`
	Amount         uint64             `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *RecipientDistribution) Reset()         { *m = RecipientDistribution{} }
func (m *RecipientDistribution) String() string { return proto.CompactTextString(m) }
func (*RecipientDistribution) ProtoMessage()    {}

func (m *RecipientDistribution) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "DistributionID", orm.ValidateSequence(m.DistributionID))
	errs = errors.AppendField(errs, "RecipientID", orm.ValidateSequence(m.RecipientID))
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrModel)
	}
	return errs
}

// NewRecipientDistributionBucket returns the append only payout audit
// table, indexed by the parent distribution.
func NewRecipientDistributionBucket() orm.ModelBucket {
	return orm.NewModelBucket("recipient_payout", &RecipientDistribution{},
		orm.WithIDSequence(orm.NewSequence("recipient_payout", "id")),
		orm.WithIndex("distribution", payoutDistributionIndexer, false),
	)
}

func payoutDistributionIndexer(obj orm.Model) ([]byte, error) {
	p, ok := obj.(*RecipientDistribution)
	if !ok {
		return nil, errors.WithType(errors.ErrType, obj)
	}
	return p.DistributionID, nil
}
