package feecollect

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/orm"
)

// CollectionRecord is the audit entry of a collected fee.
type CollectionRecord struct {
	Metadata       *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token          tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Payer          tollgate.Address   `protobuf:"bytes,3,opt,name=payer,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"payer,omitempty"`
	Operation      string             `protobuf:"bytes,4,opt,name=operation,proto3" json:"operation,omitempty"`
	Gross          uint64             `protobuf:"varint,5,opt,name=gross,proto3" json:"gross,omitempty"`
	Fee            uint64             `protobuf:"varint,6,opt,name=fee,proto3" json:"fee,omitempty"`
	TreasuryAmount uint64             `protobuf:"varint,7,opt,name=treasury_amount,json=treasuryAmount,proto3" json:"treasury_amount,omitempty"`
	RewardAmount   uint64             `protobuf:"varint,8,opt,name=reward_amount,json=rewardAmount,proto3" json:"reward_amount,omitempty"`
	CreatedAt      tollgate.UnixTime  `protobuf:"varint,9,opt,name=created_at,json=createdAt,proto3,casttype=github.com/tollgate-dao/tollgate.UnixTime" json:"created_at,omitempty"`
}

func (m *CollectionRecord) Reset()         { *m = CollectionRecord{} }
func (m *CollectionRecord) String() string { return proto.CompactTextString(m) }
func (*CollectionRecord) ProtoMessage()    {}

func (m *CollectionRecord) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	errs = errors.AppendField(errs, "Payer", m.Payer.Validate())
	if m.TreasuryAmount+m.RewardAmount != m.Fee {
		errs = errors.AppendField(errs, "Fee", errors.Wrap(errors.ErrModel, "fee must equal the forwarded amounts"))
	}
	if m.Fee > m.Gross {
		errs = errors.AppendField(errs, "Fee", errors.Wrap(errors.ErrModel, "greater than the gross amount"))
	}
	errs = errors.AppendField(errs, "CreatedAt", m.CreatedAt.Validate())
	return errs
}

// NewCollectionRecordBucket returns the append only collection audit
// table, indexed by token.
func NewCollectionRecordBucket() orm.ModelBucket {
	return orm.NewModelBucket("fee_collection", &CollectionRecord{},
		orm.WithIDSequence(orm.NewSequence("fee_collection", "id")),
		orm.WithIndex("token", tokenIndexer, false),
	)
}

func tokenIndexer(obj orm.Model) ([]byte, error) {
	r, ok := obj.(*CollectionRecord)
	if !ok {
		return nil, errors.WithType(errors.ErrType, obj)
	}
	return r.Token, nil
}
