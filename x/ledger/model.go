package ledger

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/orm"
)

// IsSymbol is the RegExp to ensure valid token symbols.
var IsSymbol = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,11}$`).MatchString

// TokenAddress returns the address of the token with the given symbol.
func TokenAddress(symbol string) tollgate.Address {
	return tollgate.NewCondition("ledger", "token", []byte(symbol)).Address()
}

// Token is a registered fungible token.
type Token struct {
	Metadata    *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Symbol      string             `protobuf:"bytes,2,opt,name=symbol,proto3" json:"symbol,omitempty"`
	TotalSupply uint64             `protobuf:"varint,3,opt,name=total_supply,json=totalSupply,proto3" json:"total_supply,omitempty"`
}

func (m *Token) Reset()         { *m = Token{} }
func (m *Token) String() string { return proto.CompactTextString(m) }
func (*Token) ProtoMessage()    {}

func (m *Token) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if !IsSymbol(m.Symbol) {
		errs = errors.AppendField(errs, "Symbol", errors.Wrapf(errors.ErrInput, "invalid symbol %q", m.Symbol))
	}
	return errs
}

// Balance is the amount of a token held by an owner.
type Balance struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token    tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Owner    tollgate.Address   `protobuf:"bytes,3,opt,name=owner,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"owner,omitempty"`
	Amount   uint64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

func (m *Balance) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	return errs
}

// Allowance is the amount of a token a spender may move on behalf of the
// owner.
type Allowance struct {
	Metadata *tollgate.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Token    tollgate.Address   `protobuf:"bytes,2,opt,name=token,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"token,omitempty"`
	Owner    tollgate.Address   `protobuf:"bytes,3,opt,name=owner,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"owner,omitempty"`
	Spender  tollgate.Address   `protobuf:"bytes,4,opt,name=spender,proto3,casttype=github.com/tollgate-dao/tollgate.Address" json:"spender,omitempty"`
	Amount   uint64             `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Allowance) Reset()         { *m = Allowance{} }
func (m *Allowance) String() string { return proto.CompactTextString(m) }
func (*Allowance) ProtoMessage()    {}

func (m *Allowance) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Spender", m.Spender.Validate())
	return errs
}

func compositeKey(parts ...tollgate.Address) []byte {
	var key []byte
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

// NewTokenBucket returns a bucket of tokens keyed by the token address.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket("token", &Token{})
}

// NewBalanceBucket returns a bucket of balances keyed by the token address
// followed by the owner address.
func NewBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("balance", &Balance{})
}

// NewAllowanceBucket returns a bucket of allowances keyed by the token,
// owner and spender addresses.
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("allowance", &Allowance{})
}
