package asset

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/otc/errors"
)

// Record is the protobuf representation of an Asset used for persistence.
// The amount is kept as a decimal string since protobuf has no 128 bit
// integer type.
type Record struct {
	Kind   int32  `protobuf:"varint,1,opt,name=kind,proto3" json:"kind,omitempty"`
	Denom  string `protobuf:"bytes,2,opt,name=denom,proto3" json:"denom,omitempty"`
	Amount string `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ proto.Message = (*Record)(nil)

func (m *Record) Reset()         { *m = Record{} }
func (m *Record) String() string { return proto.CompactTextString(m) }
func (*Record) ProtoMessage()    {}

// ToRecord returns the persisted form of the asset.
func (a Asset) ToRecord() *Record {
	return &Record{
		Kind:   int32(a.Denom.Kind),
		Denom:  a.Denom.Name,
		Amount: a.Amount.String(),
	}
}

// Asset restores the asset from its persisted form.
func (m *Record) Asset() (Asset, error) {
	if m == nil {
		return Asset{}, errors.Wrap(errors.ErrEmpty, "asset record")
	}
	amount, err := ParseAmount(m.Amount)
	if err != nil {
		return Asset{}, errors.Wrap(err, "amount")
	}
	a := Asset{
		Denom:  Denom{Kind: Kind(m.Kind), Name: m.Denom},
		Amount: amount,
	}
	if err := a.Denom.Validate(); err != nil {
		return Asset{}, err
	}
	return a, nil
}
