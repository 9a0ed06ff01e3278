package sigs

import (
	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/orm"
)

// RegisterQuery will register the sequence lookup as "/auth". The query
// data is the signer address, the value the 8 byte next sequence.
func RegisterQuery(qr otc.QueryRouter, validator otc.AddressValidator) {
	qr.Register("/auth", sequenceQuery{validator})
}

type sequenceQuery struct {
	validator otc.AddressValidator
}

func (q sequenceQuery) Query(db otc.ReadOnlyKVStore, mod string, data []byte) ([]otc.Model, error) {
	if mod != otc.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod: %q", mod)
	}
	addr, err := q.validator.ValidateAddress(string(data))
	if err != nil {
		return nil, err
	}
	seq, err := NextSequence(db, addr)
	if err != nil {
		return nil, err
	}
	return []otc.Model{otc.Pair([]byte(addr), orm.EncodeSequence(seq))}, nil
}
