package otc

import (
	"encoding/json"

	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
)

const (
	// QueryDeposits returns one deposit by id.
	QueryDeposits = "/deposits"
	// QueryDepositsByOwner returns all deposits of an owner.
	QueryDepositsByOwner = "/deposits/owner"
	// QueryConfig returns the fee configuration and contract info.
	QueryConfig = "/otc/config"
)

// DepositsByOwner returns the deposits of owner in ascending id order.
func DepositsByOwner(db otc.ReadOnlyKVStore, owner otc.Address) ([]Entry, error) {
	return NewDepositBucket().ByOwner(db, owner)
}

// DepositByID returns the deposit with given id and its owner.
func DepositByID(db otc.ReadOnlyKVStore, id uint64) (*Entry, error) {
	return NewDepositBucket().FindByID(db, id)
}

// RegisterQuery registers the deposit and config queries. Values are
// returned as JSON.
func RegisterQuery(qr otc.QueryRouter, validator otc.AddressValidator) {
	qr.Register(QueryDeposits, byIDQuery{})
	qr.Register(QueryDepositsByOwner, byOwnerQuery{validator})
	qr.Register(QueryConfig, configQuery{})
}

type byIDQuery struct{}

func (byIDQuery) Query(db otc.ReadOnlyKVStore, mod string, data []byte) ([]otc.Model, error) {
	if mod != otc.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod: %q", mod)
	}
	id, err := DecodeID(data)
	if err != nil {
		return nil, err
	}
	e, err := DepositByID(db, id)
	if err != nil {
		return nil, err
	}
	return entryModels([]Entry{*e})
}

type byOwnerQuery struct {
	validator otc.AddressValidator
}

func (q byOwnerQuery) Query(db otc.ReadOnlyKVStore, mod string, data []byte) ([]otc.Model, error) {
	if mod != otc.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod: %q", mod)
	}
	owner, err := q.validator.ValidateAddress(string(data))
	if err != nil {
		return nil, err
	}
	entries, err := DepositsByOwner(db, owner)
	if err != nil {
		return nil, err
	}
	return entryModels(entries)
}

func entryModels(entries []Entry) ([]otc.Model, error) {
	res := make([]otc.Model, 0, len(entries))
	for _, e := range entries {
		bz, err := json.Marshal(e)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
		}
		res = append(res, otc.Pair(DepositKey(e.Owner, e.ID), bz))
	}
	return res, nil
}

type configQuery struct{}

func (configQuery) Query(db otc.ReadOnlyKVStore, mod string, data []byte) ([]otc.Model, error) {
	fee, err := LoadFeeConfig(db)
	if err != nil {
		return nil, err
	}
	info, err := LoadContractInfo(db)
	if err != nil {
		return nil, err
	}
	feeJSON, err := json.Marshal(fee)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	infoJSON, err := json.Marshal(info)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return []otc.Model{
		otc.Pair([]byte(feeKey), feeJSON),
		otc.Pair([]byte(infoKey), infoJSON),
	}, nil
}
