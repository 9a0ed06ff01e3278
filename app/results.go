package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ResultSet holds the keys or the values of a query response.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

// Marshal encodes the set with protobuf.
func (m *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal(m)
}

// Unmarshal decodes a protobuf encoded set.
func (m *ResultSet) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, m)
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []otc.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []otc.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]otc.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "%d keys for %d values", len(kref), len(vref))
	}
	mods := make([]otc.Model, len(kref))
	for i := range mods {
		mods[i] = otc.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// TxResult is encoded into the data of a delivered transaction. The host
// executes Instructions in order once the block is committed.
type TxResult struct {
	Data         []byte            `json:"data"`
	Instructions []otc.Instruction `json:"instructions"`
}

// deliverResponse turns the handler result into the abci response.
func (b BaseApp) deliverResponse(res *otc.DeliverResult, err error) abci.ResponseDeliverTx {
	if err != nil {
		return deliverTxError(err, b.debug)
	}
	for i, ins := range res.Instructions {
		if err := ins.Validate(); err != nil {
			return deliverTxError(errors.Wrapf(err, "instruction %d", i), b.debug)
		}
	}
	data, err := b.cdc.MarshalBinaryBare(TxResult{
		Data:         res.Data,
		Instructions: res.Instructions,
	})
	if err != nil {
		return deliverTxError(errors.Wrap(errors.ErrHuman, err.Error()), b.debug)
	}
	return abci.ResponseDeliverTx{
		Data: data,
		Log:  res.Log,
		Tags: res.Tags,
	}
}

func deliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseDeliverTx{
		Code: code,
		Log:  log,
	}
}

func checkResponse(res *otc.CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return checkTxError(err, debug)
	}
	return abci.ResponseCheckTx{
		Data:      res.Data,
		Log:       res.Log,
		GasWanted: res.GasAllocated,
	}
}

func checkTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseCheckTx{
		Code: code,
		Log:  log,
	}
}
