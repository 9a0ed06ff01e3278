package app

import (
	"github.com/iov-one/otc"
	escrow "github.com/iov-one/otc/x/otc"
	amino "github.com/tendermint/go-amino"
)

// MakeCodec returns the codec used for transactions and delivered
// results. All messages and instructions handled by the application are
// registered.
func MakeCodec() *amino.Codec {
	cdc := amino.NewCodec()
	cdc.RegisterInterface((*otc.Msg)(nil), nil)
	cdc.RegisterInterface((*otc.Instruction)(nil), nil)
	cdc.RegisterConcrete(&StdTx{}, "otc/StdTx", nil)
	escrow.RegisterCodec(cdc)
	cdc.Seal()
	return cdc
}
