package otc

import (
	amino "github.com/tendermint/go-amino"
)

// RegisterCodec registers the messages and instructions of this package.
// The otc.Msg and otc.Instruction interfaces must be registered by the
// caller.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterConcrete(&DepositMsg{}, "otc/DepositMsg", nil)
	cdc.RegisterConcrete(&WithdrawMsg{}, "otc/WithdrawMsg", nil)
	cdc.RegisterConcrete(&AcceptExchangeMsg{}, "otc/AcceptExchangeMsg", nil)
	cdc.RegisterConcrete(&ReceiveTokenMsg{}, "otc/ReceiveTokenMsg", nil)

	cdc.RegisterConcrete(&BankSend{}, "otc/BankSend", nil)
	cdc.RegisterConcrete(&TokenTransfer{}, "otc/TokenTransfer", nil)
}
