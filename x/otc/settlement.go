package otc

import (
	"github.com/iov-one/otc"
	"github.com/iov-one/otc/asset"
	"github.com/iov-one/otc/errors"
)

// BankSend moves native coins held by the exchange to To.
type BankSend struct {
	To    otc.Address `json:"to"`
	Coins asset.Coins `json:"coins"`
}

var _ otc.Instruction = (*BankSend)(nil)

// Validate implements otc.Instruction.
func (b *BankSend) Validate() error {
	if b.To == "" {
		return errors.Wrap(errors.ErrEmpty, "recipient")
	}
	if len(b.Coins) == 0 {
		return errors.Wrap(errors.ErrEmpty, "coins")
	}
	return b.Coins.Validate()
}

// TokenTransfer calls the transfer method of a token contract, sending
// Amount of the exchange's balance to Recipient. The host executes it as
// the contract message {"transfer":{"recipient":..,"amount":".."}}.
type TokenTransfer struct {
	Contract  otc.Address  `json:"contract"`
	Recipient otc.Address  `json:"recipient"`
	Amount    asset.Amount `json:"amount"`
}

var _ otc.Instruction = (*TokenTransfer)(nil)

// Validate implements otc.Instruction.
func (t *TokenTransfer) Validate() error {
	if t.Contract == "" {
		return errors.Wrap(errors.ErrEmpty, "contract")
	}
	if t.Recipient == "" {
		return errors.Wrap(errors.ErrEmpty, "recipient")
	}
	if t.Amount.IsZero() {
		return errors.Wrap(errors.ErrInvalidAmount, "zero transfer")
	}
	return nil
}

// Transfer returns the instruction that pays a to party.
func Transfer(party otc.Address, a asset.Asset) (otc.Instruction, error) {
	switch a.Denom.Kind {
	case asset.KindNative:
		return &BankSend{
			To:    party,
			Coins: asset.Coins{{Denom: a.Denom.Name, Amount: a.Amount}},
		}, nil
	case asset.KindToken:
		return &TokenTransfer{
			Contract:  otc.Address(a.Denom.Name),
			Recipient: party,
			Amount:    a.Amount,
		}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidType, "asset kind %d", a.Denom.Kind)
	}
}

// BuildSettlement returns the two transfers settling an exchange. The
// first pays assetA to partyA, the second pays assetB to partyB.
func BuildSettlement(partyA otc.Address, assetA asset.Asset, partyB otc.Address, assetB asset.Asset) ([]otc.Instruction, error) {
	first, err := Transfer(partyA, assetA)
	if err != nil {
		return nil, err
	}
	second, err := Transfer(partyB, assetB)
	if err != nil {
		return nil, err
	}
	return []otc.Instruction{first, second}, nil
}
