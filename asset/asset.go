package asset

import (
	"github.com/iov-one/otc/errors"
)

// Asset is a quantity of one denomination.
type Asset struct {
	Denom  Denom  `json:"denom"`
	Amount Amount `json:"amount"`
}

// NewNative returns an asset of a native unit.
func NewNative(amount uint64, symbol string) Asset {
	return Asset{Denom: Native(symbol), Amount: NewAmount(amount)}
}

// NewToken returns an asset of a token issued by given contract.
func NewToken(amount uint64, contract string) Asset {
	return Asset{Denom: Token(contract), Amount: NewAmount(amount)}
}

// Validate checks the denomination and requires a non zero amount.
func (a Asset) Validate() error {
	if err := a.Denom.Validate(); err != nil {
		return errors.Wrap(err, "denom")
	}
	if a.Amount.IsZero() {
		return errors.Wrap(errors.ErrInvalidAmount, "amount must be positive")
	}
	return nil
}

// Equal is true for the same denomination and amount.
func (a Asset) Equal(o Asset) bool {
	return a.Denom.Equal(o.Denom) && a.Amount.Equal(o.Amount)
}

// IsNative returns true for native unit assets.
func (a Asset) IsNative() bool {
	return a.Denom.Kind == KindNative
}

// String returns a human readable representation, for example
// "100 native:ujuno".
func (a Asset) String() string {
	return a.Amount.String() + " " + a.Denom.String()
}
