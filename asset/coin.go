package asset

import (
	"strings"

	"github.com/iov-one/otc/errors"
)

// Coin is an amount of a native unit, as attached to a request.
type Coin struct {
	Denom  string `json:"denom"`
	Amount Amount `json:"amount"`
}

// NewCoin returns a coin of given native symbol.
func NewCoin(amount uint64, denom string) Coin {
	return Coin{Denom: denom, Amount: NewAmount(amount)}
}

// Asset returns the native asset represented by this coin.
func (c Coin) Asset() Asset {
	return Asset{Denom: Native(c.Denom), Amount: c.Amount}
}

// String returns "<amount><denom>", the bank notation.
func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

// Coins is an ordered list of native funds.
type Coins []Coin

// First returns the first attached coin. It returns ErrNoFunds when the list
// is empty. Any further coins are ignored.
func (cs Coins) First() (Coin, error) {
	if len(cs) == 0 {
		return Coin{}, errors.ErrNoFunds
	}
	return cs[0], nil
}

// Validate ensures every coin has a valid native symbol and a positive
// amount.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if err := c.Asset().Validate(); err != nil {
			return errors.Wrapf(err, "coin %d", i)
		}
	}
	return nil
}

func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
