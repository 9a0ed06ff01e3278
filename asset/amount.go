package asset

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/iov-one/otc/errors"
)

// maxAmountBits is the width of every Amount.
const maxAmountBits = 128

// Amount is an unsigned 128 bit integer. The zero value is a valid zero
// amount.
type Amount struct {
	v uint256.Int
}

// NewAmount returns an Amount holding given value.
func NewAmount(v uint64) Amount {
	var a Amount
	a.v.SetUint64(v)
	return a
}

// ParseAmount parses a base 10 representation of an amount. Signs, empty
// strings and values that do not fit in 128 bits are rejected.
func ParseAmount(s string) (Amount, error) {
	var a Amount
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return a, errors.Wrapf(errors.ErrInvalidAmount, "cannot parse %q", s)
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return a, errors.Wrapf(errors.ErrInvalidAmount, "cannot parse %q", s)
	}
	if b.BitLen() > maxAmountBits {
		return a, errors.Wrapf(errors.ErrOverflow, "%s exceeds %d bits", s, maxAmountBits)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return a, errors.Wrapf(errors.ErrOverflow, "%s exceeds %d bits", s, maxAmountBits)
	}
	a.v = *v
	return a, nil
}

// MustParseAmount is ParseAmount that panics on error. Use it for constants
// and in tests.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// Equal returns true if both amounts are the same.
func (a Amount) Equal(b Amount) bool {
	return a.v.Eq(&b.v)
}

// Cmp compares a and b and returns -1, 0 or 1.
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

// String returns the base 10 representation.
func (a Amount) String() string {
	return a.v.ToBig().String()
}

// MarshalJSON encodes the amount as a quoted decimal string so that values
// above 2^53 survive JavaScript clients.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a quoted decimal string.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInvalidAmount, "amount must be a string")
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalAmino represents the amount as a decimal string on the wire.
func (a Amount) MarshalAmino() (string, error) {
	return a.String(), nil
}

// UnmarshalAmino is the inverse of MarshalAmino.
func (a *Amount) UnmarshalAmino(s string) error {
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
