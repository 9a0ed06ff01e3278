package asset

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/iov-one/otc/errors"
)

// Kind tells how a denomination is identified.
type Kind int32

const (
	// KindNative is a ledger intrinsic unit identified by its symbol.
	KindNative Kind = 1
	// KindToken is a unit issued by a token contract and identified by
	// that contract's address.
	KindToken Kind = 2
)

// String returns the name used in logs and in JSON.
func (k Kind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindToken:
		return "token"
	default:
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
}

var isNativeSymbol = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/:._-]{2,127}$`).MatchString

// Denom is a tagged denomination. Construct it with Native or Token.
type Denom struct {
	Kind Kind
	Name string
}

// Native returns the denomination of a native unit.
func Native(symbol string) Denom {
	return Denom{Kind: KindNative, Name: symbol}
}

// Token returns the denomination of a unit issued by given contract.
func Token(contract string) Denom {
	return Denom{Kind: KindToken, Name: contract}
}

// Validate returns an error if the denomination is not well formed. Token
// contract addresses are only checked for presence here, address validation
// is the caller's responsibility.
func (d Denom) Validate() error {
	switch d.Kind {
	case KindNative:
		if !isNativeSymbol(d.Name) {
			return errors.Wrapf(errors.ErrInvalidInput, "invalid native denom %q", d.Name)
		}
		return nil
	case KindToken:
		if d.Name == "" {
			return errors.Wrap(errors.ErrEmpty, "token contract")
		}
		return nil
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "unknown denom kind %d", d.Kind)
	}
}

// Equal returns true if both the kind and the name match.
func (d Denom) Equal(o Denom) bool {
	return d.Kind == o.Kind && d.Name == o.Name
}

// String returns "<kind>:<name>".
func (d Denom) String() string {
	return d.Kind.String() + ":" + d.Name
}

// denomJSON is the externally tagged representation, {"native": "ujuno"}
// or {"token": "<contract>"}.
type denomJSON struct {
	Native *string `json:"native,omitempty"`
	Token  *string `json:"token,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (d Denom) MarshalJSON() ([]byte, error) {
	var raw denomJSON
	switch d.Kind {
	case KindNative:
		raw.Native = &d.Name
	case KindToken:
		raw.Token = &d.Name
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown denom kind %d", d.Kind)
	}
	return json.Marshal(raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Denom) UnmarshalJSON(b []byte) error {
	var raw denomJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	switch {
	case raw.Native != nil && raw.Token == nil:
		*d = Native(*raw.Native)
	case raw.Token != nil && raw.Native == nil:
		*d = Token(*raw.Token)
	default:
		return errors.Wrap(errors.ErrInvalidInput, "denom must be exactly one of native or token")
	}
	return nil
}
