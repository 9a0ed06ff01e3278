package otc

import (
	"crypto/sha256"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/otc/errors"
	"golang.org/x/crypto/ed25519"
)

// Address is a validated account identity in its canonical, lower case
// bech32 form. Obtain one through an AddressValidator.
type Address string

// String returns the bech32 representation.
func (a Address) String() string {
	return string(a)
}

// Equals returns true if both addresses identify the same account.
func (a Address) Equals(b Address) bool {
	return a == b
}

// AddressValidator turns user provided strings into validated addresses.
type AddressValidator interface {
	ValidateAddress(raw string) (Address, error)
}

// Bech32Validator accepts bech32 encoded addresses with a fixed human
// readable part, carrying either a 20 byte account hash or a 32 byte
// contract hash.
type Bech32Validator struct {
	HRP string
}

var _ AddressValidator = Bech32Validator{}

// ValidateAddress decodes and checks given address. Upper case input is
// accepted and normalized to lower case.
func (v Bech32Validator) ValidateAddress(raw string) (Address, error) {
	if raw == "" {
		return "", errors.Wrap(errors.ErrEmpty, "address")
	}
	// bech32 rejects mixed case, an all upper case form is valid.
	canonical := strings.ToLower(raw)
	hrp, data, err := bech32.Decode(canonical)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "address %q: %s", raw, err)
	}
	if hrp != v.HRP {
		return "", errors.Wrapf(errors.ErrInvalidInput, "address %q: prefix %q, want %q", raw, hrp, v.HRP)
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "address %q: %s", raw, err)
	}
	if n := len(payload); n != 20 && n != 32 {
		return "", errors.Wrapf(errors.ErrInvalidInput, "address %q: %d byte payload", raw, n)
	}
	return Address(canonical), nil
}

// Encode returns the address of given raw payload.
func (v Bech32Validator) Encode(payload []byte) (Address, error) {
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	raw, err := bech32.Encode(v.HRP, data)
	if err != nil {
		return "", errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return Address(raw), nil
}

// PubKeyAddress returns the account address controlled by given public key,
// the first 20 bytes of its sha256 hash.
func (v Bech32Validator) PubKeyAddress(pub ed25519.PublicKey) (Address, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", errors.Wrapf(errors.ErrInvalidInput, "public key of %d bytes", len(pub))
	}
	hash := sha256.Sum256(pub)
	return v.Encode(hash[:20])
}
