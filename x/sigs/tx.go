package sigs

import (
	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
	"golang.org/x/crypto/ed25519"
)

// SignedTx represents a transaction that contains a signature, which can
// be verified by the Decorator
type SignedTx interface {
	otc.Tx

	// GetSignBytes returns the canonical byte representation of the tx
	// without its signature.
	GetSignBytes() ([]byte, error)

	// GetSignature returns the signature of the tx, nil if unsigned.
	GetSignature() *StdSignature
}

// StdSignature is an ed25519 signature together with the public key and
// the sequence it was produced for.
type StdSignature struct {
	PubKey    []byte `json:"pub_key"`
	Sequence  uint64 `json:"sequence"`
	Signature []byte `json:"signature"`
}

// Validate ensures the signature is well formed. It does not verify it.
func (s *StdSignature) Validate() error {
	if s == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	if len(s.PubKey) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInvalidInput, "public key of %d bytes", len(s.PubKey))
	}
	if len(s.Signature) != ed25519.SignatureSize {
		return errors.Wrapf(errors.ErrInvalidInput, "signature of %d bytes", len(s.Signature))
	}
	return nil
}
