package sigs

import (
	"encoding/binary"

	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/orm"
	"golang.org/x/crypto/ed25519"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

const bucketName = "sigs"

// VerifyTxSignature checks the signature of the tx and advances the
// sequence of the signer.
//
// returns the address of the signer or an error if the signature is
// missing or invalid
func VerifyTxSignature(db otc.KVStore, tx SignedTx, chainID string, validator otc.Bech32Validator) (otc.Address, error) {
	sig := tx.GetSignature()
	if err := sig.Validate(); err != nil {
		return "", err
	}
	bz, err := tx.GetSignBytes()
	if err != nil {
		return "", err
	}

	signer, err := validator.PubKeyAddress(ed25519.PublicKey(sig.PubKey))
	if err != nil {
		return "", err
	}

	seq := signerSequence(signer)
	expected, err := seq.Peek(db)
	if err != nil {
		return "", err
	}
	if sig.Sequence != expected {
		return "", errors.Wrapf(errors.ErrUnauthorized, "sequence %d, expected %d", sig.Sequence, expected)
	}

	toSign, err := BuildSignBytes(bz, chainID, sig.Sequence)
	if err != nil {
		return "", err
	}
	if !ed25519.Verify(ed25519.PublicKey(sig.PubKey), toSign, sig.Signature) {
		return "", errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	if _, err := seq.NextVal(db); err != nil {
		return "", err
	}
	return signer, nil
}

// NextSequence returns the sequence the next signature of addr must use.
func NextSequence(db otc.ReadOnlyKVStore, addr otc.Address) (uint64, error) {
	return signerSequence(addr).Peek(db)
}

func signerSequence(addr otc.Address) orm.Sequence {
	return orm.NewSequence(bucketName, addr.String())
}

// BuildSignBytes combines all info on the actual tx with the chain id and
// sequence, to be signed by the client.
//
// SignCodeV1 | uint8(len(chainID)) | chainID | sequence | signBytes
func BuildSignBytes(signBytes []byte, chainID string, seq uint64) ([]byte, error) {
	if !otc.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "chain id: %q", chainID)
	}
	out := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+8+len(signBytes))
	out = append(out, SignCodeV1...)
	out = append(out, uint8(len(chainID)))
	out = append(out, chainID...)
	var seqBz [8]byte
	binary.BigEndian.PutUint64(seqBz[:], seq)
	out = append(out, seqBz[:]...)
	out = append(out, signBytes...)
	return out, nil
}

// Sign produces the signature of tx bytes for given chain and sequence.
func Sign(priv ed25519.PrivateKey, signBytes []byte, chainID string, seq uint64) (*StdSignature, error) {
	toSign, err := BuildSignBytes(signBytes, chainID, seq)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		PubKey:    []byte(priv.Public().(ed25519.PublicKey)),
		Sequence:  seq,
		Signature: ed25519.Sign(priv, toSign),
	}, nil
}
