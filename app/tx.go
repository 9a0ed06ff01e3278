package app

import (
	"github.com/iov-one/otc"
	"github.com/iov-one/otc/asset"
	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/x/sigs"
	amino "github.com/tendermint/go-amino"
	"golang.org/x/crypto/ed25519"
)

// StdTx is the transaction format accepted by the application: one
// message, the native funds attached to it and the signature of the
// sender.
type StdTx struct {
	Msg       otc.Msg            `json:"msg"`
	Funds     asset.Coins        `json:"funds"`
	Signature *sigs.StdSignature `json:"signature"`

	cdc *amino.Codec
}

var _ otc.Tx = (*StdTx)(nil)
var _ sigs.SignedTx = (*StdTx)(nil)

// GetMsg returns the message of the tx.
func (tx *StdTx) GetMsg() (otc.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "msg")
	}
	return tx.Msg, nil
}

// GetFunds returns the attached native funds.
func (tx *StdTx) GetFunds() asset.Coins {
	return tx.Funds
}

// GetSignature returns the signature, nil if unsigned.
func (tx *StdTx) GetSignature() *sigs.StdSignature {
	return tx.Signature
}

// GetSignBytes encodes the tx without its signature.
func (tx *StdTx) GetSignBytes() ([]byte, error) {
	if tx.cdc == nil {
		return nil, errors.Wrap(errors.ErrHuman, "tx not bound to a codec")
	}
	unsigned := StdTx{Msg: tx.Msg, Funds: tx.Funds}
	bz, err := tx.cdc.MarshalBinaryBare(unsigned)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return bz, nil
}

// TxDecoder returns a decoder of amino encoded StdTx.
func TxDecoder(cdc *amino.Codec) otc.TxDecoder {
	return func(txBytes []byte) (otc.Tx, error) {
		var tx StdTx
		if err := cdc.UnmarshalBinaryBare(txBytes, &tx); err != nil {
			return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
		tx.cdc = cdc
		return &tx, nil
	}
}

// SignTx signs the message and funds with given key for the sequence
// and chain. It returns the encoded transaction.
func SignTx(cdc *amino.Codec, msg otc.Msg, funds asset.Coins, priv ed25519.PrivateKey, chainID string, seq uint64) ([]byte, error) {
	tx := StdTx{Msg: msg, Funds: funds, cdc: cdc}
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sig, err := sigs.Sign(priv, bz, chainID, seq)
	if err != nil {
		return nil, err
	}
	tx.Signature = sig
	raw, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}
