/*
Package sigs provides basic authentication
middleware to verify the signature on the transaction,
and maintain sequences for replay protection.
*/
package sigs

import (
	"context"

	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
)

const (
	signatureVerifyCost = 500
)

//----------------- Decorator ----------------
//
// This is just a binding from the functionality into the
// Application stack, not much business logic here.

// Decorator verifies the signature and sets the signer on the context.
type Decorator struct {
	validator otc.Bech32Validator
}

var _ otc.Decorator = Decorator{}

// NewDecorator returns an authentication decorator deriving signer
// addresses with the given validator.
func NewDecorator(validator otc.Bech32Validator) Decorator {
	return Decorator{validator: validator}
}

// Check verifies the signature before calling down the stack.
func (d Decorator) Check(ctx context.Context, store otc.KVStore, tx otc.Tx, next otc.Checker) (*otc.CheckResult, error) {
	ctx, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += signatureVerifyCost
	return res, nil
}

// Deliver verifies the signature before calling down the stack.
func (d Decorator) Deliver(ctx context.Context, store otc.KVStore, tx otc.Tx, next otc.Deliverer) (*otc.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) authenticate(ctx context.Context, store otc.KVStore, tx otc.Tx) (context.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "unsigned tx type %T", tx)
	}
	signer, err := VerifyTxSignature(store, stx, otc.GetChainID(ctx), d.validator)
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signature")
	}
	ctx = otc.WithSigner(ctx, signer)
	return otc.WithLogInfo(ctx, "signer", signer.String()), nil
}
