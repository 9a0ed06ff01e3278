package otc

import (
	"context"
	"encoding/binary"

	"github.com/iov-one/otc"
	"github.com/iov-one/otc/asset"
	"github.com/iov-one/otc/errors"
)

// Controller executes the ledger operations. It is shared by the handlers
// of the direct entry points and of the token receive hook.
type Controller struct {
	bucket    DepositBucket
	validator otc.AddressValidator
}

// NewController returns a controller working on the deposit ledger.
func NewController(validator otc.AddressValidator) Controller {
	return Controller{
		bucket:    NewDepositBucket(),
		validator: validator,
	}
}

// PrepareDeposit builds the deposit sender would create, without touching
// the store.
func (c Controller) PrepareDeposit(escrow asset.Asset, msg *DepositMsg) (*Deposit, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if err := escrow.Validate(); err != nil {
		return nil, errors.Wrap(err, "escrowed funds")
	}
	d := &Deposit{
		Deposit: escrow,
		Offer:   Offer{Exchange: msg.Exchange},
	}
	if msg.From != "" {
		from, err := c.validator.ValidateAddress(msg.From)
		if err != nil {
			return nil, errors.Wrap(err, "from")
		}
		d.Offer.From = from
	}
	return d, nil
}

// CheckDeposit verifies a deposit could be created. The check data holds
// the id the deposit gets if no other deposit is delivered first.
func (c Controller) CheckDeposit(db otc.ReadOnlyKVStore, escrow asset.Asset, msg *DepositMsg) (*otc.CheckResult, error) {
	if _, err := c.PrepareDeposit(escrow, msg); err != nil {
		return nil, err
	}
	next, err := c.bucket.NextID(db)
	if err != nil {
		return nil, err
	}
	res := otc.NewCheck(depositCost, "")
	res.Data = encodeID(next)
	return res, nil
}

// Deposit escrows the asset of sender under a fresh id.
func (c Controller) Deposit(ctx context.Context, db otc.KVStore, sender otc.Address, escrow asset.Asset, msg *DepositMsg) (*otc.DeliverResult, error) {
	d, err := c.PrepareDeposit(escrow, msg)
	if err != nil {
		return nil, err
	}
	id, err := c.bucket.Insert(db, sender, d)
	if err != nil {
		return nil, err
	}
	otc.GetLogger(ctx).Debug("deposit created", "deposit_id", id, "owner", sender)

	res := &otc.DeliverResult{Data: encodeID(id)}
	res.AddTag("execute", "deposit")
	res.AddTag("sender", sender.String())
	res.AddTag("deposit", d.Deposit.String())
	res.AddTag("exchange", d.Offer.Exchange.String())
	return res, nil
}

// Withdraw removes the selected deposits of sender and returns their
// escrowed assets. A nil id selects every deposit of sender.
func (c Controller) Withdraw(ctx context.Context, db otc.KVStore, sender otc.Address, id *uint64) (*otc.DeliverResult, error) {
	entries, err := c.withdrawable(db, sender, id)
	if err != nil {
		return nil, err
	}

	res := &otc.DeliverResult{}
	for _, e := range entries {
		if err := c.bucket.Remove(db, e.Owner, e.ID); err != nil {
			return nil, errors.Wrapf(err, "remove deposit %d", e.ID)
		}
		ins, err := Transfer(sender, e.Deposit.Deposit)
		if err != nil {
			return nil, err
		}
		res.Instructions = append(res.Instructions, ins)
	}
	otc.GetLogger(ctx).Debug("deposits withdrawn", "owner", sender, "count", len(entries))

	res.AddTag("action", "withdraw")
	res.AddTag("sender", sender.String())
	return res, nil
}

func (c Controller) withdrawable(db otc.ReadOnlyKVStore, sender otc.Address, id *uint64) ([]Entry, error) {
	if id == nil {
		return c.bucket.ByOwner(db, sender)
	}
	d, err := c.bucket.One(db, sender, *id)
	if err != nil {
		return nil, err
	}
	return []Entry{{Owner: sender, ID: *id, Deposit: *d}}, nil
}

// MatchExchange finds the deposit and checks that acceptor may settle it
// by paying offered. It does not modify the store.
func (c Controller) MatchExchange(db otc.ReadOnlyKVStore, acceptor otc.Address, offered asset.Asset, id uint64) (*Entry, error) {
	e, err := c.bucket.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	offer := e.Deposit.Offer
	if offer.From != "" && !offer.From.Equals(acceptor) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "deposit %d can only be accepted by %s", id, offer.From)
	}
	want := offer.Exchange
	if !want.Denom.Equal(offered.Denom) {
		return nil, errors.Wrapf(errors.ErrIncorrectDenom, "expected %s, received %s", want.Denom, offered.Denom)
	}
	if !want.Amount.Equal(offered.Amount) {
		return nil, errors.Wrapf(errors.ErrIncorrectAmount, "expected %s, provided %s", want.Amount, offered.Amount)
	}
	return e, nil
}

// AcceptExchange settles the deposit with offered, paid by acceptor. The
// settled deposit is removed from the ledger.
func (c Controller) AcceptExchange(ctx context.Context, db otc.KVStore, acceptor otc.Address, offered asset.Asset, id uint64) (*otc.DeliverResult, error) {
	e, err := c.MatchExchange(db, acceptor, offered, id)
	if err != nil {
		return nil, err
	}
	ins, err := BuildSettlement(e.Owner, offered, acceptor, e.Deposit.Deposit)
	if err != nil {
		return nil, err
	}
	if err := c.bucket.Remove(db, e.Owner, e.ID); err != nil {
		return nil, errors.Wrap(err, "remove settled deposit")
	}
	otc.GetLogger(ctx).Debug("exchange completed", "deposit_id", id, "owner", e.Owner, "acceptor", acceptor)

	res := &otc.DeliverResult{Instructions: ins}
	res.AddTag("exchange", "completed")
	res.AddTag("deposit-sender", e.Owner.String())
	res.AddTag("original-deposit", e.Deposit.Deposit.String())
	res.AddTag("expected", e.Deposit.Offer.Exchange.String())
	res.AddTag("accepted-by", acceptor.String())
	return res, nil
}

func encodeID(id uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	return bz
}

// DecodeID parses the id returned in the result data of a deposit or
// given to the deposit query.
func DecodeID(bz []byte) (uint64, error) {
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "deposit id of %d bytes", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}
