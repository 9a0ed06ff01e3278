package otc

import (
	"context"

	"github.com/iov-one/otc"
	"github.com/iov-one/otc/asset"
	"github.com/iov-one/otc/errors"
)

const (
	depositCost        int64 = 300
	withdrawCost       int64 = 50
	acceptExchangeCost int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r otc.Registry, validator otc.AddressValidator) {
	ctrl := NewController(validator)
	r.Handle(&DepositMsg{}, DepositHandler{ctrl})
	r.Handle(&WithdrawMsg{}, WithdrawHandler{ctrl})
	r.Handle(&AcceptExchangeMsg{}, AcceptExchangeHandler{ctrl})
	r.Handle(&ReceiveTokenMsg{}, ReceiveTokenHandler{ctrl, validator})
}

// loadMsg returns the validated message of the tx.
func loadMsg(tx otc.Tx) (otc.Msg, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "msg")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

func signer(ctx context.Context) (otc.Address, error) {
	addr, ok := otc.GetSigner(ctx)
	if !ok {
		return "", errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return addr, nil
}

// attached returns the first native coin attached to the tx.
func attached(tx otc.Tx) (asset.Asset, error) {
	c, err := tx.GetFunds().First()
	if err != nil {
		return asset.Asset{}, err
	}
	return c.Asset(), nil
}

// DepositHandler escrows the funds attached to the tx.
type DepositHandler struct {
	ctrl Controller
}

var _ otc.Handler = DepositHandler{}

// Check verifies the deposit could be created.
func (h DepositHandler) Check(ctx context.Context, db otc.KVStore, tx otc.Tx) (*otc.CheckResult, error) {
	sender, escrow, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	res, err := h.ctrl.CheckDeposit(db, escrow, msg)
	if err != nil {
		return nil, err
	}
	otc.GetLogger(ctx).Debug("deposit checked", "owner", sender)
	return res, nil
}

// Deliver stores the deposit and returns its id as data.
func (h DepositHandler) Deliver(ctx context.Context, db otc.KVStore, tx otc.Tx) (*otc.DeliverResult, error) {
	sender, escrow, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return h.ctrl.Deposit(ctx, db, sender, escrow, msg)
}

func (h DepositHandler) validate(ctx context.Context, tx otc.Tx) (otc.Address, asset.Asset, *DepositMsg, error) {
	raw, err := loadMsg(tx)
	if err != nil {
		return "", asset.Asset{}, nil, errors.Wrap(err, "load msg")
	}
	msg, ok := raw.(*DepositMsg)
	if !ok {
		return "", asset.Asset{}, nil, errors.Wrapf(errors.ErrInvalidType, "%T", raw)
	}
	sender, err := signer(ctx)
	if err != nil {
		return "", asset.Asset{}, nil, err
	}
	escrow, err := attached(tx)
	if err != nil {
		return "", asset.Asset{}, nil, err
	}
	return sender, escrow, msg, nil
}

// WithdrawHandler returns escrowed funds to the signer.
type WithdrawHandler struct {
	ctrl Controller
}

var _ otc.Handler = WithdrawHandler{}

// Check verifies the requested deposit exists.
func (h WithdrawHandler) Check(ctx context.Context, db otc.KVStore, tx otc.Tx) (*otc.CheckResult, error) {
	sender, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.withdrawable(db, sender, msg.selection()); err != nil {
		return nil, err
	}
	return otc.NewCheck(withdrawCost, ""), nil
}

// Deliver removes the deposits and returns one transfer per deposit.
func (h WithdrawHandler) Deliver(ctx context.Context, db otc.KVStore, tx otc.Tx) (*otc.DeliverResult, error) {
	sender, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return h.ctrl.Withdraw(ctx, db, sender, msg.selection())
}

func (h WithdrawHandler) validate(ctx context.Context, tx otc.Tx) (otc.Address, *WithdrawMsg, error) {
	raw, err := loadMsg(tx)
	if err != nil {
		return "", nil, errors.Wrap(err, "load msg")
	}
	msg, ok := raw.(*WithdrawMsg)
	if !ok {
		return "", nil, errors.Wrapf(errors.ErrInvalidType, "%T", raw)
	}
	sender, err := signer(ctx)
	if err != nil {
		return "", nil, err
	}
	return sender, msg, nil
}

// AcceptExchangeHandler settles a deposit with the funds attached to the
// tx.
type AcceptExchangeHandler struct {
	ctrl Controller
}

var _ otc.Handler = AcceptExchangeHandler{}

// Check verifies the attached funds match the offer.
func (h AcceptExchangeHandler) Check(ctx context.Context, db otc.KVStore, tx otc.Tx) (*otc.CheckResult, error) {
	acceptor, offered, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.MatchExchange(db, acceptor, offered, msg.DepositID); err != nil {
		return nil, err
	}
	return otc.NewCheck(acceptExchangeCost, ""), nil
}

// Deliver settles the exchange.
func (h AcceptExchangeHandler) Deliver(ctx context.Context, db otc.KVStore, tx otc.Tx) (*otc.DeliverResult, error) {
	acceptor, offered, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return h.ctrl.AcceptExchange(ctx, db, acceptor, offered, msg.DepositID)
}

func (h AcceptExchangeHandler) validate(ctx context.Context, tx otc.Tx) (otc.Address, asset.Asset, *AcceptExchangeMsg, error) {
	raw, err := loadMsg(tx)
	if err != nil {
		return "", asset.Asset{}, nil, errors.Wrap(err, "load msg")
	}
	msg, ok := raw.(*AcceptExchangeMsg)
	if !ok {
		return "", asset.Asset{}, nil, errors.Wrapf(errors.ErrInvalidType, "%T", raw)
	}
	acceptor, err := signer(ctx)
	if err != nil {
		return "", asset.Asset{}, nil, err
	}
	offered, err := attached(tx)
	if err != nil {
		return "", asset.Asset{}, nil, err
	}
	return acceptor, offered, msg, nil
}

// ReceiveTokenHandler processes the receive hook of a token contract. The
// signer of the tx is the token contract, the inner request is executed on
// behalf of the sender named in the hook.
type ReceiveTokenHandler struct {
	ctrl      Controller
	validator otc.AddressValidator
}

var _ otc.Handler = ReceiveTokenHandler{}

// Check verifies the inner request could be executed.
func (h ReceiveTokenHandler) Check(ctx context.Context, db otc.KVStore, tx otc.Tx) (*otc.CheckResult, error) {
	sender, received, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	switch inner := msg.Msg.(type) {
	case *DepositMsg:
		return h.ctrl.CheckDeposit(db, received, inner)
	case *AcceptExchangeMsg:
		if _, err := h.ctrl.MatchExchange(db, sender, received, inner.DepositID); err != nil {
			return nil, err
		}
		return otc.NewCheck(acceptExchangeCost, ""), nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "unsupported msg %T", msg.Msg)
	}
}

// Deliver executes the inner request with the received tokens as funds.
func (h ReceiveTokenHandler) Deliver(ctx context.Context, db otc.KVStore, tx otc.Tx) (*otc.DeliverResult, error) {
	sender, received, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	switch inner := msg.Msg.(type) {
	case *DepositMsg:
		return h.ctrl.Deposit(ctx, db, sender, received, inner)
	case *AcceptExchangeMsg:
		return h.ctrl.AcceptExchange(ctx, db, sender, received, inner.DepositID)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "unsupported msg %T", msg.Msg)
	}
}

func (h ReceiveTokenHandler) validate(ctx context.Context, tx otc.Tx) (otc.Address, asset.Asset, *ReceiveTokenMsg, error) {
	raw, err := loadMsg(tx)
	if err != nil {
		return "", asset.Asset{}, nil, errors.Wrap(err, "load msg")
	}
	msg, ok := raw.(*ReceiveTokenMsg)
	if !ok {
		return "", asset.Asset{}, nil, errors.Wrapf(errors.ErrInvalidType, "%T", raw)
	}
	contract, err := signer(ctx)
	if err != nil {
		return "", asset.Asset{}, nil, err
	}
	sender, err := h.validator.ValidateAddress(msg.Sender)
	if err != nil {
		return "", asset.Asset{}, nil, errors.Wrap(err, "sender")
	}
	received := asset.Asset{
		Denom:  asset.Token(contract.String()),
		Amount: msg.Amount,
	}
	return sender, received, msg, nil
}
