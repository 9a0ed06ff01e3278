package otc

import (
	"github.com/iov-one/otc"
	"github.com/iov-one/otc/asset"
	"github.com/iov-one/otc/errors"
)

const (
	pathDepositMsg        = "otc/deposit"
	pathWithdrawMsg       = "otc/withdraw"
	pathAcceptExchangeMsg = "otc/accept_exchange"
	pathReceiveTokenMsg   = "otc/receive"
)

// DepositMsg escrows the attached funds and publishes an offer.
type DepositMsg struct {
	Exchange asset.Asset `json:"exchange"`
	// From optionally restricts who may accept the offer.
	From string `json:"from,omitempty"`
}

var _ otc.Msg = (*DepositMsg)(nil)

// Path returns the routing path for this message.
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Validate ensures the requested asset is well formed.
func (m *DepositMsg) Validate() error {
	if err := m.Exchange.Validate(); err != nil {
		return errors.Wrap(err, "exchange")
	}
	return nil
}

// WithdrawMsg returns escrowed funds to their owner. With All set every
// deposit of the sender is returned, otherwise only deposit ID. Zero is
// a valid id.
type WithdrawMsg struct {
	ID  uint64 `json:"id"`
	All bool   `json:"all,omitempty"`
}

var _ otc.Msg = (*WithdrawMsg)(nil)

// Path returns the routing path for this message.
func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

// Validate rejects a request naming an id and all deposits at once.
func (m *WithdrawMsg) Validate() error {
	if m.All && m.ID != 0 {
		return errors.Wrapf(errors.ErrInvalidMsg, "id %d given with all", m.ID)
	}
	return nil
}

// selection returns the requested id, nil when all deposits are
// requested.
func (m *WithdrawMsg) selection() *uint64 {
	if m.All {
		return nil
	}
	id := m.ID
	return &id
}

// AcceptExchangeMsg pays the attached funds for the offer of a deposit.
type AcceptExchangeMsg struct {
	DepositID uint64 `json:"deposit_id"`
}

var _ otc.Msg = (*AcceptExchangeMsg)(nil)

// Path returns the routing path for this message.
func (AcceptExchangeMsg) Path() string {
	return pathAcceptExchangeMsg
}

// Validate always passes, the id is checked against the ledger.
func (m *AcceptExchangeMsg) Validate() error {
	return nil
}

// ReceiveTokenMsg is sent by a token contract after Amount of its token
// was transferred to the exchange by Sender. Msg is the deposit or accept
// request Sender attached to the transfer.
type ReceiveTokenMsg struct {
	Sender string       `json:"sender"`
	Amount asset.Amount `json:"amount"`
	Msg    otc.Msg      `json:"msg"`
}

var _ otc.Msg = (*ReceiveTokenMsg)(nil)

// Path returns the routing path for this message.
func (ReceiveTokenMsg) Path() string {
	return pathReceiveTokenMsg
}

// Validate checks the hook carries a supported request.
func (m *ReceiveTokenMsg) Validate() error {
	if m.Sender == "" {
		return errors.Wrap(errors.ErrEmpty, "sender")
	}
	if m.Amount.IsZero() {
		return errors.Wrap(errors.ErrInvalidAmount, "zero amount received")
	}
	switch inner := m.Msg.(type) {
	case *DepositMsg:
		return inner.Validate()
	case *AcceptExchangeMsg:
		return inner.Validate()
	case nil:
		return errors.Wrap(errors.ErrEmpty, "msg")
	default:
		return errors.Wrapf(errors.ErrInvalidMsg, "unsupported msg %T", m.Msg)
	}
}
