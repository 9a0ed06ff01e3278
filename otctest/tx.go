package otctest

import (
	"github.com/iov-one/otc"
	"github.com/iov-one/otc/asset"
)

// Tx represents a single message together with the native funds attached
// to it.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg otc.Msg
	// Funds are returned by GetFunds.
	Funds asset.Coins
	// Err if set is returned by GetMsg.
	Err error
}

var _ otc.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (otc.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) GetFunds() asset.Coins {
	return tx.Funds
}

// Msg is a message with a configurable route and validation result.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ otc.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
