package otc

import (
	"github.com/iov-one/otc/asset"
)

// Msg is a request for the application to make a state transition. It is
// just the request and must be validated by the Handler. All authentication
// information and attached funds are in the wrapping Tx.
type Msg interface {
	// Path is used by the Router to locate the proper Handler.
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs the stateless checks.
	Validate() error
}

// Tx represents the data sent from the user to the ledger.
type Tx interface {
	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)

	// GetFunds returns the native funds attached to the request. Handlers
	// consume at most the first coin.
	GetFunds() asset.Coins
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or "" if there is none.
func GetPath(tx Tx) string {
	if tx == nil {
		return ""
	}
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return ""
	}
	return msg.Path()
}
