package app

import (
	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
	amino "github.com/tendermint/go-amino"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and
// query functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder otc.TxDecoder
	handler otc.Handler
	cdc     *amino.Codec
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application. The codec encodes the
// result data and instructions of delivered transactions.
func NewBaseApp(
	store *StoreApp,
	decoder otc.TxDecoder,
	handler otc.Handler,
	cdc *amino.Codec,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		cdc:      cdc,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return deliverTxError(err, b.debug)
	}

	ctx := otc.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", otc.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return b.deliverResponse(res, err)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return checkTxError(err, b.debug)
	}

	ctx := otc.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", otc.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return checkResponse(res, err, b.debug)
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx otc.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
