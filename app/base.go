package app

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ErrorEncoder returns the machine readable representation of a failure,
// placed in the Data field of a failed DeliverTx or CheckTx response. A nil
// result leaves the field empty.
type ErrorEncoder func(err error) []byte

// BaseApp adds DeliverTx, CheckTx, and BeginBlock
// handlers to the storage and query functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder   timelock.TxDecoder
	handler   timelock.Handler
	errorData ErrorEncoder
	debug     bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder timelock.TxDecoder,
	handler timelock.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// WithErrorData returns a copy of the application that attaches the result
// of given encoder to every failed transaction response.
func (b BaseApp) WithErrorData(fn ErrorEncoder) BaseApp {
	b.errorData = fn
	return b
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return b.deliverError(err)
	}

	ctx := timelock.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", timelock.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	if err != nil {
		return b.deliverError(err)
	}
	return res.ToABCI()
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return b.checkError(err)
	}

	ctx := timelock.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", timelock.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	if err != nil {
		return b.checkError(err)
	}
	return res.ToABCI()
}

func (b BaseApp) deliverError(err error) abci.ResponseDeliverTx {
	res := timelock.DeliverTxError(err, b.debug)
	if b.errorData != nil {
		res.Data = b.errorData(err)
	}
	return res
}

func (b BaseApp) checkError(err error) abci.ResponseCheckTx {
	res := timelock.CheckTxError(err, b.debug)
	if b.errorData != nil {
		res.Data = b.errorData(err)
	}
	return res
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx timelock.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	if err != nil {
		return nil, errors.Wrap(err, "cannot decode transaction")
	}
	return tx, nil
}
