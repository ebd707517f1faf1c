/*
Package app links together all the various components
to construct the timelockd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/abi"
	"github.com/iov-one/timelock/app"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store/iavl"
	"github.com/iov-one/timelock/x"
	"github.com/iov-one/timelock/x/eventlog"
	"github.com/iov-one/timelock/x/ledger"
	"github.com/iov-one/timelock/x/sigs"
	"github.com/iov-one/timelock/x/utils"
	"github.com/iov-one/timelock/x/wallet"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// value transfer, event recording, logging, and recovery
func Chain(authFn x.Authenticator, ctrl ledger.Controller) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
		ledger.NewValueDecorator(authFn, ctrl, wallet.PoolAddress),
		eventlog.NewDecorator(),
	)
}

// Router returns a router dispatching to the wallet handlers.
func Router(ctrl wallet.Controller) *app.Router {
	r := app.NewRouter()
	wallet.RegisterRoutes(r, ctrl)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallet", "/accounts", "/events", "/sigs" and the
// ABI read calls under "/call"
func QueryRouter(ctrl wallet.Controller) timelock.QueryRouter {
	r := timelock.NewQueryRouter()
	r.RegisterAll(
		wallet.RegisterQuery,
		ledger.RegisterQuery,
		eventlog.RegisterQuery,
		sigs.RegisterQuery,
	)
	abi.RegisterQuery(r, ctrl)
	return r
}

// Initializers returns the initializers loading the genesis app_state.
func Initializers() timelock.Initializer {
	return timelock.ChainInitializers(ledger.Initializer{})
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(authFn x.Authenticator, ctrl wallet.Controller, ledgerCtrl ledger.Controller) timelock.Handler {
	return Chain(authFn, ledgerCtrl).WithHandler(Router(ctrl))
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, kv timelock.CommitKVStore, debug bool) app.BaseApp {
	authFn := Authenticator()
	ledgerCtrl := ledger.NewController()
	ctrl := wallet.NewController(authFn, ledgerCtrl)

	store := app.NewStoreApp(name, kv, QueryRouter(ctrl), context.Background())
	store.WithInit(Initializers())
	return app.NewBaseApp(store, TxDecoder, Stack(authFn, ctrl, ledgerCtrl), debug).
		WithErrorData(abi.EncodeError)
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (timelock.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
