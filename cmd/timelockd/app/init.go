package app

import (
	"encoding/json"
	"path/filepath"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/ledger"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is reported by the ABCI info call.
const Name = "timelockd"

// GenInitOptions produces the app_state for the genesis file. Arguments
// are pairs of an address and its initial ledger balance, for example
//
//   timelockd init bech32:tiov1... 1000 cond:sigs/ed25519/... 250
func GenInitOptions(args []string) (json.RawMessage, error) {
	if len(args)%2 != 0 {
		return nil, errors.Wrap(errors.ErrInput, "expected pairs of address and balance")
	}
	accounts := make([]ledger.GenesisAccount, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		addr, err := timelock.ParseAddress(args[i])
		if err != nil {
			return nil, errors.Wrapf(err, "address %q", args[i])
		}
		if _, err := ledger.ParseAmount(args[i+1]); err != nil {
			return nil, errors.Wrapf(err, "balance of %s", args[i])
		}
		accounts = append(accounts, ledger.GenesisAccount{Address: addr, Balance: args[i+1]})
	}
	state := map[string]interface{}{
		"ledger": accounts,
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "timelock.db")
	}
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	return InlineApp(kv, logger, debug), nil
}

// InlineApp will take a previously prepared CommitStore and return a complete Application
func InlineApp(kv timelock.CommitKVStore, logger log.Logger, debug bool) abci.Application {
	application := Application(Name, kv, debug)
	application.WithLogger(logger)
	return application
}
