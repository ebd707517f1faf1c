package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// Genesis is the subset of the tendermint genesis file this application
// cares about.
type Genesis struct {
	ChainID  string           `json:"chain_id"`
	AppState timelock.Options `json:"app_state"`
}

// LoadGenesis reads the chain id and the application state from a
// tendermint genesis file.
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &gen, nil
}

// _tl: is a prefix for the application internal data
const chainIDKey = "_tl:chain_id"

// loadChainID returns the chain id stored if any
func loadChainID(kv timelock.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv timelock.KVStore, chainID string) error {
	if !timelock.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
