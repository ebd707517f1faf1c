package app

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore exposes the abci.Query interface of a single bucket as a
// ReadOnlyKVStore. Keys are relative to the bucket query path.
type ABCIStore struct {
	app  abci.Application
	path string
}

var _ timelock.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore returns a store reading through the query handler
// registered under given path, for example "/accounts".
func NewABCIStore(app abci.Application, path string) *ABCIStore {
	return &ABCIStore{app: app, path: path}
}

// Get will query for exactly one value over the abci store.
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	models, err := a.query(timelock.KeyQueryMod, key)
	if err != nil {
		return nil, err
	}
	switch len(models) {
	case 0:
		return nil, nil
	case 1:
		return models[0].Value, nil
	default:
		return nil, errors.Wrapf(errors.ErrState, "%d results for a key query", len(models))
	}
}

// Has returns true if the given key in in the abci app store
func (a *ABCIStore) Has(key []byte) (bool, error) {
	v, err := a.Get(key)
	return v != nil, err
}

// Iterator iterates over everything stored under the bucket path. Only the
// full range is supported.
func (a *ABCIStore) Iterator(start, end []byte) (timelock.Iterator, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrInput, "only full range iteration is supported")
	}
	models, err := a.query(timelock.PrefixQueryMod, nil)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

// ReverseIterator is not supported.
func (a *ABCIStore) ReverseIterator(start, end []byte) (timelock.Iterator, error) {
	return nil, errors.Wrap(errors.ErrInput, "reverse iteration is not supported")
}

func (a *ABCIStore) query(mod string, data []byte) ([]timelock.Model, error) {
	path := a.path
	if mod != "" {
		path += "?" + mod
	}
	res := a.app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return DecodeResults(res.Key, res.Value)
}
