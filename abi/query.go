package abi

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/wallet"
)

// RegisterQuery will register the read only wallet methods as "/call". The
// query data is the call data, the result a single ABI word keyed by the
// selector.
func RegisterQuery(qr timelock.QueryRouter, ctrl wallet.Controller) {
	qr.Register("/call", timelock.QueryHandlerFunc(func(db timelock.ReadOnlyKVStore, mod string, data []byte) ([]timelock.Model, error) {
		if mod != timelock.KeyQueryMod {
			return nil, errors.Wrapf(errors.ErrInput, "unsupported query mode %q", mod)
		}
		call, err := DecodeCall(data)
		if err != nil {
			return nil, err
		}
		var res Word
		switch call.Signature {
		case SigOwner:
			owner, err := ctrl.Owner(db)
			if err != nil {
				return nil, err
			}
			res = AddressWord(owner)
		case SigUnlockTime:
			unlock, err := ctrl.UnlockTime(db)
			if err != nil {
				return nil, err
			}
			res = UintWord(unlock)
		default:
			return nil, errors.Wrapf(errors.ErrInput, "%s changes state, send a transaction", call.Signature)
		}
		return []timelock.Model{timelock.Pair(data[:SelectorLength], res[:])}, nil
	}))
}
