package wallet

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// RegisterQuery exposes the raw wallet record at "/wallet" and the two read
// accessors at "/wallet/owner" and "/wallet/unlock_time". The accessors
// never return an empty result.
func RegisterQuery(qr timelock.QueryRouter) {
	b := NewBucket()
	b.Register("wallet", qr)
	qr.Register("/wallet/owner", accessorQuery(b, func(w *Wallet) []byte {
		return w.OwnerAddress()
	}))
	qr.Register("/wallet/unlock_time", accessorQuery(b, func(w *Wallet) []byte {
		return timelock.EncodeU256(w.Unlock())
	}))
}

func accessorQuery(b Bucket, field func(*Wallet) []byte) timelock.QueryHandler {
	return timelock.QueryHandlerFunc(func(db timelock.ReadOnlyKVStore, mod string, data []byte) ([]timelock.Model, error) {
		if mod != timelock.KeyQueryMod {
			return nil, errors.Wrapf(errors.ErrInput, "unsupported query mode %q", mod)
		}
		w, err := b.Load(db)
		if err != nil {
			return nil, err
		}
		return []timelock.Model{timelock.Pair([]byte(walletKey), field(w))}, nil
	})
}
