package utils

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// Savepoint runs the rest of the stack on a cache of the store. The cache is
// written only when the call succeeds, so a failed operation leaves no
// trace. It is enabled separately for CheckTx and DeliverTx.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ timelock.Decorator = Savepoint{}

// NewSavepoint returns a Savepoint that is enabled for neither call. Use
// OnCheck and OnDeliver to enable it.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Checker) (*timelock.CheckResult, error) {
	var res *timelock.CheckResult
	err := isolate(s.onCheck, db, func(db timelock.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (*timelock.DeliverResult, error) {
	var res *timelock.DeliverResult
	err := isolate(s.onDeliver, db, func(db timelock.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls fn with a cache of db when enabled and db can be cached,
// otherwise with db itself.
func isolate(enabled bool, db timelock.KVStore, fn func(timelock.KVStore) error) error {
	cacheable, ok := db.(timelock.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
