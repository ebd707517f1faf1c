package utils

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// Recovery converts a panic below it into an ErrPanic, failing only the
// transaction that caused it. Place it above Savepoint so that the partial
// writes of the panicking handler are dropped.
type Recovery struct{}

var _ timelock.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Checker) (res *timelock.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (res *timelock.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
