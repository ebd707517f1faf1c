package utils

import (
	"time"

	"github.com/iov-one/timelock"
)

// Logging logs every transaction with the time it took. Failures are
// errors, delivered transactions info and checked transactions debug
// entries.
type Logging struct{}

var _ timelock.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Checker) (*timelock.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logTx(ctx, tx, start, msg, err, true)
	return res, err
}

func (Logging) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (*timelock.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logTx(ctx, tx, start, msg, err, false)
	return res, err
}

// logTx writes an entry even for an empty message, the other fields are
// still relevant.
func logTx(ctx timelock.Context, tx timelock.Tx, start time.Time, msg string, err error, check bool) {
	logger := timelock.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
	if tx != nil {
		if m, merr := tx.GetMsg(); merr == nil {
			logger = logger.With("path", m.Path())
		}
	}
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
