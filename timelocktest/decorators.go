package timelocktest

import "github.com/iov-one/timelock"

// Decorator is a timelock.Decorator that counts its calls. When CheckErr or
// DeliverErr is set, the corresponding call fails with it and the next
// handler is not called.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checks   int
	delivers int
}

var _ timelock.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Checker) (*timelock.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (*timelock.DeliverResult, error) {
	d.delivers++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int   { return d.checks }
func (d *Decorator) DeliverCallCount() int { return d.delivers }
func (d *Decorator) CallCount() int        { return d.checks + d.delivers }

// Decorate returns a handler that runs h behind d.
func Decorate(h timelock.Handler, d timelock.Decorator) timelock.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   timelock.Handler
	decorator timelock.Decorator
}

func (d decorated) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
