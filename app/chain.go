package app

import (
	"reflect"

	"github.com/iov-one/timelock"
)

// Decorators is an ordered stack of decorators waiting for the handler they
// wrap. The first decorator sees the transaction first.
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//	).WithHandler(router)
type Decorators struct {
	chain []timelock.Decorator
}

// ChainDecorators skips nil entries, including typed nil pointers, so
// optional decorators can be passed unconditionally.
func ChainDecorators(ds ...timelock.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a new stack with ds appended. The receiver is not modified.
func (d Decorators) Chain(ds ...timelock.Decorator) Decorators {
	chain := make([]timelock.Decorator, len(d.chain), len(d.chain)+len(ds))
	copy(chain, d.chain)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			chain = append(chain, dec)
		}
	}
	return Decorators{chain: chain}
}

func isNilDecorator(d timelock.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with h.
func (d Decorators) WithHandler(h timelock.Handler) timelock.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decorated{decorator: d.chain[i], next: h}
	}
	return h
}

// decorated runs one decorator around the rest of the stack.
type decorated struct {
	decorator timelock.Decorator
	next      timelock.Handler
}

var _ timelock.Handler = decorated{}

func (d decorated) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.next)
}
