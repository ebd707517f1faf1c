package ledger

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x"
)

// ValueTx is a transaction that can carry value for the message it
// contains.
type ValueTx interface {
	// GetValue returns the 32 byte big-endian amount. Empty means zero.
	GetValue() []byte
}

// Payable is implemented by messages accepting value. All other
// messages must be sent with zero value.
type Payable interface {
	Payable()
}

//----------------- ValueDecorator ----------------
//
// This is just a binding from the functionality into the
// Application stack, not much business logic here.

// ValueDecorator moves the value attached to a transaction from the main
// signer to the receiver before calling down the stack. The moved amount
// is available to handlers through Value.
//
// Any failure further down must roll back the transfer, so this decorator
// must be wrapped by a savepoint.
type ValueDecorator struct {
	auth     x.Authenticator
	ctrl     Controller
	receiver timelock.Address
}

var _ timelock.Decorator = ValueDecorator{}

// NewValueDecorator returns a decorator crediting all attached value to
// the receiver.
func NewValueDecorator(auth x.Authenticator, ctrl Controller, receiver timelock.Address) ValueDecorator {
	return ValueDecorator{
		auth:     auth,
		ctrl:     ctrl,
		receiver: receiver,
	}
}

// Check moves the value before calling down the stack
func (d ValueDecorator) Check(ctx timelock.Context, store timelock.KVStore, tx timelock.Tx, next timelock.Checker) (*timelock.CheckResult, error) {
	value, err := d.take(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(withValue(ctx, value), store, tx)
}

// Deliver moves the value before calling down the stack
func (d ValueDecorator) Deliver(ctx timelock.Context, store timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (*timelock.DeliverResult, error) {
	value, err := d.take(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(withValue(ctx, value), store, tx)
}

func (d ValueDecorator) take(ctx timelock.Context, store timelock.KVStore, tx timelock.Tx) (*uint256.Int, error) {
	vtx, ok := tx.(ValueTx)
	if !ok {
		return new(uint256.Int), nil
	}
	value, err := timelock.DecodeU256(vtx.GetValue())
	if err != nil {
		return nil, errors.Wrap(err, "value")
	}
	if value.IsZero() {
		return value, nil
	}

	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message")
	}
	if _, ok := msg.(Payable); !ok {
		return nil, errors.Wrapf(errors.ErrMsg, "%s does not accept value", msg.Path())
	}

	sender := x.Caller(ctx, d.auth)
	if sender == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "value without a signer")
	}
	if err := d.ctrl.Transfer(store, sender, d.receiver, value); err != nil {
		return nil, errors.Wrap(err, "cannot take value")
	}
	return value, nil
}
