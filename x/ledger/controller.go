package ledger

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// Controller is the functionality needed by other extensions to read and
// move balances.
type Controller interface {
	Balance(db timelock.ReadOnlyKVStore, addr timelock.Address) (*uint256.Int, error)
	Transfer(db timelock.KVStore, from, to timelock.Address, amount *uint256.Int) error
	Issue(db timelock.KVStore, to timelock.Address, amount *uint256.Int) error
}

// BaseController is the default ledger implementation, storing every
// account in a single bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the ledger bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

// Balance returns the amount held by given address. Unknown addresses hold
// nothing.
func (c BaseController) Balance(db timelock.ReadOnlyKVStore, addr timelock.Address) (*uint256.Int, error) {
	acc, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "account")
	}
	return acc.Amount(), nil
}

// Transfer moves amount from the source to the destination account. It
// fails if the source does not hold enough. A zero amount is a no-op.
func (c BaseController) Transfer(db timelock.KVStore, from, to timelock.Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return nil
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.Get(db, from)
	if err != nil {
		return errors.Wrap(err, "source account")
	}
	have := sender.Amount()
	if have.Lt(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %s, needs %s", from, have.ToBig(), amount.ToBig())
	}
	if err := c.bucket.Save(db, from, NewAccount(new(uint256.Int).Sub(have, amount))); err != nil {
		return errors.Wrap(err, "save source")
	}

	// Read the recipient after saving the sender, so that a transfer to
	// self leaves the balance unchanged.
	recipient, err := c.bucket.Get(db, to)
	if err != nil {
		return errors.Wrap(err, "destination account")
	}
	total, overflow := new(uint256.Int).AddOverflow(recipient.Amount(), amount)
	if overflow {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}
	return c.bucket.Save(db, to, NewAccount(total))
}

// Issue creates new value on the destination account. Used by genesis.
func (c BaseController) Issue(db timelock.KVStore, to timelock.Address, amount *uint256.Int) error {
	recipient, err := c.bucket.Get(db, to)
	if err != nil {
		return errors.Wrap(err, "account")
	}
	total, overflow := new(uint256.Int).AddOverflow(recipient.Amount(), amount)
	if overflow {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	return c.bucket.Save(db, to, NewAccount(total))
}

// RegisterQuery will register this bucket as "/accounts"
func RegisterQuery(qr timelock.QueryRouter) {
	NewBucket().Register("accounts", qr)
}
