package ledger

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

// BucketName is where we store the balances
const BucketName = "ledger"

var _ orm.Model = (*Account)(nil)

// Validate ensures the balance fits 256 bits.
func (a *Account) Validate() error {
	if len(a.Balance) > timelock.U256Length {
		return errors.Wrapf(errors.ErrModel, "balance of %d bytes", len(a.Balance))
	}
	return nil
}

// Amount returns the balance of the account.
func (a *Account) Amount() *uint256.Int {
	v, err := timelock.DecodeU256(a.GetBalance())
	if err != nil {
		// Validate guards every stored account.
		panic(err)
	}
	return v
}

// NewAccount returns an account holding given amount.
func NewAccount(amount *uint256.Int) *Account {
	return &Account{Balance: timelock.EncodeU256(amount)}
}

// Bucket stores accounts under their address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for managing accounts.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Account{}),
	}
}

// Get returns the account stored under given address. An account that was
// never stored is returned with zero balance.
func (b Bucket) Get(db timelock.ReadOnlyKVStore, addr timelock.Address) (*Account, error) {
	var acc Account
	switch err := b.One(db, addr, &acc); {
	case err == nil:
		return &acc, nil
	case errors.ErrNotFound.Is(err):
		return NewAccount(new(uint256.Int)), nil
	default:
		return nil, err
	}
}

// Save stores the account under given address.
func (b Bucket) Save(db timelock.KVStore, addr timelock.Address, acc *Account) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "account address")
	}
	_, err := b.Put(db, addr, acc)
	return err
}
