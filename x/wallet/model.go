package wallet

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

const (
	// BucketName is where we store the wallet
	BucketName = "wallet"

	// walletKey is the only key in the bucket.
	walletKey = "wallet"
)

var _ orm.Model = (*Wallet)(nil)

// Validate ensures the owner is either unset or a valid address and the
// unlock time fits 256 bits.
func (w *Wallet) Validate() error {
	if len(w.Owner) != 0 {
		if err := w.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if len(w.UnlockTime) > timelock.U256Length {
		return errors.Wrap(errors.ErrModel, "unlock time does not fit 256 bits")
	}
	return nil
}

// IsInitialized returns true once the wallet has an owner.
func (w *Wallet) IsInitialized() bool {
	return !w.Owner.IsZero()
}

// OwnerAddress returns the owner, or the zero address for an uninitialized
// wallet.
func (w *Wallet) OwnerAddress() timelock.Address {
	if w.Owner.IsZero() {
		return timelock.ZeroAddress()
	}
	return w.Owner
}

// Unlock returns the unlock time in seconds since epoch.
func (w *Wallet) Unlock() *uint256.Int {
	v, err := timelock.DecodeU256(w.UnlockTime)
	if err != nil {
		// Validate guards every stored wallet.
		panic(err)
	}
	return v
}

// Bucket stores the wallet singleton.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for managing the wallet.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Wallet{}),
	}
}

// Load returns the stored wallet. Before initialization a wallet with no
// owner and zero unlock time is returned.
func (b Bucket) Load(db timelock.ReadOnlyKVStore) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, []byte(walletKey), &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{
			Owner:      timelock.ZeroAddress(),
			UnlockTime: timelock.EncodeU256(nil),
		}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}

// Save stores the wallet.
func (b Bucket) Save(db timelock.KVStore, w *Wallet) error {
	_, err := b.Put(db, []byte(walletKey), w)
	return err
}
