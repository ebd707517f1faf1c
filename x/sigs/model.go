package sigs

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

const BucketName = "sigs"

// maxSequence is the largest integer a JSON number holds exactly, so that
// javascript clients can track nonces.
const maxSequence = 1<<53 - 1

var _ orm.Model = (*UserData)(nil)

// Validate requires a public key once the account signed anything.
func (u *UserData) Validate() error {
	switch {
	case u.Sequence < 0:
		return errors.Wrapf(ErrInvalidSequence, "negative sequence %d", u.Sequence)
	case u.Sequence > 0 && u.Pubkey == nil:
		return errors.Wrap(ErrInvalidSequence, "signer without public key")
	}
	return nil
}

// CheckAndIncrementSequence consumes the nonce of a signature. It fails
// unless expected is the current sequence.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if expected != u.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", u.Sequence, expected)
	}
	if u.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence")
	}
	u.Sequence++
	return nil
}

// Bucket keeps the signer state under the address of the public key.
type Bucket struct {
	orm.ModelBucket
}

func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName, &UserData{})}
}

// GetOrCreate returns a fresh signer with sequence zero for an unknown key.
// The new signer is not stored.
func (b Bucket) GetOrCreate(db timelock.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var u UserData
	err := b.One(db, pubkey.Address(), &u)
	if errors.ErrNotFound.Is(err) {
		return &UserData{Pubkey: pubkey}, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (b Bucket) Save(db timelock.KVStore, u *UserData) error {
	addr := u.Pubkey.Address()
	if addr == nil {
		return errors.Wrap(errors.ErrEmpty, "signer without public key")
	}
	_, err := b.Put(db, addr, u)
	return err
}
