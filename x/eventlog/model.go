package eventlog

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

// BucketName is where we store the records
const BucketName = "events"

var _ orm.Model = (*Record)(nil)

// Validate ensures the record is named and placed in a block.
func (r *Record) Validate() error {
	if r.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	if r.Height < 0 {
		return errors.Wrap(errors.ErrModel, "negative height")
	}
	return nil
}

// Bucket stores records under consecutive sequence numbers.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for managing records.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Record{}),
	}
}

// Append stores the record under the next free id and returns the id.
func (b Bucket) Append(db timelock.KVStore, r *Record) ([]byte, error) {
	return b.Put(db, nil, r)
}

// All returns every record in the order they were appended.
func (b Bucket) All(db timelock.ReadOnlyKVStore) ([][]byte, []*Record, error) {
	var records []*Record
	keys, err := b.ByPrefix(db, nil, &records)
	if err != nil {
		return nil, nil, err
	}
	return keys, records, nil
}
