package store

import (
	"fmt"

	"github.com/iov-one/timelock/errors"
)

// SliceIterator iterates over an already ordered list of models.
type SliceIterator struct {
	models []Model
	pos    int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Valid() bool {
	return s.pos < len(s.models)
}

func (s *SliceIterator) Next() error {
	if !s.Valid() {
		return errors.Wrap(errors.ErrDatabase, "iterator exhausted")
	}
	s.pos++
	return nil
}

// Key panics when the iterator is not valid.
func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

// Value panics when the iterator is not valid.
func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("slice iterator exhausted")
	}
	return s.models[s.pos]
}

func (s *SliceIterator) Close() {
	s.models = nil
}

// EmptyKVStore is always empty and ignores all writes. Cache wraps on top of
// it make an in memory store.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error) { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error { return nil }
func (EmptyKVStore) Delete([]byte) error { return nil }
func (e EmptyKVStore) NewBatch() Batch { return NewNonAtomicBatch(e) }
func (EmptyKVStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}
func (EmptyKVStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// Op is a recorded Set or Delete.
type Op struct {
	del   bool
	key   []byte
	value []byte
}

func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

func DelOp(key []byte) Op {
	return Op{del: true, key: key}
}

// Apply executes the operation on db.
func (o Op) Apply(db SetDeleter) error {
	if o.del {
		return db.Delete(o.key)
	}
	return db.Set(o.key, o.value)
}

func (o Op) IsSetOp() bool {
	return !o.del
}

func (o Op) Key() []byte {
	return o.key
}

func (o Op) String() string {
	if o.del {
		return fmt.Sprintf("delete %X", o.key)
	}
	return fmt.Sprintf("set %X=%X", o.key, o.value)
}

// NonAtomicBatch records operations and replays them in order on Write. A
// failing operation leaves the earlier ones applied, so only use it on top
// of stores that are themselves discarded on failure, like cache wraps.
type NonAtomicBatch struct {
	db  SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(db SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{db: db}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write replays and then forgets all recorded operations.
func (b *NonAtomicBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.db); err != nil {
			return errors.Wrapf(err, "operation %d: %s", i, op)
		}
	}
	b.ops = nil
	return nil
}

// ShowOps returns the operations not yet written.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
