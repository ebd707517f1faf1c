package store

import (
	"bytes"

	"github.com/iov-one/timelock/errors"
)

// mergeIterator combines pending changes of a cache with an iterator of the
// store below it. Both must be in the same order. A change shadows the
// parent entry of the same key, a deleted change hides it.
type mergeIterator struct {
	changes []*change
	parent  Iterator
	reverse bool

	valid bool
	key   []byte
	value []byte
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(changes []*change, parent Iterator, reverse bool) (*mergeIterator, error) {
	it := &mergeIterator{
		changes: changes,
		parent:  parent,
		reverse: reverse,
	}
	if err := it.advance(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

// advance moves to the next visible entry.
func (it *mergeIterator) advance() error {
	for {
		fromParent := it.parent.Valid()
		if len(it.changes) == 0 && !fromParent {
			it.valid = false
			return nil
		}

		if len(it.changes) > 0 && fromParent {
			cmp := bytes.Compare(it.changes[0].key, it.parent.Key())
			if it.reverse {
				cmp = -cmp
			}
			if cmp == 0 {
				if err := it.parent.Next(); err != nil {
					return errors.Wrap(err, "parent iterator")
				}
			}
			fromParent = cmp > 0
		}

		if fromParent {
			it.valid = true
			it.key = clone(it.parent.Key())
			it.value = clone(it.parent.Value())
			return errors.Wrap(it.parent.Next(), "parent iterator")
		}

		c := it.changes[0]
		it.changes = it.changes[1:]
		if c.deleted {
			continue
		}
		it.valid, it.key, it.value = true, c.key, c.value
		return nil
	}
}

func (it *mergeIterator) Valid() bool {
	return it.valid
}

func (it *mergeIterator) Next() error {
	if !it.valid {
		return errors.Wrap(errors.ErrDatabase, "iterator passed the end")
	}
	return it.advance()
}

func (it *mergeIterator) Key() []byte {
	if !it.valid {
		panic("key of an invalid iterator")
	}
	return it.key
}

func (it *mergeIterator) Value() []byte {
	if !it.valid {
		panic("value of an invalid iterator")
	}
	return it.value
}

// Close releases the parent iterator. Closing twice is safe.
func (it *mergeIterator) Close() {
	if it.parent != nil {
		it.parent.Close()
		it.parent = nil
	}
	it.changes = nil
	it.valid = false
}

// clone copies data of the parent iterator, which may reuse its buffers.
func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
