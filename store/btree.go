package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/timelock/errors"
)

// BTreeCacheable adds a btree based CacheWrap to a KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a store that keeps everything in memory. Use it in tests.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// ShowOpser returns an ordered list of all operations performed
type ShowOpser interface {
	ShowOps() []Op
}

// LogableStore returns an in memory store together with the log of all
// operations executed on it.
func LogableStore() (CacheableKVStore, ShowOpser) {
	e := EmptyKVStore{}
	b := NewNonAtomicBatch(e)
	return NewBTreeCacheWrap(e, b, nil), b
}

// BTreeCacheWrap keeps the changes made on top of a read only store in a
// btree. The same changes are recorded in a batch, which Write applies to
// the underlying store.
type BTreeCacheWrap struct {
	changes *btree.BTree
	free    *btree.FreeList
	back    ReadOnlyKVStore
	batch   Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over kv. All writes must go through the
// batch, which is why kv is read only. A nil free list creates a new one,
// nested caches share the list of their parent.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		changes: btree.NewWithFreeList(2, free),
		free:    free,
		back:    kv,
		batch:   batch,
	}
}

// CacheWrap returns a cache on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write applies all changes to the underlying store and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return errors.Wrap(err, "write cache")
}

// Discard drops all changes. The batch is not reset, a discarded cache must
// not be written.
func (b BTreeCacheWrap) Discard() {
	b.changes.Clear(true)
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.changes.ReplaceOrInsert(&change{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.changes.ReplaceOrInsert(&change{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if c := b.lookup(key); c != nil {
		if c.deleted {
			return nil, nil
		}
		return c.value, nil
	}
	return b.back.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if c := b.lookup(key); c != nil {
		return !c.deleted, nil
	}
	return b.back.Has(key)
}

func (b BTreeCacheWrap) lookup(key []byte) *change {
	if item := b.changes.Get(&change{key: key}); item != nil {
		return item.(*change)
	}
	return nil
}

// Iterator returns the content of [start, end) in ascending key order,
// merging the changes with the underlying store. Nil bounds are open.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(b.changesIn(start, end), parent, false)
}

// ReverseIterator works like Iterator in descending key order.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	changes := b.changesIn(start, end)
	for i, j := 0, len(changes)-1; i < j; i, j = i+1, j-1 {
		changes[i], changes[j] = changes[j], changes[i]
	}
	return newMergeIterator(changes, parent, true)
}

// changesIn returns a copy of the changes in [start, end) in ascending
// order. The iterator works on that copy so writes made while iterating
// do not affect it.
func (b BTreeCacheWrap) changesIn(start, end []byte) []*change {
	var res []*change
	collect := func(item btree.Item) bool {
		res = append(res, item.(*change))
		return true
	}
	switch {
	case start == nil && end == nil:
		b.changes.Ascend(collect)
	case start == nil:
		b.changes.AscendLessThan(&change{key: end}, collect)
	case end == nil:
		b.changes.AscendGreaterOrEqual(&change{key: start}, collect)
	default:
		b.changes.AscendRange(&change{key: start}, &change{key: end}, collect)
	}
	return res
}

// change is a single pending write of a cache, ordered by key.
type change struct {
	key     []byte
	value   []byte
	deleted bool
}

func (c *change) Less(than btree.Item) bool {
	return bytes.Compare(c.key, than.(*change).key) < 0
}
