package timelock

// ReadOnlyKVStore reads ordered binary keys. Keys must not be nil.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks start <= key < end in ascending order. A nil bound is
	// open. The range must not be written while the iterator is in use.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks the same range as Iterator, from the highest
	// key down.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is what KVStore and Batch have in common. Callers must not
// modify the slices they pass in afterwards.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them to its store on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a key range. Close it when done:
//
//	it, err := db.Iterator(start, end)
//	...
//	defer it.Close()
//	for ; it.Valid(); it.Next() {
//		use(it.Key(), it.Value())
//	}
type Iterator interface {
	// Valid is false once the range is exhausted, and stays false.
	Valid() bool
	// Next fails on an exhausted iterator.
	Next() error
	// Key and Value panic on an exhausted iterator. The returned slices
	// are read only.
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stack a scratch layer on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch layer: reads see its own writes over the parent
// content, Write pushes them to the parent and Discard drops them. This is
// how a failed transaction leaves no trace in the block state.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root store. It is modified through a
// CacheWrap and every Commit creates a new version.
type CommitKVStore interface {
	// Get reads the last committed version, ignoring uncommitted writes.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)
	// LoadLatestVersion restores the last complete commit.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by height and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
