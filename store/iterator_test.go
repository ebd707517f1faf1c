package store

import (
	"testing"

	"github.com/iov-one/timelock/timelocktest/assert"
)

func TestCacheIteratorCloseRaceCondition(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set([]byte("a"), []byte("A")))
	cache := db.CacheWrap()

	it, err := cache.Iterator([]byte("a"), []byte("z"))
	if err != nil {
		t.Fatalf("cannot create iterator: %s", err)
	}
	// Close must be a synchronous operation.
	it.Close()
	assert.Nil(t, db.Delete([]byte("a")))
}

func TestCacheReverseIteratorCloseRaceCondition(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set([]byte("a"), []byte("A")))
	cache := db.CacheWrap()

	it, err := cache.ReverseIterator([]byte("a"), []byte("z"))
	if err != nil {
		t.Fatalf("cannot create iterator: %s", err)
	}
	// Close must be a synchronous operation.
	it.Close()
	assert.Nil(t, db.Delete([]byte("a")))
}
