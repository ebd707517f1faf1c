package store

import (
	"testing"

	"github.com/iov-one/timelock/timelocktest/assert"
)

func TestSliceIterator(t *testing.T) {
	models := []Model{
		Pair(accountKey(1), []byte("alice")),
		Pair(accountKey(2), []byte("bob")),
		Pair(accountKey(3), []byte("carol")),
	}

	it := NewSliceIterator(models)
	checkIterator(t, it, models)
	if it.Valid() {
		t.Fatal("closed iterator must be invalid")
	}
	if err := it.Next(); err == nil {
		t.Fatal("Next on a closed iterator must fail")
	}

	empty := NewSliceIterator(nil)
	if empty.Valid() {
		t.Fatal("empty iterator must be invalid")
	}
}

func TestNonAtomicBatch(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set([]byte("stale"), []byte{1}))

	b := NewNonAtomicBatch(db)
	assert.Nil(t, b.Set([]byte("pool"), []byte{50}))
	assert.Nil(t, b.Delete([]byte("stale")))
	assert.Equal(t, 2, len(b.ShowOps()))

	// nothing is applied before Write
	CheckValue(t, db, []byte("pool"), nil)
	CheckValue(t, db, []byte("stale"), []byte{1})

	assert.Nil(t, b.Write())
	CheckValue(t, db, []byte("pool"), []byte{50})
	CheckValue(t, db, []byte("stale"), nil)
	assert.Equal(t, 0, len(b.ShowOps()))
}
