package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBTreeBase() (CacheableKVStore, func()) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}
	return devnull.CacheWrap(), func() {}
}

func TestBTreeCache(t *testing.T) {
	NewSuite(makeBTreeBase).Run(t)
}

func TestBTreeCacheDiscardDropsWrites(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("pool"), []byte{50}))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("pool"), []byte{0}))
	require.NoError(t, cache.Set([]byte("carol"), []byte{50}))
	cache.Discard()

	got, err := base.Get([]byte("pool"))
	require.NoError(t, err)
	assert.Equal(t, []byte{50}, got)
	has, err := base.Has([]byte("carol"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestLogableStoreShowsOps(t *testing.T) {
	db, log := LogableStore()
	require.NoError(t, db.Set([]byte("a"), []byte("A")))
	require.NoError(t, db.Delete([]byte("b")))

	ops := log.ShowOps()
	require.Len(t, ops, 2)
	assert.True(t, ops[0].IsSetOp())
	assert.Equal(t, []byte("a"), ops[0].Key())
	assert.False(t, ops[1].IsSetOp())
	assert.Equal(t, []byte("b"), ops[1].Key())
}
