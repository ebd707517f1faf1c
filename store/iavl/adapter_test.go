package iavl

import (
	"bytes"
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/timelock/store"
	"github.com/iov-one/timelock/timelocktest/assert"
)

// makeBase returns the base layer
func makeBase() (store.CacheableKVStore, func()) {
	commit, close := makeCommitStore()
	return commit.Adapter(), close
}

func makeCommitStore() (CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		panic(err)
	}
	commit := NewCommitStore(tmpDir, "base")
	close := func() {
		commit.Close()
		os.RemoveAll(tmpDir)
	}
	return commit, close
}

func TestAdapter(t *testing.T) {
	store.NewSuite(makeBase).Run(t)
}

// TestCommitVersions writes two blocks and checks what parallel cache wraps
// see between the commits.
func TestCommitVersions(t *testing.T) {
	commit, close := makeCommitStore()
	defer close()
	commit.numHistory = 1

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)
	if len(id.Hash) != 0 {
		t.Fatalf("empty store has a hash: %X", id.Hash)
	}

	bob, pool, carol := []byte("ledger/bob"), []byte("ledger/pool"), []byte("ledger/carol")

	genesis := commit.CacheWrap()
	assert.Nil(t, genesis.Set(bob, []byte{80}))
	assert.Nil(t, genesis.Set(pool, []byte{0}))
	assert.Nil(t, genesis.Write())
	first, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), first.Version)
	if len(first.Hash) == 0 {
		t.Fatal("committed store has no hash")
	}

	block := commit.CacheWrap()
	side := commit.CacheWrap()
	assert.Nil(t, block.Set(bob, []byte{30}))
	assert.Nil(t, block.Set(carol, []byte{50}))
	assert.Nil(t, block.Delete(pool))

	store.CheckValue(t, side, bob, []byte{80})
	store.CheckValue(t, side, pool, []byte{0})
	store.CheckValue(t, side, carol, nil)

	assert.Nil(t, block.Write())
	store.CheckValue(t, side, bob, []byte{30})
	store.CheckValue(t, side, pool, nil)
	store.CheckValue(t, side, carol, []byte{50})

	second, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), second.Version)
	if bytes.Equal(first.Hash, second.Hash) {
		t.Fatal("app hash did not change")
	}
}

func TestReloadFromDisk(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-reload-")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	key, value := []byte("wallet"), []byte("owner and unlock time")

	first := NewCommitStore(tmpDir, "state")
	assert.Nil(t, first.LoadLatestVersion())
	cache := first.CacheWrap()
	assert.Nil(t, cache.Set(key, value))
	assert.Nil(t, cache.Write())
	want, err := first.Commit()
	assert.Nil(t, err)
	first.Close()

	second := NewCommitStore(tmpDir, "state")
	defer second.Close()
	assert.Nil(t, second.LoadLatestVersion())
	got, err := second.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, want, got)

	val, err := second.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, value, val)
}

func TestCommittedGetIgnoresWorkingState(t *testing.T) {
	commit := MockCommitStore()
	key := []byte("pool")

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set(key, []byte{1}))
	assert.Nil(t, cache.Write())

	val, err := commit.Get(key)
	assert.Nil(t, err)
	if val != nil {
		t.Fatalf("uncommitted value visible: %X", val)
	}

	_, err = commit.Commit()
	assert.Nil(t, err)
	val, err = commit.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, []byte{1}, val)
}
