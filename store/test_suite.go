package store

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/iov-one/timelock/timelocktest/assert"
)

// Suite runs the same set of checks against any CacheableKVStore
// implementation. Only the constructor of the base layer differs between
// btree_test.go and iavl/adapter_test.go.
type Suite struct {
	newBase BaseConstructor
}

// BaseConstructor returns a fresh store and a function releasing it.
type BaseConstructor func() (base CacheableKVStore, cleanup func())

func NewSuite(fn BaseConstructor) *Suite {
	return &Suite{newBase: fn}
}

// Run executes every check of the suite as a subtest.
func (s *Suite) Run(t *testing.T) {
	t.Run("cache layers", s.cacheLayers)
	t.Run("nested savepoints", s.nestedSavepoints)
	t.Run("conflicting writes", s.conflictingWrites)
	t.Run("iteration", s.iteration)
}

// cacheLayers checks that writes become visible in the parent only after
// the cache is written.
func (s *Suite) cacheLayers(t *testing.T) {
	base, cleanup := s.newBase()
	defer cleanup()

	owner, pool := []byte("wallet/owner"), []byte("ledger/pool")
	CheckValue(t, base, owner, nil)
	assert.Nil(t, base.Set(owner, []byte("alice")))
	CheckValue(t, base, owner, []byte("alice"))

	cache := base.CacheWrap()
	CheckValue(t, cache, owner, []byte("alice"))
	assert.Nil(t, cache.Set(pool, []byte{50}))
	CheckValue(t, cache, pool, []byte{50})
	CheckValue(t, base, pool, nil)

	assert.Nil(t, cache.Write())
	CheckValue(t, base, pool, []byte{50})

	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Delete(pool))
	assert.Nil(t, discarded.Set(owner, []byte("bob")))
	CheckValue(t, discarded, pool, nil)
	discarded.Discard()
	CheckValue(t, base, pool, []byte{50})
	CheckValue(t, base, owner, []byte("alice"))

	drained := base.CacheWrap()
	assert.Nil(t, drained.Delete(pool))
	assert.Nil(t, drained.Write())
	CheckValue(t, base, pool, nil)
	CheckValue(t, base, owner, []byte("alice"))
}

// nestedSavepoints stacks cache wraps the way a failed operation inside a
// block does: the inner layer is dropped, the outer one kept.
func (s *Suite) nestedSavepoints(t *testing.T) {
	base, cleanup := s.newBase()
	defer cleanup()

	block := base.CacheWrap()
	assert.Nil(t, block.Set([]byte("ledger/bob"), []byte{80}))

	failed := block.CacheWrap()
	assert.Nil(t, failed.Set([]byte("ledger/bob"), []byte{30}))
	assert.Nil(t, failed.Set([]byte("ledger/pool"), []byte{50}))
	CheckValue(t, failed, []byte("ledger/bob"), []byte{30})
	failed.Discard()

	ok := block.CacheWrap()
	assert.Nil(t, ok.Set([]byte("events/1"), []byte("deposit")))
	assert.Nil(t, ok.Write())

	CheckValue(t, block, []byte("ledger/bob"), []byte{80})
	CheckValue(t, block, []byte("ledger/pool"), nil)
	CheckValue(t, block, []byte("events/1"), []byte("deposit"))
	CheckValue(t, base, []byte("events/1"), nil)

	assert.Nil(t, block.Write())
	CheckValue(t, base, []byte("ledger/bob"), []byte{80})
	CheckValue(t, base, []byte("events/1"), []byte("deposit"))
}

func (s *Suite) conflictingWrites(t *testing.T) {
	k := func(n int) []byte { return []byte(fmt.Sprintf("key-%d", n)) }
	v := func(n int) []byte { return []byte(fmt.Sprintf("value-%d", n)) }

	cases := map[string]struct {
		parent []Op
		child  []Op
		// Key is what is read, a nil Value means the key must be absent.
		wantParent []Model
		wantChild  []Model
	}{
		"overwrite, delete and insert": {
			parent:     []Op{SetOp(k(1), v(1)), SetOp(k(2), v(2))},
			child:      []Op{SetOp(k(1), v(11)), SetOp(k(3), v(7)), DelOp(k(2))},
			wantParent: []Model{Pair(k(1), v(1)), Pair(k(2), v(2)), Pair(k(3), nil)},
			wantChild:  []Model{Pair(k(1), v(11)), Pair(k(2), nil), Pair(k(3), v(7))},
		},
		"delete then set again": {
			parent:     []Op{SetOp(k(1), v(1))},
			child:      []Op{DelOp(k(1)), SetOp(k(1), v(5))},
			wantParent: []Model{Pair(k(1), v(1))},
			wantChild:  []Model{Pair(k(1), v(5))},
		},
		"set then delete": {
			child:      []Op{SetOp(k(4), v(4)), DelOp(k(4))},
			wantParent: []Model{Pair(k(4), nil)},
			wantChild:  []Model{Pair(k(4), nil)},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			parent, cleanup := s.newBase()
			defer cleanup()
			applyOps(t, parent, tc.parent)

			child := parent.CacheWrap()
			applyOps(t, child, tc.child)

			for _, m := range tc.wantParent {
				CheckValue(t, parent, m.Key, m.Value)
			}
			for _, m := range tc.wantChild {
				CheckValue(t, child, m.Key, m.Value)
			}

			assert.Nil(t, child.Write())
			for _, m := range tc.wantChild {
				CheckValue(t, parent, m.Key, m.Value)
			}
		})
	}
}

func (s *Suite) iteration(t *testing.T) {
	var (
		evens, thirds, fifths []Op
		deleteThirds          []Op
	)
	for i := 0; i < 60; i++ {
		key := accountKey(i)
		if i%2 == 0 {
			evens = append(evens, SetOp(key, []byte(fmt.Sprintf("parent %d", i))))
		}
		if i%3 == 0 {
			thirds = append(thirds, SetOp(key, []byte(fmt.Sprintf("child %d", i))))
			deleteThirds = append(deleteThirds, DelOp(key))
		}
		if i%5 == 0 {
			fifths = append(fifths, SetOp(key, []byte(fmt.Sprintf("child %d", i))))
		}
	}

	cases := map[string]struct {
		parent []Op
		child  []Op
	}{
		"child only":                   {child: thirds},
		"parent only":                  {parent: evens},
		"child overrides parent":       {parent: evens, child: thirds},
		"child deletes parent entries": {parent: evens, child: deleteThirds},
		"deletes of missing keys":      {parent: fifths, child: append(deleteThirds, thirds[:4]...)},
	}

	bounds := []struct {
		start, end []byte
	}{
		{nil, nil},
		{accountKey(12), nil},
		{nil, accountKey(41)},
		{accountKey(7), accountKey(33)},
		{accountKey(30), accountKey(31)},
		{accountKey(100), nil},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			base, cleanup := s.newBase()
			defer cleanup()
			applyOps(t, base, tc.parent)
			child := base.CacheWrap()
			applyOps(t, child, tc.child)

			all := expectedModels(tc.parent, tc.child)
			for _, b := range bounds {
				want := inRange(all, b.start, b.end)

				it, err := child.Iterator(b.start, b.end)
				assert.Nil(t, err)
				checkIterator(t, it, want)

				rit, err := child.ReverseIterator(b.start, b.end)
				assert.Nil(t, err)
				checkIterator(t, rit, reversed(want))
			}
		})
	}
}

// CheckValue asserts that the store holds want under the key. A nil want
// means the key must not exist.
func CheckValue(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, has)
}

func accountKey(n int) []byte {
	return []byte(fmt.Sprintf("account:%04d", n))
}

func applyOps(t testing.TB, db SetDeleter, ops []Op) {
	t.Helper()
	for _, op := range ops {
		assert.Nil(t, op.Apply(db))
	}
}

// expectedModels replays all operations on a map and returns the resulting
// content ordered by key.
func expectedModels(batches ...[]Op) []Model {
	state := make(map[string][]byte)
	for _, ops := range batches {
		for _, op := range ops {
			if op.IsSetOp() {
				state[string(op.Key())] = op.value
			} else {
				delete(state, string(op.Key()))
			}
		}
	}
	res := make([]Model, 0, len(state))
	for k, v := range state {
		res = append(res, Pair([]byte(k), v))
	}
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

// inRange returns models with start <= key < end. Nil bounds are open.
func inRange(models []Model, start, end []byte) []Model {
	var res []Model
	for _, m := range models {
		if start != nil && bytes.Compare(m.Key, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(m.Key, end) >= 0 {
			continue
		}
		res = append(res, m)
	}
	return res
}

func reversed(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func checkIterator(t testing.TB, it Iterator, want []Model) {
	t.Helper()
	defer it.Close()
	for i, m := range want {
		if !it.Valid() {
			t.Fatalf("iterator exhausted after %d of %d items", i, len(want))
		}
		if !bytes.Equal(m.Key, it.Key()) {
			t.Fatalf("item %d: want key %q, got %q", i, m.Key, it.Key())
		}
		assert.Equal(t, m.Value, it.Value())
		assert.Nil(t, it.Next())
	}
	if it.Valid() {
		t.Fatalf("iterator not done, next key %q", it.Key())
	}
}
