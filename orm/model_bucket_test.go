package orm

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/iov-one/timelock/timelocktest/assert"
)

// counter is a minimal model used to exercise buckets.
type counter struct {
	Count int64
}

func (c *counter) Marshal() ([]byte, error) {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(c.Count))
	return raw, nil
}

func (c *counter) Unmarshal(raw []byte) error {
	if len(raw) != 8 {
		return errors.Wrap(errors.ErrInput, "counter must be 8 bytes")
	}
	c.Count = int64(binary.BigEndian.Uint64(raw))
	return nil
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

// other is a model of a different type than counter.
type other struct {
	counter
}

func TestModelBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("counter", &counter{})

	key, err := b.Put(db, []byte("a"), &counter{Count: 5})
	assert.Nil(t, err)
	assert.Equal(t, []byte("a"), key)

	var got counter
	assert.Nil(t, b.One(db, []byte("a"), &got))
	assert.Equal(t, int64(5), got.Count)

	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("missing"), &got))
	assert.IsErr(t, errors.ErrType, b.One(db, []byte("a"), &other{}))

	_, err = b.Put(db, []byte("b"), &counter{Count: -1})
	assert.IsErr(t, errors.ErrModel, err)
	_, err = b.Put(db, []byte("b"), &other{})
	assert.IsErr(t, errors.ErrType, err)
}

func TestModelBucketSequenceKeys(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("counter", &counter{})

	k1, err := b.Put(db, nil, &counter{Count: 1})
	assert.Nil(t, err)
	k2, err := b.Put(db, nil, &counter{Count: 2})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), k1)
	assert.Equal(t, EncodeSequence(2), k2)

	var all []*counter
	keys, err := b.ByPrefix(db, nil, &all)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k1, k2}, keys)
	assert.Equal(t, []*counter{{Count: 1}, {Count: 2}}, all)
}

func TestModelBucketHasDelete(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("counter", &counter{})

	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("a")))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, []byte("a")))

	_, err := b.Put(db, []byte("a"), &counter{Count: 1})
	assert.Nil(t, err)
	assert.Nil(t, b.Has(db, []byte("a")))
	assert.Nil(t, b.Delete(db, []byte("a")))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("a")))
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("counter", &counter{})
	for _, k := range []string{"aa", "ab", "b"} {
		_, err := b.Put(db, []byte(k), &counter{Count: 1})
		assert.Nil(t, err)
	}

	qr := timelock.NewQueryRouter()
	b.Register("counters", qr)
	h := qr.Handler("/counters")
	if h == nil {
		t.Fatal("query handler not registered")
	}

	res, err := h.Query(db, timelock.KeyQueryMod, []byte("ab"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("counter:ab"), res[0].Key)

	res, err = h.Query(db, timelock.PrefixQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	res, err = h.Query(db, timelock.KeyQueryMod, []byte("zz"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	_, err = h.Query(db, "range", nil)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestInvalidBucketName(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("X", &counter{}) })
}

func TestSequence(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("events", "id")

	val, raw, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), val)
	if raw != nil {
		t.Fatalf("unexpected latest value: %X", raw)
	}

	for want := int64(1); want <= 3; want++ {
		got, err := s.NextInt(db)
		assert.Nil(t, err)
		assert.Equal(t, want, got)
	}
	next, err := s.NextVal(db)
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(4), next)

	assert.Nil(t, db.Set([]byte("_s.events:id"), []byte{1}))
	_, err = s.NextInt(db)
	assert.IsErr(t, errors.ErrState, err)
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("b"), prefixEnd([]byte("a")))
	assert.Equal(t, []byte{0x02}, prefixEnd([]byte{0x01, 0xff}))
	if prefixEnd([]byte{0xff, 0xff}) != nil {
		t.Fatal("no end for all 0xff prefix")
	}
}
