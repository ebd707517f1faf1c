package orm

import (
	"encoding/binary"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// Sequence is a persistent counter stored under "_s.<bucket>:<name>". Its
// encoded values sort in the same order as the numbers, so they make good
// keys for records that must be listed in insertion order.
type Sequence struct {
	key []byte
}

func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// NextInt increments the counter and returns the new value. The first value
// is 1.
func (s Sequence) NextInt(db timelock.KVStore) (int64, error) {
	n, _, err := s.add(db, 1)
	return n, err
}

// NextVal is NextInt in its encoded form.
func (s Sequence) NextVal(db timelock.KVStore) ([]byte, error) {
	_, raw, err := s.add(db, 1)
	return raw, err
}

// Latest returns the last value handed out, zero and nil when there was
// none. The counter is not modified.
func (s Sequence) Latest(db timelock.KVStore) (int64, []byte, error) {
	return s.add(db, 0)
}

func (s Sequence) add(db timelock.KVStore, delta int64) (int64, []byte, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, nil, errors.Wrap(err, "load sequence")
	}
	n, err := DecodeSequence(raw)
	if err != nil || delta == 0 {
		return n, raw, err
	}
	n += delta
	raw = EncodeSequence(n)
	if err := db.Set(s.key, raw); err != nil {
		return 0, nil, errors.Wrap(err, "save sequence")
	}
	return n, raw, nil
}

// EncodeSequence writes 8 big endian bytes.
func EncodeSequence(n int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(n))
	return raw
}

// DecodeSequence reads the EncodeSequence format. Nil decodes to zero.
func DecodeSequence(raw []byte) (int64, error) {
	switch len(raw) {
	case 0:
		return 0, nil
	case 8:
		return int64(binary.BigEndian.Uint64(raw)), nil
	default:
		return 0, errors.Wrapf(errors.ErrState, "sequence of %d bytes", len(raw))
	}
}
