package orm

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr timelock.Iterator) ([]timelock.Model, error) {
	defer itr.Close()

	res := []timelock.Model{}
	for itr.Valid() {
		res = append(res, timelock.Pair(itr.Key(), itr.Value()))
		if err := itr.Next(); err != nil {
			return nil, errors.Wrap(err, "iterator")
		}
	}
	return res, nil
}

// prefixQuery serves raw bucket content. The key query mode returns the
// entity stored under given key, the prefix query mode all entities whose
// key starts with given data.
type prefixQuery struct {
	prefix []byte
}

var _ timelock.QueryHandler = prefixQuery{}

func (q prefixQuery) Query(db timelock.ReadOnlyKVStore, mod string, data []byte) ([]timelock.Model, error) {
	key := append(append([]byte(nil), q.prefix...), data...)
	switch mod {
	case timelock.KeyQueryMod:
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []timelock.Model{timelock.Pair(key, value)}, nil
	case timelock.PrefixQueryMod:
		it, err := db.Iterator(key, prefixEnd(key))
		if err != nil {
			return nil, err
		}
		return ConsumeIterator(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mode %q", mod)
	}
}

// prefixEnd returns the smallest key that is greater than every key with
// given prefix, or nil if there is none.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
