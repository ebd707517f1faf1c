package app

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// blockState keeps the two working layers of a node on top of the committed
// store. Delivered transactions write to deliver, which becomes the next
// version on commit. Mempool checks write to check, which is dropped on
// commit.
type blockState struct {
	committed timelock.CommitKVStore
	deliver   timelock.KVCacheWrap
	check     timelock.KVCacheWrap
}

func newBlockState(db timelock.CommitKVStore) (*blockState, error) {
	if err := db.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &blockState{
		committed: db,
		deliver:   db.CacheWrap(),
		check:     db.CacheWrap(),
	}, nil
}

func (b *blockState) latest() (timelock.CommitID, error) {
	return b.committed.LatestVersion()
}

// commit must not run concurrently with transaction processing. Tendermint
// guarantees that.
func (b *blockState) commit() (timelock.CommitID, error) {
	if err := b.deliver.Write(); err != nil {
		return timelock.CommitID{}, errors.Wrap(err, "flush block")
	}
	b.check.Discard()
	id, err := b.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	b.deliver = b.committed.CacheWrap()
	b.check = b.committed.CacheWrap()
	return id, nil
}

// snapshot reads the last committed version only.
func (b *blockState) snapshot() timelock.ReadOnlyKVStore {
	return b.committed.CacheWrap()
}
