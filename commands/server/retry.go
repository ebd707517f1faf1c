package server

import (
	"bytes"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	iavlstore "github.com/iov-one/timelock/store/iavl"
	"github.com/tendermint/iavl"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/types"
)

type retryArgs struct {
	statePath  string
	blocksPath string
	debug      bool
	untilError bool
	maxTries   int
}

func parseRetryArgs(args []string) (retryArgs, error) {
	const usage = "usage: retry <abci.db> <blockstore.db> [-debug] [-error] [-max=N]"
	if len(args) < 2 {
		return retryArgs{}, errors.Wrap(errors.ErrInput, usage)
	}
	res := retryArgs{statePath: args[0], blocksPath: args[1]}
	fs := flag.NewFlagSet("retry", flag.ContinueOnError)
	fs.BoolVar(&res.debug, "debug", false, "include stack traces in failed transaction logs")
	fs.BoolVar(&res.untilError, "error", false, "replay until the app hash differs")
	fs.IntVar(&res.maxTries, "max", 10, "replay limit of -error")
	if err := fs.Parse(args[2:]); err != nil {
		return res, errors.Wrap(errors.ErrInput, err.Error())
	}
	return res, nil
}

// InlineAppGenerator builds the application on top of an opened store.
type InlineAppGenerator func(db timelock.CommitKVStore, logger log.Logger, debug bool) abci.Application

// RetryCmd checks that the last block is deterministic. The application
// state is rolled back by one version, the last block of the block store
// is executed again and the resulting app hash is compared with the stored
// one. With -error this repeats up to -max times until a replay diverges.
func RetryCmd(gen InlineAppGenerator, logger log.Logger, out io.Writer, args []string) error {
	a, err := parseRetryArgs(args)
	if err != nil {
		return err
	}

	block, err := loadBlock(a.blocksPath, 0)
	if err != nil {
		return errors.Wrap(err, "last block")
	}
	tree, version, err := loadTree(a.statePath)
	if err != nil {
		return err
	}
	if version != block.Header.Height {
		return errors.Wrapf(errors.ErrState, "state is at height %d, block store at %d", version, block.Header.Height)
	}

	r := replayer{
		out:   out,
		tree:  tree,
		block: block,
		app: func(db timelock.CommitKVStore) abci.Application {
			return gen(db, logger, a.debug)
		},
	}
	fmt.Fprintf(out, "height %d, app hash %X\n", version, tree.Hash())

	tries := 1
	if a.untilError {
		tries += a.maxTries
	}
	for i := 0; i < tries; i++ {
		same, err := r.replay()
		if err != nil {
			return err
		}
		if !same {
			return errors.Wrapf(errors.ErrState, "replay %d produced a different app hash", i+1)
		}
	}
	return nil
}

func loadTree(dir string) (*iavl.MutableTree, int64, error) {
	db, err := openDB(dir)
	if err != nil {
		return nil, 0, err
	}
	tree := iavl.NewMutableTree(db, iavlstore.DefaultCacheSize)
	version, err := tree.Load()
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if version == 0 {
		return nil, 0, errors.Wrap(errors.ErrEmpty, "nothing committed")
	}
	return tree, version, nil
}

type replayer struct {
	out   io.Writer
	tree  *iavl.MutableTree
	block *types.Block
	app   func(timelock.CommitKVStore) abci.Application
}

// replay executes the block on top of the previous version and reports
// whether the app hash is unchanged.
func (r replayer) replay() (bool, error) {
	want := r.tree.Hash()
	h := r.block.Header
	if _, err := r.tree.LoadVersionForOverwriting(h.Height - 1); err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	app := r.app(iavlstore.NewCommitStoreFromTree(r.tree))
	app.BeginBlock(abci.RequestBeginBlock{Hash: h.Hash(), Header: abciHeader(h)})
	for i, tx := range r.block.Txs {
		res := app.DeliverTx(tx)
		fmt.Fprintf(r.out, "tx %d: code %d %s\n", i, res.Code, res.Log)
	}
	app.EndBlock(abci.RequestEndBlock{Height: h.Height})
	got := app.Commit().Data

	fmt.Fprintf(r.out, "replayed app hash %X\n", got)
	return bytes.Equal(want, got), nil
}

// abciHeader converts the stored header into what BeginBlock receives.
func abciHeader(h types.Header) abci.Header {
	last := h.LastBlockID
	return abci.Header{
		Version:  abci.Version{Block: uint64(h.Version.Block), App: uint64(h.Version.App)},
		ChainID:  h.ChainID,
		Height:   h.Height,
		Time:     h.Time,
		NumTxs:   h.NumTxs,
		TotalTxs: h.TotalTxs,
		LastBlockId: abci.BlockID{
			Hash: last.Hash,
			PartsHeader: abci.PartSetHeader{
				Total: int32(last.PartsHeader.Total),
				Hash:  last.PartsHeader.Hash,
			},
		},
		LastCommitHash:     h.LastCommitHash,
		DataHash:           h.DataHash,
		ValidatorsHash:     h.ValidatorsHash,
		NextValidatorsHash: h.NextValidatorsHash,
		ConsensusHash:      h.ConsensusHash,
		AppHash:            h.AppHash,
		LastResultsHash:    h.LastResultsHash,
		EvidenceHash:       h.EvidenceHash,
		ProposerAddress:    h.ProposerAddress,
	}
}
