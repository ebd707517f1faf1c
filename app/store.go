package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the parts of abci.Application that do not process
// transactions: info, queries, genesis, block boundaries and commits.
// BaseApp embeds it.
//
// Info, InitChain, BeginBlock, EndBlock and Commit cannot report errors to
// tendermint, they panic instead. A node must not continue from a state it
// failed to build.
type StoreApp struct {
	name   string
	logger log.Logger
	state  *blockState

	initializer timelock.Initializer
	queries     timelock.QueryRouter

	// chainID is empty until genesis was loaded.
	chainID string
	// baseCtx lives as long as the application, blockCtx is replaced on
	// every BeginBlock.
	baseCtx  timelock.Context
	blockCtx timelock.Context
}

// NewStoreApp loads the latest version of db. It panics when the store
// cannot be read.
func NewStoreApp(name string, db timelock.CommitKVStore, queries timelock.QueryRouter, ctx timelock.Context) *StoreApp {
	state, err := newBlockState(db)
	if err != nil {
		panic(err)
	}
	s := &StoreApp{
		name:    name,
		state:   state,
		queries: queries,
		baseCtx: ctx,
	}
	s.WithLogger(log.NewNopLogger())

	if s.chainID, err = loadChainID(state.deliver); err != nil {
		panic(err)
	}
	if s.chainID != "" {
		s.baseCtx = timelock.WithChainID(s.baseCtx, s.chainID)
	}
	latest, err := state.latest()
	if err != nil {
		panic(err)
	}
	s.blockCtx = timelock.WithHeight(s.baseCtx, latest.Version)
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets what loads the application state of the genesis.
func (s *StoreApp) WithInit(init timelock.Initializer) *StoreApp {
	s.initializer = init
	return s
}

func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseCtx = timelock.WithLogger(s.baseCtx, logger)
	if s.blockCtx != nil {
		s.blockCtx = timelock.WithLogger(s.blockCtx, logger)
	}
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext carries the chain id, height and time of the current block.
func (s *StoreApp) BlockContext() timelock.Context {
	return s.blockCtx
}

func (s *StoreApp) DeliverStore() timelock.CacheableKVStore {
	return s.state.deliver
}

func (s *StoreApp) CheckStore() timelock.CacheableKVStore {
	return s.state.check
}

// loadGenesis runs once, from InitChain of a fresh chain.
func (s *StoreApp) loadGenesis(appState []byte, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %q", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state missing from genesis")
	}
	var opts timelock.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if err := saveChainID(s.state.deliver, chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseCtx = timelock.WithChainID(s.baseCtx, chainID)
	s.blockCtx = timelock.WithChainID(s.blockCtx, chainID)

	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, s.state.deliver)
}

// Info reports the last committed height and app hash, so tendermint knows
// which blocks to replay.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	latest, err := s.state.latest()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", latest.Version, "hash", fmt.Sprintf("%X", latest.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          timelock.Version(),
		LastBlockHeight:  latest.Version,
		LastBlockAppHash: latest.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// Query answers "/path" or "/path?mod" from the last committed state. The
// requested height is ignored. Key and Value of the response are
// ResultSets of equal length, holding any number of results.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.Index(path, "?"); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h := s.queries.Handler(path)
	if h == nil {
		return failedQuery(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}

	latest, err := s.state.latest()
	if err != nil {
		return failedQuery(err)
	}
	models, err := h.Query(s.state.snapshot(), mod, req.Data)
	if err != nil {
		return failedQuery(err)
	}

	res := abci.ResponseQuery{Height: latest.Version}
	if res.Key, res.Value, err = EncodeResults(models); err != nil {
		return failedQuery(err)
	}
	return res
}

func failedQuery(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}

func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock sets the height and the time that every transaction of the
// block sees as now.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := timelock.WithHeight(s.baseCtx, req.Header.GetHeight())
	s.blockCtx = timelock.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.state.commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}
