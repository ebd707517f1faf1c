package server

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/iov-one/timelock/errors"
	amino "github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/blockchain"
	dbm "github.com/tendermint/tendermint/libs/db"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	"github.com/tendermint/tendermint/types"
)

// cdc reads and writes blocks in the JSON form of the tendermint rpc.
var cdc = amino.NewCodec()

func init() {
	ctypes.RegisterAmino(cdc)
}

func parseGetBlockArgs(args []string) (dbPath string, height int64, err error) {
	if len(args) == 0 {
		return "", 0, errors.Wrap(errors.ErrInput, "usage: getblock <blockstore.db> [-height=N]")
	}
	fs := flag.NewFlagSet("getblock", flag.ContinueOnError)
	fs.Int64Var(&height, "height", 0, "block height, the latest block when zero")
	if err := fs.Parse(args[1:]); err != nil {
		return "", 0, errors.Wrap(errors.ErrInput, err.Error())
	}
	return args[0], height, nil
}

// GetBlockCmd prints a block of a tendermint block store as JSON.
func GetBlockCmd(out io.Writer, args []string) error {
	dbPath, height, err := parseGetBlockArgs(args)
	if err != nil {
		return err
	}
	block, err := loadBlock(dbPath, height)
	if err != nil {
		return err
	}
	js, err := cdc.MarshalJSONIndent(block, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serialize block")
	}
	_, err = fmt.Fprintln(out, string(js))
	return err
}

// loadBlock reads the block at height, or the latest one for height zero.
func loadBlock(dbPath string, height int64) (*types.Block, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	blocks := blockchain.NewBlockStore(db)
	if height == 0 {
		height = blocks.Height()
	}
	block := blocks.LoadBlock(height)
	if block == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "block at height %d", height)
	}
	return block, nil
}

// openDB opens the goleveldb database in dir, which must be named *.db the
// way tendermint names its databases.
func openDB(dir string) (dbm.DB, error) {
	dir = filepath.Clean(dir)
	if filepath.Ext(dir) != ".db" {
		return nil, errors.Wrapf(errors.ErrInput, "not a database directory: %s", dir)
	}
	parent, name := filepath.Split(strings.TrimSuffix(dir, ".db"))
	db, err := dbm.NewGoLevelDB(name, parent)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return db, nil
}
