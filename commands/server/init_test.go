package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/timelock/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

const tendermintGenesis = `{
  "genesis_time": "2019-04-01T10:00:00Z",
  "chain_id": "test-chain-LgVOZ0",
  "validators": [{"power": "10", "name": ""}],
  "app_hash": ""
}`

// setupHome creates a home directory containing a genesis file as
// written by `tendermint init`.
func setupHome(t *testing.T) (string, func()) {
	home, err := ioutil.TempDir("", "timelock-cmd-")
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(home, dirConfig), 0755))
	require.NoError(t, ioutil.WriteFile(GenesisPath(home), []byte(tendermintGenesis), 0600))
	return home, func() { os.RemoveAll(home) }
}

func echoOptions(args []string) (json.RawMessage, error) {
	return json.Marshal(map[string][]string{"args": args})
}

func readGenesis(t *testing.T, home string) genesisDoc {
	bz, err := ioutil.ReadFile(GenesisPath(home))
	require.NoError(t, err)
	var doc genesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))
	return doc
}

func TestInit(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()
	logger := log.NewNopLogger()

	err := InitCmd(echoOptions, logger, home, []string{"alice", "100"})
	require.NoError(t, err)

	doc := readGenesis(t, home)
	// keep old values, and add our values
	assert.JSONEq(t, `"test-chain-LgVOZ0"`, string(doc["chain_id"]))
	assert.NotEmpty(t, doc["validators"])
	assert.JSONEq(t, `{"args": ["alice", "100"]}`, string(doc[appStateKey]))

	err = InitCmd(echoOptions, logger, home, []string{"bob"})
	assert.True(t, errors.ErrState.Is(err), "%+v", err)

	err = InitCmd(echoOptions, logger, home, []string{"-f", "bob"})
	require.NoError(t, err)
	doc = readGenesis(t, home)
	assert.JSONEq(t, `{"args": ["bob"]}`, string(doc[appStateKey]))
}

func TestInitRequiresTendermintFiles(t *testing.T) {
	home, err := ioutil.TempDir("", "timelock-cmd-")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	err = InitCmd(echoOptions, log.NewNopLogger(), home, nil)
	assert.Error(t, err)
}

func TestInitGeneratorFailure(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	failing := func([]string) (json.RawMessage, error) {
		return nil, errors.Wrap(errors.ErrInput, "odd number of arguments")
	}
	err := InitCmd(failing, log.NewNopLogger(), home, []string{"alice"})
	assert.True(t, errors.ErrInput.Is(err))

	doc := readGenesis(t, home)
	_, ok := doc[appStateKey]
	assert.False(t, ok)
}
