package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "genesis.json")
	content := `{
		"genesis_time": "2019-04-01T10:00:00Z",
		"chain_id": "timelock-local",
		"app_state": {"ledger": [{"address": "bech32:tiov1q5lyl7asgr2dcweqrhlfyexqpkgcuzrm4e0cku", "balance": "150"}]}
	}`
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))

	gen, err := LoadGenesis(path)
	require.NoError(t, err)
	assert.Equal(t, "timelock-local", gen.ChainID)
	assert.Contains(t, gen.AppState, "ledger")

	require.NoError(t, ioutil.WriteFile(path, []byte(`{"chain_id": `), 0600))
	_, err = LoadGenesis(path)
	assert.True(t, errors.ErrInput.Is(err))

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestChainIDStorage(t *testing.T) {
	db := store.MemStore()

	id, err := loadChainID(db)
	require.NoError(t, err)
	assert.Equal(t, "", id)

	assert.True(t, errors.ErrInput.Is(saveChainID(db, "bad id")))
	require.NoError(t, saveChainID(db, "timelock-local"))
	assert.True(t, errors.ErrUnauthorized.Is(saveChainID(db, "timelock-other")))

	id, err = loadChainID(db)
	require.NoError(t, err)
	assert.Equal(t, "timelock-local", id)
}

func TestResultsRoundTrip(t *testing.T) {
	models := []timelock.Model{
		timelock.Pair([]byte("wallet"), []byte("owner")),
		timelock.Pair([]byte("pool"), nil),
	}
	keys, values, err := EncodeResults(models)
	require.NoError(t, err)
	got, err := DecodeResults(keys, values)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []byte("wallet"), got[0].Key)
	assert.Equal(t, []byte("owner"), got[0].Value)
	assert.Equal(t, []byte("pool"), got[1].Key)
	assert.Empty(t, got[1].Value)

	_, err = DecodeResults(keys, nil)
	assert.True(t, errors.ErrState.Is(err))
}
