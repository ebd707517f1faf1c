package client

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	weaveApp "github.com/iov-one/timelock/app"
	timelockd "github.com/iov-one/timelock/cmd/timelockd/app"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store/iavl"
	"github.com/iov-one/timelock/x/ledger"
	"github.com/iov-one/timelock/x/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/rpc/client/mock"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

const testChainID = "timelock-client"

// localConn serves the rpc calls straight from an in process application.
type localConn struct {
	mock.ABCIApp
}

func (localConn) Genesis() (*ctypes.ResultGenesis, error) {
	return &ctypes.ResultGenesis{Genesis: &tmtypes.GenesisDoc{ChainID: testChainID}}, nil
}

type testNode struct {
	app    weaveApp.BaseApp
	client *Client
	height int64
}

func newTestNode(t *testing.T, balances map[string]string) *testNode {
	var accounts []ledger.GenesisAccount
	for addr, b := range balances {
		a, err := timelock.ParseAddress(addr)
		require.NoError(t, err)
		accounts = append(accounts, ledger.GenesisAccount{Address: a, Balance: b})
	}
	state, err := json.Marshal(map[string]interface{}{"ledger": accounts})
	require.NoError(t, err)

	a := timelockd.Application("timelockd-client", iavl.MockCommitStore(), false)
	a.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: state})
	a.Commit()
	return &testNode{
		app:    a,
		client: NewClient(localConn{mock.ABCIApp{App: a}}),
	}
}

// send signs and broadcasts the message in a block at given time.
func (n *testNode) send(t *testing.T, key *crypto.PrivateKey, unix int64, msg timelock.Msg, value uint64) error {
	var v []byte
	if value > 0 {
		v = timelock.EncodeU256(uint256.NewInt(value))
	}
	tx, err := timelockd.NewTx(msg, v)
	require.NoError(t, err)
	require.NoError(t, n.client.SignTx(tx, key))

	n.height++
	n.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: n.height, Time: time.Unix(unix, 0)}})
	res := n.client.BroadcastTx(tx)
	n.app.Commit()
	return res.IsError()
}

func TestClient(t *testing.T) {
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()
	carol := crypto.GenPrivKeyEd25519().PublicKey().Address()
	n := newTestNode(t, map[string]string{
		bob.PublicKey().Address().String(): "80",
	})

	chainID, err := n.client.ChainID()
	require.NoError(t, err)
	assert.Equal(t, testChainID, chainID)

	owner, err := n.client.Owner()
	require.NoError(t, err)
	assert.Equal(t, timelock.ZeroAddress(), owner)

	require.NoError(t, n.send(t, alice, 500, wallet.NewInitMsg(uint256.NewInt(1000)), 0))
	owner, err = n.client.Owner()
	require.NoError(t, err)
	assert.Equal(t, alice.PublicKey().Address(), owner)
	unlock, err := n.client.UnlockTime()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), unlock.Uint64())

	nonce, err := n.client.NextNonce(alice.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(1), nonce)

	require.NoError(t, n.send(t, bob, 600, &wallet.DepositMsg{}, 50))
	balance, err := n.client.Balance(wallet.PoolAddress)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), balance.Uint64())

	err = n.send(t, alice, 800, &wallet.WithdrawMsg{To: carol}, 0)
	assert.True(t, wallet.ErrFundsLocked.Is(err), "unexpected error: %+v", err)

	require.NoError(t, n.send(t, alice, 1000, &wallet.WithdrawMsg{To: carol}, 0))
	balance, err = n.client.Balance(carol)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), balance.Uint64())

	err = n.send(t, alice, 1100, &wallet.WithdrawMsg{To: carol}, 0)
	assert.True(t, wallet.ErrZeroBalance.Is(err), "unexpected error: %+v", err)

	events, err := n.client.Events()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, wallet.DepositEventName, events[0].Name)
	assert.Equal(t, wallet.WithdrawalEventName, events[1].Name)
}

func TestClientUnknownQuery(t *testing.T) {
	n := newTestNode(t, nil)
	_, err := n.client.AbciQuery("/nothing", nil)
	assert.True(t, errors.ErrNotFound.Is(err), "unexpected error: %+v", err)

	balance, err := n.client.Balance(crypto.GenPrivKeyEd25519().PublicKey().Address())
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestBroadcastTxResponse(t *testing.T) {
	failed := BroadcastTxResponse{Error: errors.ErrDatabase}
	assert.Equal(t, errors.ErrDatabase, failed.IsError())

	ok := BroadcastTxResponse{Response: &ctypes.ResultBroadcastTxCommit{}}
	assert.NoError(t, ok.IsError())

	checkFailed := BroadcastTxResponse{Response: &ctypes.ResultBroadcastTxCommit{
		CheckTx: abci.ResponseCheckTx{Code: errors.ErrUnauthorized.ABCICode(), Log: "missing signature"},
	}}
	assert.True(t, errors.ErrUnauthorized.Is(checkFailed.IsError()))
}
