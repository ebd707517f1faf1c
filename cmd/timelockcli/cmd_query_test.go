package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	timelockd "github.com/iov-one/timelock/cmd/timelockd/app"
	"github.com/iov-one/timelock/cmd/timelockd/client"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/store/iavl"
	"github.com/iov-one/timelock/timelocktest/assert"
	"github.com/iov-one/timelock/x/wallet"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/rpc/client/mock"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

type localConn struct {
	mock.ABCIApp
}

func (localConn) Genesis() (*ctypes.ResultGenesis, error) {
	return &ctypes.ResultGenesis{Genesis: &tmtypes.GenesisDoc{ChainID: "timelock-cli"}}, nil
}

func TestRunQuery(t *testing.T) {
	owner := crypto.GenPrivKeyEd25519()
	state := fmt.Sprintf(`{"ledger": [{"address": "%s", "balance": "70"}]}`, owner.PublicKey().Address())

	a := timelockd.Application("timelockd-cli", iavl.MockCommitStore(), false)
	a.InitChain(abci.RequestInitChain{ChainId: "timelock-cli", AppStateBytes: []byte(state)})
	a.Commit()
	c := client.NewClient(localConn{mock.ABCIApp{App: a}})

	tx, err := timelockd.NewTx(wallet.NewInitMsg(uint256.NewInt(1234)), nil)
	assert.Nil(t, err)
	assert.Nil(t, c.SignTx(tx, owner))
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 2, Time: time.Unix(100, 0)}})
	assert.Nil(t, c.BroadcastTx(tx).IsError())
	a.Commit()

	tx, err = timelockd.NewTx(&wallet.DepositMsg{}, timelock.EncodeU256(uint256.NewInt(20)))
	assert.Nil(t, err)
	assert.Nil(t, c.SignTx(tx, owner))
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 3, Time: time.Unix(200, 0)}})
	assert.Nil(t, c.BroadcastTx(tx).IsError())
	a.Commit()

	addr := owner.PublicKey().Address().String()
	cases := map[string]struct {
		name string
		args []string
		want string
	}{
		"owner":       {name: "owner", want: addr},
		"unlock time": {name: "unlockTime", want: "1234"},
		"balance":     {name: "balance", args: []string{addr}, want: "50"},
		"nonce":       {name: "nonce", args: []string{addr}, want: "2"},
		"events":      {name: "events", want: "3\t200\tDeposit\t" + addr + "\t20"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Nil(t, runQuery(c, &out, tc.name, tc.args))
			assert.Equal(t, tc.want, strings.TrimSpace(out.String()))
		})
	}

	var out bytes.Buffer
	if err := runQuery(c, &out, "balance", nil); err == nil {
		t.Fatal("balance without an address must fail")
	}
	if err := runQuery(c, &out, "price", nil); err == nil {
		t.Fatal("unknown query must fail")
	}
}
