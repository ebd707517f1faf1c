package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/cmd/timelockd/app"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/timelocktest/assert"
	"github.com/iov-one/timelock/x/wallet"
)

func TestCallAndView(t *testing.T) {
	recipient := crypto.GenPrivKeyEd25519().PublicKey().Address()

	cases := map[string]struct {
		args       []string
		wantMethod string
		wantArgs   []string
		wantValue  string
	}{
		"init": {
			args:       []string{"init", "1700000000"},
			wantMethod: "init(uint256)",
			wantArgs:   []string{"1700000000"},
			wantValue:  "0",
		},
		"deposit with value": {
			args:       []string{"-value", "50", "deposit"},
			wantMethod: "deposit()",
			wantValue:  "50",
		},
		"withdraw": {
			args:       []string{"withdraw", recipient.String()},
			wantMethod: "withdraw(address)",
			wantArgs:   []string{recipient.String()},
			wantValue:  "0",
		},
		"extend lock": {
			args:       []string{"extendLock", "1800000000"},
			wantMethod: "extendLock(uint256)",
			wantArgs:   []string{"1800000000"},
			wantValue:  "0",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var tx bytes.Buffer
			assert.Nil(t, cmdCall(nil, &tx, tc.args))

			var out bytes.Buffer
			assert.Nil(t, cmdTransactionView(&tx, &out, nil))

			var view txView
			assert.Nil(t, json.Unmarshal(out.Bytes(), &view))
			assert.Equal(t, tc.wantMethod, view.Method)
			assert.Equal(t, tc.wantArgs, view.Args)
			assert.Equal(t, tc.wantValue, view.Value)
			assert.Equal(t, 0, len(view.Signatures))
		})
	}
}

func TestCallRejectsInvalidArguments(t *testing.T) {
	cases := map[string][]string{
		"unknown method":       {"transfer"},
		"missing argument":     {"withdraw"},
		"too many arguments":   {"deposit", "1"},
		"invalid address":      {"withdraw", "zz"},
		"negative unlock time": {"init", "-1"},
		"read only method":     {"owner"},
		"negative value":       {"-value", "-5", "deposit"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			if err := cmdCall(nil, &out, args); err == nil {
				t.Fatal("want error")
			}
			assert.Equal(t, 0, out.Len())
		})
	}
}

func TestBuildMsg(t *testing.T) {
	msg, err := buildMsg("deposit", nil)
	assert.Nil(t, err)
	assert.Equal(t, (&wallet.DepositMsg{}).Path(), msg.Path())

	addr := crypto.GenPrivKeyEd25519().PublicKey().Address()
	bech, err := addr.Bech32()
	assert.Nil(t, err)
	msg, err = buildMsg("withdraw", []string{"bech32:" + bech})
	assert.Nil(t, err)
	assert.Equal(t, addr, msg.(*wallet.WithdrawMsg).To)
}

func TestSignOffline(t *testing.T) {
	dir, err := ioutil.TempDir("", "timelockcli")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)
	keyPath := filepath.Join(dir, "priv.key")
	assert.Nil(t, cmdKeygen(nil, ioutil.Discard, []string{"-key", keyPath}))
	key, err := decodePrivateKey(keyPath)
	assert.Nil(t, err)

	var unsigned bytes.Buffer
	assert.Nil(t, cmdCall(nil, &unsigned, []string{"init", "1000"}))

	var signed bytes.Buffer
	args := []string{"-key", keyPath, "-chain-id", "timelock-cli", "-seq", "4"}
	assert.Nil(t, cmdSignTransaction(&unsigned, &signed, args))

	tx, err := app.TxDecoder(signed.Bytes())
	assert.Nil(t, err)
	sigs := tx.(*app.Tx).Signatures
	assert.Equal(t, 1, len(sigs))
	assert.Equal(t, int64(4), sigs[0].Sequence)
	assert.Equal(t, key.PublicKey().Address(), sigs[0].Pubkey.Address())

	var out bytes.Buffer
	assert.Nil(t, cmdTransactionView(bytes.NewReader(signed.Bytes()), &out, nil))
	var view txView
	assert.Nil(t, json.Unmarshal(out.Bytes(), &view))
	assert.Equal(t, 1, len(view.Signatures))
	assert.Equal(t, timelock.Address(key.PublicKey().Address()), view.Signatures[0].Signer)
}

func TestViewRejectsEmptyInput(t *testing.T) {
	var out bytes.Buffer
	if err := cmdTransactionView(bytes.NewReader(nil), &out, nil); err == nil {
		t.Fatal("want error")
	}
}
