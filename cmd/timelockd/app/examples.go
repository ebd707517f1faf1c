package app

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/commands"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/x/sigs"
	"github.com/iov-one/timelock/x/wallet"
)

// Examples returns sample transactions and messages, signed by a key
// derived from a fixed seed, to test client encodings against.
func Examples() []commands.Example {
	key := crypto.PrivKeyEd25519FromSeed(make([]byte, 32))
	owner := key.PublicKey().Address()
	chainID := "timelock-testgen"

	initMsg := wallet.NewInitMsg(uint256.NewInt(1700000000))
	withdrawMsg := &wallet.WithdrawMsg{To: owner}
	extendMsg := wallet.NewExtendLockMsg(uint256.NewInt(1800000000))

	value := timelock.EncodeU256(uint256.NewInt(50))
	depositTx := mustSignedTx(&wallet.DepositMsg{}, value, key, chainID, 1)
	withdrawTx := mustSignedTx(withdrawMsg, nil, key, chainID, 2)

	return []commands.Example{
		{Filename: "pub_key", Obj: key.PublicKey()},
		{Filename: "init_msg", Obj: initMsg},
		{Filename: "withdraw_msg", Obj: withdrawMsg},
		{Filename: "extend_lock_msg", Obj: extendMsg},
		{Filename: "init_tx", Obj: mustSignedTx(initMsg, nil, key, chainID, 0)},
		{Filename: "deposit_tx", Obj: depositTx},
		{Filename: "withdraw_tx", Obj: withdrawTx},
	}
}

func mustSignedTx(msg timelock.Msg, value []byte, key *crypto.PrivateKey, chainID string, seq int64) *Tx {
	tx, err := NewTx(msg, value)
	if err != nil {
		panic(err)
	}
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}
	return tx
}
