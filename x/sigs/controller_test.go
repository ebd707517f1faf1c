package sigs

import (
	"testing"

	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	const chainID = "timelock-sign"
	raw := []byte("deposit()")

	base, err := BuildSignBytes(raw, chainID, 7)
	require.NoError(t, err)
	assert.Len(t, base, 64)

	again, err := BuildSignBytes(raw, chainID, 7)
	require.NoError(t, err)
	assert.Equal(t, base, again)

	variants := map[string]struct {
		raw     []byte
		chainID string
		seq     int64
	}{
		"other payload":  {raw: []byte("withdraw()"), chainID: chainID, seq: 7},
		"other chain":    {raw: raw, chainID: chainID + "-2", seq: 7},
		"other sequence": {raw: raw, chainID: chainID, seq: 8},
	}
	for name, v := range variants {
		t.Run(name, func(t *testing.T) {
			got, err := BuildSignBytes(v.raw, v.chainID, v.seq)
			require.NoError(t, err)
			assert.NotEqual(t, base, got)
		})
	}

	_, err = BuildSignBytes(raw, chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes(raw, "x", 0)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifySignature(t *testing.T) {
	const chainID = "timelock-verify"
	db := store.MemStore()
	alice := crypto.GenPrivKeyEd25519()
	tx := NewStdTx([]byte("init(uint256)"))
	raw, err := tx.GetSignBytes()
	require.NoError(t, err)

	sign := func(seq int64) *StdSignature {
		sig, err := SignTx(alice, tx, chainID, seq)
		require.NoError(t, err)
		return sig
	}

	// a fresh signer starts at zero
	_, err = VerifySignature(db, sign(1), raw, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "%+v", err)

	cond, err := VerifySignature(db, sign(0), raw, chainID)
	require.NoError(t, err)
	assert.Equal(t, alice.PublicKey().Condition(), cond)

	// replay
	_, err = VerifySignature(db, sign(0), raw, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "%+v", err)

	_, err = VerifySignature(db, sign(1), raw, "timelock-other")
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	tampered := sign(1)
	tampered.Signature.Ed25519[0] ^= 0xFF
	_, err = VerifySignature(db, tampered, raw, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	_, err = VerifySignature(db, new(StdSignature), raw, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	// failed attempts do not consume the sequence
	next, err := NextNonce(db, alice.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	_, err = VerifySignature(db, sign(1), raw, chainID)
	require.NoError(t, err)
	next, err = NextNonce(db, alice.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(2), next)
}

func TestVerifyTxSignatures(t *testing.T) {
	const chainID = "timelock-multi"
	db := store.MemStore()
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()

	tx := NewStdTx([]byte("deposit()"))
	other := NewStdTx([]byte("withdraw(address)"))

	sign := func(key *crypto.PrivateKey, tx *StdTx, seq int64) *StdSignature {
		sig, err := SignTx(key, tx, chainID, seq)
		require.NoError(t, err)
		return sig
	}

	signers, err := VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	assert.Empty(t, signers)

	tx.Signatures = []*StdSignature{sign(alice, other, 0)}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	tx.Signatures = []*StdSignature{sign(alice, tx, 0), sign(bob, tx, 0)}
	signers, err = VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	require.Len(t, signers, 2)
	assert.Equal(t, alice.PublicKey().Condition(), signers[0])
	assert.Equal(t, bob.PublicKey().Condition(), signers[1])

	// the same signatures are a replay now
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "%+v", err)
}
