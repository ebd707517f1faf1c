package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/iov-one/timelock/timelocktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	const chainID = "timelock-decorator"
	ctx := timelock.WithChainID(context.Background(), chainID)
	alice := crypto.GenPrivKeyEd25519()

	check := func(db timelock.KVStore, tx timelock.Tx, h *SigCheckHandler) error {
		_, err := NewDecorator().Check(ctx, db, tx, h)
		return err
	}
	deliver := func(db timelock.KVStore, tx timelock.Tx, h *SigCheckHandler) error {
		_, err := NewDecorator().Deliver(ctx, db, tx, h)
		return err
	}

	calls := map[string]func(timelock.KVStore, timelock.Tx, *SigCheckHandler) error{
		"check":   check,
		"deliver": deliver,
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			tx := NewStdTx([]byte("extendLock(uint256)"))
			h := new(SigCheckHandler)

			err := call(db, tx, h)
			assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
			assert.Nil(t, h.Signers)

			sig, err := SignTx(alice, tx, chainID, 0)
			require.NoError(t, err)
			tx.Signatures = []*StdSignature{sig}
			require.NoError(t, call(db, tx, h))
			assert.Equal(t, []timelock.Condition{alice.PublicKey().Condition()}, h.Signers)

			err = call(db, tx, new(SigCheckHandler))
			assert.True(t, ErrInvalidSequence.Is(err), "%+v", err)

			err = call(db, &timelocktest.Tx{Msg: &timelocktest.Msg{RoutePath: "test/unsigned"}}, new(SigCheckHandler))
			assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
		})
	}
}

func TestDecoratorChargesGas(t *testing.T) {
	const chainID = "timelock-gas"
	ctx := timelock.WithChainID(context.Background(), chainID)

	tx := NewStdTx([]byte("deposit()"))
	for _, key := range []*crypto.PrivateKey{crypto.GenPrivKeyEd25519(), crypto.GenPrivKeyEd25519()} {
		sig, err := SignTx(key, tx, chainID, 0)
		require.NoError(t, err)
		tx.Signatures = append(tx.Signatures, sig)
	}

	res, err := NewDecorator().Check(ctx, store.MemStore(), tx, new(SigCheckHandler))
	require.NoError(t, err)
	assert.Equal(t, int64(2*signatureVerifyCost), res.GasPayment)
}
