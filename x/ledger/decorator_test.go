package ledger

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/iov-one/timelock/timelocktest"
	"github.com/iov-one/timelock/timelocktest/assert"
)

type payableMsg struct {
	*timelocktest.Msg
}

func (payableMsg) Payable() {}

// valueHandler records the value visible to the handler.
type valueHandler struct {
	seen *uint256.Int
}

func (h *valueHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	h.seen = Value(ctx)
	return &timelock.CheckResult{}, nil
}

func (h *valueHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	h.seen = Value(ctx)
	return &timelock.DeliverResult{}, nil
}

func TestValueDecorator(t *testing.T) {
	payer := timelocktest.NewCondition()
	pool := timelocktest.NewCondition().Address()

	payable := payableMsg{&timelocktest.Msg{RoutePath: "test/pay"}}
	plain := &timelocktest.Msg{RoutePath: "test/plain"}

	cases := map[string]struct {
		signer    timelock.Condition
		msg       timelock.Msg
		value     []byte
		wantErr   *errors.Error
		wantSeen  uint64
		wantPayer uint64
		wantPool  uint64
	}{
		"payable with value": {
			signer:    payer,
			msg:       payable,
			value:     timelock.EncodeU256(uint256.NewInt(30)),
			wantSeen:  30,
			wantPayer: 70,
			wantPool:  30,
		},
		"short value encoding": {
			signer:    payer,
			msg:       payable,
			value:     []byte{50},
			wantSeen:  50,
			wantPayer: 50,
			wantPool:  50,
		},
		"no value": {
			signer:    payer,
			msg:       plain,
			wantSeen:  0,
			wantPayer: 100,
		},
		"explicit zero value is accepted by any message": {
			signer:    payer,
			msg:       plain,
			value:     make([]byte, 32),
			wantPayer: 100,
		},
		"value for a non-payable message": {
			signer:    payer,
			msg:       plain,
			value:     timelock.EncodeU256(uint256.NewInt(1)),
			wantErr:   errors.ErrMsg,
			wantPayer: 100,
		},
		"value without signer": {
			msg:       payable,
			value:     timelock.EncodeU256(uint256.NewInt(1)),
			wantErr:   errors.ErrUnauthorized,
			wantPayer: 100,
		},
		"more than available": {
			signer:    payer,
			msg:       payable,
			value:     timelock.EncodeU256(uint256.NewInt(101)),
			wantErr:   errors.ErrInsufficientAmount,
			wantPayer: 100,
		},
		"value too long": {
			signer:    payer,
			msg:       payable,
			value:     make([]byte, 33),
			wantErr:   errors.ErrOverflow,
			wantPayer: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.Issue(db, payer.Address(), uint256.NewInt(100)))

			auth := &timelocktest.Auth{Signer: tc.signer}
			d := NewValueDecorator(auth, ctrl, pool)
			h := &valueHandler{}
			tx := &timelocktest.Tx{Msg: tc.msg, Value: tc.value}

			_, err := d.Deliver(context.Background(), db, tx, h)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, uint256.NewInt(tc.wantSeen), h.seen)
			} else if h.seen != nil {
				t.Fatal("handler called")
			}

			got, err := ctrl.Balance(db, payer.Address())
			assert.Nil(t, err)
			assert.Equal(t, uint256.NewInt(tc.wantPayer), got)
			got, err = ctrl.Balance(db, pool)
			assert.Nil(t, err)
			assert.Equal(t, uint256.NewInt(tc.wantPool), got)
		})
	}
}

func TestValueDecoratorCheck(t *testing.T) {
	payer := timelocktest.NewCondition()
	pool := timelocktest.NewCondition().Address()

	db := store.MemStore()
	ctrl := NewController()
	assert.Nil(t, ctrl.Issue(db, payer.Address(), uint256.NewInt(10)))

	d := NewValueDecorator(&timelocktest.Auth{Signer: payer}, ctrl, pool)
	h := &valueHandler{}
	msg := payableMsg{&timelocktest.Msg{RoutePath: "test/pay"}}
	tx := &timelocktest.Tx{Msg: msg, Value: timelock.EncodeU256(uint256.NewInt(4))}

	_, err := d.Check(context.Background(), db, tx, h)
	assert.Nil(t, err)
	assert.Equal(t, uint256.NewInt(4), h.seen)

	// Value is not available outside of the decorator.
	assert.Equal(t, new(uint256.Int), Value(context.Background()))
}
