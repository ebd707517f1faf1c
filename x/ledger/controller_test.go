package ledger

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/iov-one/timelock/timelocktest"
	"github.com/iov-one/timelock/timelocktest/assert"
)

func TestTransfer(t *testing.T) {
	alice := timelocktest.NewCondition().Address()
	bob := timelocktest.NewCondition().Address()

	cases := map[string]struct {
		issue      uint64
		amount     *uint256.Int
		to         timelock.Address
		wantErr    *errors.Error
		wantAlice  uint64
		wantTarget uint64
	}{
		"move part": {
			issue:      100,
			amount:     uint256.NewInt(40),
			to:         bob,
			wantAlice:  60,
			wantTarget: 40,
		},
		"move everything": {
			issue:      100,
			amount:     uint256.NewInt(100),
			to:         bob,
			wantAlice:  0,
			wantTarget: 100,
		},
		"zero amount is a no-op": {
			issue:      5,
			amount:     new(uint256.Int),
			to:         bob,
			wantAlice:  5,
			wantTarget: 0,
		},
		"insufficient funds": {
			issue:      10,
			amount:     uint256.NewInt(11),
			to:         bob,
			wantErr:    errors.ErrInsufficientAmount,
			wantAlice:  10,
			wantTarget: 0,
		},
		"empty account": {
			amount:  uint256.NewInt(1),
			to:      bob,
			wantErr: errors.ErrInsufficientAmount,
		},
		"to self": {
			issue:      30,
			amount:     uint256.NewInt(20),
			to:         alice,
			wantAlice:  30,
			wantTarget: 30,
		},
		"invalid destination": {
			issue:     30,
			amount:    uint256.NewInt(20),
			to:        timelock.Address{1, 2},
			wantErr:   errors.ErrInput,
			wantAlice: 30,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.Issue(db, alice, uint256.NewInt(tc.issue)))

			err := ctrl.Transfer(db, alice, tc.to, tc.amount)
			assert.IsErr(t, tc.wantErr, err)

			got, err := ctrl.Balance(db, alice)
			assert.Nil(t, err)
			assert.Equal(t, uint256.NewInt(tc.wantAlice), got)
			if tc.to.Validate() == nil {
				got, err = ctrl.Balance(db, tc.to)
				assert.Nil(t, err)
				assert.Equal(t, uint256.NewInt(tc.wantTarget), got)
			}
		})
	}
}

func TestIssueOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	addr := timelocktest.NewCondition().Address()

	max := new(uint256.Int).SetAllOne()
	assert.Nil(t, ctrl.Issue(db, addr, max))
	err := ctrl.Issue(db, addr, uint256.NewInt(1))
	assert.IsErr(t, errors.ErrOverflow, err)

	got, err := ctrl.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, max, got)
}

func TestTransferOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	rich := timelocktest.NewCondition().Address()
	richer := timelocktest.NewCondition().Address()

	assert.Nil(t, ctrl.Issue(db, rich, uint256.NewInt(1)))
	assert.Nil(t, ctrl.Issue(db, richer, new(uint256.Int).SetAllOne()))

	err := ctrl.Transfer(db, rich, richer, uint256.NewInt(1))
	assert.IsErr(t, errors.ErrOverflow, err)
}

func TestAccountValidate(t *testing.T) {
	assert.Nil(t, (&Account{}).Validate())
	assert.Nil(t, NewAccount(uint256.NewInt(7)).Validate())
	err := (&Account{Balance: make([]byte, 33)}).Validate()
	assert.IsErr(t, errors.ErrModel, err)
}

func TestAccountsQuery(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	addr := timelocktest.NewCondition().Address()
	assert.Nil(t, ctrl.Issue(db, addr, uint256.NewInt(12)))

	qr := timelock.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/accounts")
	if h == nil {
		t.Fatal("no /accounts handler")
	}
	res, err := h.Query(db, timelock.KeyQueryMod, addr)
	assert.Nil(t, err)
	if len(res) != 1 {
		t.Fatalf("want one account, got %d", len(res))
	}
	var acc Account
	assert.Nil(t, acc.Unmarshal(res[0].Value))
	assert.Equal(t, uint256.NewInt(12), acc.Amount())
}
