package timelock_test

import (
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/timelocktest"
	"github.com/iov-one/timelock/timelocktest/assert"
)

func TestLoadMsg(t *testing.T) {
	msg := &timelocktest.Msg{RoutePath: "test/load", Serialized: []byte("x")}

	cases := map[string]struct {
		tx      timelock.Tx
		dest    interface{}
		wantErr *errors.Error
	}{
		"value destination": {
			tx:   &timelocktest.Tx{Msg: msg},
			dest: &timelocktest.Msg{},
		},
		"pointer destination": {
			tx:   &timelocktest.Tx{Msg: msg},
			dest: new(*timelocktest.Msg),
		},
		"wrong type": {
			tx:      &timelocktest.Tx{Msg: msg},
			dest:    new(string),
			wantErr: errors.ErrType,
		},
		"nil destination": {
			tx:      &timelocktest.Tx{Msg: msg},
			dest:    nil,
			wantErr: errors.ErrHuman,
		},
		"no message": {
			tx:      &timelocktest.Tx{},
			dest:    &timelocktest.Msg{},
			wantErr: errors.ErrEmpty,
		},
		"tx error": {
			tx:      &timelocktest.Tx{Err: errors.ErrDatabase},
			dest:    &timelocktest.Msg{},
			wantErr: errors.ErrDatabase,
		},
		"invalid message": {
			tx:      &timelocktest.Tx{Msg: &timelocktest.Msg{RoutePath: "test/load", Err: errors.ErrMsg}},
			dest:    &timelocktest.Msg{},
			wantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := timelock.LoadMsg(tc.tx, tc.dest)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestValidatePath(t *testing.T) {
	assert.Nil(t, timelock.ValidatePath("wallet/extend_lock"))
	assert.IsErr(t, errors.ErrInput, timelock.ValidatePath("wallet.init"))
	assert.IsErr(t, errors.ErrInput, timelock.ValidatePath(""))
}

func TestGetPath(t *testing.T) {
	tx := &timelocktest.Tx{Msg: &timelocktest.Msg{RoutePath: "wallet/deposit"}}
	assert.Equal(t, "wallet/deposit", timelock.GetPath(tx))
	assert.Equal(t, "(missing)", timelock.GetPath(&timelocktest.Tx{}))
}
