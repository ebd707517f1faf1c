package utils

import (
	"context"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/iov-one/timelock/timelocktest"
	"github.com/iov-one/timelock/timelocktest/assert"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		handler timelock.Handler
		tx      timelock.Tx
		err     *errors.Error
		tags    []common.KVPair
	}{
		"simple call": {
			handler: &timelocktest.Handler{},
			tx:      &timelocktest.Tx{Msg: &timelocktest.Msg{RoutePath: "wallet/deposit"}},
			tags:    []common.KVPair{stringTag(ActionKey, "wallet/deposit")},
		},
		"passes through error": {
			handler: &timelocktest.Handler{DeliverErr: errors.ErrHuman},
			tx:      &timelocktest.Tx{Msg: &timelocktest.Msg{RoutePath: "wallet/deposit"}},
			err:     errors.ErrHuman,
		},
		"tags are additive": {
			handler: &timelocktest.Handler{
				DeliverResult: timelock.DeliverResult{Tags: []common.KVPair{stringTag(ActionKey, "random")}},
			},
			tx:   &timelocktest.Tx{Msg: &timelocktest.Msg{RoutePath: "wallet/withdraw"}},
			tags: []common.KVPair{stringTag(ActionKey, "random"), stringTag(ActionKey, "wallet/withdraw")},
		},
		"broken message is rejected before the handler": {
			handler: &timelocktest.Handler{},
			tx:      &timelocktest.Tx{Err: errors.ErrInput},
			err:     errors.ErrInput,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()

			stack := timelocktest.Decorate(tc.handler, NewActionTagger())
			res, err := stack.Deliver(ctx, db, tc.tx)
			if tc.err != nil {
				if !tc.err.Is(err) {
					t.Fatalf("Unexpected error type returned: %v", err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, len(tc.tags), len(res.Tags))
			for i := range tc.tags {
				assert.Equal(t, string(tc.tags[i].Key), string(res.Tags[i].Key))
				assert.Equal(t, string(tc.tags[i].Value), string(res.Tags[i].Value))
			}
		})
	}
}
