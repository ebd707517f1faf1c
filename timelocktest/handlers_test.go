package timelocktest

import (
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/iov-one/timelock/timelocktest/assert"
)

func TestHandler(t *testing.T) {
	cases := map[string]struct {
		handler     Handler
		checks      int
		delivers    int
		wantCheck   *timelock.CheckResult
		wantDeliver *timelock.DeliverResult
		checkErr    *errors.Error
		deliverErr  *errors.Error
	}{
		"results are returned": {
			handler: Handler{
				CheckResult:   timelock.CheckResult{Data: []byte("check"), GasAllocated: 5},
				DeliverResult: timelock.DeliverResult{Data: []byte("deliver"), GasUsed: 824},
			},
			checks:      1,
			delivers:    2,
			wantCheck:   &timelock.CheckResult{Data: []byte("check"), GasAllocated: 5},
			wantDeliver: &timelock.DeliverResult{Data: []byte("deliver"), GasUsed: 824},
		},
		"failures are counted": {
			handler:    Handler{CheckErr: errors.ErrUnauthorized, DeliverErr: errors.ErrNotFound},
			checks:     3,
			delivers:   1,
			checkErr:   errors.ErrUnauthorized,
			deliverErr: errors.ErrNotFound,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := tc.handler
			for i := 0; i < tc.checks; i++ {
				res, err := h.Check(nil, nil, nil)
				assert.IsErr(t, tc.checkErr, err)
				if tc.wantCheck != nil {
					assert.Equal(t, tc.wantCheck, res)
				}
			}
			for i := 0; i < tc.delivers; i++ {
				res, err := h.Deliver(nil, nil, nil)
				assert.IsErr(t, tc.deliverErr, err)
				if tc.wantDeliver != nil {
					assert.Equal(t, tc.wantDeliver, res)
				}
			}
			assert.Equal(t, tc.checks, h.CheckCallCount())
			assert.Equal(t, tc.delivers, h.DeliverCallCount())
			assert.Equal(t, tc.checks+tc.delivers, h.CallCount())
		})
	}
}

func TestHandlerWritesBeforeFailing(t *testing.T) {
	db := store.MemStore()
	h := Handler{
		WriteKey:   []byte("wallet"),
		WriteValue: []byte("locked"),
		DeliverErr: errors.ErrState,
	}
	_, err := h.Deliver(nil, db, nil)
	assert.IsErr(t, errors.ErrState, err)
	store.CheckValue(t, db, []byte("wallet"), []byte("locked"))
}

func TestPanicHandler(t *testing.T) {
	h := PanicHandler{Reason: "boom"}
	assert.Panics(t, func() { h.Check(nil, nil, nil) })
	assert.Panics(t, func() { h.Deliver(nil, nil, nil) })
}
