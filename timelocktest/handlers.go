package timelocktest

import "github.com/iov-one/timelock"

// Handler is a mock implementation of the timelock.Handler interface.
//
// Both methods return configured result and error. If a key is set, it is
// written to the store before returning.
type Handler struct {
	checkCall   int
	CheckResult timelock.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult timelock.DeliverResult
	DeliverErr    error

	// WriteKey if set is written with WriteValue on every call.
	WriteKey   []byte
	WriteValue []byte
}

var _ timelock.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) write(db timelock.KVStore) error {
	if h.WriteKey == nil {
		return nil
	}
	return db.Set(h.WriteKey, h.WriteValue)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// PanicHandler panics with given value on every call.
type PanicHandler struct {
	Reason interface{}
}

var _ timelock.Handler = PanicHandler{}

func (p PanicHandler) Check(timelock.Context, timelock.KVStore, timelock.Tx) (*timelock.CheckResult, error) {
	panic(p.Reason)
}

func (p PanicHandler) Deliver(timelock.Context, timelock.KVStore, timelock.Tx) (*timelock.DeliverResult, error) {
	panic(p.Reason)
}
