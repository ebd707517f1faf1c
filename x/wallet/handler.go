package wallet

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/ledger"
)

const (
	initCost       = 50
	depositCost    = 10
	withdrawCost   = 100
	extendLockCost = 20
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r timelock.Registry, ctrl Controller) {
	r.Handle(pathInitMsg, InitHandler{ctrl: ctrl})
	r.Handle(pathDepositMsg, DepositHandler{ctrl: ctrl})
	r.Handle(pathWithdrawMsg, WithdrawHandler{ctrl: ctrl})
	r.Handle(pathExtendLockMsg, ExtendLockHandler{ctrl: ctrl})
}

// InitHandler makes the signer the owner of the wallet.
type InitHandler struct {
	ctrl Controller
}

var _ timelock.Handler = InitHandler{}

// Check verifies the wallet can be initialized by the signer
func (h InitHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	var msg InitMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.CheckInit(ctx, db); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{GasAllocated: initCost}, nil
}

// Deliver stores the owner and the unlock time
func (h InitHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	var msg InitMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Init(ctx, db, msg.Unlock()); err != nil {
		return nil, err
	}
	return &timelock.DeliverResult{}, nil
}

// DepositHandler records the value taken by the ledger.ValueDecorator as a
// deposit.
type DepositHandler struct {
	ctrl Controller
}

var _ timelock.Handler = DepositHandler{}

// Check verifies the wallet accepts deposits
func (h DepositHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	var msg DepositMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.CheckDeposit(ctx, db); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver emits a deposit event for the attached value
func (h DepositHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	var msg DepositMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	ev, err := h.ctrl.Deposit(ctx, db, ledger.Value(ctx))
	if err != nil {
		return nil, err
	}
	return &timelock.DeliverResult{Events: []timelock.Event{ev}}, nil
}

// WithdrawHandler drains the pool to the recipient.
type WithdrawHandler struct {
	ctrl Controller
}

var _ timelock.Handler = WithdrawHandler{}

// Check verifies all withdrawal preconditions
func (h WithdrawHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	var msg WithdrawMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.CheckWithdraw(ctx, db); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver moves the pool and emits a withdrawal event
func (h WithdrawHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	var msg WithdrawMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	ev, err := h.ctrl.Withdraw(ctx, db, msg.To)
	if err != nil {
		return nil, err
	}
	return &timelock.DeliverResult{Events: []timelock.Event{ev}}, nil
}

// ExtendLockHandler moves the unlock time forward.
type ExtendLockHandler struct {
	ctrl Controller
}

var _ timelock.Handler = ExtendLockHandler{}

// Check verifies the owner requests a later unlock time
func (h ExtendLockHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	var msg ExtendLockMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.CheckExtendLock(ctx, db, msg.Unlock()); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{GasAllocated: extendLockCost}, nil
}

// Deliver stores the new unlock time
func (h ExtendLockHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	var msg ExtendLockMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.ExtendLock(ctx, db, msg.Unlock()); err != nil {
		return nil, err
	}
	return &timelock.DeliverResult{}, nil
}
