package wallet

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/ledger"
)

const (
	pathInitMsg       = "wallet/init"
	pathDepositMsg    = "wallet/deposit"
	pathWithdrawMsg   = "wallet/withdraw"
	pathExtendLockMsg = "wallet/extend_lock"
)

var _ timelock.Msg = (*InitMsg)(nil)

// Path returns the routing path for this message.
func (InitMsg) Path() string {
	return pathInitMsg
}

// Validate ensures the unlock time fits 256 bits.
func (m *InitMsg) Validate() error {
	return validateTime(m.UnlockTime)
}

// Unlock returns the requested unlock time.
func (m *InitMsg) Unlock() *uint256.Int {
	v, err := timelock.DecodeU256(m.UnlockTime)
	if err != nil {
		// Validate runs before any handler reads the message.
		panic(err)
	}
	return v
}

// NewInitMsg returns a message initializing the wallet with given unlock
// time.
func NewInitMsg(unlock *uint256.Int) *InitMsg {
	return &InitMsg{UnlockTime: timelock.EncodeU256(unlock)}
}

var (
	_ timelock.Msg   = (*DepositMsg)(nil)
	_ ledger.Payable = (*DepositMsg)(nil)
)

// Path returns the routing path for this message.
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Validate always succeeds, the message has no fields.
func (m *DepositMsg) Validate() error {
	return nil
}

// Payable marks deposit as the only message accepting value.
func (DepositMsg) Payable() {}

var _ timelock.Msg = (*WithdrawMsg)(nil)

// Path returns the routing path for this message.
func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

// Validate ensures the recipient is a valid address.
func (m *WithdrawMsg) Validate() error {
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return nil
}

var _ timelock.Msg = (*ExtendLockMsg)(nil)

// Path returns the routing path for this message.
func (ExtendLockMsg) Path() string {
	return pathExtendLockMsg
}

// Validate ensures the unlock time fits 256 bits.
func (m *ExtendLockMsg) Validate() error {
	return validateTime(m.UnlockTime)
}

// Unlock returns the requested unlock time.
func (m *ExtendLockMsg) Unlock() *uint256.Int {
	v, err := timelock.DecodeU256(m.UnlockTime)
	if err != nil {
		// Validate runs before any handler reads the message.
		panic(err)
	}
	return v
}

// NewExtendLockMsg returns a message moving the unlock time to given value.
func NewExtendLockMsg(unlock *uint256.Int) *ExtendLockMsg {
	return &ExtendLockMsg{UnlockTime: timelock.EncodeU256(unlock)}
}

func validateTime(raw []byte) error {
	if _, err := timelock.DecodeU256(raw); err != nil {
		return errors.Wrap(errors.ErrMsg, "unlock time")
	}
	return nil
}
