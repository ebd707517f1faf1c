package wallet

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
)

const (
	// DepositEventName is the name of the event emitted on every deposit.
	DepositEventName = "Deposit"
	// WithdrawalEventName is the name of the event emitted on every
	// withdrawal.
	WithdrawalEventName = "Withdrawal"
)

var _ timelock.Event = (*DepositEvent)(nil)

func (DepositEvent) EventName() string {
	return DepositEventName
}

// Value returns the deposited amount.
func (e *DepositEvent) Value() *uint256.Int {
	v, err := timelock.DecodeU256(e.Amount)
	if err != nil {
		// Events are only built from EncodeU256 output.
		panic(err)
	}
	return v
}

var _ timelock.Event = (*WithdrawalEvent)(nil)

func (WithdrawalEvent) EventName() string {
	return WithdrawalEventName
}

// Value returns the withdrawn amount.
func (e *WithdrawalEvent) Value() *uint256.Int {
	v, err := timelock.DecodeU256(e.Amount)
	if err != nil {
		// Events are only built from EncodeU256 output.
		panic(err)
	}
	return v
}
