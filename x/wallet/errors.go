package wallet

import "github.com/iov-one/timelock/errors"

var (
	// ErrNotOwner is returned when the caller is not the wallet owner.
	ErrNotOwner = errors.Register(1020, "not owner")

	// ErrFundsLocked is returned when the unlock time was not reached yet,
	// and when a lock extension does not move the unlock time forward.
	ErrFundsLocked = errors.Register(1021, "funds locked")

	// ErrZeroBalance is returned on withdrawal from an empty pool.
	ErrZeroBalance = errors.Register(1022, "zero balance")

	// ErrAlreadyInitialized is returned by a second init.
	ErrAlreadyInitialized = errors.Register(1023, "already initialized")

	// ErrNotInitialized is returned by every operation but init before the
	// wallet has an owner.
	ErrNotInitialized = errors.Register(1024, "not initialized")
)
