package ledger

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
)

type contextKey int // local to the ledger module

const (
	contextKeyValue contextKey = iota
)

// withValue is private, as only the decorator
// can take value from the caller
func withValue(ctx timelock.Context, value *uint256.Int) timelock.Context {
	return context.WithValue(ctx, contextKeyValue, value)
}

// Value returns the amount attached to the current transaction that was
// already moved to the receiving account. Zero if none.
func Value(ctx timelock.Context) *uint256.Int {
	val, ok := ctx.Value(contextKeyValue).(*uint256.Int)
	if !ok {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(val)
}
