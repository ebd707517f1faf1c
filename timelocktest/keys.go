package timelocktest

import (
	"testing"
	"time"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/crypto"
)

// NewKey returns a new random private key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() timelock.Condition {
	return NewKey().PublicKey().Condition()
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation or fails the test.
func ParseAddress(t testing.TB, encodedAddress string) timelock.Address {
	t.Helper()

	addr, err := timelock.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// BlockContext returns a context of a block at given height, produced at
// given unix time.
func BlockContext(ctx timelock.Context, height int64, unix int64) timelock.Context {
	ctx = timelock.WithHeight(ctx, height)
	return timelock.WithBlockTime(ctx, time.Unix(unix, 0))
}
