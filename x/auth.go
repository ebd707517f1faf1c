package x

import (
	"github.com/iov-one/timelock"
)

// Authenticator tells which conditions the current transaction fulfills.
// Handlers receive it in their constructor and never depend on a
// particular signature scheme.
type Authenticator interface {
	GetConditions(timelock.Context) []timelock.Condition
	HasAddress(timelock.Context, timelock.Address) bool
}

// MultiAuth is the union of several Authenticators.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

// ChainAuth combines authenticators. Conditions are reported in the order
// of the authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

func (m MultiAuth) GetConditions(ctx timelock.Context) []timelock.Condition {
	var res []timelock.Condition
	for _, a := range m {
		res = append(res, a.GetConditions(ctx)...)
	}
	return res
}

func (m MultiAuth) HasAddress(ctx timelock.Context, addr timelock.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition, nil if there is none. The main
// signer is the caller of an operation.
func MainSigner(ctx timelock.Context, auth Authenticator) timelock.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// Caller returns the address of the main signer, nil if the transaction is
// not signed.
func Caller(ctx timelock.Context, auth Authenticator) timelock.Address {
	if c := MainSigner(ctx, auth); c != nil {
		return c.Address()
	}
	return nil
}
