package timelocktest

import (
	"context"
	"fmt"

	"github.com/iov-one/timelock"
)

// Auth is an x.Authenticator that authenticates a fixed set of conditions.
// Signer, when set, is reported first, followed by all Signers.
type Auth struct {
	Signer  timelock.Condition
	Signers []timelock.Condition
}

func (a *Auth) GetConditions(timelock.Context) []timelock.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]timelock.Condition{a.Signer}, a.Signers...)
}

func (a *Auth) HasAddress(ctx timelock.Context, addr timelock.Address) bool {
	return containsAddress(a.GetConditions(ctx), addr)
}

// CtxAuth is an x.Authenticator that reads the conditions from the context,
// where SetConditions stored them under Key.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx timelock.Context, conds ...timelock.Condition) timelock.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx timelock.Context) []timelock.Condition {
	switch v := ctx.Value(ctxAuthKey(a.Key)).(type) {
	case nil:
		return nil
	case []timelock.Condition:
		return v
	default:
		panic(fmt.Sprintf("conditions stored as %T", v))
	}
}

func (a *CtxAuth) HasAddress(ctx timelock.Context, addr timelock.Address) bool {
	return containsAddress(a.GetConditions(ctx), addr)
}

func containsAddress(conds []timelock.Condition, addr timelock.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
