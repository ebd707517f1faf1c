package x

import (
	"context"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/timelocktest"
	"github.com/iov-one/timelock/timelocktest/assert"
)

func TestAuthenticators(t *testing.T) {
	owner := timelocktest.NewCondition()
	depositor := timelocktest.NewCondition()
	stranger := timelocktest.NewCondition()

	chain := &timelocktest.CtxAuth{Key: "chain"}
	other := &timelocktest.CtxAuth{Key: "other"}
	signed := chain.SetConditions(context.Background(), owner, depositor)

	cases := map[string]struct {
		ctx        timelock.Context
		auth       Authenticator
		wantCaller timelock.Condition
		wantAll    []timelock.Condition
	}{
		"not signed": {
			ctx:  context.Background(),
			auth: &timelocktest.Auth{},
		},
		"single signer": {
			ctx:        context.Background(),
			auth:       &timelocktest.Auth{Signer: owner},
			wantCaller: owner,
			wantAll:    []timelock.Condition{owner},
		},
		"chained authenticators keep their order": {
			ctx: context.Background(),
			auth: ChainAuth(
				&timelocktest.Auth{Signer: depositor},
				&timelocktest.Auth{Signer: owner}),
			wantCaller: depositor,
			wantAll:    []timelock.Condition{depositor, owner},
		},
		"context signers": {
			ctx:        signed,
			auth:       chain,
			wantCaller: owner,
			wantAll:    []timelock.Condition{owner, depositor},
		},
		"context signers of another key": {
			ctx:  signed,
			auth: ChainAuth(other),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.wantCaller, MainSigner(tc.ctx, tc.auth))
			assert.Equal(t, tc.wantAll, tc.auth.GetConditions(tc.ctx))

			caller := Caller(tc.ctx, tc.auth)
			if tc.wantCaller == nil {
				assert.Nil(t, caller)
			} else {
				assert.Equal(t, tc.wantCaller.Address(), caller)
			}

			for _, c := range tc.wantAll {
				if !tc.auth.HasAddress(tc.ctx, c.Address()) {
					t.Errorf("%s not authenticated", c)
				}
			}
			if tc.auth.HasAddress(tc.ctx, stranger.Address()) {
				t.Error("stranger authenticated")
			}
		})
	}
}
