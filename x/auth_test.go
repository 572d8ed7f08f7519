package x

import (
	"context"
	"testing"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/tollgatetest"
	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
)

func TestAuth(t *testing.T) {
	a := tollgatetest.NewCondition()
	b := tollgatetest.NewCondition()
	c := tollgatetest.NewCondition()

	ctx1 := &tollgatetest.CtxAuth{Key: "foo"}
	ctx2 := &tollgatetest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          tollgate.Context
		auth         Authenticator
		mainSigner   tollgate.Condition
		wantInCtx    tollgate.Condition
		wantNotInCtx tollgate.Condition
		wantAll      []tollgate.Condition
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &tollgatetest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &tollgatetest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []tollgate.Condition{a},
		},
		"several signers": {
			ctx:          context.Background(),
			auth:         &tollgatetest.Auth{Signers: []tollgate.Condition{b, a}},
			mainSigner:   b,
			wantInCtx:    a,
			wantNotInCtx: c,
			wantAll:      []tollgate.Condition{b, a},
		},
		"ctxAuth checks what is set by same key": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx1,
			mainSigner:   a,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []tollgate.Condition{a, b},
		},
		"ctxAuth with different key sees nothing": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx2,
			wantNotInCtx: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.mainSigner, MainSigner(tc.ctx, tc.auth))
			if tc.wantInCtx != nil && !tc.auth.HasAddress(tc.ctx, tc.wantInCtx.Address()) {
				t.Fatal("condition address that was expected in context not found")
			}
			if tc.wantNotInCtx != nil && tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx.Address()) {
				t.Fatal("condition address that was expected not to be in context found")
			}

			all := tc.auth.GetConditions(tc.ctx)
			assert.Equal(t, tc.wantAll, all)

			addrs := GetAddresses(tc.ctx, tc.auth)
			if len(addrs) != len(all) {
				t.Fatalf("want %d addresses, got %d", len(all), len(addrs))
			}
			for i, c := range all {
				assert.Equal(t, c.Address(), addrs[i])
			}
		})
	}
}
