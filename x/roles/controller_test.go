package roles

import (
	"context"
	"testing"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/store"
	"github.com/tollgate-dao/tollgate/tollgatetest"
	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
)

func TestController(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := tollgatetest.NewAddress()
	bob := tollgatetest.NewAddress()

	assert.Nil(t, ctrl.Grant(db, "treasury-admin", alice))
	assert.Nil(t, ctrl.Grant(db, "fee-admin", alice))
	assert.Nil(t, ctrl.Grant(db, "fee-admin", bob))

	if err := ctrl.Grant(db, "fee-admin", bob); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate error, got %+v", err)
	}
	if err := ctrl.Grant(db, "Bad Role", bob); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}

	ok, err := ctrl.HasRole(db, "treasury-admin", alice)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
	ok, err = ctrl.HasRole(db, "treasury-admin", bob)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	names, err := ctrl.RolesOf(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, []string{"fee-admin", "treasury-admin"}, names)

	assert.Nil(t, ctrl.Revoke(db, "fee-admin", alice))
	if err := ctrl.Revoke(db, "fee-admin", alice); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found error, got %+v", err)
	}
	names, err = ctrl.RolesOf(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, []string{"treasury-admin"}, names)
}

func TestChecker(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	admin := tollgatetest.NewCondition()
	other := tollgatetest.NewCondition()
	assert.Nil(t, ctrl.Grant(db, "treasury-admin", admin.Address()))

	auth := &tollgatetest.CtxAuth{Key: "auth"}
	checker := NewChecker(auth, ctrl)

	cases := map[string]struct {
		signers  []tollgate.Condition
		wantErr  *errors.Error
		wantAddr []byte
	}{
		"role holder": {
			signers:  []tollgate.Condition{admin},
			wantAddr: admin.Address(),
		},
		"role holder among other signers": {
			signers:  []tollgate.Condition{other, admin},
			wantAddr: admin.Address(),
		},
		"no role": {
			signers: []tollgate.Condition{other},
			wantErr: errors.ErrUnauthorized,
		},
		"no signers": {
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := auth.SetConditions(context.Background(), tc.signers...)
			addr, err := checker.Authorize(ctx, db, "treasury-admin")
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.wantAddr, []byte(addr))
		})
	}
}
