package ledger

import (
	"context"
	"testing"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/store"
	"github.com/tollgate-dao/tollgate/tollgatetest"
	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
)

func TestTransfer(t *testing.T) {
	alice := tollgatetest.NewAddress()
	bob := tollgatetest.NewAddress()

	cases := map[string]struct {
		src     tollgate.Address
		dest    tollgate.Address
		token   tollgate.Address
		amount  uint64
		wantErr *errors.Error
		alice   uint64
		bob     uint64
	}{
		"full balance": {
			src: alice, dest: bob, token: TokenAddress("USDC"), amount: 100,
			alice: 0, bob: 100,
		},
		"partial balance": {
			src: alice, dest: bob, token: TokenAddress("USDC"), amount: 40,
			alice: 60, bob: 40,
		},
		"insufficient balance": {
			src: bob, dest: alice, token: TokenAddress("USDC"), amount: 1,
			wantErr: errors.ErrInsufficientAmount,
			alice:   100, bob: 0,
		},
		"zero amount": {
			src: alice, dest: bob, token: TokenAddress("USDC"), amount: 0,
			wantErr: errors.ErrAmount,
			alice:   100, bob: 0,
		},
		"unknown token": {
			src: alice, dest: bob, token: TokenAddress("NOPE"), amount: 1,
			wantErr: ErrUnknownToken,
			alice:   100, bob: 0,
		},
		"missing destination": {
			src: alice, token: TokenAddress("USDC"), amount: 1,
			wantErr: errors.ErrEmpty,
			alice:   100, bob: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()
			ctrl := NewController()
			usdc, err := ctrl.CreateToken(db, "USDC")
			assert.Nil(t, err)
			assert.Nil(t, ctrl.Mint(ctx, db, usdc, alice, 100))

			cache := db.CacheWrap()
			err = ctrl.Transfer(ctx, cache, tc.token, tc.src, tc.dest, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				assert.Nil(t, cache.Write())
			} else {
				cache.Discard()
			}

			got, err := ctrl.BalanceOf(db, usdc, alice)
			assert.Nil(t, err)
			assert.Equal(t, tc.alice, got)
			got, err = ctrl.BalanceOf(db, usdc, bob)
			assert.Nil(t, err)
			assert.Equal(t, tc.bob, got)

			supply, err := ctrl.TotalSupply(db, usdc)
			assert.Nil(t, err)
			assert.Equal(t, uint64(100), supply)
		})
	}
}

func TestTransferFrom(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	ctrl := NewController()
	owner := tollgatetest.NewAddress()
	spender := tollgatetest.NewAddress()
	dest := tollgatetest.NewAddress()

	usdc, err := ctrl.CreateToken(db, "USDC")
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Mint(ctx, db, usdc, owner, 1000))

	if err := ctrl.TransferFrom(ctx, db, usdc, spender, owner, dest, 1); !ErrInsufficientAllowance.Is(err) {
		t.Fatalf("want allowance error, got %+v", err)
	}
	assert.ErrClass(t, errors.ErrResource, ctrl.TransferFrom(ctx, db, usdc, spender, owner, dest, 1))

	assert.Nil(t, ctrl.Approve(db, usdc, owner, spender, 300))
	assert.Nil(t, ctrl.TransferFrom(ctx, db, usdc, spender, owner, dest, 200))

	allowed, err := ctrl.Allowance(db, usdc, owner, spender)
	assert.Nil(t, err)
	assert.Equal(t, uint64(100), allowed)

	bal, err := ctrl.BalanceOf(db, usdc, dest)
	assert.Nil(t, err)
	assert.Equal(t, uint64(200), bal)

	if err := ctrl.TransferFrom(ctx, db, usdc, spender, owner, dest, 101); !ErrInsufficientAllowance.Is(err) {
		t.Fatalf("want allowance error, got %+v", err)
	}

	// Allowance above the balance is limited by the balance.
	assert.Nil(t, ctrl.Approve(db, usdc, owner, spender, 5000))
	if err := ctrl.TransferFrom(ctx, db, usdc, spender, owner, dest, 900); !errors.ErrInsufficientAmount.Is(err) {
		t.Fatalf("want insufficient amount error, got %+v", err)
	}
}

func TestReceiveHook(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	ctrl := NewController()
	alice := tollgatetest.NewAddress()
	hooked := tollgatetest.NewAddress()

	var calls []uint64
	ctrl.OnReceive(hooked, func(ctx tollgate.Context, db tollgate.KVStore, token, from tollgate.Address, amount uint64) error {
		calls = append(calls, amount)
		if amount > 10 {
			return errors.Wrap(errors.ErrState, "too much")
		}
		return nil
	})
	assert.Panics(t, func() {
		ctrl.OnReceive(hooked, nil)
	})

	usdc, err := ctrl.CreateToken(db, "USDC")
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Mint(ctx, db, usdc, alice, 100))

	assert.Nil(t, ctrl.Transfer(ctx, db, usdc, alice, hooked, 5))
	if err := ctrl.Transfer(ctx, db, usdc, alice, hooked, 11); !errors.ErrState.Is(err) {
		t.Fatalf("want hook error, got %+v", err)
	}
	assert.Equal(t, []uint64{5, 11}, calls)
}

func TestCreateToken(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()

	addr, err := ctrl.CreateToken(db, "TGT")
	assert.Nil(t, err)
	assert.Equal(t, TokenAddress("TGT"), addr)

	if _, err := ctrl.CreateToken(db, "TGT"); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate error, got %+v", err)
	}
	if _, err := ctrl.CreateToken(db, "lower"); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
	if _, err := ctrl.TotalSupply(db, TokenAddress("NONE")); !ErrUnknownToken.Is(err) {
		t.Fatalf("want unknown token error, got %+v", err)
	}
}

func TestBalances(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	ctrl := NewController()
	alice := tollgatetest.NewAddress()
	bob := tollgatetest.NewAddress()

	usdc, err := ctrl.CreateToken(db, "USDC")
	assert.Nil(t, err)
	dai, err := ctrl.CreateToken(db, "DAI")
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Mint(ctx, db, usdc, alice, 10))
	assert.Nil(t, ctrl.Mint(ctx, db, usdc, bob, 20))
	assert.Nil(t, ctrl.Mint(ctx, db, dai, bob, 30))
	assert.Nil(t, ctrl.Transfer(ctx, db, usdc, alice, bob, 10))

	got, err := ctrl.Balances(db, usdc)
	assert.Nil(t, err)
	if len(got) != 1 {
		t.Fatalf("want one balance, got %v", got)
	}
	assert.Equal(t, bob, got[0].Owner)
	assert.Equal(t, uint64(30), got[0].Amount)
}
