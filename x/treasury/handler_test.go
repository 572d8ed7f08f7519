package treasury

import (
	"context"
	"testing"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/app"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/gconf"
	"github.com/tollgate-dao/tollgate/store"
	"github.com/tollgate-dao/tollgate/tollgatetest"
	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
	"github.com/tollgate-dao/tollgate/x/ledger"
	"github.com/tollgate-dao/tollgate/x/roles"
)

func TestHandlers(t *testing.T) {
	admin := tollgatetest.NewCondition()
	distributor := tollgatetest.NewCondition()
	owner := tollgatetest.NewCondition()
	funder := tollgatetest.NewCondition()
	stranger := tollgatetest.NewCondition()
	rcpt := tollgatetest.NewAddress()
	meta := &tollgate.Metadata{Schema: 1}
	token := ledger.TokenAddress("USDC")

	cases := map[string]struct {
		Signer         tollgate.Condition
		Msg            tollgate.Msg
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
		WantTracked    uint64
	}{
		"receive from any signer": {
			Signer:      funder,
			Msg:         &ReceiveMsg{Metadata: meta, Token: token, Amount: 300},
			WantTracked: 1300,
		},
		"receive more than the signer holds": {
			Signer:         stranger,
			Msg:            &ReceiveMsg{Metadata: meta, Token: token, Amount: 300},
			WantDeliverErr: errors.ErrInsufficientAmount,
			WantTracked:    1000,
		},
		"receive nothing": {
			Signer:         funder,
			Msg:            &ReceiveMsg{Metadata: meta, Token: token},
			WantCheckErr:   errors.ErrAmount,
			WantDeliverErr: errors.ErrAmount,
			WantTracked:    1000,
		},
		"distribute": {
			Signer:      distributor,
			Msg:         &DistributeMsg{Metadata: meta, Token: token},
			WantTracked: 400,
		},
		"distribute requires the distributor role": {
			Signer:         admin,
			Msg:            &DistributeMsg{Metadata: meta, Token: token},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
			WantTracked:    1000,
		},
		"add recipient": {
			Signer:      admin,
			Msg:         &AddRecipientMsg{Metadata: meta, Name: "grants", Address: tollgatetest.NewAddress(), AllocationBps: 1000},
			WantTracked: 1000,
		},
		"add recipient above the allocation limit": {
			Signer:         admin,
			Msg:            &AddRecipientMsg{Metadata: meta, Name: "grants", Address: tollgatetest.NewAddress(), AllocationBps: 5000},
			WantDeliverErr: errors.ErrConfiguration,
			WantTracked:    1000,
		},
		"add recipient requires the admin role": {
			Signer:         distributor,
			Msg:            &AddRecipientMsg{Metadata: meta, Name: "grants", Address: tollgatetest.NewAddress(), AllocationBps: 1000},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
			WantTracked:    1000,
		},
		"update recipient": {
			Signer:      admin,
			Msg:         &UpdateRecipientMsg{Metadata: meta, RecipientID: tollgatetest.SequenceID(1), AllocationBps: 10000},
			WantTracked: 1000,
		},
		"remove recipient": {
			Signer:      admin,
			Msg:         &RemoveRecipientMsg{Metadata: meta, RecipientID: tollgatetest.SequenceID(1)},
			WantTracked: 1000,
		},
		"remove unknown recipient": {
			Signer:         admin,
			Msg:            &RemoveRecipientMsg{Metadata: meta, RecipientID: tollgatetest.SequenceID(9)},
			WantDeliverErr: errors.ErrNotFound,
			WantTracked:    1000,
		},
		"withdraw": {
			Signer:      admin,
			Msg:         &WithdrawMsg{Metadata: meta, Token: token, Destination: rcpt, Amount: 400},
			WantTracked: 600,
		},
		"withdraw requires the admin role": {
			Signer:         owner,
			Msg:            &WithdrawMsg{Metadata: meta, Token: token, Destination: rcpt, Amount: 400},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
			WantTracked:    1000,
		},
		"recover without untracked funds": {
			Signer:         admin,
			Msg:            &RecoverMsg{Metadata: meta, Token: token, Destination: rcpt},
			WantDeliverErr: errors.ErrEmpty,
			WantTracked:    1000,
		},
		"remove token with a balance": {
			Signer:         admin,
			Msg:            &RemoveTokenMsg{Metadata: meta, Token: token},
			WantDeliverErr: errors.ErrState,
			WantTracked:    1000,
		},
		"add a known token": {
			Signer:         admin,
			Msg:            &AddTokenMsg{Metadata: meta, Token: token},
			WantDeliverErr: errors.ErrDuplicate,
			WantTracked:    1000,
		},
		"pause": {
			Signer:      admin,
			Msg:         &PauseMsg{Metadata: meta},
			WantTracked: 1000,
		},
		"unpause when not paused": {
			Signer:         admin,
			Msg:            &UnpauseMsg{Metadata: meta},
			WantDeliverErr: errors.ErrState,
			WantTracked:    1000,
		},
		"update configuration by the owner": {
			Signer:      owner,
			Msg:         &UpdateConfigurationMsg{Metadata: meta, Patch: &Configuration{Metadata: meta, CooldownSeconds: 60}},
			WantTracked: 1000,
		},
		"update configuration by the admin": {
			Signer:         admin,
			Msg:            &UpdateConfigurationMsg{Metadata: meta, Patch: &Configuration{Metadata: meta, CooldownSeconds: 60}},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
			WantTracked:    1000,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := tollgate.WithBlockTime(context.Background(), genesisTime)

			rctrl := roles.NewController()
			assert.Nil(t, rctrl.Grant(db, RoleAdmin, admin.Address()))
			assert.Nil(t, rctrl.Grant(db, RoleDistributor, distributor.Address()))
			assert.Nil(t, gconf.Save(db, packageName, &Configuration{Metadata: meta, Owner: owner.Address()}))

			lctrl := ledger.NewController()
			_, err := lctrl.CreateToken(db, "USDC")
			assert.Nil(t, err)
			assert.Nil(t, lctrl.Mint(ctx, db, token, funder.Address(), 5000))

			tr := NewTreasury(lctrl)
			assert.Nil(t, tr.AddToken(db, token))
			_, err = tr.AddRecipient(db, "development", rcpt, 6000)
			assert.Nil(t, err)
			assert.Nil(t, tr.Receive(ctx, db, funder.Address(), token, 1000, "direct"))

			auth := &tollgatetest.CtxAuth{Key: "auth"}
			rt := app.NewRouter()
			RegisterRoutes(rt, auth, roles.NewChecker(auth, rctrl), tr)

			ctx = auth.SetConditions(ctx, tc.Signer)
			tx := &tollgatetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			if _, err := rt.Check(ctx, cache, tx); !tc.WantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()

			cache = db.CacheWrap()
			if _, err := rt.Deliver(ctx, cache, tx); !tc.WantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.WantDeliverErr == nil {
				assert.Nil(t, cache.Write())
			} else {
				cache.Discard()
			}

			tb, err := tr.Balance(db, token)
			assert.Nil(t, err)
			assert.Equal(t, tc.WantTracked, tb.Balance)
		})
	}
}

func TestGenesis(t *testing.T) {
	db := store.MemStore()
	lctrl := ledger.NewController()
	token, err := lctrl.CreateToken(db, "USDC")
	assert.Nil(t, err)

	opts := tollgate.Options{
		"treasury": []byte(`{
			"tokens": ["` + token.String() + `"],
			"recipients": [
				{"name": "development", "address": "0102030405060708090a0b0c0d0e0f1011121314", "allocation_bps": 7000},
				{"name": "operations", "address": "1102030405060708090a0b0c0d0e0f1011121314", "allocation_bps": 3000}
			]
		}`),
	}
	assert.Nil(t, (&Initializer{Ledger: lctrl}).FromGenesis(context.Background(), opts, db))

	tr := NewTreasury(lctrl)
	tb, err := tr.Balance(db, token)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), tb.Balance)

	total, err := tr.AllocatedBps(db)
	assert.Nil(t, err)
	assert.Equal(t, uint32(10000), total)
}

func TestGenesisRejectsOverAllocation(t *testing.T) {
	db := store.MemStore()
	opts := tollgate.Options{
		"treasury": []byte(`{
			"recipients": [
				{"name": "development", "address": "0102030405060708090a0b0c0d0e0f1011121314", "allocation_bps": 7000},
				{"name": "operations", "address": "1102030405060708090a0b0c0d0e0f1011121314", "allocation_bps": 3001}
			]
		}`),
	}
	err := (&Initializer{Ledger: ledger.NewController()}).FromGenesis(context.Background(), opts, db)
	assert.IsErr(t, errors.ErrConfiguration, err)
}
