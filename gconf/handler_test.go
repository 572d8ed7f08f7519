package gconf

import (
	"context"
	"testing"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/store"
	"github.com/tollgate-dao/tollgate/tollgatetest"
	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
)

func TestUpdateConfigurationHandler(t *testing.T) {
	cond := tollgatetest.NewCondition()
	admin := tollgatetest.NewCondition()
	newOwner := tollgatetest.NewAddress()
	meta := &tollgate.Metadata{Schema: 1}

	cases := map[string]struct {
		// If Init is provided, initialize the database before running
		// handler code. Use nil to not provide initial state.
		Init *myconfig
		// InitAdmin if set is used as the creation only admin.
		InitAdmin tollgate.Address

		Msg            tollgate.Msg
		MsgConditions  []tollgate.Condition
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error

		// When not nil database state will be tested to contain the
		// exact version of the configuration.
		WantConfig *myconfig
	}{
		"success": {
			Init: &myconfig{Metadata: meta, Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg: &myconfigMsg{
				Metadata: meta,
				Patch:    &myconfig{Num: 333, Str: "boing!"},
			},
			MsgConditions: []tollgate.Condition{cond},
			WantConfig:    &myconfig{Metadata: meta, Owner: cond.Address(), Num: 333, Str: "boing!"},
		},
		"owner can hand over the configuration": {
			Init: &myconfig{Metadata: meta, Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg: &myconfigMsg{
				Metadata: meta,
				Patch:    &myconfig{Owner: newOwner},
			},
			MsgConditions: []tollgate.Condition{cond},
			WantConfig:    &myconfig{Metadata: meta, Owner: newOwner, Num: 5125, Str: "foobar"},
		},
		"message must be signed by the configuration owner": {
			Init: &myconfig{Metadata: meta, Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg: &myconfigMsg{
				Metadata: meta,
				Patch:    &myconfig{Num: 1},
			},
			MsgConditions:  []tollgate.Condition{tollgatetest.NewCondition()},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
			WantConfig:     &myconfig{Metadata: meta, Owner: cond.Address(), Num: 5125, Str: "foobar"},
		},
		"zero values are not updating the configuration": {
			Init: &myconfig{Metadata: meta, Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg: &myconfigMsg{
				Metadata: meta,
				Patch:    &myconfig{Str: "only text"},
			},
			MsgConditions: []tollgate.Condition{cond},
			WantConfig:    &myconfig{Metadata: meta, Owner: cond.Address(), Num: 5125, Str: "only text"},
		},
		"listed fields are cleared": {
			Init: &myconfig{Metadata: meta, Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg: &myconfigMsg{
				Metadata: meta,
				Patch:    &myconfig{Str: "new"},
				Clear:    []string{"Num"},
			},
			MsgConditions: []tollgate.Condition{cond},
			WantConfig:    &myconfig{Metadata: meta, Owner: cond.Address(), Str: "new"},
		},
		"owner cannot be cleared": {
			Init: &myconfig{Metadata: meta, Owner: cond.Address(), Num: 5125},
			Msg: &myconfigMsg{
				Metadata: meta,
				Patch:    &myconfig{Num: 1},
				Clear:    []string{"Owner"},
			},
			MsgConditions:  []tollgate.Condition{cond},
			WantCheckErr:   errors.ErrInput,
			WantDeliverErr: errors.ErrInput,
		},
		"unknown fields cannot be cleared": {
			Init: &myconfig{Metadata: meta, Owner: cond.Address(), Num: 5125},
			Msg: &myconfigMsg{
				Metadata: meta,
				Patch:    &myconfig{Num: 1},
				Clear:    []string{"NoSuchField"},
			},
			MsgConditions:  []tollgate.Condition{cond},
			WantCheckErr:   errors.ErrInput,
			WantDeliverErr: errors.ErrInput,
		},
		"invalid configuration is not accepted": {
			Init: &myconfig{Metadata: meta, Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg: &myconfigMsg{
				Metadata: meta,
				Patch:    &myconfig{Owner: tollgate.Address("short")},
			},
			MsgConditions:  []tollgate.Condition{cond},
			WantCheckErr:   errors.ErrInput,
			WantDeliverErr: errors.ErrInput,
		},
		"missing patch is rejected": {
			Init:           &myconfig{Metadata: meta, Owner: cond.Address()},
			Msg:            &myconfigMsg{Metadata: meta},
			MsgConditions:  []tollgate.Condition{cond},
			WantCheckErr:   errors.ErrEmpty,
			WantDeliverErr: errors.ErrEmpty,
		},
		"missing configuration cannot be created without an admin": {
			Msg: &myconfigMsg{
				Metadata: meta,
				Patch:    &myconfig{Metadata: meta, Owner: cond.Address()},
			},
			MsgConditions:  []tollgate.Condition{cond},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"missing configuration created by the init admin": {
			InitAdmin: admin.Address(),
			Msg: &myconfigMsg{
				Metadata: meta,
				Patch:    &myconfig{Metadata: meta, Owner: cond.Address(), Num: 7},
			},
			MsgConditions: []tollgate.Condition{admin},
			WantConfig:    &myconfig{Metadata: meta, Owner: cond.Address(), Num: 7},
		},
		"init admin must sign the creation": {
			InitAdmin: admin.Address(),
			Msg: &myconfigMsg{
				Metadata: meta,
				Patch:    &myconfig{Metadata: meta, Owner: cond.Address(), Num: 7},
			},
			MsgConditions:  []tollgate.Condition{cond},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()

			if tc.Init != nil {
				if err := Save(db, "mypkg", tc.Init); err != nil {
					t.Fatalf("cannot save initial configuration: %s", err)
				}
			}

			var initAdmin func(tollgate.ReadOnlyKVStore) (tollgate.Address, error)
			if tc.InitAdmin != nil {
				initAdmin = func(tollgate.ReadOnlyKVStore) (tollgate.Address, error) {
					return tc.InitAdmin, nil
				}
			}

			var c myconfig
			auth := &tollgatetest.CtxAuth{Key: "auth"}
			handler := NewUpdateConfigurationHandler("mypkg", &c, auth, initAdmin)

			ctx := tollgate.WithHeight(context.Background(), 999)
			ctx = tollgate.WithChainID(ctx, "mychain-123")
			ctx = auth.SetConditions(ctx, tc.MsgConditions...)

			tx := &tollgatetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			if _, err := handler.Check(ctx, cache, tx); !tc.WantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()

			if _, err := handler.Deliver(ctx, db, tx); !tc.WantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			if tc.WantConfig != nil {
				var got myconfig
				if err := Load(db, "mypkg", &got); err != nil {
					t.Fatalf("cannot load configuration from the database: %s", err)
				}
				assert.Equal(t, tc.WantConfig, &got)
			}
		})
	}
}

func TestPatchRejectsDifferentType(t *testing.T) {
	other := &otherconfig{}
	if err := patch(&myconfig{}, other, nil); !errors.ErrMsg.Is(err) {
		t.Fatalf("want message error, got %+v", err)
	}
}

type otherconfig struct {
	myconfig
}
