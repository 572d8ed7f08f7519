package utils_test

import (
	"context"
	"testing"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/app"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/store"
	"github.com/tollgate-dao/tollgate/tollgatetest"
	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
	"github.com/tollgate-dao/tollgate/x/utils"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		stack tollgate.Handler
		tx    tollgate.Tx
		err   *errors.Error
		tags  []common.KVPair
	}{
		"simple call": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&tollgatetest.Handler{},
			),
			tx:   &tollgatetest.Tx{Msg: &tollgatetest.Msg{RoutePath: "treasury/distribute"}},
			tags: []common.KVPair{stringTag(utils.ActionKey, "treasury/distribute")},
		},
		"passes through error": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&tollgatetest.Handler{DeliverErr: errors.ErrHuman},
			),
			tx:  &tollgatetest.Tx{Msg: &tollgatetest.Msg{RoutePath: "treasury/distribute"}},
			err: errors.ErrHuman,
		},
		"message error is returned early": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&tollgatetest.Handler{},
			),
			tx:  &tollgatetest.Tx{Err: errors.ErrMsg},
			err: errors.ErrMsg,
		},
		"tags are additive": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&tollgatetest.Handler{
					DeliverResult: tollgate.DeliverResult{Tags: []common.KVPair{stringTag("cycle", "1")}},
				},
			),
			tx:   &tollgatetest.Tx{Msg: &tollgatetest.Msg{RoutePath: "rewards/distribute"}},
			tags: []common.KVPair{stringTag("cycle", "1"), stringTag(utils.ActionKey, "rewards/distribute")},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()

			res, err := tc.stack.Deliver(ctx, db, tc.tx)
			if tc.err != nil {
				if !tc.err.Is(err) {
					t.Fatalf("Unexpected error type returned: %v", err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, len(tc.tags), len(res.Tags))
			for i := range tc.tags {
				assert.Equal(t, string(tc.tags[i].Key), string(res.Tags[i].Key))
				assert.Equal(t, string(tc.tags[i].Value), string(res.Tags[i].Value))
			}
		})
	}
}
