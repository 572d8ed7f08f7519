package gconf

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/store"
	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
)

func TestGenesisInitializer(t *testing.T) {
	const genesis = `
		{
			"conf": {
				"first": {
					"metadata": {"schema": 1},
					"owner": "d2a1f84143a9754057e42db6d6c9f986fe0ff673",
					"num": 321,
					"str": "hello"
				},
				"second": {
					"metadata": {"schema": 1},
					"owner": "bech32:tiov162slss2r4965q4ly9kmddj0esmlqlannkkelm5"
				}
			}
		}
	`

	var opts tollgate.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}

	db := store.MemStore()
	ini := Initializer{
		Configs: map[string]Configuration{
			"first":  &myconfig{},
			"second": &myconfig{},
		},
	}
	if err := ini.FromGenesis(context.Background(), opts, db); err != nil {
		t.Fatalf("cannot load genesis: %+v", err)
	}

	var first myconfig
	assert.Nil(t, Load(db, "first", &first))
	assert.Equal(t, int64(321), first.Num)
	assert.Equal(t, "hello", first.Str)
	assert.Equal(t, "D2A1F84143A9754057E42DB6D6C9F986FE0FF673", first.Owner.String())

	var second myconfig
	assert.Nil(t, Load(db, "second", &second))
	assert.Equal(t, first.Owner, second.Owner)
}

func TestGenesisInitializerMissingConfiguration(t *testing.T) {
	opts := tollgate.Options{
		"conf": []byte(`{"first": {"metadata": {"schema": 1}, "owner": "d2a1f84143a9754057e42db6d6c9f986fe0ff673"}}`),
	}
	ini := Initializer{
		Configs: map[string]Configuration{
			"first":  &myconfig{},
			"second": &myconfig{},
		},
	}
	db := store.MemStore()
	if err := ini.FromGenesis(context.Background(), opts, db); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found error, got %+v", err)
	}
	// The configuration that was present is stored anyway. The whole
	// genesis fails, so the caller discards the state.
	var first myconfig
	assert.Nil(t, Load(db, "first", &first))
}

func TestGenesisInitializerInvalidConfiguration(t *testing.T) {
	opts := tollgate.Options{
		"conf": []byte(`{"first": {"metadata": {"schema": 1}, "owner": "d2a1f84143a9754057e42db6d6c9f986fe0ff673", "num": -4}}`),
	}
	ini := Initializer{Configs: map[string]Configuration{"first": &myconfig{}}}
	if err := ini.FromGenesis(context.Background(), opts, store.MemStore()); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}
