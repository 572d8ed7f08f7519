package utils

import (
	"testing"

	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/store"
	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
)

func TestPauser(t *testing.T) {
	db := store.MemStore()
	p := NewPauser("treasury")

	assert.Nil(t, p.RequireActive(db))
	if err := p.Unpause(db); !errors.ErrState.Is(err) {
		t.Fatalf("want state error, got %+v", err)
	}

	assert.Nil(t, p.Pause(db))
	if err := p.RequireActive(db); !errors.ErrPaused.Is(err) {
		t.Fatalf("want paused error, got %+v", err)
	}
	if err := p.Pause(db); !errors.ErrPaused.Is(err) {
		t.Fatalf("want paused error, got %+v", err)
	}
	// Switches are independent.
	assert.Nil(t, NewPauser("rewards").RequireActive(db))

	assert.Nil(t, p.Unpause(db))
	assert.Nil(t, p.RequireActive(db))
}
