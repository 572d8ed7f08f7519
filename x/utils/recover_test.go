package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/store"
)

func TestRecovery(t *testing.T) {
	var h panicHandler
	r := NewRecovery()

	ctx := context.Background()
	s := store.MemStore()

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { _, _ = h.Check(ctx, s, nil) })
	assert.Panics(t, func() { _, _ = h.Deliver(ctx, s, nil) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))

	_, err = r.Deliver(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
}

type panicHandler struct{}

var _ tollgate.Handler = panicHandler{}

func (p panicHandler) Check(ctx tollgate.Context, store tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	panic("check panic")
}

func (p panicHandler) Deliver(ctx tollgate.Context, store tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	panic("deliver panic")
}
