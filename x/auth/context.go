package auth

import (
	"context"

	"github.com/tollgate-dao/tollgate"
)

type contextKey int // local to the auth module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx tollgate.Context, signers []tollgate.Condition) tollgate.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// GetSigners returns who signed the current Context.
// May be empty.
func GetSigners(ctx tollgate.Context) []tollgate.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]tollgate.Condition)
	return val
}

// Authenticate implements x.Authenticator and provides
// authentication based on the signers of the transaction.
type Authenticate struct{}

// GetConditions returns the signers of the transaction.
func (Authenticate) GetConditions(ctx tollgate.Context) []tollgate.Condition {
	return GetSigners(ctx)
}

// HasAddress returns true if the given address signed the transaction.
func (Authenticate) HasAddress(ctx tollgate.Context, addr tollgate.Address) bool {
	for _, s := range GetSigners(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
