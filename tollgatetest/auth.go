package tollgatetest

import (
	"context"
	"fmt"

	"github.com/tollgate-dao/tollgate"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer tollgate.Condition

	// Signers represents an authentication of multiple signers.
	Signers []tollgate.Condition
}

func (a *Auth) GetConditions(tollgate.Context) []tollgate.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx tollgate.Context, addr tollgate.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx tollgate.Context, permissions ...tollgate.Condition) tollgate.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx tollgate.Context) []tollgate.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]tollgate.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []tollgate.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx tollgate.Context, addr tollgate.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
