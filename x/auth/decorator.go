/*
Package auth provides the authentication middleware. It moves the signers
declared by a transaction into the context, where the Authenticate
implementation of x.Authenticator finds them.
*/
package auth

import "github.com/tollgate-dao/tollgate"

// Decorator puts the transaction signers into the context before calling
// down the stack.
type Decorator struct{}

var _ tollgate.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

// Check verifies signers before calling down the stack
func (d Decorator) Check(ctx tollgate.Context, store tollgate.KVStore, tx tollgate.Tx, next tollgate.Checker) (*tollgate.CheckResult, error) {
	ctx, err := VerifySigners(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver verifies signers before calling down the stack
func (d Decorator) Deliver(ctx tollgate.Context, store tollgate.KVStore, tx tollgate.Tx, next tollgate.Deliverer) (*tollgate.DeliverResult, error) {
	ctx, err := VerifySigners(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}
