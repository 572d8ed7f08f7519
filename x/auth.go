package x

import (
	"github.com/tollgate-dao/tollgate"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/auth for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(tollgate.Context) []tollgate.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(tollgate.Context, tollgate.Address) bool
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx tollgate.Context, auth Authenticator) []tollgate.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]tollgate.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx tollgate.Context, auth Authenticator) tollgate.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}
