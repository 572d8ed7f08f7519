package auth

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// SignedTx represents a transaction that declares its signers. The host
// that builds the transaction is trusted to have verified them.
type SignedTx interface {
	tollgate.Tx

	// GetSigners returns the conditions of everyone that authorized the
	// transaction.
	GetSigners() []tollgate.Condition
}

// UserCondition returns the condition of a named user. Its address is the
// digest of the condition.
func UserCondition(name string) tollgate.Condition {
	return tollgate.NewCondition("auth", "user", []byte(name))
}

// UserAddress returns the address of a named user.
func UserAddress(name string) tollgate.Address {
	return UserCondition(name).Address()
}

// VerifySigners extracts the signers of the transaction and returns a
// context carrying them. A transaction without signers or with a
// malformed signer is rejected.
func VerifySigners(ctx tollgate.Context, tx tollgate.Tx) (tollgate.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%T is not a signed transaction", tx)
	}
	signers := stx.GetSigners()
	if len(signers) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signer")
	}
	for i, s := range signers {
		if err := s.Validate(); err != nil {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "signer %d: %s", i, err)
		}
	}
	return withSigners(ctx, signers), nil
}
