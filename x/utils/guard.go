package utils

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// Guard is a non-reentrancy lock kept in the store. A section protected by
// a guard cannot be entered again until the first caller left it, even
// when the nested call comes from a different handler sharing the same
// store (for example a ledger receive hook).
//
// Because the lock is a store entry it is part of the transaction state. A
// failed transaction is discarded together with any lock it left behind.
type Guard struct {
	key []byte
}

// NewGuard returns a guard with the given name. Sections guarded with the
// same name exclude each other.
func NewGuard(name string) Guard {
	return Guard{key: []byte("_guard:" + name)}
}

// Enter acquires the lock. ErrReentrancy is returned if it is already held.
func (g Guard) Enter(db tollgate.KVStore) error {
	held, err := db.Has(g.key)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if held {
		return errors.Wrapf(ErrReentrancy, "%s", g.key)
	}
	if err := db.Set(g.key, []byte{1}); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Exit releases the lock.
func (g Guard) Exit(db tollgate.KVStore) error {
	if err := db.Delete(g.key); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Run executes fn while holding the lock. The lock is released whether fn
// fails or not.
func (g Guard) Run(db tollgate.KVStore, fn func() error) error {
	if err := g.Enter(db); err != nil {
		return err
	}
	fnErr := fn()
	if err := g.Exit(db); err != nil && fnErr == nil {
		return err
	}
	return fnErr
}
