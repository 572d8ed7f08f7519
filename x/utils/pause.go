package utils

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// Pauser is an emergency switch kept in the store. While paused, the
// entry points protected with RequireActive are rejected.
type Pauser struct {
	key []byte
}

// NewPauser returns a switch with the given name.
func NewPauser(name string) Pauser {
	return Pauser{key: []byte("_paused:" + name)}
}

// IsPaused returns true if the switch is on.
func (p Pauser) IsPaused(db tollgate.ReadOnlyKVStore) (bool, error) {
	paused, err := db.Has(p.key)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return paused, nil
}

// RequireActive returns ErrPaused if the switch is on.
func (p Pauser) RequireActive(db tollgate.ReadOnlyKVStore) error {
	paused, err := p.IsPaused(db)
	if err != nil {
		return err
	}
	if paused {
		return errors.Wrapf(errors.ErrPaused, "%s", p.key[len("_paused:"):])
	}
	return nil
}

// Pause turns the switch on. Pausing twice is an error.
func (p Pauser) Pause(db tollgate.KVStore) error {
	if err := p.RequireActive(db); err != nil {
		return err
	}
	if err := db.Set(p.key, []byte{1}); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Unpause turns the switch off. ErrState is returned when not paused.
func (p Pauser) Unpause(db tollgate.KVStore) error {
	paused, err := p.IsPaused(db)
	if err != nil {
		return err
	}
	if !paused {
		return errors.Wrap(errors.ErrState, "not paused")
	}
	if err := db.Delete(p.key); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
