package identity

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/orm"
)

// Controller gives access to the verification registry.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller using the default bucket.
func NewController() *Controller {
	return &Controller{bucket: NewVerificationBucket()}
}

// VerificationLevel returns the level of the address, 0 if unknown.
func (c *Controller) VerificationLevel(db tollgate.ReadOnlyKVStore, addr tollgate.Address) (uint8, error) {
	var v Verification
	switch err := c.bucket.One(db, addr, &v); {
	case err == nil:
		return uint8(v.Level), nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "cannot load verification")
	}
}

// Register sets the verification of an address, replacing any previous
// one.
func (c *Controller) Register(db tollgate.KVStore, v *Verification) error {
	if _, err := c.bucket.Put(db, v.Address, v); err != nil {
		return errors.Wrap(err, "cannot store verification")
	}
	return nil
}

// Revoke removes the verification of an address.
func (c *Controller) Revoke(db tollgate.KVStore, addr tollgate.Address) error {
	if err := c.bucket.Delete(db, addr); err != nil {
		return errors.Wrap(err, "cannot delete verification")
	}
	return nil
}
