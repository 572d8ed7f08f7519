package roles

import (
	"sort"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/orm"
	"github.com/tollgate-dao/tollgate/x"
)

// Controller manages role assignments.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller using the default assignment bucket.
func NewController() *Controller {
	return &Controller{bucket: NewAssignmentBucket()}
}

// HasRole returns true if the address holds the role.
func (c *Controller) HasRole(db tollgate.ReadOnlyKVStore, role string, addr tollgate.Address) (bool, error) {
	switch err := c.bucket.Has(db, assignmentKey(role, addr)); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, errors.Wrap(err, "cannot load assignment")
	}
}

// Grant assigns the role to the address. Granting a role twice is rejected.
func (c *Controller) Grant(db tollgate.KVStore, role string, addr tollgate.Address) error {
	ok, err := c.HasRole(db, role, addr)
	if err != nil {
		return err
	}
	if ok {
		return errors.Wrapf(errors.ErrDuplicate, "%s already holds %q", addr, role)
	}
	a := &Assignment{
		Metadata: &tollgate.Metadata{Schema: 1},
		Role:     role,
		Address:  addr,
	}
	if _, err := c.bucket.Put(db, assignmentKey(role, addr), a); err != nil {
		return errors.Wrap(err, "cannot store assignment")
	}
	return nil
}

// Revoke removes the role from the address.
func (c *Controller) Revoke(db tollgate.KVStore, role string, addr tollgate.Address) error {
	if err := c.bucket.Delete(db, assignmentKey(role, addr)); err != nil {
		return errors.Wrapf(err, "%s does not hold %q", addr, role)
	}
	return nil
}

// RolesOf returns the sorted names of all roles held by the address.
func (c *Controller) RolesOf(db tollgate.ReadOnlyKVStore, addr tollgate.Address) ([]string, error) {
	var found []Assignment
	if _, err := c.bucket.ByIndex(db, "address", addr, &found); err != nil {
		return nil, errors.Wrap(err, "cannot query assignments")
	}
	names := make([]string, len(found))
	for i, a := range found {
		names[i] = a.Role
	}
	sort.Strings(names)
	return names, nil
}

// Authorizer is the authorization check composed at the start of every
// mutating operation.
type Authorizer interface {
	// Authorize returns the address of a transaction signer holding the
	// role, or ErrUnauthorized.
	Authorize(ctx tollgate.Context, db tollgate.ReadOnlyKVStore, role string) (tollgate.Address, error)
}

// Checker implements Authorizer using the role assignment store.
type Checker struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ Authorizer = (*Checker)(nil)

// NewChecker returns an Authorizer resolving signers with the given
// authenticator.
func NewChecker(auth x.Authenticator, ctrl *Controller) *Checker {
	return &Checker{auth: auth, ctrl: ctrl}
}

func (c *Checker) Authorize(ctx tollgate.Context, db tollgate.ReadOnlyKVStore, role string) (tollgate.Address, error) {
	for _, addr := range x.GetAddresses(ctx, c.auth) {
		ok, err := c.ctrl.HasRole(db, role, addr)
		if err != nil {
			return nil, err
		}
		if ok {
			return addr, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrUnauthorized, "role %q required", role)
}
