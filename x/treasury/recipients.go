package treasury

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/coin"
	"github.com/tollgate-dao/tollgate/errors"
)

// AddRecipient registers an active recipient and returns its ID. The sum
// of active allocations must not exceed 100%.
func (t *Treasury) AddRecipient(db tollgate.KVStore, name string, addr tollgate.Address, allocationBps uint32) ([]byte, error) {
	r := &Recipient{
		Metadata:      &tollgate.Metadata{Schema: 1},
		Name:          name,
		Address:       addr,
		AllocationBps: allocationBps,
		Active:        true,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	keys, err := t.recipients.ByIndex(db, "address", addr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "cannot query recipients")
	}
	if len(keys) != 0 {
		return nil, errors.Wrapf(errors.ErrDuplicate, "recipient %s", addr)
	}
	if err := t.checkAllocation(db, nil, allocationBps); err != nil {
		return nil, err
	}
	key, err := t.recipients.Put(db, nil, r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store recipient")
	}
	return key, nil
}

// UpdateRecipient changes the allocation of an active recipient and,
// unless addr is empty, its address.
func (t *Treasury) UpdateRecipient(db tollgate.KVStore, id []byte, addr tollgate.Address, allocationBps uint32) error {
	r, err := t.activeRecipient(db, id)
	if err != nil {
		return err
	}
	if len(addr) != 0 && !addr.Equals(r.Address) {
		keys, err := t.recipients.ByIndex(db, "address", addr, nil)
		if err != nil {
			return errors.Wrap(err, "cannot query recipients")
		}
		if len(keys) != 0 {
			return errors.Wrapf(errors.ErrDuplicate, "recipient %s", addr)
		}
		r.Address = addr
	}
	if err := validateAllocation(allocationBps); err != nil {
		return err
	}
	if err := t.checkAllocation(db, id, allocationBps); err != nil {
		return err
	}
	r.AllocationBps = allocationBps
	if _, err := t.recipients.Put(db, id, r); err != nil {
		return errors.Wrap(err, "cannot store recipient")
	}
	return nil
}

// RemoveRecipient deactivates a recipient. The entry is kept for the
// audit trail.
func (t *Treasury) RemoveRecipient(db tollgate.KVStore, id []byte) error {
	r, err := t.activeRecipient(db, id)
	if err != nil {
		return err
	}
	r.Active = false
	if _, err := t.recipients.Put(db, id, r); err != nil {
		return errors.Wrap(err, "cannot store recipient")
	}
	return nil
}

// AllocatedBps returns the sum of active allocations.
func (t *Treasury) AllocatedBps(db tollgate.ReadOnlyKVStore) (uint32, error) {
	return t.allocatedExcept(db, nil)
}

// Recipient returns a recipient by ID, active or not.
func (t *Treasury) Recipient(db tollgate.ReadOnlyKVStore, id []byte) (*Recipient, error) {
	var r Recipient
	if err := t.recipients.One(db, id, &r); err != nil {
		return nil, errors.Wrap(err, "recipient")
	}
	return &r, nil
}

func (t *Treasury) activeRecipient(db tollgate.ReadOnlyKVStore, id []byte) (*Recipient, error) {
	r, err := t.Recipient(db, id)
	if err != nil {
		return nil, err
	}
	if !r.Active {
		return nil, errors.Wrap(errors.ErrNotFound, "recipient was removed")
	}
	return r, nil
}

// checkAllocation returns an error if replacing the allocation of the
// recipient (or adding one when id is nil) exceeds 100%.
func (t *Treasury) checkAllocation(db tollgate.ReadOnlyKVStore, id []byte, allocationBps uint32) error {
	others, err := t.allocatedExcept(db, id)
	if err != nil {
		return err
	}
	if _, err := coin.SumBps(others, allocationBps); err != nil {
		return errors.Wrap(err, "recipient allocations")
	}
	return nil
}

func (t *Treasury) allocatedExcept(db tollgate.ReadOnlyKVStore, id []byte) (uint32, error) {
	recipients, keys, err := t.activeRecipients(db)
	if err != nil {
		return 0, err
	}
	var total uint32
	for i, r := range recipients {
		if id != nil && string(keys[i]) == string(id) {
			continue
		}
		total += r.AllocationBps
	}
	return total, nil
}

// activeRecipients returns active recipients in registration order,
// together with their IDs.
func (t *Treasury) activeRecipients(db tollgate.ReadOnlyKVStore) ([]*Recipient, [][]byte, error) {
	all, keys, err := t.Recipients(db)
	if err != nil {
		return nil, nil, err
	}
	var (
		active     []*Recipient
		activeKeys [][]byte
	)
	for i, r := range all {
		if r.Active {
			active = append(active, r)
			activeKeys = append(activeKeys, keys[i])
		}
	}
	return active, activeKeys, nil
}

// Recipients returns all recipients, including removed ones, in
// registration order.
func (t *Treasury) Recipients(db tollgate.ReadOnlyKVStore) ([]*Recipient, [][]byte, error) {
	it, err := t.recipients.PrefixScan(db, nil, false)
	if err != nil {
		return nil, nil, errors.Wrap(err, "scan")
	}
	defer it.Release()
	var (
		res  []*Recipient
		keys [][]byte
	)
	for {
		var r Recipient
		switch key, err := it.LoadNext(&r); {
		case err == nil:
			res = append(res, &r)
			keys = append(keys, key)
		case errors.ErrIteratorDone.Is(err):
			return res, keys, nil
		default:
			return nil, nil, err
		}
	}
}
