package rewards

import (
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/coin"
	"github.com/tollgate-dao/tollgate/errors"
)

// AddParticipant registers an active participant. A removed participant
// can be added again. The sum of active shares must not exceed 100%.
func (d *Distributor) AddParticipant(db tollgate.KVStore, addr tollgate.Address, sharesBps uint32) error {
	p := &Participant{
		Metadata:  &tollgate.Metadata{Schema: 1},
		Address:   addr,
		Active:    true,
		SharesBps: sharesBps,
	}
	if err := p.Validate(); err != nil {
		return err
	}
	switch old, err := d.Participant(db, addr); {
	case err == nil:
		if old.Active {
			return errors.Wrapf(errors.ErrDuplicate, "participant %s", addr)
		}
		p.LastClaim = old.LastClaim
	case !errors.ErrNotFound.Is(err):
		return err
	}
	if err := d.checkShares(db, addr, sharesBps); err != nil {
		return err
	}
	if _, err := d.participants.Put(db, addr, p); err != nil {
		return errors.Wrap(err, "cannot store participant")
	}
	return nil
}

// UpdateParticipant changes the share of an active participant.
func (d *Distributor) UpdateParticipant(db tollgate.KVStore, addr tollgate.Address, sharesBps uint32) error {
	if err := validateShares(sharesBps); err != nil {
		return err
	}
	p, err := d.activeParticipant(db, addr)
	if err != nil {
		return err
	}
	if err := d.checkShares(db, addr, sharesBps); err != nil {
		return err
	}
	p.SharesBps = sharesBps
	if _, err := d.participants.Put(db, addr, p); err != nil {
		return errors.Wrap(err, "cannot store participant")
	}
	return nil
}

// RemoveParticipant deactivates a participant. Its claims are kept.
func (d *Distributor) RemoveParticipant(db tollgate.KVStore, addr tollgate.Address) error {
	p, err := d.activeParticipant(db, addr)
	if err != nil {
		return err
	}
	p.Active = false
	if _, err := d.participants.Put(db, addr, p); err != nil {
		return errors.Wrap(err, "cannot store participant")
	}
	return nil
}

// Participant returns a participant, active or not.
func (d *Distributor) Participant(db tollgate.ReadOnlyKVStore, addr tollgate.Address) (*Participant, error) {
	var p Participant
	if err := d.participants.One(db, addr, &p); err != nil {
		return nil, errors.Wrapf(err, "participant %s", addr)
	}
	return &p, nil
}

func (d *Distributor) activeParticipant(db tollgate.ReadOnlyKVStore, addr tollgate.Address) (*Participant, error) {
	p, err := d.Participant(db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrNotParticipant, "%s", addr)
	case err != nil:
		return nil, err
	case !p.Active:
		return nil, errors.Wrapf(ErrNotParticipant, "%s was removed", addr)
	}
	return p, nil
}

// Participants returns all participants, including removed ones.
func (d *Distributor) Participants(db tollgate.ReadOnlyKVStore) ([]*Participant, error) {
	it, err := d.participants.PrefixScan(db, nil, false)
	if err != nil {
		return nil, errors.Wrap(err, "scan")
	}
	defer it.Release()
	var res []*Participant
	for {
		var p Participant
		switch _, err := it.LoadNext(&p); {
		case err == nil:
			res = append(res, &p)
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// TotalShares returns the sum of active shares.
func (d *Distributor) TotalShares(db tollgate.ReadOnlyKVStore) (uint32, error) {
	return d.sharesExcept(db, nil)
}

// checkShares returns an error if setting the share of addr exceeds 100%.
func (d *Distributor) checkShares(db tollgate.ReadOnlyKVStore, addr tollgate.Address, sharesBps uint32) error {
	others, err := d.sharesExcept(db, addr)
	if err != nil {
		return err
	}
	if _, err := coin.SumBps(others, sharesBps); err != nil {
		return errors.Wrap(err, "participant shares")
	}
	return nil
}

func (d *Distributor) sharesExcept(db tollgate.ReadOnlyKVStore, addr tollgate.Address) (uint32, error) {
	all, err := d.Participants(db)
	if err != nil {
		return 0, err
	}
	var total uint32
	for _, p := range all {
		if !p.Active || (addr != nil && p.Address.Equals(addr)) {
			continue
		}
		total += p.SharesBps
	}
	return total, nil
}
