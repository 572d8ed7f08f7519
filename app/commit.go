package app

import (
	"io"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// CommitStore handles loading from a KVCommitStore, maintaining different
// CacheWraps for Deliver and Check, and returning useful state info.
type CommitStore struct {
	committed tollgate.CommitKVStore
	deliver   tollgate.KVCacheWrap
	check     tollgate.KVCacheWrap
}

// NewCommitStore loads the latest version of the CommitKVStore. It sets up
// the deliver and check caches.
func NewCommitStore(store tollgate.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (tollgate.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates new deliver/check caches.
func (cs *CommitStore) Commit() (tollgate.CommitID, error) {
	// flush deliver to store and discard check
	if err := cs.deliver.Write(); err != nil {
		return tollgate.CommitID{}, err
	}
	cs.check.Discard()

	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// Close releases the committed store if it holds any resources.
// Uncommitted changes are lost.
func (cs *CommitStore) Close() error {
	if c, ok := cs.committed.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Rollback drops all uncommitted changes.
func (cs *CommitStore) Rollback() {
	cs.deliver.Discard()
	cs.check.Discard()
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() tollgate.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() tollgate.CacheableKVStore {
	return cs.deliver
}

//------- storing chainID ---------

// _tg: is a prefix for tollgate internal data
const chainIDKey = "_tg:chainID"

// loadChainID returns the chain id stored if any
func loadChainID(kv tollgate.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv tollgate.KVStore, chainID string) error {
	if !tollgate.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chainId")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chainId")
	}
	return nil
}
