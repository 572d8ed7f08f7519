package store

import "github.com/tollgate-dao/tollgate"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = tollgate.ReadOnlyKVStore
	SetDeleter       = tollgate.SetDeleter
	KVStore          = tollgate.KVStore
	Batch            = tollgate.Batch
	Iterator         = tollgate.Iterator
	CacheableKVStore = tollgate.CacheableKVStore
	KVCacheWrap      = tollgate.KVCacheWrap
	CommitKVStore    = tollgate.CommitKVStore
	CommitID         = tollgate.CommitID
)

// Model groups together key and value to return
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}
