package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newMemStore() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestBTreeCacheGetSet(t *testing.T) {
	NewTestSuite(newMemStore).GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	NewTestSuite(newMemStore).CacheConflicts(t)
}

func TestBTreeFuzzIterator(t *testing.T) {
	NewTestSuite(newMemStore).FuzzIterator(t)
}

func TestBTreeIteratorWithConflicts(t *testing.T) {
	NewTestSuite(newMemStore).IteratorWithConflicts(t)
}

func TestBTreeCacheableOverPlainStore(t *testing.T) {
	base := BTreeCacheable{EmptyKVStore{}}
	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("k"), []byte("v")))

	got, err := cache.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)

	// The empty store drops every write.
	require.NoError(t, cache.Write())
	got, err = base.Get([]byte("k"))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLogableStoreRecordsOperations(t *testing.T) {
	kv, ops := LogableStore()
	require.NoError(t, kv.Set([]byte("a"), []byte("1")))
	require.NoError(t, kv.Delete([]byte("b")))
	require.Equal(t, []Op{SetOp([]byte("a"), []byte("1")), DelOp([]byte("b"))}, ops.ShowOps())
}
