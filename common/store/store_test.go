package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/bnb-chain/cosmos-node/common/store"
)

func TestCacheStoreWriteAndDiscard(t *testing.T) {
	root := store.NewMemIavlStore()
	root.Set([]byte("a"), []byte("1"))

	branch := root.CacheWrap()
	require.Equal(t, []byte("1"), branch.Get([]byte("a")))

	branch.Set([]byte("a"), []byte("2"))
	branch.Set([]byte("b"), []byte("3"))
	require.Equal(t, []byte("1"), root.Get([]byte("a")))
	require.False(t, root.Has([]byte("b")))

	branch.Discard()
	require.Equal(t, []byte("1"), branch.Get([]byte("a")))

	branch.Set([]byte("b"), []byte("3"))
	branch.Delete([]byte("a"))
	require.Nil(t, branch.Get([]byte("a")))
	require.Equal(t, 2, branch.Dirty())

	branch.Write()
	require.False(t, root.Has([]byte("a")))
	require.Equal(t, []byte("3"), root.Get([]byte("b")))
	require.Equal(t, 0, branch.Dirty())
}

type recordingStore struct {
	store.KVStore
	writes []string
}

func (s *recordingStore) Set(key, value []byte) {
	s.writes = append(s.writes, "set "+string(key))
	s.KVStore.Set(key, value)
}

func (s *recordingStore) Delete(key []byte) {
	s.writes = append(s.writes, "del "+string(key))
	s.KVStore.Delete(key)
}

func TestCacheStoreWritesInKeyOrder(t *testing.T) {
	parent := &recordingStore{KVStore: store.NewMemIavlStore()}
	branch := store.NewCacheStore(parent)
	branch.Set([]byte("c"), []byte("1"))
	branch.Set([]byte("a"), []byte("1"))
	branch.Delete([]byte("b"))
	branch.Set([]byte("a"), []byte("2"))

	branch.Write()
	require.Equal(t, []string{"set a", "del b", "set c"}, parent.writes)
	require.Equal(t, []byte("2"), parent.Get([]byte("a")))
}

func TestNestedCacheStore(t *testing.T) {
	root := store.NewMemIavlStore()
	block := root.CacheWrap()
	tx := block.CacheWrap()

	tx.Set([]byte("k"), []byte("v"))
	require.False(t, block.Has([]byte("k")))

	tx.Write()
	require.True(t, block.Has([]byte("k")))
	require.False(t, root.Has([]byte("k")))

	block.Write()
	require.Equal(t, []byte("v"), root.Get([]byte("k")))
}

func TestPrefixStore(t *testing.T) {
	root := store.NewMemIavlStore()
	accounts := store.NewPrefixStore(root, []byte("acc/"))
	balances := store.NewPrefixStore(root, []byte("bal/"))

	accounts.Set([]byte("x"), []byte("1"))
	balances.Set([]byte("x"), []byte("2"))

	require.Equal(t, []byte("1"), accounts.Get([]byte("x")))
	require.Equal(t, []byte("2"), balances.Get([]byte("x")))
	require.Equal(t, []byte("1"), root.Get([]byte("acc/x")))

	accounts.Delete([]byte("x"))
	require.False(t, accounts.Has([]byte("x")))
	require.True(t, balances.Has([]byte("x")))
}

func TestIavlCommitAndRollback(t *testing.T) {
	db := dbm.NewMemDB()
	root, err := store.LoadIavlStore(db)
	require.NoError(t, err)
	require.True(t, root.LastCommitID().IsZero())

	root.Set([]byte("a"), []byte("1"))
	cid, err := root.Commit()
	require.NoError(t, err)
	require.Equal(t, int64(1), cid.Version)
	require.NotEmpty(t, cid.Hash)
	require.Equal(t, cid, root.LastCommitID())

	root.Set([]byte("a"), []byte("2"))
	root.Set([]byte("b"), []byte("3"))
	root.Rollback()
	require.Equal(t, []byte("1"), root.Get([]byte("a")))
	require.False(t, root.Has([]byte("b")))

	reloaded, err := store.LoadIavlStore(db)
	require.NoError(t, err)
	require.Equal(t, []byte("1"), reloaded.Get([]byte("a")))
}
