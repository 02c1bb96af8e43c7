package store

import (
	"github.com/pkg/errors"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

const defaultIAVLCacheSize = 10000

var _ CacheWrapper = (*IavlStore)(nil)

// IavlStore is the committed state. Writes land in the working tree and
// become durable on Commit; Rollback discards everything since the last one.
type IavlStore struct {
	tree *iavl.MutableTree
}

// LoadIavlStore opens the latest version of the tree persisted in db.
func LoadIavlStore(db dbm.DB) (*IavlStore, error) {
	tree := iavl.NewMutableTree(db, defaultIAVLCacheSize)
	if _, err := tree.Load(); err != nil {
		return nil, errors.Wrap(err, "failed to load iavl tree")
	}
	return &IavlStore{tree: tree}, nil
}

// NewMemIavlStore is an IavlStore backed by an in-memory database.
func NewMemIavlStore() *IavlStore {
	st, err := LoadIavlStore(dbm.NewMemDB())
	if err != nil {
		// an empty MemDB has nothing to load
		panic(err)
	}
	return st
}

func (st *IavlStore) Get(key []byte) []byte {
	_, value := st.tree.Get(key)
	return value
}

func (st *IavlStore) Has(key []byte) bool {
	return st.tree.Has(key)
}

func (st *IavlStore) Set(key, value []byte) {
	if value == nil {
		panic("value is nil")
	}
	st.tree.Set(key, value)
}

func (st *IavlStore) Delete(key []byte) {
	st.tree.Remove(key)
}

func (st *IavlStore) CacheWrap() *CacheStore {
	return NewCacheStore(st)
}

// Commit saves a new version of the tree.
func (st *IavlStore) Commit() (CommitID, error) {
	hash, version, err := st.tree.SaveVersion()
	if err != nil {
		return CommitID{}, errors.Wrap(err, "failed to save iavl version")
	}
	return CommitID{Version: version, Hash: hash}, nil
}

// LastCommitID returns the identity of the latest saved version.
func (st *IavlStore) LastCommitID() CommitID {
	return CommitID{Version: st.tree.Version(), Hash: st.tree.Hash()}
}

// Rollback drops all uncommitted writes.
func (st *IavlStore) Rollback() {
	st.tree.Rollback()
}
