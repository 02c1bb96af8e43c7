// Package store provides the key/value storage the reference ledger runs on:
// an iavl tree over a tm-db database for committed state, cache layers for
// per-block and per-transaction branches, and prefix views for keepers.
package store

// KVStore is the minimal storage contract the keepers need.
type KVStore interface {
	Get(key []byte) []byte
	Has(key []byte) bool
	Set(key, value []byte)
	Delete(key []byte)
}

// CacheWrapper can branch into a cache layer that is written back on demand.
type CacheWrapper interface {
	KVStore
	CacheWrap() *CacheStore
}

// CommitID identifies a committed version of the tree.
type CommitID struct {
	Version int64
	Hash    []byte
}

func (cid CommitID) IsZero() bool {
	return cid.Version == 0 && len(cid.Hash) == 0
}

// PrefixStore scopes every key under a fixed prefix of its parent.
type PrefixStore struct {
	parent KVStore
	prefix []byte
}

var _ KVStore = PrefixStore{}

func NewPrefixStore(parent KVStore, prefix []byte) PrefixStore {
	return PrefixStore{parent: parent, prefix: prefix}
}

func (s PrefixStore) key(key []byte) []byte {
	res := make([]byte, len(s.prefix)+len(key))
	copy(res, s.prefix)
	copy(res[len(s.prefix):], key)
	return res
}

func (s PrefixStore) Get(key []byte) []byte {
	return s.parent.Get(s.key(key))
}

func (s PrefixStore) Has(key []byte) bool {
	return s.parent.Has(s.key(key))
}

func (s PrefixStore) Set(key, value []byte) {
	s.parent.Set(s.key(key), value)
}

func (s PrefixStore) Delete(key []byte) {
	s.parent.Delete(s.key(key))
}
