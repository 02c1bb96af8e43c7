package store

import (
	"github.com/google/btree"
)

const cacheDegree = 32

type cValue struct {
	key     string
	value   []byte
	deleted bool
}

func (v *cValue) Less(than btree.Item) bool {
	return v.key < than.(*cValue).key
}

var _ CacheWrapper = (*CacheStore)(nil)

// CacheStore buffers writes on top of a parent store. Nothing reaches the
// parent until Write is called; dropping the CacheStore discards the branch.
//
// CacheStore is not safe for concurrent use.
type CacheStore struct {
	parent KVStore
	cache  *btree.BTree
}

func NewCacheStore(parent KVStore) *CacheStore {
	return &CacheStore{
		parent: parent,
		cache:  btree.New(cacheDegree),
	}
}

func (cs *CacheStore) lookup(key []byte) (*cValue, bool) {
	item := cs.cache.Get(&cValue{key: string(key)})
	if item == nil {
		return nil, false
	}
	return item.(*cValue), true
}

func (cs *CacheStore) Get(key []byte) []byte {
	if v, ok := cs.lookup(key); ok {
		if v.deleted {
			return nil
		}
		return v.value
	}
	return cs.parent.Get(key)
}

func (cs *CacheStore) Has(key []byte) bool {
	return cs.Get(key) != nil
}

func (cs *CacheStore) Set(key, value []byte) {
	if value == nil {
		panic("value is nil")
	}
	cs.cache.ReplaceOrInsert(&cValue{key: string(key), value: value})
}

func (cs *CacheStore) Delete(key []byte) {
	cs.cache.ReplaceOrInsert(&cValue{key: string(key), deleted: true})
}

// CacheWrap branches again on top of this cache.
func (cs *CacheStore) CacheWrap() *CacheStore {
	return NewCacheStore(cs)
}

// Write flushes buffered writes to the parent in key order and resets the
// cache. Key order keeps the resulting iavl tree shape deterministic.
func (cs *CacheStore) Write() {
	cs.cache.Ascend(func(item btree.Item) bool {
		v := item.(*cValue)
		if v.deleted {
			cs.parent.Delete([]byte(v.key))
		} else {
			cs.parent.Set([]byte(v.key), v.value)
		}
		return true
	})
	cs.cache.Clear(false)
}

// Discard drops buffered writes.
func (cs *CacheStore) Discard() {
	cs.cache.Clear(false)
}

// Dirty reports the number of buffered writes.
func (cs *CacheStore) Dirty() int {
	return cs.cache.Len()
}
