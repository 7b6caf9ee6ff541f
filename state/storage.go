// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"maps"

	"github.com/vechain/statecore/cache"
	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
	"github.com/vechain/statecore/trie"
)

// StorageCacheItems is the capacity of each storage read cache.
const StorageCacheItems = 8192

// Slots is one storage shape of an account: a bounded read cache in front of
// the storage trie, and the pending changes which shadow it until committed.
//
// The read cache is safe for concurrent use. Changes are owned by a single writer.
type Slots[K comparable, V any] struct {
	kind    string
	codec   SlotCodec[K, V]
	cache   *cache.LRU
	changes map[K]V
}

// NewSlots creates empty slots. kind labels the cache metrics.
func NewSlots[K comparable, V any](kind string, codec SlotCodec[K, V]) *Slots[K, V] {
	return &Slots[K, V]{
		kind:    kind,
		codec:   codec,
		cache:   cache.MustNewLRU(StorageCacheItems),
		changes: make(map[K]V),
	}
}

// Cached returns the pending or cached value of key.
func (s *Slots[K, V]) Cached(key K) (V, bool) {
	if v, ok := s.changes[key]; ok {
		return v, true
	}
	if v, ok := s.cache.Get(key); ok {
		metricStorageCache().AddWithLabel(1, map[string]string{"type": s.kind, "event": "hit"})
		return v.(V), true
	}
	var zero V
	return zero, false
}

// Get returns the value of key, reading the storage trie at root on a cache miss.
// An absent slot reads as the zero value. Trie reads populate the cache.
func (s *Slots[K, V]) Get(db hashdb.HashStore, root thor.Bytes32, key K) (V, error) {
	if v, ok := s.Cached(key); ok {
		return v, nil
	}
	metricStorageCache().AddWithLabel(1, map[string]string{"type": s.kind, "event": "miss"})

	var value V
	t, err := trie.NewSecTrieDB(db, root)
	if err != nil {
		return value, err
	}
	data, err := t.Get(s.codec.TrieKey(key))
	if err != nil {
		return value, err
	}
	if len(data) > 0 {
		if value, err = s.codec.Decode(data); err != nil {
			return value, err
		}
	}
	s.cache.Add(key, value)
	return value, nil
}

// Set records a pending change.
func (s *Slots[K, V]) Set(key K, value V) {
	s.changes[key] = value
}

// Clean reports whether there are no pending changes.
func (s *Slots[K, V]) Clean() bool { return len(s.changes) == 0 }

// Pending returns the number of pending changes.
func (s *Slots[K, V]) Pending() int { return len(s.changes) }

// CacheLen returns the number of cached reads.
func (s *Slots[K, V]) CacheLen() int { return s.cache.Len() }

func (s *Slots[K, V]) discard() {
	clear(s.changes)
}

// apply writes the pending changes into t. Zero values remove their slot.
func (s *Slots[K, V]) apply(t trie.TrieMut) error {
	for k, v := range s.changes {
		var err error
		if s.codec.IsZero(v) {
			_, err = t.Remove(s.codec.TrieKey(k))
		} else {
			_, err = t.Insert(s.codec.TrieKey(k), s.codec.Encode(v))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// settle moves applied changes into the read cache.
func (s *Slots[K, V]) settle() {
	for k, v := range s.changes {
		s.cache.Add(k, v)
	}
	clear(s.changes)
}

func (s *Slots[K, V]) clone(withChanges, withCache bool) *Slots[K, V] {
	c := &Slots[K, V]{kind: s.kind, codec: s.codec}
	if withCache {
		c.cache = s.cache.Copy()
	} else {
		c.cache = cache.MustNewLRU(StorageCacheItems)
	}
	if withChanges {
		c.changes = maps.Clone(s.changes)
	} else {
		c.changes = make(map[K]V)
	}
	return c
}

// overwrite copies the changes of other and merges its read cache into s.
// The two slots stay independent afterwards.
func (s *Slots[K, V]) overwrite(other *Slots[K, V]) {
	other.cache.Each(func(k, v any) { s.cache.Add(k, v) })
	s.changes = maps.Clone(other.changes)
}

// StorageSet is the storage policy of an account kind.
type StorageSet[S any] interface {
	// Clean reports whether there are no pending changes.
	Clean() bool
	discard()
	apply(t trie.TrieMut) error
	settle()
	cloneBasic() S
	cloneDirty() S
	cloneAll() S
	overwrite(other S)
}

var (
	_ StorageSet[*FVMStorage] = (*FVMStorage)(nil)
	_ StorageSet[*AVMStorage] = (*AVMStorage)(nil)
)

// FVMStorage holds 128-bit and 256-bit values under 128-bit keys.
// Both shapes live in the same storage trie.
type FVMStorage struct {
	Normal *Slots[thor.Bytes16, thor.Bytes16]
	Wide   *Slots[thor.Bytes16, thor.Bytes32]
}

func newFVMStorage() *FVMStorage {
	return &FVMStorage{
		NewSlots("normal", Bytes16Codec),
		NewSlots("wide", Bytes32Codec),
	}
}

func (s *FVMStorage) Clean() bool { return s.Normal.Clean() && s.Wide.Clean() }

func (s *FVMStorage) discard() {
	s.Normal.discard()
	s.Wide.discard()
}

func (s *FVMStorage) apply(t trie.TrieMut) error {
	if err := s.Normal.apply(t); err != nil {
		return err
	}
	return s.Wide.apply(t)
}

func (s *FVMStorage) settle() {
	s.Normal.settle()
	s.Wide.settle()
}

func (s *FVMStorage) cloneBasic() *FVMStorage { return newFVMStorage() }

func (s *FVMStorage) cloneDirty() *FVMStorage {
	return &FVMStorage{s.Normal.clone(true, false), s.Wide.clone(true, false)}
}

func (s *FVMStorage) cloneAll() *FVMStorage {
	return &FVMStorage{s.Normal.clone(true, true), s.Wide.clone(true, true)}
}

func (s *FVMStorage) overwrite(other *FVMStorage) {
	s.Normal.overwrite(other.Normal)
	s.Wide.overwrite(other.Wide)
}

// AVMStorage holds variable length values under variable length keys.
type AVMStorage struct {
	Slots *Slots[string, []byte]
}

func newAVMStorage() *AVMStorage {
	return &AVMStorage{NewSlots("avm", BlobCodec)}
}

func (s *AVMStorage) Clean() bool                 { return s.Slots.Clean() }
func (s *AVMStorage) discard()                    { s.Slots.discard() }
func (s *AVMStorage) apply(t trie.TrieMut) error  { return s.Slots.apply(t) }
func (s *AVMStorage) settle()                     { s.Slots.settle() }
func (s *AVMStorage) cloneBasic() *AVMStorage     { return newAVMStorage() }
func (s *AVMStorage) cloneDirty() *AVMStorage     { return &AVMStorage{s.Slots.clone(true, false)} }
func (s *AVMStorage) cloneAll() *AVMStorage       { return &AVMStorage{s.Slots.clone(true, true)} }
func (s *AVMStorage) overwrite(other *AVMStorage) { s.Slots.overwrite(other.Slots) }
