// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hashdb

import (
	"bytes"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"github.com/qianbin/directcache"

	"github.com/vechain/statecore/cache"
	"github.com/vechain/statecore/kv"
	"github.com/vechain/statecore/thor"
)

var logger = log.New("pkg", "hashdb")

var _ HashStore = (*KVStore)(nil)

// KVStoreOptions configures a KVStore.
type KVStoreOptions struct {
	CacheSizeMB int // blob cache size, 0 disables the cache
}

type journalEntry struct {
	value []byte
	rc    int
}

// KVStore is a HashStore journaling writes in memory on top of a kv.Store.
// Writes reach the backing store on Commit.
type KVStore struct {
	src     kv.Store
	blobs   *directcache.Cache
	stats   cache.Stats
	lock    sync.RWMutex
	journal map[thor.Bytes32]*journalEntry
}

// NewKVStore creates a KVStore over src.
func NewKVStore(src kv.Store, opts KVStoreOptions) *KVStore {
	s := &KVStore{
		src:     src,
		journal: make(map[thor.Bytes32]*journalEntry),
	}
	if opts.CacheSizeMB > 0 {
		s.blobs = directcache.New(opts.CacheSizeMB * 1024 * 1024)
	}
	return s
}

// Get looks up the journal, then the blob cache, then the backing store.
// Backing store failures other than not-found are logged and reported as absent.
func (s *KVStore) Get(hash thor.Bytes32) ([]byte, bool) {
	s.lock.RLock()
	e, ok := s.journal[hash]
	s.lock.RUnlock()
	if ok {
		switch {
		case e.rc > 0:
			return e.value, true
		case e.rc < 0:
			return nil, false
		}
	}

	if blob, ok := s.cached(hash); ok {
		return blob, true
	}

	val, err := s.src.Get(hash[:])
	if err != nil {
		if !s.src.IsNotFound(err) {
			logger.Warn("failed to read backing store", "hash", hash, "err", err)
		}
		return nil, false
	}
	if s.blobs != nil {
		_ = s.blobs.Set(hash[:], val)
	}
	return val, true
}

func (s *KVStore) cached(hash thor.Bytes32) (blob []byte, found bool) {
	if s.blobs == nil {
		return nil, false
	}
	if s.blobs.AdvGet(hash[:], func(val []byte) {
		blob = slices.Clone(val)
	}, false) {
		s.stats.Hit()
		metricCacheHitMiss().AddWithLabel(1, map[string]string{"event": "hit"})
		return blob, true
	}
	s.stats.Miss()
	metricCacheHitMiss().AddWithLabel(1, map[string]string{"event": "miss"})
	return nil, false
}

func (s *KVStore) Emplace(hash thor.Bytes32, value []byte) {
	s.lock.Lock()
	defer s.lock.Unlock()

	e, ok := s.journal[hash]
	if !ok {
		s.journal[hash] = &journalEntry{bytes.Clone(value), 1}
		return
	}
	if e.rc <= 0 {
		e.value = bytes.Clone(value)
	}
	e.rc++
}

func (s *KVStore) Remove(hash thor.Bytes32) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if e, ok := s.journal[hash]; ok {
		e.rc--
		return
	}
	s.journal[hash] = &journalEntry{rc: -1}
}

// Pending returns the number of journaled entries with a net change.
func (s *KVStore) Pending() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	n := 0
	for _, e := range s.journal {
		if e.rc != 0 {
			n++
		}
	}
	return n
}

// Commit writes the journal into the backing store in one bulk and resets it.
// Entries with positive net count are put, entries with negative net count are deleted.
func (s *KVStore) Commit() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	bulk := s.src.Bulk()
	var puts, dels int
	for h, e := range s.journal {
		switch {
		case e.rc > 0:
			if err := bulk.Put(h[:], e.value); err != nil {
				return errors.Wrap(err, "put")
			}
			puts++
		case e.rc < 0:
			if err := bulk.Delete(h[:]); err != nil {
				return errors.Wrap(err, "delete")
			}
			if s.blobs != nil {
				s.blobs.Del(h[:])
			}
			dels++
		}
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "commit hash store")
	}
	s.journal = make(map[thor.Bytes32]*journalEntry)

	metricCommitEntries().Add(int64(puts + dels))
	logger.Debug("committed", "put", puts, "delete", dels)
	if changed, hit, miss := s.stats.Stats(); changed {
		logger.Debug("blob cache stats", "hit", hit, "miss", miss, "rate", s.stats.HitRate())
	}
	return nil
}
