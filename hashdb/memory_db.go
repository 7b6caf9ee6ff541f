// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hashdb

import (
	"bytes"
	"slices"
	"sync"

	"github.com/vechain/statecore/thor"
)

var _ HashStore = (*MemoryDB)(nil)

type memEntry struct {
	value []byte
	rc    int
}

// MemoryDB is a reference counted in-memory HashStore.
// An entry is visible while its count is positive. Removing an absent key
// records a negative count, which a later Emplace cancels out.
type MemoryDB struct {
	entries map[thor.Bytes32]*memEntry
	lock    sync.RWMutex
}

// NewMemoryDB creates an empty MemoryDB.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{entries: make(map[thor.Bytes32]*memEntry)}
}

func (m *MemoryDB) Get(hash thor.Bytes32) ([]byte, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if e, ok := m.entries[hash]; ok && e.rc > 0 {
		return e.value, true
	}
	return nil, false
}

func (m *MemoryDB) Emplace(hash thor.Bytes32, value []byte) {
	m.lock.Lock()
	defer m.lock.Unlock()

	e, ok := m.entries[hash]
	if !ok {
		m.entries[hash] = &memEntry{bytes.Clone(value), 1}
		return
	}
	if e.rc <= 0 {
		e.value = bytes.Clone(value)
	}
	e.rc++
}

func (m *MemoryDB) Remove(hash thor.Bytes32) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if e, ok := m.entries[hash]; ok {
		e.rc--
		return
	}
	m.entries[hash] = &memEntry{rc: -1}
}

// Purge drops all entries whose count is not positive.
func (m *MemoryDB) Purge() {
	m.lock.Lock()
	defer m.lock.Unlock()

	for h, e := range m.entries {
		if e.rc <= 0 {
			delete(m.entries, h)
		}
	}
}

// Len returns the number of visible entries.
func (m *MemoryDB) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()

	n := 0
	for _, e := range m.entries {
		if e.rc > 0 {
			n++
		}
	}
	return n
}

// Keys returns visible keys in ascending order.
func (m *MemoryDB) Keys() []thor.Bytes32 {
	m.lock.RLock()
	defer m.lock.RUnlock()

	keys := make([]thor.Bytes32, 0, len(m.entries))
	for h, e := range m.entries {
		if e.rc > 0 {
			keys = append(keys, h)
		}
	}
	slices.SortFunc(keys, func(a, b thor.Bytes32) int { return bytes.Compare(a[:], b[:]) })
	return keys
}
