// Copyright (c) 2019 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv holds the raw byte store contracts under hashdb.KVStore.
// Trie nodes and the head root of the statetool live in separate buckets of one Store.
package kv

// Getter reads raw entries. IsNotFound tells a missing key apart from a failed read,
// so node stores can report absence without masking backend errors.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

// Putter writes raw entries.
type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Snapshot is a read view fixed at creation. It must be released.
type Snapshot interface {
	Getter
	Release()
}

// Bulk buffers writes until Write. hashdb.KVStore flushes a whole journal through one Bulk.
type Bulk interface {
	Putter
	EnableAutoFlush() // flush whenever the buffer grows large; Write is then no longer atomic
	Write() error
}

// Iterator walks the entries of a Range in key order. It must be released.
type Iterator interface {
	First() bool
	Last() bool
	Next() bool
	Prev() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// Range selects keys in [Start, Limit). A nil Limit means no upper bound.
type Range struct {
	Start []byte
	Limit []byte
}

// Store is what a backend such as lvldb provides, and what Bucket wraps.
type Store interface {
	Getter
	Putter

	Snapshot() Snapshot
	Bulk() Bulk
	Iterate(r Range) Iterator
}
