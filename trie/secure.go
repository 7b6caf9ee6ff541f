// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

var (
	_ Trie    = (*SecTrieDB)(nil)
	_ TrieMut = (*SecTrieDBMut)(nil)
)

// SecTrieDB is a TrieDB keyed by the digest of each key.
// Iteration yields the hashed keys.
type SecTrieDB struct {
	raw *TrieDB
}

// NewSecTrieDB opens a secure trie at root.
func NewSecTrieDB(db hashdb.HashStore, root thor.Bytes32) (*SecTrieDB, error) {
	raw, err := NewTrieDB(db, root)
	if err != nil {
		return nil, err
	}
	return &SecTrieDB{raw}, nil
}

// Raw returns the underlying trie.
func (t *SecTrieDB) Raw() *TrieDB { return t.raw }

func (t *SecTrieDB) Root() thor.Bytes32 { return t.raw.Root() }
func (t *SecTrieDB) IsEmpty() bool      { return t.raw.IsEmpty() }

func (t *SecTrieDB) Contains(key []byte) (bool, error) {
	h := thor.Blake2b(key)
	return t.raw.Contains(h[:])
}

func (t *SecTrieDB) Get(key []byte) ([]byte, error) {
	h := thor.Blake2b(key)
	return t.raw.Get(h[:])
}

func (t *SecTrieDB) GetWith(key []byte, rec NodeRecorder) ([]byte, error) {
	h := thor.Blake2b(key)
	return t.raw.GetWith(h[:], rec)
}

func (t *SecTrieDB) Iterator() (Iterator, error) { return t.raw.Iterator() }

// SecTrieDBMut is a TrieDBMut keyed by the digest of each key.
type SecTrieDBMut struct {
	raw *TrieDBMut
}

// NewSecTrieDBMut creates an empty secure trie.
func NewSecTrieDBMut(db hashdb.HashStore) *SecTrieDBMut {
	return &SecTrieDBMut{NewTrieDBMut(db)}
}

// NewSecTrieDBMutFromExisting opens a secure trie at root for writing.
func NewSecTrieDBMutFromExisting(db hashdb.HashStore, root thor.Bytes32) (*SecTrieDBMut, error) {
	raw, err := NewTrieDBMutFromExisting(db, root)
	if err != nil {
		return nil, err
	}
	return &SecTrieDBMut{raw}, nil
}

// Raw returns the underlying trie.
func (t *SecTrieDBMut) Raw() *TrieDBMut { return t.raw }

func (t *SecTrieDBMut) Root() thor.Bytes32 { return t.raw.Root() }
func (t *SecTrieDBMut) IsEmpty() bool      { return t.raw.IsEmpty() }

func (t *SecTrieDBMut) Contains(key []byte) (bool, error) {
	h := thor.Blake2b(key)
	return t.raw.Contains(h[:])
}

func (t *SecTrieDBMut) Get(key []byte) ([]byte, error) {
	h := thor.Blake2b(key)
	return t.raw.Get(h[:])
}

func (t *SecTrieDBMut) Insert(key, value []byte) ([]byte, error) {
	h := thor.Blake2b(key)
	return t.raw.Insert(h[:], value)
}

func (t *SecTrieDBMut) Remove(key []byte) ([]byte, error) {
	h := thor.Blake2b(key)
	return t.raw.Remove(h[:])
}
