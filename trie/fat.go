// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

var (
	_ Trie    = (*FatDB)(nil)
	_ TrieMut = (*FatDBMut)(nil)
)

// auxKey is where the cleartext of a hashed key is kept.
func auxKey(hashedKey []byte) thor.Bytes32 {
	return thor.Blake2b(hashedKey)
}

// FatDB is a secure trie which also keeps every cleartext key in the store,
// so iteration yields the original keys.
type FatDB struct {
	SecTrieDB
}

// NewFatDB opens a fat trie at root.
func NewFatDB(db hashdb.HashStore, root thor.Bytes32) (*FatDB, error) {
	sec, err := NewSecTrieDB(db, root)
	if err != nil {
		return nil, err
	}
	return &FatDB{*sec}, nil
}

// Iterator yields cleartext keys. A missing cleartext entry fails the
// iteration with IncompleteDatabaseError.
func (t *FatDB) Iterator() (Iterator, error) {
	it, err := t.raw.Iterator()
	if err != nil {
		return nil, err
	}
	return &fatIterator{Iterator: it, db: t.raw.DB()}, nil
}

type fatIterator struct {
	Iterator
	db  hashdb.HashStore
	key []byte
	err error
}

func (it *fatIterator) Next() bool {
	it.key = nil
	if it.err != nil || !it.Iterator.Next() {
		return false
	}
	aux := auxKey(it.Iterator.Key())
	key, ok := it.db.Get(aux)
	if !ok {
		it.err = &IncompleteDatabaseError{Hash: aux}
		return false
	}
	it.key = key
	return true
}

func (it *fatIterator) Key() []byte { return it.key }

func (it *fatIterator) Error() error {
	if it.err != nil {
		return it.err
	}
	return it.Iterator.Error()
}

// Seek positions on hashed keys, as the trie is ordered by them.
func (it *fatIterator) Seek(key []byte) error {
	it.err, it.key = nil, nil
	h := thor.Blake2b(key)
	return it.Iterator.Seek(h[:])
}

// FatDBMut is the writable FatDB.
type FatDBMut struct {
	SecTrieDBMut
}

// NewFatDBMut creates an empty fat trie.
func NewFatDBMut(db hashdb.HashStore) *FatDBMut {
	return &FatDBMut{*NewSecTrieDBMut(db)}
}

// NewFatDBMutFromExisting opens a fat trie at root for writing.
func NewFatDBMutFromExisting(db hashdb.HashStore, root thor.Bytes32) (*FatDBMut, error) {
	sec, err := NewSecTrieDBMutFromExisting(db, root)
	if err != nil {
		return nil, err
	}
	return &FatDBMut{*sec}, nil
}

// Insert stores the cleartext key alongside a newly inserted entry.
func (t *FatDBMut) Insert(key, value []byte) ([]byte, error) {
	if len(value) == 0 {
		return t.Remove(key)
	}
	h := thor.Blake2b(key)
	old, err := t.raw.Insert(h[:], value)
	if err != nil {
		return nil, err
	}
	if old == nil {
		t.raw.DB().Emplace(auxKey(h[:]), key)
	}
	return old, nil
}

// Remove drops the cleartext key of a removed entry.
func (t *FatDBMut) Remove(key []byte) ([]byte, error) {
	h := thor.Blake2b(key)
	old, err := t.raw.Remove(h[:])
	if err != nil {
		return nil, err
	}
	if old != nil {
		t.raw.DB().Remove(auxKey(h[:]))
	}
	return old, nil
}
