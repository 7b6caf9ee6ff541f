// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package trie implements Merkle Patricia Tries over a content addressed store.
package trie

import (
	"fmt"

	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

// Trie is read access to a trie at a fixed root.
// Returned values must not be modified by the caller.
type Trie interface {
	Root() thor.Bytes32
	IsEmpty() bool
	Contains(key []byte) (bool, error)
	// Get returns the value for key, nil if absent.
	Get(key []byte) ([]byte, error)
	// GetWith is Get that reports every node fetched from the store to rec.
	GetWith(key []byte, rec NodeRecorder) ([]byte, error)
	Iterator() (Iterator, error)
}

// TrieMut is write access to a trie. Mutations are kept in memory until Root is called.
type TrieMut interface {
	// Root writes pending nodes to the store and returns the root digest.
	Root() thor.Bytes32
	IsEmpty() bool
	Contains(key []byte) (bool, error)
	Get(key []byte) ([]byte, error)
	// Insert sets the value of key and returns the previous value.
	// An empty value removes the key.
	Insert(key, value []byte) ([]byte, error)
	// Remove deletes key and returns the previous value.
	Remove(key []byte) ([]byte, error)
}

var (
	_ Trie    = (*TrieDB)(nil)
	_ TrieMut = (*TrieDBMut)(nil)
)

// TrieDB is a read-only trie. It holds no mutable state and is safe for
// concurrent use, provided the store is not being written.
type TrieDB struct {
	store    *hashedStore
	root     thor.Bytes32
	rootNode node
}

// NewTrieDB opens the trie at root. It fails with InvalidStateRootError if
// root is neither the empty root nor stored in db.
func NewTrieDB(db hashdb.HashStore, root thor.Bytes32) (*TrieDB, error) {
	store := &hashedStore{db}
	rootNode, err := openRoot(store, root)
	if err != nil {
		return nil, err
	}
	return &TrieDB{store, root, rootNode}, nil
}

func openRoot(store *hashedStore, root thor.Bytes32) (node, error) {
	if root == thor.EmptyRoot {
		return nil, nil
	}
	n, err := store.resolve(root, nil, nil, 0)
	if err != nil {
		if IsIncompleteDatabase(err) {
			return nil, &InvalidStateRootError{root}
		}
		return nil, err
	}
	return n, nil
}

// Root returns the root digest.
func (t *TrieDB) Root() thor.Bytes32 { return t.root }

// IsEmpty reports whether the trie has no entries.
func (t *TrieDB) IsEmpty() bool { return t.root == thor.EmptyRoot }

// DB returns the backing store.
func (t *TrieDB) DB() hashdb.HashStore { return t.store.db }

func (t *TrieDB) Contains(key []byte) (bool, error) {
	v, err := t.Get(key)
	return v != nil, err
}

func (t *TrieDB) Get(key []byte) ([]byte, error) {
	return lookup(t.store, t.rootNode, KeyToNibbles(key), nil)
}

func (t *TrieDB) GetWith(key []byte, rec NodeRecorder) ([]byte, error) {
	if t.IsEmpty() {
		return nil, nil
	}
	// start from the root reference so that the root fetch is recorded too
	return lookup(t.store, hashNode(t.root), KeyToNibbles(key), rec)
}

func (t *TrieDB) Iterator() (Iterator, error) {
	return newIterator(t.store, t.rootNode), nil
}

// lookup walks from n along key. Each store fetch increases the depth reported to rec.
func lookup(store *hashedStore, n node, key NibblePath, rec NodeRecorder) ([]byte, error) {
	var (
		pos   int
		depth uint32
	)
	for {
		switch cur := n.(type) {
		case nil:
			return nil, nil
		case *leafNode:
			if cur.path.Equal(key[pos:]) {
				return cur.value, nil
			}
			return nil, nil
		case *extensionNode:
			if !key[pos:].HasPrefix(cur.path) {
				return nil, nil
			}
			pos += len(cur.path)
			n = cur.child
		case *branchNode:
			if pos == len(key) {
				return cur.value, nil
			}
			n = cur.children[key[pos]]
			pos++
		case hashNode:
			resolved, err := store.resolve(thor.Bytes32(cur), key[:pos], rec, depth)
			if err != nil {
				return nil, err
			}
			depth++
			n = resolved
		default:
			panic(fmt.Sprintf("%T: invalid node: %v", n, n))
		}
	}
}
