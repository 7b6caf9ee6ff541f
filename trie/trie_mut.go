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

package trie

import (
	"bytes"
	"fmt"

	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

// TrieDBMut is a mutable trie. It is not safe for concurrent use.
//
// Replaced nodes are never removed from the store, so older roots stay readable.
type TrieDBMut struct {
	store    *hashedStore
	root     node
	rootHash thor.Bytes32
}

// NewTrieDBMut creates an empty trie writing into db.
func NewTrieDBMut(db hashdb.HashStore) *TrieDBMut {
	return &TrieDBMut{store: &hashedStore{db}, rootHash: thor.EmptyRoot}
}

// NewTrieDBMutFromExisting opens the trie at root for writing. It fails with
// InvalidStateRootError if root is neither the empty root nor stored in db.
func NewTrieDBMutFromExisting(db hashdb.HashStore, root thor.Bytes32) (*TrieDBMut, error) {
	store := &hashedStore{db}
	rootNode, err := openRoot(store, root)
	if err != nil {
		return nil, err
	}
	return &TrieDBMut{store, rootNode, root}, nil
}

// DB returns the backing store.
func (t *TrieDBMut) DB() hashdb.HashStore { return t.store.db }

// IsEmpty reports whether the trie currently has no entries.
func (t *TrieDBMut) IsEmpty() bool { return t.root == nil }

func (t *TrieDBMut) Contains(key []byte) (bool, error) {
	v, err := t.Get(key)
	return v != nil, err
}

func (t *TrieDBMut) Get(key []byte) ([]byte, error) {
	return lookup(t.store, t.root, KeyToNibbles(key), nil)
}

// Root writes all dirty nodes into the store and returns the root digest.
// The root node is always stored, whatever its size.
func (t *TrieDBMut) Root() thor.Bytes32 {
	if t.root == nil {
		t.rootHash = thor.EmptyRoot
		return t.rootHash
	}
	if _, dirty := t.root.cache(); !dirty {
		return t.rootHash
	}
	h := newHasher()
	defer returnHasherToPool(h)

	ref, cached := h.hash(t.root, t.store, true)
	t.root = cached
	t.rootHash = thor.Bytes32(ref.(hashNode))
	metricCommits().Add(1)
	return t.rootHash
}

// Commit is an alias of Root.
func (t *TrieDBMut) Commit() thor.Bytes32 { return t.Root() }

func (t *TrieDBMut) Insert(key, value []byte) ([]byte, error) {
	if len(value) == 0 {
		return t.Remove(key)
	}
	changed, n, old, err := t.insert(t.root, KeyToNibbles(key), 0, value)
	if err != nil {
		return nil, err
	}
	if changed {
		t.root = n
	}
	return old, nil
}

func (t *TrieDBMut) Remove(key []byte) ([]byte, error) {
	changed, n, old, err := t.remove(t.root, KeyToNibbles(key), 0)
	if err != nil {
		return nil, err
	}
	if changed {
		t.root = n
	}
	return old, nil
}

// wrapExtension puts an extension of path above child, unless path is empty.
func wrapExtension(path NibblePath, child node) node {
	if len(path) == 0 {
		return child
	}
	return &extensionNode{path, child, dirtyFlag}
}

// insert sets key[pos:] to value below n. It reports whether anything changed,
// the replacement for n and the previous value.
func (t *TrieDBMut) insert(n node, key NibblePath, pos int, value []byte) (bool, node, []byte, error) {
	rest := key[pos:]
	switch n := n.(type) {
	case nil:
		return true, &leafNode{rest, value, dirtyFlag}, nil, nil

	case *leafNode:
		if n.path.Equal(rest) {
			if bytes.Equal(n.value, value) {
				return false, n, n.value, nil
			}
			return true, &leafNode{n.path, value, dirtyFlag}, n.value, nil
		}
		// split at the first differing nibble
		m := n.path.CommonPrefix(rest)
		branch := &branchNode{flags: dirtyFlag}
		if m == len(n.path) {
			branch.value = n.value
		} else {
			branch.children[n.path[m]] = &leafNode{n.path[m+1:], n.value, dirtyFlag}
		}
		if m == len(rest) {
			branch.value = value
		} else {
			branch.children[rest[m]] = &leafNode{rest[m+1:], value, dirtyFlag}
		}
		return true, wrapExtension(rest[:m], branch), nil, nil

	case *extensionNode:
		m := n.path.CommonPrefix(rest)
		if m == len(n.path) {
			changed, child, old, err := t.insert(n.child, key, pos+m, value)
			if !changed || err != nil {
				return false, n, old, err
			}
			return true, &extensionNode{n.path, child, dirtyFlag}, old, nil
		}
		branch := &branchNode{flags: dirtyFlag}
		if m+1 == len(n.path) {
			branch.children[n.path[m]] = n.child
		} else {
			branch.children[n.path[m]] = &extensionNode{n.path[m+1:], n.child, dirtyFlag}
		}
		if m == len(rest) {
			branch.value = value
		} else {
			branch.children[rest[m]] = &leafNode{rest[m+1:], value, dirtyFlag}
		}
		return true, wrapExtension(rest[:m], branch), nil, nil

	case *branchNode:
		nb := n.copy()
		nb.flags = dirtyFlag
		if len(rest) == 0 {
			if bytes.Equal(n.value, value) {
				return false, n, n.value, nil
			}
			nb.value = value
			return true, nb, n.value, nil
		}
		changed, child, old, err := t.insert(n.children[rest[0]], key, pos+1, value)
		if !changed || err != nil {
			return false, n, old, err
		}
		nb.children[rest[0]] = child
		return true, nb, old, nil

	case hashNode:
		resolved, err := t.store.resolve(thor.Bytes32(n), key[:pos], nil, 0)
		if err != nil {
			return false, n, nil, err
		}
		changed, nn, old, err := t.insert(resolved, key, pos, value)
		if !changed || err != nil {
			return false, n, old, err
		}
		return true, nn, old, nil

	default:
		panic(fmt.Sprintf("%T: invalid node: %v", n, n))
	}
}

// remove deletes key[pos:] below n, collapsing nodes left with a single slot.
func (t *TrieDBMut) remove(n node, key NibblePath, pos int) (bool, node, []byte, error) {
	rest := key[pos:]
	switch n := n.(type) {
	case nil:
		return false, nil, nil, nil

	case *leafNode:
		if n.path.Equal(rest) {
			return true, nil, n.value, nil
		}
		return false, n, nil, nil

	case *extensionNode:
		if !rest.HasPrefix(n.path) {
			return false, n, nil, nil
		}
		changed, child, old, err := t.remove(n.child, key, pos+len(n.path))
		if !changed || err != nil {
			return false, n, old, err
		}
		return true, mergeUnder(n.path, child), old, nil

	case *branchNode:
		var old []byte
		nb := n.copy()
		nb.flags = dirtyFlag
		if len(rest) == 0 {
			if n.value == nil {
				return false, n, nil, nil
			}
			old, nb.value = n.value, nil
		} else {
			changed, child, o, err := t.remove(n.children[rest[0]], key, pos+1)
			if !changed || err != nil {
				return false, n, o, err
			}
			old, nb.children[rest[0]] = o, child
		}
		collapsed, err := t.collapse(nb, key[:pos])
		if err != nil {
			return false, n, nil, err
		}
		return true, collapsed, old, nil

	case hashNode:
		resolved, err := t.store.resolve(thor.Bytes32(n), key[:pos], nil, 0)
		if err != nil {
			return false, n, nil, err
		}
		changed, nn, old, err := t.remove(resolved, key, pos)
		if !changed || err != nil {
			return false, n, old, err
		}
		return true, nn, old, nil

	default:
		panic(fmt.Sprintf("%T: invalid node: %v", n, n))
	}
}

// collapse restores the branch invariant after a removal: a branch must hold
// at least two of children and value together.
func (t *TrieDBMut) collapse(n *branchNode, prefix NibblePath) (node, error) {
	count, last := n.liveSlots()
	switch {
	case count >= 2:
		return n, nil
	case count == 0:
		return nil, nil
	case last < 0:
		// only the value is left
		return &leafNode{NibblePath{}, n.value, dirtyFlag}, nil
	}
	child := n.children[last]
	if h, ok := child.(hashNode); ok {
		// the child type decides how it merges
		resolved, err := t.store.resolve(thor.Bytes32(h), append(prefix[:len(prefix):len(prefix)], byte(last)), nil, 0)
		if err != nil {
			return nil, err
		}
		child = resolved
	}
	return mergeUnder(NibblePath{byte(last)}, child), nil
}

// mergeUnder joins path above child. Leaves and extensions absorb the path,
// any other child gets an extension.
func mergeUnder(path NibblePath, child node) node {
	switch c := child.(type) {
	case nil:
		return nil
	case *leafNode:
		return &leafNode{path.Concat(c.path), c.value, dirtyFlag}
	case *extensionNode:
		return &extensionNode{path.Concat(c.path), c.child, dirtyFlag}
	default:
		return &extensionNode{path, child, dirtyFlag}
	}
}
