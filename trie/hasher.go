// Copyright 2016 The go-ethereum Authors
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
	"sync"

	"github.com/vechain/statecore/thor"
)

type hasher struct {
	buf []byte
}

// hashers live in a global pool.
var hasherPool = sync.Pool{
	New: func() any {
		return &hasher{
			buf: make([]byte, 0, 550), // enough for a branch of 16 digests
		}
	},
}

func newHasher() *hasher {
	return hasherPool.Get().(*hasher)
}

func returnHasherToPool(h *hasher) {
	hasherPool.Put(h)
}

// hash collapses n into the reference its parent encodes: a hashNode when the
// encoding is at least a digest long (or force is set), otherwise n itself with
// collapsed children. It also returns a copy of n with digest cached and dirty
// cleared, to replace n in the in-memory tree. Stored nodes go to store, which
// may be nil to compute digests only.
func (h *hasher) hash(n node, store *hashedStore, force bool) (ref node, cached node) {
	if n == nil {
		return nil, nil
	}
	if hash, dirty := n.cache(); hash != nil && !dirty {
		return hashNode(*hash), n
	}
	collapsed, cached := h.hashChildren(n, store)
	if _, ok := collapsed.(hashNode); ok {
		return collapsed, cached
	}

	h.buf = collapsed.encode(h.buf[:0])
	if len(h.buf) < hashLen && !force {
		// inline into the parent, nothing stored
		return collapsed, cached
	}

	var digest thor.Bytes32
	if store != nil {
		digest = store.insert(h.buf)
	} else {
		digest = thor.Blake2b(h.buf)
	}
	switch cn := cached.(type) {
	case *leafNode:
		cn.flags = nodeFlag{hash: &digest, dirty: store == nil && cn.flags.dirty}
	case *extensionNode:
		cn.flags = nodeFlag{hash: &digest, dirty: store == nil && cn.flags.dirty}
	case *branchNode:
		cn.flags = nodeFlag{hash: &digest, dirty: store == nil && cn.flags.dirty}
	}
	return hashNode(digest), cached
}

// hashChildren returns n with its children collapsed into references, and a
// copy of n whose children are the cached replacements.
func (h *hasher) hashChildren(original node, store *hashedStore) (collapsed, cached node) {
	switch n := original.(type) {
	case *leafNode:
		cpy := *n
		return &cpy, &leafNode{n.path, n.value, n.flags}
	case *extensionNode:
		ref, c := h.hash(n.child, store, false)
		return &extensionNode{n.path, ref, n.flags}, &extensionNode{n.path, c, n.flags}
	case *branchNode:
		col, cch := n.copy(), n.copy()
		for i, c := range n.children {
			if c != nil {
				col.children[i], cch.children[i] = h.hash(c, store, false)
			}
		}
		return col, cch
	default:
		// hash nodes have no children
		return n, original
	}
}
