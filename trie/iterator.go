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
	"fmt"

	"github.com/vechain/statecore/thor"
)

// Iterator walks key-value pairs in ascending key order.
//
//	it, _ := tr.Iterator()
//	for it.Next() {
//		use(it.Key(), it.Value())
//	}
//	if err := it.Error(); err != nil { ... }
type Iterator interface {
	// Next moves to the next pair. It returns false at the end or on error.
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	// Seek moves the iterator so that the next call to Next yields the first
	// key strictly greater than key.
	Seek(key []byte) error
}

// iterFrame is a node on the traversal stack.
type iterFrame struct {
	n node
	// branch: next child to visit, -1 while the value is pending.
	// leaf and extension: 0 until visited, then 1.
	status    int
	prefixLen int // nibbles consumed above n
}

func initialStatus(n node) int {
	if _, ok := n.(*branchNode); ok {
		return -1
	}
	return 0
}

type nodeIterator struct {
	store *hashedStore
	root  node
	stack []*iterFrame
	path  NibblePath

	started    bool
	key, value []byte
	err        error
}

func newIterator(store *hashedStore, root node) *nodeIterator {
	return &nodeIterator{store: store, root: root}
}

func (it *nodeIterator) Key() []byte   { return it.key }
func (it *nodeIterator) Value() []byte { return it.value }
func (it *nodeIterator) Error() error  { return it.err }

func (it *nodeIterator) reset() {
	it.stack = it.stack[:0]
	it.path = it.path[:0]
	it.key, it.value = nil, nil
	it.started = true
	if it.root != nil {
		it.push(it.root, 0)
	}
}

func (it *nodeIterator) push(n node, prefixLen int) {
	it.stack = append(it.stack, &iterFrame{n, initialStatus(n), prefixLen})
}

func (it *nodeIterator) pop() {
	it.stack = it.stack[:len(it.stack)-1]
}

// resolveTop replaces a hash node on the stack top with the node it references.
func (it *nodeIterator) resolveTop() error {
	f := it.stack[len(it.stack)-1]
	h, ok := f.n.(hashNode)
	if !ok {
		return nil
	}
	n, err := it.store.resolve(thor.Bytes32(h), it.path[:f.prefixLen], nil, 0)
	if err != nil {
		return err
	}
	f.n, f.status = n, initialStatus(n)
	return nil
}

// extend sets the path to the frame prefix followed by nibbles.
func (it *nodeIterator) extend(f *iterFrame, nibbles ...byte) NibblePath {
	it.path = append(it.path[:f.prefixLen], nibbles...)
	return it.path
}

func (it *nodeIterator) emit(value []byte) bool {
	it.key = it.path.Bytes()
	it.value = value
	return true
}

func (it *nodeIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.started {
		it.reset()
	}
	for len(it.stack) > 0 {
		if err := it.resolveTop(); err != nil {
			it.err = err
			return false
		}
		f := it.stack[len(it.stack)-1]
		switch n := f.n.(type) {
		case *leafNode:
			if f.status == 0 {
				f.status = 1
				it.extend(f, n.path...)
				return it.emit(n.value)
			}
			it.pop()
		case *extensionNode:
			if f.status == 0 {
				f.status = 1
				it.push(n.child, len(it.extend(f, n.path...)))
				continue
			}
			it.pop()
		case *branchNode:
			if f.status < 0 {
				f.status = 0
				if n.value != nil {
					it.extend(f)
					return it.emit(n.value)
				}
			}
			for f.status < len(n.children) && n.children[f.status] == nil {
				f.status++
			}
			if f.status < len(n.children) {
				i := f.status
				f.status++
				it.push(n.children[i], len(it.extend(f, byte(i))))
				continue
			}
			it.pop()
		default:
			panic(fmt.Sprintf("%T: invalid node: %v", n, n))
		}
	}
	it.key, it.value = nil, nil
	return false
}

func (it *nodeIterator) Seek(key []byte) error {
	it.err = nil
	it.reset()
	target := KeyToNibbles(key)

	for len(it.stack) > 0 {
		if err := it.resolveTop(); err != nil {
			it.err = err
			return err
		}
		f := it.stack[len(it.stack)-1]
		switch n := f.n.(type) {
		case *leafNode:
			if it.extend(f, n.path...).Compare(target) <= 0 {
				f.status = 1
			}
			return nil
		case *extensionNode:
			full := it.extend(f, n.path...)
			if target.HasPrefix(full) {
				f.status = 1
				it.push(n.child, len(full))
				continue
			}
			if full.Compare(target) < 0 {
				// whole subtree sorts before target
				f.status = 1
			}
			return nil
		case *branchNode:
			rest := target[f.prefixLen:]
			if len(rest) == 0 {
				// own value equals target, all children are greater
				f.status = 0
				return nil
			}
			i := int(rest[0])
			f.status = i + 1
			if n.children[i] == nil {
				return nil
			}
			it.push(n.children[i], len(it.extend(f, byte(i))))
		default:
			panic(fmt.Sprintf("%T: invalid node: %v", n, n))
		}
	}
	return nil
}
