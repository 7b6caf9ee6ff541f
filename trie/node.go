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
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/qianbin/drlp"

	"github.com/vechain/statecore/thor"
)

var indices = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "a", "b", "c", "d", "e", "f"}

// node is one of *leafNode, *extensionNode, *branchNode, hashNode, or nil for empty.
type node interface {
	fstring(string) string
	cache() (*thor.Bytes32, bool)
	// encode appends the canonical encoding. Children must already be collapsed
	// into hashNode or small inline nodes.
	encode(buf []byte) []byte
}

type (
	leafNode struct {
		path  NibblePath
		value []byte
		flags nodeFlag
	}
	extensionNode struct {
		path  NibblePath // never empty
		child node       // a branch, or the hash of one
		flags nodeFlag
	}
	branchNode struct {
		children [16]node
		value    []byte // nil if absent
		flags    nodeFlag
	}
	// hashNode references a node stored separately under its digest.
	hashNode thor.Bytes32
)

// nodeFlag carries caching metadata.
type nodeFlag struct {
	hash  *thor.Bytes32 // digest of the stored encoding, nil if inline or not yet hashed
	dirty bool          // whether the node has changes not yet written to the store
}

var dirtyFlag = nodeFlag{dirty: true}

func (n *leafNode) cache() (*thor.Bytes32, bool)      { return n.flags.hash, n.flags.dirty }
func (n *extensionNode) cache() (*thor.Bytes32, bool) { return n.flags.hash, n.flags.dirty }
func (n *branchNode) cache() (*thor.Bytes32, bool)    { return n.flags.hash, n.flags.dirty }
func (n hashNode) cache() (*thor.Bytes32, bool)       { return nil, false }

func (n *branchNode) copy() *branchNode { cpy := *n; return &cpy }

// liveSlots returns the number of non-empty children plus one if a value is present,
// and the index of the last non-empty child (-1 if none).
func (n *branchNode) liveSlots() (count, last int) {
	last = -1
	for i, c := range n.children {
		if c != nil {
			count++
			last = i
		}
	}
	if n.value != nil {
		count++
	}
	return
}

func (n *leafNode) String() string      { return n.fstring("") }
func (n *extensionNode) String() string { return n.fstring("") }
func (n *branchNode) String() string    { return n.fstring("") }
func (n hashNode) String() string       { return n.fstring("") }

func (n *leafNode) fstring(ind string) string {
	return fmt.Sprintf("{%v: %x} ", n.path, n.value)
}

func (n *extensionNode) fstring(ind string) string {
	return fmt.Sprintf("{%v: %v} ", n.path, n.child.fstring(ind+"  "))
}

func (n *branchNode) fstring(ind string) string {
	resp := fmt.Sprintf("[\n%s  ", ind)
	for i, c := range n.children {
		if c == nil {
			resp += fmt.Sprintf("%s: <nil> ", indices[i])
		} else {
			resp += fmt.Sprintf("%s: %v", indices[i], c.fstring(ind+"  "))
		}
	}
	if n.value != nil {
		resp += fmt.Sprintf("value: %x ", n.value)
	}
	return resp + fmt.Sprintf("\n%s] ", ind)
}

func (n hashNode) fstring(ind string) string {
	return fmt.Sprintf("<%x> ", n[:])
}

// encoding

func (n *leafNode) encode(buf []byte) []byte {
	offset := len(buf)
	buf = drlp.AppendString(buf, n.path.EncodeCompact(true))
	buf = drlp.AppendString(buf, n.value)
	return drlp.EndList(buf, offset)
}

func (n *extensionNode) encode(buf []byte) []byte {
	offset := len(buf)
	buf = drlp.AppendString(buf, n.path.EncodeCompact(false))
	buf = encodeRef(buf, n.child)
	return drlp.EndList(buf, offset)
}

func (n *branchNode) encode(buf []byte) []byte {
	offset := len(buf)
	for _, c := range n.children {
		buf = encodeRef(buf, c)
	}
	buf = drlp.AppendString(buf, n.value)
	return drlp.EndList(buf, offset)
}

func (n hashNode) encode(buf []byte) []byte {
	return drlp.AppendString(buf, n[:])
}

// encodeRef appends a child reference: the digest string, the raw inline
// encoding, or the empty string for no child.
func encodeRef(buf []byte, n node) []byte {
	if n == nil {
		return append(buf, rlp.EmptyString...)
	}
	return n.encode(buf)
}

// decoding

// decodeNode parses the encoding of a stored node. hash is the digest it was
// stored under, nil for inline nodes.
func decodeNode(hash *thor.Bytes32, buf []byte) (node, error) {
	if len(buf) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	if len(buf) == 1 && buf[0] == rlp.EmptyString[0] {
		return nil, nil
	}
	elems, _, err := rlp.SplitList(buf)
	if err != nil {
		return nil, fmt.Errorf("decode error: %v", err)
	}
	switch c, _ := rlp.CountValues(elems); c {
	case 2:
		n, err := decodeShort(hash, elems)
		return n, wrapError(err, "short")
	case 17:
		n, err := decodeBranch(hash, elems)
		return n, wrapError(err, "branch")
	default:
		return nil, fmt.Errorf("invalid number of list elements: %v", c)
	}
}

func decodeShort(hash *thor.Bytes32, elems []byte) (node, error) {
	kbuf, rest, err := rlp.SplitString(elems)
	if err != nil {
		return nil, err
	}
	path, leaf, err := DecodeCompact(kbuf)
	if err != nil {
		return nil, err
	}
	flag := nodeFlag{hash: hash}
	if leaf {
		val, _, err := rlp.SplitString(rest)
		if err != nil {
			return nil, fmt.Errorf("invalid value node: %v", err)
		}
		return &leafNode{path, append([]byte(nil), val...), flag}, nil
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("empty extension path")
	}
	r, _, err := decodeRef(rest)
	if err != nil {
		return nil, wrapError(err, "child")
	}
	if r == nil {
		return nil, fmt.Errorf("extension without child")
	}
	return &extensionNode{path, r, flag}, nil
}

func decodeBranch(hash *thor.Bytes32, elems []byte) (*branchNode, error) {
	n := &branchNode{flags: nodeFlag{hash: hash}}
	for i := range n.children {
		cld, rest, err := decodeRef(elems)
		if err != nil {
			return n, wrapError(err, fmt.Sprintf("[%d]", i))
		}
		n.children[i], elems = cld, rest
	}
	val, _, err := rlp.SplitString(elems)
	if err != nil {
		return n, err
	}
	if len(val) > 0 {
		n.value = append([]byte(nil), val...)
	}
	return n, nil
}

const hashLen = len(thor.Bytes32{})

func decodeRef(buf []byte) (node, []byte, error) {
	kind, val, rest, err := rlp.Split(buf)
	if err != nil {
		return nil, buf, err
	}
	switch {
	case kind == rlp.List:
		// inline node, its encoding must be shorter than a digest
		if size := len(buf) - len(rest); size >= hashLen {
			err := fmt.Errorf("oversized inline node (size is %d bytes, want size < %d)", size, hashLen)
			return nil, buf, err
		}
		n, err := decodeNode(nil, buf[:len(buf)-len(rest)])
		return n, rest, err
	case kind == rlp.String && len(val) == 0:
		return nil, rest, nil
	case kind == rlp.String && len(val) == hashLen:
		return hashNode(thor.BytesToBytes32(val)), rest, nil
	default:
		return nil, nil, fmt.Errorf("invalid RLP string size %d (want 0 or 32)", len(val))
	}
}

// decodeError wraps a decoding error with the path to the offending child.
type decodeError struct {
	what  error
	stack []string
}

func wrapError(err error, ctx string) error {
	if err == nil {
		return nil
	}
	if decErr, ok := err.(*decodeError); ok {
		decErr.stack = append(decErr.stack, ctx)
		return decErr
	}
	return &decodeError{err, []string{ctx}}
}

func (err *decodeError) Error() string {
	return fmt.Sprintf("%v (decode path: %s)", err.what, strings.Join(err.stack, "<-"))
}

func (err *decodeError) Unwrap() error { return err.what }
