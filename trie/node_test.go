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
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/statecore/thor"
)

func TestNodeEncoding(t *testing.T) {
	digest := thor.Blake2b([]byte("child"))
	inline := &leafNode{path: NibblePath{5}, value: []byte("x")}

	branch := &branchNode{}
	branch.children[0] = hashNode(digest)
	branch.children[7] = inline
	branch.value = []byte("branch value")

	for _, n := range []node{
		&leafNode{path: NibblePath{1, 2, 3}, value: []byte("leaf value")},
		&extensionNode{path: NibblePath{4, 5}, child: hashNode(digest)},
		&extensionNode{path: NibblePath{4}, child: inline},
		branch,
	} {
		enc := n.encode(nil)
		dec, err := decodeNode(&digest, enc)
		require.NoError(t, err, spew.Sdump(n))
		assert.True(t, bytes.Equal(enc, dec.encode(nil)), "%v != %v", n, dec)

		h, dirty := dec.cache()
		assert.Equal(t, &digest, h)
		assert.False(t, dirty)
	}
}

func TestDecodeEmptyNode(t *testing.T) {
	n, err := decodeNode(nil, []byte{0x80})
	assert.NoError(t, err)
	assert.Nil(t, n)
}

func TestDecodeInvalidNodes(t *testing.T) {
	for _, enc := range [][]byte{
		nil,
		{0xc0},                   // empty list
		{0xc3, 0x80, 0x80, 0x80}, // three elements
		{0xc3, 0x00, 0x82, 0x01}, // truncated
		// extension with a 2 byte child reference
		{0xc5, 0x81, 0x11, 0x82, 0xab, 0xcd},
	} {
		_, err := decodeNode(nil, enc)
		assert.Error(t, err, "%x", enc)
	}
}

func TestDecodeOversizedInline(t *testing.T) {
	big := &leafNode{path: NibblePath{1}, value: bytes.Repeat([]byte{1}, 40)}
	ext := &extensionNode{path: NibblePath{2}, child: big}
	_, err := decodeNode(nil, ext.encode(nil))
	assert.ErrorContains(t, err, "oversized inline node")
}
