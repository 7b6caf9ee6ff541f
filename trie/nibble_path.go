// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"bytes"
	"fmt"
)

// NibblePath is a key expanded into 4-bit units, one nibble per byte,
// high nibble of each key byte first.
type NibblePath []byte

// KeyToNibbles expands key into a new NibblePath.
func KeyToNibbles(key []byte) NibblePath {
	p := make(NibblePath, len(key)*2)
	for i, b := range key {
		p[i*2] = b >> 4
		p[i*2+1] = b & 0x0f
	}
	return p
}

// Len returns the number of nibbles.
func (p NibblePath) Len() int { return len(p) }

// At returns the i-th nibble.
func (p NibblePath) At(i int) byte { return p[i] }

// Slice returns nibbles [from, to). The result shares memory with p.
func (p NibblePath) Slice(from, to int) NibblePath { return p[from:to] }

// CommonPrefix returns the length of the longest common prefix of p and o.
func (p NibblePath) CommonPrefix(o NibblePath) int {
	n := min(len(p), len(o))
	for i := range n {
		if p[i] != o[i] {
			return i
		}
	}
	return n
}

// HasPrefix reports whether p begins with prefix.
func (p NibblePath) HasPrefix(prefix NibblePath) bool {
	return bytes.HasPrefix(p, prefix)
}

// Equal reports whether p and o are the same path.
func (p NibblePath) Equal(o NibblePath) bool {
	return bytes.Equal(p, o)
}

// Compare orders paths lexicographically, the same order as their keys.
func (p NibblePath) Compare(o NibblePath) int {
	return bytes.Compare(p, o)
}

// Bytes packs p back into key bytes. p must have even length.
func (p NibblePath) Bytes() []byte {
	if len(p)%2 != 0 {
		panic(fmt.Sprintf("nibble path of odd length %d is not a key", len(p)))
	}
	key := make([]byte, len(p)/2)
	for i := range key {
		key[i] = p[i*2]<<4 | p[i*2+1]
	}
	return key
}

// Concat returns a new path of p followed by all of others.
func (p NibblePath) Concat(others ...NibblePath) NibblePath {
	size := len(p)
	for _, o := range others {
		size += len(o)
	}
	out := make(NibblePath, 0, size)
	out = append(out, p...)
	for _, o := range others {
		out = append(out, o...)
	}
	return out
}

func (p NibblePath) String() string {
	const hexDigits = "0123456789abcdef"
	b := make([]byte, len(p))
	for i, n := range p {
		b[i] = hexDigits[n]
	}
	return string(b)
}

// hex-prefix flags, carried in the high nibble of the first byte.
const (
	compactOdd  = 0x1
	compactLeaf = 0x2
)

// EncodeCompact returns the hex-prefix encoding of p. The flag nibble marks
// whether the path ends in a leaf and whether it has odd length.
func (p NibblePath) EncodeCompact(leaf bool) []byte {
	return p.appendCompact(make([]byte, 0, len(p)/2+1), leaf)
}

func (p NibblePath) appendCompact(buf []byte, leaf bool) []byte {
	var flag byte
	if leaf {
		flag = compactLeaf
	}
	rest := p
	if len(p)%2 == 1 {
		buf = append(buf, (flag|compactOdd)<<4|p[0])
		rest = p[1:]
	} else {
		buf = append(buf, flag<<4)
	}
	for i := 0; i < len(rest); i += 2 {
		buf = append(buf, rest[i]<<4|rest[i+1])
	}
	return buf
}

// DecodeCompact decodes a hex-prefix encoded path, returning the path and the leaf flag.
func DecodeCompact(buf []byte) (NibblePath, bool, error) {
	if len(buf) == 0 {
		return nil, false, errEmptyCompact
	}
	flag := buf[0] >> 4
	if flag > compactOdd|compactLeaf {
		return nil, false, fmt.Errorf("invalid hex-prefix flag %#x", flag)
	}
	nibbles := KeyToNibbles(buf)
	if flag&compactOdd != 0 {
		nibbles = nibbles[1:]
	} else {
		if nibbles[1] != 0 {
			return nil, false, fmt.Errorf("invalid hex-prefix padding %#x", nibbles[1])
		}
		nibbles = nibbles[2:]
	}
	return nibbles, flag&compactLeaf != 0, nil
}
