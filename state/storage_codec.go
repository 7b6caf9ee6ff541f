// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/statecore/thor"
)

// SlotCodec maps one storage key/value shape onto the storage trie.
type SlotCodec[K comparable, V any] interface {
	// TrieKey returns the key in the storage trie, before hashing.
	TrieKey(key K) []byte
	// IsZero reports whether value clears the slot. A value is zero iff all its bytes are zero.
	IsZero(value V) bool
	Encode(value V) []byte
	Decode(data []byte) (V, error)
}

// Predefined storage codecs
var (
	Bytes16Codec SlotCodec[thor.Bytes16, thor.Bytes16] = bytes16Codec{}
	Bytes32Codec SlotCodec[thor.Bytes16, thor.Bytes32] = bytes32Codec{}
	BlobCodec    SlotCodec[string, []byte]             = blobCodec{}
)

// fixed width values are stored as big-endian integers, leading zeros trimmed.
func encodeTrimmed(v []byte) []byte {
	enc, _ := rlp.EncodeToBytes(bytes.TrimLeft(v, "\x00"))
	return enc
}

func decodeTrimmed(data []byte, width int) ([]byte, error) {
	content, _, err := rlp.SplitString(data)
	if err != nil {
		return nil, err
	}
	if len(content) > width {
		return nil, fmt.Errorf("storage value of %d bytes, want at most %d", len(content), width)
	}
	return content, nil
}

type bytes16Codec struct{}

func (bytes16Codec) TrieKey(key thor.Bytes16) []byte  { return key[:] }
func (bytes16Codec) IsZero(value thor.Bytes16) bool   { return value.IsZero() }
func (bytes16Codec) Encode(value thor.Bytes16) []byte { return encodeTrimmed(value[:]) }
func (bytes16Codec) Decode(data []byte) (thor.Bytes16, error) {
	content, err := decodeTrimmed(data, 16)
	if err != nil {
		return thor.Bytes16{}, err
	}
	return thor.BytesToBytes16(content), nil
}

type bytes32Codec struct{}

func (bytes32Codec) TrieKey(key thor.Bytes16) []byte  { return key[:] }
func (bytes32Codec) IsZero(value thor.Bytes32) bool   { return value.IsZero() }
func (bytes32Codec) Encode(value thor.Bytes32) []byte { return encodeTrimmed(value[:]) }
func (bytes32Codec) Decode(data []byte) (thor.Bytes32, error) {
	content, err := decodeTrimmed(data, 32)
	if err != nil {
		return thor.Bytes32{}, err
	}
	return thor.BytesToBytes32(content), nil
}

// blobCodec stores variable length values as they are.
type blobCodec struct{}

func (blobCodec) TrieKey(key string) []byte { return []byte(key) }

func (blobCodec) IsZero(value []byte) bool {
	for _, b := range value {
		if b != 0 {
			return false
		}
	}
	return true
}

func (blobCodec) Encode(value []byte) []byte {
	enc, _ := rlp.EncodeToBytes(value)
	return enc
}

func (blobCodec) Decode(data []byte) ([]byte, error) {
	content, _, err := rlp.SplitString(data)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(content), nil
}
