// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"hash"
	"io"
	"sync"

	"github.com/ethereum/go-ethereum/crypto/blake2b"
	"github.com/ethereum/go-ethereum/rlp"
)

var (
	// EmptyRoot is the root digest of a trie with no entries, the digest of RLP empty string.
	EmptyRoot = Blake2b(rlp.EmptyString)
	// EmptyCodeHash is the code hash of an account with no code.
	EmptyCodeHash = Blake2b(nil)
)

// NewBlake2b returns a blake2b-256 hasher.
func NewBlake2b() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}

// Blake2b computes blake2b-256 digest over the concatenation of data.
func Blake2b(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	return Blake2bFn(func(w io.Writer) {
		for _, b := range data {
			w.Write(b)
		}
	})
}

// Blake2bFn computes blake2b-256 digest of everything fn writes.
func Blake2bFn(fn func(w io.Writer)) (h Bytes32) {
	st := blake2bPool.Get().(*blake2bState)
	fn(st)
	st.Sum(st.out[:0])
	h = st.out
	st.Reset()
	blake2bPool.Put(st)
	return
}

type blake2bState struct {
	hash.Hash
	out Bytes32
}

var blake2bPool = sync.Pool{
	New: func() any {
		return &blake2bState{Hash: NewBlake2b()}
	},
}
