// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hashdb

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/statecore/thor"
)

var _ HashStore = (*AccountDB)(nil)

// AccountDB namespaces a shared HashStore for one account, so that equal
// nodes of different accounts' storage tries do not share a reference count.
// The empty trie root is served without touching the store.
type AccountDB struct {
	src         HashStore
	addressHash thor.Bytes32
}

// NewAccountDB creates an AccountDB for the account whose address hashes to addressHash.
func NewAccountDB(src HashStore, addressHash thor.Bytes32) *AccountDB {
	return &AccountDB{src, addressHash}
}

// NewAccountDBFromAddress is NewAccountDB with the address hash computed from addr.
func NewAccountDBFromAddress(src HashStore, addr thor.Address) *AccountDB {
	return NewAccountDB(src, thor.Blake2b(addr[:]))
}

// combineKey mixes the trailing 20 bytes of the address hash into key.
func combineKey(addressHash, key thor.Bytes32) thor.Bytes32 {
	for i := 12; i < len(key); i++ {
		key[i] ^= addressHash[i]
	}
	return key
}

func (a *AccountDB) Get(hash thor.Bytes32) ([]byte, bool) {
	if hash == thor.EmptyRoot {
		return rlp.EmptyString, true
	}
	return a.src.Get(combineKey(a.addressHash, hash))
}

func (a *AccountDB) Emplace(hash thor.Bytes32, value []byte) {
	if hash == thor.EmptyRoot {
		return
	}
	a.src.Emplace(combineKey(a.addressHash, hash), value)
}

func (a *AccountDB) Remove(hash thor.Bytes32) {
	if hash == thor.EmptyRoot {
		return
	}
	a.src.Remove(combineKey(a.addressHash, hash))
}
