// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package hashdb provides content addressed byte stores for trie nodes and code blobs.
package hashdb

import "github.com/vechain/statecore/thor"

//go:generate mockgen -source hash_store.go -destination hash_store_mocks.go -package hashdb

// HashStore is a content addressed byte store. Values are keyed by their digest,
// except for auxiliary entries whose keys are digests of something else.
// A handle must observe its own writes. No transactional guarantee is assumed.
type HashStore interface {
	// Get returns the value stored under hash.
	Get(hash thor.Bytes32) ([]byte, bool)
	// Emplace stores value under hash.
	Emplace(hash thor.Bytes32, value []byte)
	// Remove drops one reference to hash.
	Remove(hash thor.Bytes32)
}
