// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"fmt"

	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

// hashedStore stores node encodings under their digests.
type hashedStore struct {
	db hashdb.HashStore
}

// insert stores enc and returns its digest.
func (s *hashedStore) insert(enc []byte) thor.Bytes32 {
	h := thor.Blake2b(enc)
	s.db.Emplace(h, enc)
	metricNodeSize().Observe(int64(len(enc)))
	return h
}

// has reports whether a node is stored under h.
func (s *hashedStore) has(h thor.Bytes32) bool {
	_, ok := s.db.Get(h)
	return ok
}

// resolve fetches and decodes the node stored under h. path is where the
// reference was met, for error reporting. rec, if not nil, is told about the fetch.
func (s *hashedStore) resolve(h thor.Bytes32, path NibblePath, rec NodeRecorder, depth uint32) (node, error) {
	enc, ok := s.db.Get(h)
	if !ok {
		metricNodeLookup().AddWithLabel(1, map[string]string{"event": "miss"})
		return nil, &IncompleteDatabaseError{Hash: h, Path: append(NibblePath(nil), path...)}
	}
	metricNodeLookup().AddWithLabel(1, map[string]string{"event": "hit"})
	if rec != nil {
		rec.Record(h, enc, depth)
	}
	n, err := decodeNode(&h, enc)
	if err != nil {
		return nil, fmt.Errorf("decode node %v: %w", h, err)
	}
	return n, nil
}
