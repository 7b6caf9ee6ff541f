// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

// NodeRecorder is told about every node fetched from the store during a lookup.
// The root is at depth 0.
type NodeRecorder interface {
	Record(hash thor.Bytes32, data []byte, depth uint32)
}

// Record is a node fetched during a lookup.
type Record struct {
	Hash  thor.Bytes32
	Data  []byte
	Depth uint32
}

// Recorder collects records at or below a minimum depth.
type Recorder struct {
	minDepth uint32
	records  []Record
}

// NewRecorder creates a recorder that keeps everything.
func NewRecorder() *Recorder { return &Recorder{} }

// NewRecorderWithDepth creates a recorder that ignores nodes above minDepth.
func NewRecorderWithDepth(minDepth uint32) *Recorder {
	return &Recorder{minDepth: minDepth}
}

func (r *Recorder) Record(hash thor.Bytes32, data []byte, depth uint32) {
	if depth >= r.minDepth {
		r.records = append(r.records, Record{hash, append([]byte(nil), data...), depth})
	}
}

// Drain returns the collected records in fetch order and clears the recorder.
func (r *Recorder) Drain() []Record {
	recs := r.records
	r.records = nil
	return recs
}

// Proof looks key up in t and returns the encoded nodes on the way, root first.
func Proof(t Trie, key []byte) ([][]byte, error) {
	rec := NewRecorder()
	if _, err := t.GetWith(key, rec); err != nil {
		return nil, err
	}
	recs := rec.Drain()
	proof := make([][]byte, 0, len(recs))
	for _, r := range recs {
		proof = append(proof, r.Data)
	}
	return proof, nil
}

// VerifyProof checks proof against root and returns the proven value of key.
// A nil value with nil error proves the key absent.
func VerifyProof(root thor.Bytes32, key []byte, proof [][]byte) ([]byte, error) {
	db := hashdb.NewMemoryDB()
	for _, enc := range proof {
		db.Emplace(thor.Blake2b(enc), enc)
	}
	t, err := NewTrieDB(db, root)
	if err != nil {
		return nil, errors.Wrap(err, "verify proof")
	}
	rec := NewRecorder()
	v, err := t.GetWith(key, rec)
	if err != nil {
		return nil, errors.Wrap(err, "verify proof")
	}
	// every node given must lie on the path
	used := rec.Drain()
	if len(used) != len(proof) {
		return nil, errors.Errorf("verify proof: %d nodes given, %d used", len(proof), len(used))
	}
	for i, r := range used {
		if !bytes.Equal(r.Data, proof[i]) {
			return nil, errors.Errorf("verify proof: node %d out of order", i)
		}
	}
	return v, nil
}
