// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

func newWideTrie(t *testing.T, n int) (*TrieDB, [][]byte) {
	db := hashdb.NewMemoryDB()
	tr := NewTrieDBMut(db)
	keys := make([][]byte, 0, n)
	for i := range n {
		k := thor.Blake2b(binary.BigEndian.AppendUint32(nil, uint32(i)))
		keys = append(keys, k[:])
		_, err := tr.Insert(k[:], bytes.Repeat([]byte{byte(i)}, 64))
		require.NoError(t, err)
	}
	ro, err := NewTrieDB(db, tr.Root())
	require.NoError(t, err)
	return ro, keys
}

func TestRecorder(t *testing.T) {
	ro, keys := newWideTrie(t, 128)
	db := ro.DB()

	rec := NewRecorder()
	v, err := ro.GetWith(keys[0], rec)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0}, 64), v)

	recs := rec.Drain()
	require.NotEmpty(t, recs)
	assert.Equal(t, ro.Root(), recs[0].Hash, "root comes first")
	for i, r := range recs {
		assert.Equal(t, uint32(i), r.Depth)
		assert.Equal(t, thor.Blake2b(r.Data), r.Hash)
		stored, ok := db.Get(r.Hash)
		require.True(t, ok)
		assert.Equal(t, stored, r.Data)
	}
	assert.Empty(t, rec.Drain(), "drained")

	deep := NewRecorderWithDepth(1)
	_, err = ro.GetWith(keys[0], deep)
	require.NoError(t, err)
	assert.Equal(t, recs[1:], deep.Drain())
}

func TestRecorderEmptyTrie(t *testing.T) {
	ro, err := NewTrieDB(hashdb.NewMemoryDB(), thor.EmptyRoot)
	require.NoError(t, err)
	rec := NewRecorder()
	v, err := ro.GetWith([]byte("key"), rec)
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.Empty(t, rec.Drain())
}

func TestProof(t *testing.T) {
	ro, keys := newWideTrie(t, 128)

	for i, k := range keys[:16] {
		proof, err := Proof(ro, k)
		require.NoError(t, err)
		v, err := VerifyProof(ro.Root(), k, proof)
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{byte(i)}, 64), v)
	}

	// absence
	absent := thor.Blake2b([]byte("absent"))
	proof, err := Proof(ro, absent[:])
	require.NoError(t, err)
	v, err := VerifyProof(ro.Root(), absent[:], proof)
	require.NoError(t, err)
	assert.Nil(t, v)

	// a proof for one key does not prove another
	proof, err = Proof(ro, keys[0])
	require.NoError(t, err)
	_, err = VerifyProof(ro.Root(), keys[1], proof)
	assert.Error(t, err)

	// tampered node
	proof[len(proof)-1] = append([]byte(nil), proof[len(proof)-1]...)
	proof[len(proof)-1][len(proof[len(proof)-1])-1] ^= 1
	_, err = VerifyProof(ro.Root(), keys[0], proof)
	assert.True(t, IsIncompleteDatabase(err))

	_, err = VerifyProof(ro.Root(), keys[0], nil)
	assert.True(t, IsInvalidStateRoot(err))
}
