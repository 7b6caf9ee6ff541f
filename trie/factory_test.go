// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

func TestParseTrieSpec(t *testing.T) {
	for _, spec := range []TrieSpec{Secure, Generic, Fat} {
		parsed, err := ParseTrieSpec(spec.String())
		require.NoError(t, err)
		assert.Equal(t, spec, parsed)
	}
	parsed, err := ParseTrieSpec("FAT")
	require.NoError(t, err)
	assert.Equal(t, Fat, parsed)

	_, err = ParseTrieSpec("skinny")
	assert.Error(t, err)

	var zero TrieSpec
	assert.Equal(t, Secure, zero, "secure is the default")
	assert.Equal(t, "TrieSpec(9)", TrieSpec(9).String())
}

func TestFactoryVariants(t *testing.T) {
	roots := make(map[TrieSpec]thor.Bytes32)
	for _, spec := range []TrieSpec{Secure, Generic, Fat} {
		f := NewFactory(spec)
		assert.Equal(t, spec, f.Spec())
		assert.Equal(t, spec == Fat, f.IsFat())

		db := hashdb.NewMemoryDB()
		tr := f.Create(db)
		for _, kv := range dogs {
			_, err := tr.Insert([]byte(kv.k), []byte(kv.v))
			require.NoError(t, err)
		}
		roots[spec] = tr.Root()

		ro, err := f.Readonly(db, roots[spec])
		require.NoError(t, err)
		for _, kv := range dogs {
			v, err := ro.Get([]byte(kv.k))
			require.NoError(t, err)
			assert.Equal(t, []byte(kv.v), v, "%v %s", spec, kv.k)
		}

		mut, err := f.FromExisting(db, roots[spec])
		require.NoError(t, err)
		_, err = mut.Remove([]byte("horse"))
		require.NoError(t, err)
		assert.NotEqual(t, roots[spec], mut.Root())
	}
	// secure and fat tries share the trie layout
	assert.Equal(t, roots[Secure], roots[Fat])
	assert.NotEqual(t, roots[Secure], roots[Generic])
}

func TestSecureTrieRaw(t *testing.T) {
	db := hashdb.NewMemoryDB()
	tr := NewSecTrieDBMut(db)
	_, err := tr.Insert([]byte("dog"), []byte("puppy"))
	require.NoError(t, err)

	h := thor.Blake2b([]byte("dog"))
	v, err := tr.Raw().Get(h[:])
	require.NoError(t, err)
	assert.Equal(t, []byte("puppy"), v)

	ro, err := NewSecTrieDB(db, tr.Root())
	require.NoError(t, err)
	it, err := ro.Iterator()
	require.NoError(t, err)
	require.True(t, it.Next())
	assert.Equal(t, h[:], it.Key(), "secure iteration yields hashed keys")
}

func TestFatKeys(t *testing.T) {
	db := hashdb.NewMemoryDB()
	tr := NewFatDBMut(db)
	for _, kv := range dogs {
		_, err := tr.Insert([]byte(kv.k), []byte(kv.v))
		require.NoError(t, err)
	}
	// overwrite keeps a single aux entry
	_, err := tr.Insert([]byte("dog"), []byte("hound"))
	require.NoError(t, err)
	root := tr.Root()

	ro, err := NewFatDB(db, root)
	require.NoError(t, err)
	it, err := ro.Iterator()
	require.NoError(t, err)
	seen := make(map[string]string)
	for it.Next() {
		seen[string(it.Key())] = string(it.Value())
	}
	require.NoError(t, it.Error())
	assert.Equal(t, map[string]string{
		"do":    "verb",
		"dog":   "hound",
		"doge":  "coin",
		"horse": "stallion",
	}, seen)

	hdog := thor.Blake2b([]byte("dog"))
	aux := auxKey(hdog[:])
	clear, ok := db.Get(aux)
	require.True(t, ok)
	assert.Equal(t, []byte("dog"), clear)

	// removing drops the aux entry, removing again is a no-op
	mut, err := NewFatDBMutFromExisting(db, root)
	require.NoError(t, err)
	old, err := mut.Remove([]byte("dog"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hound"), old)
	_, ok = db.Get(aux)
	assert.False(t, ok)
	old, err = mut.Remove([]byte("dog"))
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestFatMissingAux(t *testing.T) {
	db := hashdb.NewMemoryDB()
	tr := NewFatDBMut(db)
	_, err := tr.Insert([]byte("dog"), []byte("puppy"))
	require.NoError(t, err)
	root := tr.Root()

	hdog := thor.Blake2b([]byte("dog"))
	db.Remove(auxKey(hdog[:]))

	ro, err := NewFatDB(db, root)
	require.NoError(t, err)
	it, err := ro.Iterator()
	require.NoError(t, err)
	assert.False(t, it.Next())
	assert.True(t, IsIncompleteDatabase(it.Error()))
}
