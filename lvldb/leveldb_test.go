// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/statecore/kv"
)

func openAll(t *testing.T) []*LevelDB {
	disk, err := New(filepath.Join(t.TempDir(), "db"), Options{CacheSize: 16, OpenFilesCacheCapacity: 16})
	require.NoError(t, err)
	mem, err := NewMem()
	require.NoError(t, err)
	t.Cleanup(func() {
		disk.Close()
		mem.Close()
	})
	return []*LevelDB{disk, mem}
}

func TestLevelDB(t *testing.T) {
	var (
		key     = []byte("123")
		value   = []byte("456")
		missing = []byte("abc")
	)

	for _, db := range openAll(t) {
		require.NoError(t, db.Put(key, value))

		got, err := db.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := db.Has(key)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = db.Has(missing)
		assert.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, db.Delete(key))
		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
	}
}

func TestLevelDBBulk(t *testing.T) {
	for _, db := range openAll(t) {
		bulk := db.Bulk()
		require.NoError(t, bulk.Put([]byte("a"), []byte("1")))
		require.NoError(t, bulk.Put([]byte("b"), []byte("2")))
		require.NoError(t, bulk.Delete([]byte("a")))

		// nothing visible before Write
		_, err := db.Get([]byte("b"))
		assert.True(t, db.IsNotFound(err))

		require.NoError(t, bulk.Write())
		got, err := db.Get([]byte("b"))
		assert.NoError(t, err)
		assert.Equal(t, []byte("2"), got)
		_, err = db.Get([]byte("a"))
		assert.True(t, db.IsNotFound(err))
	}
}

func TestLevelDBSnapshotAndBucket(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	store := kv.Bucket("n").NewStore(db)
	require.NoError(t, store.Put([]byte("k1"), []byte("v1")))
	require.NoError(t, store.Put([]byte("k2"), []byte("v2")))
	require.NoError(t, db.Put([]byte("x"), []byte("outside")))

	snap := store.Snapshot()
	require.NoError(t, store.Put([]byte("k1"), []byte("changed")))
	got, err := snap.Get([]byte("k1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
	snap.Release()

	it := store.Iterate(kv.Range{})
	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	it.Release()
	assert.NoError(t, it.Error())
	assert.Equal(t, []string{"k1", "k2"}, keys)
}
