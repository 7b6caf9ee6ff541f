// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hashdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/statecore/kv"
	"github.com/vechain/statecore/lvldb"
	"github.com/vechain/statecore/thor"
)

func newBacking(t *testing.T) kv.Store {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return kv.Bucket("n").NewStore(db)
}

func TestKVStoreReadYourWrites(t *testing.T) {
	backing := newBacking(t)
	s := NewKVStore(backing, KVStoreOptions{CacheSizeMB: 1})

	val := []byte("blob")
	h := thor.Blake2b(val)
	s.Emplace(h, val)

	got, ok := s.Get(h)
	assert.True(t, ok)
	assert.Equal(t, val, got)
	assert.Equal(t, 1, s.Pending())

	// not yet in the backing store
	_, err := backing.Get(h[:])
	assert.True(t, backing.IsNotFound(err))

	require.NoError(t, s.Commit())
	assert.Zero(t, s.Pending())
	raw, err := backing.Get(h[:])
	require.NoError(t, err)
	assert.Equal(t, val, raw)

	// fresh handle sees committed data
	s2 := NewKVStore(backing, KVStoreOptions{CacheSizeMB: 1})
	got, ok = s2.Get(h)
	assert.True(t, ok)
	assert.Equal(t, val, got)
	// second read served from the blob cache
	got, ok = s2.Get(h)
	assert.True(t, ok)
	assert.Equal(t, val, got)
	_, hit, _ := s2.stats.Stats()
	assert.Equal(t, int64(1), hit)
}

func TestKVStoreRemove(t *testing.T) {
	backing := newBacking(t)
	s := NewKVStore(backing, KVStoreOptions{CacheSizeMB: 1})

	val := []byte("gone soon")
	h := thor.Blake2b(val)
	s.Emplace(h, val)
	require.NoError(t, s.Commit())

	_, ok := s.Get(h)
	assert.True(t, ok)

	s.Remove(h)
	_, ok = s.Get(h)
	assert.False(t, ok, "removal visible before commit")

	require.NoError(t, s.Commit())
	_, ok = s.Get(h)
	assert.False(t, ok)
	_, err := backing.Get(h[:])
	assert.True(t, backing.IsNotFound(err))
}

func TestKVStoreNoCache(t *testing.T) {
	s := NewKVStore(newBacking(t), KVStoreOptions{})
	val := []byte("x")
	h := thor.Blake2b(val)
	s.Emplace(h, val)
	require.NoError(t, s.Commit())
	got, ok := s.Get(h)
	assert.True(t, ok)
	assert.Equal(t, val, got)
}
