// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hashdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/statecore/thor"
)

func TestMemoryDBRefCount(t *testing.T) {
	db := NewMemoryDB()
	val := []byte("node")
	h := thor.Blake2b(val)

	_, ok := db.Get(h)
	assert.False(t, ok)

	db.Emplace(h, val)
	db.Emplace(h, val)
	got, ok := db.Get(h)
	assert.True(t, ok)
	assert.Equal(t, val, got)

	db.Remove(h)
	_, ok = db.Get(h)
	assert.True(t, ok, "one reference left")

	db.Remove(h)
	_, ok = db.Get(h)
	assert.False(t, ok)
	assert.Equal(t, 0, db.Len())

	db.Purge()
	db.Emplace(h, val)
	assert.Equal(t, []thor.Bytes32{h}, db.Keys())
}

func TestMemoryDBRemoveBeforeEmplace(t *testing.T) {
	db := NewMemoryDB()
	val := []byte("late")
	h := thor.Blake2b(val)

	db.Remove(h)
	db.Emplace(h, val)
	_, ok := db.Get(h)
	assert.False(t, ok, "emplace cancels the earlier removal")

	db.Emplace(h, val)
	got, ok := db.Get(h)
	assert.True(t, ok)
	assert.Equal(t, val, got)
}

func TestMemoryDBConcurrentReaders(t *testing.T) {
	db := NewMemoryDB()
	var keys []thor.Bytes32
	for i := range 64 {
		v := []byte{byte(i), 0xaa}
		h := thor.Blake2b(v)
		db.Emplace(h, v)
		keys = append(keys, h)
	}

	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			for i, h := range keys {
				v, ok := db.Get(h)
				if !ok || v[0] != byte(i) {
					t.Errorf("unexpected value for %v", h)
				}
			}
			return nil
		})
	}
	assert.NoError(t, g.Wait())
}
