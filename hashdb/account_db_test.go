// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hashdb

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/vechain/statecore/thor"
)

func TestAccountDBIsolation(t *testing.T) {
	shared := NewMemoryDB()
	a := NewAccountDBFromAddress(shared, thor.BytesToAddress([]byte{1}))
	b := NewAccountDBFromAddress(shared, thor.BytesToAddress([]byte{2}))

	val := []byte("same node")
	h := thor.Blake2b(val)
	a.Emplace(h, val)

	got, ok := a.Get(h)
	assert.True(t, ok)
	assert.Equal(t, val, got)

	_, ok = b.Get(h)
	assert.False(t, ok)
	_, ok = shared.Get(h)
	assert.False(t, ok, "stored under the mixed key")

	a.Remove(h)
	_, ok = a.Get(h)
	assert.False(t, ok)
}

func TestAccountDBEmptyRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockHashStore(ctrl)
	// no calls expected on src
	db := NewAccountDB(src, thor.Blake2b([]byte("addr")))

	got, ok := db.Get(thor.EmptyRoot)
	assert.True(t, ok)
	assert.Equal(t, rlp.EmptyString, got)

	db.Emplace(thor.EmptyRoot, rlp.EmptyString)
	db.Remove(thor.EmptyRoot)
}

func TestCombineKey(t *testing.T) {
	addrHash := thor.Blake2b([]byte("addr"))
	key := thor.Blake2b([]byte("key"))

	mixed := combineKey(addrHash, key)
	assert.Equal(t, key[:12], mixed[:12])
	assert.NotEqual(t, key, mixed)
	assert.Equal(t, key, combineKey(addrHash, mixed))
}
