// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

func TestCommitCode(t *testing.T) {
	db := hashdb.NewMemoryDB()
	code := []byte("code for commit round trip")

	a := NewFVMContract(uint256.NewInt(0), uint256.NewInt(0))
	_, known := a.CodeSize()
	assert.False(t, known)
	a.InitCode(code)
	assert.Equal(t, thor.Blake2b(code), a.CodeHash())
	a.CommitCode(db)

	stored, ok := db.Get(a.CodeHash())
	require.True(t, ok)
	assert.Equal(t, code, stored)

	b := FVMAccountFromBasic(a.Basic())
	assert.False(t, b.IsCached())
	assert.Nil(t, b.Code())
	got, ok := b.CacheCode(db)
	require.True(t, ok)
	assert.Equal(t, code, got)
	assert.True(t, b.IsCached())
	size, known := b.CodeSize()
	assert.True(t, known)
	assert.Equal(t, len(code), size)
}

func TestCommitCodeWritesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := hashdb.NewMockHashStore(ctrl)
	code := []byte("code written once")
	db.EXPECT().Emplace(thor.Blake2b(code), code).Times(1)

	a := NewFVMContract(uint256.NewInt(0), uint256.NewInt(0))
	a.InitCode(code)
	a.CommitCode(db)
	a.CommitCode(db) // clean now
}

func TestCommitEmptyCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	// any call fails the test
	db := hashdb.NewMockHashStore(ctrl)

	a := NewFVMContract(uint256.NewInt(0), uint256.NewInt(0))
	a.InitCode(nil)
	a.CommitCode(db)
	assert.Equal(t, thor.EmptyCodeHash, a.CodeHash())
	size, known := a.CodeSize()
	assert.True(t, known)
	assert.Zero(t, size)
	assert.True(t, a.IsCached())
	assert.Nil(t, a.Code())
}

func TestCacheCodeMissing(t *testing.T) {
	b := AVMAccountFromBasic(&BasicAccount{
		Nonce:       uint256.NewInt(0),
		Balance:     uint256.NewInt(0),
		StorageRoot: thor.EmptyRoot,
		CodeHash:    thor.Blake2b([]byte("code nobody stored")),
	})
	code, ok := b.CacheCode(hashdb.NewMemoryDB())
	assert.False(t, ok)
	assert.Nil(t, code)
	assert.False(t, b.CacheCodeSize(hashdb.NewMemoryDB()))

	b.CacheGivenCode([]byte("code nobody stored"))
	assert.True(t, b.IsCached())
	assert.True(t, b.CacheCodeSize(nil))
}

func TestCacheCodeSize(t *testing.T) {
	db := hashdb.NewMemoryDB()
	code := []byte("code for size lookup")
	db.Emplace(thor.Blake2b(code), code)

	b := FVMAccountFromBasic(&BasicAccount{
		Nonce:       uint256.NewInt(0),
		Balance:     uint256.NewInt(0),
		StorageRoot: thor.EmptyRoot,
		CodeHash:    thor.Blake2b(code),
	})
	require.True(t, b.CacheCodeSize(db))
	size, _ := b.CodeSize()
	assert.Equal(t, len(code), size)
	assert.False(t, b.IsCached(), "size lookup does not load the code")

	e := FVMAccountFromBasic(&BasicAccount{
		Nonce:       uint256.NewInt(0),
		Balance:     uint256.NewInt(0),
		StorageRoot: thor.EmptyRoot,
		CodeHash:    thor.EmptyCodeHash,
	})
	assert.True(t, e.CacheCodeSize(nil))
}

func newCodeAccount(code []byte) *FVMAccount {
	return FVMAccountFromBasic(&BasicAccount{
		Nonce:       uint256.NewInt(0),
		Balance:     uint256.NewInt(0),
		StorageRoot: thor.EmptyRoot,
		CodeHash:    thor.Blake2b(code),
	})
}

func TestCacheCodeFromStore(t *testing.T) {
	codeCache.Purge()
	db := hashdb.NewMemoryDB()
	code := []byte("code present only in the store")
	hash := thor.Blake2b(code)
	db.Emplace(hash, code)
	require.False(t, codeCache.Contains(hash))

	a := newCodeAccount(code)
	got, ok := a.CacheCode(db)
	require.True(t, ok)
	assert.Equal(t, code, got)
	size, known := a.CodeSize()
	assert.True(t, known)
	assert.Equal(t, len(code), size)
	// store hits fill the shared cache
	assert.True(t, codeCache.Contains(hash))

	// served from the shared cache, the store is not consulted
	ctrl := gomock.NewController(t)
	mock := hashdb.NewMockHashStore(ctrl)
	b := newCodeAccount(code)
	got, ok = b.CacheCode(mock)
	require.True(t, ok)
	assert.Equal(t, code, got)
}

func TestCacheCodeSizeFromStore(t *testing.T) {
	codeCache.Purge()
	code := []byte("code size present only in the store")
	hash := thor.Blake2b(code)

	ctrl := gomock.NewController(t)
	db := hashdb.NewMockHashStore(ctrl)
	db.EXPECT().Get(hash).Return(code, true).Times(1)

	a := newCodeAccount(code)
	require.True(t, a.CacheCodeSize(db))
	require.True(t, a.CacheCodeSize(db)) // known now
	size, _ := a.CodeSize()
	assert.Equal(t, len(code), size)
}
