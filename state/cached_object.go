// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

var logger = log.New("pkg", "state")

// code blobs by code hash, shared by all accounts.
var codeCache, _ = lru.NewARC(512)

func (f Filth) String() string {
	if f == Dirty {
		return "dirty"
	}
	return "clean"
}

// InitCode sets the code of the account. It is written to the store by CommitCode.
func (a *Account[S]) InitCode(code []byte) {
	a.codeHash = thor.Blake2b(code)
	a.code = code
	a.codeSize, a.hasCodeSize = len(code), true
	a.codeFilth = Dirty
}

// ResetCode replaces the code of the account.
func (a *Account[S]) ResetCode(code []byte) {
	a.InitCode(code)
}

// Code returns the loaded code, nil if none is loaded.
// The returned slice must not be modified.
func (a *Account[S]) Code() []byte {
	if len(a.code) == 0 {
		return nil
	}
	return a.code
}

// CodeSize returns the code size if known.
func (a *Account[S]) CodeSize() (int, bool) {
	return a.codeSize, a.hasCodeSize
}

// IsCached reports whether the code is loaded, or known to be empty.
func (a *Account[S]) IsCached() bool {
	return len(a.code) > 0 || a.codeHash == thor.EmptyCodeHash
}

// CacheCode loads the code by code hash, from the shared code cache or db.
// It reports false if db does not hold the code.
func (a *Account[S]) CacheCode(db hashdb.HashStore) ([]byte, bool) {
	logger.Trace("cache code", "cached", a.IsCached(), "codeHash", a.codeHash, "codeSize", len(a.code))

	if a.IsCached() {
		return a.code, true
	}
	if code, ok := codeCache.Get(a.codeHash); ok {
		a.CacheGivenCode(code.([]byte))
		return a.code, true
	}
	code, ok := db.Get(a.codeHash)
	if !ok {
		logger.Warn("failed reverse get of code", "codeHash", a.codeHash)
		return nil, false
	}
	codeCache.Add(a.codeHash, code)
	a.CacheGivenCode(code)
	return a.code, true
}

// CacheGivenCode takes code known to match the code hash.
func (a *Account[S]) CacheGivenCode(code []byte) {
	logger.Trace("cache given code", "cached", a.IsCached(), "codeHash", a.codeHash, "codeSize", len(code))
	a.code = code
	a.codeSize, a.hasCodeSize = len(code), true
}

// CacheCodeSize loads the code size if not known yet, reporting whether it is known after.
func (a *Account[S]) CacheCodeSize(db hashdb.HashStore) bool {
	if a.hasCodeSize {
		return true
	}
	if a.codeHash == thor.EmptyCodeHash {
		a.codeSize, a.hasCodeSize = 0, true
		return true
	}
	if code, ok := codeCache.Get(a.codeHash); ok {
		a.codeSize, a.hasCodeSize = len(code.([]byte)), true
		return true
	}
	code, ok := db.Get(a.codeHash)
	if !ok {
		logger.Warn("failed reverse get of code", "codeHash", a.codeHash)
		return false
	}
	a.codeSize, a.hasCodeSize = len(code), true
	return true
}

// CommitCode writes dirty code into db under its hash. Empty code is never
// written, the code hash alone marks it.
func (a *Account[S]) CommitCode(db hashdb.HashStore) {
	logger.Trace("commit code", "codeHash", a.codeHash, "filth", a.codeFilth, "codeSize", len(a.code))

	if a.codeFilth != Dirty {
		return
	}
	if len(a.code) > 0 {
		db.Emplace(a.codeHash, a.code)
		codeCache.Add(a.codeHash, a.code)
		metricAccountCommit().AddWithLabel(1, map[string]string{"target": "code"})
	}
	a.codeSize, a.hasCodeSize = len(a.code), true
	a.codeFilth = Clean
}
