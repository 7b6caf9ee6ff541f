// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
	"github.com/vechain/statecore/trie"
)

// BasicAccount is the account record stored in the world state trie.
type BasicAccount struct {
	Nonce       *uint256.Int
	Balance     *uint256.Int
	StorageRoot thor.Bytes32 // merkle root of the storage trie
	CodeHash    thor.Bytes32 // hash of code
}

// DecodeBasicAccount decodes an RLP encoded account record.
func DecodeBasicAccount(data []byte) (*BasicAccount, error) {
	var b BasicAccount
	if err := rlp.DecodeBytes(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Filth tells whether the code of an account needs writing to the store.
type Filth int

const (
	Clean Filth = iota
	Dirty
)

// Account is the in-memory account, generic over its storage policy.
//
// Balance, nonce, code and storage changes are owned by a single writer.
// AddressHash and storage reads may be called concurrently.
type Account[S StorageSet[S]] struct {
	balance     uint256.Int
	nonce       uint256.Int
	storageRoot thor.Bytes32
	codeHash    thor.Bytes32

	code        []byte // shared between clones, never modified in place
	codeSize    int
	hasCodeSize bool
	codeFilth   Filth

	lock        sync.Mutex
	addressHash *thor.Bytes32

	storage S
}

func newAccount[S StorageSet[S]](balance, nonce *uint256.Int, storage S) *Account[S] {
	a := &Account[S]{
		storageRoot: thor.EmptyRoot,
		codeHash:    thor.EmptyCodeHash,
		storage:     storage,
	}
	a.balance.Set(balance)
	a.nonce.Set(nonce)
	return a
}

func accountFromBasic[S StorageSet[S]](b *BasicAccount, storage S) *Account[S] {
	a := &Account[S]{
		storageRoot: b.StorageRoot,
		codeHash:    b.CodeHash,
		storage:     storage,
	}
	if b.Balance != nil {
		a.balance.Set(b.Balance)
	}
	if b.Nonce != nil {
		a.nonce.Set(b.Nonce)
	}
	return a
}

// Balance returns a copy of the balance.
func (a *Account[S]) Balance() *uint256.Int { return new(uint256.Int).Set(&a.balance) }

// Nonce returns a copy of the nonce.
func (a *Account[S]) Nonce() *uint256.Int { return new(uint256.Int).Set(&a.nonce) }

func (a *Account[S]) CodeHash() thor.Bytes32 { return a.codeHash }

// Storage returns the storage policy, for inspection.
func (a *Account[S]) Storage() S { return a.storage }

// StorageIsClean reports whether there are no uncommitted storage changes.
func (a *Account[S]) StorageIsClean() bool { return a.storage.Clean() }

// StorageRoot returns the root of the storage trie.
// It panics if there are uncommitted storage changes.
func (a *Account[S]) StorageRoot() thor.Bytes32 {
	if !a.storage.Clean() {
		panic("storage root read with uncommitted storage changes")
	}
	return a.storageRoot
}

func (a *Account[S]) IncNonce() {
	a.nonce.AddUint64(&a.nonce, 1)
}

func (a *Account[S]) AddBalance(x *uint256.Int) {
	a.balance.Add(&a.balance, x)
}

// SubBalance decreases the balance by x. The caller must make sure the
// balance covers x, it panics otherwise.
func (a *Account[S]) SubBalance(x *uint256.Int) {
	if a.balance.Lt(x) {
		panic(fmt.Sprintf("balance %v less than %v", &a.balance, x))
	}
	a.balance.Sub(&a.balance, x)
}

// AddressHash returns the digest of addr, computed once.
func (a *Account[S]) AddressHash(addr thor.Address) thor.Bytes32 {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.addressHash == nil {
		h := thor.Blake2b(addr[:])
		a.addressHash = &h
	}
	return *a.addressHash
}

// CommitStorage writes the pending storage changes into the storage trie in db
// and updates the storage root. Without pending changes it does nothing.
func (a *Account[S]) CommitStorage(db hashdb.HashStore) error {
	if a.storage.Clean() {
		return nil
	}
	t, err := trie.NewSecTrieDBMutFromExisting(db, a.storageRoot)
	if err != nil {
		return &Error{err}
	}
	if err := a.storage.apply(t); err != nil {
		return &Error{err}
	}
	a.storageRoot = t.Root()
	a.storage.settle()

	metricAccountCommit().AddWithLabel(1, map[string]string{"target": "storage"})
	logger.Debug("storage committed", "root", a.storageRoot)
	return nil
}

// DiscardStorageChanges drops the pending storage changes.
func (a *Account[S]) DiscardStorageChanges() {
	a.storage.discard()
}

// IsEmpty reports whether the account may be pruned from the world state:
// no balance, nonce, code or storage.
// It panics if there are uncommitted storage changes.
func (a *Account[S]) IsEmpty() bool {
	if !a.storage.Clean() {
		panic("emptiness checked with uncommitted storage changes")
	}
	return a.IsNull() && a.storageRoot == thor.EmptyRoot
}

// IsNull reports whether balance and nonce are zero and there is no code.
func (a *Account[S]) IsNull() bool {
	return a.balance.IsZero() && a.nonce.IsZero() && a.codeHash == thor.EmptyCodeHash
}

// IsBasic reports whether the account has no code.
func (a *Account[S]) IsBasic() bool {
	return a.codeHash == thor.EmptyCodeHash
}

// Basic returns the account record.
func (a *Account[S]) Basic() *BasicAccount {
	return &BasicAccount{
		Nonce:       a.Nonce(),
		Balance:     a.Balance(),
		StorageRoot: a.storageRoot,
		CodeHash:    a.codeHash,
	}
}

// RLP encodes the account record. Storage must be committed first.
func (a *Account[S]) RLP() []byte {
	b := a.Basic()
	b.StorageRoot = a.StorageRoot()
	data, err := rlp.EncodeToBytes(b)
	if err != nil {
		panic(err)
	}
	return data
}

// cloneWith copies everything but the lock and the storage.
func (a *Account[S]) cloneWith(storage S) *Account[S] {
	c := &Account[S]{
		balance:     a.balance,
		nonce:       a.nonce,
		storageRoot: a.storageRoot,
		codeHash:    a.codeHash,
		code:        a.code,
		codeSize:    a.codeSize,
		hasCodeSize: a.hasCodeSize,
		codeFilth:   a.codeFilth,
		storage:     storage,
	}
	a.lock.Lock()
	c.addressHash = a.addressHash
	a.lock.Unlock()
	return c
}

// CloneBasic copies the account without storage changes or cache.
func (a *Account[S]) CloneBasic() *Account[S] {
	return a.cloneWith(a.storage.cloneBasic())
}

// CloneDirty copies the account with its storage changes, but not the read cache.
func (a *Account[S]) CloneDirty() *Account[S] {
	return a.cloneWith(a.storage.cloneDirty())
}

// CloneAll copies the account with storage changes and read cache.
func (a *Account[S]) CloneAll() *Account[S] {
	return a.cloneWith(a.storage.cloneAll())
}

// OverwriteWith replaces a with other. Storage changes are taken from other,
// the read caches are merged.
func (a *Account[S]) OverwriteWith(other *Account[S]) {
	a.balance = other.balance
	a.nonce = other.nonce
	a.storageRoot = other.storageRoot
	a.codeHash = other.codeHash
	a.code = other.code
	a.codeSize = other.codeSize
	a.hasCodeSize = other.hasCodeSize
	a.codeFilth = other.codeFilth

	other.lock.Lock()
	h := other.addressHash
	other.lock.Unlock()
	a.lock.Lock()
	a.addressHash = h
	a.lock.Unlock()

	a.storage.overwrite(other.storage)
}

func (a *Account[S]) String() string {
	return fmt.Sprintf(`Account(
	nonce: %v,
	balance: %v,
	storageRoot: %v,
	codeHash: %v,
	codeFilth: %v)`, &a.nonce, &a.balance, a.storageRoot, a.codeHash, a.codeFilth)
}
