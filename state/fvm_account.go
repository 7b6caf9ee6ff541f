// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/holiman/uint256"

	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

// FVMAccount is an account with 128-bit keyed storage, holding 128-bit
// (normal) and 256-bit (wide) values.
type FVMAccount struct {
	*Account[*FVMStorage]
}

// NewFVMAccount creates a plain account with no code.
func NewFVMAccount(balance, nonce *uint256.Int) *FVMAccount {
	a := newAccount(balance, nonce, newFVMStorage())
	a.hasCodeSize = true
	return &FVMAccount{a}
}

// NewFVMContract creates an account whose code is to be set.
func NewFVMContract(balance, nonce *uint256.Int) *FVMAccount {
	return &FVMAccount{newAccount(balance, nonce, newFVMStorage())}
}

// FVMAccountFromBasic creates an account from its record, with empty caches.
func FVMAccountFromBasic(b *BasicAccount) *FVMAccount {
	return &FVMAccount{accountFromBasic(b, newFVMStorage())}
}

// DecodeFVMAccount decodes an account from its RLP encoded record.
func DecodeFVMAccount(data []byte) (*FVMAccount, error) {
	b, err := DecodeBasicAccount(data)
	if err != nil {
		return nil, err
	}
	return FVMAccountFromBasic(b), nil
}

// StorageAt returns the normal value at key. db must be the account's store.
func (a *FVMAccount) StorageAt(db hashdb.HashStore, key thor.Bytes16) (thor.Bytes16, error) {
	v, err := a.storage.Normal.Get(db, a.storageRoot, key)
	if err != nil {
		return v, &Error{err}
	}
	return v, nil
}

// SetStorage records a normal value change.
func (a *FVMAccount) SetStorage(key, value thor.Bytes16) {
	a.storage.Normal.Set(key, value)
}

// WideStorageAt returns the wide value at key. db must be the account's store.
func (a *FVMAccount) WideStorageAt(db hashdb.HashStore, key thor.Bytes16) (thor.Bytes32, error) {
	v, err := a.storage.Wide.Get(db, a.storageRoot, key)
	if err != nil {
		return v, &Error{err}
	}
	return v, nil
}

// SetWideStorage records a wide value change.
func (a *FVMAccount) SetWideStorage(key thor.Bytes16, value thor.Bytes32) {
	a.storage.Wide.Set(key, value)
}

// CachedStorageAt returns the pending or cached normal value of key.
func (a *FVMAccount) CachedStorageAt(key thor.Bytes16) (thor.Bytes16, bool) {
	return a.storage.Normal.Cached(key)
}

// CachedWideStorageAt returns the pending or cached wide value of key.
func (a *FVMAccount) CachedWideStorageAt(key thor.Bytes16) (thor.Bytes32, bool) {
	return a.storage.Wide.Cached(key)
}

func (a *FVMAccount) CloneBasic() *FVMAccount { return &FVMAccount{a.Account.CloneBasic()} }
func (a *FVMAccount) CloneDirty() *FVMAccount { return &FVMAccount{a.Account.CloneDirty()} }
func (a *FVMAccount) CloneAll() *FVMAccount   { return &FVMAccount{a.Account.CloneAll()} }

func (a *FVMAccount) OverwriteWith(other *FVMAccount) {
	a.Account.OverwriteWith(other.Account)
}
