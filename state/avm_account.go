// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/holiman/uint256"

	"github.com/vechain/statecore/hashdb"
)

// AVMAccount is an account with byte string keyed storage.
type AVMAccount struct {
	*Account[*AVMStorage]
}

// NewAVMAccount creates a plain account with no code.
func NewAVMAccount(balance, nonce *uint256.Int) *AVMAccount {
	a := newAccount(balance, nonce, newAVMStorage())
	a.hasCodeSize = true
	return &AVMAccount{a}
}

// AVMAccountFromBasic creates an account from its record, with empty caches.
func AVMAccountFromBasic(b *BasicAccount) *AVMAccount {
	return &AVMAccount{accountFromBasic(b, newAVMStorage())}
}

// DecodeAVMAccount decodes an account from its RLP encoded record.
func DecodeAVMAccount(data []byte) (*AVMAccount, error) {
	b, err := DecodeBasicAccount(data)
	if err != nil {
		return nil, err
	}
	return AVMAccountFromBasic(b), nil
}

// StorageAt returns the value at key, empty if never set. db must be the account's store.
// The returned slice must not be modified.
func (a *AVMAccount) StorageAt(db hashdb.HashStore, key []byte) ([]byte, error) {
	v, err := a.storage.Slots.Get(db, a.storageRoot, string(key))
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetStorage records a value change. A value of all zero bytes clears the slot.
func (a *AVMAccount) SetStorage(key, value []byte) {
	a.storage.Slots.Set(string(key), value)
}

// CachedStorageAt returns the pending or cached value of key.
func (a *AVMAccount) CachedStorageAt(key []byte) ([]byte, bool) {
	return a.storage.Slots.Cached(string(key))
}

func (a *AVMAccount) CloneBasic() *AVMAccount { return &AVMAccount{a.Account.CloneBasic()} }
func (a *AVMAccount) CloneDirty() *AVMAccount { return &AVMAccount{a.Account.CloneDirty()} }
func (a *AVMAccount) CloneAll() *AVMAccount   { return &AVMAccount{a.Account.CloneAll()} }

func (a *AVMAccount) OverwriteWith(other *AVMAccount) {
	a.Account.OverwriteWith(other.Account)
}
