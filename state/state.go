// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
	"github.com/vechain/statecore/trie"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// AccountStore returns the store of the storage trie and code of the account at addr.
func AccountStore(db hashdb.HashStore, addr thor.Address) *hashdb.AccountDB {
	return hashdb.NewAccountDBFromAddress(db, addr)
}

// SaveAccount commits storage and code of acc, then writes its record into the
// world trie at addr. An empty account is removed from the world trie instead.
func SaveAccount[S StorageSet[S]](world trie.TrieMut, db hashdb.HashStore, addr thor.Address, acc *Account[S]) error {
	adb := hashdb.NewAccountDB(db, acc.AddressHash(addr))
	if err := acc.CommitStorage(adb); err != nil {
		return err
	}
	acc.CommitCode(adb)

	var err error
	if acc.IsEmpty() {
		_, err = world.Remove(addr[:])
	} else {
		_, err = world.Insert(addr[:], acc.RLP())
	}
	if err != nil {
		return &Error{err}
	}
	return nil
}

func loadRecord(world trie.Trie, addr thor.Address) (*BasicAccount, error) {
	data, err := world.Get(addr[:])
	if err != nil {
		return nil, &Error{err}
	}
	if len(data) == 0 {
		return nil, nil
	}
	b, err := DecodeBasicAccount(data)
	if err != nil {
		return nil, &Error{err}
	}
	return b, nil
}

// LoadFVMAccount loads the account at addr, nil if there is none.
func LoadFVMAccount(world trie.Trie, addr thor.Address) (*FVMAccount, error) {
	b, err := loadRecord(world, addr)
	if b == nil {
		return nil, err
	}
	return FVMAccountFromBasic(b), nil
}

// LoadAVMAccount loads the account at addr, nil if there is none.
func LoadAVMAccount(world trie.Trie, addr thor.Address) (*AVMAccount, error) {
	b, err := loadRecord(world, addr)
	if b == nil {
		return nil, err
	}
	return AVMAccountFromBasic(b), nil
}
