// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"fmt"
	"strings"

	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

// TrieSpec selects a trie variant.
type TrieSpec int

const (
	Secure  TrieSpec = iota // keys are hashed
	Generic                 // keys are used as is
	Fat                     // keys are hashed, cleartext keys kept for iteration
)

func (s TrieSpec) String() string {
	switch s {
	case Secure:
		return "secure"
	case Generic:
		return "generic"
	case Fat:
		return "fat"
	}
	return fmt.Sprintf("TrieSpec(%d)", int(s))
}

// ParseTrieSpec parses the name of a trie variant, case insensitive.
func ParseTrieSpec(str string) (TrieSpec, error) {
	switch strings.ToLower(str) {
	case "secure", "":
		return Secure, nil
	case "generic":
		return Generic, nil
	case "fat":
		return Fat, nil
	}
	return 0, fmt.Errorf("unknown trie spec %q", str)
}

// Factory creates tries of one variant.
type Factory struct {
	spec TrieSpec
}

// NewFactory creates a factory for spec.
func NewFactory(spec TrieSpec) *Factory {
	return &Factory{spec}
}

// Spec returns the variant this factory creates.
func (f *Factory) Spec() TrieSpec { return f.spec }

// IsFat reports whether created tries keep cleartext keys.
func (f *Factory) IsFat() bool { return f.spec == Fat }

// Readonly opens a read-only trie at root.
func (f *Factory) Readonly(db hashdb.HashStore, root thor.Bytes32) (Trie, error) {
	switch f.spec {
	case Generic:
		return NewTrieDB(db, root)
	case Fat:
		return NewFatDB(db, root)
	default:
		return NewSecTrieDB(db, root)
	}
}

// Create creates an empty trie.
func (f *Factory) Create(db hashdb.HashStore) TrieMut {
	switch f.spec {
	case Generic:
		return NewTrieDBMut(db)
	case Fat:
		return NewFatDBMut(db)
	default:
		return NewSecTrieDBMut(db)
	}
}

// FromExisting opens the trie at root for writing.
func (f *Factory) FromExisting(db hashdb.HashStore, root thor.Bytes32) (TrieMut, error) {
	switch f.spec {
	case Generic:
		return NewTrieDBMutFromExisting(db, root)
	case Fat:
		return NewFatDBMutFromExisting(db, root)
	default:
		return NewSecTrieDBMutFromExisting(db, root)
	}
}
