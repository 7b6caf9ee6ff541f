// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"errors"
	"fmt"

	"github.com/vechain/statecore/thor"
)

var errEmptyCompact = errors.New("empty hex-prefix path")

// InvalidStateRootError is returned when a trie is opened on a root the store does not hold.
type InvalidStateRootError struct {
	Root thor.Bytes32
}

func (e *InvalidStateRootError) Error() string {
	return fmt.Sprintf("invalid state root: %v", e.Root)
}

// IncompleteDatabaseError is returned when a traversal needs a node or blob the store does not hold.
type IncompleteDatabaseError struct {
	Hash thor.Bytes32
	Path NibblePath // where the reference was met, nil if not known
}

func (e *IncompleteDatabaseError) Error() string {
	if e.Path == nil {
		return fmt.Sprintf("database missing expected key: %v", e.Hash)
	}
	return fmt.Sprintf("database missing expected key: %v (path %v)", e.Hash, e.Path)
}

// IsInvalidStateRoot reports whether err is or wraps an InvalidStateRootError.
func IsInvalidStateRoot(err error) bool {
	var e *InvalidStateRootError
	return errors.As(err, &e)
}

// IsIncompleteDatabase reports whether err is or wraps an IncompleteDatabaseError.
func IsIncompleteDatabase(err error) bool {
	var e *IncompleteDatabaseError
	return errors.As(err, &e)
}
