// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

func TestDot(t *testing.T) {
	db := hashdb.NewMemoryDB()
	tr := NewTrieDBMut(db)
	for _, kv := range dogs {
		_, err := tr.Insert([]byte(kv.k), []byte(kv.v))
		require.NoError(t, err)
	}
	g, err := Dot(db, tr.Root())
	require.NoError(t, err)
	out := g.String()
	assert.True(t, strings.HasPrefix(out, "digraph"))
	assert.Contains(t, out, "branch")
	assert.Contains(t, out, "leaf")

	g, err = Dot(db, thor.EmptyRoot)
	require.NoError(t, err)
	assert.Contains(t, g.String(), "empty")

	_, err = Dot(db, thor.Blake2b([]byte("missing")))
	assert.True(t, IsIncompleteDatabase(err))
}
