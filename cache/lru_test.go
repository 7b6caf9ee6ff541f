// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUGetOrLoad(t *testing.T) {
	_, err := NewLRU(0)
	assert.Error(t, err)

	c := MustNewLRU(2)
	loads := 0
	loader := func(k any) (any, error) {
		loads++
		if k == "bad" {
			return nil, errors.New("boom")
		}
		return k.(string) + "!", nil
	}

	v, err := c.GetOrLoad("a", loader)
	require.NoError(t, err)
	assert.Equal(t, "a!", v)
	v, err = c.GetOrLoad("a", loader)
	require.NoError(t, err)
	assert.Equal(t, "a!", v)
	assert.Equal(t, 1, loads)

	_, err = c.GetOrLoad("bad", loader)
	assert.Error(t, err)
	assert.False(t, c.Contains("bad"))
}

func TestLRUCopy(t *testing.T) {
	c := MustNewLRU(3)
	c.Add(1, "one")
	c.Add(2, "two")
	c.Add(3, "three")

	cp := c.Copy()
	assert.Equal(t, 3, cp.MaxSize())
	assert.Equal(t, c.Keys(), cp.Keys())

	// independent after copy
	cp.Add(4, "four")
	assert.True(t, c.Contains(1))
	assert.False(t, cp.Contains(1))

	var keys []any
	c.Each(func(k, _ any) { keys = append(keys, k) })
	assert.Equal(t, []any{1, 2, 3}, keys)
}
