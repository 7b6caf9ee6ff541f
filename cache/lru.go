// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import lru "github.com/hashicorp/golang-lru"

// LRU is a bounded least-recently-used cache. It is safe for concurrent use.
type LRU struct {
	*lru.Cache
	size int
}

// NewLRU creates an LRU holding at most maxSize entries.
// maxSize should be > 0, or an error returned.
func NewLRU(maxSize int) (*LRU, error) {
	c, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU{c, maxSize}, nil
}

// MustNewLRU is NewLRU that panics on error.
func MustNewLRU(maxSize int) *LRU {
	c, err := NewLRU(maxSize)
	if err != nil {
		panic(err)
	}
	return c
}

// MaxSize returns the capacity.
func (l *LRU) MaxSize() int { return l.size }

// Loader loads the value of a missed key.
type Loader func(key any) (any, error)

// GetOrLoad returns the cached value of key, or loads and caches it.
func (l *LRU) GetOrLoad(key any, loader Loader) (any, error) {
	if v, ok := l.Get(key); ok {
		return v, nil
	}
	v, err := loader(key)
	if err != nil {
		return nil, err
	}
	l.Add(key, v)
	return v, nil
}

// Each calls fn for every entry, from oldest to newest, without touching recency.
// Entries evicted concurrently are skipped.
func (l *LRU) Each(fn func(key, value any)) {
	for _, k := range l.Keys() {
		if v, ok := l.Peek(k); ok {
			fn(k, v)
		}
	}
}

// Copy returns a new LRU of the same capacity holding the same entries in the same order.
func (l *LRU) Copy() *LRU {
	c := MustNewLRU(l.size)
	l.Each(func(k, v any) { c.Add(k, v) })
	return c
}
