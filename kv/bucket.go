// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket is a key prefix carving a logical key space out of a shared store.
type Bucket string

// withKey runs fn with the prefixed form of key. The slice is only valid inside fn.
func (b Bucket) withKey(key []byte, fn func(k []byte)) {
	kb := keyBufPool.Get().(*keyBuf)
	kb.b = append(append(kb.b[:0], b...), key...)
	fn(kb.b)
	keyBufPool.Put(kb)
}

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &struct {
		GetFunc
		HasFunc
		IsNotFoundFunc
	}{
		func(key []byte) (val []byte, err error) {
			b.withKey(key, func(k []byte) { val, err = src.Get(k) })
			return
		},
		func(key []byte) (has bool, err error) {
			b.withKey(key, func(k []byte) { has, err = src.Has(k) })
			return
		},
		src.IsNotFound,
	}
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &struct {
		PutFunc
		DeleteFunc
	}{
		func(key, val []byte) (err error) {
			b.withKey(key, func(k []byte) { err = src.Put(k, val) })
			return
		},
		func(key []byte) (err error) {
			b.withKey(key, func(k []byte) { err = src.Delete(k) })
			return
		},
	}
}

// NewStore creates a bucket store from the source store.
func (b Bucket) NewStore(src Store) Store {
	return &struct {
		Getter
		Putter
		SnapshotFunc
		BulkFunc
		IterateFunc
	}{
		b.NewGetter(src),
		b.NewPutter(src),
		func() Snapshot {
			snap := src.Snapshot()
			return &struct {
				Getter
				ReleaseFunc
			}{b.NewGetter(snap), snap.Release}
		},
		func() Bulk {
			bulk := src.Bulk()
			return &struct {
				Putter
				EnableAutoFlushFunc
				WriteFunc
			}{b.NewPutter(bulk), bulk.EnableAutoFlush, bulk.Write}
		},
		b.iterate(src),
	}
}

func (b Bucket) iterate(src Store) IterateFunc {
	return func(r Range) Iterator {
		prefixed := Range{
			Start: append([]byte(b), r.Start...),
		}
		if len(r.Limit) == 0 {
			prefixed.Limit = util.BytesPrefix([]byte(b)).Limit
		} else {
			prefixed.Limit = append([]byte(b), r.Limit...)
		}
		it := src.Iterate(prefixed)
		return &struct {
			FirstFunc
			LastFunc
			NextFunc
			PrevFunc
			KeyFunc
			ValueFunc
			ReleaseFunc
			ErrorFunc
		}{
			it.First,
			it.Last,
			it.Next,
			it.Prev,
			func() []byte { return it.Key()[len(b):] },
			it.Value,
			it.Release,
			it.Error,
		}
	}
}

type keyBuf struct {
	b []byte
}

var keyBufPool = sync.Pool{
	New: func() any {
		return &keyBuf{}
	},
}
