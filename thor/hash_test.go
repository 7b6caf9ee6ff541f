// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"io"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func BenchmarkBlake2b(b *testing.B) {
	data := make([]byte, 100)

	rng := rand.New(rand.NewPCG(1, 0)) //#nosec G404
	for i := range data {
		data[i] = byte(rng.Uint64())
	}
	b.Run("Blake2b", func(b *testing.B) {
		for b.Loop() {
			Blake2b(data)
		}
	})

	b.Run("Blake2bFn", func(b *testing.B) {
		for b.Loop() {
			Blake2bFn(func(w io.Writer) {
				w.Write(data)
			})
		}
	})
}

func TestBlake2bConcat(t *testing.T) {
	a, b := []byte("state"), []byte("core")
	assert.Equal(t, Blake2b([]byte("statecore")), Blake2b(a, b))
	assert.Equal(t, Blake2b(a, b), Blake2bFn(func(w io.Writer) {
		w.Write(a)
		w.Write(b)
	}))
}

func TestWellKnownDigests(t *testing.T) {
	// blake2b-256 of 0x80 and of the empty string
	assert.Equal(t, "0x45b0cfc220ceec5b7c1c62c4d4193d38e4eba48e8815729ce75f9c0ab0e4c1c0", EmptyRoot.String())
	assert.Equal(t, "0x0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8", EmptyCodeHash.String())
	assert.Equal(t, Blake2b([]byte{0x80}), EmptyRoot)
}
