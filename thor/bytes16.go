// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/hex"
)

// Bytes16 is a 128-bit fixed width word, used as key and narrow value of FVM storage.
type Bytes16 [16]byte

func (b Bytes16) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

// Bytes returns a slice view of b.
func (b Bytes16) Bytes() []byte {
	return b[:]
}

// IsZero returns whether all bytes are zero.
func (b Bytes16) IsZero() bool {
	return b == Bytes16{}
}

// ParseBytes16 parses a 32 hex digit string, with or without 0x prefix.
func ParseBytes16(s string) (b Bytes16, err error) {
	err = parseFixedHex(s, b[:])
	return
}

// BytesToBytes16 converts b into Bytes16, cropping or zero padding from the left.
func BytesToBytes16(b []byte) (w Bytes16) {
	if len(b) > len(w) {
		b = b[len(b)-len(w):]
	}
	copy(w[len(w)-len(b):], b)
	return
}
