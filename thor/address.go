// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// AddressLength length of address in bytes.
const AddressLength = 32

// Address identifies an account. Accounts are 32 bytes wide.
type Address [AddressLength]byte

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Bytes returns byte slice form of address.
func (a Address) Bytes() []byte {
	return a[:]
}

// ParseAddress parses a hex presented address.
func ParseAddress(s string) (addr Address, err error) {
	err = parseFixedHex(s, addr[:])
	return
}

// BytesToAddress converts b into address, cropping or zero padding from the left.
func BytesToAddress(b []byte) Address {
	return Address(common.BytesToHash(b))
}

// parseFixedHex decodes s into out, which must be filled exactly.
func parseFixedHex(s string, out []byte) error {
	switch len(s) {
	case len(out) * 2:
	case len(out)*2 + 2:
		if strings.ToLower(s[:2]) != "0x" {
			return errors.New("invalid prefix")
		}
		s = s[2:]
	default:
		return errors.New("invalid length")
	}
	_, err := hex.Decode(out, []byte(s))
	return err
}
