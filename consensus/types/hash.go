/*
github.com/tcrain/consmsg - Binary wire messages for consensus nodes.
Copyright (C) 2020 The project authors - tcrain

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.

*/

package types

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// HashSize is the length of a content hash in bytes.
const HashSize = 32

// Hash is a BLAKE2b-256 digest.
type Hash [HashSize]byte

// GetHash returns the hash of v.
func GetHash(v []byte) Hash {
	return blake2b.Sum256(v)
}

// HashFromBytes copies b into a Hash, b must be exactly HashSize long.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, ErrInvalidHashSize
	}
	copy(h[:], b)
	return h, nil
}

// HashFromHex decodes a hex string into a Hash.
func HashFromHex(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, err
	}
	return HashFromBytes(b)
}

// IsZero returns true if every byte of the hash is 0.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
