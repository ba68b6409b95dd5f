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

package sig

import (
	"bytes"
	"encoding/hex"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
	"go.dedis.ch/kyber/v3/sign/eddsa"
	"go.dedis.ch/kyber/v3/util/random"

	"github.com/tcrain/consmsg/consensus/types"
)

const (
	PublicKeySize = 32 // marshalled edwards25519 point
	SignatureSize = 64 // R || s
	SeedSize      = 32
)

// the group used by eddsa signature (this is fixed)
var EddsaGroup = new(edwards25519.Curve)

// PublicKey is a marshalled EDDSA public key.
type PublicKey [PublicKeySize]byte

// Signature is a detached EDDSA signature.
type Signature [SignatureSize]byte

// SecretKey represents the EDDSA private key object.
// Keys are produced by a key-management collaborator, this package only wraps them.
type SecretKey struct {
	priv *eddsa.EdDSA // The private key object
	pub  PublicKey    // The marshalled public key
	seed []byte       // The seed the key was derived from
}

// GenerateKey creates a new random EDDSA private key object.
func GenerateKey() (*SecretKey, error) {
	seed := make([]byte, SeedSize)
	random.Bytes(seed, random.New())
	return NewSecretKeyFromSeed(seed)
}

// NewSecretKeyFromSeed deterministically derives a private key from a 32 byte seed.
func NewSecretKeyFromSeed(seed []byte) (*SecretKey, error) {
	if len(seed) != SeedSize {
		return nil, types.ErrInvalidHashSize
	}
	seedCopy := append([]byte(nil), seed...)
	priv := eddsa.NewEdDSA(random.New(bytes.NewReader(seedCopy)))
	pubBytes, err := priv.Public.MarshalBinary()
	if err != nil {
		return nil, err
	}
	sk := &SecretKey{priv: priv, seed: seedCopy}
	copy(sk.pub[:], pubBytes)
	return sk, nil
}

// GetPub returns the corresponding public key.
func (sk *SecretKey) GetPub() PublicKey {
	return sk.pub
}

// Seed returns a copy of the seed the key was derived from.
func (sk *SecretKey) Seed() []byte {
	return append([]byte(nil), sk.seed...)
}

// Sign signs msg and returns the signature.
func (sk *SecretKey) Sign(msg []byte) (Signature, error) {
	var ret Signature
	if sk == nil || sk.priv == nil {
		return ret, types.ErrNilPriv
	}
	asig, err := sk.priv.Sign(msg)
	if err != nil {
		return ret, err
	}
	if len(asig) != SignatureSize {
		return ret, types.ErrInvalidHashSize
	}
	copy(ret[:], asig)
	return ret, nil
}

// PublicKeyFromBytes copies b into a PublicKey.
// Only the length is checked, the point itself is decoded on verification.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pub PublicKey
	if len(b) != PublicKeySize {
		return pub, types.ErrInvalidPub
	}
	copy(pub[:], b)
	return pub, nil
}

// PublicKeyFromHex decodes a hex encoded public key.
func PublicKeyFromHex(s string) (PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return PublicKey{}, err
	}
	return PublicKeyFromBytes(b)
}

func (pub PublicKey) String() string {
	return hex.EncodeToString(pub[:])
}

func (pub PublicKey) point() (kyber.Point, error) {
	p := EddsaGroup.Point()
	if err := p.UnmarshalBinary(pub[:]); err != nil {
		return nil, err
	}
	return p, nil
}

// Verify returns true if asig is a valid signature of msg by pub.
// A key that does not decode to a curve point never verifies.
func (pub PublicKey) Verify(msg []byte, asig Signature) bool {
	p, err := pub.point()
	if err != nil {
		return false
	}
	return eddsa.Verify(p, msg, asig[:]) == nil
}

func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}
