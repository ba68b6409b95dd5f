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

package msgproc

import (
	"fmt"

	"github.com/tcrain/consmsg/config"
	"github.com/tcrain/consmsg/consensus/auth/sig"
	"github.com/tcrain/consmsg/consensus/messagetypes"
	"github.com/tcrain/consmsg/consensus/types"
)

// KeyRing finds the public keys of validators.
// Implementations must be safe to call from multiple threads.
type KeyRing interface {
	ValidatorKey(id uint32) (sig.PublicKey, bool)
}

// StaticKeyRing is a fixed set of validator keys.
type StaticKeyRing struct {
	validators map[uint32]sig.PublicKey
}

// NewStaticKeyRing creates a key ring from a copy of keys.
func NewStaticKeyRing(keys map[uint32]sig.PublicKey) *StaticKeyRing {
	validators := make(map[uint32]sig.PublicKey, len(keys))
	for id, pub := range keys {
		validators[id] = pub
	}
	return &StaticKeyRing{validators: validators}
}

// StaticKeyRingFromConfig creates a key ring from the validators of the node config.
func StaticKeyRingFromConfig(cfg *config.NodeConfig) (*StaticKeyRing, error) {
	validators := make(map[uint32]sig.PublicKey, len(cfg.Validators))
	for _, v := range cfg.Validators {
		pub, err := sig.PublicKeyFromHex(v.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("validator %d public key: %w", v.ID, err)
		}
		if _, ok := validators[v.ID]; ok {
			return nil, fmt.Errorf("duplicate validator id %d", v.ID)
		}
		validators[v.ID] = pub
	}
	return &StaticKeyRing{validators: validators}, nil
}

func (kr *StaticKeyRing) ValidatorKey(id uint32) (sig.PublicKey, bool) {
	pub, ok := kr.validators[id]
	return pub, ok
}

// Len returns the number of validators.
func (kr *StaticKeyRing) Len() int {
	return len(kr.validators)
}

// SignerKey returns the key that must have signed m.
// Consensus messages are signed by the validator with the id in the message, using keys.
// Transactions are signed by their sender, Connect messages by the key they announce.
func SignerKey(m messagetypes.Any, keys KeyRing) (sig.PublicKey, error) {
	switch v := m.(type) {
	case messagetypes.ConsensusMessage:
		if keys != nil {
			if pub, ok := keys.ValidatorKey(v.Validator()); ok {
				return pub, nil
			}
		}
		return sig.PublicKey{}, fmt.Errorf("%w: validator %d", types.ErrUnknownSigner, v.Validator())
	case messagetypes.TxMessage:
		return v.Sender(), nil
	case *messagetypes.Connect:
		return v.PubKey(), nil
	default:
		return sig.PublicKey{}, fmt.Errorf("%w: %v", types.ErrUnknownSigner, m)
	}
}
