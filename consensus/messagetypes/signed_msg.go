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

package messagetypes

import (
	"github.com/tcrain/consmsg/consensus/auth/sig"
	"github.com/tcrain/consmsg/consensus/messages"
	"github.com/tcrain/consmsg/consensus/types"
)

// signedMessage is embedded in all concrete messages.
type signedMessage struct {
	raw *messages.RawMessage
}

// Raw returns the signed envelope of the message.
func (sm signedMessage) Raw() *messages.RawMessage {
	return sm.raw
}

// Hash returns the content hash of the message.
func (sm signedMessage) Hash() types.Hash {
	return sm.raw.Hash()
}

// Verify returns true if the message was signed by pub.
func (sm signedMessage) Verify(pub sig.PublicKey) bool {
	return sm.raw.Verify(pub)
}

func (signedMessage) isAny() {}

// consensusFields are the fields at the start of the body of every consensus message.
type consensusFields struct {
	validator messages.Field[uint32]
	height    messages.Field[uint64]
	round     messages.Field[uint32]
}

func newConsensusFields(s *messages.Schema) *consensusFields {
	return &consensusFields{
		validator: messages.NewField(s, "validator", 0, messages.Uint32Codec{}),
		height:    messages.NewField(s, "height", 4, messages.Uint64Codec{}),
		round:     messages.NewField(s, "round", 12, messages.Uint32Codec{}),
	}
}

func (cf *consensusFields) put(w *messages.Writer, validator uint32, height uint64, round uint32) {
	cf.validator.Put(w, validator)
	cf.height.Put(w, height)
	cf.round.Put(w, round)
}

type consensusMessage struct {
	signedMessage
	fields *consensusFields
}

// Validator returns the id of the validator that created the message.
func (cm consensusMessage) Validator() uint32 {
	return cm.fields.validator.Get(cm.raw)
}

// Height returns the height of the chain the message is for.
func (cm consensusMessage) Height() uint64 {
	return cm.fields.height.Get(cm.raw)
}

// Round returns the round within the height.
func (cm consensusMessage) Round() uint32 {
	return cm.fields.round.Get(cm.raw)
}

func (consensusMessage) isConsensus() {}

// txFields are the fields at the start of the body of every transaction.
type txFields struct {
	sender messages.Field[sig.PublicKey]
	seed   messages.Field[uint64]
}

func newTxFields(s *messages.Schema) *txFields {
	return &txFields{
		sender: messages.NewField(s, "sender", 0, messages.PublicKeyCodec{}),
		seed:   messages.NewField(s, "seed", 32, messages.Uint64Codec{}),
	}
}

func (tf *txFields) put(w *messages.Writer, sender sig.PublicKey, seed uint64) {
	tf.sender.Put(w, sender)
	tf.seed.Put(w, seed)
}

type txMessage struct {
	signedMessage
	fields *txFields
}

// Sender returns the key of the account that signed the transaction.
func (tm txMessage) Sender() sig.PublicKey {
	return tm.fields.sender.Get(tm.raw)
}

// Seed returns the value that makes otherwise equal transactions distinct.
func (tm txMessage) Seed() uint64 {
	return tm.fields.seed.Get(tm.raw)
}

func (txMessage) isTx() {}
