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
	"fmt"

	"github.com/tcrain/consmsg/consensus/auth/sig"
	"github.com/tcrain/consmsg/consensus/logging"
	"github.com/tcrain/consmsg/consensus/messages"
	"github.com/tcrain/consmsg/consensus/types"
)

// Any is a decoded message of any class.
// The implementations are exactly the concrete message types of this package.
type Any interface {
	// Raw returns the signed envelope.
	Raw() *messages.RawMessage
	// Hash returns the content hash of the message.
	Hash() types.Hash
	// Verify returns true if the message was signed by pub.
	Verify(pub sig.PublicKey) bool
	String() string
	isAny()
}

// BasicMessage is a message exchanged between peers outside of consensus (Connect).
type BasicMessage interface {
	Any
	isBasic()
}

// ConsensusMessage is a message of a consensus round (Propose, Prevote, Precommit, Commit).
type ConsensusMessage interface {
	Any
	Validator() uint32
	Height() uint64
	Round() uint32
	isConsensus()
}

// TxMessage is a transaction (TxIssue, TxTransfer, TxVoteValidator, TxVoteConfig).
type TxMessage interface {
	Any
	Sender() sig.PublicKey
	Seed() uint64
	isTx()
}

// FromBytes checks the envelope of buff then decodes it into its concrete type.
func FromBytes(buff []byte) (Any, error) {
	raw, err := messages.RawMessageFromBytes(buff)
	if err != nil {
		return nil, err
	}
	return FromRaw(raw)
}

// FromBytesLimit is FromBytes with an explicit maximum message size.
func FromBytesLimit(buff []byte, maxSize int) (Any, error) {
	raw, err := messages.RawMessageFromBytesLimit(buff, maxSize)
	if err != nil {
		return nil, err
	}
	return FromRaw(raw)
}

// FromRaw decodes raw into the concrete type identified by its class and type.
// An unknown class or type returns types.ErrUnknownMessageType.
func FromRaw(raw *messages.RawMessage) (Any, error) {
	switch raw.MessageClass() {
	case messages.ClassBasic:
		return BasicFromRaw(raw)
	case messages.ClassConsensus:
		return ConsensusFromRaw(raw)
	case messages.ClassTx:
		return TxFromRaw(raw)
	default:
		return nil, unknownMessage(raw)
	}
}

// BasicFromRaw decodes a message of messages.ClassBasic.
func BasicFromRaw(raw *messages.RawMessage) (BasicMessage, error) {
	if err := checkClass(raw, messages.ClassBasic); err != nil {
		return nil, err
	}
	switch raw.MessageType() {
	case messages.TypeConnect:
		m, err := ConnectFromRaw(raw)
		return asBasic(m, err)
	default:
		return nil, unknownMessage(raw)
	}
}

// ConsensusFromRaw decodes a message of messages.ClassConsensus.
func ConsensusFromRaw(raw *messages.RawMessage) (ConsensusMessage, error) {
	if err := checkClass(raw, messages.ClassConsensus); err != nil {
		return nil, err
	}
	switch raw.MessageType() {
	case messages.TypePropose:
		m, err := ProposeFromRaw(raw)
		return asConsensus(m, err)
	case messages.TypePrevote:
		m, err := PrevoteFromRaw(raw)
		return asConsensus(m, err)
	case messages.TypePrecommit:
		m, err := PrecommitFromRaw(raw)
		return asConsensus(m, err)
	case messages.TypeCommit:
		m, err := CommitFromRaw(raw)
		return asConsensus(m, err)
	default:
		return nil, unknownMessage(raw)
	}
}

// TxFromRaw decodes a message of messages.ClassTx.
func TxFromRaw(raw *messages.RawMessage) (TxMessage, error) {
	if err := checkClass(raw, messages.ClassTx); err != nil {
		return nil, err
	}
	switch raw.MessageType() {
	case messages.TypeTxIssue:
		m, err := TxIssueFromRaw(raw)
		return asTx(m, err)
	case messages.TypeTxTransfer:
		m, err := TxTransferFromRaw(raw)
		return asTx(m, err)
	case messages.TypeTxVoteValidator:
		m, err := TxVoteValidatorFromRaw(raw)
		return asTx(m, err)
	case messages.TypeTxVoteConfig:
		m, err := TxVoteConfigFromRaw(raw)
		return asTx(m, err)
	default:
		return nil, unknownMessage(raw)
	}
}

func checkClass(raw *messages.RawMessage, class messages.MessageClass) error {
	if raw.MessageClass() != class {
		return fmt.Errorf("%w: expected class %v, got %s", types.ErrIncorrectMessageType,
			class, messages.TagName(raw.MessageClass(), raw.MessageType()))
	}
	return nil
}

func unknownMessage(raw *messages.RawMessage) error {
	name := messages.TagName(raw.MessageClass(), raw.MessageType())
	logging.Debugf("Unknown message tag %s", name)
	return fmt.Errorf("%w: %s", types.ErrUnknownMessageType, name)
}

// The as functions make sure a failed decode returns a nil interface and not a nil pointer.

func asBasic[M BasicMessage](m M, err error) (BasicMessage, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}

func asConsensus[M ConsensusMessage](m M, err error) (ConsensusMessage, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}

func asTx[M TxMessage](m M, err error) (TxMessage, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}
