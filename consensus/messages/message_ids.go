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
package messages

import (
	"fmt"
)

// MessageClass identifies the family of a message.
type MessageClass uint8

// MessageType identifies a message within its class.
type MessageType uint8

// Each message class is encoded in a single byte
const (
	ClassBasic     MessageClass = iota // Messages exchanged when peers connect
	ClassConsensus                     // Messages of the consensus rounds
	ClassTx                            // Transactions
)

// ClassBasic message types
const (
	TypeConnect MessageType = iota // A handshake message announcing a peer
)

// ClassConsensus message types
const (
	TypePropose   MessageType = iota // A block proposal for a height and round
	TypePrevote                      // A vote for a proposal
	TypePrecommit                    // A commitment to a block for a proposal
	TypeCommit                       // A message indicating a block was committed
)

// ClassTx message types
const (
	TypeTxIssue         MessageType = iota // Creates new units of an asset
	TypeTxTransfer                         // Moves units to a set of receivers
	TypeTxVoteValidator                    // A vote to add or remove a validator
	TypeTxVoteConfig                       // A vote for a new configuration
)

// String returns the class name as a string
func (mc MessageClass) String() string {
	var msg string
	switch mc {
	case ClassBasic:
		msg = "ClassBasic"
	case ClassConsensus:
		msg = "ClassConsensus"
	case ClassTx:
		msg = "ClassTx"
	default:
		msg = "UnknownClass"
	}
	return fmt.Sprintf("%s:%d", msg, uint8(mc))
}

// TagName returns the name of the message identified by the class and type.
func TagName(class MessageClass, msgType MessageType) string {
	var msg string
	switch class {
	case ClassBasic:
		switch msgType {
		case TypeConnect:
			msg = "Connect"
		}
	case ClassConsensus:
		switch msgType {
		case TypePropose:
			msg = "Propose"
		case TypePrevote:
			msg = "Prevote"
		case TypePrecommit:
			msg = "Precommit"
		case TypeCommit:
			msg = "Commit"
		}
	case ClassTx:
		switch msgType {
		case TypeTxIssue:
			msg = "TxIssue"
		case TypeTxTransfer:
			msg = "TxTransfer"
		case TypeTxVoteValidator:
			msg = "TxVoteValidator"
		case TypeTxVoteConfig:
			msg = "TxVoteConfig"
		}
	}
	if msg == "" {
		msg = "Unknown"
	}
	return fmt.Sprintf("%s(%d,%d)", msg, uint8(class), uint8(msgType))
}
