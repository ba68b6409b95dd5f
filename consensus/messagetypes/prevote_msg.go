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
	"github.com/tcrain/consmsg/consensus/messages"
	"github.com/tcrain/consmsg/consensus/types"
)

var (
	prevoteSchema      = messages.NewSchema("Prevote", messages.ClassConsensus, messages.TypePrevote, 52)
	prevoteConsensus   = newConsensusFields(prevoteSchema)
	prevoteProposeHash = messages.NewField(prevoteSchema, "propose_hash", 16, messages.HashCodec{})
	prevoteLockedRound = messages.NewField(prevoteSchema, "locked_round", 48, messages.Uint32Codec{})
)

// Prevote is a vote for a proposal.
type Prevote struct {
	consensusMessage
}

// NewPrevote creates a vote for the proposal with hash proposeHash.
// lockedRound is the round the validator is locked on, 0 if it is not locked.
func NewPrevote(validator uint32, height uint64, round uint32, proposeHash types.Hash,
	lockedRound uint32, priv *sig.SecretKey) (*Prevote, error) {

	w := prevoteSchema.NewWriter()
	prevoteConsensus.put(w, validator, height, round)
	prevoteProposeHash.Put(w, proposeHash)
	prevoteLockedRound.Put(w, lockedRound)
	raw, err := w.Finish(priv)
	if err != nil {
		return nil, err
	}
	return PrevoteFromRaw(raw)
}

// PrevoteFromRaw checks raw is a valid prevote message.
func PrevoteFromRaw(raw *messages.RawMessage) (*Prevote, error) {
	if err := prevoteSchema.Check(raw); err != nil {
		return nil, err
	}
	return &Prevote{consensusMessage{signedMessage{raw}, prevoteConsensus}}, nil
}

func (p *Prevote) ProposeHash() types.Hash {
	return prevoteProposeHash.Get(p.raw)
}

func (p *Prevote) LockedRound() uint32 {
	return prevoteLockedRound.Get(p.raw)
}

func (p *Prevote) String() string {
	return fmt.Sprintf("Prevote{validator: %d, height: %d, round: %d, propose: %v, locked: %d}",
		p.Validator(), p.Height(), p.Round(), p.ProposeHash(), p.LockedRound())
}
