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
	precommitSchema      = messages.NewSchema("Precommit", messages.ClassConsensus, messages.TypePrecommit, 80)
	precommitConsensus   = newConsensusFields(precommitSchema)
	precommitProposeHash = messages.NewField(precommitSchema, "propose_hash", 16, messages.HashCodec{})
	precommitBlockHash   = messages.NewField(precommitSchema, "block_hash", 48, messages.HashCodec{})
)

// Precommit commits a validator to the block resulting from a proposal.
type Precommit struct {
	consensusMessage
}

// NewPrecommit creates a precommit for the block with hash blockHash built from the proposal proposeHash.
func NewPrecommit(validator uint32, height uint64, round uint32, proposeHash, blockHash types.Hash,
	priv *sig.SecretKey) (*Precommit, error) {

	w := precommitSchema.NewWriter()
	precommitConsensus.put(w, validator, height, round)
	precommitProposeHash.Put(w, proposeHash)
	precommitBlockHash.Put(w, blockHash)
	raw, err := w.Finish(priv)
	if err != nil {
		return nil, err
	}
	return PrecommitFromRaw(raw)
}

// PrecommitFromRaw checks raw is a valid precommit message.
func PrecommitFromRaw(raw *messages.RawMessage) (*Precommit, error) {
	if err := precommitSchema.Check(raw); err != nil {
		return nil, err
	}
	return &Precommit{consensusMessage{signedMessage{raw}, precommitConsensus}}, nil
}

func (p *Precommit) ProposeHash() types.Hash {
	return precommitProposeHash.Get(p.raw)
}

func (p *Precommit) BlockHash() types.Hash {
	return precommitBlockHash.Get(p.raw)
}

func (p *Precommit) String() string {
	return fmt.Sprintf("Precommit{validator: %d, height: %d, round: %d, propose: %v, block: %v}",
		p.Validator(), p.Height(), p.Round(), p.ProposeHash(), p.BlockHash())
}
