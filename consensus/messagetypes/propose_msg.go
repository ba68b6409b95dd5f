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
	"time"

	"github.com/tcrain/consmsg/consensus/auth/sig"
	"github.com/tcrain/consmsg/consensus/messages"
	"github.com/tcrain/consmsg/consensus/types"
)

var (
	proposeSchema       = messages.NewSchema("Propose", messages.ClassConsensus, messages.TypePropose, 64)
	proposeConsensus    = newConsensusFields(proposeSchema)
	proposeTime         = messages.NewField(proposeSchema, "time", 16, messages.TimeCodec{})
	proposePrevHash     = messages.NewField(proposeSchema, "prev_hash", 24, messages.HashCodec{})
	proposeTransactions = messages.NewSegmentField(proposeSchema, "transactions", 56, messages.HashCodec{})
)

// Propose is a proposal by the leader of a round for the next block.
// The hash of a propose message is the propose hash referenced by Prevote and Precommit.
type Propose struct {
	consensusMessage
	transactions messages.Segment[types.Hash]
}

// NewPropose creates a proposal for the transactions on top of the block with hash prevHash.
func NewPropose(validator uint32, height uint64, round uint32, t time.Time, prevHash types.Hash,
	transactions []types.Hash, priv *sig.SecretKey) (*Propose, error) {

	if !messages.TimeInRange(t) {
		return nil, fmt.Errorf("%w: %v", types.ErrTimeOutOfRange, t)
	}
	w := proposeSchema.NewWriter()
	proposeConsensus.put(w, validator, height, round)
	proposeTime.Put(w, t)
	proposePrevHash.Put(w, prevHash)
	proposeTransactions.Put(w, transactions)
	raw, err := w.Finish(priv)
	if err != nil {
		return nil, err
	}
	return ProposeFromRaw(raw)
}

// ProposeFromRaw checks raw is a valid propose message.
func ProposeFromRaw(raw *messages.RawMessage) (*Propose, error) {
	if err := proposeSchema.Check(raw); err != nil {
		return nil, err
	}
	txs, err := proposeTransactions.Get(raw)
	if err != nil {
		return nil, err
	}
	return &Propose{
		consensusMessage: consensusMessage{signedMessage{raw}, proposeConsensus},
		transactions:     txs,
	}, nil
}

func (p *Propose) Time() time.Time {
	return proposeTime.Get(p.raw)
}

// ProposeHash returns the hash that Prevote and Precommit messages use to reference this proposal,
// it is the content hash of the message.
func (p *Propose) ProposeHash() types.Hash {
	return p.Hash()
}

// PrevHash returns the hash of the block the proposal extends.
func (p *Propose) PrevHash() types.Hash {
	return proposePrevHash.Get(p.raw)
}

// Transactions returns the hashes of the proposed transactions.
func (p *Propose) Transactions() messages.Segment[types.Hash] {
	return p.transactions
}

func (p *Propose) String() string {
	return fmt.Sprintf("Propose{validator: %d, height: %d, round: %d, prev: %v, txs: %d}",
		p.Validator(), p.Height(), p.Round(), p.PrevHash(), p.transactions.Len())
}
