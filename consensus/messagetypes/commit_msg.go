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
	commitSchema    = messages.NewSchema("Commit", messages.ClassConsensus, messages.TypeCommit, 48)
	commitConsensus = newConsensusFields(commitSchema)
	commitBlockHash = messages.NewField(commitSchema, "block_hash", 16, messages.HashCodec{})
)

// Commit indicates a block was committed at a height.
type Commit struct {
	consensusMessage
}

func NewCommit(validator uint32, height uint64, round uint32, blockHash types.Hash,
	priv *sig.SecretKey) (*Commit, error) {

	w := commitSchema.NewWriter()
	commitConsensus.put(w, validator, height, round)
	commitBlockHash.Put(w, blockHash)
	raw, err := w.Finish(priv)
	if err != nil {
		return nil, err
	}
	return CommitFromRaw(raw)
}

// CommitFromRaw checks raw is a valid commit message.
func CommitFromRaw(raw *messages.RawMessage) (*Commit, error) {
	if err := commitSchema.Check(raw); err != nil {
		return nil, err
	}
	return &Commit{consensusMessage{signedMessage{raw}, commitConsensus}}, nil
}

func (c *Commit) BlockHash() types.Hash {
	return commitBlockHash.Get(c.raw)
}

func (c *Commit) String() string {
	return fmt.Sprintf("Commit{validator: %d, height: %d, round: %d, block: %v}",
		c.Validator(), c.Height(), c.Round(), c.BlockHash())
}
