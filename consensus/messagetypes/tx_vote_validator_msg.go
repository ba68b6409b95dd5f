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
	txVoteValidatorSchema    = messages.NewSchema("TxVoteValidator", messages.ClassTx, messages.TypeTxVoteValidator, 81)
	txVoteValidatorFields    = newTxFields(txVoteValidatorSchema)
	txVoteValidatorCandidate = messages.NewField(txVoteValidatorSchema, "candidate", 40, messages.PublicKeyCodec{})
	txVoteValidatorHeight    = messages.NewField(txVoteValidatorSchema, "height", 72, messages.Uint64Codec{})
	txVoteValidatorInclude   = messages.NewField(txVoteValidatorSchema, "include", 80, messages.BoolCodec{})
)

// TxVoteValidator is a vote by a validator to add (include is true) or remove a candidate
// from the validator set starting at height.
type TxVoteValidator struct {
	txMessage
}

func NewTxVoteValidator(candidate sig.PublicKey, height uint64, include bool, seed uint64,
	priv *sig.SecretKey) (*TxVoteValidator, error) {

	if priv == nil {
		return nil, types.ErrNilPriv
	}
	w := txVoteValidatorSchema.NewWriter()
	txVoteValidatorFields.put(w, priv.GetPub(), seed)
	txVoteValidatorCandidate.Put(w, candidate)
	txVoteValidatorHeight.Put(w, height)
	txVoteValidatorInclude.Put(w, include)
	raw, err := w.Finish(priv)
	if err != nil {
		return nil, err
	}
	return TxVoteValidatorFromRaw(raw)
}

// TxVoteValidatorFromRaw checks raw is a valid validator vote.
func TxVoteValidatorFromRaw(raw *messages.RawMessage) (*TxVoteValidator, error) {
	if err := txVoteValidatorSchema.Check(raw); err != nil {
		return nil, err
	}
	return &TxVoteValidator{txMessage{signedMessage{raw}, txVoteValidatorFields}}, nil
}

func (tx *TxVoteValidator) Candidate() sig.PublicKey {
	return txVoteValidatorCandidate.Get(tx.raw)
}

func (tx *TxVoteValidator) Height() uint64 {
	return txVoteValidatorHeight.Get(tx.raw)
}

func (tx *TxVoteValidator) Include() bool {
	return txVoteValidatorInclude.Get(tx.raw)
}

func (tx *TxVoteValidator) String() string {
	return fmt.Sprintf("TxVoteValidator{sender: %v, seed: %d, candidate: %v, height: %d, include: %v}",
		tx.Sender(), tx.Seed(), tx.Candidate(), tx.Height(), tx.Include())
}
