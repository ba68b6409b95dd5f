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
	txIssueSchema = messages.NewSchema("TxIssue", messages.ClassTx, messages.TypeTxIssue, 56)
	txIssueFields = newTxFields(txIssueSchema)
	txIssueAmount = messages.NewField(txIssueSchema, "amount", 40, messages.Uint64Codec{})
	txIssueName   = messages.NewSegmentField(txIssueSchema, "name", 48, messages.Uint8Codec{})
)

// TxIssue creates amount new units of the asset name, owned by the sender.
type TxIssue struct {
	txMessage
	name messages.Segment[uint8]
}

// NewTxIssue creates an issue transaction sent by the owner of priv.
func NewTxIssue(name string, amount, seed uint64, priv *sig.SecretKey) (*TxIssue, error) {
	if priv == nil {
		return nil, types.ErrNilPriv
	}
	w := txIssueSchema.NewWriter()
	txIssueFields.put(w, priv.GetPub(), seed)
	txIssueAmount.Put(w, amount)
	txIssueName.Put(w, []byte(name))
	raw, err := w.Finish(priv)
	if err != nil {
		return nil, err
	}
	return TxIssueFromRaw(raw)
}

// TxIssueFromRaw checks raw is a valid issue transaction.
func TxIssueFromRaw(raw *messages.RawMessage) (*TxIssue, error) {
	if err := txIssueSchema.Check(raw); err != nil {
		return nil, err
	}
	name, err := txIssueName.Get(raw)
	if err != nil {
		return nil, err
	}
	return &TxIssue{txMessage: txMessage{signedMessage{raw}, txIssueFields}, name: name}, nil
}

func (tx *TxIssue) Amount() uint64 {
	return txIssueAmount.Get(tx.raw)
}

// Name returns the name of the asset, it is not checked to be valid utf8.
func (tx *TxIssue) Name() string {
	return string(tx.name.Bytes())
}

func (tx *TxIssue) String() string {
	return fmt.Sprintf("TxIssue{sender: %v, seed: %d, name: %q, amount: %d}",
		tx.Sender(), tx.Seed(), tx.Name(), tx.Amount())
}
