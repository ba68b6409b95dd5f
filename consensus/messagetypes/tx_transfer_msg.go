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

// TransferOutput is a receiver of a transfer.
type TransferOutput struct {
	To     sig.PublicKey
	Amount uint64
}

// TransferOutputCodec encodes a TransferOutput as the 32 byte key followed by the amount.
type TransferOutputCodec struct{}

func (TransferOutputCodec) Size() int {
	return sig.PublicKeySize + 8
}

func (TransferOutputCodec) Read(b []byte) TransferOutput {
	return TransferOutput{
		To:     messages.PublicKeyCodec{}.Read(b[:sig.PublicKeySize]),
		Amount: messages.Uint64Codec{}.Read(b[sig.PublicKeySize:]),
	}
}

func (TransferOutputCodec) Write(b []byte, v TransferOutput) {
	messages.PublicKeyCodec{}.Write(b[:sig.PublicKeySize], v.To)
	messages.Uint64Codec{}.Write(b[sig.PublicKeySize:], v.Amount)
}

var (
	txTransferSchema  = messages.NewSchema("TxTransfer", messages.ClassTx, messages.TypeTxTransfer, 48)
	txTransferFields  = newTxFields(txTransferSchema)
	txTransferOutputs = messages.NewSegmentField(txTransferSchema, "outputs", 40, TransferOutputCodec{})
)

// TxTransfer moves units from the sender to a list of receivers.
type TxTransfer struct {
	txMessage
	outputs messages.Segment[TransferOutput]
}

// NewTxTransfer creates a transfer sent by the owner of priv.
func NewTxTransfer(outputs []TransferOutput, seed uint64, priv *sig.SecretKey) (*TxTransfer, error) {
	if priv == nil {
		return nil, types.ErrNilPriv
	}
	w := txTransferSchema.NewWriter()
	txTransferFields.put(w, priv.GetPub(), seed)
	txTransferOutputs.Put(w, outputs)
	raw, err := w.Finish(priv)
	if err != nil {
		return nil, err
	}
	return TxTransferFromRaw(raw)
}

// TxTransferFromRaw checks raw is a valid transfer transaction.
func TxTransferFromRaw(raw *messages.RawMessage) (*TxTransfer, error) {
	if err := txTransferSchema.Check(raw); err != nil {
		return nil, err
	}
	outputs, err := txTransferOutputs.Get(raw)
	if err != nil {
		return nil, err
	}
	return &TxTransfer{txMessage: txMessage{signedMessage{raw}, txTransferFields}, outputs: outputs}, nil
}

func (tx *TxTransfer) Outputs() messages.Segment[TransferOutput] {
	return tx.outputs
}

func (tx *TxTransfer) String() string {
	return fmt.Sprintf("TxTransfer{sender: %v, seed: %d, outputs: %d}", tx.Sender(), tx.Seed(), tx.outputs.Len())
}
