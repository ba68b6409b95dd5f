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
	txVoteConfigSchema     = messages.NewSchema("TxVoteConfig", messages.ClassTx, messages.TypeTxVoteConfig, 56)
	txVoteConfigFields     = newTxFields(txVoteConfigSchema)
	txVoteConfigActualFrom = messages.NewField(txVoteConfigSchema, "actual_from", 40, messages.Uint64Codec{})
	txVoteConfigConfig     = messages.NewSegmentField(txVoteConfigSchema, "config", 48, messages.Uint8Codec{})
)

// TxVoteConfig is a vote for a new configuration, active from the height actualFrom.
// The configuration is opaque to this package.
type TxVoteConfig struct {
	txMessage
	config messages.Segment[uint8]
}

func NewTxVoteConfig(actualFrom uint64, config []byte, seed uint64, priv *sig.SecretKey) (*TxVoteConfig, error) {
	if priv == nil {
		return nil, types.ErrNilPriv
	}
	w := txVoteConfigSchema.NewWriter()
	txVoteConfigFields.put(w, priv.GetPub(), seed)
	txVoteConfigActualFrom.Put(w, actualFrom)
	txVoteConfigConfig.Put(w, config)
	raw, err := w.Finish(priv)
	if err != nil {
		return nil, err
	}
	return TxVoteConfigFromRaw(raw)
}

// TxVoteConfigFromRaw checks raw is a valid configuration vote.
func TxVoteConfigFromRaw(raw *messages.RawMessage) (*TxVoteConfig, error) {
	if err := txVoteConfigSchema.Check(raw); err != nil {
		return nil, err
	}
	config, err := txVoteConfigConfig.Get(raw)
	if err != nil {
		return nil, err
	}
	return &TxVoteConfig{txMessage: txMessage{signedMessage{raw}, txVoteConfigFields}, config: config}, nil
}

func (tx *TxVoteConfig) ActualFrom() uint64 {
	return txVoteConfigActualFrom.Get(tx.raw)
}

// Config returns a copy of the configuration.
func (tx *TxVoteConfig) Config() []byte {
	return append([]byte(nil), tx.config.Bytes()...)
}

func (tx *TxVoteConfig) String() string {
	return fmt.Sprintf("TxVoteConfig{sender: %v, seed: %d, actual_from: %d, config: %d bytes}",
		tx.Sender(), tx.Seed(), tx.ActualFrom(), tx.config.Len())
}
