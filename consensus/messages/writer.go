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

	"github.com/tcrain/consmsg/config"
	"github.com/tcrain/consmsg/consensus/auth/sig"
)

// Writer builds a message of a schema.
// Fields can be put in any order, segments must be put in the order they were registered.
// A Writer must not be used after Finish.
type Writer struct {
	schema   *Schema
	mb       *MsgBuffer
	segments int // number of segments written
}

// NewWriter returns a writer with the header and fixed region reserved and zeroed.
func (s *Schema) NewWriter() *Writer {
	return &Writer{
		schema: s,
		mb:     NewMsgBufferSize(s.FixedEnd(), s.FixedEnd()+SignatureSize),
	}
}

// fixed returns the fixed region, the slice is only valid until the next segment is added.
func (w *Writer) fixed() []byte {
	end := w.schema.FixedEnd()
	return w.mb.GetBytes()[HeaderSize:end:end]
}

func (w *Writer) checkSchema(s *Schema, name string) {
	if w.schema != s {
		panic(fmt.Sprintf("field %s of schema %s used with writer for schema %s", name, s.name, w.schema.name))
	}
}

// Finish signs the message with priv using config.DefaultNetworkID.
func (w *Writer) Finish(priv *sig.SecretKey) (*RawMessage, error) {
	return w.FinishNetwork(config.DefaultNetworkID, priv)
}

// FinishNetwork writes the header for the network and signs the message with priv.
// It panics if not all segments have been written.
func (w *Writer) FinishNetwork(networkID uint8, priv *sig.SecretKey) (*RawMessage, error) {
	if w.segments != len(w.schema.segments) {
		panic(fmt.Sprintf("schema %s: %d of %d segments written", w.schema.name, w.segments, len(w.schema.segments)))
	}
	mb := w.mb
	w.mb = nil
	return finishMessage(networkID, w.schema.class, w.schema.msgType, mb, priv)
}
