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
	"github.com/tcrain/consmsg/consensus/auth/sig"
)

// Offsets of the header values in the message
const (
	networkIDIndex = 0
	classIndex     = 1
	typeIndex      = 2
	bodyLenIndex   = 3
)

const (
	HeaderSize     = 7                          // size of the header in bytes
	SignatureSize  = sig.SignatureSize          // size of the signature at the end of every message
	MinMessageSize = HeaderSize + SignatureSize // size of a message with an empty body
)

// Header is the decoded header of a message.
type Header struct {
	NetworkID uint8
	Class     MessageClass
	Type      MessageType
	BodyLen   uint32
}

// WriteHeaderHead writes hdr over the first HeaderSize bytes of m,
// which must already be reserved.
func WriteHeaderHead(hdr Header, m *MsgBuffer) error {
	if err := m.WriteByteAt(networkIDIndex, hdr.NetworkID); err != nil {
		return err
	}
	if err := m.WriteByteAt(classIndex, byte(hdr.Class)); err != nil {
		return err
	}
	if err := m.WriteByteAt(typeIndex, byte(hdr.Type)); err != nil {
		return err
	}
	return m.WriteUint32At(bodyLenIndex, hdr.BodyLen)
}

// ReadHeaderHead reads a header from the current read offset of m.
// It returns the header and the number of bytes read.
func ReadHeaderHead(m *MsgBuffer) (hdr Header, l int, err error) {
	var b byte
	if b, err = m.ReadByte(); err != nil {
		return
	}
	hdr.NetworkID = b
	l++
	if b, err = m.ReadByte(); err != nil {
		return
	}
	hdr.Class = MessageClass(b)
	l++
	if b, err = m.ReadByte(); err != nil {
		return
	}
	hdr.Type = MessageType(b)
	l++
	var br int
	if hdr.BodyLen, br, err = m.ReadUint32(); err != nil {
		return
	}
	l += br
	return
}
