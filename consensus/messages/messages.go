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
	"github.com/tcrain/consmsg/consensus/types"
)

// RawMessage is a structurally valid signed message.
// It owns its bytes and is never modified, so it can be shared between goroutines.
type RawMessage struct {
	buff []byte
}

// RawMessageFromBytes checks the structure of buff using config.MaxMsgSize as the size limit.
func RawMessageFromBytes(buff []byte) (*RawMessage, error) {
	return RawMessageFromBytesLimit(buff, config.MaxMsgSize)
}

// RawMessageFromBytesLimit checks the envelope of buff and wraps it in a RawMessage.
// The size limit is checked first so oversized input is rejected before anything is decoded.
// The body and signature are not checked. buff is copied so the caller may reuse it.
func RawMessageFromBytesLimit(buff []byte, maxSize int) (*RawMessage, error) {
	if len(buff) > maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", types.ErrTooLong, len(buff), maxSize)
	}
	if len(buff) < MinMessageSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", types.ErrUnexpectedlyShort, len(buff), MinMessageSize)
	}
	hdr, _, err := ReadHeaderHead(ToMsgBuffer(buff))
	if err != nil {
		return nil, err
	}
	if actual := len(buff) - MinMessageSize; uint64(hdr.BodyLen) != uint64(actual) {
		return nil, fmt.Errorf("%w: declared %d, actual %d", types.ErrIncorrectLength, hdr.BodyLen, actual)
	}
	return &RawMessage{buff: append([]byte(nil), buff...)}, nil
}

// NewRawMessage creates a message with the body signed by priv, using config.DefaultNetworkID.
func NewRawMessage(class MessageClass, msgType MessageType, body []byte, priv *sig.SecretKey) (*RawMessage, error) {
	return NewRawMessageNetwork(config.DefaultNetworkID, class, msgType, body, priv)
}

// NewRawMessageNetwork creates a message for the network with the body signed by priv.
// The body is copied.
func NewRawMessageNetwork(networkID uint8, class MessageClass, msgType MessageType, body []byte,
	priv *sig.SecretKey) (*RawMessage, error) {

	mb := NewMsgBufferSize(HeaderSize, MinMessageSize+len(body))
	mb.AddBytes(body)
	return finishMessage(networkID, class, msgType, mb, priv)
}

// finishMessage writes the header into the space reserved at the start of mb,
// then appends the signature of everything in mb.
func finishMessage(networkID uint8, class MessageClass, msgType MessageType, mb *MsgBuffer,
	priv *sig.SecretKey) (*RawMessage, error) {

	if total := mb.Len() + SignatureSize; total > config.MaxMsgSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", types.ErrTooLong, total, config.MaxMsgSize)
	}
	hdr := Header{
		NetworkID: networkID,
		Class:     class,
		Type:      msgType,
		BodyLen:   uint32(mb.Len() - HeaderSize),
	}
	if err := WriteHeaderHead(hdr, mb); err != nil {
		return nil, err
	}
	asig, err := priv.Sign(mb.GetBytes())
	if err != nil {
		return nil, err
	}
	mb.AddBytes(asig[:])
	return &RawMessage{buff: mb.GetBytes()}, nil
}

// NetworkID returns the network id from the header.
func (rm *RawMessage) NetworkID() uint8 {
	return rm.buff[networkIDIndex]
}

// MessageClass returns the class from the header.
func (rm *RawMessage) MessageClass() MessageClass {
	return MessageClass(rm.buff[classIndex])
}

// MessageType returns the type from the header.
func (rm *RawMessage) MessageType() MessageType {
	return MessageType(rm.buff[typeIndex])
}

// Header returns the decoded header.
func (rm *RawMessage) Header() Header {
	return Header{
		NetworkID: rm.NetworkID(),
		Class:     rm.MessageClass(),
		Type:      rm.MessageType(),
		BodyLen:   uint32(rm.BodyLen()),
	}
}

// BodyLen returns the size of the body in bytes.
func (rm *RawMessage) BodyLen() int {
	return len(rm.buff) - MinMessageSize
}

// Body returns the bytes between the header and the signature.
func (rm *RawMessage) Body() []byte {
	end := len(rm.buff) - SignatureSize
	return rm.buff[HeaderSize:end:end]
}

// SignedBytes returns the header and body, the part of the message covered by the signature.
func (rm *RawMessage) SignedBytes() []byte {
	end := len(rm.buff) - SignatureSize
	return rm.buff[:end:end]
}

// Signature returns a copy of the signature.
func (rm *RawMessage) Signature() (s sig.Signature) {
	copy(s[:], rm.buff[len(rm.buff)-SignatureSize:])
	return
}

// Bytes returns the full message, it must not be modified.
// Decoders keep views into these bytes.
func (rm *RawMessage) Bytes() []byte {
	return rm.buff
}

// Len returns the size of the full message in bytes.
func (rm *RawMessage) Len() int {
	return len(rm.buff)
}

// Hash returns the hash of the full message, including the signature.
func (rm *RawMessage) Hash() types.Hash {
	return types.GetHash(rm.buff)
}

// Verify returns true if the signature was made by pub over the header and body.
func (rm *RawMessage) Verify(pub sig.PublicKey) bool {
	return pub.Verify(rm.SignedBytes(), rm.Signature())
}

func (rm *RawMessage) String() string {
	return fmt.Sprintf("%s network %d, %d bytes", TagName(rm.MessageClass(), rm.MessageType()), rm.NetworkID(), rm.Len())
}
