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
	"github.com/tcrain/consmsg/config"
	"github.com/tcrain/consmsg/consensus/types"
)

var encoding = config.Encoding

// MsgBuffer is for building and reading a message.
// Read operations read based on the index of the previous read, where each
// operation incraments the index.
// E.g. the first ReadUint32 reads bytes 0-3, and the follow reads 4-7
// Add operations write to the end of the buffer.
// WriteAt operations write at a specific index in the buffer.
type MsgBuffer struct {
	buff        []byte // The actual bytes
	readOffset  int    // The index where the next read operation will be performed, each read operation increments this by the amount of bytes read
	writeOffset int    // The index where the next add operation will be performed, each add operation increments this by the amount of bytes written
}

// ToMsgBuffer creates a MsgBuffer object from the bytes, the read offset
// is set to the beginning and the writeoffset is set to the end
func ToMsgBuffer(buff []byte) *MsgBuffer {
	return &MsgBuffer{
		buff:        buff,
		writeOffset: len(buff),
	}
}

// NewMsgBufferSize creates a new buffer using the following: "make([]byte, i, n)"
func NewMsgBufferSize(i int, n int) *MsgBuffer {
	return &MsgBuffer{
		buff:        make([]byte, i, n),
		writeOffset: i,
	}
}

// Write appends p to the end of the buffer and returns len(p)
func (mb *MsgBuffer) Write(p []byte) (n int, err error) {
	mb.buff = append(mb.buff, p...)
	mb.writeOffset += len(p)
	if mb.writeOffset != len(mb.buff) {
		panic("offset")
	}
	return len(p), nil
}

// AddBytes append v to the end of the buffer.
// It reutrns len(v) and the offset where v was written in the buffer.
func (mb *MsgBuffer) AddBytes(v []byte) (int, int) {
	off := mb.writeOffset
	_, err := mb.Write(v)
	if err != nil {
		panic(err)
	}
	return len(v), off
}

// AddZeros appends n 0 bytes to the end of the buffer.
// It returns the slice of the buffer that was added, valid until the next add operation.
func (mb *MsgBuffer) AddZeros(n int) []byte {
	off := mb.writeOffset
	mb.buff = append(mb.buff, make([]byte, n)...)
	mb.writeOffset += n
	return mb.buff[off:mb.writeOffset:mb.writeOffset]
}

// WriteByteAt overwrites the byte at offset with v
func (mb *MsgBuffer) WriteByteAt(offset int, v byte) error {
	if offset < 0 || len(mb.buff) <= offset {
		return types.ErrNotEnoughBytes
	}
	mb.buff[offset] = v
	return nil
}

// WriteUint32At encodes v and overwrites the bytes at offset
func (mb *MsgBuffer) WriteUint32At(offset int, v uint32) error {
	if offset < 0 || len(mb.buff) < offset+4 {
		return types.ErrNotEnoughBytes
	}
	encoding.PutUint32(mb.buff[offset:offset+4], v)
	return nil
}

// ReadByte reads a byte from the buffer and increments the read offset
func (mb *MsgBuffer) ReadByte() (byte, error) {
	offset := mb.readOffset
	mb.readOffset++
	if len(mb.buff) < mb.readOffset {
		mb.readOffset = offset
		return 0, types.ErrNotEnoughBytes
	}
	return mb.buff[offset], nil
}

// ReadUint32 reads a uint32 from the buffer.
// It returns the value read, the number of bytes read, and any errors.
// It also increments the read offset.
func (mb *MsgBuffer) ReadUint32() (uint32, int, error) {
	offset := mb.readOffset
	mb.readOffset += 4
	if len(mb.buff) < mb.readOffset {
		mb.readOffset = offset
		return 0, 0, types.ErrNotEnoughBytes
	}
	v := encoding.Uint32(mb.buff[offset:mb.readOffset])
	return v, 4, nil
}

// GetWriteOffset returns the current write offset (this will always be the end of the buffer)
func (mb *MsgBuffer) GetWriteOffset() int {
	return mb.writeOffset
}

// GetSlice returns the slice of bytes from start to end in the buffer.
// The capacity of the slice is limited to end so appending to it cannot change the buffer.
func (mb *MsgBuffer) GetSlice(start, end int) ([]byte, error) {
	if start > end || start < 0 || len(mb.buff) < end {
		return nil, types.ErrNotEnoughBytes
	}
	return mb.buff[start:end:end], nil
}

// GetBytes returns the full buffer
func (mb *MsgBuffer) GetBytes() []byte {
	return mb.buff
}

// Len returns the length of the buffer
func (mb *MsgBuffer) Len() int {
	return len(mb.buff)
}
