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
	"math"
	"net/netip"
	"time"

	"github.com/tcrain/consmsg/consensus/auth/sig"
	"github.com/tcrain/consmsg/consensus/types"
)

// Codec reads and writes a fixed size value.
// Read and Write are always given a slice of exactly Size bytes,
// Write must only change those bytes.
type Codec[T any] interface {
	Size() int
	Read(b []byte) T
	Write(b []byte, v T)
}

// Uint8Codec encodes a uint8 as a single byte.
type Uint8Codec struct{}

func (Uint8Codec) Size() int               { return 1 }
func (Uint8Codec) Read(b []byte) uint8     { return b[0] }
func (Uint8Codec) Write(b []byte, v uint8) { b[0] = v }

// BoolCodec encodes a bool as a single byte, any non-zero value is read as true.
type BoolCodec struct{}

func (BoolCodec) Size() int { return 1 }

func (BoolCodec) Read(b []byte) bool {
	return b[0] != 0
}

func (BoolCodec) Write(b []byte, v bool) {
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}
}

// Uint16Codec encodes a uint16 using config.Encoding.
type Uint16Codec struct{}

func (Uint16Codec) Size() int                { return 2 }
func (Uint16Codec) Read(b []byte) uint16     { return encoding.Uint16(b) }
func (Uint16Codec) Write(b []byte, v uint16) { encoding.PutUint16(b, v) }

// Uint32Codec encodes a uint32 using config.Encoding.
type Uint32Codec struct{}

func (Uint32Codec) Size() int                { return 4 }
func (Uint32Codec) Read(b []byte) uint32     { return encoding.Uint32(b) }
func (Uint32Codec) Write(b []byte, v uint32) { encoding.PutUint32(b, v) }

// Uint64Codec encodes a uint64 using config.Encoding.
type Uint64Codec struct{}

func (Uint64Codec) Size() int                { return 8 }
func (Uint64Codec) Read(b []byte) uint64     { return encoding.Uint64(b) }
func (Uint64Codec) Write(b []byte, v uint64) { encoding.PutUint64(b, v) }

// HashCodec encodes a types.Hash as its raw bytes.
type HashCodec struct{}

func (HashCodec) Size() int { return types.HashSize }

func (HashCodec) Read(b []byte) (h types.Hash) {
	copy(h[:], b)
	return
}

func (HashCodec) Write(b []byte, v types.Hash) { copy(b, v[:]) }

// PublicKeyCodec encodes a sig.PublicKey as its raw bytes.
// The key is not checked to be a valid curve point.
type PublicKeyCodec struct{}

func (PublicKeyCodec) Size() int { return sig.PublicKeySize }

func (PublicKeyCodec) Read(b []byte) (pub sig.PublicKey) {
	copy(pub[:], b)
	return
}

func (PublicKeyCodec) Write(b []byte, v sig.PublicKey) { copy(b, v[:]) }

// the range of times that fit in an int64 of nanoseconds since the unix epoch
var (
	minTime = time.Unix(0, math.MinInt64)
	maxTime = time.Unix(0, math.MaxInt64)
)

// TimeInRange returns true if t can be encoded by TimeCodec (years 1678 to 2262).
// The zero time.Time is out of range.
func TimeInRange(t time.Time) bool {
	return !t.Before(minTime) && !t.After(maxTime)
}

// TimeCodec encodes a time as nanoseconds since the unix epoch.
// Times are decoded in UTC. Writing a time outside of TimeInRange does not round trip,
// constructors must check it first.
type TimeCodec struct{}

func (TimeCodec) Size() int { return 8 }

func (TimeCodec) Read(b []byte) time.Time {
	return time.Unix(0, int64(encoding.Uint64(b))).UTC()
}

func (TimeCodec) Write(b []byte, v time.Time) {
	encoding.PutUint64(b, uint64(v.UnixNano()))
}

// AddrPortCodec encodes an address and port as a 16 byte IPv6 address
// (IPv4 addresses are mapped) followed by a 2 byte port.
// Zones are not encoded, and an invalid address is written as [::]:port.
// Constructors check AddrEncodable first.
type AddrPortCodec struct{}

func (AddrPortCodec) Size() int { return 18 }

// AddrEncodable returns true if v reads back unchanged from AddrPortCodec.
func AddrEncodable(v netip.AddrPort) bool {
	return v.IsValid() && v.Addr().Zone() == ""
}

func (AddrPortCodec) Read(b []byte) netip.AddrPort {
	var ip [16]byte
	copy(ip[:], b[:16])
	return netip.AddrPortFrom(netip.AddrFrom16(ip).Unmap(), encoding.Uint16(b[16:18]))
}

func (AddrPortCodec) Write(b []byte, v netip.AddrPort) {
	ip := v.Addr().As16()
	copy(b[:16], ip[:])
	encoding.PutUint16(b[16:18], v.Port())
}

// segmentPtr is the value stored in the fixed region for a segment field.
type segmentPtr struct {
	Offset uint32 // from the start of the message
	Count  uint32 // number of elements
}

const segmentPtrSize = 8

type segmentPtrCodec struct{}

func (segmentPtrCodec) Size() int { return segmentPtrSize }

func (segmentPtrCodec) Read(b []byte) segmentPtr {
	return segmentPtr{Offset: encoding.Uint32(b[:4]), Count: encoding.Uint32(b[4:8])}
}

func (segmentPtrCodec) Write(b []byte, v segmentPtr) {
	encoding.PutUint32(b[:4], v.Offset)
	encoding.PutUint32(b[4:8], v.Count)
}
