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
	"errors"
	"math"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcrain/consmsg/consensus/types"
)

const testType MessageType = 200

var (
	testSchema = NewSchema("Test", ClassTx, testType, 28)
	testID     = NewField(testSchema, "id", 0, Uint32Codec{})
	testValue  = NewField(testSchema, "value", 4, Uint64Codec{})
	testNames  = NewSegmentField(testSchema, "names", 12, Uint8Codec{})
	testHashes = NewSegmentField(testSchema, "hashes", 20, HashCodec{})
)

func buildTestMessage(t *testing.T, names []byte, hashes []types.Hash) *RawMessage {
	w := testSchema.NewWriter()
	testID.Put(w, 7)
	testNames.Put(w, names)
	// fields can still be put after a segment
	testValue.Put(w, math.MaxUint64)
	testHashes.Put(w, hashes)
	raw, err := w.Finish(newTestKey(t))
	require.Nil(t, err)
	return raw
}

func TestSchemaRoundTrip(t *testing.T) {
	hashes := []types.Hash{types.GetHash([]byte("a")), types.GetHash([]byte("b"))}
	raw := buildTestMessage(t, []byte("abc"), hashes)
	assert.Equal(t, testSchema.FixedEnd()+3+2*types.HashSize+SignatureSize, raw.Len())

	raw, err := RawMessageFromBytes(raw.Bytes())
	require.Nil(t, err)
	require.Nil(t, testSchema.Check(raw))

	assert.Equal(t, uint32(7), testID.Get(raw))
	assert.Equal(t, uint64(math.MaxUint64), testValue.Get(raw))

	names, err := testNames.Get(raw)
	require.Nil(t, err)
	assert.Equal(t, 3, names.Len())
	assert.Equal(t, []byte("abc"), names.Bytes())
	assert.Equal(t, byte('b'), names.At(1))

	hs, err := testHashes.Get(raw)
	require.Nil(t, err)
	assert.Equal(t, hashes, hs.Slice())
	assert.Panics(t, func() { hs.At(2) })
}

func TestSchemaEmptySegments(t *testing.T) {
	raw := buildTestMessage(t, nil, nil)
	assert.Equal(t, testSchema.FixedEnd()+SignatureSize, raw.Len())
	require.Nil(t, testSchema.Check(raw))

	names, err := testNames.Get(raw)
	require.Nil(t, err)
	assert.Equal(t, 0, names.Len())
	assert.Equal(t, 0, len(names.Slice()))

	assert.Equal(t, 0, Segment[types.Hash]{}.Len())
}

func TestSchemaCheck(t *testing.T) {
	priv := newTestKey(t)

	raw, err := NewRawMessage(ClassTx, testType+1, make([]byte, 28), priv)
	require.Nil(t, err)
	assert.ErrorIs(t, testSchema.Check(raw), types.ErrIncorrectMessageType)
	raw, err = NewRawMessage(ClassConsensus, testType, make([]byte, 28), priv)
	require.Nil(t, err)
	assert.ErrorIs(t, testSchema.Check(raw), types.ErrIncorrectMessageType)

	raw, err = NewRawMessage(ClassTx, testType, make([]byte, 27), priv)
	require.Nil(t, err)
	assert.ErrorIs(t, testSchema.Check(raw), types.ErrUnexpectedlyShort)

	// zero pointers are before the end of the fixed region
	raw, err = NewRawMessage(ClassTx, testType, make([]byte, 28), priv)
	require.Nil(t, err)
	assert.ErrorIs(t, testSchema.Check(raw), types.ErrIncorrectSegmentReference)
}

func TestSchemaBadSegment(t *testing.T) {
	raw := buildTestMessage(t, []byte("abc"), []types.Hash{{1}})
	hashPtr := HeaderSize + 20

	corrupt := func(fn func(buff []byte)) *RawMessage {
		buff := append([]byte(nil), raw.Bytes()...)
		fn(buff)
		ret, err := RawMessageFromBytes(buff)
		require.Nil(t, err)
		return ret
	}
	for _, bad := range []*RawMessage{
		// count past the signature
		corrupt(func(buff []byte) { encoding.PutUint32(buff[hashPtr+4:], 2) }),
		// offset inside the fixed region
		corrupt(func(buff []byte) { encoding.PutUint32(buff[hashPtr:], uint32(testSchema.FixedEnd()-1)) }),
		// offset in the signature
		corrupt(func(buff []byte) { encoding.PutUint32(buff[hashPtr:], uint32(len(buff)-SignatureSize+1)) }),
		// values that overflow 32 bit arithmetic
		corrupt(func(buff []byte) {
			encoding.PutUint32(buff[hashPtr:], math.MaxUint32)
			encoding.PutUint32(buff[hashPtr+4:], math.MaxUint32)
		}),
	} {
		err := testSchema.Check(bad)
		assert.ErrorIs(t, err, types.ErrIncorrectSegmentReference)
		var refErr *SegmentRefError
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, "hashes", refErr.Field)
		assert.Equal(t, testSchema.FixedEnd(), refErr.Min)
		assert.Equal(t, bad.Len()-SignatureSize, refErr.Max)

		_, err = testHashes.Get(bad)
		assert.ErrorIs(t, err, types.ErrIncorrectSegmentReference)
		// the other segment is still readable
		names, err := testNames.Get(bad)
		assert.Nil(t, err)
		assert.Equal(t, []byte("abc"), names.Bytes())
	}

	// a segment may overlap the other one, only the bounds are checked
	ok := corrupt(func(buff []byte) { encoding.PutUint32(buff[hashPtr+4:], 0) })
	assert.Nil(t, testSchema.Check(ok))
}

func TestSchemaLayoutPanics(t *testing.T) {
	assert.Panics(t, func() { NewSchema("neg", ClassBasic, 0, -1) })

	s := NewSchema("layout", ClassBasic, 0, 16)
	NewField(s, "a", 0, Uint64Codec{})
	assert.Panics(t, func() { NewField(s, "overlap", 4, Uint32Codec{}) })
	assert.Panics(t, func() { NewField(s, "end", 12, Uint64Codec{}) })
	assert.Panics(t, func() { NewField(s, "negative", -1, Uint8Codec{}) })
	assert.Panics(t, func() { NewSegmentField(s, "seg", 4, Uint8Codec{}) })
	assert.NotPanics(t, func() { NewField(s, "b", 8, Uint32Codec{}) })
	assert.Panics(t, func() { NewSegmentField(s, "c", 12, Uint8Codec{}) })
	assert.NotPanics(t, func() { NewField(s, "c", 12, Uint32Codec{}) })
}

func TestFieldWriteIsolation(t *testing.T) {
	body := make([]byte, 28)
	for i := range body {
		body[i] = 0xff
	}
	testID.Write(body, 0)
	testValue.Write(body, 1)
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0}, body[:12])
	for _, b := range body[12:] {
		assert.Equal(t, byte(0xff), b)
	}
	assert.Equal(t, uint32(0), testID.Read(body))
	assert.Equal(t, uint64(1), testValue.Read(body))
}

func TestWriterOrder(t *testing.T) {
	priv := newTestKey(t)

	w := testSchema.NewWriter()
	assert.Panics(t, func() { testHashes.Put(w, nil) })
	testNames.Put(w, []byte("x"))
	assert.Panics(t, func() { testNames.Put(w, []byte("y")) })
	assert.Panics(t, func() { w.Finish(priv) })
	testHashes.Put(w, nil)
	_, err := w.Finish(priv)
	assert.Nil(t, err)

	other := NewSchema("Other", ClassTx, testType+1, 4)
	otherID := NewField(other, "id", 0, Uint32Codec{})
	assert.Panics(t, func() { otherID.Put(testSchema.NewWriter(), 1) })

	raw, err := other.NewWriter().FinishNetwork(5, priv)
	require.Nil(t, err)
	assert.Nil(t, other.Check(raw))
	assert.Equal(t, uint8(5), raw.NetworkID())
	assert.Equal(t, uint32(0), otherID.Get(raw))
}

func TestTimeInRange(t *testing.T) {
	assert.False(t, TimeInRange(time.Time{}))
	assert.False(t, TimeInRange(time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, TimeInRange(time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, TimeInRange(time.Unix(0, 0)))

	b := make([]byte, 8)
	for _, tm := range []time.Time{time.Unix(0, math.MinInt64), time.Unix(0, math.MaxInt64), time.Unix(1600000000, 5)} {
		assert.True(t, TimeInRange(tm))
		TimeCodec{}.Write(b, tm)
		assert.True(t, tm.Equal(TimeCodec{}.Read(b)))
	}
}

func TestAddrEncodable(t *testing.T) {
	b := make([]byte, AddrPortCodec{}.Size())
	for _, addr := range []netip.AddrPort{
		netip.MustParseAddrPort("192.168.1.1:80"),
		netip.MustParseAddrPort("[::1]:0"),
	} {
		assert.True(t, AddrEncodable(addr))
		AddrPortCodec{}.Write(b, addr)
		assert.Equal(t, addr, AddrPortCodec{}.Read(b))
	}
	assert.False(t, AddrEncodable(netip.AddrPort{}))
	assert.False(t, AddrEncodable(netip.MustParseAddrPort("[fe80::1%eth0]:5")))
}
