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
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcrain/consmsg/config"
	"github.com/tcrain/consmsg/consensus/messages"
	"github.com/tcrain/consmsg/consensus/types"
)

func TestUnknownMessage(t *testing.T) {
	priv := newKey(t)
	for _, tag := range [][2]uint8{{99, 99}, {0, 1}, {1, 4}, {2, 4}, {3, 0}} {
		raw, err := messages.NewRawMessage(messages.MessageClass(tag[0]), messages.MessageType(tag[1]),
			make([]byte, 100), priv)
		require.Nil(t, err)
		m, err := FromRaw(raw)
		assert.True(t, m == nil)
		assert.ErrorIs(t, err, types.ErrUnknownMessageType, "tag %v", tag)

		_, err = FromBytes(raw.Bytes())
		assert.ErrorIs(t, err, types.ErrUnknownMessageType)
	}
}

func TestIncorrectMessageType(t *testing.T) {
	priv := newKey(t)
	p, err := NewPropose(1, 1, 1, time.Now(), types.Hash{}, nil, priv)
	require.Nil(t, err)
	c, err := NewConnect(netip.MustParseAddrPort("127.0.0.1:1"), time.Now(), priv)
	require.Nil(t, err)

	_, err = PrevoteFromRaw(p.Raw())
	assert.ErrorIs(t, err, types.ErrIncorrectMessageType)
	_, err = TxIssueFromRaw(p.Raw())
	assert.ErrorIs(t, err, types.ErrIncorrectMessageType)
	_, err = ProposeFromRaw(c.Raw())
	assert.ErrorIs(t, err, types.ErrIncorrectMessageType)

	cm, err := ConsensusFromRaw(c.Raw())
	assert.True(t, cm == nil)
	assert.ErrorIs(t, err, types.ErrIncorrectMessageType)
	_, err = TxFromRaw(p.Raw())
	assert.ErrorIs(t, err, types.ErrIncorrectMessageType)
	_, err = BasicFromRaw(p.Raw())
	assert.ErrorIs(t, err, types.ErrIncorrectMessageType)
}

func TestDecodeErrors(t *testing.T) {
	priv := newKey(t)

	_, err := FromBytes(nil)
	assert.ErrorIs(t, err, types.ErrUnexpectedlyShort)
	_, err = FromBytes(make([]byte, config.MaxMsgSize+1))
	assert.ErrorIs(t, err, types.ErrTooLong)

	c, err := NewCommit(1, 1, 1, types.Hash{}, priv)
	require.Nil(t, err)
	_, err = FromBytesLimit(c.Raw().Bytes(), c.Raw().Len()-1)
	assert.ErrorIs(t, err, types.ErrTooLong)
	_, err = FromBytesLimit(c.Raw().Bytes(), c.Raw().Len())
	assert.Nil(t, err)

	buff := append([]byte(nil), c.Raw().Bytes()...)
	_, err = FromBytes(append(buff, 1, 2, 3))
	assert.ErrorIs(t, err, types.ErrIncorrectLength)

	// a body too short for the fixed fields
	raw, err := messages.NewRawMessage(messages.ClassConsensus, messages.TypeCommit, make([]byte, 47), priv)
	require.Nil(t, err)
	m, err := FromRaw(raw)
	assert.True(t, m == nil)
	assert.ErrorIs(t, err, types.ErrUnexpectedlyShort)
}

func TestSegmentOutOfBounds(t *testing.T) {
	priv := newKey(t)
	h := types.GetHash(nil)
	p, err := NewPropose(1, 1, 1, time.Now(), h, []types.Hash{h, h}, priv)
	require.Nil(t, err)

	countAt := messages.HeaderSize + 56 + 4
	buff := append([]byte(nil), p.Raw().Bytes()...)
	config.Encoding.PutUint32(buff[countAt:], 3)
	m, err := FromBytes(buff)
	assert.True(t, m == nil)
	assert.ErrorIs(t, err, types.ErrIncorrectSegmentReference)
	var refErr *messages.SegmentRefError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "transactions", refErr.Field)
	assert.Equal(t, uint32(3), refErr.Count)

	tx, err := NewTxTransfer([]TransferOutput{{Amount: 1}}, 1, priv)
	require.Nil(t, err)
	buff = append([]byte(nil), tx.Raw().Bytes()...)
	config.Encoding.PutUint32(buff[messages.HeaderSize+40:], 0)
	_, err = FromBytes(buff)
	assert.ErrorIs(t, err, types.ErrIncorrectSegmentReference)
}

func TestTamper(t *testing.T) {
	priv := newKey(t)
	pv, err := NewPrevote(1, 5, 2, types.GetHash([]byte("p")), 0, priv)
	require.Nil(t, err)

	buff := append([]byte(nil), pv.Raw().Bytes()...)
	buff[messages.HeaderSize+4]++ // height
	m, err := FromBytes(buff)
	require.Nil(t, err)
	tampered := m.(*Prevote)
	assert.Equal(t, uint64(6), tampered.Height())
	assert.False(t, tampered.Verify(priv.GetPub()))
	assert.NotEqual(t, pv.Hash(), tampered.Hash())
	assert.True(t, pv.Verify(priv.GetPub()))
}

func TestHashVerifyRepeatable(t *testing.T) {
	priv := newKey(t)
	other := newKey(t)
	tx, err := NewTxIssue("coin", 5, 5, priv)
	require.Nil(t, err)

	h := tx.Hash()
	for i := 0; i < 3; i++ {
		assert.Equal(t, h, tx.Hash())
		assert.True(t, tx.Verify(priv.GetPub()))
		assert.False(t, tx.Verify(other.GetPub()))
	}
	assert.Equal(t, types.GetHash(tx.Raw().Bytes()), h)
}

func TestString(t *testing.T) {
	priv := newKey(t)
	c, err := NewCommit(1, 2, 3, types.Hash{}, priv)
	require.Nil(t, err)
	assert.Contains(t, c.String(), "height: 2")
	tx, err := NewTxIssue("gold", 1, 1, priv)
	require.Nil(t, err)
	assert.Contains(t, tx.String(), `"gold"`)
}

func TestDecodedMessageOwnsBytes(t *testing.T) {
	priv := newKey(t)
	c, err := NewCommit(1, 5, 2, types.Hash{3}, priv)
	require.Nil(t, err)
	buff := append([]byte(nil), c.Raw().Bytes()...)
	m, err := FromBytes(buff)
	require.Nil(t, err)
	buff[messages.HeaderSize+4] = 0xff
	assert.Equal(t, uint64(5), m.(ConsensusMessage).Height())
	assert.True(t, m.Verify(priv.GetPub()))

	txs := []types.Hash{types.GetHash([]byte("a")), types.GetHash([]byte("b"))}
	p, err := NewPropose(1, 5, 2, time.Now(), types.Hash{}, txs, priv)
	require.Nil(t, err)
	buff = append([]byte(nil), p.Raw().Bytes()...)
	m, err = FromBytes(buff)
	require.Nil(t, err)
	for i := range buff {
		buff[i] = 0
	}
	assert.Equal(t, txs, m.(*Propose).Transactions().Slice())
	assert.True(t, m.Verify(priv.GetPub()))
}
