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
	"math"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcrain/consmsg/consensus/auth/sig"
	"github.com/tcrain/consmsg/consensus/messages"
	"github.com/tcrain/consmsg/consensus/types"
)

func newKey(t *testing.T) *sig.SecretKey {
	priv, err := sig.GenerateKey()
	require.Nil(t, err)
	return priv
}

// decodeAgain sends the bytes of m through the dispatch, as if received from the network.
func decodeAgain(t *testing.T, m Any) Any {
	ret, err := FromBytes(m.Raw().Bytes())
	require.Nil(t, err)
	assert.Equal(t, m.Hash(), ret.Hash())
	return ret
}

func TestConnect(t *testing.T) {
	priv := newKey(t)
	tm := time.Unix(1600000000, 123).UTC()
	for _, addr := range []netip.AddrPort{
		netip.MustParseAddrPort("127.0.0.1:8080"),
		netip.MustParseAddrPort("[2001:db8::1]:9000"),
	} {
		c, err := NewConnect(addr, tm, priv)
		require.Nil(t, err)
		assert.Equal(t, messages.ClassBasic, c.Raw().MessageClass())
		assert.Equal(t, messages.TypeConnect, c.Raw().MessageType())

		m := decodeAgain(t, c)
		c2, ok := m.(*Connect)
		require.True(t, ok)
		_, ok = m.(BasicMessage)
		assert.True(t, ok)
		assert.Equal(t, priv.GetPub(), c2.PubKey())
		assert.Equal(t, addr, c2.Addr())
		assert.True(t, tm.Equal(c2.Time()))
		assert.True(t, c2.Verify(c2.PubKey()))
	}
	_, err := NewConnect(netip.AddrPort{}, tm, nil)
	assert.Equal(t, types.ErrNilPriv, err)
}

func TestConnectInvalidInput(t *testing.T) {
	priv := newKey(t)
	addr := netip.MustParseAddrPort("127.0.0.1:8080")

	_, err := NewConnect(addr, time.Time{}, priv)
	assert.ErrorIs(t, err, types.ErrTimeOutOfRange)
	_, err = NewConnect(addr, time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC), priv)
	assert.ErrorIs(t, err, types.ErrTimeOutOfRange)

	_, err = NewConnect(netip.AddrPort{}, time.Now(), priv)
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
	_, err = NewConnect(netip.MustParseAddrPort("[fe80::1%eth0]:5"), time.Now(), priv)
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestProposeTimeRange(t *testing.T) {
	priv := newKey(t)
	_, err := NewPropose(0, 1, 0, time.Time{}, types.Hash{}, nil, priv)
	assert.ErrorIs(t, err, types.ErrTimeOutOfRange)
	_, err = NewPropose(0, 1, 0, time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC), types.Hash{}, nil, priv)
	assert.ErrorIs(t, err, types.ErrTimeOutOfRange)

	last := time.Unix(0, math.MaxInt64).UTC()
	p, err := NewPropose(0, 1, 0, last, types.Hash{}, nil, priv)
	require.Nil(t, err)
	assert.True(t, last.Equal(p.Time()))
}

func TestPropose(t *testing.T) {
	priv := newKey(t)
	tm := time.Unix(0, 987654321).UTC()
	prev := types.GetHash([]byte("prev"))
	txs := []types.Hash{types.GetHash([]byte("tx1")), types.GetHash([]byte("tx2")), types.GetHash([]byte("tx3"))}

	p, err := NewPropose(3, 10, 1, tm, prev, txs, priv)
	require.Nil(t, err)
	p2, ok := decodeAgain(t, p).(*Propose)
	require.True(t, ok)
	assert.Equal(t, uint32(3), p2.Validator())
	assert.Equal(t, uint64(10), p2.Height())
	assert.Equal(t, uint32(1), p2.Round())
	assert.True(t, tm.Equal(p2.Time()))
	assert.Equal(t, prev, p2.PrevHash())
	assert.Equal(t, txs, p2.Transactions().Slice())
	assert.Equal(t, txs[1], p2.Transactions().At(1))
	assert.True(t, p2.Verify(priv.GetPub()))

	empty, err := NewPropose(3, 10, 1, tm, prev, nil, priv)
	require.Nil(t, err)
	empty2, ok := decodeAgain(t, empty).(*Propose)
	require.True(t, ok)
	assert.Equal(t, 0, empty2.Transactions().Len())
	assert.Equal(t, proposeSchema.FixedEnd()+messages.SignatureSize, empty2.Raw().Len())
}

func TestPrevotePrecommitCommit(t *testing.T) {
	priv := newKey(t)
	p, err := NewPropose(1, 4, 0, time.Now(), types.Hash{}, nil, priv)
	require.Nil(t, err)
	block := types.GetHash([]byte("block"))

	pv, err := NewPrevote(2, 4, 0, p.ProposeHash(), 7, priv)
	require.Nil(t, err)
	pv2, ok := decodeAgain(t, pv).(*Prevote)
	require.True(t, ok)
	assert.Equal(t, uint32(2), pv2.Validator())
	assert.Equal(t, p.Hash(), p.ProposeHash())
	assert.Equal(t, p.ProposeHash(), pv2.ProposeHash())
	assert.Equal(t, uint32(7), pv2.LockedRound())

	pc, err := NewPrecommit(2, 4, 0, p.Hash(), block, priv)
	require.Nil(t, err)
	pc2, ok := decodeAgain(t, pc).(*Precommit)
	require.True(t, ok)
	assert.Equal(t, p.ProposeHash(), pc2.ProposeHash())
	assert.Equal(t, block, pc2.BlockHash())

	c, err := NewCommit(2, 4, 0, block, priv)
	require.Nil(t, err)
	c2, ok := decodeAgain(t, c).(*Commit)
	require.True(t, ok)
	assert.Equal(t, block, c2.BlockHash())
	assert.Equal(t, uint64(4), c2.Height())
}

func TestConsensusInterface(t *testing.T) {
	priv := newKey(t)
	h := types.GetHash([]byte("h"))
	var msgs []ConsensusMessage
	p, err := NewPropose(9, 5, 2, time.Now(), h, []types.Hash{h}, priv)
	require.Nil(t, err)
	msgs = append(msgs, p)
	pv, err := NewPrevote(9, 5, 2, h, 0, priv)
	require.Nil(t, err)
	msgs = append(msgs, pv)
	pc, err := NewPrecommit(9, 5, 2, h, h, priv)
	require.Nil(t, err)
	msgs = append(msgs, pc)
	c, err := NewCommit(9, 5, 2, h, priv)
	require.Nil(t, err)
	msgs = append(msgs, c)

	for _, m := range msgs {
		decoded, err := ConsensusFromRaw(m.Raw())
		require.Nil(t, err)
		for _, cm := range []ConsensusMessage{m, decoded} {
			assert.Equal(t, uint32(9), cm.Validator())
			assert.Equal(t, uint64(5), cm.Height())
			assert.Equal(t, uint32(2), cm.Round())
			assert.True(t, cm.Verify(priv.GetPub()))
		}
	}
}

func TestTxIssue(t *testing.T) {
	priv := newKey(t)
	tx, err := NewTxIssue("gold", 1000, 42, priv)
	require.Nil(t, err)
	tx2, ok := decodeAgain(t, tx).(*TxIssue)
	require.True(t, ok)
	assert.Equal(t, priv.GetPub(), tx2.Sender())
	assert.Equal(t, uint64(42), tx2.Seed())
	assert.Equal(t, uint64(1000), tx2.Amount())
	assert.Equal(t, "gold", tx2.Name())
	assert.True(t, tx2.Verify(tx2.Sender()))

	empty, err := NewTxIssue("", 1, 1, priv)
	require.Nil(t, err)
	assert.Equal(t, "", empty.Name())

	_, err = NewTxIssue("x", 1, 1, nil)
	assert.Equal(t, types.ErrNilPriv, err)
}

func TestTxTransfer(t *testing.T) {
	priv := newKey(t)
	outputs := []TransferOutput{
		{To: newKey(t).GetPub(), Amount: 5},
		{To: newKey(t).GetPub(), Amount: 1 << 60},
	}
	tx, err := NewTxTransfer(outputs, 3, priv)
	require.Nil(t, err)
	assert.Equal(t, txTransferSchema.FixedEnd()+2*40+messages.SignatureSize, tx.Raw().Len())

	tx2, ok := decodeAgain(t, tx).(*TxTransfer)
	require.True(t, ok)
	assert.Equal(t, priv.GetPub(), tx2.Sender())
	assert.Equal(t, uint64(3), tx2.Seed())
	assert.Equal(t, outputs, tx2.Outputs().Slice())
	assert.Equal(t, outputs[1], tx2.Outputs().At(1))
}

func TestTxVoteValidator(t *testing.T) {
	priv := newKey(t)
	candidate := newKey(t).GetPub()
	for _, include := range []bool{true, false} {
		tx, err := NewTxVoteValidator(candidate, 100, include, 8, priv)
		require.Nil(t, err)
		tx2, ok := decodeAgain(t, tx).(*TxVoteValidator)
		require.True(t, ok)
		assert.Equal(t, candidate, tx2.Candidate())
		assert.Equal(t, uint64(100), tx2.Height())
		assert.Equal(t, include, tx2.Include())
		assert.Equal(t, uint64(8), tx2.Seed())
		assert.Equal(t, priv.GetPub(), tx2.Sender())
	}
}

func TestTxVoteConfig(t *testing.T) {
	priv := newKey(t)
	cfg := []byte(`{"validators": 4}`)
	tx, err := NewTxVoteConfig(50, cfg, 9, priv)
	require.Nil(t, err)
	tx2, ok := decodeAgain(t, tx).(*TxVoteConfig)
	require.True(t, ok)
	assert.Equal(t, uint64(50), tx2.ActualFrom())
	assert.Equal(t, cfg, tx2.Config())

	// the returned config is a copy
	tx2.Config()[0] = 'x'
	assert.Equal(t, cfg, tx2.Config())

	empty, err := NewTxVoteConfig(50, nil, 9, priv)
	require.Nil(t, err)
	assert.Empty(t, empty.Config())
}

func TestTxInterface(t *testing.T) {
	priv := newKey(t)
	issue, err := NewTxIssue("a", 1, 1, priv)
	require.Nil(t, err)
	transfer, err := NewTxTransfer(nil, 2, priv)
	require.Nil(t, err)
	vote, err := NewTxVoteValidator(priv.GetPub(), 1, true, 3, priv)
	require.Nil(t, err)
	cfg, err := NewTxVoteConfig(1, []byte{1}, 4, priv)
	require.Nil(t, err)

	hashes := make(map[types.Hash]bool)
	for _, tx := range []TxMessage{issue, transfer, vote, cfg} {
		decoded, err := TxFromRaw(tx.Raw())
		require.Nil(t, err)
		assert.Equal(t, priv.GetPub(), decoded.Sender())
		assert.True(t, decoded.Verify(decoded.Sender()))
		hashes[decoded.Hash()] = true
	}
	assert.Equal(t, 4, len(hashes))
}
