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
	"net/netip"
	"time"

	"github.com/tcrain/consmsg/consensus/auth/sig"
	"github.com/tcrain/consmsg/consensus/messages"
	"github.com/tcrain/consmsg/consensus/types"
)

var (
	connectSchema = messages.NewSchema("Connect", messages.ClassBasic, messages.TypeConnect, 58)
	connectPubKey = messages.NewField(connectSchema, "pub_key", 0, messages.PublicKeyCodec{})
	connectAddr   = messages.NewField(connectSchema, "addr", 32, messages.AddrPortCodec{})
	connectTime   = messages.NewField(connectSchema, "time", 50, messages.TimeCodec{})
)

// Connect is sent by a node when it connects to a peer, announcing its key and address.
type Connect struct {
	signedMessage
}

// NewConnect creates a connect message for the address signed by priv.
// The public key of priv is the key announced. The address must be valid and have no zone.
func NewConnect(addr netip.AddrPort, t time.Time, priv *sig.SecretKey) (*Connect, error) {
	if priv == nil {
		return nil, types.ErrNilPriv
	}
	if !messages.AddrEncodable(addr) {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidAddress, addr)
	}
	if !messages.TimeInRange(t) {
		return nil, fmt.Errorf("%w: %v", types.ErrTimeOutOfRange, t)
	}
	w := connectSchema.NewWriter()
	connectPubKey.Put(w, priv.GetPub())
	connectAddr.Put(w, addr)
	connectTime.Put(w, t)
	raw, err := w.Finish(priv)
	if err != nil {
		return nil, err
	}
	return ConnectFromRaw(raw)
}

// ConnectFromRaw checks raw is a valid connect message.
func ConnectFromRaw(raw *messages.RawMessage) (*Connect, error) {
	if err := connectSchema.Check(raw); err != nil {
		return nil, err
	}
	return &Connect{signedMessage{raw}}, nil
}

// PubKey returns the key of the node that is connecting.
func (c *Connect) PubKey() sig.PublicKey {
	return connectPubKey.Get(c.raw)
}

// Addr returns the address the node listens on.
func (c *Connect) Addr() netip.AddrPort {
	return connectAddr.Get(c.raw)
}

func (c *Connect) Time() time.Time {
	return connectTime.Get(c.raw)
}

func (c *Connect) String() string {
	return fmt.Sprintf("Connect{pub: %v, addr: %v, time: %v}", c.PubKey(), c.Addr(), c.Time())
}

func (*Connect) isBasic() {}
