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

package types

import (
	"fmt"
)

// envelope
var ErrUnexpectedlyShort = fmt.Errorf("message shorter than the minimum envelope")
var ErrIncorrectLength = fmt.Errorf("declared body length does not match message size")
var ErrTooLong = fmt.Errorf("message exceeds the maximum size")

// dispatch
var ErrIncorrectMessageType = fmt.Errorf("tried to deserialize wrong message type")
var ErrUnknownMessageType = fmt.Errorf("unknown message type")

// fields
var ErrIncorrectSegmentReference = fmt.Errorf("segment reference out of bounds")
var ErrNotEnoughBytes = fmt.Errorf("not enough bytes to read")
var ErrTimeOutOfRange = fmt.Errorf("time cannot be encoded as int64 nanoseconds")
var ErrInvalidAddress = fmt.Errorf("address cannot be encoded")

// used by auth/sig
var ErrInvalidHashSize = fmt.Errorf("invalid input size")
var ErrInvalidPub = fmt.Errorf("inavlid pub")
var ErrNilPriv = fmt.Errorf("nil priv key")

// msgproc
var ErrUnknownSigner = fmt.Errorf("no public key for message signer")
var ErrProcessorStopped = fmt.Errorf("processor stopped")
