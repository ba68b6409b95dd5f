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
/*
General configuration settings.
*/
package config

import (
	"encoding/binary"
)

type Logtype int

const (
	LOGRUS Logtype = iota // structured logging through logrus
	FMT                   // prints logs using fmt package
)

type LogFmtLevel int

const (
	LOGERROR LogFmtLevel = iota
	LOGWARNING
	LOGINFO
	LOGDEBUG
)

const (
	// for logging
	LoggingType     = LOGRUS
	LoggingFmtLevel = LOGERROR

	// For the wire format
	DefaultNetworkID = 0       // network id written into the header of locally built messages
	MaxMsgSize       = 1 << 20 // bytes, any larger message is rejected before its fields are read

	// For the message processor
	InternalBuffSize        = 50 // buffer of raw messages waiting to be decoded and verified
	DefaultMsgProcesThreads = 10 // number of threads processing messages (deserialization/verification)
	DefaultVerifyBatchLimit = 10 // number of concurrent signature checks in a verification batch
)

var Encoding = binary.LittleEndian // encoding for marshalling
