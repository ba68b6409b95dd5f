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
Package messages objects and methods for serialization of data into signed binary messages.

Integers are encoded using config.Encoding (little endian).
Binary values are stored as a single byte, a 0 value byte is considered false, any other value is considered true.

The structure of a message is as follows:
  - A 7 byte header:
    - 1 byte network id.
    - 1 byte message class (see MessageClass), the family of the message.
    - 1 byte message type (see MessageType), unique within its class.
    - A 4 byte encoded integer with the size of the body in bytes.
  - The body:
    - A fixed region, each field at the offset declared by the Schema of the message type.
    - The segment region, holding variable length payloads. A segment is referenced from the fixed region by an 8 byte
      pointer: a 4 byte encoded offset from the start of the message followed by a 4 byte encoded element count.
      Segment payloads are appended in the order their fields are declared.
  - A 64 byte EDDSA signature of the header and body.

The content hash of a message is the hash of all of its bytes, including the signature.

Every segment pointer is checked against the message before it is followed, a segment must start after the fixed
region and end before the signature.
*/
package messages
