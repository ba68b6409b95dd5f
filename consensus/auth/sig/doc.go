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
This package implements the signing mechanism used to authenticate wire messages.
It includes a public key type, a private key type and a signature type.
Public keys and signatures have fixed sizes so they can be stored directly in message fields.

Signatures are EDDSA (Ed25519) signatures computed with the kyber library.
*/
package sig
