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
	"fmt"

	"github.com/tcrain/consmsg/consensus/types"
)

// SegmentRefError is returned when a segment pointer does not reference a valid region of a message.
// It unwraps to types.ErrIncorrectSegmentReference.
type SegmentRefError struct {
	Field    string // name of the segment field
	Offset   uint32 // offset stored in the pointer
	Count    uint32 // element count stored in the pointer
	ElemSize int    // size of a single element
	Min, Max int    // the segment must lie in [Min, Max)
}

func (e *SegmentRefError) Error() string {
	return fmt.Sprintf("%v: field %s offset %d count %d (elements of %d bytes), valid range [%d, %d)",
		types.ErrIncorrectSegmentReference, e.Field, e.Offset, e.Count, e.ElemSize, e.Min, e.Max)
}

func (e *SegmentRefError) Unwrap() error {
	return types.ErrIncorrectSegmentReference
}
