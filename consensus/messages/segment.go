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

// SegmentField is a variable length list of T.
// The fixed region holds a pointer (offset from the start of the message and element count),
// the elements are stored after the fixed region.
type SegmentField[T any] struct {
	schema *Schema
	name   string
	offset int // of the pointer in the body
	index  int // order in which the segment is written
	elem   Codec[T]
}

// NewSegmentField registers a segment of schema whose pointer is stored at offset of the body.
// Segments are written in the order they are registered.
func NewSegmentField[T any](schema *Schema, name string, offset int, elem Codec[T]) SegmentField[T] {
	schema.reserve(name, offset, segmentPtrSize)
	if elem.Size() <= 0 {
		panic(fmt.Sprintf("schema %s: segment %s has element size %d", schema.name, name, elem.Size()))
	}
	f := SegmentField[T]{
		schema: schema,
		name:   name,
		offset: offset,
		index:  len(schema.segments),
		elem:   elem,
	}
	schema.segments = append(schema.segments, f)
	return f
}

func (f SegmentField[T]) Name() string {
	return f.name
}

// locate returns the bytes of the segment, or an error if the pointer is invalid.
func (f SegmentField[T]) locate(raw *RawMessage) ([]byte, error) {
	body := raw.Body()
	if len(body) < f.offset+segmentPtrSize {
		return nil, fmt.Errorf("%w: %s body of %d bytes has no segment %s", types.ErrUnexpectedlyShort,
			f.schema.name, len(body), f.name)
	}
	ptr := segmentPtrCodec{}.Read(body[f.offset : f.offset+segmentPtrSize])
	lo := f.schema.FixedEnd()
	hi := raw.Len() - SignatureSize
	start := uint64(ptr.Offset)
	end := start + uint64(ptr.Count)*uint64(f.elem.Size())
	if start < uint64(lo) || end > uint64(hi) {
		return nil, &SegmentRefError{
			Field:    f.name,
			Offset:   ptr.Offset,
			Count:    ptr.Count,
			ElemSize: f.elem.Size(),
			Min:      lo,
			Max:      hi,
		}
	}
	return ToMsgBuffer(raw.Bytes()).GetSlice(int(start), int(end))
}

func (f SegmentField[T]) check(raw *RawMessage) error {
	_, err := f.locate(raw)
	return err
}

// Get returns a view of the segment in raw.
func (f SegmentField[T]) Get(raw *RawMessage) (Segment[T], error) {
	data, err := f.locate(raw)
	if err != nil {
		return Segment[T]{}, err
	}
	return Segment[T]{data: data, elem: f.elem}, nil
}

// Put appends vals to the message being built by w and sets the segment pointer.
// It panics if the segments of the schema are not written in order.
func (f SegmentField[T]) Put(w *Writer, vals []T) {
	w.checkSchema(f.schema, f.name)
	if w.segments != f.index {
		panic(fmt.Sprintf("schema %s: segment %s written as number %d, expected number %d",
			f.schema.name, f.name, w.segments, f.index))
	}
	size := f.elem.Size()
	offset := w.mb.GetWriteOffset()
	payload := w.mb.AddZeros(len(vals) * size)
	for i, v := range vals {
		end := (i + 1) * size
		f.elem.Write(payload[i*size:end:end], v)
	}
	ptr := w.fixed()[f.offset : f.offset+segmentPtrSize]
	segmentPtrCodec{}.Write(ptr, segmentPtr{Offset: uint32(offset), Count: uint32(len(vals))})
	w.segments++
}

// Segment is a read only view of the elements of a segment.
type Segment[T any] struct {
	data []byte
	elem Codec[T]
}

// Len returns the number of elements.
func (s Segment[T]) Len() int {
	if s.elem == nil {
		return 0
	}
	return len(s.data) / s.elem.Size()
}

// At decodes element i, it panics if i is out of range.
func (s Segment[T]) At(i int) T {
	size := s.elem.Size()
	end := (i + 1) * size
	return s.elem.Read(s.data[i*size : end : end])
}

// Slice decodes all the elements.
func (s Segment[T]) Slice() []T {
	ret := make([]T, s.Len())
	for i := range ret {
		ret[i] = s.At(i)
	}
	return ret
}

// Bytes returns the encoded elements, they must not be modified.
func (s Segment[T]) Bytes() []byte {
	return s.data
}
