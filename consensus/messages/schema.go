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

type span struct {
	name       string
	start, end int
}

// segmentChecker is implemented by segment fields so a schema can validate
// every segment of a message without knowing the element types.
type segmentChecker interface {
	check(raw *RawMessage) error
}

// Schema describes the body layout of one message type: a fixed region of
// fields at known offsets, followed by the payloads of its segments.
// Schemas are built at package init, layout errors panic.
type Schema struct {
	name      string
	class     MessageClass
	msgType   MessageType
	fixedSize int
	spans     []span
	segments  []segmentChecker
}

// NewSchema creates a schema with an empty fixed region of fixedSize bytes.
func NewSchema(name string, class MessageClass, msgType MessageType, fixedSize int) *Schema {
	if fixedSize < 0 {
		panic(fmt.Sprintf("schema %s: negative fixed size %d", name, fixedSize))
	}
	return &Schema{
		name:      name,
		class:     class,
		msgType:   msgType,
		fixedSize: fixedSize,
	}
}

// reserve marks [offset, offset+size) of the fixed region as used by field name.
func (s *Schema) reserve(name string, offset, size int) {
	if size <= 0 {
		panic(fmt.Sprintf("schema %s: field %s has size %d", s.name, name, size))
	}
	end := offset + size
	if offset < 0 || end > s.fixedSize {
		panic(fmt.Sprintf("schema %s: field %s [%d, %d) outside fixed region of %d bytes",
			s.name, name, offset, end, s.fixedSize))
	}
	for _, sp := range s.spans {
		if offset < sp.end && sp.start < end {
			panic(fmt.Sprintf("schema %s: field %s [%d, %d) overlaps field %s [%d, %d)",
				s.name, name, offset, end, sp.name, sp.start, sp.end))
		}
	}
	s.spans = append(s.spans, span{name: name, start: offset, end: end})
}

func (s *Schema) Name() string {
	return s.name
}

func (s *Schema) Class() MessageClass {
	return s.class
}

func (s *Schema) Type() MessageType {
	return s.msgType
}

// FixedSize returns the size of the fixed region of the body.
func (s *Schema) FixedSize() int {
	return s.fixedSize
}

// FixedEnd returns the offset from the start of the message where the fixed region ends,
// no segment can start before it.
func (s *Schema) FixedEnd() int {
	return HeaderSize + s.fixedSize
}

// Check validates that raw is a message of this schema: the tag must match,
// the body must hold the fixed region, and every segment pointer must reference
// a region inside the body after the fixed region.
func (s *Schema) Check(raw *RawMessage) error {
	if raw.MessageClass() != s.class || raw.MessageType() != s.msgType {
		return fmt.Errorf("%w: expected %s, got %s", types.ErrIncorrectMessageType,
			TagName(s.class, s.msgType), TagName(raw.MessageClass(), raw.MessageType()))
	}
	if raw.BodyLen() < s.fixedSize {
		return fmt.Errorf("%w: %s body of %d bytes, need at least %d", types.ErrUnexpectedlyShort,
			s.name, raw.BodyLen(), s.fixedSize)
	}
	for _, seg := range s.segments {
		if err := seg.check(raw); err != nil {
			return err
		}
	}
	return nil
}

// Field is a value of type T stored at a fixed offset of the body.
type Field[T any] struct {
	schema *Schema
	name   string
	offset int
	codec  Codec[T]
}

// NewField registers a field of schema at offset of the body.
// It panics if the field does not fit in the fixed region or overlaps another field.
func NewField[T any](schema *Schema, name string, offset int, codec Codec[T]) Field[T] {
	schema.reserve(name, offset, codec.Size())
	return Field[T]{
		schema: schema,
		name:   name,
		offset: offset,
		codec:  codec,
	}
}

func (f Field[T]) Name() string {
	return f.name
}

func (f Field[T]) Offset() int {
	return f.offset
}

func (f Field[T]) bytes(body []byte) []byte {
	end := f.offset + f.codec.Size()
	return body[f.offset:end:end]
}

// Get reads the field from a message that has passed the schema Check.
func (f Field[T]) Get(raw *RawMessage) T {
	return f.Read(raw.Body())
}

// Read reads the field from a body, which must be at least the schema fixed size.
func (f Field[T]) Read(body []byte) T {
	return f.codec.Read(f.bytes(body))
}

// Write encodes v into body, only the bytes of the field are changed.
func (f Field[T]) Write(body []byte, v T) {
	f.codec.Write(f.bytes(body), v)
}

// Put writes v into the fixed region of the message being built by w.
func (f Field[T]) Put(w *Writer, v T) {
	w.checkSchema(f.schema, f.name)
	f.Write(w.fixed(), v)
}
