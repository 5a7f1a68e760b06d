// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package serialization

import (
	"reflect"

	"github.com/tochemey/graphwire/bytecodec"
)

// referenceSerializer handles pointers, the class instances of the graph.
// The payload is the reference header followed, on first occurrence, by the
// field table of the pointed struct, or by the envelope of the pointed
// value when it is not a plain struct.
type referenceSerializer struct{}

var _ Serializer = (*referenceSerializer)(nil)

// CanHandle reports whether t is a pointer
func (referenceSerializer) CanHandle(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer
}

// Serialize writes v once per call and back-references afterwards
func (referenceSerializer) Serialize(session *Session, w *bytecodec.Writer, v reflect.Value) error {
	elem := v.Type().Elem()
	return session.WriteReference(w, v, func(w *bytecodec.Writer) error {
		if session.isPlainStruct(elem) {
			return session.WriteFields(w, v.Elem())
		}
		return session.WriteValue(w, elem, v.Elem())
	})
}

// Deserialize registers the new instance before reading its body so that
// cycles through it resolve to the instance itself
func (referenceSerializer) Deserialize(session *Session, r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	elem := t.Elem()
	return session.ReadReference(r, t,
		func() (reflect.Value, error) {
			return session.cache().Instantiate(t)
		},
		func(r *bytecodec.Reader, object reflect.Value) (reflect.Value, error) {
			if session.isPlainStruct(elem) {
				return object, session.ReadFields(r, object.Elem())
			}
			value, err := session.ReadValue(r, elem)
			if err != nil {
				return reflect.Value{}, err
			}
			if assignable, ok := coerce(value, elem); ok {
				object.Elem().Set(assignable)
			}
			return object, nil
		},
	)
}

// isPlainStruct reports whether values of t are written as a field table
func (s *Session) isPlainStruct(t reflect.Type) bool {
	serializer, ok := s.marshaller.dispatcher.find(t)
	if !ok {
		return false
	}
	_, plain := serializer.(*structSerializer)
	return plain
}
