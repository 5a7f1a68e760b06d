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
	gerrors "github.com/tochemey/graphwire/errors"
)

// preallocLimit caps the capacity reserved from a count read off the wire
const preallocLimit = 1 << 10

// listSerializer handles slices and arrays.
//
// Slices carry identity: their payload is a reference header followed, on
// first occurrence, by the element count and the elements. Arrays are
// values and are written without a header. Byte elements are written as a
// single length-prefixed block.
type listSerializer struct{}

var _ Serializer = (*listSerializer)(nil)

// CanHandle reports whether t is a slice or an array
func (listSerializer) CanHandle(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}

// Serialize writes the elements of v
func (listSerializer) Serialize(session *Session, w *bytecodec.Writer, v reflect.Value) error {
	if v.Kind() == reflect.Array {
		return writeElements(session, w, v)
	}
	return session.WriteReference(w, v, func(w *bytecodec.Writer) error {
		return writeElements(session, w, v)
	})
}

// Deserialize reads the elements of a list of type t
func (listSerializer) Deserialize(session *Session, r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	if t.Kind() == reflect.Array {
		value := reflect.New(t).Elem()
		return value, readArray(session, r, value)
	}
	return session.ReadReference(r, t,
		func() (reflect.Value, error) {
			return reflect.MakeSlice(t, 0, 0), nil
		},
		func(r *bytecodec.Reader, _ reflect.Value) (reflect.Value, error) {
			return readSlice(session, r, t)
		},
	)
}

func isByteList(t reflect.Type) bool {
	return t.Elem().Kind() == reflect.Uint8
}

func writeElements(session *Session, w *bytecodec.Writer, v reflect.Value) error {
	elem := v.Type().Elem()
	if isByteList(v.Type()) {
		if v.Kind() == reflect.Slice {
			return w.WriteBytes(v.Bytes())
		}
		data := make([]byte, v.Len())
		reflect.Copy(reflect.ValueOf(data), v)
		return w.WriteBytes(data)
	}

	if err := w.WriteLength(v.Len()); err != nil {
		return err
	}
	for i := range v.Len() {
		if err := session.WriteValue(w, elem, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

// readSlice reads the elements of a slice of type t. Discarded elements are
// dropped so the slice holds only the elements that could be rebuilt.
func readSlice(session *Session, r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	if isByteList(t) {
		data, err := r.ReadBytes()
		if err != nil {
			return reflect.Value{}, err
		}
		value := reflect.MakeSlice(t, len(data), len(data))
		reflect.Copy(value, reflect.ValueOf(data))
		return value, nil
	}

	count, err := r.ReadLength()
	if err != nil {
		return reflect.Value{}, err
	}
	elem := t.Elem()
	if size := uint64(elem.Size()); size > 0 && uint64(count) > uint64(session.marshaller.maxPayload)/size {
		return reflect.Value{}, gerrors.NewErrFramingCorrupted("%d elements of %s exceed the limit of %d bytes", count, elem, session.marshaller.maxPayload)
	}
	value := reflect.MakeSlice(t, 0, min(count, preallocLimit))
	for range count {
		item, err := session.ReadValue(r, elem)
		if err != nil {
			return reflect.Value{}, err
		}
		if !item.IsValid() {
			continue
		}
		assignable, ok := coerce(item, elem)
		if !ok {
			session.Logger().Warnf("element of %s discarded: %v", t, gerrors.NewErrTypeMismatch(elem, concreteType(item)))
			continue
		}
		value = reflect.Append(value, assignable)
	}
	return value, nil
}

// readArray reads elements into the array v. Elements beyond the length of
// the array are read and dropped.
func readArray(session *Session, r *bytecodec.Reader, v reflect.Value) error {
	t := v.Type()
	if isByteList(t) {
		data, err := r.ReadBytes()
		if err != nil {
			return err
		}
		if len(data) > v.Len() {
			session.Logger().Warnf("%d trailing bytes of %s discarded", len(data)-v.Len(), t)
		}
		reflect.Copy(v, reflect.ValueOf(data))
		return nil
	}

	count, err := r.ReadLength()
	if err != nil {
		return err
	}
	elem := t.Elem()
	index := 0
	for range count {
		item, err := session.ReadValue(r, elem)
		if err != nil {
			return err
		}
		if !item.IsValid() {
			continue
		}
		assignable, ok := coerce(item, elem)
		if !ok {
			session.Logger().Warnf("element of %s discarded: %v", t, gerrors.NewErrTypeMismatch(elem, concreteType(item)))
			continue
		}
		if index >= v.Len() {
			session.Logger().Warnf("element %d of %s discarded: array holds %d", index, t, v.Len())
			continue
		}
		v.Index(index).Set(assignable)
		index++
	}
	return nil
}
