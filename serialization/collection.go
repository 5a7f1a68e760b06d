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
	"github.com/tochemey/graphwire/internal/metadata"
)

// collectionSerializer handles pointer types that behave like collections:
// they expose an Add method, a count accessor and an enumerator. A
// collection carries identity. Its payload is a reference header followed,
// on first occurrence, by the element count and the elements, each declared
// as any.
type collectionSerializer struct {
	cache *metadata.Cache
}

var _ Serializer = (*collectionSerializer)(nil)

// CanHandle reports whether t is a pointer collection type
func (s *collectionSerializer) CanHandle(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer && s.cache.IsCollection(t)
}

// Serialize writes the elements of v in enumeration order
func (s *collectionSerializer) Serialize(session *Session, w *bytecodec.Writer, v reflect.Value) error {
	enumerator, _ := s.cache.EnumeratorOf(v.Type())
	return session.WriteReference(w, v, func(w *bytecodec.Writer) error {
		var items []reflect.Value
		enumerator.Each(v, func(item reflect.Value) bool {
			items = append(items, item)
			return true
		})

		if err := w.WriteLength(len(items)); err != nil {
			return err
		}
		for _, item := range items {
			if err := session.WriteValue(w, anyType, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// Deserialize registers a new collection of type t, then adds every
// element through the Add method best suited to its type
func (s *collectionSerializer) Deserialize(session *Session, r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	enumerator, _ := s.cache.EnumeratorOf(t)
	return session.ReadReference(r, t,
		func() (reflect.Value, error) {
			return s.cache.Instantiate(t)
		},
		func(r *bytecodec.Reader, object reflect.Value) (reflect.Value, error) {
			count, err := r.ReadLength()
			if err != nil {
				return reflect.Value{}, err
			}
			for range count {
				item, err := session.ReadValue(r, anyType)
				if err != nil {
					return reflect.Value{}, err
				}
				if !item.IsValid() {
					continue
				}

				item = s.element(item, enumerator.Elem)
				add, ok := s.cache.AppendFor(t, item.Type())
				if !ok {
					session.Logger().Warnf("element discarded: %v", gerrors.NewErrAddOperationMissing(t, item.Type()))
					continue
				}
				add(object, item)
			}
			return object, nil
		},
	)
}

// element unwraps a decoded element. Absent elements become the zero value
// of the element type of the collection.
func (s *collectionSerializer) element(item reflect.Value, elem reflect.Type) reflect.Value {
	if item.Kind() == reflect.Interface {
		if item.IsNil() {
			return reflect.Zero(elem)
		}
		return item.Elem()
	}
	return item
}
