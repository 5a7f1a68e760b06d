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

// structSerializer handles struct values. A struct has no identity: it is
// written as its field table every time it is met.
type structSerializer struct{}

var _ Serializer = (*structSerializer)(nil)

// CanHandle reports whether t is a struct kind
func (structSerializer) CanHandle(t reflect.Type) bool {
	return t.Kind() == reflect.Struct
}

// Serialize writes the field table of v
func (structSerializer) Serialize(session *Session, w *bytecodec.Writer, v reflect.Value) error {
	return session.WriteFields(w, v)
}

// Deserialize instantiates a value of type t and reads its field table
func (structSerializer) Deserialize(session *Session, r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	instance, err := session.cache().Instantiate(t)
	if err != nil {
		return reflect.Value{}, err
	}
	if err := session.ReadFields(r, instance); err != nil {
		return reflect.Value{}, err
	}
	return instance, nil
}

// WriteFields writes the field table of the struct v: the field count,
// then for each field its wire name and its value in an envelope declared
// as any, so the dynamic type name travels with the value.
func (s *Session) WriteFields(w *bytecodec.Writer, v reflect.Value) error {
	fields, err := s.cache().FieldsOf(v.Type())
	if err != nil {
		return err
	}

	if !v.CanAddr() {
		addressable := reflect.New(v.Type()).Elem()
		addressable.Set(v)
		v = addressable
	}

	if err := w.WriteLength(len(fields)); err != nil {
		return err
	}
	for _, field := range fields {
		if err := w.WriteString(field.Name); err != nil {
			return err
		}
		if err := s.WriteValue(w, anyType, field.Get(v)); err != nil {
			return err
		}
	}
	return nil
}

// ReadFields reads a field table into the addressable struct v.
//
// Entries naming a field v does not have, values whose type cannot be
// resolved and values not assignable to their field are logged and
// discarded. The value of every entry is decoded, even when discarded, so
// that the references it registers stay available to the rest of the graph.
func (s *Session) ReadFields(r *bytecodec.Reader, v reflect.Value) error {
	t := v.Type()
	if _, err := s.cache().FieldsOf(t); err != nil {
		return err
	}

	count, err := r.ReadLength()
	if err != nil {
		return err
	}
	for range count {
		name, err := r.ReadString()
		if err != nil {
			return err
		}
		value, err := s.ReadValue(r, anyType)
		if err != nil {
			return err
		}
		if !value.IsValid() {
			continue
		}

		field, ok := s.cache().FieldOf(t, name)
		if !ok {
			s.Logger().Warnf("field discarded: %v", gerrors.NewErrUnknownField(t, name))
			continue
		}

		assignable, ok := coerce(value, field.Type)
		if !ok {
			s.Logger().Warnf("field %s of type %s discarded: %v", name, t, gerrors.NewErrTypeMismatch(field.Type, concreteType(value)))
			continue
		}
		field.Set(v, assignable)
	}
	return nil
}

// concreteType returns the dynamic type of v
func concreteType(v reflect.Value) reflect.Type {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		return v.Elem().Type()
	}
	return v.Type()
}
