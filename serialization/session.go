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

	"github.com/google/uuid"

	"github.com/tochemey/graphwire/bytecodec"
	gerrors "github.com/tochemey/graphwire/errors"
	"github.com/tochemey/graphwire/internal/bufferpool"
	"github.com/tochemey/graphwire/internal/metadata"
	"github.com/tochemey/graphwire/internal/reftable"
	"github.com/tochemey/graphwire/log"
)

// Session is the state of a single encode or decode call: the reference
// table and the call logger. Serializers receive it to write and read
// nested values.
//
// A Session is used by one goroutine and discarded when the call returns.
type Session struct {
	marshaller *Marshaller
	table      *reftable.Table
	logger     log.Logger
}

// Logger returns the logger of the call, tagged with a session id
func (s *Session) Logger() log.Logger {
	if s.logger == nil {
		s.logger = s.marshaller.logger.With("session", uuid.NewString())
	}
	return s.logger
}

// Cache returns the type metadata cache
func (s *Session) Cache() *MetadataCache {
	return s.marshaller.cache
}

// Funcs returns the registry callbacks are resolved against
func (s *Session) Funcs() *FuncRegistry {
	return s.marshaller.funcs
}

// ResolveType maps a wire type name to a runtime type. Names spelling an
// array larger than the max payload size are not resolved.
func (s *Session) ResolveType(name string) (reflect.Type, bool) {
	t, ok := s.marshaller.cache.TypeFromName(name, s.marshaller.resolver)
	if !ok || !fitsPayload(t, s.marshaller.maxPayload) {
		return nil, false
	}
	return t, true
}

func (s *Session) cache() *metadata.Cache {
	return s.marshaller.cache
}

// WriteValue writes v declared as t in its envelope. When v cannot be
// written for a recoverable reason the failure is logged and an absent
// marker is written instead; only fatal errors are returned.
func (s *Session) WriteValue(w *bytecodec.Writer, t reflect.Type, v reflect.Value) error {
	err := s.encodeEnvelope(w, t, v)
	if err == nil || gerrors.IsFatal(err) {
		return err
	}
	s.Logger().Warnf("value of type %s discarded: %v", t, err)
	return w.WriteBool(false)
}

// ReadValue reads a value declared as t. An absent value yields the zero
// value of t. When the value cannot be reconstructed for a recoverable
// reason the failure is logged and an invalid reflect.Value is returned:
// the caller discards it. Only fatal errors are returned.
//
// For interface declarations the returned value has the dynamic type read
// from the wire.
func (s *Session) ReadValue(r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	value, err := s.decodeEnvelope(r, t)
	if err == nil {
		return value, nil
	}
	if gerrors.IsFatal(err) {
		return reflect.Value{}, err
	}
	s.Logger().Warnf("value of type %s discarded: %v", t, err)
	return reflect.Value{}, nil
}

func (s *Session) encodeTop(w *bytecodec.Writer, t reflect.Type, v reflect.Value) error {
	err := s.encodeEnvelope(w, t, v)
	if err == nil || gerrors.IsFatal(err) {
		return err
	}
	if writeErr := w.WriteBool(false); writeErr != nil {
		return writeErr
	}
	return err
}

func (s *Session) encodeEnvelope(w *bytecodec.Writer, t reflect.Type, v reflect.Value) error {
	if v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if isNil(v) {
		return w.WriteBool(false)
	}

	actual := v.Type()
	serializer, ok := s.marshaller.dispatcher.find(actual)
	if !ok {
		return gerrors.NewErrNoSerializer(actual)
	}

	buf := bufferpool.Pool.Get()
	defer bufferpool.Pool.Put(buf)

	mark := s.table.Mark()
	if err := serializer.Serialize(s, w.Fork(buf), v); err != nil {
		s.table.Rollback(mark)
		return err
	}

	if err := w.WriteBool(true); err != nil {
		return err
	}
	if t.Kind() == reflect.Interface {
		if err := w.WriteString(s.cache().NameOf(actual)); err != nil {
			return err
		}
	}
	if err := w.WriteLength(buf.Len()); err != nil {
		return err
	}
	return w.WriteRaw(buf.Bytes())
}

func (s *Session) decodeEnvelope(r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	present, err := r.ReadBool()
	if err != nil {
		return reflect.Value{}, err
	}
	if !present {
		return reflect.Zero(t), nil
	}

	actual := t
	name := ""
	resolved := true
	if t.Kind() == reflect.Interface {
		if name, err = r.ReadString(); err != nil {
			return reflect.Value{}, err
		}
		actual, resolved = s.ResolveType(name)
	}

	length, err := r.ReadLength()
	if err != nil {
		return reflect.Value{}, err
	}
	if !resolved {
		if err := r.Skip(length); err != nil {
			return reflect.Value{}, err
		}
		return reflect.Value{}, gerrors.NewErrTypeNotResolved(name)
	}

	payload, err := r.Sub(length)
	if err != nil {
		return reflect.Value{}, err
	}

	serializer, ok := s.marshaller.dispatcher.find(actual)
	if !ok {
		return reflect.Value{}, gerrors.NewErrNoSerializer(actual)
	}

	value, err := serializer.Deserialize(s, payload, actual)
	if err != nil {
		return reflect.Value{}, err
	}
	if left := payload.Remaining(); left != 0 {
		return reflect.Value{}, gerrors.NewErrFramingCorrupted("type=(%s) payload of %d bytes has %d bytes left", actual, length, left)
	}
	if actual != t && !actual.AssignableTo(t) {
		return reflect.Value{}, gerrors.NewErrTypeMismatch(t, actual)
	}
	return value, nil
}

// WriteReference writes the reference header of v. The first time v is
// met in the call it receives the next ID and body writes its payload;
// afterwards only the ID is written. v must be non-nil.
func (s *Session) WriteReference(w *bytecodec.Writer, v reflect.Value, body func(w *bytecodec.Writer) error) error {
	key, ok := reftable.KeyOf(v)
	if !ok {
		return gerrors.NewErrUnsupportedKind(v.Type())
	}

	if id, seen := s.table.Lookup(key); seen {
		if err := w.WriteInt64(id); err != nil {
			return err
		}
		return w.WriteBool(false)
	}

	id := s.table.Allocate(key, v)
	if err := w.WriteInt64(id); err != nil {
		s.table.Rollback(id)
		return err
	}
	if err := w.WriteBool(true); err != nil {
		s.table.Rollback(id)
		return err
	}
	if err := body(w); err != nil {
		s.table.Rollback(id)
		return err
	}
	return nil
}

// ReadReference reads a reference header for an object of type t.
//
// When the body follows, create returns the object registered under the ID
// before fill reads the body, so references back to the object resolve to
// it; create may return an invalid value for objects registered only once
// filled. fill returns the final object, which replaces the registered one.
// A body for an ID already known repopulates the existing object.
func (s *Session) ReadReference(
	r *bytecodec.Reader,
	t reflect.Type,
	create func() (reflect.Value, error),
	fill func(r *bytecodec.Reader, object reflect.Value) (reflect.Value, error),
) (reflect.Value, error) {
	id, err := r.ReadInt64()
	if err != nil {
		return reflect.Value{}, err
	}
	follows, err := r.ReadBool()
	if err != nil {
		return reflect.Value{}, err
	}

	existing, known := s.table.Get(id)
	switch {
	case known && !follows:
		if !existing.Type().AssignableTo(t) {
			return reflect.Value{}, gerrors.NewErrTypeMismatch(t, existing.Type())
		}
		return existing, nil

	case !known && !follows:
		return reflect.Value{}, gerrors.NewErrUnresolvedReference(id)

	case known && follows:
		s.Logger().Debugf("reference %d of type %s repopulated", id, t)
		if !existing.Type().AssignableTo(t) {
			return reflect.Value{}, gerrors.NewErrTypeMismatch(t, existing.Type())
		}
		final, err := fill(r, existing)
		if err != nil {
			return reflect.Value{}, err
		}
		s.table.Replace(id, final)
		return final, nil

	default:
		shell, err := create()
		if err != nil {
			return reflect.Value{}, err
		}
		if shell.IsValid() {
			s.table.Register(id, shell)
		}
		final, err := fill(r, shell)
		if err != nil {
			return reflect.Value{}, err
		}
		if shell.IsValid() {
			s.table.Replace(id, final)
		} else {
			s.table.Register(id, final)
		}
		return final, nil
	}
}

// fitsPayload reports whether the unnamed arrays composing t are no larger
// than limit bytes. Named types are trusted.
func fitsPayload(t reflect.Type, limit int) bool {
	for t.Name() == "" {
		switch t.Kind() {
		case reflect.Array:
			if t.Size() > uintptr(limit) {
				return false
			}
			t = t.Elem()
		case reflect.Pointer, reflect.Slice:
			t = t.Elem()
		case reflect.Map:
			if !fitsPayload(t.Key(), limit) {
				return false
			}
			t = t.Elem()
		default:
			return true
		}
	}
	return true
}

// isNil reports whether v carries no value
func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

// coerce adapts a decoded value to a destination type. Absent values become
// the zero value of the destination.
func coerce(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Zero(t), true
		}
		v = v.Elem()
	}
	if isNil(v) {
		return reflect.Zero(t), true
	}
	if v.Type().AssignableTo(t) {
		return v, true
	}
	return reflect.Value{}, false
}
