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
	"bytes"
	"reflect"

	"github.com/tochemey/graphwire/bytecodec"
	gerrors "github.com/tochemey/graphwire/errors"
	"github.com/tochemey/graphwire/internal/bufferpool"
)

// mapSerializer handles maps. A map carries identity: its payload is a
// reference header followed, on first occurrence, by the entry count, all
// the keys, then all the values in the same order.
type mapSerializer struct{}

var _ Serializer = (*mapSerializer)(nil)

// CanHandle reports whether t is a map
func (mapSerializer) CanHandle(t reflect.Type) bool {
	return t.Kind() == reflect.Map
}

// mapEntry is an entry staged for writing
type mapEntry struct {
	key        reflect.Value
	keyBytes   *bytes.Buffer
	valueBytes *bytes.Buffer
	allocated  bool
}

// Serialize writes the entries of v. Every key then every value is staged
// in its own buffer so that an entry whose key cannot be written is left
// out of the count instead of being written as an absent key.
func (mapSerializer) Serialize(session *Session, w *bytecodec.Writer, v reflect.Value) error {
	t := v.Type()
	return session.WriteReference(w, v, func(w *bytecodec.Writer) error {
		var buffers []*bytes.Buffer
		defer func() {
			for _, buf := range buffers {
				bufferpool.Pool.Put(buf)
			}
		}()
		stage := func(declared reflect.Type, value reflect.Value) (*bytes.Buffer, error) {
			buf := bufferpool.Pool.Get()
			buffers = append(buffers, buf)
			return buf, session.encodeEnvelope(w.Fork(buf), declared, value)
		}

		keys := v.MapKeys()
		entries := make([]*mapEntry, 0, len(keys))
		for _, key := range keys {
			mark := session.table.Mark()
			buf, err := stage(t.Key(), key)
			if err != nil {
				if gerrors.IsFatal(err) {
					return err
				}
				session.Logger().Warnf("entry of %s discarded: %v", t, err)
				continue
			}
			entries = append(entries, &mapEntry{
				key:       key,
				keyBytes:  buf,
				allocated: session.table.Mark() != mark,
			})
		}

		kept := entries[:0]
		for _, entry := range entries {
			buf, err := stage(t.Elem(), v.MapIndex(entry.key))
			if err != nil {
				if gerrors.IsFatal(err) {
					return err
				}
				session.Logger().Warnf("entry of %s discarded: %v", t, err)
				// a key that registered references may be pointed at by
				// later entries, so it stays with an absent value
				if entry.allocated {
					kept = append(kept, entry)
				}
				continue
			}
			entry.valueBytes = buf
			kept = append(kept, entry)
		}

		if err := w.WriteLength(len(kept)); err != nil {
			return err
		}
		for _, entry := range kept {
			if err := w.WriteRaw(entry.keyBytes.Bytes()); err != nil {
				return err
			}
		}
		for _, entry := range kept {
			if entry.valueBytes == nil {
				if err := w.WriteBool(false); err != nil {
					return err
				}
				continue
			}
			if err := w.WriteRaw(entry.valueBytes.Bytes()); err != nil {
				return err
			}
		}
		return nil
	})
}

// Deserialize registers an empty map of type t, then reads its entries.
// Entries whose key or value has been discarded are dropped.
func (mapSerializer) Deserialize(session *Session, r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	return session.ReadReference(r, t,
		func() (reflect.Value, error) {
			return session.cache().Instantiate(t)
		},
		func(r *bytecodec.Reader, object reflect.Value) (reflect.Value, error) {
			count, err := r.ReadLength()
			if err != nil {
				return reflect.Value{}, err
			}

			keys := make([]reflect.Value, 0, min(count, preallocLimit))
			for range count {
				key, err := session.ReadValue(r, t.Key())
				if err != nil {
					return reflect.Value{}, err
				}
				keys = append(keys, key)
			}

			for _, key := range keys {
				value, err := session.ReadValue(r, t.Elem())
				if err != nil {
					return reflect.Value{}, err
				}
				if !key.IsValid() || !value.IsValid() {
					continue
				}

				k, ok := coerce(key, t.Key())
				if !ok {
					session.Logger().Warnf("entry of %s discarded: %v", t, gerrors.NewErrTypeMismatch(t.Key(), concreteType(key)))
					continue
				}
				v, ok := coerce(value, t.Elem())
				if !ok {
					session.Logger().Warnf("entry of %s discarded: %v", t, gerrors.NewErrTypeMismatch(t.Elem(), concreteType(value)))
					continue
				}
				object.SetMapIndex(k, v)
			}
			return object, nil
		},
	)
}
