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
	"github.com/tochemey/graphwire/internal/xsync"
)

// Serializer is the extension point for a family of types.
//
// # Responsibilities
//
// CanHandle reports whether the serializer accepts a type. It must be cheap
// and deterministic: its answer is memoized per type.
//
// Serialize writes the payload of v, a non-nil value of a type accepted by
// CanHandle. The payload is buffered by the caller, which writes the
// enclosing envelope once Serialize succeeds. Nested values are written with
// [Session.WriteValue]; objects with identity use [Session.WriteReference].
//
// Deserialize reads a payload produced by Serialize and returns a value of
// type t. It must consume the payload exactly: leftover bytes are reported
// as ErrFramingCorrupted.
//
// # Errors
//
// Errors built from the fatal sentinels of the errors package abort the
// whole call. Other errors produced by this package are recoverable: the
// value is logged, discarded and replaced by its zero value.
//
// # Concurrency
//
// A single Serializer instance is shared by every call of a Marshaller and
// must be safe for concurrent use. Per call state lives in the Session.
type Serializer interface {
	// CanHandle reports whether the serializer accepts values of type t
	CanHandle(t reflect.Type) bool
	// Serialize writes the payload of v
	Serialize(session *Session, w *bytecodec.Writer, v reflect.Value) error
	// Deserialize reads a payload into a new value of type t
	Deserialize(session *Session, r *bytecodec.Reader, t reflect.Type) (reflect.Value, error)
}

type dispatchEntry struct {
	serializer Serializer
	ok         bool
}

// dispatcher selects the first serializer able to handle a type and
// remembers the choice.
type dispatcher struct {
	serializers []Serializer
	memo        *xsync.Map[reflect.Type, dispatchEntry]
}

func newDispatcher(serializers []Serializer) *dispatcher {
	return &dispatcher{
		serializers: serializers,
		memo:        xsync.NewMap[reflect.Type, dispatchEntry](),
	}
}

func (d *dispatcher) find(t reflect.Type) (Serializer, bool) {
	if entry, ok := d.memo.Get(t); ok {
		return entry.serializer, entry.ok
	}

	var entry dispatchEntry
	for _, serializer := range d.serializers {
		if serializer.CanHandle(t) {
			entry = dispatchEntry{serializer: serializer, ok: true}
			break
		}
	}
	entry, _ = d.memo.LoadOrStore(t, entry)
	return entry.serializer, entry.ok
}

func (d *dispatcher) list() []Serializer {
	out := make([]Serializer, len(d.serializers))
	copy(out, d.serializers)
	return out
}
