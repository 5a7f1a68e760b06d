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
	"encoding"
	"errors"
	"fmt"
	"reflect"

	"github.com/tochemey/graphwire/bytecodec"
	gerrors "github.com/tochemey/graphwire/errors"
)

var (
	binaryMarshalerType   = reflect.TypeFor[encoding.BinaryMarshaler]()
	binaryUnmarshalerType = reflect.TypeFor[encoding.BinaryUnmarshaler]()
)

// binarySerializer handles value types that encode themselves, such as
// time.Time and uuid.UUID: the type implements encoding.BinaryMarshaler and
// its pointer implements encoding.BinaryUnmarshaler. The payload is the
// length-prefixed binary form.
type binarySerializer struct{}

var _ Serializer = (*binarySerializer)(nil)

// CanHandle reports whether t round-trips through its binary form
func (binarySerializer) CanHandle(t reflect.Type) bool {
	return t.Kind() != reflect.Pointer &&
		t.Kind() != reflect.Interface &&
		t.Implements(binaryMarshalerType) &&
		reflect.PointerTo(t).Implements(binaryUnmarshalerType)
}

// Serialize writes the binary form of v
func (binarySerializer) Serialize(_ *Session, w *bytecodec.Writer, v reflect.Value) error {
	data, err := v.Interface().(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		return fmt.Errorf("type=(%s) binary form rejected: %w", v.Type(), errors.Join(gerrors.ErrUnsupportedKind, err))
	}
	return w.WriteBytes(data)
}

// Deserialize reads the binary form of a value of type t
func (binarySerializer) Deserialize(_ *Session, r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	data, err := r.ReadBytes()
	if err != nil {
		return reflect.Value{}, err
	}
	pointer := reflect.New(t)
	if err := pointer.Interface().(encoding.BinaryUnmarshaler).UnmarshalBinary(data); err != nil {
		return reflect.Value{}, fmt.Errorf("type=(%s) binary form rejected: %w", t, errors.Join(gerrors.ErrTypeMismatch, err))
	}
	return pointer.Elem(), nil
}
