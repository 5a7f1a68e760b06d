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

// enumSerializer handles named integer types such as
//
//	type Color int8
//
// A value is written with the width of its underlying integer.
type enumSerializer struct{}

var _ Serializer = (*enumSerializer)(nil)

// CanHandle reports whether t is a named integer type
func (enumSerializer) CanHandle(t reflect.Type) bool {
	if t.PkgPath() == "" {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

// Serialize writes the underlying integer of v
func (enumSerializer) Serialize(_ *Session, w *bytecodec.Writer, v reflect.Value) error {
	return writeInteger(w, v)
}

// Deserialize reads the underlying integer of a value of type t
func (enumSerializer) Deserialize(_ *Session, r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	value := reflect.New(t).Elem()
	if err := readInteger(r, value); err != nil {
		return reflect.Value{}, err
	}
	return value, nil
}
