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

// stringSerializer handles every string kind
type stringSerializer struct{}

var _ Serializer = (*stringSerializer)(nil)

// CanHandle reports whether t is a string kind
func (stringSerializer) CanHandle(t reflect.Type) bool {
	return t.Kind() == reflect.String
}

// Serialize writes the length-prefixed text of v
func (stringSerializer) Serialize(_ *Session, w *bytecodec.Writer, v reflect.Value) error {
	return w.WriteString(v.String())
}

// Deserialize reads a length-prefixed text
func (stringSerializer) Deserialize(_ *Session, r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	s, err := r.ReadString()
	if err != nil {
		return reflect.Value{}, err
	}
	value := reflect.New(t).Elem()
	value.SetString(s)
	return value, nil
}
