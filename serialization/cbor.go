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
	"errors"
	"fmt"
	"reflect"

	goset "github.com/deckarep/golang-set/v2"
	"github.com/fxamacker/cbor/v2"

	"github.com/tochemey/graphwire/bytecodec"
	gerrors "github.com/tochemey/graphwire/errors"
	"github.com/tochemey/graphwire/internal/types"
)

var (
	cborEncOpts = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
	}
	cborDecOpts = cbor.DecOptions{
		MaxNestedLevels: 64,
		IndefLength:     cbor.IndefLengthForbidden,
		UTF8:            cbor.UTF8DecodeInvalid,
	}
)

// cborSerializer handles the types registered with WithCBORTypes. Their
// payload is a single length-prefixed CBOR document. CBOR values carry no
// identity: shared references inside them are written once per occurrence.
type cborSerializer struct {
	types   goset.Set[reflect.Type]
	encMode cbor.EncMode
	decMode cbor.DecMode
}

var _ Serializer = (*cborSerializer)(nil)

// newCBORSerializer creates a cborSerializer for the types of the given
// samples. A sample may be a value or a reflect.Type.
func newCBORSerializer(samples ...any) (*cborSerializer, error) {
	encMode, err := cborEncOpts.EncMode()
	if err != nil {
		return nil, err
	}
	decMode, err := cborDecOpts.DecMode()
	if err != nil {
		return nil, err
	}

	set := goset.NewSet[reflect.Type]()
	for _, sample := range samples {
		rtype := types.ReflectType(sample)
		if rtype == nil {
			return nil, errors.New("nil CBOR type sample")
		}
		set.Add(rtype)
	}
	return &cborSerializer{
		types:   set,
		encMode: encMode,
		decMode: decMode,
	}, nil
}

// CanHandle reports whether t has been registered for CBOR
func (s *cborSerializer) CanHandle(t reflect.Type) bool {
	return s.types.Contains(t)
}

// Serialize writes the CBOR document of v
func (s *cborSerializer) Serialize(_ *Session, w *bytecodec.Writer, v reflect.Value) error {
	data, err := s.encMode.Marshal(v.Interface())
	if err != nil {
		return fmt.Errorf("type=(%s) cbor encoding failed: %w", v.Type(), errors.Join(gerrors.ErrUnsupportedKind, err))
	}
	return w.WriteBytes(data)
}

// Deserialize reads a CBOR document into a new value of type t
func (s *cborSerializer) Deserialize(_ *Session, r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	data, err := r.ReadBytes()
	if err != nil {
		return reflect.Value{}, err
	}
	pointer := reflect.New(t)
	if err := s.decMode.Unmarshal(data, pointer.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("type=(%s) cbor decoding failed: %w", t, errors.Join(gerrors.ErrTypeMismatch, err))
	}
	return pointer.Elem(), nil
}
