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
	"encoding/binary"
	"math/big"
	"reflect"

	"github.com/shopspring/decimal"

	"github.com/tochemey/graphwire/bytecodec"
	gerrors "github.com/tochemey/graphwire/errors"
)

var (
	charType    = reflect.TypeFor[Char]()
	decimalType = reflect.TypeFor[decimal.Decimal]()
)

// primitiveSerializer handles the fixed-width scalars: booleans, numbers,
// Char and decimal.Decimal. Named integer types are left to the enum
// serializer; named booleans, floats and complex numbers are primitives.
type primitiveSerializer struct{}

var _ Serializer = (*primitiveSerializer)(nil)

// CanHandle reports whether t is a primitive
func (primitiveSerializer) CanHandle(t reflect.Type) bool {
	if t == charType || t == decimalType {
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128, reflect.Uintptr:
		return true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return t.PkgPath() == ""
	default:
		return false
	}
}

// Serialize writes v with its fixed width
func (primitiveSerializer) Serialize(_ *Session, w *bytecodec.Writer, v reflect.Value) error {
	if v.Type() == decimalType {
		return writeDecimal(w, v.Interface().(decimal.Decimal))
	}
	switch v.Kind() {
	case reflect.Bool:
		return w.WriteBool(v.Bool())
	case reflect.Float32:
		return w.WriteFloat32(float32(v.Float()))
	case reflect.Float64:
		return w.WriteFloat64(v.Float())
	case reflect.Complex64:
		return w.WriteComplex64(complex64(v.Complex()))
	case reflect.Complex128:
		return w.WriteComplex128(v.Complex())
	default:
		return writeInteger(w, v)
	}
}

// Deserialize reads a value of type t
func (primitiveSerializer) Deserialize(_ *Session, r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	if t == decimalType {
		d, err := readDecimal(r)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(d), nil
	}

	value := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Bool:
		b, err := r.ReadBool()
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetBool(b)
	case reflect.Float32:
		f, err := r.ReadFloat32()
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetFloat(float64(f))
	case reflect.Float64:
		f, err := r.ReadFloat64()
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetFloat(f)
	case reflect.Complex64:
		c, err := r.ReadComplex64()
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetComplex(complex128(c))
	case reflect.Complex128:
		c, err := r.ReadComplex128()
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetComplex(c)
	default:
		if err := readInteger(r, value); err != nil {
			return reflect.Value{}, err
		}
	}
	return value, nil
}

// writeInteger writes an integer of any kind with the width of its kind.
// int and uint use 64 bits; uintptr has no portable width.
func writeInteger(w *bytecodec.Writer, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Int8:
		return w.WriteInt8(int8(v.Int()))
	case reflect.Int16:
		return w.WriteInt16(int16(v.Int()))
	case reflect.Int32:
		return w.WriteInt32(int32(v.Int()))
	case reflect.Int, reflect.Int64:
		return w.WriteInt64(v.Int())
	case reflect.Uint8:
		return w.WriteUint8(uint8(v.Uint()))
	case reflect.Uint16:
		return w.WriteUint16(uint16(v.Uint()))
	case reflect.Uint32:
		return w.WriteUint32(uint32(v.Uint()))
	case reflect.Uint, reflect.Uint64:
		return w.WriteUint64(v.Uint())
	default:
		return gerrors.NewErrUnsupportedKind(v.Type())
	}
}

// readInteger reads into value the integer written by writeInteger
func readInteger(r *bytecodec.Reader, value reflect.Value) error {
	switch value.Kind() {
	case reflect.Int8:
		i, err := r.ReadInt8()
		value.SetInt(int64(i))
		return err
	case reflect.Int16:
		i, err := r.ReadInt16()
		value.SetInt(int64(i))
		return err
	case reflect.Int32:
		i, err := r.ReadInt32()
		value.SetInt(int64(i))
		return err
	case reflect.Int, reflect.Int64:
		i, err := r.ReadInt64()
		value.SetInt(i)
		return err
	case reflect.Uint8:
		u, err := r.ReadUint8()
		value.SetUint(uint64(u))
		return err
	case reflect.Uint16:
		u, err := r.ReadUint16()
		value.SetUint(uint64(u))
		return err
	case reflect.Uint32:
		u, err := r.ReadUint32()
		value.SetUint(uint64(u))
		return err
	case reflect.Uint, reflect.Uint64:
		u, err := r.ReadUint64()
		value.SetUint(u)
		return err
	default:
		return gerrors.NewErrUnsupportedKind(value.Type())
	}
}

// writeDecimal writes the word count N, then N int32 words: the exponent,
// the sign (1 when negative) and the magnitude in base 2^32, least
// significant word first.
func writeDecimal(w *bytecodec.Writer, d decimal.Decimal) error {
	coefficient := d.Coefficient()
	sign := int32(0)
	if coefficient.Sign() < 0 {
		sign = 1
	}

	magnitude := new(big.Int).Abs(coefficient).Bytes()
	words := make([]uint32, 0, len(magnitude)/4+1)
	for end := len(magnitude); end > 0; end -= 4 {
		start := max(end-4, 0)
		var chunk [4]byte
		copy(chunk[4-(end-start):], magnitude[start:end])
		words = append(words, binary.BigEndian.Uint32(chunk[:]))
	}

	if err := w.WriteInt32(int32(len(words) + 2)); err != nil {
		return err
	}
	if err := w.WriteInt32(d.Exponent()); err != nil {
		return err
	}
	if err := w.WriteInt32(sign); err != nil {
		return err
	}
	for _, word := range words {
		if err := w.WriteUint32(word); err != nil {
			return err
		}
	}
	return nil
}

func readDecimal(r *bytecodec.Reader) (decimal.Decimal, error) {
	count, err := r.ReadInt32()
	if err != nil {
		return decimal.Zero, err
	}
	if count < 2 {
		return decimal.Zero, gerrors.NewErrFramingCorrupted("decimal word count %d", count)
	}
	if rem := r.Remaining(); rem >= 0 && int(count)*4 > rem {
		return decimal.Zero, gerrors.NewErrFramingCorrupted("decimal of %d words exceeds the %d bytes left", count, rem)
	}

	exponent, err := r.ReadInt32()
	if err != nil {
		return decimal.Zero, err
	}
	sign, err := r.ReadInt32()
	if err != nil {
		return decimal.Zero, err
	}

	n := int(count) - 2
	magnitude := make([]byte, n*4)
	for i := range n {
		word, err := r.ReadUint32()
		if err != nil {
			return decimal.Zero, err
		}
		// least significant word first on the wire, big-endian bytes for big.Int
		offset := (n - 1 - i) * 4
		binary.BigEndian.PutUint32(magnitude[offset:offset+4], word)
	}

	coefficient := new(big.Int).SetBytes(magnitude)
	if sign != 0 {
		coefficient.Neg(coefficient)
	}
	return decimal.NewFromBigInt(coefficient, exponent), nil
}
