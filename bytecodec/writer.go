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

package bytecodec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"golang.org/x/text/encoding"

	gerrors "github.com/tochemey/graphwire/errors"
)

// Writer writes wire scalars to an underlying io.Writer.
// Write errors are returned as is: they are fatal to the caller.
type Writer struct {
	w        io.Writer
	scratch  [16]byte
	encoding encoding.Encoding
	written  int64
}

// NewWriter creates a Writer over w
func NewWriter(w io.Writer, opts ...Option) *Writer {
	cfg := newConfig(opts...)
	return &Writer{
		w:        w,
		encoding: cfg.encoding,
	}
}

// Written returns the number of bytes written so far
func (w *Writer) Written() int64 {
	return w.written
}

// Encoding returns the text encoding used for strings
func (w *Writer) Encoding() encoding.Encoding {
	return w.encoding
}

// Fork returns a Writer over out sharing the configuration of w
func (w *Writer) Fork(out io.Writer) *Writer {
	return &Writer{w: out, encoding: w.encoding}
}

// WriteRaw writes p without any prefix
func (w *Writer) WriteRaw(p []byte) error {
	n, err := w.w.Write(p)
	w.written += int64(n)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

func (w *Writer) put(size int) error {
	return w.WriteRaw(w.scratch[:size])
}

// WriteBool writes a single byte 0 or 1
func (w *Writer) WriteBool(v bool) error {
	w.scratch[0] = 0
	if v {
		w.scratch[0] = 1
	}
	return w.put(1)
}

// WriteUint8 writes one byte
func (w *Writer) WriteUint8(v uint8) error {
	w.scratch[0] = v
	return w.put(1)
}

// WriteInt8 writes one byte
func (w *Writer) WriteInt8(v int8) error {
	return w.WriteUint8(uint8(v))
}

// WriteUint16 writes two bytes
func (w *Writer) WriteUint16(v uint16) error {
	binary.LittleEndian.PutUint16(w.scratch[:2], v)
	return w.put(2)
}

// WriteInt16 writes two bytes
func (w *Writer) WriteInt16(v int16) error {
	return w.WriteUint16(uint16(v))
}

// WriteUint32 writes four bytes
func (w *Writer) WriteUint32(v uint32) error {
	binary.LittleEndian.PutUint32(w.scratch[:4], v)
	return w.put(4)
}

// WriteInt32 writes four bytes
func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUint32(uint32(v))
}

// WriteUint64 writes eight bytes
func (w *Writer) WriteUint64(v uint64) error {
	binary.LittleEndian.PutUint64(w.scratch[:8], v)
	return w.put(8)
}

// WriteInt64 writes eight bytes
func (w *Writer) WriteInt64(v int64) error {
	return w.WriteUint64(uint64(v))
}

// WriteFloat32 writes an IEEE-754 single
func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes an IEEE-754 double
func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteUint64(math.Float64bits(v))
}

// WriteComplex64 writes the real then the imaginary part as float32
func (w *Writer) WriteComplex64(v complex64) error {
	binary.LittleEndian.PutUint32(w.scratch[:4], math.Float32bits(real(v)))
	binary.LittleEndian.PutUint32(w.scratch[4:8], math.Float32bits(imag(v)))
	return w.put(8)
}

// WriteComplex128 writes the real then the imaginary part as float64
func (w *Writer) WriteComplex128(v complex128) error {
	binary.LittleEndian.PutUint64(w.scratch[:8], math.Float64bits(real(v)))
	binary.LittleEndian.PutUint64(w.scratch[8:16], math.Float64bits(imag(v)))
	return w.put(16)
}

// WriteLength writes a non-negative int32 length prefix
func (w *Writer) WriteLength(n int) error {
	if n < 0 || n > math.MaxInt32 {
		return fmt.Errorf("length=(%d) %w", n, gerrors.ErrInvalidArgument)
	}
	return w.WriteInt32(int32(n))
}

// WriteBytes writes p prefixed by its int32 length
func (w *Writer) WriteBytes(p []byte) error {
	if err := w.WriteLength(len(p)); err != nil {
		return err
	}
	return w.WriteRaw(p)
}

// WriteString writes s in the configured encoding prefixed by its int32 byte length
func (w *Writer) WriteString(s string) error {
	if isNative(w.encoding) {
		if err := w.WriteLength(len(s)); err != nil {
			return err
		}
		_, err := io.WriteString(w, s)
		return err
	}

	encoded, err := w.encoding.NewEncoder().String(s)
	if err != nil {
		return fmt.Errorf("encoding string: %w", err)
	}
	if err := w.WriteLength(len(encoded)); err != nil {
		return err
	}
	_, err = io.WriteString(w, encoded)
	return err
}

// Write implements io.Writer
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.WriteRaw(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
