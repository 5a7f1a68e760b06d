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
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"golang.org/x/text/encoding"

	gerrors "github.com/tochemey/graphwire/errors"
)

// Reader reads wire scalars from an underlying io.Reader or from memory.
//
// Every failure to obtain the bytes a value needs is reported as
// ErrFramingCorrupted: the stream cannot be resynchronized afterwards.
// Nested payloads handed out by Sub are views over the bytes of their
// parent, so a stream is copied at most once however deep it nests.
type Reader struct {
	r              io.Reader
	data           []byte
	pos            int
	scratch        [16]byte
	encoding       encoding.Encoding
	maxPayloadSize int
	maxDepth       int
	depth          int
	consumed       int64
}

// lener is implemented by in-memory readers such as *bytes.Reader
type lener interface {
	Len() int
}

// NewReader creates a Reader over r
func NewReader(r io.Reader, opts ...Option) *Reader {
	cfg := newConfig(opts...)
	return &Reader{
		r:              r,
		encoding:       cfg.encoding,
		maxPayloadSize: cfg.maxPayloadSize,
		maxDepth:       cfg.maxDepth,
	}
}

// NewBytesReader creates a Reader over p. p is read in place and must not
// be modified while the Reader is in use.
func NewBytesReader(p []byte, opts ...Option) *Reader {
	cfg := newConfig(opts...)
	return &Reader{
		data:           p,
		encoding:       cfg.encoding,
		maxPayloadSize: cfg.maxPayloadSize,
		maxDepth:       cfg.maxDepth,
	}
}

// Consumed returns the number of bytes read so far
func (r *Reader) Consumed() int64 {
	return r.consumed
}

// Remaining returns the number of unread bytes when the Reader is backed by
// memory, and -1 for streams of unknown length.
func (r *Reader) Remaining() int {
	if r.r == nil {
		return len(r.data) - r.pos
	}
	if sized, ok := r.r.(lener); ok {
		return sized.Len()
	}
	return -1
}

// Depth returns the number of nested payloads above r
func (r *Reader) Depth() int {
	return r.depth
}

// Encoding returns the text encoding used for strings
func (r *Reader) Encoding() encoding.Encoding {
	return r.encoding
}

// ReadRaw fills p entirely
func (r *Reader) ReadRaw(p []byte) error {
	if r.r == nil {
		view, err := r.next(len(p))
		if err != nil {
			return err
		}
		copy(p, view)
		return nil
	}
	n, err := io.ReadFull(r.r, p)
	r.consumed += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return gerrors.NewErrFramingCorrupted("short read: wanted %d bytes, got %d", len(p), n)
		}
		return err
	}
	return nil
}

// next returns the next n bytes of an in-memory Reader without copying
func (r *Reader) next(n int) ([]byte, error) {
	if left := len(r.data) - r.pos; n > left {
		r.consumed += int64(left)
		r.pos = len(r.data)
		return nil, gerrors.NewErrFramingCorrupted("short read: wanted %d bytes, got %d", n, left)
	}
	view := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	r.consumed += int64(n)
	return view, nil
}

func (r *Reader) take(size int) ([]byte, error) {
	if r.r == nil {
		return r.next(size)
	}
	if err := r.ReadRaw(r.scratch[:size]); err != nil {
		return nil, err
	}
	return r.scratch[:size], nil
}

// ReadBool reads a single byte. Any non-zero byte is true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.take(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// ReadUint8 reads one byte
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt8 reads one byte
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadUint16 reads two bytes
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadInt16 reads two bytes
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads four bytes
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadInt32 reads four bytes
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads eight bytes
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadInt64 reads eight bytes
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads an IEEE-754 single
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads an IEEE-754 double
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadComplex64 reads the real then the imaginary part as float32
func (r *Reader) ReadComplex64() (complex64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	re := math.Float32frombits(binary.LittleEndian.Uint32(b[:4]))
	im := math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))
	return complex(re, im), nil
}

// ReadComplex128 reads the real then the imaginary part as float64
func (r *Reader) ReadComplex128() (complex128, error) {
	b, err := r.take(16)
	if err != nil {
		return 0, err
	}
	re := math.Float64frombits(binary.LittleEndian.Uint64(b[:8]))
	im := math.Float64frombits(binary.LittleEndian.Uint64(b[8:16]))
	return complex(re, im), nil
}

// ReadLength reads an int32 length prefix and checks it against the
// configured limit and, for in-memory readers, the bytes left.
func (r *Reader) ReadLength() (int, error) {
	v, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	n := int(v)
	switch {
	case n < 0:
		return 0, gerrors.NewErrFramingCorrupted("negative length %d", n)
	case n > r.maxPayloadSize:
		return 0, gerrors.NewErrFramingCorrupted("length %d exceeds the limit of %d bytes", n, r.maxPayloadSize)
	}
	if left := r.Remaining(); left >= 0 && n > left {
		return 0, gerrors.NewErrFramingCorrupted("length %d exceeds the %d bytes left", n, left)
	}
	return n, nil
}

// ReadN reads exactly n bytes into a fresh slice. Streams are read in
// chunks so a corrupted length does not allocate more than the stream holds.
func (r *Reader) ReadN(n int) ([]byte, error) {
	if n < 0 || n > r.maxPayloadSize {
		return nil, gerrors.NewErrFramingCorrupted("invalid read size %d", n)
	}
	if r.r == nil {
		view, err := r.next(n)
		if err != nil {
			return nil, err
		}
		return bytes.Clone(view), nil
	}

	buf := bytes.NewBuffer(make([]byte, 0, min(n, readChunk)))
	copied, err := io.CopyN(buf, r.r, int64(n))
	r.consumed += copied
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, gerrors.NewErrFramingCorrupted("short read: wanted %d bytes, got %d", n, copied)
		}
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadBytes reads an int32 length prefix then that many bytes
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	return r.ReadN(n)
}

// ReadString reads a length-prefixed string in the configured encoding
func (r *Reader) ReadString() (string, error) {
	p, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	if isNative(r.encoding) {
		return string(p), nil
	}
	decoded, err := r.encoding.NewDecoder().Bytes(p)
	if err != nil {
		return "", gerrors.NewErrFramingCorrupted("decoding string: %v", err)
	}
	return string(decoded), nil
}

// Sub returns a Reader over the next n bytes that shares the configuration
// of r. In-memory readers hand out a view; streams are read into memory
// once. The caller checks Remaining on the sub reader to detect payloads
// that were not fully consumed.
func (r *Reader) Sub(n int) (*Reader, error) {
	if r.depth >= r.maxDepth {
		return nil, gerrors.NewErrFramingCorrupted("payload nesting exceeds %d levels", r.maxDepth)
	}

	var (
		p   []byte
		err error
	)
	if r.r == nil {
		if n < 0 || n > r.maxPayloadSize {
			return nil, gerrors.NewErrFramingCorrupted("invalid read size %d", n)
		}
		p, err = r.next(n)
	} else {
		p, err = r.ReadN(n)
	}
	if err != nil {
		return nil, err
	}
	return &Reader{
		data:           p,
		encoding:       r.encoding,
		maxPayloadSize: r.maxPayloadSize,
		maxDepth:       r.maxDepth,
		depth:          r.depth + 1,
	}, nil
}

// Skip discards n bytes
func (r *Reader) Skip(n int) error {
	if n < 0 {
		return gerrors.NewErrFramingCorrupted("negative skip %d", n)
	}
	if r.r == nil {
		if left := len(r.data) - r.pos; n > left {
			return gerrors.NewErrFramingCorrupted("skip of %d bytes exceeds the %d bytes left", n, left)
		}
		r.pos += n
		r.consumed += int64(n)
		return nil
	}
	copied, err := io.CopyN(io.Discard, r.r, int64(n))
	r.consumed += copied
	if err != nil {
		if errors.Is(err, io.EOF) {
			return gerrors.NewErrFramingCorrupted("short skip: wanted %d bytes, got %d", n, copied)
		}
		return err
	}
	return nil
}
