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
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	gerrors "github.com/tochemey/graphwire/errors"
)

func TestWriterReader(t *testing.T) {
	t.Run("With scalars round trip", func(t *testing.T) {
		buf := new(bytes.Buffer)
		w := NewWriter(buf)
		require.NoError(t, w.WriteBool(true))
		require.NoError(t, w.WriteInt8(-8))
		require.NoError(t, w.WriteUint8(200))
		require.NoError(t, w.WriteInt16(-1600))
		require.NoError(t, w.WriteUint16(65000))
		require.NoError(t, w.WriteInt32(-320000))
		require.NoError(t, w.WriteUint32(math.MaxUint32))
		require.NoError(t, w.WriteInt64(math.MinInt64))
		require.NoError(t, w.WriteUint64(math.MaxUint64))
		require.NoError(t, w.WriteFloat32(3.5))
		require.NoError(t, w.WriteFloat64(-2.25))
		require.NoError(t, w.WriteComplex64(complex(1, -1)))
		require.NoError(t, w.WriteComplex128(complex(2.5, 4)))
		assert.EqualValues(t, buf.Len(), w.Written())

		r := NewBytesReader(buf.Bytes())
		b, err := r.ReadBool()
		require.NoError(t, err)
		assert.True(t, b)
		i8, err := r.ReadInt8()
		require.NoError(t, err)
		assert.EqualValues(t, -8, i8)
		u8, err := r.ReadUint8()
		require.NoError(t, err)
		assert.EqualValues(t, 200, u8)
		i16, err := r.ReadInt16()
		require.NoError(t, err)
		assert.EqualValues(t, -1600, i16)
		u16, err := r.ReadUint16()
		require.NoError(t, err)
		assert.EqualValues(t, 65000, u16)
		i32, err := r.ReadInt32()
		require.NoError(t, err)
		assert.EqualValues(t, -320000, i32)
		u32, err := r.ReadUint32()
		require.NoError(t, err)
		assert.EqualValues(t, uint32(math.MaxUint32), u32)
		i64, err := r.ReadInt64()
		require.NoError(t, err)
		assert.EqualValues(t, int64(math.MinInt64), i64)
		u64, err := r.ReadUint64()
		require.NoError(t, err)
		assert.EqualValues(t, uint64(math.MaxUint64), u64)
		f32, err := r.ReadFloat32()
		require.NoError(t, err)
		assert.EqualValues(t, 3.5, f32)
		f64, err := r.ReadFloat64()
		require.NoError(t, err)
		assert.EqualValues(t, -2.25, f64)
		c64, err := r.ReadComplex64()
		require.NoError(t, err)
		assert.Equal(t, complex64(complex(1, -1)), c64)
		c128, err := r.ReadComplex128()
		require.NoError(t, err)
		assert.Equal(t, complex(2.5, 4), c128)

		assert.Zero(t, r.Remaining())
		assert.EqualValues(t, buf.Len(), r.Consumed())
	})
	t.Run("With little endian layout", func(t *testing.T) {
		buf := new(bytes.Buffer)
		w := NewWriter(buf)
		require.NoError(t, w.WriteInt32(42))
		require.NoError(t, w.WriteUint16(0x0102))
		assert.Equal(t, []byte{0x2A, 0, 0, 0, 0x02, 0x01}, buf.Bytes())
	})
	t.Run("With native strings", func(t *testing.T) {
		buf := new(bytes.Buffer)
		w := NewWriter(buf)
		require.NoError(t, w.WriteString("héllo"))
		require.NoError(t, w.WriteString(""))
		// invalid UTF-8 is kept byte for byte
		require.NoError(t, w.WriteString("\xff\xfe"))

		r := NewBytesReader(buf.Bytes())
		s, err := r.ReadString()
		require.NoError(t, err)
		assert.Equal(t, "héllo", s)
		s, err = r.ReadString()
		require.NoError(t, err)
		assert.Empty(t, s)
		s, err = r.ReadString()
		require.NoError(t, err)
		assert.Equal(t, "\xff\xfe", s)
	})
	t.Run("With UTF-16 encoding", func(t *testing.T) {
		enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
		buf := new(bytes.Buffer)
		w := NewWriter(buf, WithEncoding(enc))
		require.NoError(t, w.WriteString("ab"))
		assert.Equal(t, []byte{4, 0, 0, 0, 'a', 0, 'b', 0}, buf.Bytes())
		assert.Equal(t, enc, w.Encoding())

		r := NewBytesReader(buf.Bytes(), WithEncoding(enc))
		s, err := r.ReadString()
		require.NoError(t, err)
		assert.Equal(t, "ab", s)
	})
	t.Run("With raw bytes and fork", func(t *testing.T) {
		buf := new(bytes.Buffer)
		w := NewWriter(buf)
		require.NoError(t, w.WriteBytes([]byte{1, 2, 3}))

		nested := new(bytes.Buffer)
		fork := w.Fork(nested)
		require.NoError(t, fork.WriteBool(true))
		assert.Equal(t, 1, nested.Len())
		assert.EqualValues(t, 7, w.Written())

		r := NewBytesReader(buf.Bytes())
		p, err := r.ReadBytes()
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, p)
	})
}

func TestReaderFraming(t *testing.T) {
	t.Run("With short read", func(t *testing.T) {
		r := NewBytesReader([]byte{1, 2})
		_, err := r.ReadInt32()
		require.ErrorIs(t, err, gerrors.ErrFramingCorrupted)
		assert.True(t, gerrors.IsFatal(err))
	})
	t.Run("With short read on a stream", func(t *testing.T) {
		r := NewReader(io.MultiReader(bytes.NewReader([]byte{1})))
		assert.Equal(t, -1, r.Remaining())
		_, err := r.ReadInt64()
		require.ErrorIs(t, err, gerrors.ErrFramingCorrupted)
	})
	t.Run("With negative length", func(t *testing.T) {
		r := NewBytesReader([]byte{0xFF, 0xFF, 0xFF, 0xFF})
		_, err := r.ReadLength()
		require.ErrorIs(t, err, gerrors.ErrFramingCorrupted)
	})
	t.Run("With length over the limit", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, NewWriter(buf).WriteInt32(100))
		buf.Write(make([]byte, 100))

		r := NewBytesReader(buf.Bytes(), WithMaxPayloadSize(10))
		_, err := r.ReadBytes()
		require.ErrorIs(t, err, gerrors.ErrFramingCorrupted)
	})
	t.Run("With length beyond the bytes left", func(t *testing.T) {
		r := NewBytesReader([]byte{8, 0, 0, 0, 1})
		_, err := r.ReadBytes()
		require.ErrorIs(t, err, gerrors.ErrFramingCorrupted)
	})
	t.Run("With foreign read error", func(t *testing.T) {
		boom := errors.New("boom")
		r := NewReader(failingReader{err: boom})
		_, err := r.ReadBool()
		require.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, gerrors.ErrFramingCorrupted)
	})
	t.Run("With negative write length", func(t *testing.T) {
		w := NewWriter(new(bytes.Buffer))
		require.ErrorIs(t, w.WriteLength(-1), gerrors.ErrInvalidArgument)
	})
}

func TestReaderSubAndSkip(t *testing.T) {
	t.Run("With sub reader", func(t *testing.T) {
		r := NewBytesReader([]byte{1, 2, 3, 4, 5})
		sub, err := r.Sub(3)
		require.NoError(t, err)
		assert.Equal(t, 3, sub.Remaining())
		assert.Equal(t, 2, r.Remaining())

		v, err := sub.ReadUint8()
		require.NoError(t, err)
		assert.EqualValues(t, 1, v)
		assert.Equal(t, 2, sub.Remaining())
	})
	t.Run("With sub readers sharing the parent bytes", func(t *testing.T) {
		data := []byte{1, 2, 3, 4}
		r := NewBytesReader(data)
		outer, err := r.Sub(4)
		require.NoError(t, err)
		inner, err := outer.Sub(2)
		require.NoError(t, err)
		assert.Equal(t, 2, inner.Depth())

		data[0] = 9
		v, err := inner.ReadUint8()
		require.NoError(t, err)
		assert.EqualValues(t, 9, v)

		// reading past the view does not reach the parent bytes
		_, err = inner.ReadUint16()
		require.ErrorIs(t, err, gerrors.ErrFramingCorrupted)
		assert.Equal(t, 2, outer.Remaining())
	})
	t.Run("With sub reader over a stream", func(t *testing.T) {
		r := NewReader(io.MultiReader(bytes.NewReader([]byte{1, 2, 3})))
		sub, err := r.Sub(2)
		require.NoError(t, err)
		assert.Equal(t, 2, sub.Remaining())
		assert.EqualValues(t, 2, r.Consumed())

		// a length larger than the stream fails without reserving it
		_, err = NewReader(io.MultiReader(bytes.NewReader([]byte{1}))).Sub(DefaultMaxPayloadSize)
		require.ErrorIs(t, err, gerrors.ErrFramingCorrupted)
	})
	t.Run("With nesting over the depth limit", func(t *testing.T) {
		r := NewBytesReader([]byte{1, 2, 3}, WithMaxDepth(2))
		first, err := r.Sub(3)
		require.NoError(t, err)
		second, err := first.Sub(2)
		require.NoError(t, err)
		_, err = second.Sub(1)
		require.ErrorIs(t, err, gerrors.ErrFramingCorrupted)
		assert.Contains(t, err.Error(), "nesting")
	})
	t.Run("With skip in memory", func(t *testing.T) {
		r := NewBytesReader([]byte{1, 2, 3, 4})
		require.NoError(t, r.Skip(3))
		v, err := r.ReadUint8()
		require.NoError(t, err)
		assert.EqualValues(t, 4, v)
		require.ErrorIs(t, r.Skip(1), gerrors.ErrFramingCorrupted)
	})
	t.Run("With skip on a stream", func(t *testing.T) {
		r := NewReader(io.MultiReader(bytes.NewReader([]byte{1, 2, 3})))
		require.NoError(t, r.Skip(2))
		assert.EqualValues(t, 2, r.Consumed())
		require.ErrorIs(t, r.Skip(5), gerrors.ErrFramingCorrupted)
	})
}

type failingReader struct {
	err error
}

func (f failingReader) Read([]byte) (int, error) {
	return 0, f.err
}
