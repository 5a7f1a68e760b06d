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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/graphwire/errors"
)

func TestCodec(t *testing.T) {
	codec := NewCodec(newMarshaller(t))

	t.Run("With a message round trip", func(t *testing.T) {
		a := &node{Name: "a"}
		a.Next = a
		data, err := codec.Serialize(a)
		require.NoError(t, err)
		require.NotEmpty(t, data)

		out, err := codec.Deserialize(data)
		require.NoError(t, err)
		decoded, ok := out.(*node)
		require.True(t, ok)
		assert.Equal(t, "a", decoded.Name)
		assert.Same(t, decoded, decoded.Next)
	})
	t.Run("With value messages", func(t *testing.T) {
		data, err := codec.Serialize(square{Side: 1.5})
		require.NoError(t, err)
		out, err := codec.Deserialize(data)
		require.NoError(t, err)
		assert.Equal(t, square{Side: 1.5}, out)
	})
	t.Run("With a nil message", func(t *testing.T) {
		data, err := codec.Serialize(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrInvalidArgument)
		assert.Nil(t, data)
	})
	t.Run("With trailing bytes", func(t *testing.T) {
		data, err := codec.Serialize(int32(5))
		require.NoError(t, err)
		_, err = codec.Deserialize(append(data, 0x00))
		assert.ErrorIs(t, err, gerrors.ErrFramingCorrupted)
	})
	t.Run("With a truncated frame", func(t *testing.T) {
		data, err := codec.Serialize("truncated")
		require.NoError(t, err)
		_, err = codec.Deserialize(data[:len(data)-2])
		assert.ErrorIs(t, err, gerrors.ErrFramingCorrupted)
	})
	t.Run("With an empty frame", func(t *testing.T) {
		_, err := codec.Deserialize(nil)
		assert.ErrorIs(t, err, gerrors.ErrFramingCorrupted)
	})
}
