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
	"bytes"
	"errors"
	"reflect"

	"github.com/tochemey/graphwire/bytecodec"
	gerrors "github.com/tochemey/graphwire/errors"
	"github.com/tochemey/graphwire/internal/bufferpool"
)

// Codec turns single messages into self-describing byte frames. Every frame
// carries the type name of its message so it can be decoded without knowing
// the type in advance; the message type must therefore be registered with
// RegisterTypes, WithTypeName or WithTypeResolver on the decoding side.
//
// Codec is safe for concurrent use.
type Codec struct {
	marshaller *Marshaller
}

// NewCodec creates a Codec writing frames with m
func NewCodec(m *Marshaller) *Codec {
	return &Codec{marshaller: m}
}

// Serialize encodes message in a new frame
func (c *Codec) Serialize(message any) ([]byte, error) {
	if message == nil {
		return nil, errors.Join(gerrors.ErrInvalidArgument, errors.New("nil message"))
	}

	buf := bufferpool.Pool.Get()
	defer bufferpool.Pool.Put(buf)

	if err := Encode[any](c.marshaller, buf, message); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// Deserialize decodes the message of a frame produced by Serialize. A frame
// with trailing bytes is rejected.
func (c *Codec) Deserialize(data []byte) (any, error) {
	reader := bytecodec.NewBytesReader(data, c.marshaller.codecOpts...)
	value, err := c.marshaller.newSession().decodeEnvelope(reader, anyType)
	if err != nil {
		return nil, err
	}
	if left := reader.Remaining(); left != 0 {
		return nil, gerrors.NewErrFramingCorrupted("%d trailing bytes after message", left)
	}
	if value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil, nil
		}
		value = value.Elem()
	}
	return value.Interface(), nil
}
