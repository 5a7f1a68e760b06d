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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/graphwire/errors"
	"github.com/tochemey/graphwire/log"
)

func TestDelegate(t *testing.T) {
	d := NewDelegate[greeter](hello, nil)
	assert.Equal(t, 1, d.Len())

	combined := d.Combine(bye)
	assert.Equal(t, 1, d.Len())
	require.Equal(t, 2, combined.Len())

	var greetings []string
	for _, fn := range combined.Targets() {
		greetings = append(greetings, fn("eve"))
	}
	assert.Equal(t, []string{"hello eve", "bye eve"}, greetings)

	var empty *Delegate[greeter]
	assert.Zero(t, empty.Len())
	assert.Empty(t, empty.Targets())
}

func TestFuncRegistry(t *testing.T) {
	registry := NewFuncRegistry()
	require.NoError(t, registry.Register(hello, bye))
	assert.Equal(t, 2, registry.Len())

	declaring, method := funcName(reflect.ValueOf(hello))
	assert.Equal(t, "hello", method)
	assert.Equal(t, "github.com/tochemey/graphwire/serialization", declaring)

	fn, ok := registry.Lookup(declaring, "bye")
	require.True(t, ok)
	assert.Equal(t, "bye ann", fn.Interface().(func(string) string)("ann"))

	_, ok = registry.Lookup(declaring, "missing")
	assert.False(t, ok)

	assert.Error(t, registry.Register("not a func"))
	assert.Error(t, registry.Register(nil))
}

func TestCallbacks(t *testing.T) {
	m := newMarshaller(t, WithFuncs(hello, bye))

	t.Run("With a func value", func(t *testing.T) {
		decoded := roundTrip(t, m, greeter(hello))
		require.NotNil(t, decoded)
		assert.Equal(t, "hello joe", decoded("joe"))
	})
	t.Run("With funcs and delegates in a struct", func(t *testing.T) {
		h := hooks{
			Name:    "events",
			OnGreet: bye,
			Chain:   NewDelegate[greeter](hello, bye),
		}
		decoded := roundTrip(t, m, h)
		assert.Equal(t, "events", decoded.Name)
		require.NotNil(t, decoded.OnGreet)
		assert.Equal(t, "bye kim", decoded.OnGreet("kim"))
		require.NotNil(t, decoded.Chain)
		require.Equal(t, 2, decoded.Chain.Len())
		assert.Equal(t, "hello kim", decoded.Chain.Targets()[0]("kim"))
		assert.Equal(t, "bye kim", decoded.Chain.Targets()[1]("kim"))
	})
	t.Run("With unregistered targets", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, m.Serialize(buf, hooks{
			Name:    "orphan",
			OnGreet: hello,
			Chain:   NewDelegate[greeter](hello),
		}))

		logs := new(bytes.Buffer)
		reader := newMarshaller(t, WithFuncs(bye), WithLogger(log.NewZap(log.WarningLevel, logs)))
		out, err := reader.Deserialize(buf, reflect.TypeFor[hooks]())
		require.NoError(t, err)
		decoded := out.(hooks)
		assert.Equal(t, "orphan", decoded.Name)
		assert.Nil(t, decoded.OnGreet)
		assert.Nil(t, decoded.Chain)
		assert.Contains(t, logs.String(), gerrors.ErrCallbackUnresolved.Error())
	})
	t.Run("With a top level unregistered func", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, m.Serialize(buf, greeter(hello)))

		reader := newMarshaller(t)
		_, err := reader.Deserialize(buf, reflect.TypeFor[greeter]())
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrCallbackUnresolved)
	})
}
