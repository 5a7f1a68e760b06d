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

	goset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/graphwire/errors"
	"github.com/tochemey/graphwire/log"
)

func TestCollections(t *testing.T) {
	m := newMarshaller(t)

	t.Run("With a custom collection", func(t *testing.T) {
		serializer, ok := m.dispatcher.find(reflect.TypeFor[*inventory]())
		require.True(t, ok)
		assert.IsType(t, new(collectionSerializer), serializer)

		decoded := roundTrip(t, m, &inventory{items: []string{"bolt", "nut", "gear"}})
		assert.Equal(t, []string{"bolt", "nut", "gear"}, decoded.items)
		assert.True(t, decoded.Contains("nut"))
	})
	t.Run("With an empty collection", func(t *testing.T) {
		decoded := roundTrip(t, m, new(inventory))
		require.NotNil(t, decoded)
		assert.Zero(t, decoded.Count())
	})
	t.Run("With shared collections and sets", func(t *testing.T) {
		stock := &inventory{items: []string{"a"}}
		decoded := roundTrip(t, m, shelf{
			Left:  stock,
			Right: stock,
			Tags:  goset.NewThreadUnsafeSet("x", "y", "z"),
		})
		assert.Same(t, decoded.Left, decoded.Right)
		assert.Equal(t, []string{"a"}, decoded.Left.items)
		require.NotNil(t, decoded.Tags)
		assert.Equal(t, 3, decoded.Tags.Cardinality())
		assert.True(t, decoded.Tags.Contains("x", "y", "z"))
	})
	t.Run("With elements lacking an add operation", func(t *testing.T) {
		logs := new(bytes.Buffer)
		m := newMarshaller(t, WithLogger(log.NewZap(log.WarningLevel, logs)))

		decoded := roundTrip(t, m, &box{items: []any{"a", 3, "b"}})
		assert.Equal(t, []any{"a", "b"}, decoded.items)
		assert.Contains(t, logs.String(), gerrors.ErrAddOperationMissing.Error())
	})
}
