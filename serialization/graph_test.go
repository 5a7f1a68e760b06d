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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/graphwire/bytecodec"
	gerrors "github.com/tochemey/graphwire/errors"
)

type pair struct {
	A *node
	B *node
}

type counters struct {
	P     *int
	Q     *int
	When  *time.Time
	Left  []int
	Right []int
	Index map[string]*node
	Other map[string]*node
}

// frame wraps payload in a value envelope
func frame(t *testing.T, name string, payload []byte) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := bytecodec.NewWriter(buf)
	require.NoError(t, w.WriteBool(true))
	if name != "" {
		require.NoError(t, w.WriteString(name))
	}
	require.NoError(t, w.WriteLength(len(payload)))
	require.NoError(t, w.WriteRaw(payload))
	return buf.Bytes()
}

func stringPayload(t *testing.T, s string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, bytecodec.NewWriter(buf).WriteString(s))
	return buf.Bytes()
}

// nodePayload is a reference to a node whose only field is its name
func nodePayload(t *testing.T, id int64, name string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := bytecodec.NewWriter(buf)
	require.NoError(t, w.WriteInt64(id))
	require.NoError(t, w.WriteBool(true))
	require.NoError(t, w.WriteLength(1))
	require.NoError(t, w.WriteString("Name"))
	require.NoError(t, w.WriteRaw(frame(t, "string", stringPayload(t, name))))
	return buf.Bytes()
}

func TestReferences(t *testing.T) {
	m := newMarshaller(t)

	t.Run("With a self cycle", func(t *testing.T) {
		n := &node{Name: "self"}
		n.Next = n
		decoded := roundTrip(t, m, n)
		assert.Equal(t, "self", decoded.Name)
		assert.Same(t, decoded, decoded.Next)
	})
	t.Run("With a ring", func(t *testing.T) {
		a, b, c := &node{Name: "a"}, &node{Name: "b"}, &node{Name: "c"}
		a.Next, b.Next, c.Next = b, c, a
		decoded := roundTrip(t, m, a)
		assert.Equal(t, "b", decoded.Next.Name)
		assert.Equal(t, "c", decoded.Next.Next.Name)
		assert.Same(t, decoded, decoded.Next.Next.Next)
	})
	t.Run("With shared pointers", func(t *testing.T) {
		shared := &node{Name: "shared"}
		decoded := roundTrip(t, m, pair{A: shared, B: shared})
		assert.Same(t, decoded.A, decoded.B)

		distinct := roundTrip(t, m, pair{A: &node{Name: "x"}, B: &node{Name: "x"}})
		assert.NotSame(t, distinct.A, distinct.B)
	})
	t.Run("With a slice of repeated pointers", func(t *testing.T) {
		a := &node{Name: "a"}
		a.Peers = []*node{a, a, nil}
		decoded := roundTrip(t, m, []*node{a, a})
		require.Len(t, decoded, 2)
		assert.Same(t, decoded[0], decoded[1])
		require.Len(t, decoded[0].Peers, 3)
		assert.Same(t, decoded[0], decoded[0].Peers[1])
		assert.Nil(t, decoded[0].Peers[2])
	})
	t.Run("With shared slices, maps and scalars", func(t *testing.T) {
		count := 5
		when := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
		values := []int{1, 2, 3}
		index := map[string]*node{"root": {Name: "root"}}
		decoded := roundTrip(t, m, counters{
			P:     &count,
			Q:     &count,
			When:  &when,
			Left:  values,
			Right: values,
			Index: index,
			Other: index,
		})

		require.NotNil(t, decoded.P)
		assert.Equal(t, 5, *decoded.P)
		assert.Same(t, decoded.P, decoded.Q)
		require.NotNil(t, decoded.When)
		assert.True(t, when.Equal(*decoded.When))
		assert.Equal(t, values, decoded.Left)
		assert.Same(t, &decoded.Left[0], &decoded.Right[0])
		require.Contains(t, decoded.Index, "root")
		assert.Equal(t, "root", decoded.Index["root"].Name)
		assert.Equal(t, reflect.ValueOf(decoded.Index).Pointer(), reflect.ValueOf(decoded.Other).Pointer())
	})
	t.Run("With a failed value rolled back", func(t *testing.T) {
		m := newMarshaller(t, WithSerializers(explosiveSerializer{}))
		owner := &node{Name: "owner"}

		decoded := roundTrip(t, m, blast{Bomb: explosive{Target: owner}, Owner: owner})
		assert.Nil(t, decoded.Bomb.Target)
		require.NotNil(t, decoded.Owner)
		assert.Equal(t, "owner", decoded.Owner.Name)
	})
	t.Run("With an unresolved reference", func(t *testing.T) {
		data := []byte{0x01, 0x09, 0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
		out, err := m.Deserialize(bytes.NewReader(data), reflect.TypeFor[*node]())
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrUnresolvedReference)
		assert.False(t, gerrors.IsFatal(err))
		assert.Nil(t, out)
	})
	t.Run("With a repopulated reference", func(t *testing.T) {
		nodeName := m.cache.NameOf(reflect.TypeFor[*node]())

		buf := new(bytes.Buffer)
		w := bytecodec.NewWriter(buf)
		require.NoError(t, w.WriteLength(2))
		require.NoError(t, w.WriteString("A"))
		require.NoError(t, w.WriteRaw(frame(t, nodeName, nodePayload(t, 0, "first"))))
		require.NoError(t, w.WriteString("B"))
		require.NoError(t, w.WriteRaw(frame(t, nodeName, nodePayload(t, 0, "second"))))

		data := frame(t, "", buf.Bytes())
		out, err := m.Deserialize(bytes.NewReader(data), reflect.TypeFor[pair]())
		require.NoError(t, err)
		decoded := out.(pair)
		assert.Same(t, decoded.A, decoded.B)
		assert.Equal(t, "second", decoded.A.Name)
	})
}
