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

package xsync

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Run("With Set Get Delete", func(t *testing.T) {
		sm := NewMap[string, int]()
		sm.Set("a", 1)
		sm.Set("b", 2)

		value, ok := sm.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, value)
		assert.Equal(t, 2, sm.Len())

		sm.Delete("a")
		_, ok = sm.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 1, sm.Len())
	})
	t.Run("With All over a snapshot", func(t *testing.T) {
		sm := NewMap[string, int]()
		sm.Set("a", 1)
		sm.Set("b", 2)

		keys := slices.Sorted(maps.Keys(maps.Collect(sm.All())))
		assert.Equal(t, []string{"a", "b"}, keys)

		// mutating while iterating does not deadlock
		for k := range sm.All() {
			sm.Delete(k)
		}
		assert.Zero(t, sm.Len())
	})
	t.Run("With LoadOrStore first writer wins", func(t *testing.T) {
		sm := NewMap[string, int]()
		actual, loaded := sm.LoadOrStore("a", 1)
		assert.False(t, loaded)
		assert.Equal(t, 1, actual)

		actual, loaded = sm.LoadOrStore("a", 2)
		assert.True(t, loaded)
		assert.Equal(t, 1, actual)
	})
	t.Run("With concurrent LoadOrStore", func(t *testing.T) {
		sm := NewMap[string, int]()
		var wg sync.WaitGroup
		results := make([]int, 50)
		for i := range 50 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = sm.LoadOrStore("key", i)
			}(i)
		}
		wg.Wait()
		for _, result := range results {
			assert.Equal(t, results[0], result)
		}
	})
}

func TestShardedMap(t *testing.T) {
	t.Run("With shard count rounded to a power of two", func(t *testing.T) {
		assert.Equal(t, 8, NewShardedMap[int](5).ShardCount())
		assert.Equal(t, defaultShardCount, NewShardedMap[int](0).ShardCount())
	})
	t.Run("With entries spread across shards", func(t *testing.T) {
		sm := NewShardedMap[int](4)
		for i := range 100 {
			sm.Set(fmt.Sprintf("key-%d", i), i)
		}
		assert.Equal(t, 100, sm.Len())

		value, ok := sm.Get("key-42")
		require.True(t, ok)
		assert.Equal(t, 42, value)

		actual, loaded := sm.LoadOrStore("key-42", -1)
		assert.True(t, loaded)
		assert.Equal(t, 42, actual)

		sm.Delete("key-42")
		_, ok = sm.Get("key-42")
		assert.False(t, ok)

		count := 0
		for range sm.All() {
			count++
		}
		assert.Equal(t, 99, count)

		count = 0
		for range sm.All() {
			count++
			break
		}
		assert.Equal(t, 1, count)
	})
}
