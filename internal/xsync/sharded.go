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
	"iter"

	"github.com/zeebo/xxh3"
)

const defaultShardCount = 32

// ShardedMap is a string-keyed concurrent map split across independently
// locked shards. Keys are routed to a shard with xxh3.
type ShardedMap[V any] struct {
	shards []*Map[string, V]
	mask   uint64
}

// NewShardedMap creates a ShardedMap. shardCount is rounded up to the next
// power of two; a non-positive value uses the default.
func NewShardedMap[V any](shardCount int) *ShardedMap[V] {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}
	size := 1
	for size < shardCount {
		size <<= 1
	}

	shards := make([]*Map[string, V], size)
	for i := range shards {
		shards[i] = NewMap[string, V]()
	}
	return &ShardedMap[V]{
		shards: shards,
		mask:   uint64(size - 1),
	}
}

func (s *ShardedMap[V]) shard(key string) *Map[string, V] {
	return s.shards[xxh3.HashString(key)&s.mask]
}

// Set stores the value under key
func (s *ShardedMap[V]) Set(key string, value V) {
	s.shard(key).Set(key, value)
}

// Get returns the value stored under key
func (s *ShardedMap[V]) Get(key string) (V, bool) {
	return s.shard(key).Get(key)
}

// LoadOrStore returns the existing value for key when present, otherwise stores value.
func (s *ShardedMap[V]) LoadOrStore(key string, value V) (V, bool) {
	return s.shard(key).LoadOrStore(key, value)
}

// Delete removes key
func (s *ShardedMap[V]) Delete(key string) {
	s.shard(key).Delete(key)
}

// Len returns the total number of entries across shards
func (s *ShardedMap[V]) Len() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.Len()
	}
	return total
}

// All iterates over every entry, one shard snapshot at a time.
func (s *ShardedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, shard := range s.shards {
			for k, v := range shard.All() {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// ShardCount returns the number of shards
func (s *ShardedMap[V]) ShardCount() int {
	return len(s.shards)
}
