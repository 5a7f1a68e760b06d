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

// Package metadata computes and memoizes what the codec needs to know about a
// runtime type: its wire name, its serializable fields, how to construct it
// and, for collection types, how to count, enumerate and add to it.
package metadata

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"

	"github.com/tochemey/graphwire/internal/xsync"
)

// Resolver maps a wire type name back to a runtime type
type Resolver interface {
	ResolveType(name string) (reflect.Type, bool)
}

// Stats reports the descriptor cache hit and miss counters
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Cache holds the memoized type metadata. Entries are computed once per type
// and never invalidated; when two goroutines race on the same type the first
// stored result wins.
//
// Cache is safe for concurrent use.
type Cache struct {
	descriptors  *xsync.Map[reflect.Type, *Descriptor]
	names        *xsync.Map[reflect.Type, string]
	index        *xsync.ShardedMap[reflect.Type]
	aliases      *xsync.Map[reflect.Type, string]
	constructors *xsync.Map[reflect.Type, Constructor]
	collections  *xsync.Map[reflect.Type, *collection]

	group  singleflight.Group
	hits   *atomic.Uint64
	misses *atomic.Uint64
}

// Constructor produces a fresh value for a registered type
type Constructor func() any

// Option configures a Cache
type Option interface {
	// Apply sets the Option value of a cache.
	Apply(*Cache)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Cache)

// Apply applies the option to the cache
func (f OptionFunc) Apply(c *Cache) {
	f(c)
}

// WithConstructor registers the constructor used to instantiate t
func WithConstructor(t reflect.Type, fn Constructor) Option {
	return OptionFunc(func(c *Cache) {
		if t != nil && fn != nil {
			c.constructors.Set(t, fn)
		}
	})
}

// WithTypeName overrides the wire name of t
func WithTypeName(t reflect.Type, name string) Option {
	return OptionFunc(func(c *Cache) {
		if t != nil && name != "" {
			c.aliases.Set(t, name)
		}
	})
}

// New creates a Cache
func New(opts ...Option) *Cache {
	cache := &Cache{
		descriptors:  xsync.NewMap[reflect.Type, *Descriptor](),
		names:        xsync.NewMap[reflect.Type, string](),
		index:        xsync.NewShardedMap[reflect.Type](0),
		aliases:      xsync.NewMap[reflect.Type, string](),
		constructors: xsync.NewMap[reflect.Type, Constructor](),
		collections:  xsync.NewMap[reflect.Type, *collection](),
		hits:         atomic.NewUint64(0),
		misses:       atomic.NewUint64(0),
	}
	for _, opt := range opts {
		opt.Apply(cache)
	}
	return cache
}

var (
	defaultCache *Cache
	defaultOnce  sync.Once
)

// Default returns the process-wide cache, creating it on first use
func Default() *Cache {
	defaultOnce.Do(func() {
		defaultCache = New()
	})
	return defaultCache
}

// Stats returns the current hit and miss counters
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// Describe returns the descriptor of t, computing it on first use.
// Concurrent first uses of the same type share a single computation.
func (c *Cache) Describe(t reflect.Type) *Descriptor {
	if descriptor, ok := c.descriptors.Get(t); ok {
		c.hits.Inc()
		return descriptor
	}

	c.misses.Inc()
	key := fmt.Sprintf("%s@%p", t.String(), t)
	result, _, _ := c.group.Do(key, func() (any, error) {
		if descriptor, ok := c.descriptors.Get(t); ok {
			return descriptor, nil
		}
		descriptor, _ := c.descriptors.LoadOrStore(t, c.describe(t))
		return descriptor, nil
	})
	return result.(*Descriptor)
}
