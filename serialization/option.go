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
	"reflect"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/tochemey/graphwire/bytecodec"
	"github.com/tochemey/graphwire/internal/metadata"
	"github.com/tochemey/graphwire/internal/types"
	"github.com/tochemey/graphwire/internal/validation"
	"github.com/tochemey/graphwire/log"
)

// Config holds the Marshaller settings
type Config struct {
	logger         log.Logger
	encoding       encoding.Encoding
	resolver       TypeResolver
	funcs          []any
	maxPayloadSize int
	maxDepth       int
	serializers    []Serializer
	cache          *metadata.Cache
	cacheOptions   []metadata.Option
	typeNames      map[reflect.Type]string
	cborTypes      []any
}

func newConfig() *Config {
	return &Config{
		logger:         log.DefaultLogger,
		encoding:       unicode.UTF8,
		maxPayloadSize: bytecodec.DefaultMaxPayloadSize,
		maxDepth:       bytecodec.DefaultMaxDepth,
		typeNames:      make(map[reflect.Type]string),
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	chain := validation.New().
		NotNil("logger", c.logger).
		NotNil("encoding", c.encoding).
		Assert(c.maxPayloadSize > 0, "max payload size must be positive").
		Assert(c.maxDepth > 0, "max depth must be positive")

	for rtype, name := range c.typeNames {
		chain.NotBlank("type name of "+rtype.String(), name)
	}
	for _, serializer := range c.serializers {
		chain.NotNil("serializer", serializer)
	}
	for _, fn := range c.funcs {
		chain.Assert(fn != nil && reflect.TypeOf(fn).Kind() == reflect.Func, "callback targets must be funcs")
	}
	return chain.Validate()
}

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*Config)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(config *Config)

// Apply applies the option to the config
func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithLogger sets the logger receiving diagnostics about discarded values
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(config *Config) {
		config.logger = logger
	})
}

// WithEncoding sets the text encoding used for strings. UTF-8 is the default.
func WithEncoding(enc encoding.Encoding) Option {
	return OptionFunc(func(config *Config) {
		config.encoding = enc
	})
}

// WithTypeResolver sets the resolver consulted to map wire type names back
// to runtime types. It is asked before the types registered with
// RegisterTypes.
func WithTypeResolver(resolver TypeResolver) Option {
	return OptionFunc(func(config *Config) {
		config.resolver = resolver
	})
}

// WithFuncs registers the functions a decoded callback may be bound to.
// A callback whose target is not registered cannot be decoded.
func WithFuncs(fns ...any) Option {
	return OptionFunc(func(config *Config) {
		config.funcs = append(config.funcs, fns...)
	})
}

// WithMaxPayloadSize bounds every length prefix read while decoding. It
// also bounds the memory a single decoded array or slice may reserve for
// its elements.
func WithMaxPayloadSize(size int) Option {
	return OptionFunc(func(config *Config) {
		config.maxPayloadSize = size
	})
}

// WithMaxDepth bounds how many nested payloads a decode descends into
func WithMaxDepth(depth int) Option {
	return OptionFunc(func(config *Config) {
		config.maxDepth = depth
	})
}

// WithSerializers adds custom serializers. They are consulted, in the given
// order, before the built-in ones.
func WithSerializers(serializers ...Serializer) Option {
	return OptionFunc(func(config *Config) {
		config.serializers = append(config.serializers, serializers...)
	})
}

// WithCache makes the Marshaller use the given metadata cache instead of
// the process-wide one. Constructors and type names registered through
// options are added to it.
func WithCache(cache *MetadataCache) Option {
	return OptionFunc(func(config *Config) {
		config.cache = cache
	})
}

// WithConstructor registers the function producing new instances of T on
// decode. Without one a decoded value starts from its zero value.
func WithConstructor[T any](fn func() T) Option {
	return OptionFunc(func(config *Config) {
		if fn == nil {
			return
		}
		config.cacheOptions = append(config.cacheOptions,
			metadata.WithConstructor(reflect.TypeFor[T](), func() any { return fn() }))
	})
}

// WithTypeName sets the wire name of the type of sample. sample may be a
// value or a reflect.Type. The name is registered for decoding as well.
func WithTypeName(sample any, name string) Option {
	return OptionFunc(func(config *Config) {
		rtype := types.ReflectType(sample)
		if rtype == nil {
			return
		}
		config.typeNames[rtype] = name
		config.cacheOptions = append(config.cacheOptions, metadata.WithTypeName(rtype, name))
	})
}

// WithCBORTypes routes the types of the given samples to the CBOR
// serializer instead of the reflective ones.
func WithCBORTypes(samples ...any) Option {
	return OptionFunc(func(config *Config) {
		config.cborTypes = append(config.cborTypes, samples...)
	})
}
