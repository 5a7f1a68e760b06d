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

// Package bytecodec reads and writes the fixed-width little-endian scalars and
// length-prefixed strings that the graph wire format is built from.
package bytecodec

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

const (
	// DefaultMaxPayloadSize bounds any single length prefix read from a stream
	DefaultMaxPayloadSize = 64 << 20
	// DefaultMaxDepth bounds how deep nested payloads may be read
	DefaultMaxDepth = 1 << 14

	readChunk = 32 << 10
)

// Option configures a Writer or a Reader
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*config)

// Apply applies the option to the config
func (f OptionFunc) Apply(c *config) {
	f(c)
}

type config struct {
	encoding       encoding.Encoding
	maxPayloadSize int
	maxDepth       int
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		encoding:       unicode.UTF8,
		maxPayloadSize: DefaultMaxPayloadSize,
		maxDepth:       DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	return cfg
}

// WithEncoding sets the text encoding used for strings
func WithEncoding(enc encoding.Encoding) Option {
	return OptionFunc(func(c *config) {
		if enc != nil {
			c.encoding = enc
		}
	})
}

// WithMaxPayloadSize sets the largest length prefix a Reader accepts
func WithMaxPayloadSize(size int) Option {
	return OptionFunc(func(c *config) {
		if size > 0 {
			c.maxPayloadSize = size
		}
	})
}

// WithMaxDepth sets how many nested payloads a Reader descends into
func WithMaxDepth(depth int) Option {
	return OptionFunc(func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	})
}

// Go strings already hold UTF-8 bytes; transcoding them would replace
// ill-formed sequences instead of preserving them.
func isNative(enc encoding.Encoding) bool {
	return enc == nil || enc == unicode.UTF8 || enc == encoding.Nop
}
