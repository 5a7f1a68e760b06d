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

// Package bufferpool recycles the buffers nested payloads are staged in
// until their length prefix can be written.
package bufferpool

import (
	"bytes"
	"sync"
)

// DefaultMaxRetained is the largest buffer capacity handed back to Pool.
const DefaultMaxRetained = 1 << 20

// Pool is the process-wide pool used by encoders.
var Pool = New(DefaultMaxRetained)

// BufferPool is a sync.Pool of bytes.Buffer. Buffers that grew past
// maxRetained are left to the garbage collector.
type BufferPool struct {
	pool        sync.Pool
	maxRetained int
}

// New creates a BufferPool. A non-positive maxRetained keeps every buffer.
func New(maxRetained int) *BufferPool {
	p := &BufferPool{maxRetained: maxRetained}
	p.pool.New = func() any { return new(bytes.Buffer) }
	return p
}

// Get returns an empty buffer
func (p *BufferPool) Get() *bytes.Buffer {
	buf := p.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// Put hands buf back. The caller must not use it afterwards.
func (p *BufferPool) Put(buf *bytes.Buffer) {
	if buf == nil {
		return
	}
	if p.maxRetained > 0 && buf.Cap() > p.maxRetained {
		return
	}
	p.pool.Put(buf)
}
