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
)

// invocationList is implemented by *Delegate[F] so the callback serializer
// can reach the targets of any instantiation.
type invocationList interface {
	invocationTargets() []reflect.Value
	setInvocationTargets(targets []reflect.Value)
	targetType() reflect.Type
}

var invocationListType = reflect.TypeFor[invocationList]()

// Delegate is an ordered chain of callbacks of type F, F being a func type.
// Delegates are values of the object graph: they are written as the list of
// their targets and rebound on decode against the functions registered with
// WithFuncs.
//
// A Delegate is immutable once built; Combine returns a new chain.
type Delegate[F any] struct {
	fns []F
}

var _ invocationList = (*Delegate[func()])(nil)

// NewDelegate creates a delegate invoking fns in order
func NewDelegate[F any](fns ...F) *Delegate[F] {
	d := &Delegate[F]{fns: make([]F, 0, len(fns))}
	for _, fn := range fns {
		if !isNil(reflect.ValueOf(fn)) {
			d.fns = append(d.fns, fn)
		}
	}
	return d
}

// Combine returns a delegate invoking the targets of d followed by fns
func (d *Delegate[F]) Combine(fns ...F) *Delegate[F] {
	return NewDelegate(append(d.Targets(), fns...)...)
}

// Targets returns the callbacks of the chain in invocation order
func (d *Delegate[F]) Targets() []F {
	if d == nil {
		return nil
	}
	out := make([]F, len(d.fns))
	copy(out, d.fns)
	return out
}

// Len returns the number of callbacks in the chain
func (d *Delegate[F]) Len() int {
	if d == nil {
		return 0
	}
	return len(d.fns)
}

func (d *Delegate[F]) invocationTargets() []reflect.Value {
	targets := make([]reflect.Value, len(d.fns))
	for i, fn := range d.fns {
		targets[i] = reflect.ValueOf(fn)
	}
	return targets
}

func (d *Delegate[F]) setInvocationTargets(targets []reflect.Value) {
	d.fns = make([]F, len(targets))
	for i, target := range targets {
		d.fns[i] = target.Interface().(F)
	}
}

func (d *Delegate[F]) targetType() reflect.Type {
	return reflect.TypeFor[F]()
}
