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

package metadata

import (
	"fmt"
	"reflect"

	gerrors "github.com/tochemey/graphwire/errors"
)

// ConstructorOf returns the constructor registered for t
func (c *Cache) ConstructorOf(t reflect.Type) (Constructor, bool) {
	return c.constructors.Get(t)
}

// Instantiate returns a new addressable value of type t.
//
// A registered constructor is used unless the type contract asks to skip it.
// Without a constructor the value is zeroed, with maps allocated and pointers
// pointing at a freshly instantiated element. Types that require a
// constructor and interface, channel and func types without one fail with
// ErrConstructorMissing.
func (c *Cache) Instantiate(t reflect.Type) (reflect.Value, error) {
	descriptor := c.Describe(t)
	value := reflect.New(t).Elem()

	if !descriptor.Options.SkipConstructor {
		if constructor, ok := c.constructors.Get(t); ok {
			produced := reflect.ValueOf(constructor())
			if !produced.IsValid() || !produced.Type().AssignableTo(t) {
				return reflect.Value{}, fmt.Errorf("constructor of type=(%s) returned %v: %w", t, produced.Kind(), gerrors.ErrConstructorMissing)
			}
			value.Set(produced)
			return value, nil
		}
		if descriptor.Options.RequireConstructor && t.Kind() != reflect.Pointer {
			return reflect.Value{}, gerrors.NewErrConstructorMissing(t)
		}
	}

	if opaque(t) {
		return reflect.Value{}, gerrors.NewErrConstructorMissing(t)
	}

	switch t.Kind() {
	case reflect.Map:
		value.Set(reflect.MakeMap(t))
	case reflect.Pointer:
		pointer := reflect.New(t.Elem())
		if !opaque(t.Elem()) {
			elem, err := c.Instantiate(t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			pointer.Elem().Set(elem)
		}
		value.Set(pointer)
	default:
	}
	return value, nil
}

// opaque kinds have no meaningful value besides nil
func opaque(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
