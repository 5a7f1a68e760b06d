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

// Package reftable tracks object identity within a single encode or decode
// call so that shared and cyclic references are written once.
package reftable

import (
	"reflect"
	"unsafe"
)

// Key identifies a referenced object: its address, its type and, for
// slices, its length. Two slices over the same array with different
// lengths are distinct objects.
type Key struct {
	pointer unsafe.Pointer
	rtype   reflect.Type
	length  int
}

// KeyOf returns the identity key of v. Only pointers, maps, slices, funcs
// and channels carry identity; nil values carry none.
func KeyOf(v reflect.Value) (Key, bool) {
	if !v.IsValid() {
		return Key{}, false
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if v.IsNil() {
			return Key{}, false
		}
		return Key{pointer: v.UnsafePointer(), rtype: v.Type()}, true
	case reflect.Slice:
		if v.IsNil() {
			return Key{}, false
		}
		return Key{pointer: v.UnsafePointer(), rtype: v.Type(), length: v.Len()}, true
	case reflect.Func:
		if v.IsNil() {
			return Key{}, false
		}
		// the code pointer: closures over the same function share it
		return Key{pointer: unsafe.Pointer(v.Pointer()), rtype: v.Type()}, true
	default:
		return Key{}, false
	}
}

// Table maps identities to reference IDs on encode and reference IDs to
// decoded objects on decode. IDs start at zero and grow by one in first
// encounter order.
//
// Table is not safe for concurrent use: each call owns its own.
type Table struct {
	ids     map[Key]int64
	arena   []Key
	objects map[int64]reflect.Value
	next    int64
}

// New creates an empty Table
func New() *Table {
	return &Table{
		ids:     make(map[Key]int64),
		objects: make(map[int64]reflect.Value),
	}
}

// Lookup returns the ID already allocated to key
func (t *Table) Lookup(key Key) (int64, bool) {
	id, ok := t.ids[key]
	return id, ok
}

// Allocate assigns the next ID to key and remembers v under it
func (t *Table) Allocate(key Key, v reflect.Value) int64 {
	id := t.next
	t.next++
	t.ids[key] = id
	t.arena = append(t.arena, key)
	t.objects[id] = v
	return id
}

// Mark returns the next ID to be allocated. Pass it to Rollback to forget
// every entry allocated afterwards.
func (t *Table) Mark() int64 {
	return t.next
}

// Rollback removes every entry whose ID is greater than or equal to mark
func (t *Table) Rollback(mark int64) {
	if mark < 0 || mark >= t.next {
		return
	}
	for id := mark; id < t.next; id++ {
		delete(t.ids, t.arena[id])
		delete(t.objects, id)
	}
	t.arena = t.arena[:mark]
	t.next = mark
}

// Get returns the object registered under id
func (t *Table) Get(id int64) (reflect.Value, bool) {
	v, ok := t.objects[id]
	return v, ok
}

// Register binds a decoded object to an ID read from the wire
func (t *Table) Register(id int64, v reflect.Value) {
	t.objects[id] = v
	if id >= t.next {
		t.next = id + 1
	}
}

// Replace rebinds id to v. Slices are registered as an empty shell and
// replaced once their elements have been appended.
func (t *Table) Replace(id int64, v reflect.Value) {
	if _, ok := t.objects[id]; ok {
		t.objects[id] = v
	}
}

// Len returns the number of registered objects
func (t *Table) Len() int {
	return len(t.objects)
}
