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
	"reflect"
	"strings"
)

// AppendFunc adds elem to the collection
type AppendFunc func(collection, elem reflect.Value)

// CountFunc returns the number of elements of a collection
type CountFunc func(collection reflect.Value) int

// Appender is an add operation discovered on a collection type
type Appender struct {
	// Name is the method name
	Name string
	// Elem is the parameter type the method accepts
	Elem  reflect.Type
	index int
}

// Enumerator walks the elements of a collection
type Enumerator struct {
	// Elem is the static element type yielded
	Elem reflect.Type
	each func(collection reflect.Value, yield func(reflect.Value) bool)
}

// Each calls yield for every element until yield returns false
func (e *Enumerator) Each(collection reflect.Value, yield func(reflect.Value) bool) {
	e.each(collection, yield)
}

type collection struct {
	appenders  []Appender
	count      CountFunc
	enumerator *Enumerator
}

var countMethods = []string{"Len", "Count", "Cardinality"}

// AppendOperationOf returns the single-argument methods of t whose name
// starts with "Add", in method set order.
func (c *Cache) AppendOperationOf(t reflect.Type) []Appender {
	return c.collectionOf(t).appenders
}

// AppendFor selects the add operation of t best suited to an element of
// type elem: an exact parameter match first, then a concrete assignable
// parameter, then a non-empty interface parameter, then an empty interface.
func (c *Cache) AppendFor(t, elem reflect.Type) (AppendFunc, bool) {
	const none = 4
	best, bestRank := -1, none
	appenders := c.collectionOf(t).appenders
	for i, appender := range appenders {
		rank := none
		switch {
		case appender.Elem == elem:
			rank = 0
		case appender.Elem.Kind() != reflect.Interface && elem.AssignableTo(appender.Elem):
			rank = 1
		case appender.Elem.Kind() == reflect.Interface && appender.Elem.NumMethod() > 0 && elem.Implements(appender.Elem):
			rank = 2
		case appender.Elem.Kind() == reflect.Interface && appender.Elem.NumMethod() == 0:
			rank = 3
		}
		if rank < bestRank {
			best, bestRank = i, rank
		}
	}
	if best < 0 {
		return nil, false
	}

	index := appenders[best].index
	return func(collection, elem reflect.Value) {
		collection.Method(index).Call([]reflect.Value{elem})
	}, true
}

// CountAccessorOf returns the Len, Count or Cardinality method of t
func (c *Cache) CountAccessorOf(t reflect.Type) (CountFunc, bool) {
	count := c.collectionOf(t).count
	return count, count != nil
}

// EnumeratorOf returns how to walk the elements of t. An All method
// returning an iter.Seq is preferred over an Each method taking a callback
// that returns true to stop.
func (c *Cache) EnumeratorOf(t reflect.Type) (*Enumerator, bool) {
	enumerator := c.collectionOf(t).enumerator
	return enumerator, enumerator != nil
}

// IsCollection reports whether t exposes an add operation, a count accessor
// and an enumerator.
func (c *Cache) IsCollection(t reflect.Type) bool {
	coll := c.collectionOf(t)
	return len(coll.appenders) > 0 && coll.count != nil && coll.enumerator != nil
}

func (c *Cache) collectionOf(t reflect.Type) *collection {
	if coll, ok := c.collections.Get(t); ok {
		return coll
	}
	coll, _ := c.collections.LoadOrStore(t, discoverCollection(t))
	return coll
}

func discoverCollection(t reflect.Type) *collection {
	coll := new(collection)
	if t.Kind() == reflect.Interface {
		return coll
	}

	for i := range t.NumMethod() {
		method := t.Method(i)
		if strings.HasPrefix(method.Name, "Add") && method.Type.NumIn() == 2 && !method.Type.IsVariadic() {
			coll.appenders = append(coll.appenders, Appender{
				Name:  method.Name,
				Elem:  method.Type.In(1),
				index: i,
			})
		}
	}

	for _, name := range countMethods {
		method, ok := t.MethodByName(name)
		if !ok || method.Type.NumIn() != 1 || method.Type.NumOut() != 1 || method.Type.Out(0).Kind() != reflect.Int {
			continue
		}
		index := method.Index
		coll.count = func(collection reflect.Value) int {
			return int(collection.Method(index).Call(nil)[0].Int())
		}
		break
	}

	if method, ok := t.MethodByName("All"); ok {
		coll.enumerator = sequenceEnumerator(method)
	}
	if coll.enumerator == nil {
		if method, ok := t.MethodByName("Each"); ok {
			coll.enumerator = callbackEnumerator(method)
		}
	}
	return coll
}

// isYield reports whether t is func(E) bool
func isYield(t reflect.Type) bool {
	return t.Kind() == reflect.Func && t.NumIn() == 1 && t.NumOut() == 1 && t.Out(0).Kind() == reflect.Bool
}

// sequenceEnumerator handles All() iter.Seq[E]
func sequenceEnumerator(method reflect.Method) *Enumerator {
	if method.Type.NumIn() != 1 || method.Type.NumOut() != 1 {
		return nil
	}
	seq := method.Type.Out(0)
	if seq.Kind() != reflect.Func || seq.NumIn() != 1 || seq.NumOut() != 0 || !isYield(seq.In(0)) {
		return nil
	}

	yieldType := seq.In(0)
	index := method.Index
	return &Enumerator{
		Elem: yieldType.In(0),
		each: func(collection reflect.Value, yield func(reflect.Value) bool) {
			sequence := collection.Method(index).Call(nil)[0]
			if sequence.IsNil() {
				return
			}
			fn := reflect.MakeFunc(yieldType, func(args []reflect.Value) []reflect.Value {
				return []reflect.Value{reflect.ValueOf(yield(args[0])).Convert(yieldType.Out(0))}
			})
			sequence.Call([]reflect.Value{fn})
		},
	}
}

// callbackEnumerator handles Each(func(E) bool) where returning true stops
func callbackEnumerator(method reflect.Method) *Enumerator {
	if method.Type.NumIn() != 2 || method.Type.NumOut() != 0 || !isYield(method.Type.In(1)) {
		return nil
	}

	callbackType := method.Type.In(1)
	index := method.Index
	return &Enumerator{
		Elem: callbackType.In(0),
		each: func(collection reflect.Value, yield func(reflect.Value) bool) {
			fn := reflect.MakeFunc(callbackType, func(args []reflect.Value) []reflect.Value {
				return []reflect.Value{reflect.ValueOf(!yield(args[0])).Convert(callbackType.Out(0))}
			})
			collection.Method(index).Call([]reflect.Value{fn})
		},
	}
}
