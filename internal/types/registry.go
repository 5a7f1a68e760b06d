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

package types

import (
	"maps"
	"reflect"
	"strings"

	"github.com/tochemey/graphwire/internal/xsync"
)

// Registry maps wire type names to their runtime types
type Registry interface {
	// Register binds name to the given type. An existing binding is replaced.
	Register(name string, rtype reflect.Type)
	// Deregister removes the binding of name
	Deregister(name string)
	// Exists return true when name is bound
	Exists(name string) bool
	// TypesMap returns a snapshot of the registered bindings
	TypesMap() map[string]reflect.Type
	// TypeOf returns the type bound to name
	TypeOf(name string) (reflect.Type, bool)
}

type registry struct {
	typesMap *xsync.Map[string, reflect.Type]
}

var _ Registry = (*registry)(nil)

// NewRegistry creates a new types registry
func NewRegistry() Registry {
	return &registry{
		typesMap: xsync.NewMap[string, reflect.Type](),
	}
}

// Register binds name to the given type
func (r *registry) Register(name string, rtype reflect.Type) {
	if rtype == nil {
		return
	}
	r.typesMap.Set(trim(name), rtype)
}

// Deregister removes the binding of name
func (r *registry) Deregister(name string) {
	r.typesMap.Delete(trim(name))
}

// Exists return true when name is bound
func (r *registry) Exists(name string) bool {
	_, ok := r.typesMap.Get(trim(name))
	return ok
}

// TypesMap returns a snapshot of the registered bindings
func (r *registry) TypesMap() map[string]reflect.Type {
	return maps.Collect(r.typesMap.All())
}

// TypeOf returns the type bound to name
func (r *registry) TypeOf(name string) (reflect.Type, bool) {
	return r.typesMap.Get(trim(name))
}

// ReflectType returns the runtime type of v. A reflect.Type is returned as is.
func ReflectType(v any) reflect.Type {
	switch rtype := v.(type) {
	case reflect.Type:
		return rtype
	default:
		return reflect.TypeOf(v)
	}
}

// Go type names are case-sensitive, only surrounding spaces are dropped
func trim(name string) string {
	return strings.TrimSpace(name)
}
