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

// TypeResolver maps a wire type name back to a runtime type.
//
// Names are produced on encode by the metadata cache: the contract name, an
// alias registered with WithTypeName, or the package-qualified Go type name.
// Builtin names and composite spellings ("*X", "[]X", "[N]X", "map[K]V")
// are handled before the resolver is consulted for the named parts.
type TypeResolver interface {
	ResolveType(name string) (reflect.Type, bool)
}

// TypeResolverFunc implements TypeResolver with a function
type TypeResolverFunc func(name string) (reflect.Type, bool)

// ResolveType calls f
func (f TypeResolverFunc) ResolveType(name string) (reflect.Type, bool) {
	return f(name)
}

// resolverChain asks each resolver in turn
type resolverChain []TypeResolver

func (c resolverChain) ResolveType(name string) (reflect.Type, bool) {
	for _, resolver := range c {
		if resolver == nil {
			continue
		}
		if t, ok := resolver.ResolveType(name); ok {
			return t, true
		}
	}
	return nil, false
}
