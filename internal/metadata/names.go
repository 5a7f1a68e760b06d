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
	"math"
	"reflect"
	"strconv"
	"strings"
)

var builtins = map[string]reflect.Type{
	"bool":         reflect.TypeFor[bool](),
	"int":          reflect.TypeFor[int](),
	"int8":         reflect.TypeFor[int8](),
	"int16":        reflect.TypeFor[int16](),
	"int32":        reflect.TypeFor[int32](),
	"int64":        reflect.TypeFor[int64](),
	"uint":         reflect.TypeFor[uint](),
	"uint8":        reflect.TypeFor[uint8](),
	"uint16":       reflect.TypeFor[uint16](),
	"uint32":       reflect.TypeFor[uint32](),
	"uint64":       reflect.TypeFor[uint64](),
	"uintptr":      reflect.TypeFor[uintptr](),
	"float32":      reflect.TypeFor[float32](),
	"float64":      reflect.TypeFor[float64](),
	"complex64":    reflect.TypeFor[complex64](),
	"complex128":   reflect.TypeFor[complex128](),
	"string":       reflect.TypeFor[string](),
	"error":        reflect.TypeFor[error](),
	"interface {}": reflect.TypeFor[any](),
}

// NameOf returns the wire name of t.
//
// The name is, in order of precedence, the alias registered with
// WithTypeName, the Name of the type contract, or the package-qualified
// type name. Unnamed composites are spelled from their element names:
// "*X", "[]X", "[N]X" and "map[K]V".
func (c *Cache) NameOf(t reflect.Type) string {
	if name, ok := c.names.Get(t); ok {
		return name
	}
	name := c.nameOf(t)
	name, _ = c.names.LoadOrStore(t, name)
	c.index.LoadOrStore(name, t)
	return name
}

func (c *Cache) nameOf(t reflect.Type) string {
	if alias, ok := c.aliases.Get(t); ok {
		return alias
	}

	if t.Name() != "" {
		if t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer {
			if options, ok := contractOf(t); ok && options.Name != "" {
				return options.Name
			}
		}
		if t.PkgPath() == "" {
			return t.Name()
		}
		return t.PkgPath() + "." + t.Name()
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + c.NameOf(t.Elem())
	case reflect.Slice:
		return "[]" + c.NameOf(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + c.NameOf(t.Elem())
	case reflect.Map:
		return "map[" + c.NameOf(t.Key()) + "]" + c.NameOf(t.Elem())
	default:
		return t.String()
	}
}

// TypeFromName maps a wire name back to a runtime type. Builtin names are
// answered first, then the resolver, then the names this cache has already
// produced. Composite spellings are decomposed and rebuilt from their parts.
func (c *Cache) TypeFromName(name string, resolver Resolver) (reflect.Type, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}

	if t, ok := builtins[name]; ok {
		return t, true
	}

	if resolver != nil {
		if t, ok := resolver.ResolveType(name); ok && t != nil {
			return t, true
		}
	}

	if t, ok := c.index.Get(name); ok {
		return t, true
	}

	switch {
	case strings.HasPrefix(name, "*"):
		elem, ok := c.TypeFromName(name[1:], resolver)
		if !ok {
			return nil, false
		}
		return reflect.PointerTo(elem), true

	case strings.HasPrefix(name, "[]"):
		elem, ok := c.TypeFromName(name[2:], resolver)
		if !ok {
			return nil, false
		}
		return reflect.SliceOf(elem), true

	case strings.HasPrefix(name, "["):
		end := strings.IndexByte(name, ']')
		if end < 0 {
			return nil, false
		}
		length, err := strconv.Atoi(name[1:end])
		if err != nil || length < 0 {
			return nil, false
		}
		elem, ok := c.TypeFromName(name[end+1:], resolver)
		if !ok {
			return nil, false
		}
		// the array must fit in the address space
		if size := elem.Size(); size > 0 && uintptr(length) > uintptr(math.MaxInt)/size {
			return nil, false
		}
		return reflect.ArrayOf(length, elem), true

	case strings.HasPrefix(name, "map["):
		end := matchingBracket(name, len("map"))
		if end < 0 {
			return nil, false
		}
		key, ok := c.TypeFromName(name[len("map["):end], resolver)
		if !ok || !key.Comparable() {
			return nil, false
		}
		elem, ok := c.TypeFromName(name[end+1:], resolver)
		if !ok {
			return nil, false
		}
		return reflect.MapOf(key, elem), true
	}

	return nil, false
}

// matchingBracket returns the index of the ']' closing the '[' at open
func matchingBracket(s string, open int) int {
	if open >= len(s) || s[open] != '[' {
		return -1
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
