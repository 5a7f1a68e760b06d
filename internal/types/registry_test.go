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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type order struct {
	ID string
}

func TestRegistry(t *testing.T) {
	t.Run("With bindings by wire name", func(t *testing.T) {
		registry := NewRegistry()
		rtype := reflect.TypeFor[order]()
		registry.Register("shop.Order", rtype)

		actual, ok := registry.TypeOf(" shop.Order ")
		require.True(t, ok)
		assert.Equal(t, rtype, actual)
		assert.Equal(t, map[string]reflect.Type{"shop.Order": rtype}, registry.TypesMap())

		// wire names are case-sensitive
		assert.False(t, registry.Exists("shop.order"))

		registry.Register("shop.Order", reflect.TypeFor[*order]())
		actual, _ = registry.TypeOf("shop.Order")
		assert.Equal(t, reflect.TypeFor[*order](), actual)

		registry.Deregister("shop.Order")
		assert.Empty(t, registry.TypesMap())
	})
	t.Run("With nil type ignored", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register("nothing", nil)
		assert.False(t, registry.Exists("nothing"))
	})
	t.Run("With ReflectType", func(t *testing.T) {
		rtype := reflect.TypeFor[order]()
		assert.Equal(t, rtype, ReflectType(rtype))
		assert.Equal(t, rtype, ReflectType(order{}))
		assert.Equal(t, reflect.PointerTo(rtype), ReflectType(&order{}))
	})
}
