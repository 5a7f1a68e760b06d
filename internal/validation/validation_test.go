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

package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestChain(t *testing.T) {
	t.Run("With no rules", func(t *testing.T) {
		chain := New()
		require.Zero(t, chain.Len())
		require.NoError(t, chain.Validate())
	})
	t.Run("With passing rules", func(t *testing.T) {
		chain := New().
			Assert(true, "unused").
			NotNil("logger", new(int)).
			NotBlank("name", "shop.Order")
		require.Equal(t, 3, chain.Len())
		require.NoError(t, chain.Validate())
	})
	t.Run("With every violation reported", func(t *testing.T) {
		chain := New().
			NotBlank("name", "  ").
			Assert(false, "max payload size must be positive")
		err := chain.Validate()
		require.EqualError(t, err, "the [name] is required; max payload size must be positive")
		require.Len(t, multierr.Errors(err), 2)
		// running twice does not accumulate
		require.Len(t, multierr.Errors(chain.Validate()), 2)
	})
	t.Run("With StopAtFirst", func(t *testing.T) {
		err := New(StopAtFirst()).
			NotBlank("name", "").
			Assert(false, "never reached").
			Validate()
		require.EqualError(t, err, "the [name] is required")
	})
	t.Run("With nil validators skipped", func(t *testing.T) {
		chain := New().Add(nil, Assertion(true, ""))
		require.Equal(t, 1, chain.Len())
	})
	t.Run("With a ValidatorFunc", func(t *testing.T) {
		boom := errors.New("boom")
		err := New().Add(ValidatorFunc(func() error { return boom })).Validate()
		require.ErrorIs(t, err, boom)
	})
}

func TestNotNil(t *testing.T) {
	var (
		nilPointer *int
		nilMap     map[string]int
		nilSlice   []byte
		nilFunc    func()
		nilChan    chan int
	)
	testCases := []struct {
		name  string
		value any
		fails bool
	}{
		{name: "untyped nil", value: nil, fails: true},
		{name: "nil pointer", value: nilPointer, fails: true},
		{name: "nil map", value: nilMap, fails: true},
		{name: "nil slice", value: nilSlice, fails: true},
		{name: "nil func", value: nilFunc, fails: true},
		{name: "nil chan", value: nilChan, fails: true},
		{name: "zero int", value: 0},
		{name: "empty string", value: ""},
		{name: "pointer", value: new(int)},
		{name: "empty map", value: map[string]int{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := NotNil("value", tc.value).Validate()
			if tc.fails {
				assert.EqualError(t, err, "the [value] is required")
				return
			}
			assert.NoError(t, err)
		})
	}
}
