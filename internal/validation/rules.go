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
	"fmt"
	"reflect"
	"strings"
)

// ValidatorFunc adapts a plain function to a Validator.
type ValidatorFunc func() error

// Validate calls f.
func (f ValidatorFunc) Validate() error { return f() }

// Assertion returns a rule failing with message when condition is false.
func Assertion(condition bool, message string) Validator {
	return ValidatorFunc(func() error {
		if condition {
			return nil
		}
		return errors.New(message)
	})
}

// NotBlank returns a rule failing when value is empty after trimming.
func NotBlank(name, value string) Validator {
	return ValidatorFunc(func() error {
		if strings.TrimSpace(value) == "" {
			return required(name)
		}
		return nil
	})
}

// NotNil returns a rule failing when value is nil. Typed nils of nilable
// kinds fail as well.
func NotNil(name string, value any) Validator {
	return ValidatorFunc(func() error {
		if value == nil {
			return required(name)
		}
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
			if rv.IsNil() {
				return required(name)
			}
		default:
		}
		return nil
	})
}

func required(name string) error {
	return fmt.Errorf("the [%s] is required", name)
}
