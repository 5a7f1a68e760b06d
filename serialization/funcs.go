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
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/tochemey/graphwire/internal/xsync"
)

// FuncRegistry maps the runtime names of functions to the functions
// themselves. Callbacks are written by name and rebound on decode through
// the registry.
type FuncRegistry struct {
	funcs *xsync.Map[string, reflect.Value]
}

// NewFuncRegistry creates an empty FuncRegistry
func NewFuncRegistry() *FuncRegistry {
	return &FuncRegistry{funcs: xsync.NewMap[string, reflect.Value]()}
}

// Register adds the given functions. Method values and closures are
// registered under the name of their code, so every closure created by the
// same literal resolves to the one registered.
func (r *FuncRegistry) Register(fns ...any) error {
	for _, fn := range fns {
		value := reflect.ValueOf(fn)
		if !value.IsValid() || value.Kind() != reflect.Func || value.IsNil() {
			return fmt.Errorf("%T is not a func", fn)
		}
		declaring, method := funcName(value)
		r.funcs.Set(declaring+"."+method, value)
	}
	return nil
}

// Lookup returns the function registered under its declaring and method names
func (r *FuncRegistry) Lookup(declaring, method string) (reflect.Value, bool) {
	return r.funcs.Get(declaring + "." + method)
}

// Len returns the number of registered functions
func (r *FuncRegistry) Len() int {
	return r.funcs.Len()
}

// funcName splits the runtime name of fn into the name of its declaring
// scope and its own name
func funcName(fn reflect.Value) (declaring, method string) {
	name := "unknown"
	if f := runtime.FuncForPC(fn.Pointer()); f != nil {
		name = f.Name()
	}
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return "", name
	}
	return name[:dot], name[dot+1:]
}
