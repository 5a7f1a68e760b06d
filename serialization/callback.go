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

	"github.com/tochemey/graphwire/bytecodec"
	gerrors "github.com/tochemey/graphwire/errors"
)

// callbackSerializer handles func values and delegates. Callbacks carry
// identity: the payload is a reference header followed, on first
// occurrence, by the target count and for each target its name, the name
// of its declaring scope and the wire names of its parameter types.
//
// On decode every target is looked up in the FuncRegistry of the
// Marshaller. When any target cannot be rebound the whole chain is
// discarded.
type callbackSerializer struct{}

var _ Serializer = (*callbackSerializer)(nil)

type callbackTarget struct {
	method    string
	declaring string
	params    []string
}

// CanHandle reports whether t is a func or a delegate
func (callbackSerializer) CanHandle(t reflect.Type) bool {
	return t.Kind() == reflect.Func || (t.Kind() == reflect.Pointer && t.Implements(invocationListType))
}

// Serialize writes the targets of v
func (callbackSerializer) Serialize(session *Session, w *bytecodec.Writer, v reflect.Value) error {
	var targets []reflect.Value
	if v.Kind() == reflect.Func {
		targets = []reflect.Value{v}
	} else {
		targets = v.Interface().(invocationList).invocationTargets()
	}

	return session.WriteReference(w, v, func(w *bytecodec.Writer) error {
		if err := w.WriteLength(len(targets)); err != nil {
			return err
		}
		for _, target := range targets {
			declaring, method := funcName(target)
			if err := w.WriteString(method); err != nil {
				return err
			}
			if err := w.WriteString(declaring); err != nil {
				return err
			}

			signature := target.Type()
			if err := w.WriteLength(signature.NumIn()); err != nil {
				return err
			}
			for i := range signature.NumIn() {
				if err := w.WriteString(session.cache().NameOf(signature.In(i))); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Deserialize rebinds the targets of a callback of type t
func (callbackSerializer) Deserialize(session *Session, r *bytecodec.Reader, t reflect.Type) (reflect.Value, error) {
	fnType := t
	if t.Kind() == reflect.Pointer {
		fnType = reflect.New(t.Elem()).Interface().(invocationList).targetType()
	}

	return session.ReadReference(r, t,
		func() (reflect.Value, error) {
			if t.Kind() == reflect.Func {
				// a func is registered once its target is bound
				return reflect.Value{}, nil
			}
			return reflect.New(t.Elem()), nil
		},
		func(r *bytecodec.Reader, object reflect.Value) (reflect.Value, error) {
			targets, err := readCallbackTargets(r)
			if err != nil {
				return reflect.Value{}, err
			}

			bound := make([]reflect.Value, 0, len(targets))
			for _, target := range targets {
				fn, err := bindCallback(session, target, fnType)
				if err != nil {
					return reflect.Value{}, gerrors.NewErrCallbackUnresolved(err)
				}
				bound = append(bound, fn)
			}

			if t.Kind() == reflect.Func {
				if len(bound) != 1 {
					return reflect.Value{}, gerrors.NewErrCallbackUnresolved(fmt.Errorf("func of type=(%s) holds %d targets", t, len(bound)))
				}
				return bound[0], nil
			}
			object.Interface().(invocationList).setInvocationTargets(bound)
			return object, nil
		},
	)
}

func readCallbackTargets(r *bytecodec.Reader) ([]callbackTarget, error) {
	count, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	targets := make([]callbackTarget, 0, min(count, preallocLimit))
	for range count {
		var target callbackTarget
		if target.method, err = r.ReadString(); err != nil {
			return nil, err
		}
		if target.declaring, err = r.ReadString(); err != nil {
			return nil, err
		}
		params, err := r.ReadLength()
		if err != nil {
			return nil, err
		}
		target.params = make([]string, 0, min(params, preallocLimit))
		for range params {
			param, err := r.ReadString()
			if err != nil {
				return nil, err
			}
			target.params = append(target.params, param)
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// bindCallback finds the registered function named by target and checks
// that its parameters match the ones written and that it fits fnType
func bindCallback(session *Session, target callbackTarget, fnType reflect.Type) (reflect.Value, error) {
	fn, ok := session.Funcs().Lookup(target.declaring, target.method)
	if !ok {
		return reflect.Value{}, fmt.Errorf("func %s.%s is not registered", target.declaring, target.method)
	}

	signature := fn.Type()
	if signature.NumIn() != len(target.params) {
		return reflect.Value{}, fmt.Errorf("func %s.%s takes %d parameters, %d expected", target.declaring, target.method, signature.NumIn(), len(target.params))
	}
	for i, param := range target.params {
		if name := session.cache().NameOf(signature.In(i)); name != param {
			return reflect.Value{}, fmt.Errorf("func %s.%s parameter %d is %s, %s expected", target.declaring, target.method, i, name, param)
		}
	}
	if !signature.ConvertibleTo(fnType) {
		return reflect.Value{}, fmt.Errorf("func %s.%s: %w", target.declaring, target.method, gerrors.NewErrTypeMismatch(fnType, signature))
	}
	return fn.Convert(fnType), nil
}
