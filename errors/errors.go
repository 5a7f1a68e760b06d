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

package errors

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidArgument is returned when a public entry point receives a nil
	// stream, a nil type or any other argument that violates its contract.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFramingCorrupted is returned when a declared payload length does not
	// match the bytes consumed by the matching decode, or when the stream ends
	// before a declared length has been read. It is fatal for the whole call.
	ErrFramingCorrupted = errors.New("framing corrupted")

	// ErrFieldNameCollision is returned when two serializable fields of the same
	// type share a wire name. It is fatal and surfaces at first use of the type.
	ErrFieldNameCollision = errors.New("field name collision")

	// ErrConstructorMissing is returned when a type requires construction but no
	// constructor has been registered for it, or when the type cannot be
	// instantiated at all (interfaces, channels, unsafe pointers).
	ErrConstructorMissing = errors.New("constructor missing")

	// ErrUnsupportedKind is returned when a serializer is handed a kind or an
	// underlying width it has no wire encoding for.
	ErrUnsupportedKind = errors.New("unsupported kind")

	// ErrNoSerializer is returned when no registered serializer can handle a type.
	ErrNoSerializer = errors.New("no suitable serializer")

	// ErrTypeNotResolved is returned when a wire type name cannot be mapped back
	// to a runtime type.
	ErrTypeNotResolved = errors.New("type not resolved")

	// ErrTypeMismatch is returned when a decoded value is not assignable to the
	// type expected by its destination.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnknownField is returned when a decoded field name does not exist on the
	// target type.
	ErrUnknownField = errors.New("unknown field")

	// ErrAddOperationMissing is returned when a decoded collection element has no
	// matching add operation on the collection type.
	ErrAddOperationMissing = errors.New("add operation missing")

	// ErrCallbackUnresolved is returned when a callback target cannot be
	// re-resolved at decode time.
	ErrCallbackUnresolved = errors.New("callback target not resolved")

	// ErrUnresolvedReference is returned when a back-reference points at an ID
	// that has not been decoded in the current session.
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// fatal lists the structural failures that abort the enclosing operation.
var fatal = []error{
	ErrInvalidArgument,
	ErrFramingCorrupted,
	ErrFieldNameCollision,
	ErrConstructorMissing,
}

// IsFatal reports whether err must abort the enclosing encode or decode
// instead of being logged and discarded at the nearest value boundary.
// Errors that carry none of the sentinels of this package (writer I/O
// failures for instance) are fatal as well.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range fatal {
		if errors.Is(err, target) {
			return true
		}
	}
	return !isRecoverable(err)
}

func isRecoverable(err error) bool {
	for _, target := range []error{
		ErrUnsupportedKind,
		ErrNoSerializer,
		ErrTypeNotResolved,
		ErrTypeMismatch,
		ErrUnknownField,
		ErrAddOperationMissing,
		ErrCallbackUnresolved,
		ErrUnresolvedReference,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// NewErrFramingCorrupted formats an ErrFramingCorrupted with the given detail.
func NewErrFramingCorrupted(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFramingCorrupted, fmt.Sprintf(format, args...))
}

// NewErrFieldNameCollision formats an ErrFieldNameCollision for the given type and wire name.
func NewErrFieldNameCollision(t reflect.Type, name string) error {
	return fmt.Errorf("type=(%s) field=(%s) %w", t, name, ErrFieldNameCollision)
}

// NewErrConstructorMissing formats an ErrConstructorMissing for the given type.
func NewErrConstructorMissing(t reflect.Type) error {
	return fmt.Errorf("type=(%s) %w", t, ErrConstructorMissing)
}

// NewErrUnsupportedKind formats an ErrUnsupportedKind for the given type.
func NewErrUnsupportedKind(t reflect.Type) error {
	return fmt.Errorf("type=(%s) kind=(%s) %w", t, t.Kind(), ErrUnsupportedKind)
}

// NewErrNoSerializer formats an ErrNoSerializer for the given type.
func NewErrNoSerializer(t reflect.Type) error {
	return fmt.Errorf("type=(%s) %w", t, ErrNoSerializer)
}

// NewErrTypeNotResolved formats an ErrTypeNotResolved for the given wire name.
func NewErrTypeNotResolved(name string) error {
	return fmt.Errorf("name=(%s) %w", name, ErrTypeNotResolved)
}

// NewErrTypeMismatch formats an ErrTypeMismatch between an expected and an actual type.
func NewErrTypeMismatch(expected, actual reflect.Type) error {
	return fmt.Errorf("expected=(%s) actual=(%s) %w", expected, actual, ErrTypeMismatch)
}

// NewErrUnknownField formats an ErrUnknownField for the given type and field name.
func NewErrUnknownField(t reflect.Type, name string) error {
	return fmt.Errorf("type=(%s) field=(%s) %w", t, name, ErrUnknownField)
}

// NewErrAddOperationMissing formats an ErrAddOperationMissing for the given
// collection and element types.
func NewErrAddOperationMissing(collection, element reflect.Type) error {
	return fmt.Errorf("collection=(%s) element=(%s) %w", collection, element, ErrAddOperationMissing)
}

// NewErrCallbackUnresolved wraps a base error with ErrCallbackUnresolved.
func NewErrCallbackUnresolved(err error) error {
	return errors.Join(ErrCallbackUnresolved, err)
}

// NewErrUnresolvedReference formats an ErrUnresolvedReference for the given reference ID.
func NewErrUnresolvedReference(id int64) error {
	return fmt.Errorf("id=(%d) %w", id, ErrUnresolvedReference)
}
