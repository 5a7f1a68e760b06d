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
	"unsafe"

	goset "github.com/deckarep/golang-set/v2"
	"go.uber.org/multierr"

	gerrors "github.com/tochemey/graphwire/errors"
)

// TagName is the struct tag carrying a field wire name
const TagName = "wire"

// ContractOptions describes how a type takes part in serialization
type ContractOptions struct {
	// Name overrides the wire type name
	Name string
	// SkipConstructor makes decode start from the zero value even when a
	// constructor is registered
	SkipConstructor bool
	// RequireConstructor makes decode fail when no constructor is registered
	RequireConstructor bool
}

// Contract is implemented by types that opt into explicit field selection.
// Only the fields tagged `wire` of a contract type are serialized, exported
// or not.
type Contract interface {
	DataContract() ContractOptions
}

var contractType = reflect.TypeFor[Contract]()

// Field describes one serializable struct field
type Field struct {
	// Name is the wire name
	Name string
	// GoName is the declared field name
	GoName string
	// Type is the declared field type
	Type  reflect.Type
	index int
	// exported fields are reached through reflection directly, the others
	// through their address
	exported bool
}

// Get returns the field value of owner
func (f *Field) Get(owner reflect.Value) reflect.Value {
	if f.exported {
		return owner.Field(f.index)
	}
	if !owner.CanAddr() {
		addressable := reflect.New(owner.Type()).Elem()
		addressable.Set(owner)
		owner = addressable
	}
	field := owner.Field(f.index)
	return reflect.NewAt(f.Type, unsafe.Pointer(field.UnsafeAddr())).Elem()
}

// Set assigns value to the field of owner. owner must be addressable.
func (f *Field) Set(owner reflect.Value, value reflect.Value) {
	field := owner.Field(f.index)
	if !f.exported {
		field = reflect.NewAt(f.Type, unsafe.Pointer(field.UnsafeAddr())).Elem()
	}
	if !value.IsValid() {
		field.SetZero()
		return
	}
	field.Set(value)
}

// Descriptor is the memoized metadata of a type
type Descriptor struct {
	Type reflect.Type
	// Contract is true when the type implements Contract
	Contract bool
	Options  ContractOptions
	Fields   []*Field

	byName map[string]*Field
	err    error
}

// Err returns the error found while describing the type, if any
func (d *Descriptor) Err() error {
	return d.err
}

// Field returns the field with the given wire name
func (d *Descriptor) Field(name string) (*Field, bool) {
	field, ok := d.byName[name]
	return field, ok
}

// FieldsOf returns the serializable fields of t in declaration order.
// A wire name collision is reported every time the type is used.
func (c *Cache) FieldsOf(t reflect.Type) ([]*Field, error) {
	descriptor := c.Describe(t)
	if descriptor.err != nil {
		return nil, descriptor.err
	}
	return descriptor.Fields, nil
}

// FieldOf returns the field of t with the given wire name
func (c *Cache) FieldOf(t reflect.Type, name string) (*Field, bool) {
	return c.Describe(t).Field(name)
}

// SkipConstructorOf reports whether decode must bypass the constructor of t
func (c *Cache) SkipConstructorOf(t reflect.Type) bool {
	return c.Describe(t).Options.SkipConstructor
}

// IsContract reports whether t implements Contract
func (c *Cache) IsContract(t reflect.Type) bool {
	return c.Describe(t).Contract
}

func (c *Cache) describe(t reflect.Type) *Descriptor {
	descriptor := &Descriptor{
		Type:   t,
		byName: make(map[string]*Field),
	}

	if options, ok := contractOf(t); ok {
		descriptor.Contract = true
		descriptor.Options = options
	}

	if t.Kind() != reflect.Struct {
		return descriptor
	}

	seen := goset.NewThreadUnsafeSet[string]()
	var collisions error
	for i := range t.NumField() {
		structField := t.Field(i)
		name, ok := wireName(structField, descriptor.Contract)
		if !ok {
			continue
		}

		if !seen.Add(name) {
			collisions = multierr.Append(collisions, gerrors.NewErrFieldNameCollision(t, name))
			continue
		}

		field := &Field{
			Name:     name,
			GoName:   structField.Name,
			Type:     structField.Type,
			index:    i,
			exported: structField.IsExported(),
		}
		descriptor.Fields = append(descriptor.Fields, field)
		descriptor.byName[name] = field
	}

	descriptor.err = collisions
	return descriptor
}

// wireName returns the wire name of a struct field and whether it is serialized.
// Contract types serialize tagged fields only; other types serialize every
// exported field not tagged "-".
func wireName(field reflect.StructField, contract bool) (string, bool) {
	tag, tagged := field.Tag.Lookup(TagName)
	name, _, _ := strings.Cut(tag, ",")
	name = strings.TrimSpace(name)
	if name == "-" {
		return "", false
	}

	if contract {
		if !tagged {
			return "", false
		}
	} else if !field.IsExported() {
		return "", false
	}

	if name == "" {
		name = field.Name
	}
	return name, true
}

// contractOf reads the contract options of t. Value and pointer receivers
// are both honored.
func contractOf(t reflect.Type) (ContractOptions, bool) {
	switch {
	case t.Kind() == reflect.Interface:
		return ContractOptions{}, false
	case t.Implements(contractType) && t.Kind() == reflect.Pointer:
		return reflect.New(t.Elem()).Interface().(Contract).DataContract(), true
	case reflect.PointerTo(t).Implements(contractType):
		return reflect.New(t).Interface().(Contract).DataContract(), true
	default:
		return ContractOptions{}, false
	}
}
