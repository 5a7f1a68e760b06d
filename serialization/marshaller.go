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
	"errors"
	"io"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tochemey/graphwire/bytecodec"
	gerrors "github.com/tochemey/graphwire/errors"
	"github.com/tochemey/graphwire/internal/metadata"
	"github.com/tochemey/graphwire/internal/reftable"
	"github.com/tochemey/graphwire/internal/types"
	"github.com/tochemey/graphwire/log"
)

// wellKnown are registered with every Marshaller so that polymorphic values
// of these types resolve without configuration.
var wellKnown = []reflect.Type{
	reflect.TypeFor[Char](),
	reflect.TypeFor[decimal.Decimal](),
	reflect.TypeFor[time.Time](),
	reflect.TypeFor[time.Duration](),
	reflect.TypeFor[time.Month](),
	reflect.TypeFor[time.Weekday](),
	reflect.TypeFor[uuid.UUID](),
}

var anyType = reflect.TypeFor[any]()

// Marshaller encodes and decodes object graphs.
//
// Each Serialize or Deserialize call runs in its own Session holding the
// reference table of that call, so a Marshaller is safe for concurrent use.
// The type metadata cache is shared: by default with every Marshaller of the
// process, or privately when the Marshaller is configured with
// WithConstructor, WithTypeName or WithCache.
type Marshaller struct {
	logger     log.Logger
	cache      *metadata.Cache
	registry   types.Registry
	resolver   TypeResolver
	funcs      *FuncRegistry
	dispatcher *dispatcher
	codecOpts  []bytecodec.Option
	maxPayload int
}

// New creates a Marshaller
func New(opts ...Option) (*Marshaller, error) {
	config := newConfig()
	for _, opt := range opts {
		opt.Apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Join(gerrors.ErrInvalidArgument, err)
	}

	cache := config.cache
	switch {
	case cache != nil:
		for _, opt := range config.cacheOptions {
			opt.Apply(cache)
		}
	case len(config.cacheOptions) > 0:
		cache = metadata.New(config.cacheOptions...)
	default:
		cache = metadata.Default()
	}

	funcs := NewFuncRegistry()
	if err := funcs.Register(config.funcs...); err != nil {
		return nil, errors.Join(gerrors.ErrInvalidArgument, err)
	}

	registry := types.NewRegistry()
	m := &Marshaller{
		logger:   config.logger,
		cache:    cache,
		registry: registry,
		resolver: resolverChain{config.resolver, TypeResolverFunc(registry.TypeOf)},
		funcs:    funcs,
		codecOpts: []bytecodec.Option{
			bytecodec.WithEncoding(config.encoding),
			bytecodec.WithMaxPayloadSize(config.maxPayloadSize),
			bytecodec.WithMaxDepth(config.maxDepth),
		},
		maxPayload: config.maxPayloadSize,
	}

	for _, rtype := range wellKnown {
		m.register(rtype)
	}
	for rtype := range config.typeNames {
		m.register(rtype)
	}

	cbor, err := newCBORSerializer(config.cborTypes...)
	if err != nil {
		return nil, errors.Join(gerrors.ErrInvalidArgument, err)
	}
	for _, sample := range config.cborTypes {
		m.register(types.ReflectType(sample))
	}

	serializers := make([]Serializer, 0, len(config.serializers)+11)
	serializers = append(serializers, config.serializers...)
	serializers = append(serializers,
		new(primitiveSerializer),
		new(enumSerializer),
		new(stringSerializer),
		cbor,
		new(binarySerializer),
		new(callbackSerializer),
		&collectionSerializer{cache: cache},
		new(listSerializer),
		new(mapSerializer),
		new(structSerializer),
		new(referenceSerializer),
	)
	m.dispatcher = newDispatcher(serializers)
	return m, nil
}

// RegisterTypes makes the types of the given samples resolvable by wire
// name on decode. A sample may be a value, a pointer to a value or a
// reflect.Type. Pointer samples register their element type as well.
func (m *Marshaller) RegisterTypes(samples ...any) {
	for _, sample := range samples {
		rtype := types.ReflectType(sample)
		if rtype == nil {
			continue
		}
		m.register(rtype)
		if rtype.Kind() == reflect.Pointer {
			m.register(rtype.Elem())
		}
	}
}

func (m *Marshaller) register(rtype reflect.Type) {
	m.registry.Register(m.cache.NameOf(rtype), rtype)
}

// Serializers returns the serializers in dispatch order
func (m *Marshaller) Serializers() []Serializer {
	return m.dispatcher.list()
}

// CacheStats returns the hit and miss counters of the metadata cache used
// by the Marshaller
func (m *Marshaller) CacheStats() CacheStats {
	return m.cache.Stats()
}

// Serialize writes v to w. The value is declared by its dynamic type, so
// Deserialize must be given that same type.
//
// A nil v is written as a single absent marker. Fatal errors abort the call
// with whatever has been written so far. When v itself cannot be serialized
// for a recoverable reason the absent marker is written and the error is
// returned.
func (m *Marshaller) Serialize(w io.Writer, v any) error {
	if w == nil {
		return errors.Join(gerrors.ErrInvalidArgument, errors.New("nil writer"))
	}
	writer := bytecodec.NewWriter(w, m.codecOpts...)
	value := reflect.ValueOf(v)
	if !value.IsValid() {
		return writer.WriteBool(false)
	}
	return m.newSession().encodeTop(writer, value.Type(), value)
}

// Deserialize reads a value of type t from r.
//
// An absent marker yields the zero value of t. When the value cannot be
// reconstructed for a recoverable reason the zero value is returned along
// with the error.
func (m *Marshaller) Deserialize(r io.Reader, t reflect.Type) (any, error) {
	value, err := m.decode(r, t)
	if err != nil {
		if gerrors.IsFatal(err) {
			return nil, err
		}
		return zeroOf(t), err
	}
	return value.Interface(), nil
}

// Encode writes v declared as T. When T is an interface type the dynamic
// type name of v is written so Decode can rebuild it.
func Encode[T any](m *Marshaller, w io.Writer, v T) error {
	if m == nil || w == nil {
		return errors.Join(gerrors.ErrInvalidArgument, errors.New("nil marshaller or writer"))
	}
	writer := bytecodec.NewWriter(w, m.codecOpts...)
	return m.newSession().encodeTop(writer, reflect.TypeFor[T](), reflect.ValueOf(&v).Elem())
}

// Decode reads a value declared as T
func Decode[T any](m *Marshaller, r io.Reader) (T, error) {
	var zero T
	if m == nil {
		return zero, errors.Join(gerrors.ErrInvalidArgument, errors.New("nil marshaller"))
	}
	value, err := m.decode(r, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	if value.Kind() == reflect.Interface && value.IsNil() {
		return zero, nil
	}
	out, ok := value.Interface().(T)
	if !ok {
		return zero, gerrors.NewErrTypeMismatch(reflect.TypeFor[T](), value.Type())
	}
	return out, nil
}

func (m *Marshaller) decode(r io.Reader, t reflect.Type) (reflect.Value, error) {
	if r == nil || t == nil {
		return reflect.Value{}, errors.Join(gerrors.ErrInvalidArgument, errors.New("nil reader or type"))
	}
	reader := bytecodec.NewReader(r, m.codecOpts...)
	return m.newSession().decodeEnvelope(reader, t)
}

func (m *Marshaller) newSession() *Session {
	return &Session{
		marshaller: m,
		table:      reftable.New(),
	}
}

func zeroOf(t reflect.Type) any {
	if t == nil {
		return nil
	}
	return reflect.Zero(t).Interface()
}
