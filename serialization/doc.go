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

// Package serialization encodes arbitrary Go object graphs into a compact,
// self-describing binary stream and reconstructs them.
//
// # Object graphs
//
// A Marshaller walks a value recursively: scalars, named integer types,
// strings, structs, pointers, slices, arrays, maps, collection types
// discovered through their methods, and callbacks. Objects that carry an
// identity (pointers, slices, maps, collections and callbacks) are written
// once per call; later occurrences are written as back-references, so shared
// references and cycles survive a round trip.
//
// # Framing
//
// Every value is wrapped in an envelope:
//
//	┌──────────┬─────────────────────────┬──────────┬─────────┐
//	│ presence │ type name               │ length   │ payload │
//	│ 1 byte   │ only when the declared  │ int32 LE │ N bytes │
//	│          │ type is an interface    │          │         │
//	└──────────┴─────────────────────────┴──────────┴─────────┘
//
// A declared payload length that disagrees with the bytes its serializer
// consumes is fatal (ErrFramingCorrupted). Objects with identity start their
// payload with a reference header: an int64 ID followed by a bool telling
// whether the object body follows.
//
// # Schema evolution
//
// Struct fields are written as a table of (wire name, value) pairs. On decode
// a field that no longer exists, a value whose type cannot be resolved and a
// value that is not assignable to its destination are logged and discarded
// while the rest of the graph is reconstructed.
//
// # Extension
//
// Serialization is dispatched through an ordered list of Serializer values;
// the first one whose CanHandle accepts a type wins. Custom serializers passed
// with WithSerializers are consulted before the built-in ones.
package serialization
