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
	"github.com/tochemey/graphwire/internal/metadata"
)

// Contract is implemented by types that opt into explicit field selection.
// Only the fields tagged `wire:"name"` of a contract type are serialized,
// unexported fields included. ContractOptions tunes the wire name and how
// decoded instances are constructed.
//
//	type Order struct {
//	    id    string `wire:"id"`
//	    Total int64  `wire:"total"`
//	    cache map[string]any
//	}
//
//	func (Order) DataContract() serialization.ContractOptions {
//	    return serialization.ContractOptions{Name: "shop.Order"}
//	}
//
// Types that do not implement Contract serialize every exported field that
// is not tagged `wire:"-"`.
type Contract = metadata.Contract

// ContractOptions describes how a Contract type takes part in serialization
type ContractOptions = metadata.ContractOptions

// CacheStats reports the hit and miss counters of the type metadata cache
type CacheStats = metadata.Stats

// MetadataCache memoizes type metadata. Share one between marshallers with WithCache.
type MetadataCache = metadata.Cache

// NewMetadataCache creates an empty metadata cache
func NewMetadataCache() *MetadataCache {
	return metadata.New()
}

// Char is a single UTF-16 code unit. It is written as a 2-byte unsigned integer.
type Char uint16
