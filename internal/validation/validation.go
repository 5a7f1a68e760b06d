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

// Package validation accumulates configuration checks and reports every
// violation at once.
package validation

import "go.uber.org/multierr"

// Validator checks a single rule.
type Validator interface {
	Validate() error
}

// Chain accumulates validators and runs them in insertion order.
type Chain struct {
	stopAtFirst bool
	validators  []Validator
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// StopAtFirst makes Validate return the first violation only.
func StopAtFirst() ChainOption {
	return func(c *Chain) { c.stopAtFirst = true }
}

// New creates a Chain. By default every violation is reported.
func New(opts ...ChainOption) *Chain {
	chain := new(Chain)
	for _, opt := range opts {
		opt(chain)
	}
	return chain
}

// Add appends validators to the chain.
func (c *Chain) Add(validators ...Validator) *Chain {
	for _, v := range validators {
		if v != nil {
			c.validators = append(c.validators, v)
		}
	}
	return c
}

// Assert appends a rule that fails with message when condition is false.
func (c *Chain) Assert(condition bool, message string) *Chain {
	return c.Add(Assertion(condition, message))
}

// NotNil appends a rule that fails when value is nil.
func (c *Chain) NotNil(name string, value any) *Chain {
	return c.Add(NotNil(name, value))
}

// NotBlank appends a rule that fails when value is blank.
func (c *Chain) NotBlank(name, value string) *Chain {
	return c.Add(NotBlank(name, value))
}

// Len returns the number of rules in the chain.
func (c *Chain) Len() int {
	return len(c.validators)
}

// Validate runs the chain. Violations are combined with multierr.
func (c *Chain) Validate() error {
	var violations error
	for _, v := range c.validators {
		err := v.Validate()
		if err == nil {
			continue
		}
		if c.stopAtFirst {
			return err
		}
		violations = multierr.Append(violations, err)
	}
	return violations
}
