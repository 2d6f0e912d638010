// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package irb builds IR graphs.
//
// A builder records the first error encountered so that a graph can be
// built with a sequence of calls and checked once at the end.
// Once an error has been recorded, all builder functions return nil.
package irb

import (
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
)

const maxCachedArgs = 8

type (
	// Option configures a builder.
	Option func(*Builder)

	callKey struct {
		op   ir.Op
		n    int
		args [maxCachedArgs]ir.Expr
	}

	// Builder builds IR nodes.
	Builder struct {
		err   error
		built map[callKey]*ir.Call
	}
)

// Dedup returns an option to return the same node when an operator
// is applied to the same arguments more than once.
func Dedup() Option {
	return func(b *Builder) {
		b.built = make(map[callKey]*ir.Call)
	}
}

// New returns a new builder.
func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Err returns the first error encountered while building nodes.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) record(err error) {
	if b.err == nil {
		b.err = err
	}
}

func keyOf(op ir.Op, args []ir.Expr) (callKey, bool) {
	if len(args) > maxCachedArgs {
		return callKey{}, false
	}
	key := callKey{op: op, n: len(args)}
	copy(key.args[:], args)
	return key, true
}

// Call applies an operator to arguments.
func (b *Builder) Call(op ir.Op, args ...ir.Expr) ir.Expr {
	if b.err != nil {
		return nil
	}
	key, cacheable := keyOf(op, args)
	cacheable = cacheable && b.built != nil
	if cacheable {
		if call, ok := b.built[key]; ok {
			return call
		}
	}
	call, err := ir.NewCall(op, args...)
	if err != nil {
		b.record(err)
		return nil
	}
	if cacheable {
		b.built[key] = call
	}
	return call
}

// Var returns a variable of a tensor type.
func (b *Builder) Var(name string, dt dtype.DataType, dims ...ir.Dim) *ir.Var {
	return ir.NewVar(name, ir.NewTensorType(dt, dims...))
}

// Tensor returns a constant given its values and the length of its axes.
func Tensor[T dtype.GoDataType](b *Builder, values []T, dims ...int) ir.Expr {
	if b.err != nil {
		return nil
	}
	t, err := ir.TensorFrom(values, dims...)
	if err != nil {
		b.record(err)
		return nil
	}
	return ir.NewConst(t)
}

// Scalar returns a constant storing a scalar.
func Scalar[T dtype.GoDataType](v T) *ir.Const {
	return ir.NewConst(ir.ScalarTensor(v))
}

// Ints returns a constant int64 vector.
func Ints(b *Builder, values ...int64) ir.Expr {
	return Tensor(b, values, len(values))
}

// Tuple returns a tuple of expressions.
func (b *Builder) Tuple(fields ...ir.Expr) ir.Expr {
	if b.err != nil {
		return nil
	}
	return ir.NewTuple(fields...)
}

// Function returns a function. It returns nil if an error occurred while building its body.
func (b *Builder) Function(name string, params []*ir.Var, body ir.Expr) *ir.Function {
	if b.err != nil {
		return nil
	}
	return ir.NewFunction(name, params, body)
}
