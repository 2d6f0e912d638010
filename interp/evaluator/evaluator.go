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

// Package evaluator folds IR expressions into constants.
//
// The evaluator only marshals arguments, keeps track of shapes, and composes
// values. Numerical computations are delegated to a NumericBackend.
package evaluator

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/fmterr"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/ops"
)

type (
	// NumericBackend computes on tensors.
	// Elementwise operators receive operands of the same shape.
	NumericBackend interface {
		// Binary applies a binary operator elementwise.
		Binary(op ops.BinaryOp, x, y *ir.Tensor) (*ir.Tensor, error)

		// Unary applies a unary operator elementwise.
		Unary(op ops.UnaryOp, x *ir.Tensor) (*ir.Tensor, error)

		// Compare two tensors elementwise. The result is a boolean tensor.
		Compare(op ops.CompareOp, x, y *ir.Tensor) (*ir.Tensor, error)

		// Cast converts the elements of a tensor to a data type.
		Cast(x *ir.Tensor, target dtype.DataType) (*ir.Tensor, error)

		// Broadcast replicates the elements of a tensor to a target shape.
		Broadcast(x *ir.Tensor, dims []int) (*ir.Tensor, error)

		// Reduce a tensor along axes starting from an initial value.
		// An empty list of axes reduces all the axes.
		Reduce(op ops.ReduceOp, x *ir.Tensor, axes []int, init *ir.Tensor, keepDims bool) (*ir.Tensor, error)

		// ReduceArg returns the index of the minimum or maximum along an axis as int64.
		ReduceArg(op ops.ReduceArgOp, x *ir.Tensor, axis int, keepDims, selectLastIndex bool) (*ir.Tensor, error)

		// MatMul multiplies batches of matrices.
		MatMul(x, y *ir.Tensor) (*ir.Tensor, error)

		// Clamp limits the elements of x to [lo, hi].
		Clamp(x, lo, hi *ir.Tensor) (*ir.Tensor, error)

		// Activation applies a neural network activation.
		// Alpha is nil for activations without parameter.
		Activation(kind ir.OpKind, x, alpha *ir.Tensor) (*ir.Tensor, error)
	}

	// TypeLookup returns the static type of an expression or nil if unknown.
	TypeLookup func(ir.Expr) ir.Type

	// Option configures an evaluator.
	Option func(*Evaluator)

	// Evaluator folds expressions into constants.
	Evaluator struct {
		backend NumericBackend
		types   TypeLookup
	}

	// UnsupportedError is returned when an operator cannot be evaluated.
	UnsupportedError struct {
		Kind ir.OpKind
	}
)

var (
	// ErrNotConstant is returned when the value of an expression depends on
	// a variable or a function.
	ErrNotConstant = errors.New("expression is not constant")

	// ErrUnsupported matches all UnsupportedError errors.
	ErrUnsupported = errors.New("operator not supported by the evaluator")
)

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupported.Error(), e.Kind)
}

// Is returns true if target is ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// WithTypes provides static types to the evaluator.
// ShapeOf is then folded from the static type of its input when it is fixed.
func WithTypes(lookup TypeLookup) Option {
	return func(e *Evaluator) {
		e.types = lookup
	}
}

// New returns a new evaluator given a numerical backend.
func New(backend NumericBackend, opts ...Option) *Evaluator {
	e := &Evaluator{backend: backend}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Backend returns the numerical backend used by the evaluator.
func (e *Evaluator) Backend() NumericBackend {
	return e.backend
}

// Eval folds an expression into a constant.
// Shared sub-expressions are evaluated once per call.
func (e *Evaluator) Eval(expr ir.Expr) (*ir.Const, error) {
	if c, ok := expr.(*ir.Const); ok {
		return c, nil
	}
	p := &pass{eval: e, memo: make(map[ir.Expr]*ir.Tensor)}
	val, err := p.tensor(expr)
	if err != nil {
		return nil, err
	}
	return ir.NewConst(val), nil
}

type pass struct {
	eval *Evaluator
	memo map[ir.Expr]*ir.Tensor
}

func (p *pass) tensor(expr ir.Expr) (*ir.Tensor, error) {
	if val, ok := p.memo[expr]; ok {
		return val, nil
	}
	var val *ir.Tensor
	var err error
	switch exprT := expr.(type) {
	case *ir.Const:
		val = exprT.Value()
	case *ir.Var, *ir.Function:
		return nil, errors.Wrapf(ErrNotConstant, "%s", exprT)
	case *ir.Tuple:
		return nil, errors.Errorf("cannot evaluate tuple %s as a tensor", exprT)
	case *ir.Call:
		val, err = p.call(exprT)
	default:
		return nil, fmterr.Internalf("expression %T not supported", expr)
	}
	if err != nil {
		return nil, err
	}
	p.memo[expr] = val
	return val, nil
}

func (p *pass) call(call *ir.Call) (*ir.Tensor, error) {
	kind := call.Op().Kind()
	if !kind.IsValid() {
		return nil, fmterr.Internalf("call %s has an invalid operator kind", call)
	}
	r := rules[kind]
	if r == nil {
		return nil, p.unsupported(call)
	}
	return r(p, call)
}

// unsupported returns the error of a call without evaluation rule.
// ErrNotConstant is returned if one of the operands is not constant
// so that the value of the call is unknown rather than unsupported.
func (p *pass) unsupported(call *ir.Call) error {
	if err := p.operands(call.Args()); err != nil {
		return err
	}
	return &UnsupportedError{Kind: call.Op().Kind()}
}

// operands evaluates a list of operands.
// ErrNotConstant takes precedence over any other error.
func (p *pass) operands(exprs []ir.Expr) error {
	var firstErr error
	for _, expr := range exprs {
		var err error
		if tpl, ok := expr.(*ir.Tuple); ok {
			err = p.operands(tpl.Fields())
		} else {
			_, err = p.tensor(expr)
		}
		switch {
		case err == nil:
		case errors.Is(err, ErrNotConstant):
			return err
		case firstErr == nil:
			firstErr = err
		}
	}
	return firstErr
}
