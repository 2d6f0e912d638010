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

// Package kernels implements numerical Go kernels over row-major tensors.
//
// Kernels are selected by a factory specific to the data type of their
// operands. The package is used to fold constants at compile time.
package kernels

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/ops"
)

type (
	// Unary kernel like -x or exp(x).
	Unary func(*ir.Tensor) (*ir.Tensor, error)

	// Binary kernel like x+y or x<y.
	Binary func(*ir.Tensor, *ir.Tensor) (*ir.Tensor, error)

	// Reducer reduces a tensor given an initial value.
	Reducer func(x, init *ir.Tensor) (*ir.Tensor, error)

	// Factory creates kernels for tensors of a given data type.
	Factory interface {
		// BinaryOp returns a kernel for a binary operator.
		// Both operands have the same shape.
		BinaryOp(ops.BinaryOp) (Binary, error)

		// UnaryOp returns a kernel for a unary operator.
		UnaryOp(ops.UnaryOp) (Unary, error)

		// CompareOp returns a kernel comparing two tensors of the same shape.
		CompareOp(ops.CompareOp) (Binary, error)

		// Cast returns a kernel converting tensors to a target data type.
		Cast(target dtype.DataType) (Unary, error)

		// Reduce returns a kernel reducing tensors along axes.
		Reduce(op ops.ReduceOp, axes []int, keepDims bool) (Reducer, error)

		// ReduceArg returns a kernel computing the index of the minimum or maximum along an axis.
		ReduceArg(op ops.ReduceArgOp, axis int, keepDims, selectLastIndex bool) (Unary, error)

		// MatMul returns a kernel multiplying batches of matrices.
		MatMul() (Binary, error)

		// Clamp returns a kernel limiting the elements of a tensor.
		Clamp(lo, hi *ir.Tensor) (Unary, error)

		// Activation returns a kernel for a neural network activation.
		Activation(kind ir.OpKind, alpha float64) (Unary, error)
	}
)

// FactoryFor returns a factory given a data type.
func FactoryFor(dt dtype.DataType) (Factory, error) {
	switch dt {
	case dtype.Bool:
		return boolFactory{}, nil
	case dtype.Float32:
		return floatFactory[float32]{}, nil
	case dtype.Float64:
		return floatFactory[float64]{}, nil
	case dtype.Int32:
		return integerFactory[int32]{}, nil
	case dtype.Int64:
		return integerFactory[int64]{}, nil
	case dtype.Uint32:
		return integerFactory[uint32]{}, nil
	case dtype.Uint64:
		return integerFactory[uint64]{}, nil
	}
	return nil, errors.Errorf("no kernels for data type %s", dt)
}

// Backend computes on tensors with Go kernels.
type Backend struct{}

// New returns a new backend.
func New() *Backend {
	return &Backend{}
}

func sameShape(x, y *ir.Tensor) error {
	if x.DType() != y.DType() {
		return errors.Errorf("data type mismatch: %s and %s", x.DType(), y.DType())
	}
	if !slices.Equal(x.Dims(), y.Dims()) {
		return errors.Errorf("shape mismatch: %v and %v", x.Dims(), y.Dims())
	}
	return nil
}

// Binary applies a binary operator on two tensors of the same shape.
func (*Backend) Binary(op ops.BinaryOp, x, y *ir.Tensor) (*ir.Tensor, error) {
	if err := sameShape(x, y); err != nil {
		return nil, errors.Wrapf(err, "%s", op)
	}
	f, err := FactoryFor(x.DType())
	if err != nil {
		return nil, err
	}
	kernel, err := f.BinaryOp(op)
	if err != nil {
		return nil, err
	}
	return kernel(x, y)
}

// Unary applies a unary operator on a tensor.
func (*Backend) Unary(op ops.UnaryOp, x *ir.Tensor) (*ir.Tensor, error) {
	f, err := FactoryFor(x.DType())
	if err != nil {
		return nil, err
	}
	kernel, err := f.UnaryOp(op)
	if err != nil {
		return nil, err
	}
	return kernel(x)
}

// Compare two tensors of the same shape elementwise.
func (*Backend) Compare(op ops.CompareOp, x, y *ir.Tensor) (*ir.Tensor, error) {
	if err := sameShape(x, y); err != nil {
		return nil, errors.Wrapf(err, "%s", op)
	}
	f, err := FactoryFor(x.DType())
	if err != nil {
		return nil, err
	}
	kernel, err := f.CompareOp(op)
	if err != nil {
		return nil, err
	}
	return kernel(x, y)
}

// Cast converts the elements of a tensor to a data type.
func (*Backend) Cast(x *ir.Tensor, target dtype.DataType) (*ir.Tensor, error) {
	if x.DType() == target {
		return x, nil
	}
	f, err := FactoryFor(x.DType())
	if err != nil {
		return nil, err
	}
	kernel, err := f.Cast(target)
	if err != nil {
		return nil, err
	}
	return kernel(x)
}

// Reduce reduces a tensor along axes starting from an initial value.
func (*Backend) Reduce(op ops.ReduceOp, x *ir.Tensor, axes []int, init *ir.Tensor, keepDims bool) (*ir.Tensor, error) {
	if init.DType() != x.DType() || init.Size() != 1 {
		return nil, errors.Errorf("reduce: initial value %v incompatible with %s tensor", init, x.DType())
	}
	f, err := FactoryFor(x.DType())
	if err != nil {
		return nil, err
	}
	kernel, err := f.Reduce(op, axes, keepDims)
	if err != nil {
		return nil, err
	}
	return kernel(x, init)
}

// ReduceArg returns the index of the minimum or maximum along an axis.
func (*Backend) ReduceArg(op ops.ReduceArgOp, x *ir.Tensor, axis int, keepDims, selectLastIndex bool) (*ir.Tensor, error) {
	f, err := FactoryFor(x.DType())
	if err != nil {
		return nil, err
	}
	kernel, err := f.ReduceArg(op, axis, keepDims, selectLastIndex)
	if err != nil {
		return nil, err
	}
	return kernel(x)
}

// MatMul multiplies batches of matrices.
func (*Backend) MatMul(x, y *ir.Tensor) (*ir.Tensor, error) {
	if x.DType() != y.DType() {
		return nil, errors.Errorf("matmul: data type mismatch: %s and %s", x.DType(), y.DType())
	}
	f, err := FactoryFor(x.DType())
	if err != nil {
		return nil, err
	}
	kernel, err := f.MatMul()
	if err != nil {
		return nil, err
	}
	return kernel(x, y)
}

// Clamp limits the elements of x to [lo, hi]. All tensors have the same shape.
func (*Backend) Clamp(x, lo, hi *ir.Tensor) (*ir.Tensor, error) {
	if err := sameShape(x, lo); err != nil {
		return nil, errors.Wrap(err, "clamp min")
	}
	if err := sameShape(x, hi); err != nil {
		return nil, errors.Wrap(err, "clamp max")
	}
	f, err := FactoryFor(x.DType())
	if err != nil {
		return nil, err
	}
	kernel, err := f.Clamp(lo, hi)
	if err != nil {
		return nil, err
	}
	return kernel(x)
}

// Activation applies a neural network activation function.
// Alpha is only used by LeakyRelu and can be nil otherwise.
func (*Backend) Activation(kind ir.OpKind, x, alpha *ir.Tensor) (*ir.Tensor, error) {
	var alphaValue float64
	if alpha != nil {
		vals, err := ir.ValuesAs[float64](alpha)
		if err != nil {
			return nil, err
		}
		if len(vals) != 1 {
			return nil, errors.Errorf("%s: alpha should be a scalar", kind)
		}
		alphaValue = vals[0]
	}
	f, err := FactoryFor(x.DType())
	if err != nil {
		return nil, err
	}
	kernel, err := f.Activation(kind, alphaValue)
	if err != nil {
		return nil, err
	}
	return kernel(x)
}
