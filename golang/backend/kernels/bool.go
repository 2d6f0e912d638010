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

package kernels

import (
	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/ops"
)

// boolFactory creates kernels for boolean tensors.
type boolFactory struct{}

var _ Factory = boolFactory{}

func (boolFactory) BinaryOp(op ops.BinaryOp) (Binary, error) {
	return nil, errors.Errorf("binary operator %s not supported on boolean tensors", op)
}

func (boolFactory) UnaryOp(op ops.UnaryOp) (Unary, error) {
	if op != ops.LogicalNot {
		return nil, errors.Errorf("unary operator %s not supported on boolean tensors", op)
	}
	return func(x *ir.Tensor) (*ir.Tensor, error) {
		return mapUnary(x, func(v bool) bool { return !v })
	}, nil
}

func (boolFactory) CompareOp(op ops.CompareOp) (Binary, error) {
	var f func(x, y bool) bool
	switch op {
	case ops.Equal:
		f = func(x, y bool) bool { return x == y }
	case ops.NotEqual:
		f = func(x, y bool) bool { return x != y }
	default:
		return nil, errors.Errorf("comparison %s not supported on boolean tensors", op)
	}
	return func(x, y *ir.Tensor) (*ir.Tensor, error) {
		return mapBinary(x, y, f)
	}, nil
}

func castBool[T goAlgebra](x *ir.Tensor) (*ir.Tensor, error) {
	return mapUnary(x, boolToNumber[T])
}

func (boolFactory) Cast(target dtype.DataType) (Unary, error) {
	switch target {
	case dtype.Float32:
		return castBool[float32], nil
	case dtype.Float64:
		return castBool[float64], nil
	case dtype.Int32:
		return castBool[int32], nil
	case dtype.Int64:
		return castBool[int64], nil
	case dtype.Uint32:
		return castBool[uint32], nil
	case dtype.Uint64:
		return castBool[uint64], nil
	}
	return nil, errors.Errorf("cannot cast booleans to %s", target)
}

func (boolFactory) Reduce(op ops.ReduceOp, axes []int, keepDims bool) (Reducer, error) {
	return nil, errors.Errorf("reduction %s not supported on boolean tensors", op)
}

func (boolFactory) ReduceArg(op ops.ReduceArgOp, axis int, keepDims, selectLastIndex bool) (Unary, error) {
	return nil, errors.Errorf("arg reduction %s not supported on boolean tensors", op)
}

func (boolFactory) MatMul() (Binary, error) {
	return nil, errors.Errorf("matmul not supported on boolean tensors")
}

func (boolFactory) Clamp(lo, hi *ir.Tensor) (Unary, error) {
	return nil, errors.Errorf("clamp not supported on boolean tensors")
}

func (boolFactory) Activation(kind ir.OpKind, alpha float64) (Unary, error) {
	return nil, errors.Errorf("activation %s not supported on boolean tensors", kind)
}
