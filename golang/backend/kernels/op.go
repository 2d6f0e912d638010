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

// integerFactory creates kernels for integer tensors.
type integerFactory[T dtype.IntegerType] struct {
	numericFactory[T]
}

// errDivisionByZero is returned when an integer is divided by zero.
var errDivisionByZero = errors.New("integer division by zero")

func checkedKernel[T dtype.IntegerType](f func(x, y T) T) Binary {
	return func(x, y *ir.Tensor) (*ir.Tensor, error) {
		ys, err := flat[T](y)
		if err != nil {
			return nil, err
		}
		for _, yi := range ys {
			if yi == 0 {
				return nil, errDivisionByZero
			}
		}
		return mapBinary(x, y, f)
	}
}

func intPow[T dtype.IntegerType](x, y T) T {
	if y < 0 {
		// Only 1 and -1 have an integer inverse.
		switch {
		case x == 1:
			return 1
		case x+1 == 0 && y%2 == 0:
			return 1
		case x+1 == 0:
			return x
		}
		return 0
	}
	var r T = 1
	for ; y > 0; y >>= 1 {
		if y&1 == 1 {
			r *= x
		}
		x *= x
	}
	return r
}

func (integerFactory[T]) BinaryOp(op ops.BinaryOp) (Binary, error) {
	switch op {
	case ops.Add:
		return binaryKernel(func(x, y T) T { return x + y }), nil
	case ops.Sub:
		return binaryKernel(func(x, y T) T { return x - y }), nil
	case ops.Mul:
		return binaryKernel(func(x, y T) T { return x * y }), nil
	case ops.Div:
		return checkedKernel(func(x, y T) T { return x / y }), nil
	case ops.Mod:
		return checkedKernel(func(x, y T) T { return x % y }), nil
	case ops.Min:
		return binaryKernel(func(x, y T) T { return min(x, y) }), nil
	case ops.Max:
		return binaryKernel(func(x, y T) T { return max(x, y) }), nil
	case ops.Pow:
		return binaryKernel(intPow[T]), nil
	}
	return nil, errors.Errorf("binary operator %s not supported", op)
}

func (integerFactory[T]) UnaryOp(op ops.UnaryOp) (Unary, error) {
	var f func(T) T
	switch op {
	case ops.Abs:
		f = func(x T) T {
			if x < 0 {
				return -x
			}
			return x
		}
	case ops.Neg:
		f = func(x T) T { return -x }
	case ops.Square:
		f = func(x T) T { return x * x }
	case ops.Ceil, ops.Floor:
		f = func(x T) T { return x }
	default:
		return nil, errors.Errorf("unary operator %s not supported on integer tensors", op)
	}
	return func(x *ir.Tensor) (*ir.Tensor, error) {
		return mapUnary(x, f)
	}, nil
}

func (integerFactory[T]) Activation(kind ir.OpKind, alpha float64) (Unary, error) {
	if kind != ir.ReluKind {
		return nil, errors.Errorf("activation %s not supported on integer tensors", kind)
	}
	return func(x *ir.Tensor) (*ir.Tensor, error) {
		return mapUnary(x, func(v T) T { return max(v, 0) })
	}, nil
}
