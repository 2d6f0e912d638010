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
	"math"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/ops"
)

// floatFactory creates kernels for floating point tensors.
type floatFactory[T dtype.Float] struct {
	numericFactory[T]
}

// kernelize turns a Go math function into a unary kernel.
func kernelize[T dtype.Float](f func(float64) float64) Unary {
	return func(x *ir.Tensor) (*ir.Tensor, error) {
		return mapUnary(x, func(v T) T { return T(f(float64(v))) })
	}
}

func binaryKernel[T dtype.GoDataType](f func(x, y T) T) Binary {
	return func(x, y *ir.Tensor) (*ir.Tensor, error) {
		return mapBinary(x, y, f)
	}
}

func (floatFactory[T]) BinaryOp(op ops.BinaryOp) (Binary, error) {
	switch op {
	case ops.Add:
		return binaryKernel(func(x, y T) T { return x + y }), nil
	case ops.Sub:
		return binaryKernel(func(x, y T) T { return x - y }), nil
	case ops.Mul:
		return binaryKernel(func(x, y T) T { return x * y }), nil
	case ops.Div:
		return binaryKernel(func(x, y T) T { return x / y }), nil
	case ops.Mod:
		return binaryKernel(func(x, y T) T { return T(math.Mod(float64(x), float64(y))) }), nil
	case ops.Min:
		return binaryKernel(func(x, y T) T { return min(x, y) }), nil
	case ops.Max:
		return binaryKernel(func(x, y T) T { return max(x, y) }), nil
	case ops.Pow:
		return binaryKernel(func(x, y T) T { return T(math.Pow(float64(x), float64(y))) }), nil
	}
	return nil, errors.Errorf("binary operator %s not supported", op)
}

var floatMath = map[ops.UnaryOp]func(float64) float64{
	ops.Abs:    math.Abs,
	ops.Neg:    func(x float64) float64 { return -x },
	ops.Exp:    math.Exp,
	ops.Log:    math.Log,
	ops.Sqrt:   math.Sqrt,
	ops.Rsqrt:  func(x float64) float64 { return 1 / math.Sqrt(x) },
	ops.Square: func(x float64) float64 { return x * x },
	ops.Ceil:   math.Ceil,
	ops.Floor:  math.Floor,
	ops.Sin:    math.Sin,
	ops.Cos:    math.Cos,
	ops.Tanh:   math.Tanh,
}

func (floatFactory[T]) UnaryOp(op ops.UnaryOp) (Unary, error) {
	f, ok := floatMath[op]
	if !ok {
		return nil, errors.Errorf("unary operator %s not supported on floating point tensors", op)
	}
	return kernelize[T](f), nil
}

func (floatFactory[T]) Activation(kind ir.OpKind, alpha float64) (Unary, error) {
	switch kind {
	case ir.ReluKind:
		return kernelize[T](func(x float64) float64 { return math.Max(x, 0) }), nil
	case ir.SigmoidKind:
		return kernelize[T](func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }), nil
	case ir.LeakyReluKind:
		return kernelize[T](func(x float64) float64 {
			if x < 0 {
				return alpha * x
			}
			return x
		}), nil
	}
	return nil, errors.Errorf("activation %s not supported", kind)
}

var (
	_ Factory = floatFactory[float32]{}
	_ Factory = integerFactory[int64]{}
)
