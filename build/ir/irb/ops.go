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

package irb

import (
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/ops"
)

// Binary applies a binary operator.
func (b *Builder) Binary(op ops.BinaryOp, x, y ir.Expr) ir.Expr {
	return b.Call(ops.Binary{Op: op}, x, y)
}

// Add returns x + y.
func (b *Builder) Add(x, y ir.Expr) ir.Expr { return b.Binary(ops.Add, x, y) }

// Sub returns x - y.
func (b *Builder) Sub(x, y ir.Expr) ir.Expr { return b.Binary(ops.Sub, x, y) }

// Mul returns x * y.
func (b *Builder) Mul(x, y ir.Expr) ir.Expr { return b.Binary(ops.Mul, x, y) }

// Div returns x / y.
func (b *Builder) Div(x, y ir.Expr) ir.Expr { return b.Binary(ops.Div, x, y) }

// Unary applies a unary operator.
func (b *Builder) Unary(op ops.UnaryOp, x ir.Expr) ir.Expr {
	return b.Call(ops.Unary{Op: op}, x)
}

// Neg returns -x.
func (b *Builder) Neg(x ir.Expr) ir.Expr { return b.Unary(ops.Neg, x) }

// Exp returns exp(x).
func (b *Builder) Exp(x ir.Expr) ir.Expr { return b.Unary(ops.Exp, x) }

// Compare applies a comparison operator.
func (b *Builder) Compare(op ops.CompareOp, x, y ir.Expr) ir.Expr {
	return b.Call(ops.Compare{Op: op}, x, y)
}

// Clamp limits x to [lo, hi].
func (b *Builder) Clamp(x, lo, hi ir.Expr) ir.Expr {
	return b.Call(ops.Clamp{}, x, lo, hi)
}

// Cast converts x to a data type.
func (b *Builder) Cast(x ir.Expr, dt dtype.DataType) ir.Expr {
	return b.Call(ops.Cast{DType: dt}, x)
}

// Reduce reduces x along axes.
func (b *Builder) Reduce(op ops.ReduceOp, x, axis, init ir.Expr, keepDims bool) ir.Expr {
	return b.Call(ops.Reduce{Op: op}, x, axis, init, Scalar(keepDims))
}

// ReduceArg returns the index of the minimum or maximum element along an axis.
func (b *Builder) ReduceArg(op ops.ReduceArgOp, x, axis ir.Expr, keepDims, selectLastIndex bool) ir.Expr {
	return b.Call(ops.ReduceArg{Op: op}, x, axis, Scalar(keepDims), Scalar(selectLastIndex))
}

// MatMul multiplies two matrices.
func (b *Builder) MatMul(x, y ir.Expr) ir.Expr {
	return b.Call(ops.MatMul{}, x, y)
}

// Gather takes slices of x along an axis.
func (b *Builder) Gather(x, axis, index ir.Expr) ir.Expr {
	return b.Call(ops.Gather{}, x, axis, index)
}

// GatherND gathers slices of x with multi-dimensional indices.
func (b *Builder) GatherND(x, batchDims, index ir.Expr) ir.Expr {
	return b.Call(ops.GatherND{}, x, batchDims, index)
}

// Range generates a sequence of integers.
func (b *Builder) Range(begin, end, step ir.Expr) ir.Expr {
	return b.Call(ops.Range{}, begin, end, step)
}

// Expand broadcasts x to a shape.
func (b *Builder) Expand(x, shape ir.Expr) ir.Expr {
	return b.Call(ops.Expand{}, x, shape)
}

// Reshape changes the shape of x.
func (b *Builder) Reshape(x, shape ir.Expr) ir.Expr {
	return b.Call(ops.Reshape{}, x, shape)
}

// Broadcast broadcasts x to a shape.
func (b *Builder) Broadcast(x, shape ir.Expr) ir.Expr {
	return b.Call(ops.Broadcast{}, x, shape)
}

// Concat concatenates tensors along an axis.
func (b *Builder) Concat(axis ir.Expr, xs ...ir.Expr) ir.Expr {
	return b.Call(ops.Concat{}, b.Tuple(xs...), axis)
}

// Transpose permutes the axes of x.
func (b *Builder) Transpose(x, perm ir.Expr) ir.Expr {
	return b.Call(ops.Transpose{}, x, perm)
}

// Slice extracts a strided slice of x.
func (b *Builder) Slice(x, begins, ends, axes, strides ir.Expr) ir.Expr {
	return b.Call(ops.Slice{}, x, begins, ends, axes, strides)
}

// Pad adds elements at the border of x.
func (b *Builder) Pad(mode ops.PadMode, x, pads, value ir.Expr) ir.Expr {
	return b.Call(ops.Pad{Mode: mode}, x, pads, value)
}

// Squeeze removes axes of length 1.
func (b *Builder) Squeeze(x, dim ir.Expr) ir.Expr {
	return b.Call(ops.Squeeze{}, x, dim)
}

// Unsqueeze inserts axes of length 1.
func (b *Builder) Unsqueeze(x, dim ir.Expr) ir.Expr {
	return b.Call(ops.Unsqueeze{}, x, dim)
}

// ShapeOf returns the shape of x.
func (b *Builder) ShapeOf(x ir.Expr) ir.Expr {
	return b.Call(ops.ShapeOf{}, x)
}

// Conv2D is a 2D convolution.
func (b *Builder) Conv2D(mode ops.PadMode, input, weights, bias, stride, padding, dilation, groups, fusedClamp ir.Expr) ir.Expr {
	return b.Call(ops.Conv2D{Mode: mode}, input, weights, bias, stride, padding, dilation, groups, fusedClamp)
}

// Relu returns max(x, 0).
func (b *Builder) Relu(x ir.Expr) ir.Expr {
	return b.Call(ops.Relu{}, x)
}

// Sigmoid returns 1/(1+exp(-x)).
func (b *Builder) Sigmoid(x ir.Expr) ir.Expr {
	return b.Call(ops.Sigmoid{}, x)
}

// LeakyRelu returns x if x > 0, alpha*x otherwise.
func (b *Builder) LeakyRelu(x, alpha ir.Expr) ir.Expr {
	return b.Call(ops.LeakyRelu{}, x, alpha)
}
