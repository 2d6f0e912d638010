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
	"slices"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/ops"
)

// numericFactory implements the kernels shared by all numerical data types.
type numericFactory[T goAlgebra] struct{}

func (numericFactory[T]) CompareOp(op ops.CompareOp) (Binary, error) {
	var f func(x, y T) bool
	switch op {
	case ops.Equal:
		f = func(x, y T) bool { return x == y }
	case ops.NotEqual:
		f = func(x, y T) bool { return x != y }
	case ops.LowerThan:
		f = func(x, y T) bool { return x < y }
	case ops.LowerOrEqual:
		f = func(x, y T) bool { return x <= y }
	case ops.GreaterThan:
		f = func(x, y T) bool { return x > y }
	case ops.GreaterOrEqual:
		f = func(x, y T) bool { return x >= y }
	default:
		return nil, errors.Errorf("comparison %s not supported", op)
	}
	return func(x, y *ir.Tensor) (*ir.Tensor, error) {
		return mapBinary(x, y, f)
	}, nil
}

func (numericFactory[T]) Cast(target dtype.DataType) (Unary, error) {
	if target == dtype.Bool {
		return func(x *ir.Tensor) (*ir.Tensor, error) {
			return mapUnary(x, func(v T) bool { return v != 0 })
		}, nil
	}
	return func(x *ir.Tensor) (*ir.Tensor, error) {
		xs, err := flat[T](x)
		if err != nil {
			return nil, err
		}
		return ir.ConvertTo(xs, target, x.Dims()...)
	}, nil
}

// reducedAxes normalizes a list of axes.
// An empty list reduces all the axes.
func reducedAxes(axes []int, rank int) ([]bool, error) {
	reduced := make([]bool, rank)
	if len(axes) == 0 {
		for i := range reduced {
			reduced[i] = true
		}
		return reduced, nil
	}
	for _, axis := range axes {
		if axis < 0 {
			axis += rank
		}
		if axis < 0 || axis >= rank {
			return nil, errors.Errorf("axis %d out of range for a tensor of rank %d", axis, rank)
		}
		reduced[axis] = true
	}
	return reduced, nil
}

func (numericFactory[T]) Reduce(op ops.ReduceOp, axes []int, keepDims bool) (Reducer, error) {
	var combine func(acc, v T) T
	switch op {
	case ops.ReduceSum, ops.ReduceMean:
		combine = func(acc, v T) T { return acc + v }
	case ops.ReduceProd:
		combine = func(acc, v T) T { return acc * v }
	case ops.ReduceMin:
		combine = func(acc, v T) T { return min(acc, v) }
	case ops.ReduceMax:
		combine = func(acc, v T) T { return max(acc, v) }
	default:
		return nil, errors.Errorf("reduction %s not supported", op)
	}
	return func(x, init *ir.Tensor) (*ir.Tensor, error) {
		xs, err := flat[T](x)
		if err != nil {
			return nil, err
		}
		inits, err := flat[T](init)
		if err != nil {
			return nil, err
		}
		dims := x.Dims()
		reduced, err := reducedAxes(axes, len(dims))
		if err != nil {
			return nil, err
		}
		kept := slices.Clone(dims)
		var outDims []int
		count := 1
		for axis, d := range dims {
			if reduced[axis] {
				kept[axis] = 1
				count *= d
				if keepDims {
					outDims = append(outDims, 1)
				}
				continue
			}
			outDims = append(outDims, d)
		}
		out := make([]T, product(kept))
		for i := range out {
			out[i] = inits[0]
		}
		strides := ir.RowMajorStrides(kept)
		pos := make([]int, len(dims))
		for i, v := range xs {
			ir.Unravel(i, dims, pos)
			o := 0
			for axis, p := range pos {
				if !reduced[axis] {
					o += p * strides[axis]
				}
			}
			out[o] = combine(out[o], v)
		}
		if op == ops.ReduceMean && count > 0 {
			for i := range out {
				out[i] /= T(count)
			}
		}
		return ir.TensorFrom(out, outDims...)
	}, nil
}

func (numericFactory[T]) ReduceArg(op ops.ReduceArgOp, axis int, keepDims, selectLastIndex bool) (Unary, error) {
	var better func(v, best T) bool
	switch op {
	case ops.ArgMin:
		better = func(v, best T) bool { return v < best }
	case ops.ArgMax:
		better = func(v, best T) bool { return v > best }
	default:
		return nil, errors.Errorf("arg reduction %s not supported", op)
	}
	return func(x *ir.Tensor) (*ir.Tensor, error) {
		xs, err := flat[T](x)
		if err != nil {
			return nil, err
		}
		dims := x.Dims()
		reduced, err := reducedAxes([]int{axis}, len(dims))
		if err != nil {
			return nil, err
		}
		kept := slices.Clone(dims)
		var outDims []int
		for i, d := range dims {
			if reduced[i] {
				kept[i] = 1
				if keepDims {
					outDims = append(outDims, 1)
				}
				continue
			}
			outDims = append(outDims, d)
		}
		size := product(kept)
		best := make([]T, size)
		indices := make([]int64, size)
		seen := make([]bool, size)
		strides := ir.RowMajorStrides(kept)
		pos := make([]int, len(dims))
		// Elements are visited in row-major order: for a given output,
		// elements along the reduced axis are visited in increasing order.
		for i, v := range xs {
			ir.Unravel(i, dims, pos)
			o, k := 0, 0
			for a, p := range pos {
				if reduced[a] {
					k = p
					continue
				}
				o += p * strides[a]
			}
			if !seen[o] || better(v, best[o]) || (selectLastIndex && v == best[o]) {
				seen[o] = true
				best[o] = v
				indices[o] = int64(k)
			}
		}
		return ir.TensorFrom(indices, outDims...)
	}, nil
}

func (numericFactory[T]) MatMul() (Binary, error) {
	return func(x, y *ir.Tensor) (*ir.Tensor, error) {
		xDims, yDims := x.Dims(), y.Dims()
		if len(xDims) < 2 || len(yDims) < 2 {
			return nil, errors.Errorf("matmul requires tensors of rank 2 or more but got %v and %v", xDims, yDims)
		}
		m, k := xDims[len(xDims)-2], xDims[len(xDims)-1]
		k2, n := yDims[len(yDims)-2], yDims[len(yDims)-1]
		if k != k2 {
			return nil, errors.Errorf("matmul: contracting dimensions mismatch: %v and %v", xDims, yDims)
		}
		xBatch, yBatch := xDims[:len(xDims)-2], yDims[:len(yDims)-2]
		batch, err := ir.BroadcastShapes(ir.ShapeFromInts(xBatch), ir.ShapeFromInts(yBatch))
		if err != nil {
			return nil, errors.Wrap(err, "matmul")
		}
		batchDims, _ := batch.Ints()
		xIndices, err := BroadcastIndices(xBatch, batchDims)
		if err != nil {
			return nil, err
		}
		yIndices, err := BroadcastIndices(yBatch, batchDims)
		if err != nil {
			return nil, err
		}
		xs, err := flat[T](x)
		if err != nil {
			return nil, err
		}
		ys, err := flat[T](y)
		if err != nil {
			return nil, err
		}
		out := make([]T, len(xIndices)*m*n)
		for b := range xIndices {
			xm := xs[xIndices[b]*m*k:]
			ym := ys[yIndices[b]*k*n:]
			zm := out[b*m*n:]
			for i := range m {
				for j := range n {
					var acc T
					for l := range k {
						acc += xm[i*k+l] * ym[l*n+j]
					}
					zm[i*n+j] = acc
				}
			}
		}
		return ir.TensorFrom(out, append(batchDims, m, n)...)
	}, nil
}

func (numericFactory[T]) Clamp(lo, hi *ir.Tensor) (Unary, error) {
	los, err := flat[T](lo)
	if err != nil {
		return nil, err
	}
	his, err := flat[T](hi)
	if err != nil {
		return nil, err
	}
	return func(x *ir.Tensor) (*ir.Tensor, error) {
		xs, err := flat[T](x)
		if err != nil {
			return nil, err
		}
		if len(xs) != len(los) || len(xs) != len(his) {
			return nil, errors.Errorf("clamp: number of elements mismatch")
		}
		zs := make([]T, len(xs))
		for i, v := range xs {
			zs[i] = min(max(v, los[i]), his[i])
		}
		return ir.TensorFrom(zs, x.Dims()...)
	}, nil
}
