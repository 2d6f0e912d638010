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
)

type goAlgebra interface {
	dtype.Float | dtype.IntegerType
}

// flat returns the values of a tensor.
// Factories only receive tensors of their own data type.
func flat[T dtype.GoDataType](t *ir.Tensor) ([]T, error) {
	return ir.ToSlice[T](t)
}

func mapUnary[T, R dtype.GoDataType](x *ir.Tensor, f func(T) R) (*ir.Tensor, error) {
	xs, err := flat[T](x)
	if err != nil {
		return nil, err
	}
	zs := make([]R, len(xs))
	for i, xi := range xs {
		zs[i] = f(xi)
	}
	return ir.TensorFrom(zs, x.Dims()...)
}

func mapBinary[T, R dtype.GoDataType](x, y *ir.Tensor, f func(T, T) R) (*ir.Tensor, error) {
	xs, err := flat[T](x)
	if err != nil {
		return nil, err
	}
	ys, err := flat[T](y)
	if err != nil {
		return nil, err
	}
	if len(xs) != len(ys) {
		return nil, errors.Errorf("number of elements mismatch: %d and %d", len(xs), len(ys))
	}
	zs := make([]R, len(xs))
	for i, xi := range xs {
		zs[i] = f(xi, ys[i])
	}
	return ir.TensorFrom(zs, x.Dims()...)
}

func product(dims []int) int {
	size := 1
	for _, d := range dims {
		size *= d
	}
	return size
}

// BroadcastIndices returns, for each element of a tensor of shape to,
// the flat index of the element of a tensor of shape from it is broadcast from.
// Axes are aligned on the right. An axis of length 1 is repeated.
func BroadcastIndices(from, to []int) ([]int, error) {
	if len(from) > len(to) {
		return nil, errors.Errorf("cannot broadcast %v to %v: rank mismatch", from, to)
	}
	offset := len(to) - len(from)
	for i, d := range from {
		if d != 1 && d != to[offset+i] {
			return nil, errors.Errorf("cannot broadcast %v to %v: axis %d has length %d", from, to, i, d)
		}
	}
	strides := ir.RowMajorStrides(from)
	size := product(to)
	indices := make([]int, size)
	pos := make([]int, len(to))
	for i := range size {
		ir.Unravel(i, to, pos)
		src := 0
		for axis, d := range from {
			if d == 1 {
				continue
			}
			src += pos[offset+axis] * strides[axis]
		}
		indices[i] = src
	}
	return indices, nil
}

// Broadcast replicates the elements of x to a target shape.
func (*Backend) Broadcast(x *ir.Tensor, dims []int) (*ir.Tensor, error) {
	indices, err := BroadcastIndices(x.Dims(), dims)
	if err != nil {
		return nil, err
	}
	return x.Select(indices, dims...)
}

func boolToNumber[T goAlgebra](b bool) T {
	if b {
		return 1
	}
	return 0
}
