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

package ir

import (
	"bytes"
	"slices"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/nnc/build/ir/irkind"
	"github.com/gx-org/nnc/fmt/fmttensor"
	"golang.org/x/exp/constraints"
)

// Tensor is a multi-dimensional array with a static shape.
// Elements are stored in a flat buffer in row-major order.
type Tensor struct {
	sh   shape.Shape
	data []byte
}

// NewTensor returns a tensor given its shape and its raw data.
// The data is copied.
func NewTensor(sh *shape.Shape, data []byte) (*Tensor, error) {
	if sh == nil {
		return nil, errors.Errorf("cannot create a tensor without a shape")
	}
	for _, l := range sh.AxisLengths {
		if l < 0 {
			return nil, errors.Errorf("cannot create a tensor with a negative axis length: %v", sh.AxisLengths)
		}
	}
	if len(data) != sh.ByteSize() {
		return nil, errors.Errorf("buffer size is %d but shape %v specifies a buffer size of %d", len(data), sh.AxisLengths, sh.ByteSize())
	}
	return &Tensor{
		sh:   shape.Shape{DType: sh.DType, AxisLengths: slices.Clone(sh.AxisLengths)},
		data: slices.Clone(data),
	}, nil
}

func toBytes[T dtype.GoDataType](values []T) []byte {
	if len(values) == 0 {
		return []byte{}
	}
	size := len(values) * int(unsafe.Sizeof(values[0]))
	return slices.Clone(unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), size))
}

// TensorFrom returns a tensor given its values and the length of its axes.
// The number of values must match the axis lengths.
func TensorFrom[T dtype.GoDataType](values []T, dims ...int) (*Tensor, error) {
	return NewTensor(&shape.Shape{
		DType:       dtype.Generic[T](),
		AxisLengths: dims,
	}, toBytes(values))
}

// ScalarTensor returns a tensor without axes storing a single value.
func ScalarTensor[T dtype.GoDataType](v T) *Tensor {
	return &Tensor{
		sh:   shape.Shape{DType: dtype.Generic[T]()},
		data: toBytes([]T{v}),
	}
}

// Shape returns a copy of the backend shape of the tensor.
func (t *Tensor) Shape() *shape.Shape {
	return &shape.Shape{DType: t.sh.DType, AxisLengths: slices.Clone(t.sh.AxisLengths)}
}

// DType returns the data type of the elements.
func (t *Tensor) DType() dtype.DataType {
	return t.sh.DType
}

// Dims returns the length of each axis.
func (t *Tensor) Dims() []int {
	return slices.Clone(t.sh.AxisLengths)
}

// Rank returns the number of axes.
func (t *Tensor) Rank() int {
	return len(t.sh.AxisLengths)
}

// Size returns the number of elements.
func (t *Tensor) Size() int {
	size := 1
	for _, l := range t.sh.AxisLengths {
		size *= l
	}
	return size
}

// Bytes returns a copy of the raw row-major data.
func (t *Tensor) Bytes() []byte {
	return slices.Clone(t.data)
}

// Type returns the type of the tensor.
func (t *Tensor) Type() *TensorType {
	return &TensorType{DType: t.sh.DType, Shape: ShapeFromInts(t.sh.AxisLengths)}
}

// Reshape returns a tensor with the same data and different axis lengths.
func (t *Tensor) Reshape(dims ...int) (*Tensor, error) {
	sh := &shape.Shape{DType: t.sh.DType, AxisLengths: dims}
	if sh.ByteSize() != len(t.data) {
		return nil, errors.Errorf("cannot reshape %v into %v: number of elements differs", t.sh.AxisLengths, dims)
	}
	return &Tensor{
		sh:   shape.Shape{DType: t.sh.DType, AxisLengths: slices.Clone(dims)},
		data: t.data,
	}, nil
}

// Select returns a tensor of the given axis lengths built from the elements
// of t at the given flat row-major indices.
func (t *Tensor) Select(indices []int, dims ...int) (*Tensor, error) {
	sh := &shape.Shape{DType: t.sh.DType, AxisLengths: dims}
	if sh.Size() != len(indices) {
		return nil, errors.Errorf("cannot select %d elements into a tensor of shape %v", len(indices), dims)
	}
	size := t.Size()
	elt := dtype.Sizeof(t.sh.DType)
	data := make([]byte, len(indices)*elt)
	for i, index := range indices {
		if index < 0 || index >= size {
			return nil, errors.Errorf("index %d out of range [0, %d)", index, size)
		}
		copy(data[i*elt:(i+1)*elt], t.data[index*elt:(index+1)*elt])
	}
	return &Tensor{
		sh:   shape.Shape{DType: t.sh.DType, AxisLengths: slices.Clone(dims)},
		data: data,
	}, nil
}

// RowMajorStrides returns the number of elements between two consecutive
// indices of each axis.
func RowMajorStrides(dims []int) []int {
	strides := make([]int, len(dims))
	stride := 1
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= dims[i]
	}
	return strides
}

// Unravel writes in index the position of the element at a flat row-major offset.
func Unravel(offset int, dims []int, index []int) {
	for i := len(dims) - 1; i >= 0; i-- {
		if dims[i] == 0 {
			index[i] = 0
			continue
		}
		index[i] = offset % dims[i]
		offset /= dims[i]
	}
}

// Equal returns true if two tensors have the same type and content.
func (t *Tensor) Equal(other *Tensor) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	return t.sh.DType == other.sh.DType &&
		slices.Equal(t.sh.AxisLengths, other.sh.AxisLengths) &&
		bytes.Equal(t.data, other.data)
}

// String representation of the tensor.
func (t *Tensor) String() string {
	switch t.sh.DType {
	case dtype.Bool:
		return sprint[bool](t)
	case dtype.Float32:
		return sprint[float32](t)
	case dtype.Float64:
		return sprint[float64](t)
	case dtype.Int32:
		return sprint[int32](t)
	case dtype.Int64:
		return sprint[int64](t)
	case dtype.Uint32:
		return sprint[uint32](t)
	case dtype.Uint64:
		return sprint[uint64](t)
	}
	return t.Type().String() + "{...}"
}

func sprint[T dtype.GoDataType](t *Tensor) string {
	return fmttensor.Sprint(flat[T](t), t.sh.AxisLengths)
}

func flat[T dtype.GoDataType](t *Tensor) []T {
	if len(t.data) == 0 {
		return []T{}
	}
	return slices.Clone(dtype.ToSlice[T](t.data))
}

// ToSlice returns a copy of the elements of a tensor.
// The data type of the tensor must match the Go type T.
func ToSlice[T dtype.GoDataType](t *Tensor) ([]T, error) {
	if want := dtype.Generic[T](); want != t.sh.DType {
		return nil, errors.Errorf("cannot read %s tensor as %s", t.sh.DType, want)
	}
	return flat[T](t), nil
}

// ToScalar returns the value stored by a constant.
// The constant must have exactly one element and its data type must match T.
func ToScalar[T dtype.GoDataType](c *Const) (T, error) {
	var zero T
	t := c.Value()
	if t.Size() != 1 {
		return zero, errors.Errorf("cannot read a constant of shape %v as a scalar", t.sh.AxisLengths)
	}
	vals, err := ToSlice[T](t)
	if err != nil {
		return zero, err
	}
	return vals[0], nil
}

type number interface {
	constraints.Integer | constraints.Float
}

func convert[S, T number](vals []S) []T {
	r := make([]T, len(vals))
	for i, v := range vals {
		r[i] = T(v)
	}
	return r
}

// ValuesAs returns the elements of a numerical tensor converted to T.
func ValuesAs[T number](t *Tensor) ([]T, error) {
	switch t.sh.DType {
	case dtype.Float32:
		return convert[float32, T](flat[float32](t)), nil
	case dtype.Float64:
		return convert[float64, T](flat[float64](t)), nil
	case dtype.Int32:
		return convert[int32, T](flat[int32](t)), nil
	case dtype.Int64:
		return convert[int64, T](flat[int64](t)), nil
	case dtype.Uint32:
		return convert[uint32, T](flat[uint32](t)), nil
	case dtype.Uint64:
		return convert[uint64, T](flat[uint64](t)), nil
	}
	return nil, errors.Errorf("cannot convert %s values to a number", t.sh.DType)
}

// IntValues returns the elements of an integral constant as int64.
func IntValues(c *Const) ([]int64, error) {
	t := c.Value()
	if !irkind.IsIntegral(t.DType()) {
		return nil, errors.Errorf("%s constant is not integral", t.DType())
	}
	return ValuesAs[int64](t)
}

// IntScalar returns the value of an integral constant with a single element as int64.
func IntScalar(c *Const) (int64, error) {
	vals, err := IntValues(c)
	if err != nil {
		return 0, err
	}
	if len(vals) != 1 {
		return 0, errors.Errorf("cannot read a constant of shape %v as a scalar", c.Value().sh.AxisLengths)
	}
	return vals[0], nil
}

// BoolScalar returns the value of a boolean constant with a single element.
func BoolScalar(c *Const) (bool, error) {
	return ToScalar[bool](c)
}

// ConvertTo returns a tensor of values converted to the target data type.
func ConvertTo[T number](vals []T, dt dtype.DataType, dims ...int) (*Tensor, error) {
	switch dt {
	case dtype.Float32:
		return TensorFrom(convert[T, float32](vals), dims...)
	case dtype.Float64:
		return TensorFrom(convert[T, float64](vals), dims...)
	case dtype.Int32:
		return TensorFrom(convert[T, int32](vals), dims...)
	case dtype.Int64:
		return TensorFrom(convert[T, int64](vals), dims...)
	case dtype.Uint32:
		return TensorFrom(convert[T, uint32](vals), dims...)
	case dtype.Uint64:
		return TensorFrom(convert[T, uint64](vals), dims...)
	}
	return nil, errors.Errorf("cannot convert numbers to %s", dt)
}
