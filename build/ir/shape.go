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
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
)

// Dim is the length of an axis.
type Dim int

// DynamicDim is the length of an axis unknown at compile time.
const DynamicDim Dim = -1

// IsDynamic returns true if the length of the axis is unknown.
func (d Dim) IsDynamic() bool {
	return d < 0
}

// String representation of the dimension.
func (d Dim) String() string {
	if d.IsDynamic() {
		return "?"
	}
	return strconv.Itoa(int(d))
}

// Shape of a tensor: either unranked or an ordered list of dimensions.
// The zero value is the shape of a scalar.
type Shape struct {
	unranked bool
	dims     []Dim
}

// NewShape returns a ranked shape given its dimensions.
func NewShape(dims ...Dim) Shape {
	return Shape{dims: slices.Clone(dims)}
}

// ShapeFromInts returns a ranked shape given the length of its axes.
// Negative lengths are dynamic dimensions.
func ShapeFromInts[T ~int | ~int32 | ~int64](lengths []T) Shape {
	dims := make([]Dim, len(lengths))
	for i, l := range lengths {
		dims[i] = Dim(l)
		if l < 0 {
			dims[i] = DynamicDim
		}
	}
	return Shape{dims: dims}
}

// DynamicShape returns a shape of a given rank where all dimensions are dynamic.
func DynamicShape(rank int) Shape {
	dims := make([]Dim, rank)
	for i := range dims {
		dims[i] = DynamicDim
	}
	return Shape{dims: dims}
}

// UnrankedShape returns a shape for which the rank is unknown.
func UnrankedShape() Shape {
	return Shape{unranked: true}
}

// IsRanked returns true if the rank of the shape is known.
func (s Shape) IsRanked() bool {
	return !s.unranked
}

// Rank returns the number of axes or -1 if the shape is unranked.
func (s Shape) Rank() int {
	if s.unranked {
		return -1
	}
	return len(s.dims)
}

// Dims returns a copy of the dimensions of the shape.
func (s Shape) Dims() []Dim {
	return slices.Clone(s.dims)
}

// Dim returns the dimension of an axis.
// Negative axes count from the last axis.
func (s Shape) Dim(axis int) Dim {
	if axis < 0 {
		axis += len(s.dims)
	}
	if s.unranked || axis < 0 || axis >= len(s.dims) {
		return DynamicDim
	}
	return s.dims[axis]
}

// IsScalar returns true if the shape is ranked and has no axes.
func (s Shape) IsScalar() bool {
	return !s.unranked && len(s.dims) == 0
}

// IsScalarCompatible returns true if the shape has exactly one element,
// that is if all its axes have a length of 1.
func (s Shape) IsScalarCompatible() bool {
	if s.unranked {
		return false
	}
	for _, d := range s.dims {
		if d != 1 {
			return false
		}
	}
	return true
}

// IsFixed returns true if the shape is ranked and all dimensions are known.
func (s Shape) IsFixed() bool {
	if s.unranked {
		return false
	}
	for _, d := range s.dims {
		if d.IsDynamic() {
			return false
		}
	}
	return true
}

// Size returns the number of elements of a fixed shape, -1 otherwise.
func (s Shape) Size() int {
	if !s.IsFixed() {
		return -1
	}
	size := 1
	for _, d := range s.dims {
		size *= int(d)
	}
	return size
}

// Equal returns true if two shapes have the same rank and dimensions.
// Dynamic dimensions are only equal to dynamic dimensions.
func (s Shape) Equal(other Shape) bool {
	if s.unranked || other.unranked {
		return s.unranked == other.unranked
	}
	return slices.Equal(s.dims, other.dims)
}

// Compatible returns true if the two shapes could describe the same tensor.
// A dynamic dimension is compatible with any concrete dimension
// and an unranked shape is compatible with any shape.
func (s Shape) Compatible(other Shape) bool {
	if s.unranked || other.unranked {
		return true
	}
	if len(s.dims) != len(other.dims) {
		return false
	}
	for i, d := range s.dims {
		o := other.dims[i]
		if d.IsDynamic() || o.IsDynamic() {
			continue
		}
		if d != o {
			return false
		}
	}
	return true
}

// Ints returns the axis lengths of a fixed shape.
func (s Shape) Ints() ([]int, bool) {
	if !s.IsFixed() {
		return nil, false
	}
	lengths := make([]int, len(s.dims))
	for i, d := range s.dims {
		lengths[i] = int(d)
	}
	return lengths, true
}

func dimFromRight(s Shape, rank, axis int) Dim {
	i := axis - (rank - len(s.dims))
	if i < 0 {
		return 1
	}
	return s.dims[i]
}

// BroadcastShapes returns the shape of the result of an elementwise operation
// between two tensors. Axes are aligned on the right and an axis of length 1
// is broadcast to the length of the other axis.
// A dynamic dimension broadcast with a concrete dimension other than 1
// takes the concrete dimension.
func BroadcastShapes(a, b Shape) (Shape, error) {
	if a.unranked || b.unranked {
		return UnrankedShape(), nil
	}
	rank := max(len(a.dims), len(b.dims))
	dims := make([]Dim, rank)
	for axis := range dims {
		da := dimFromRight(a, rank, axis)
		db := dimFromRight(b, rank, axis)
		switch {
		case da == db:
			dims[axis] = da
		case da == 1:
			dims[axis] = db
		case db == 1:
			dims[axis] = da
		case da.IsDynamic():
			dims[axis] = db
		case db.IsDynamic():
			dims[axis] = da
		default:
			return Shape{}, errors.Errorf("cannot broadcast %s and %s: axis %d has length %d and %d", a, b, axis, da, db)
		}
	}
	return Shape{dims: dims}, nil
}

// ToBackend returns the backend shape of a fixed shape.
func (s Shape) ToBackend(dt dtype.DataType) (*shape.Shape, bool) {
	if !s.IsFixed() {
		return nil, false
	}
	lengths := make([]int, len(s.dims))
	for i, d := range s.dims {
		lengths[i] = int(d)
	}
	return &shape.Shape{DType: dt, AxisLengths: lengths}, true
}

// String representation of the shape.
func (s Shape) String() string {
	if s.unranked {
		return "[...]"
	}
	if len(s.dims) == 0 {
		return ""
	}
	dims := make([]string, len(s.dims))
	for i, d := range s.dims {
		dims[i] = d.String()
	}
	return "[" + strings.Join(dims, ",") + "]"
}
