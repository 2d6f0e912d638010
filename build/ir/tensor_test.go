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

package ir_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/nnc/build/ir"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestScalarRoundTrip(t *testing.T) {
	c := ir.NewConst(ir.ScalarTensor[int32](5))
	got, err := ir.ToScalar[int32](c)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("got %d but want 5", got)
	}
	if _, err := ir.ToScalar[float32](c); err == nil {
		t.Errorf("reading an int32 constant as a float32 should fail")
	}
	i64, err := ir.IntScalar(c)
	if err != nil {
		t.Fatal(err)
	}
	if i64 != 5 {
		t.Errorf("got %d but want 5", i64)
	}
	if !c.Type().Equal(ir.ScalarType(dtype.Int32)) {
		t.Errorf("incorrect type %s", c.Type())
	}
}

func TestTensorRowMajor(t *testing.T) {
	tensor, err := ir.TensorFrom([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ir.ToSlice[float32](tensor)
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(got, []float32{1, 2, 3, 4, 5, 6}) {
		t.Errorf("incorrect values: got %v", got)
	}
	if !cmp.Equal(tensor.Dims(), []int{2, 3}) {
		t.Errorf("incorrect dims: got %v", tensor.Dims())
	}
	if want := "float32[2,3]{{1, 2, 3}, {4, 5, 6}}"; tensor.String() != want {
		t.Errorf("incorrect string: got %s but want %s", tensor.String(), want)
	}
	if _, err := ir.ToScalar[float32](ir.NewConst(tensor)); err == nil {
		t.Errorf("reading a [2,3] constant as a scalar should fail")
	}
}

func TestScalarCompatible(t *testing.T) {
	tensor, err := ir.TensorFrom([]int64{7}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ir.ToScalar[int64](ir.NewConst(tensor))
	if err != nil {
		t.Fatal(err)
	}
	if got != 7 {
		t.Errorf("got %d but want 7", got)
	}
}

func TestNewTensorErrors(t *testing.T) {
	tests := []struct {
		sh   *shape.Shape
		data []byte
	}{
		{sh: nil, data: nil},
		{sh: &shape.Shape{DType: dtype.Int32, AxisLengths: []int{2}}, data: make([]byte, 4)},
		{sh: &shape.Shape{DType: dtype.Int32, AxisLengths: []int{-1}}, data: nil},
	}
	for i, test := range tests {
		if _, err := ir.NewTensor(test.sh, test.data); err == nil {
			t.Errorf("test %d: expected an error", i)
		}
	}
	if _, err := ir.TensorFrom([]int32{1, 2, 3}, 2, 2); err == nil {
		t.Errorf("expected an error when the number of values does not match the shape")
	}
}

func TestConstEqual(t *testing.T) {
	a := ir.NewConst(ir.ScalarTensor[int32](3))
	b := ir.NewConst(ir.ScalarTensor[int32](3))
	c := ir.NewConst(ir.ScalarTensor[int64](3))
	vec, err := ir.TensorFrom([]int32{3}, 1)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y *ir.Const
		want bool
	}{
		{x: a, y: a, want: true},
		{x: a, y: b, want: true},
		{x: a, y: c, want: false},
		{x: a, y: ir.NewConst(vec), want: false},
		{x: a, y: nil, want: false},
	}
	for i, test := range tests {
		if got := ir.ConstEqual(test.x, test.y); got != test.want {
			t.Errorf("test %d: ConstEqual(%v, %v) = %t but want %t", i, test.x, test.y, got, test.want)
		}
	}
}

func TestIntValues(t *testing.T) {
	tensor, err := ir.TensorFrom([]uint32{1, 2, 3}, 3)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ir.IntValues(ir.NewConst(tensor))
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(got, []int64{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
	floats, err := ir.TensorFrom([]float32{1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ir.IntValues(ir.NewConst(floats)); err == nil {
		t.Errorf("reading float values as integers should fail")
	}
}

func TestReshape(t *testing.T) {
	tensor, err := ir.TensorFrom([]int32{1, 2, 3, 4, 5, 6}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	reshaped, err := tensor.Reshape(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(reshaped.Dims(), []int{3, 2}) {
		t.Errorf("incorrect dims %v", reshaped.Dims())
	}
	if !cmp.Equal(reshaped.Bytes(), tensor.Bytes()) {
		t.Errorf("reshape should not change the data")
	}
	if _, err := tensor.Reshape(4); err == nil {
		t.Errorf("reshaping to a different number of elements should fail")
	}
}

func TestTensorRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	properties.Property("values read from a tensor are the values it was built from", prop.ForAll(
		func(rows int, values []int32) bool {
			cols := len(values) / rows
			values = values[:rows*cols]
			tensor, err := ir.TensorFrom(values, rows, cols)
			if err != nil {
				return false
			}
			got, err := ir.ToSlice[int32](tensor)
			if err != nil {
				return false
			}
			return cmp.Equal(got, values)
		},
		gen.IntRange(1, 4),
		gen.SliceOfN(12, gen.Int32()),
	))
	properties.TestingRun(t)
}
