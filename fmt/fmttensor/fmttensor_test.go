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

package fmttensor_test

import (
	"testing"

	"github.com/gx-org/nnc/fmt/fmttensor"
)

func buildData(axes []int) []int32 {
	total := int32(1)
	for _, axisSize := range axes {
		total *= int32(axisSize)
	}
	data := make([]int32, total)
	for i := range total {
		data[i] = i
	}
	return data
}

func TestSprint(t *testing.T) {
	tests := []struct {
		data []int32
		axes []int
		want string
	}{
		{
			data: []int32{42},
			want: "int32(42)",
		},
		{
			data: []int32{1, 2, 3, 4, 5, 6},
			axes: []int{6},
			want: "int32[6]{1, 2, 3, 4, 5, 6}",
		},
		{
			axes: []int{2, 3},
			want: "int32[2,3]{{0, 1, 2}, {3, 4, 5}}",
		},
		{
			axes: []int{2, 1, 2},
			want: "int32[2,1,2]{{{0, 1}}, {{2, 3}}}",
		},
		{
			axes: []int{10},
			want: "int32[10]{0, 1, 2, 3, 4, 5, 6, 7, ...}",
		},
		{
			axes: []int{0},
			want: "int32[0]{}",
		},
		{
			data: []int32{1, 2},
			axes: []int{3},
			want: "len(data)=2 does not match axes [3]=3",
		},
	}
	for i, test := range tests {
		if test.data == nil {
			test.data = buildData(test.axes)
		}
		got := fmttensor.Sprint(test.data, test.axes)
		if got != test.want {
			t.Errorf("test %d: incorrect tensor formatting:\naxes: %v\ndata: %v\ngot:  %s\nwant: %s", i, test.axes, test.data, got, test.want)
		}
	}
}

func TestSDataPrintFloat(t *testing.T) {
	got := fmttensor.SDataPrint([]float32{1, 0.5, 2.25}, []int{3})
	if want := "{1, 0.5, 2.25}"; got != want {
		t.Errorf("got %s but want %s", got, want)
	}
}
