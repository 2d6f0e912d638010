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

// Package fmttensor formats the content of constant tensors on a single line.
package fmttensor

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
)

// MaxAxisElements is the maximum number of elements printed along an axis.
// Remaining elements are replaced by an ellipsis.
const MaxAxisElements = 8

type builder[T dtype.GoDataType] struct {
	w       *strings.Builder
	data    []T
	axes    []int
	offsets []int
}

func axesOffsets(axes []int) []int {
	offsets := make([]int, len(axes))
	for i := range offsets {
		offsets[i] = 1
		for _, d := range axes[i+1:] {
			offsets[i] *= d
		}
	}
	return offsets
}

func newBuilder[T dtype.GoDataType](data []T, axes []int) (*builder[T], error) {
	b := &builder[T]{
		w:       &strings.Builder{},
		data:    data,
		axes:    axes,
		offsets: axesOffsets(axes),
	}
	total := 1
	for _, size := range b.axes {
		total *= size
	}
	if total != len(data) {
		return b, errors.Errorf("len(data)=%d does not match axes %v=%d", len(data), axes, total)
	}
	return b, nil
}

func toValue[T dtype.GoDataType](x T) string {
	var fmtstr string
	switch any(x).(type) {
	case float32:
		fmtstr = "%.6f"
	case float64:
		fmtstr = "%.10f"
	default:
		return fmt.Sprint(x)
	}

	result := fmt.Sprintf(fmtstr, x)
	if strings.ContainsRune(result, '.') {
		// Remove trailing zeroes after the decimal point, and the point itself
		// if there are no digits left after it.
		result = strings.TrimRight(result, "0")
		result = strings.TrimSuffix(result, ".")
	}
	return result
}

func (b *builder[T]) printAxis(axis, offset int) {
	b.w.WriteString("{")
	n := b.axes[axis]
	for i := range min(n, MaxAxisElements) {
		if i > 0 {
			b.w.WriteString(", ")
		}
		pos := offset + i*b.offsets[axis]
		if axis == len(b.axes)-1 {
			b.w.WriteString(toValue(b.data[pos]))
			continue
		}
		b.printAxis(axis+1, pos)
	}
	if n > MaxAxisElements {
		b.w.WriteString(", ...")
	}
	b.w.WriteString("}")
}

func (b *builder[T]) printType() {
	b.w.WriteString(dtype.Generic[T]().String())
	if len(b.axes) == 0 {
		return
	}
	dims := make([]string, len(b.axes))
	for i, size := range b.axes {
		dims[i] = fmt.Sprint(size)
	}
	b.w.WriteString("[" + strings.Join(dims, ",") + "]")
}

func (b *builder[T]) printData() {
	if len(b.axes) == 0 {
		b.w.WriteString("(" + toValue(b.data[0]) + ")")
		return
	}
	b.printAxis(0, 0)
}

// SDataPrint returns a string representation of the content of a tensor without its type.
func SDataPrint[T dtype.GoDataType](data []T, axes []int) string {
	b, err := newBuilder(data, axes)
	if err != nil {
		return err.Error()
	}
	b.printData()
	return b.w.String()
}

// Sprint returns a string representation of a tensor.
func Sprint[T dtype.GoDataType](data []T, axes []int) string {
	b, err := newBuilder(data, axes)
	if err != nil {
		return err.Error()
	}
	b.printType()
	b.printData()
	return b.w.String()
}
