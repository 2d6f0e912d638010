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

package evaluator

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/ops"
)

func product(dims []int) int {
	size := 1
	for _, d := range dims {
		size *= d
	}
	return size
}

func normalizeAxis(axis, rank int) (int, error) {
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		return 0, errors.Errorf("axis %d out of range for rank %d", axis, rank)
	}
	return axis, nil
}

// wrapIndex returns a valid index from an index that can count from the end.
func wrapIndex(index, length int) (int, error) {
	if index < 0 {
		index += length
	}
	if index < 0 || index >= length {
		return 0, errors.Errorf("index %d out of range [0, %d)", index, length)
	}
	return index, nil
}

func evalGather(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.GatherInput)
	if err != nil {
		return nil, err
	}
	axis, err := p.intScalar(call, ops.GatherAxis)
	if err != nil {
		return nil, err
	}
	index, err := p.arg(call, ops.GatherIndex)
	if err != nil {
		return nil, err
	}
	indices, err := p.ints(call, ops.GatherIndex)
	if err != nil {
		return nil, err
	}
	dims := x.Dims()
	if axis, err = normalizeAxis(axis, len(dims)); err != nil {
		return nil, errors.Wrap(err, "Gather")
	}
	outer := product(dims[:axis])
	inner := product(dims[axis+1:])
	length := dims[axis]
	var selected []int
	for o := range outer {
		for _, idx := range indices {
			if idx, err = wrapIndex(idx, length); err != nil {
				return nil, errors.Wrap(err, "Gather")
			}
			base := (o*length + idx) * inner
			for i := range inner {
				selected = append(selected, base+i)
			}
		}
	}
	outDims := slices.Concat(dims[:axis], index.Dims(), dims[axis+1:])
	return x.Select(selected, outDims...)
}

func evalGatherND(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.GatherNDInput)
	if err != nil {
		return nil, err
	}
	batchDims, err := p.intScalar(call, ops.GatherNDBatchDims)
	if err != nil {
		return nil, err
	}
	index, err := p.arg(call, ops.GatherNDIndex)
	if err != nil {
		return nil, err
	}
	indices, err := p.ints(call, ops.GatherNDIndex)
	if err != nil {
		return nil, err
	}
	outDims, err := GatherNDDims(x.Dims(), index.Dims(), batchDims)
	if err != nil {
		return nil, err
	}
	dims := x.Dims()
	idxDims := index.Dims()
	k := idxDims[len(idxDims)-1]
	strides := ir.RowMajorStrides(dims)
	sliceSize := product(dims[batchDims+k:])
	batchSize := product(dims[batchDims:])
	tuples := product(idxDims[:len(idxDims)-1])
	tuplesPerBatch := product(idxDims[batchDims : len(idxDims)-1])
	var selected []int
	for t := range tuples {
		offset := 0
		if tuplesPerBatch > 0 {
			offset = (t / tuplesPerBatch) * batchSize
		}
		for j := range k {
			c, err := wrapIndex(indices[t*k+j], dims[batchDims+j])
			if err != nil {
				return nil, errors.Wrap(err, "GatherND")
			}
			offset += c * strides[batchDims+j]
		}
		for s := range sliceSize {
			selected = append(selected, offset+s)
		}
	}
	return x.Select(selected, outDims...)
}

// GatherNDDims returns the shape of the result of GatherND.
func GatherNDDims(in, index []int, batchDims int) ([]int, error) {
	q := len(index)
	if q == 0 {
		return nil, errors.Errorf("GatherND: index cannot be a scalar")
	}
	k := index[q-1]
	if batchDims < 0 || batchDims >= q || batchDims+k > len(in) {
		return nil, errors.Errorf("GatherND: invalid index shape %v for input %v and %d batch dimensions", index, in, batchDims)
	}
	if !slices.Equal(in[:batchDims], index[:batchDims]) {
		return nil, errors.Errorf("GatherND: batch dimensions mismatch: %v and %v", in[:batchDims], index[:batchDims])
	}
	return slices.Concat(index[:q-1], in[batchDims+k:]), nil
}

func evalConcat(p *pass, call *ir.Call) (*ir.Tensor, error) {
	tuple, ok := call.Arg(ops.ConcatInput).(*ir.Tuple)
	if !ok {
		return nil, errors.Errorf("Concat: input %s is not a tuple", call.Arg(ops.ConcatInput))
	}
	axis, err := p.intScalar(call, ops.ConcatAxis)
	if err != nil {
		return nil, err
	}
	if tuple.Len() == 0 {
		return nil, errors.Errorf("Concat: no input")
	}
	xs := make([]*ir.Tensor, tuple.Len())
	for i, field := range tuple.Fields() {
		if xs[i], err = p.tensor(field); err != nil {
			return nil, err
		}
	}
	first := xs[0]
	if axis, err = normalizeAxis(axis, first.Rank()); err != nil {
		return nil, errors.Wrap(err, "Concat")
	}
	outDims := first.Dims()
	outDims[axis] = 0
	for _, x := range xs {
		dims := x.Dims()
		if x.DType() != first.DType() || len(dims) != len(outDims) {
			return nil, errors.Errorf("Concat: cannot concatenate %s and %s", first.Type(), x.Type())
		}
		for i, d := range dims {
			if i != axis && d != outDims[i] {
				return nil, errors.Errorf("Concat: cannot concatenate %s and %s", first.Type(), x.Type())
			}
		}
		outDims[axis] += dims[axis]
	}
	outer := product(outDims[:axis])
	var data []byte
	for o := range outer {
		for _, x := range xs {
			bytes := x.Bytes()
			block := len(bytes) / max(outer, 1)
			data = append(data, bytes[o*block:(o+1)*block]...)
		}
	}
	return ir.NewTensor(&shape.Shape{DType: first.DType(), AxisLengths: outDims}, data)
}

func evalTranspose(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.TransposeInput)
	if err != nil {
		return nil, err
	}
	perm, err := p.ints(call, ops.TransposePerm)
	if err != nil {
		return nil, err
	}
	dims := x.Dims()
	if perm, err = Permutation(perm, len(dims)); err != nil {
		return nil, err
	}
	outDims := make([]int, len(dims))
	for i, axis := range perm {
		outDims[i] = dims[axis]
	}
	strides := ir.RowMajorStrides(dims)
	size := product(outDims)
	selected := make([]int, size)
	pos := make([]int, len(outDims))
	for i := range size {
		ir.Unravel(i, outDims, pos)
		src := 0
		for a, c := range pos {
			src += c * strides[perm[a]]
		}
		selected[i] = src
	}
	return x.Select(selected, outDims...)
}

// Permutation checks a permutation of axes.
// An empty permutation reverses the axes.
func Permutation(perm []int, rank int) ([]int, error) {
	if len(perm) == 0 {
		perm = make([]int, rank)
		for i := range perm {
			perm[i] = rank - 1 - i
		}
		return perm, nil
	}
	if len(perm) != rank {
		return nil, errors.Errorf("Transpose: permutation %v does not match rank %d", perm, rank)
	}
	seen := make([]bool, rank)
	for _, axis := range perm {
		if axis < 0 || axis >= rank || seen[axis] {
			return nil, errors.Errorf("Transpose: %v is not a permutation", perm)
		}
		seen[axis] = true
	}
	return perm, nil
}

// SliceAxis is the selection of a slice along one axis.
type SliceAxis struct {
	Start, Step, Length int
}

// SliceAxes computes the elements selected along each axis of a tensor.
// Empty axes select the first len(begins) axes. Empty strides are all 1.
// Begins and ends are clamped to the length of their axis.
func SliceAxes(dims, begins, ends, axes, strides []int) ([]SliceAxis, error) {
	if len(ends) != len(begins) {
		return nil, errors.Errorf("Slice: %d begins but %d ends", len(begins), len(ends))
	}
	if len(axes) == 0 {
		axes = make([]int, len(begins))
		for i := range axes {
			axes[i] = i
		}
	}
	if len(strides) == 0 {
		strides = make([]int, len(begins))
		for i := range strides {
			strides[i] = 1
		}
	}
	if len(axes) != len(begins) || len(strides) != len(begins) {
		return nil, errors.Errorf("Slice: begins, ends, axes, and strides have different lengths")
	}
	sel := make([]SliceAxis, len(dims))
	for i, d := range dims {
		sel[i] = SliceAxis{Start: 0, Step: 1, Length: d}
	}
	for i, axis := range axes {
		axis, err := normalizeAxis(axis, len(dims))
		if err != nil {
			return nil, errors.Wrap(err, "Slice")
		}
		d, step := dims[axis], strides[i]
		if step == 0 {
			return nil, errors.Errorf("Slice: stride cannot be zero")
		}
		start, end := begins[i], ends[i]
		if start < 0 {
			start += d
		}
		if end < 0 {
			end += d
		}
		var length int
		if step > 0 {
			start = min(max(start, 0), d)
			end = min(max(end, 0), d)
			length = (end - start + step - 1) / step
		} else {
			start = min(max(start, 0), d-1)
			end = min(max(end, -1), d-1)
			length = (start - end - step - 1) / -step
		}
		sel[axis] = SliceAxis{Start: start, Step: step, Length: max(length, 0)}
	}
	return sel, nil
}

func evalSlice(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.SliceInput)
	if err != nil {
		return nil, err
	}
	var lists [4][]int
	for i, param := range []*ir.ParameterInfo{ops.SliceBegins, ops.SliceEnds, ops.SliceAxes, ops.SliceStrides} {
		if lists[i], err = p.ints(call, param); err != nil {
			return nil, err
		}
	}
	dims := x.Dims()
	sel, err := SliceAxes(dims, lists[0], lists[1], lists[2], lists[3])
	if err != nil {
		return nil, err
	}
	outDims := make([]int, len(sel))
	for i, s := range sel {
		outDims[i] = s.Length
	}
	strides := ir.RowMajorStrides(dims)
	size := product(outDims)
	selected := make([]int, size)
	pos := make([]int, len(outDims))
	for i := range size {
		ir.Unravel(i, outDims, pos)
		src := 0
		for a, c := range pos {
			src += (sel[a].Start + c*sel[a].Step) * strides[a]
		}
		selected[i] = src
	}
	return x.Select(selected, outDims...)
}

// padIndex maps a coordinate outside of [0, length) to a coordinate inside.
// It returns -1 if the coordinate takes the padding value.
func padIndex(mode ops.PadMode, c, length int) int {
	if c >= 0 && c < length {
		return c
	}
	switch mode {
	case ops.PadEdge:
		return min(max(c, 0), length-1)
	case ops.PadReflect:
		if length == 1 {
			return 0
		}
		period := 2 * (length - 1)
		c = ((c % period) + period) % period
		if c >= length {
			c = period - c
		}
		return c
	case ops.PadSymmetric:
		period := 2 * length
		c = ((c % period) + period) % period
		if c >= length {
			c = period - 1 - c
		}
		return c
	}
	return -1
}

func evalPad(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.PadInput)
	if err != nil {
		return nil, err
	}
	pads, err := p.ints(call, ops.PadPads)
	if err != nil {
		return nil, err
	}
	value, err := p.arg(call, ops.PadValue)
	if err != nil {
		return nil, err
	}
	mode := call.Op().(ops.Pad).Mode
	dims := x.Dims()
	outDims, err := PadDims(dims, pads)
	if err != nil {
		return nil, err
	}
	if value.DType() != x.DType() || value.Size() != 1 {
		return nil, errors.Errorf("Pad: padding value %s incompatible with %s", value.Type(), x.Type())
	}
	if mode != ops.PadConstant && slices.Contains(dims, 0) {
		return nil, errors.Errorf("Pad: cannot pad an empty tensor in mode %s", mode)
	}
	// The padding value is appended after the elements of x.
	size := x.Size()
	src, err := ir.NewTensor(&shape.Shape{DType: x.DType(), AxisLengths: []int{size + 1}}, append(x.Bytes(), value.Bytes()...))
	if err != nil {
		return nil, err
	}
	strides := ir.RowMajorStrides(dims)
	outSize := product(outDims)
	selected := make([]int, outSize)
	pos := make([]int, len(outDims))
	for i := range outSize {
		ir.Unravel(i, outDims, pos)
		offset := 0
		for a, c := range pos {
			idx := padIndex(mode, c-pads[a], dims[a])
			if idx < 0 {
				offset = size
				break
			}
			offset += idx * strides[a]
		}
		selected[i] = offset
	}
	return src.Select(selected, outDims...)
}

// PadDims returns the shape of a padded tensor.
// Pads list the number of elements added at the beginning of every axis
// followed by the number of elements added at the end of every axis.
func PadDims(dims, pads []int) ([]int, error) {
	if len(pads) != 2*len(dims) {
		return nil, errors.Errorf("Pad: %d pads for a tensor of rank %d", len(pads), len(dims))
	}
	out := make([]int, len(dims))
	for i, d := range dims {
		out[i] = d + pads[i] + pads[len(dims)+i]
		if out[i] < 0 {
			return nil, errors.Errorf("Pad: pads %v remove more elements than axis %d has", pads, i)
		}
	}
	return out, nil
}
