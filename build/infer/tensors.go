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

package infer

import (
	"slices"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/irkind"
	"github.com/gx-org/nnc/build/ir/ops"
	"github.com/gx-org/nnc/interp/evaluator"
)

func normalizeAxis(axis, rank int) (int, bool) {
	if axis < 0 {
		axis += rank
	}
	return axis, axis >= 0 && axis < rank
}

// sumDims adds dimensions. The result is dynamic if any dimension is dynamic.
func sumDims(dims ...ir.Dim) ir.Dim {
	var sum ir.Dim
	for _, d := range dims {
		if d.IsDynamic() {
			return ir.DynamicDim
		}
		sum += d
	}
	return sum
}

// shapeLength returns the number of elements of a rank-1 shape argument
// or -1 if it is unknown.
func shapeLength(ctx *Context, param *ir.ParameterInfo) int {
	typ, invalid := ctx.Tensor(param)
	if invalid != nil || typ.Shape.Rank() != 1 {
		return -1
	}
	return int(typ.Shape.Dim(0))
}

// dynamicOfLength returns a shape with n dynamic dimensions
// or an unranked shape if n is negative.
func dynamicOfLength(n int) ir.Shape {
	if n < 0 {
		return ir.UnrankedShape()
	}
	return ir.DynamicShape(n)
}

// dynamicLike returns a shape of the same rank as in where all dimensions are dynamic.
func dynamicLike(in ir.Shape) ir.Shape {
	return dynamicOfLength(in.Rank())
}

func inferGather(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.GatherInput)
	if invalid != nil {
		return invalid
	}
	index, invalid := ctx.Tensor(ops.GatherIndex)
	if invalid != nil {
		return invalid
	}
	axis, ok, invalid := ctx.ArgumentInt(ops.GatherAxis)
	if invalid != nil {
		return invalid
	}
	if !ok {
		return ir.Invalidf("Gather axis must be constant")
	}
	if !x.Shape.IsRanked() || !index.Shape.IsRanked() {
		return &ir.TensorType{DType: x.DType, Shape: ir.UnrankedShape()}
	}
	dims := x.Shape.Dims()
	norm, ok := normalizeAxis(axis, len(dims))
	if !ok {
		return ir.Invalidf("Gather axis %d out of range for %s", axis, x)
	}
	out := slices.Concat(dims[:norm], index.Shape.Dims(), dims[norm+1:])
	return &ir.TensorType{DType: x.DType, Shape: ir.NewShape(out...)}
}

func inferGatherND(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.GatherNDInput)
	if invalid != nil {
		return invalid
	}
	index, invalid := ctx.Tensor(ops.GatherNDIndex)
	if invalid != nil {
		return invalid
	}
	batchDims, ok, invalid := ctx.ArgumentInt(ops.GatherNDBatchDims)
	if invalid != nil {
		return invalid
	}
	if !ok {
		return ir.Invalidf("GatherND batchDims must be constant")
	}
	if !x.Shape.IsRanked() || !index.Shape.IsRanked() {
		return &ir.TensorType{DType: x.DType, Shape: ir.UnrankedShape()}
	}
	q := index.Shape.Rank()
	if q == 0 {
		return ir.Invalidf("GatherND index cannot be a scalar")
	}
	k := index.Shape.Dim(q - 1)
	if k.IsDynamic() {
		return &ir.TensorType{DType: x.DType, Shape: ir.UnrankedShape()}
	}
	dims := x.Shape.Dims()
	if batchDims < 0 || batchDims >= q || batchDims+int(k) > len(dims) {
		return ir.Invalidf("GatherND: invalid index %s for input %s and %d batch dimensions", index, x, batchDims)
	}
	indexDims := index.Shape.Dims()
	if !ir.NewShape(dims[:batchDims]...).Compatible(ir.NewShape(indexDims[:batchDims]...)) {
		return ir.Invalidf("GatherND: batch dimensions mismatch between %s and %s", x, index)
	}
	out := slices.Concat(indexDims[:q-1], dims[batchDims+int(k):])
	return &ir.TensorType{DType: x.DType, Shape: ir.NewShape(out...)}
}

func inferRange(ctx *Context) ir.Type {
	var vals [3]int
	for i, param := range []*ir.ParameterInfo{ops.RangeBegin, ops.RangeEnd, ops.RangeStep} {
		v, ok, invalid := ctx.ArgumentInt(param)
		if invalid != nil {
			return invalid
		}
		if !ok {
			return ir.Invalidf("Range begin, end, step should be constant")
		}
		vals[i] = v
	}
	n, err := evaluator.RangeLength(vals[0], vals[1], vals[2])
	if err != nil {
		return ir.Invalidf("%v", err)
	}
	return ir.NewTensorType(dtype.Int32, ir.Dim(n))
}

func inferExpand(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.ExpandInput)
	if invalid != nil {
		return invalid
	}
	target, ok, invalid := ctx.ArgumentInts(ops.ExpandShape)
	if invalid != nil {
		return invalid
	}
	if !ok {
		return ir.Invalidf("Expand shape must be constant")
	}
	sh, err := ir.BroadcastShapes(x.Shape, ir.ShapeFromInts(target))
	if err != nil {
		return ir.Invalidf("%v", err)
	}
	return &ir.TensorType{DType: x.DType, Shape: sh}
}

func inferReshape(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.ReshapeInput)
	if invalid != nil {
		return invalid
	}
	target, ok, invalid := ctx.ArgumentInts(ops.ReshapeShape)
	if invalid != nil {
		return invalid
	}
	if !ok {
		return &ir.TensorType{DType: x.DType, Shape: dynamicOfLength(shapeLength(ctx, ops.ReshapeShape))}
	}
	if in, fixed := x.Shape.Ints(); fixed {
		dims, err := evaluator.ReshapeDims(in, target)
		if err != nil {
			return ir.Invalidf("%v", err)
		}
		if size := x.Shape.Size(); ir.ShapeFromInts(dims).Size() != size {
			return ir.Invalidf("cannot reshape %s to %v", x, target)
		}
		return &ir.TensorType{DType: x.DType, Shape: ir.ShapeFromInts(dims)}
	}
	dims := make([]ir.Dim, len(target))
	for i, d := range target {
		switch {
		case d == 0:
			dims[i] = x.Shape.Dim(i)
		case d < 0:
			dims[i] = ir.DynamicDim
		default:
			dims[i] = ir.Dim(d)
		}
	}
	return &ir.TensorType{DType: x.DType, Shape: ir.NewShape(dims...)}
}

func inferBroadcast(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.BroadcastInput)
	if invalid != nil {
		return invalid
	}
	target, ok, invalid := ctx.ArgumentInts(ops.BroadcastShape)
	if invalid != nil {
		return invalid
	}
	if !ok {
		return &ir.TensorType{DType: x.DType, Shape: dynamicOfLength(shapeLength(ctx, ops.BroadcastShape))}
	}
	targetShape := ir.ShapeFromInts(target)
	sh, err := ir.BroadcastShapes(x.Shape, targetShape)
	if err != nil || !sh.Compatible(targetShape) {
		return ir.Invalidf("cannot broadcast %s to %v", x, target)
	}
	return &ir.TensorType{DType: x.DType, Shape: targetShape}
}

func inferConcat(ctx *Context) ir.Type {
	tuple, invalid := CheckArgumentType[*ir.TupleType](ctx, ops.ConcatInput)
	if invalid != nil {
		return invalid
	}
	axis, ok, invalid := ctx.ArgumentInt(ops.ConcatAxis)
	if invalid != nil {
		return invalid
	}
	if !ok {
		return ir.Invalidf("Concat axis must be constant")
	}
	if len(tuple.Fields) == 0 {
		return ir.Invalidf("Concat requires at least one tensor")
	}
	var fields []*ir.TensorType
	for i, field := range tuple.Fields {
		if field.Kind() == irkind.Any {
			return ir.AnyType()
		}
		tensor, isTensor := field.(*ir.TensorType)
		if !isTensor {
			return ir.Invalidf("Concat input %d is a %s and not a tensor", i, field)
		}
		fields = append(fields, tensor)
	}
	first := fields[0]
	if !first.Shape.IsRanked() {
		return &ir.TensorType{DType: first.DType, Shape: ir.UnrankedShape()}
	}
	rank := first.Shape.Rank()
	norm, ok := normalizeAxis(axis, rank)
	if !ok {
		return ir.Invalidf("Concat axis %d out of range for %s", axis, first)
	}
	dims := first.Shape.Dims()
	for _, field := range fields[1:] {
		if field.DType != first.DType {
			return ir.Invalidf("cannot concatenate %s and %s", first, field)
		}
		if !field.Shape.IsRanked() {
			continue
		}
		if field.Shape.Rank() != rank {
			return ir.Invalidf("cannot concatenate %s and %s", first, field)
		}
		for i, d := range field.Shape.Dims() {
			switch {
			case i == norm:
				dims[i] = sumDims(dims[i], d)
			case dims[i].IsDynamic():
				dims[i] = d
			case !d.IsDynamic() && d != dims[i]:
				return ir.Invalidf("cannot concatenate %s and %s along axis %d", first, field, norm)
			}
		}
	}
	for _, field := range fields[1:] {
		if !field.Shape.IsRanked() {
			dims[norm] = ir.DynamicDim
		}
	}
	return &ir.TensorType{DType: first.DType, Shape: ir.NewShape(dims...)}
}

func inferTranspose(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.TransposeInput)
	if invalid != nil {
		return invalid
	}
	perm, ok, invalid := ctx.ArgumentInts(ops.TransposePerm)
	if invalid != nil {
		return invalid
	}
	if !ok || !x.Shape.IsRanked() {
		return &ir.TensorType{DType: x.DType, Shape: dynamicLike(x.Shape)}
	}
	perm, err := evaluator.Permutation(perm, x.Shape.Rank())
	if err != nil {
		return ir.Invalidf("%v", err)
	}
	dims := make([]ir.Dim, len(perm))
	for i, axis := range perm {
		dims[i] = x.Shape.Dim(axis)
	}
	return &ir.TensorType{DType: x.DType, Shape: ir.NewShape(dims...)}
}

func inferSlice(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.SliceInput)
	if invalid != nil {
		return invalid
	}
	var lists [4][]int
	for i, param := range []*ir.ParameterInfo{ops.SliceBegins, ops.SliceEnds, ops.SliceAxes, ops.SliceStrides} {
		vals, ok, invalid := ctx.ArgumentInts(param)
		if invalid != nil {
			return invalid
		}
		if !ok {
			return &ir.TensorType{DType: x.DType, Shape: dynamicLike(x.Shape)}
		}
		lists[i] = vals
	}
	if !x.Shape.IsRanked() {
		return x
	}
	// Dynamic dimensions are replaced by a placeholder length and
	// restored after the selection has been computed.
	in := x.Shape.Dims()
	lengths := make([]int, len(in))
	for i, d := range in {
		lengths[i] = max(int(d), 0)
	}
	sel, err := evaluator.SliceAxes(lengths, lists[0], lists[1], lists[2], lists[3])
	if err != nil {
		return ir.Invalidf("%v", err)
	}
	dims := make([]ir.Dim, len(sel))
	for i, s := range sel {
		dims[i] = ir.Dim(s.Length)
		if in[i].IsDynamic() {
			dims[i] = ir.DynamicDim
		}
	}
	return &ir.TensorType{DType: x.DType, Shape: ir.NewShape(dims...)}
}

func inferPad(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.PadInput)
	if invalid != nil {
		return invalid
	}
	value, invalid := ctx.Tensor(ops.PadValue)
	if invalid != nil {
		return invalid
	}
	if value.DType != x.DType {
		return ir.Invalidf("padding value %s incompatible with %s", value, x)
	}
	pads, ok, invalid := ctx.ArgumentInts(ops.PadPads)
	if invalid != nil {
		return invalid
	}
	if !ok || !x.Shape.IsRanked() {
		return &ir.TensorType{DType: x.DType, Shape: dynamicLike(x.Shape)}
	}
	rank := x.Shape.Rank()
	if len(pads) != 2*rank {
		return ir.Invalidf("Pad: %d pads for %s", len(pads), x)
	}
	dims := make([]ir.Dim, rank)
	for i, d := range x.Shape.Dims() {
		dims[i] = sumDims(d, ir.Dim(pads[i]), ir.Dim(pads[rank+i]))
		if !dims[i].IsDynamic() && dims[i] < 0 {
			return ir.Invalidf("Pad: pads %v remove more elements than axis %d of %s has", pads, i, x)
		}
	}
	return &ir.TensorType{DType: x.DType, Shape: ir.NewShape(dims...)}
}

func inferSqueeze(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.SqueezeInput)
	if invalid != nil {
		return invalid
	}
	axes, ok, invalid := ctx.ArgumentInts(ops.SqueezeDim)
	if invalid != nil {
		return invalid
	}
	if !ok || !x.Shape.IsRanked() || (len(axes) == 0 && !x.Shape.IsFixed()) {
		return &ir.TensorType{DType: x.DType, Shape: ir.UnrankedShape()}
	}
	in := x.Shape.Dims()
	removed := make([]bool, len(in))
	for i, d := range in {
		removed[i] = len(axes) == 0 && d == 1
	}
	for _, axis := range axes {
		norm, ok := normalizeAxis(axis, len(in))
		if !ok {
			return ir.Invalidf("Squeeze axis %d out of range for %s", axis, x)
		}
		if d := in[norm]; !d.IsDynamic() && d != 1 {
			return ir.Invalidf("Squeeze axis %d of %s has a length different from 1", axis, x)
		}
		removed[norm] = true
	}
	var dims []ir.Dim
	for i, d := range in {
		if !removed[i] {
			dims = append(dims, d)
		}
	}
	return &ir.TensorType{DType: x.DType, Shape: ir.NewShape(dims...)}
}

func inferUnsqueeze(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.UnsqueezeInput)
	if invalid != nil {
		return invalid
	}
	axes, ok, invalid := ctx.ArgumentInts(ops.UnsqueezeDim)
	if invalid != nil {
		return invalid
	}
	if !x.Shape.IsRanked() {
		return x
	}
	if !ok {
		n := shapeLength(ctx, ops.UnsqueezeDim)
		if n < 0 {
			return &ir.TensorType{DType: x.DType, Shape: ir.UnrankedShape()}
		}
		return &ir.TensorType{DType: x.DType, Shape: ir.DynamicShape(x.Shape.Rank() + n)}
	}
	in := x.Shape.Dims()
	rank := len(in) + len(axes)
	inserted := make([]bool, rank)
	for _, axis := range axes {
		norm, ok := normalizeAxis(axis, rank)
		if !ok || inserted[norm] {
			return ir.Invalidf("Unsqueeze: invalid axes %v for %s", axes, x)
		}
		inserted[norm] = true
	}
	dims := make([]ir.Dim, rank)
	next := 0
	for i := range dims {
		if inserted[i] {
			dims[i] = 1
			continue
		}
		dims[i] = in[next]
		next++
	}
	return &ir.TensorType{DType: x.DType, Shape: ir.NewShape(dims...)}
}

func inferShapeOf(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.ShapeOfInput)
	if invalid != nil {
		return invalid
	}
	if !x.Shape.IsRanked() {
		return ir.NewTensorType(dtype.Int64, ir.DynamicDim)
	}
	return ir.NewTensorType(dtype.Int64, ir.Dim(x.Shape.Rank()))
}
