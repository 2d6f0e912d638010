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
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/irkind"
	"github.com/gx-org/nnc/build/ir/ops"
)

// rules is indexed by operator kind.
var rules [ops.NumKinds]rule

func init() {
	rules[ir.BinaryKind] = inferBinary
	rules[ir.UnaryKind] = inferUnary
	rules[ir.CompareKind] = inferCompare
	rules[ir.ClampKind] = inferClamp
	rules[ir.CastKind] = inferCast
	rules[ir.ReduceKind] = inferReduce
	rules[ir.ReduceArgKind] = inferReduceArg
	rules[ir.MatMulKind] = inferMatMul
	rules[ir.GatherKind] = inferGather
	rules[ir.GatherNDKind] = inferGatherND
	rules[ir.RangeKind] = inferRange
	rules[ir.ExpandKind] = inferExpand
	rules[ir.ReshapeKind] = inferReshape
	rules[ir.BroadcastKind] = inferBroadcast
	rules[ir.ConcatKind] = inferConcat
	rules[ir.TransposeKind] = inferTranspose
	rules[ir.SliceKind] = inferSlice
	rules[ir.PadKind] = inferPad
	rules[ir.SqueezeKind] = inferSqueeze
	rules[ir.UnsqueezeKind] = inferUnsqueeze
	rules[ir.ShapeOfKind] = inferShapeOf
	rules[ir.Conv2DKind] = inferConv2D
	rules[ir.ReluKind] = inferActivation
	rules[ir.SigmoidKind] = inferActivation
	rules[ir.LeakyReluKind] = inferActivation
}

// elementwise returns the type of an elementwise operation between tensors.
// All the tensors must have the same data type.
func elementwise(ctx *Context, params ...*ir.ParameterInfo) (*ir.TensorType, *ir.InvalidType) {
	var dt dtype.DataType
	sh := ir.NewShape()
	for i, param := range params {
		x, invalid := ctx.Tensor(param)
		if invalid != nil {
			return nil, invalid
		}
		if i == 0 {
			dt = x.DType
		} else if x.DType != dt {
			return nil, ir.Invalidf("data type mismatch: %s and %s", dt, x.DType)
		}
		var err error
		if sh, err = ir.BroadcastShapes(sh, x.Shape); err != nil {
			return nil, ir.Invalidf("%v", err)
		}
	}
	return &ir.TensorType{DType: dt, Shape: sh}, nil
}

func inferBinary(ctx *Context) ir.Type {
	typ, invalid := elementwise(ctx, ops.BinaryLHS, ops.BinaryRHS)
	if invalid != nil {
		return invalid
	}
	if !irkind.IsNumeric(typ.DType) {
		return ir.Invalidf("%s not defined on %s", ctx.Call().Op(), typ.DType)
	}
	return typ
}

func inferUnary(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.UnaryInput)
	if invalid != nil {
		return invalid
	}
	op := ctx.Call().Op().(ops.Unary).Op
	switch {
	case op == ops.LogicalNot && x.DType != dtype.Bool:
		return ir.Invalidf("%s requires a boolean tensor but got %s", op, x)
	case op != ops.LogicalNot && !irkind.IsNumeric(x.DType):
		return ir.Invalidf("%s requires a numerical tensor but got %s", op, x)
	}
	return x
}

func inferCompare(ctx *Context) ir.Type {
	typ, invalid := elementwise(ctx, ops.CompareLHS, ops.CompareRHS)
	if invalid != nil {
		return invalid
	}
	return &ir.TensorType{DType: dtype.Bool, Shape: typ.Shape}
}

func inferClamp(ctx *Context) ir.Type {
	typ, invalid := elementwise(ctx, ops.ClampInput, ops.ClampMin, ops.ClampMax)
	if invalid != nil {
		return invalid
	}
	return typ
}

func inferCast(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.CastInput)
	if invalid != nil {
		return invalid
	}
	return &ir.TensorType{DType: ctx.Call().Op().(ops.Cast).DType, Shape: x.Shape}
}

// reduceShape returns the shape of a tensor reduced along axes.
func reduceShape(in ir.Shape, axes []int, keepDims bool) (ir.Shape, *ir.InvalidType) {
	if !in.IsRanked() {
		return in, nil
	}
	rank := in.Rank()
	reduced := make([]bool, rank)
	for _, axis := range axes {
		norm, ok := normalizeAxis(axis, rank)
		if !ok {
			return ir.Shape{}, ir.Invalidf("axis %d out of range for rank %d", axis, rank)
		}
		reduced[norm] = true
	}
	var dims []ir.Dim
	for axis, d := range in.Dims() {
		if len(axes) == 0 || reduced[axis] {
			if keepDims {
				dims = append(dims, 1)
			}
			continue
		}
		dims = append(dims, d)
	}
	return ir.NewShape(dims...), nil
}

func inferReduce(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.ReduceInput)
	if invalid != nil {
		return invalid
	}
	init, invalid := ctx.Tensor(ops.ReduceInitValue)
	if invalid != nil {
		return invalid
	}
	if init.DType != x.DType {
		return ir.Invalidf("initial value %s incompatible with %s", init, x)
	}
	keepDims, ok, invalid := ctx.ArgumentBool(ops.ReduceKeepDims)
	if invalid != nil {
		return invalid
	}
	if !ok {
		return ir.Invalidf("Reduce keepDims must be constant")
	}
	axes, ok, invalid := ctx.ArgumentInts(ops.ReduceAxis)
	if invalid != nil {
		return invalid
	}
	if !ok {
		if keepDims && x.Shape.IsRanked() {
			return &ir.TensorType{DType: x.DType, Shape: ir.DynamicShape(x.Shape.Rank())}
		}
		return &ir.TensorType{DType: x.DType, Shape: ir.UnrankedShape()}
	}
	sh, invalid := reduceShape(x.Shape, axes, keepDims)
	if invalid != nil {
		return invalid
	}
	return &ir.TensorType{DType: x.DType, Shape: sh}
}

func inferReduceArg(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.ReduceArgInput)
	if invalid != nil {
		return invalid
	}
	axis, ok, invalid := ctx.ArgumentInt(ops.ReduceArgAxis)
	if invalid != nil {
		return invalid
	}
	if !ok {
		return ir.Invalidf("%s axis must be constant", ctx.Call().Op())
	}
	keepDims, ok, invalid := ctx.ArgumentBool(ops.ReduceArgKeepDims)
	if invalid != nil {
		return invalid
	}
	if !ok {
		return ir.Invalidf("%s keepDims must be constant", ctx.Call().Op())
	}
	sh, invalid := reduceShape(x.Shape, []int{axis}, keepDims)
	if invalid != nil {
		return invalid
	}
	return &ir.TensorType{DType: dtype.Int64, Shape: sh}
}

func inferMatMul(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.MatMulLHS)
	if invalid != nil {
		return invalid
	}
	y, invalid := ctx.Tensor(ops.MatMulRHS)
	if invalid != nil {
		return invalid
	}
	if x.DType != y.DType {
		return ir.Invalidf("data type mismatch: %s and %s", x.DType, y.DType)
	}
	if !x.Shape.IsRanked() || !y.Shape.IsRanked() {
		return &ir.TensorType{DType: x.DType, Shape: ir.UnrankedShape()}
	}
	xRank, yRank := x.Shape.Rank(), y.Shape.Rank()
	if xRank < 2 || yRank < 2 {
		return ir.Invalidf("MatMul requires operands of rank 2 or more but got %s and %s", x, y)
	}
	xDims, yDims := x.Shape.Dims(), y.Shape.Dims()
	k, k2 := xDims[xRank-1], yDims[yRank-2]
	if !k.IsDynamic() && !k2.IsDynamic() && k != k2 {
		return ir.Invalidf("MatMul contracting dimensions mismatch: %s and %s", x, y)
	}
	batch, err := ir.BroadcastShapes(ir.NewShape(xDims[:xRank-2]...), ir.NewShape(yDims[:yRank-2]...))
	if err != nil {
		return ir.Invalidf("%v", err)
	}
	dims := append(batch.Dims(), xDims[xRank-2], yDims[yRank-1])
	return &ir.TensorType{DType: x.DType, Shape: ir.NewShape(dims...)}
}

func inferActivation(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ctx.Call().Op().Params().At(0))
	if invalid != nil {
		return invalid
	}
	if !irkind.IsNumeric(x.DType) {
		return ir.Invalidf("%s requires a numerical tensor but got %s", ctx.Call().Op(), x)
	}
	return x
}
