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
	"math"
	"slices"

	"github.com/pkg/errors"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/ops"
)

type rule func(p *pass, call *ir.Call) (*ir.Tensor, error)

// rules is indexed by operator kind. Kinds without a rule cannot be folded.
var rules [ops.NumKinds]rule

func init() {
	rules[ir.BinaryKind] = evalBinary
	rules[ir.UnaryKind] = evalUnary
	rules[ir.CompareKind] = evalCompare
	rules[ir.ClampKind] = evalClamp
	rules[ir.CastKind] = evalCast
	rules[ir.ReduceKind] = evalReduce
	rules[ir.ReduceArgKind] = evalReduceArg
	rules[ir.MatMulKind] = evalMatMul
	rules[ir.GatherKind] = evalGather
	rules[ir.GatherNDKind] = evalGatherND
	rules[ir.RangeKind] = evalRange
	rules[ir.ExpandKind] = evalExpand
	rules[ir.ReshapeKind] = evalReshape
	rules[ir.BroadcastKind] = evalBroadcast
	rules[ir.ConcatKind] = evalConcat
	rules[ir.TransposeKind] = evalTranspose
	rules[ir.SliceKind] = evalSlice
	rules[ir.PadKind] = evalPad
	rules[ir.SqueezeKind] = evalSqueeze
	rules[ir.UnsqueezeKind] = evalUnsqueeze
	rules[ir.ShapeOfKind] = evalShapeOf
	rules[ir.ReluKind] = evalActivation
	rules[ir.SigmoidKind] = evalActivation
	rules[ir.LeakyReluKind] = evalActivation
}

func (p *pass) arg(call *ir.Call, param *ir.ParameterInfo) (*ir.Tensor, error) {
	arg := call.Arg(param)
	if arg == nil {
		return nil, errors.Errorf("%s: missing argument %s", call.Op(), param.Name)
	}
	val, err := p.tensor(arg)
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (p *pass) ints(call *ir.Call, param *ir.ParameterInfo) ([]int, error) {
	val, err := p.arg(call, param)
	if err != nil {
		return nil, err
	}
	vals, err := ir.IntValues(ir.NewConst(val))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: argument %s", call.Op(), param.Name)
	}
	ints := make([]int, len(vals))
	for i, v := range vals {
		ints[i] = int(v)
	}
	return ints, nil
}

func (p *pass) intScalar(call *ir.Call, param *ir.ParameterInfo) (int, error) {
	val, err := p.arg(call, param)
	if err != nil {
		return 0, err
	}
	v, err := ir.IntScalar(ir.NewConst(val))
	if err != nil {
		return 0, errors.Wrapf(err, "%s: argument %s", call.Op(), param.Name)
	}
	return int(v), nil
}

func (p *pass) boolScalar(call *ir.Call, param *ir.ParameterInfo) (bool, error) {
	val, err := p.arg(call, param)
	if err != nil {
		return false, err
	}
	v, err := ir.BoolScalar(ir.NewConst(val))
	if err != nil {
		return false, errors.Wrapf(err, "%s: argument %s", call.Op(), param.Name)
	}
	return v, nil
}

// broadcastTo replicates x to a target shape if its shape differs.
func (p *pass) broadcastTo(x *ir.Tensor, dims []int) (*ir.Tensor, error) {
	if slices.Equal(x.Dims(), dims) {
		return x, nil
	}
	return p.eval.backend.Broadcast(x, dims)
}

// broadcastAll broadcasts tensors to their common shape.
func (p *pass) broadcastAll(xs ...*ir.Tensor) ([]*ir.Tensor, error) {
	sh := ir.NewShape()
	for _, x := range xs {
		var err error
		sh, err = ir.BroadcastShapes(sh, ir.ShapeFromInts(x.Dims()))
		if err != nil {
			return nil, err
		}
	}
	dims, _ := sh.Ints()
	out := make([]*ir.Tensor, len(xs))
	for i, x := range xs {
		var err error
		if out[i], err = p.broadcastTo(x, dims); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *pass) args(call *ir.Call, params ...*ir.ParameterInfo) ([]*ir.Tensor, error) {
	vals := make([]*ir.Tensor, len(params))
	for i, param := range params {
		var err error
		if vals[i], err = p.arg(call, param); err != nil {
			return nil, err
		}
	}
	return vals, nil
}

func (p *pass) broadcastArgs(call *ir.Call, params ...*ir.ParameterInfo) ([]*ir.Tensor, error) {
	vals, err := p.args(call, params...)
	if err != nil {
		return nil, err
	}
	vals, err = p.broadcastAll(vals...)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", call.Op())
	}
	return vals, nil
}

func evalBinary(p *pass, call *ir.Call) (*ir.Tensor, error) {
	vals, err := p.broadcastArgs(call, ops.BinaryLHS, ops.BinaryRHS)
	if err != nil {
		return nil, err
	}
	return p.eval.backend.Binary(call.Op().(ops.Binary).Op, vals[0], vals[1])
}

func evalUnary(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.UnaryInput)
	if err != nil {
		return nil, err
	}
	return p.eval.backend.Unary(call.Op().(ops.Unary).Op, x)
}

func evalCompare(p *pass, call *ir.Call) (*ir.Tensor, error) {
	vals, err := p.broadcastArgs(call, ops.CompareLHS, ops.CompareRHS)
	if err != nil {
		return nil, err
	}
	return p.eval.backend.Compare(call.Op().(ops.Compare).Op, vals[0], vals[1])
}

func evalClamp(p *pass, call *ir.Call) (*ir.Tensor, error) {
	vals, err := p.broadcastArgs(call, ops.ClampInput, ops.ClampMin, ops.ClampMax)
	if err != nil {
		return nil, err
	}
	return p.eval.backend.Clamp(vals[0], vals[1], vals[2])
}

func evalCast(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.CastInput)
	if err != nil {
		return nil, err
	}
	return p.eval.backend.Cast(x, call.Op().(ops.Cast).DType)
}

func evalReduce(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.ReduceInput)
	if err != nil {
		return nil, err
	}
	axes, err := p.ints(call, ops.ReduceAxis)
	if err != nil {
		return nil, err
	}
	init, err := p.arg(call, ops.ReduceInitValue)
	if err != nil {
		return nil, err
	}
	keepDims, err := p.boolScalar(call, ops.ReduceKeepDims)
	if err != nil {
		return nil, err
	}
	return p.eval.backend.Reduce(call.Op().(ops.Reduce).Op, x, axes, init, keepDims)
}

func evalReduceArg(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.ReduceArgInput)
	if err != nil {
		return nil, err
	}
	axis, err := p.intScalar(call, ops.ReduceArgAxis)
	if err != nil {
		return nil, err
	}
	keepDims, err := p.boolScalar(call, ops.ReduceArgKeepDims)
	if err != nil {
		return nil, err
	}
	selectLast, err := p.boolScalar(call, ops.ReduceArgSelectLastIndex)
	if err != nil {
		return nil, err
	}
	return p.eval.backend.ReduceArg(call.Op().(ops.ReduceArg).Op, x, axis, keepDims, selectLast)
}

func evalMatMul(p *pass, call *ir.Call) (*ir.Tensor, error) {
	vals, err := p.args(call, ops.MatMulLHS, ops.MatMulRHS)
	if err != nil {
		return nil, err
	}
	return p.eval.backend.MatMul(vals[0], vals[1])
}

func evalActivation(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.tensor(call.ArgAt(0))
	if err != nil {
		return nil, err
	}
	var alpha *ir.Tensor
	if call.Op().Kind() == ir.LeakyReluKind {
		if alpha, err = p.arg(call, ops.LeakyReluAlpha); err != nil {
			return nil, err
		}
	}
	return p.eval.backend.Activation(call.Op().Kind(), x, alpha)
}

func evalRange(p *pass, call *ir.Call) (*ir.Tensor, error) {
	begin, err := p.intScalar(call, ops.RangeBegin)
	if err != nil {
		return nil, err
	}
	end, err := p.intScalar(call, ops.RangeEnd)
	if err != nil {
		return nil, err
	}
	step, err := p.intScalar(call, ops.RangeStep)
	if err != nil {
		return nil, err
	}
	n, err := RangeLength(begin, end, step)
	if err != nil {
		return nil, err
	}
	if n > MaxRangeLength {
		return nil, errors.Errorf("Range(%d, %d, %d) has %d elements: cannot evaluate more than %d", begin, end, step, n, MaxRangeLength)
	}
	vals := make([]int32, n)
	for i := range vals {
		vals[i] = int32(begin + i*step)
	}
	return ir.TensorFrom(vals, n)
}

// MaxRangeLength is the maximum number of elements Range can evaluate to.
const MaxRangeLength = 1 << 24

// RangeLength returns the number of elements generated by Range.
// The length is computed as (begin + end) / step.
// An error is returned if begin, end, step, or one of the generated
// elements does not fit in an int32.
func RangeLength(begin, end, step int) (int, error) {
	for _, v := range []int{begin, end, step} {
		if !fitsInt32(v) {
			return 0, errors.Errorf("Range(%d, %d, %d): %d overflows int32", begin, end, step, v)
		}
	}
	if step == 0 {
		return 0, errors.Errorf("Range step cannot be zero")
	}
	n := (begin + end) / step
	if n < 0 {
		return 0, errors.Errorf("Range(%d, %d, %d) has a negative length %d", begin, end, step, n)
	}
	// Elements are monotonic: checking the last one is enough.
	if last := begin + (n-1)*step; n > 0 && !fitsInt32(last) {
		return 0, errors.Errorf("Range(%d, %d, %d): element %d overflows int32", begin, end, step, last)
	}
	return n, nil
}

func fitsInt32(v int) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

func evalExpand(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.ExpandInput)
	if err != nil {
		return nil, err
	}
	target, err := p.ints(call, ops.ExpandShape)
	if err != nil {
		return nil, err
	}
	sh, err := ir.BroadcastShapes(ir.ShapeFromInts(x.Dims()), ir.ShapeFromInts(target))
	if err != nil {
		return nil, errors.Wrap(err, "Expand")
	}
	dims, ok := sh.Ints()
	if !ok {
		return nil, errors.Errorf("Expand: invalid target shape %v", target)
	}
	return p.broadcastTo(x, dims)
}

func evalBroadcast(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.BroadcastInput)
	if err != nil {
		return nil, err
	}
	target, err := p.ints(call, ops.BroadcastShape)
	if err != nil {
		return nil, err
	}
	return p.broadcastTo(x, target)
}

func evalReshape(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.ReshapeInput)
	if err != nil {
		return nil, err
	}
	target, err := p.ints(call, ops.ReshapeShape)
	if err != nil {
		return nil, err
	}
	dims, err := ReshapeDims(x.Dims(), target)
	if err != nil {
		return nil, err
	}
	return x.Reshape(dims...)
}

// ReshapeDims resolves the target shape of a reshape.
// A 0 copies the length of the input axis at the same position
// and a single -1 is inferred from the remaining axes.
func ReshapeDims(in, target []int) ([]int, error) {
	dims := slices.Clone(target)
	inferred := -1
	known := 1
	for i, d := range dims {
		switch {
		case d == 0 && i < len(in):
			dims[i] = in[i]
		case d == -1 && inferred < 0:
			inferred = i
			continue
		case d < 0:
			return nil, errors.Errorf("Reshape: invalid target shape %v", target)
		}
		known *= dims[i]
	}
	size := 1
	for _, d := range in {
		size *= d
	}
	if inferred >= 0 {
		if known == 0 || size%known != 0 {
			return nil, errors.Errorf("Reshape: cannot reshape %v to %v", in, target)
		}
		dims[inferred] = size / known
	}
	return dims, nil
}

func evalSqueeze(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.SqueezeInput)
	if err != nil {
		return nil, err
	}
	axes, err := p.ints(call, ops.SqueezeDim)
	if err != nil {
		return nil, err
	}
	dims, err := SqueezeDims(x.Dims(), axes)
	if err != nil {
		return nil, err
	}
	return x.Reshape(dims...)
}

// SqueezeDims removes axes of length 1.
// All the axes of length 1 are removed if no axes are given.
func SqueezeDims(in, axes []int) ([]int, error) {
	removed := make([]bool, len(in))
	if len(axes) == 0 {
		for i, d := range in {
			removed[i] = d == 1
		}
	}
	for _, axis := range axes {
		if axis < 0 {
			axis += len(in)
		}
		if axis < 0 || axis >= len(in) {
			return nil, errors.Errorf("Squeeze: axis %d out of range for rank %d", axis, len(in))
		}
		if in[axis] != 1 {
			return nil, errors.Errorf("Squeeze: axis %d has length %d", axis, in[axis])
		}
		removed[axis] = true
	}
	var dims []int
	for i, d := range in {
		if !removed[i] {
			dims = append(dims, d)
		}
	}
	return dims, nil
}

func evalUnsqueeze(p *pass, call *ir.Call) (*ir.Tensor, error) {
	x, err := p.arg(call, ops.UnsqueezeInput)
	if err != nil {
		return nil, err
	}
	axes, err := p.ints(call, ops.UnsqueezeDim)
	if err != nil {
		return nil, err
	}
	dims, err := UnsqueezeDims(x.Dims(), axes)
	if err != nil {
		return nil, err
	}
	return x.Reshape(dims...)
}

// UnsqueezeDims inserts axes of length 1.
// Axes are positions in the output.
func UnsqueezeDims(in, axes []int) ([]int, error) {
	rank := len(in) + len(axes)
	inserted := make([]bool, rank)
	for _, axis := range axes {
		if axis < 0 {
			axis += rank
		}
		if axis < 0 || axis >= rank || inserted[axis] {
			return nil, errors.Errorf("Unsqueeze: invalid axes %v for rank %d", axes, len(in))
		}
		inserted[axis] = true
	}
	dims := make([]int, rank)
	next := 0
	for i := range dims {
		if inserted[i] {
			dims[i] = 1
			continue
		}
		dims[i] = in[next]
		next++
	}
	return dims, nil
}

func evalShapeOf(p *pass, call *ir.Call) (*ir.Tensor, error) {
	input := call.Arg(ops.ShapeOfInput)
	if p.eval.types != nil {
		if typ, ok := p.eval.types(input).(*ir.TensorType); ok {
			if dims, ok := typ.Shape.Ints(); ok {
				return shapeTensor(dims)
			}
		}
	}
	x, err := p.tensor(input)
	if err != nil {
		return nil, err
	}
	return shapeTensor(x.Dims())
}

func shapeTensor(dims []int) (*ir.Tensor, error) {
	vals := make([]int64, len(dims))
	for i, d := range dims {
		vals[i] = int64(d)
	}
	return ir.TensorFrom(vals, len(vals))
}
