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

package ops

import "github.com/gx-org/nnc/build/ir"

// PadMode specifies how the border of a tensor is filled.
type PadMode int

// Padding modes.
const (
	PadConstant PadMode = iota
	PadReflect
	PadSymmetric
	PadEdge
)

var padModeNames = []string{"Constant", "Reflect", "Symmetric", "Edge"}

func (m PadMode) String() string { return enumName(padModeNames, int(m)) }

type (
	// Gather takes the slices of input at the given indices along an axis.
	Gather struct{}

	// GatherND gathers slices of input using multi-dimensional indices.
	GatherND struct{}

	// Range generates a sequence of integers.
	Range struct{}

	// Expand broadcasts input to a shape, bidirectionally.
	Expand struct{}

	// Reshape changes the shape of a tensor keeping its elements.
	Reshape struct{}

	// Broadcast broadcasts input to a target shape.
	Broadcast struct{}

	// Concat concatenates a tuple of tensors along an axis.
	Concat struct{}

	// Transpose permutes the axes of a tensor.
	Transpose struct{}

	// Slice extracts a strided slice of a tensor.
	Slice struct{}

	// Pad adds elements at the border of a tensor.
	Pad struct{ Mode PadMode }

	// Squeeze removes axes of length 1.
	Squeeze struct{}

	// Unsqueeze inserts axes of length 1.
	Unsqueeze struct{}

	// ShapeOf returns the axis lengths of a tensor.
	ShapeOf struct{}
)

// Parameters of tensor operators.
var (
	GatherInput = param(ir.GatherKind, 0, "input", ir.IsTensor)
	GatherAxis  = param(ir.GatherKind, 1, "axis", ir.IsIntegralScalar)
	GatherIndex = param(ir.GatherKind, 2, "index", ir.IsIntegral)

	GatherNDInput     = param(ir.GatherNDKind, 0, "input", ir.IsTensor)
	GatherNDBatchDims = param(ir.GatherNDKind, 1, "batchDims", ir.IsIntegralScalar)
	GatherNDIndex     = param(ir.GatherNDKind, 2, "index", ir.IsIntegral)

	RangeBegin = param(ir.RangeKind, 0, "begin", ir.IsIntegralScalar)
	RangeEnd   = param(ir.RangeKind, 1, "end", ir.IsIntegralScalar)
	RangeStep  = param(ir.RangeKind, 2, "step", ir.IsIntegralScalar)

	ExpandInput = param(ir.ExpandKind, 0, "input", ir.IsTensor)
	ExpandShape = param(ir.ExpandKind, 1, "shape", ir.IsIntegral)

	ReshapeInput = param(ir.ReshapeKind, 0, "input", ir.IsTensor)
	ReshapeShape = param(ir.ReshapeKind, 1, "shape", ir.IsIntegral)

	BroadcastInput = param(ir.BroadcastKind, 0, "input", ir.IsTensor)
	BroadcastShape = param(ir.BroadcastKind, 1, "shape", ir.IsIntegral)

	ConcatInput = param(ir.ConcatKind, 0, "input", ir.IsTuple)
	ConcatAxis  = param(ir.ConcatKind, 1, "axis", ir.IsIntegralScalar)

	TransposeInput = param(ir.TransposeKind, 0, "input", ir.IsTensor)
	TransposePerm  = param(ir.TransposeKind, 1, "perm", ir.IsIntegral)

	SliceInput   = param(ir.SliceKind, 0, "input", ir.IsTensor)
	SliceBegins  = param(ir.SliceKind, 1, "begins", ir.IsIntegral)
	SliceEnds    = param(ir.SliceKind, 2, "ends", ir.IsIntegral)
	SliceAxes    = param(ir.SliceKind, 3, "axes", ir.IsIntegral)
	SliceStrides = param(ir.SliceKind, 4, "strides", ir.IsIntegral)

	PadInput = param(ir.PadKind, 0, "input", ir.IsTensor)
	PadPads  = param(ir.PadKind, 1, "pads", ir.IsIntegral)
	PadValue = param(ir.PadKind, 2, "value", ir.IsTensor)

	SqueezeInput = param(ir.SqueezeKind, 0, "input", ir.IsTensor)
	SqueezeDim   = param(ir.SqueezeKind, 1, "dim", ir.IsIntegral)

	UnsqueezeInput = param(ir.UnsqueezeKind, 0, "input", ir.IsTensor)
	UnsqueezeDim   = param(ir.UnsqueezeKind, 1, "dim", ir.IsIntegral)

	ShapeOfInput = param(ir.ShapeOfKind, 0, "input", ir.IsTensor)
)

var (
	gatherParams    = ir.NewParams(GatherInput, GatherAxis, GatherIndex)
	gatherNDParams  = ir.NewParams(GatherNDInput, GatherNDBatchDims, GatherNDIndex)
	rangeParams     = ir.NewParams(RangeBegin, RangeEnd, RangeStep)
	expandParams    = ir.NewParams(ExpandInput, ExpandShape)
	reshapeParams   = ir.NewParams(ReshapeInput, ReshapeShape)
	broadcastParams = ir.NewParams(BroadcastInput, BroadcastShape)
	concatParams    = ir.NewParams(ConcatInput, ConcatAxis)
	transposeParams = ir.NewParams(TransposeInput, TransposePerm)
	sliceParams     = ir.NewParams(SliceInput, SliceBegins, SliceEnds, SliceAxes, SliceStrides)
	padParams       = ir.NewParams(PadInput, PadPads, PadValue)
	squeezeParams   = ir.NewParams(SqueezeInput, SqueezeDim)
	unsqueezeParams = ir.NewParams(UnsqueezeInput, UnsqueezeDim)
	shapeOfParams   = ir.NewParams(ShapeOfInput)
)

// Kind of the operator.
func (Gather) Kind() ir.OpKind { return ir.GatherKind }

// Name of the operator.
func (Gather) Name() string { return ir.GatherKind.String() }

// Params returns the formal parameters of the operator.
func (Gather) Params() ir.Params { return gatherParams }

func (op Gather) String() string { return op.Name() }

// Kind of the operator.
func (GatherND) Kind() ir.OpKind { return ir.GatherNDKind }

// Name of the operator.
func (GatherND) Name() string { return ir.GatherNDKind.String() }

// Params returns the formal parameters of the operator.
func (GatherND) Params() ir.Params { return gatherNDParams }

func (op GatherND) String() string { return op.Name() }

// Kind of the operator.
func (Range) Kind() ir.OpKind { return ir.RangeKind }

// Name of the operator.
func (Range) Name() string { return ir.RangeKind.String() }

// Params returns the formal parameters of the operator.
func (Range) Params() ir.Params { return rangeParams }

func (op Range) String() string { return op.Name() }

// Kind of the operator.
func (Expand) Kind() ir.OpKind { return ir.ExpandKind }

// Name of the operator.
func (Expand) Name() string { return ir.ExpandKind.String() }

// Params returns the formal parameters of the operator.
func (Expand) Params() ir.Params { return expandParams }

func (op Expand) String() string { return op.Name() }

// Kind of the operator.
func (Reshape) Kind() ir.OpKind { return ir.ReshapeKind }

// Name of the operator.
func (Reshape) Name() string { return ir.ReshapeKind.String() }

// Params returns the formal parameters of the operator.
func (Reshape) Params() ir.Params { return reshapeParams }

func (op Reshape) String() string { return op.Name() }

// Kind of the operator.
func (Broadcast) Kind() ir.OpKind { return ir.BroadcastKind }

// Name of the operator.
func (Broadcast) Name() string { return ir.BroadcastKind.String() }

// Params returns the formal parameters of the operator.
func (Broadcast) Params() ir.Params { return broadcastParams }

func (op Broadcast) String() string { return op.Name() }

// Kind of the operator.
func (Concat) Kind() ir.OpKind { return ir.ConcatKind }

// Name of the operator.
func (Concat) Name() string { return ir.ConcatKind.String() }

// Params returns the formal parameters of the operator.
func (Concat) Params() ir.Params { return concatParams }

func (op Concat) String() string { return op.Name() }

// Kind of the operator.
func (Transpose) Kind() ir.OpKind { return ir.TransposeKind }

// Name of the operator.
func (Transpose) Name() string { return ir.TransposeKind.String() }

// Params returns the formal parameters of the operator.
func (Transpose) Params() ir.Params { return transposeParams }

func (op Transpose) String() string { return op.Name() }

// Kind of the operator.
func (Slice) Kind() ir.OpKind { return ir.SliceKind }

// Name of the operator.
func (Slice) Name() string { return ir.SliceKind.String() }

// Params returns the formal parameters of the operator.
func (Slice) Params() ir.Params { return sliceParams }

func (op Slice) String() string { return op.Name() }

// Kind of the operator.
func (Pad) Kind() ir.OpKind { return ir.PadKind }

// Name of the operator.
func (op Pad) Name() string { return discriminated(ir.PadKind, op.Mode) }

// Params returns the formal parameters of the operator.
func (Pad) Params() ir.Params { return padParams }

func (op Pad) String() string { return op.Name() }

// Kind of the operator.
func (Squeeze) Kind() ir.OpKind { return ir.SqueezeKind }

// Name of the operator.
func (Squeeze) Name() string { return ir.SqueezeKind.String() }

// Params returns the formal parameters of the operator.
func (Squeeze) Params() ir.Params { return squeezeParams }

func (op Squeeze) String() string { return op.Name() }

// Kind of the operator.
func (Unsqueeze) Kind() ir.OpKind { return ir.UnsqueezeKind }

// Name of the operator.
func (Unsqueeze) Name() string { return ir.UnsqueezeKind.String() }

// Params returns the formal parameters of the operator.
func (Unsqueeze) Params() ir.Params { return unsqueezeParams }

func (op Unsqueeze) String() string { return op.Name() }

// Kind of the operator.
func (ShapeOf) Kind() ir.OpKind { return ir.ShapeOfKind }

// Name of the operator.
func (ShapeOf) Name() string { return ir.ShapeOfKind.String() }

// Params returns the formal parameters of the operator.
func (ShapeOf) Params() ir.Params { return shapeOfParams }

func (op ShapeOf) String() string { return op.Name() }
