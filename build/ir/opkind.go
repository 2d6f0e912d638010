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

// OpKind identifies a concrete operator kind.
// The set of kinds is closed: passes index fixed-size tables with it.
type OpKind uint

// Operator kinds.
const (
	InvalidOpKind OpKind = iota

	// Math.
	BinaryKind
	UnaryKind
	CompareKind
	ClampKind
	CastKind
	ReduceKind
	ReduceArgKind
	MatMulKind

	// Tensor manipulation.
	GatherKind
	GatherNDKind
	RangeKind
	ExpandKind
	ReshapeKind
	BroadcastKind
	ConcatKind
	TransposeKind
	SliceKind
	PadKind
	SqueezeKind
	UnsqueezeKind
	ShapeOfKind

	// Neural networks.
	Conv2DKind
	ReluKind
	SigmoidKind
	LeakyReluKind

	// NumOpKinds is the number of operator kinds, InvalidOpKind included.
	NumOpKinds
)

var opKindNames = [NumOpKinds]string{
	InvalidOpKind: "Invalid",
	BinaryKind:    "Binary",
	UnaryKind:     "Unary",
	CompareKind:   "Compare",
	ClampKind:     "Clamp",
	CastKind:      "Cast",
	ReduceKind:    "Reduce",
	ReduceArgKind: "ReduceArg",
	MatMulKind:    "MatMul",
	GatherKind:    "Gather",
	GatherNDKind:  "GatherND",
	RangeKind:     "Range",
	ExpandKind:    "Expand",
	ReshapeKind:   "Reshape",
	BroadcastKind: "Broadcast",
	ConcatKind:    "Concat",
	TransposeKind: "Transpose",
	SliceKind:     "Slice",
	PadKind:       "Pad",
	SqueezeKind:   "Squeeze",
	UnsqueezeKind: "Unsqueeze",
	ShapeOfKind:   "ShapeOf",
	Conv2DKind:    "Conv2D",
	ReluKind:      "Relu",
	SigmoidKind:   "Sigmoid",
	LeakyReluKind: "LeakyRelu",
}

// String returns the name of the kind.
func (k OpKind) String() string {
	if k >= NumOpKinds {
		return opKindNames[InvalidOpKind]
	}
	return opKindNames[k]
}

// IsValid returns true if the kind is one of the declared operator kinds.
func (k OpKind) IsValid() bool {
	return k > InvalidOpKind && k < NumOpKinds
}
