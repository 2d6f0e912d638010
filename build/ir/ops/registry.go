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

// Package ops defines the closed set of operators of the IR.
//
// Each operator is a comparable Go value. Its kind and discriminating
// fields identify it and its formal parameters are package-level
// values shared by all instances of the same kind.
package ops

import (
	"fmt"
	"iter"

	"github.com/gx-org/nnc/build/ir"
)

// NumKinds is the size of tables indexed by operator kinds.
const NumKinds = int(ir.NumOpKinds)

// Groups of operators.
const (
	MathGroup    = "math"
	TensorsGroup = "tensors"
	NNGroup      = "nn"
)

type (
	// Field is a discriminating field of an operator.
	Field struct {
		// Name of the field in the operator structure.
		Name string
		// GoType is the qualified Go type of the field.
		GoType string
	}

	// Info describes an operator kind.
	Info struct {
		// Kind of the operator.
		Kind ir.OpKind
		// Name of the Go type implementing the operator.
		Name string
		// Group of the operator.
		Group string
		// Params are the formal parameters of the operator.
		Params ir.Params
		// Discriminators are the fields distinguishing operators of the same kind.
		Discriminators []Field
		// Zero is the zero value of the operator.
		Zero ir.Op
	}
)

var registry = [NumKinds]*Info{
	ir.BinaryKind:    {Group: MathGroup, Zero: Binary{}, Discriminators: []Field{{"Op", "ops.BinaryOp"}}},
	ir.UnaryKind:     {Group: MathGroup, Zero: Unary{}, Discriminators: []Field{{"Op", "ops.UnaryOp"}}},
	ir.CompareKind:   {Group: MathGroup, Zero: Compare{}, Discriminators: []Field{{"Op", "ops.CompareOp"}}},
	ir.ClampKind:     {Group: MathGroup, Zero: Clamp{}},
	ir.CastKind:      {Group: MathGroup, Zero: Cast{}, Discriminators: []Field{{"DType", "dtype.DataType"}}},
	ir.ReduceKind:    {Group: MathGroup, Zero: Reduce{}, Discriminators: []Field{{"Op", "ops.ReduceOp"}}},
	ir.ReduceArgKind: {Group: MathGroup, Zero: ReduceArg{}, Discriminators: []Field{{"Op", "ops.ReduceArgOp"}}},
	ir.MatMulKind:    {Group: MathGroup, Zero: MatMul{}},

	ir.GatherKind:    {Group: TensorsGroup, Zero: Gather{}},
	ir.GatherNDKind:  {Group: TensorsGroup, Zero: GatherND{}},
	ir.RangeKind:     {Group: TensorsGroup, Zero: Range{}},
	ir.ExpandKind:    {Group: TensorsGroup, Zero: Expand{}},
	ir.ReshapeKind:   {Group: TensorsGroup, Zero: Reshape{}},
	ir.BroadcastKind: {Group: TensorsGroup, Zero: Broadcast{}},
	ir.ConcatKind:    {Group: TensorsGroup, Zero: Concat{}},
	ir.TransposeKind: {Group: TensorsGroup, Zero: Transpose{}},
	ir.SliceKind:     {Group: TensorsGroup, Zero: Slice{}},
	ir.PadKind:       {Group: TensorsGroup, Zero: Pad{}, Discriminators: []Field{{"Mode", "ops.PadMode"}}},
	ir.SqueezeKind:   {Group: TensorsGroup, Zero: Squeeze{}},
	ir.UnsqueezeKind: {Group: TensorsGroup, Zero: Unsqueeze{}},
	ir.ShapeOfKind:   {Group: TensorsGroup, Zero: ShapeOf{}},

	ir.Conv2DKind:    {Group: NNGroup, Zero: Conv2D{}, Discriminators: []Field{{"Mode", "ops.PadMode"}}},
	ir.ReluKind:      {Group: NNGroup, Zero: Relu{}},
	ir.SigmoidKind:   {Group: NNGroup, Zero: Sigmoid{}},
	ir.LeakyReluKind: {Group: NNGroup, Zero: LeakyRelu{}},
}

func init() {
	for kind, info := range registry {
		if info == nil {
			continue
		}
		if info.Zero.Kind() != ir.OpKind(kind) {
			panic(fmt.Sprintf("operator %T registered as %s but has kind %s", info.Zero, ir.OpKind(kind), info.Zero.Kind()))
		}
		info.Kind = ir.OpKind(kind)
		info.Name = info.Kind.String()
		info.Params = info.Zero.Params()
	}
}

// Lookup returns the description of an operator kind.
// It returns nil if the kind has not been declared.
// The returned value must not be modified.
func Lookup(kind ir.OpKind) *Info {
	if !kind.IsValid() {
		return nil
	}
	return registry[kind]
}

// All returns an iterator over the description of all operator kinds,
// ordered by kind.
func All() iter.Seq[*Info] {
	return func(yield func(*Info) bool) {
		for _, info := range registry {
			if info == nil {
				continue
			}
			if !yield(info) {
				return
			}
		}
	}
}

func param(kind ir.OpKind, index int, name string, constraint *ir.Constraint) *ir.ParameterInfo {
	return &ir.ParameterInfo{
		Kind:       kind,
		Index:      index,
		Name:       name,
		Constraint: constraint,
	}
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("invalid(%d)", i)
	}
	return names[i]
}

func discriminated(kind ir.OpKind, disc fmt.Stringer) string {
	return fmt.Sprintf("%s[%s]", kind, disc)
}
