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

import (
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
)

// BinaryOp is an elementwise operator with two operands.
type BinaryOp int

// Binary operators.
const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Min
	Max
	Pow
)

var binaryOpNames = []string{"Add", "Sub", "Mul", "Div", "Mod", "Min", "Max", "Pow"}

func (op BinaryOp) String() string { return enumName(binaryOpNames, int(op)) }

// UnaryOp is an elementwise operator with one operand.
type UnaryOp int

// Unary operators.
const (
	Abs UnaryOp = iota
	Neg
	Exp
	Log
	Sqrt
	Rsqrt
	Square
	Ceil
	Floor
	Sin
	Cos
	Tanh
	LogicalNot
)

var unaryOpNames = []string{"Abs", "Neg", "Exp", "Log", "Sqrt", "Rsqrt", "Square", "Ceil", "Floor", "Sin", "Cos", "Tanh", "LogicalNot"}

func (op UnaryOp) String() string { return enumName(unaryOpNames, int(op)) }

// CompareOp is an elementwise comparison.
type CompareOp int

// Comparison operators.
const (
	Equal CompareOp = iota
	NotEqual
	LowerThan
	LowerOrEqual
	GreaterThan
	GreaterOrEqual
)

var compareOpNames = []string{"Equal", "NotEqual", "LowerThan", "LowerOrEqual", "GreaterThan", "GreaterOrEqual"}

func (op CompareOp) String() string { return enumName(compareOpNames, int(op)) }

// ReduceOp is a reduction along axes.
type ReduceOp int

// Reduction operators.
const (
	ReduceMean ReduceOp = iota
	ReduceMin
	ReduceMax
	ReduceSum
	ReduceProd
)

var reduceOpNames = []string{"Mean", "Min", "Max", "Sum", "Prod"}

func (op ReduceOp) String() string { return enumName(reduceOpNames, int(op)) }

// ReduceArgOp is a reduction returning the index of an element.
type ReduceArgOp int

// Arg reduction operators.
const (
	ArgMin ReduceArgOp = iota
	ArgMax
)

var reduceArgOpNames = []string{"ArgMin", "ArgMax"}

func (op ReduceArgOp) String() string { return enumName(reduceArgOpNames, int(op)) }

type (
	// Binary applies an elementwise operator to two broadcastable tensors.
	Binary struct{ Op BinaryOp }

	// Unary applies an elementwise operator to a tensor.
	Unary struct{ Op UnaryOp }

	// Compare compares two broadcastable tensors elementwise.
	Compare struct{ Op CompareOp }

	// Clamp limits the elements of a tensor to a range.
	Clamp struct{}

	// Cast converts the elements of a tensor to another data type.
	Cast struct{ DType dtype.DataType }

	// Reduce reduces a tensor along some axes.
	Reduce struct{ Op ReduceOp }

	// ReduceArg returns the index of the minimum or maximum along an axis.
	ReduceArg struct{ Op ReduceArgOp }

	// MatMul is a batched matrix multiplication.
	MatMul struct{}
)

// Parameters of math operators.
var (
	BinaryLHS = param(ir.BinaryKind, 0, "lhs", ir.IsTensor)
	BinaryRHS = param(ir.BinaryKind, 1, "rhs", ir.IsTensor)

	UnaryInput = param(ir.UnaryKind, 0, "input", ir.IsTensor)

	CompareLHS = param(ir.CompareKind, 0, "lhs", ir.IsTensor)
	CompareRHS = param(ir.CompareKind, 1, "rhs", ir.IsTensor)

	ClampInput = param(ir.ClampKind, 0, "input", ir.IsTensor)
	ClampMin   = param(ir.ClampKind, 1, "min", ir.IsTensor)
	ClampMax   = param(ir.ClampKind, 2, "max", ir.IsTensor)

	CastInput = param(ir.CastKind, 0, "input", ir.IsTensor)

	ReduceInput     = param(ir.ReduceKind, 0, "input", ir.IsTensor)
	ReduceAxis      = param(ir.ReduceKind, 1, "axis", ir.IsIntegral)
	ReduceInitValue = param(ir.ReduceKind, 2, "initValue", ir.IsTensor)
	ReduceKeepDims  = param(ir.ReduceKind, 3, "keepDims", ir.IsBoolScalar)

	ReduceArgInput           = param(ir.ReduceArgKind, 0, "input", ir.IsTensor)
	ReduceArgAxis            = param(ir.ReduceArgKind, 1, "axis", ir.IsIntegralScalar)
	ReduceArgKeepDims        = param(ir.ReduceArgKind, 2, "keepDims", ir.IsBoolScalar)
	ReduceArgSelectLastIndex = param(ir.ReduceArgKind, 3, "selectLastIndex", ir.IsBoolScalar)

	MatMulLHS = param(ir.MatMulKind, 0, "lhs", ir.IsTensor)
	MatMulRHS = param(ir.MatMulKind, 1, "rhs", ir.IsTensor)
)

var (
	binaryParams    = ir.NewParams(BinaryLHS, BinaryRHS)
	unaryParams     = ir.NewParams(UnaryInput)
	compareParams   = ir.NewParams(CompareLHS, CompareRHS)
	clampParams     = ir.NewParams(ClampInput, ClampMin, ClampMax)
	castParams      = ir.NewParams(CastInput)
	reduceParams    = ir.NewParams(ReduceInput, ReduceAxis, ReduceInitValue, ReduceKeepDims)
	reduceArgParams = ir.NewParams(ReduceArgInput, ReduceArgAxis, ReduceArgKeepDims, ReduceArgSelectLastIndex)
	matMulParams    = ir.NewParams(MatMulLHS, MatMulRHS)
)

// Kind of the operator.
func (Binary) Kind() ir.OpKind { return ir.BinaryKind }

// Name of the operator.
func (op Binary) Name() string { return discriminated(ir.BinaryKind, op.Op) }

// Params returns the formal parameters of the operator.
func (Binary) Params() ir.Params { return binaryParams }

func (op Binary) String() string { return op.Op.String() }

// Kind of the operator.
func (Unary) Kind() ir.OpKind { return ir.UnaryKind }

// Name of the operator.
func (op Unary) Name() string { return discriminated(ir.UnaryKind, op.Op) }

// Params returns the formal parameters of the operator.
func (Unary) Params() ir.Params { return unaryParams }

func (op Unary) String() string { return op.Op.String() }

// Kind of the operator.
func (Compare) Kind() ir.OpKind { return ir.CompareKind }

// Name of the operator.
func (op Compare) Name() string { return discriminated(ir.CompareKind, op.Op) }

// Params returns the formal parameters of the operator.
func (Compare) Params() ir.Params { return compareParams }

func (op Compare) String() string { return op.Op.String() }

// Kind of the operator.
func (Clamp) Kind() ir.OpKind { return ir.ClampKind }

// Name of the operator.
func (Clamp) Name() string { return ir.ClampKind.String() }

// Params returns the formal parameters of the operator.
func (Clamp) Params() ir.Params { return clampParams }

func (op Clamp) String() string { return op.Name() }

// Kind of the operator.
func (Cast) Kind() ir.OpKind { return ir.CastKind }

// Name of the operator.
func (op Cast) Name() string { return discriminated(ir.CastKind, op.DType) }

// Params returns the formal parameters of the operator.
func (Cast) Params() ir.Params { return castParams }

func (op Cast) String() string { return op.Name() }

// Kind of the operator.
func (Reduce) Kind() ir.OpKind { return ir.ReduceKind }

// Name of the operator.
func (op Reduce) Name() string { return discriminated(ir.ReduceKind, op.Op) }

// Params returns the formal parameters of the operator.
func (Reduce) Params() ir.Params { return reduceParams }

func (op Reduce) String() string { return "Reduce" + op.Op.String() }

// Kind of the operator.
func (ReduceArg) Kind() ir.OpKind { return ir.ReduceArgKind }

// Name of the operator.
func (op ReduceArg) Name() string { return discriminated(ir.ReduceArgKind, op.Op) }

// Params returns the formal parameters of the operator.
func (ReduceArg) Params() ir.Params { return reduceArgParams }

func (op ReduceArg) String() string { return op.Op.String() }

// Kind of the operator.
func (MatMul) Kind() ir.OpKind { return ir.MatMulKind }

// Name of the operator.
func (MatMul) Name() string { return ir.MatMulKind.String() }

// Params returns the formal parameters of the operator.
func (MatMul) Params() ir.Params { return matMulParams }

func (op MatMul) String() string { return op.Name() }
