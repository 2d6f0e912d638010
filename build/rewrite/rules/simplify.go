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

package rules

import (
	"slices"

	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/ops"
	"github.com/gx-org/nnc/build/pattern"
	"github.com/gx-org/nnc/build/rewrite"
	"github.com/gx-org/nnc/interp/evaluator"
)

// Names of the simplification rules.
const (
	AddZeroName           = "add-zero"
	MulOneName            = "mul-one"
	NegNegName            = "neg-neg"
	ReshapeReshapeName    = "reshape-reshape"
	ReluReluName          = "relu-relu"
	CastNoopName          = "cast-noop"
	TransposeIdentityName = "transpose-identity"
)

// Simplify returns rules removing operations without effects.
func Simplify() []rewrite.Rule {
	return []rewrite.Rule{
		neutralElement(AddZeroName, ops.Add, 0),
		neutralElement(MulOneName, ops.Mul, 1),
		negNeg(),
		reshapeReshape(),
		reluRelu(),
		castNoop(),
		transposeIdentity(),
	}
}

// sameType returns true if two expressions have the same valid type.
func sameType(ctx *rewrite.Context, x, y ir.Expr) bool {
	tx, ty := ctx.TypeOf(x), ctx.TypeOf(y)
	return ir.IsValid(tx) && ir.IsValid(ty) && tx.Equal(ty)
}

// neutralElement replaces x op e and e op x by x where e is a constant
// filled with the neutral element of op.
// The replacement is only done if the result has the same type as x:
// the constant may broadcast x to a larger shape.
func neutralElement(name string, op ops.BinaryOp, neutral float64) rewrite.Rule {
	x := pattern.Any()
	p := pattern.Alt(
		pattern.IsBinaryCall(pattern.IsBinaryOp(op), x, pattern.IsConstFilledWith(neutral)),
		pattern.IsBinaryCall(pattern.IsBinaryOp(op), pattern.IsConstFilledWith(neutral), x),
	)
	return rewrite.NewRule(name, p, func(ctx *rewrite.Context, res *pattern.MatchResult) (ir.Expr, error) {
		var w pattern.Wrapper
		w.Bind(res)
		operand, err := pattern.Capture[ir.Expr](&w, x)
		if err != nil {
			return nil, err
		}
		if !sameType(ctx, res.Root(), operand) {
			return nil, nil
		}
		return operand, nil
	})
}

func negNeg() rewrite.Rule {
	x := pattern.Any()
	neg := func(arg pattern.Pattern) pattern.Pattern {
		return pattern.IsUnaryCall(pattern.IsUnaryOp(ops.Neg), arg)
	}
	return rewrite.NewRule(NegNegName, neg(neg(x)), func(ctx *rewrite.Context, res *pattern.MatchResult) (ir.Expr, error) {
		var w pattern.Wrapper
		w.Bind(res)
		return pattern.Capture[ir.Expr](&w, x)
	})
}

func hasNoZero(c *ir.Const) bool {
	vals, err := ir.IntValues(c)
	return err == nil && !slices.Contains(vals, 0)
}

// reshapeReshape replaces Reshape(Reshape(x, s1), s2) by Reshape(x, s2).
// A 0 in s2 copies a dimension of the inner reshape, so s2 must be
// a constant without 0.
func reshapeReshape() rewrite.Rule {
	x := pattern.Any()
	outer := pattern.ConstWith(hasNoZero)
	inner := pattern.IsReshapeCall(nil, x, pattern.Any())
	p := pattern.IsReshapeCall(nil, inner, outer)
	return rewrite.NewRule(ReshapeReshapeName, p, func(ctx *rewrite.Context, res *pattern.MatchResult) (ir.Expr, error) {
		var w pattern.Wrapper
		w.Bind(res)
		input, err := pattern.Capture[ir.Expr](&w, x)
		if err != nil {
			return nil, err
		}
		shape, err := pattern.Capture[*ir.Const](&w, outer)
		if err != nil {
			return nil, err
		}
		return ir.NewCall(ops.Reshape{}, input, shape)
	})
}

func reluRelu() rewrite.Rule {
	inner := pattern.IsReluCall(nil, pattern.Any())
	p := pattern.IsReluCall(nil, inner)
	return rewrite.NewRule(ReluReluName, p, func(ctx *rewrite.Context, res *pattern.MatchResult) (ir.Expr, error) {
		var w pattern.Wrapper
		w.Bind(res)
		return pattern.Capture[*ir.Call](&w, inner)
	})
}

func castNoop() rewrite.Rule {
	x := pattern.Any()
	target := pattern.IsCast()
	p := pattern.IsCastCall(target, x)
	return rewrite.NewRule(CastNoopName, p, func(ctx *rewrite.Context, res *pattern.MatchResult) (ir.Expr, error) {
		var w pattern.Wrapper
		w.Bind(res)
		op, err := pattern.CaptureOp[ops.Cast](&w, target)
		if err != nil {
			return nil, err
		}
		input, err := pattern.Capture[ir.Expr](&w, x)
		if err != nil {
			return nil, err
		}
		typ, ok := ctx.TypeOf(input).(*ir.TensorType)
		if !ok || typ.DType != op.DType {
			return nil, nil
		}
		return input, nil
	})
}

func transposeIdentity() rewrite.Rule {
	x := pattern.AnyOf(ir.IsTensor)
	perm := pattern.Const()
	p := pattern.IsTransposeCall(nil, x, perm)
	return rewrite.NewRule(TransposeIdentityName, p, func(ctx *rewrite.Context, res *pattern.MatchResult) (ir.Expr, error) {
		var w pattern.Wrapper
		w.Bind(res)
		input, err := pattern.Capture[ir.Expr](&w, x)
		if err != nil {
			return nil, err
		}
		permC, err := pattern.Capture[*ir.Const](&w, perm)
		if err != nil {
			return nil, err
		}
		typ := ctx.TypeOf(input).(*ir.TensorType)
		if !typ.Shape.IsRanked() {
			return nil, nil
		}
		vals, err := ir.IntValues(permC)
		if err != nil {
			return nil, nil
		}
		axes := make([]int, len(vals))
		for i, v := range vals {
			axes[i] = int(v)
		}
		axes, err = evaluator.Permutation(axes, typ.Shape.Rank())
		if err != nil {
			return nil, nil
		}
		for i, axis := range axes {
			if axis != i {
				return nil, nil
			}
		}
		return input, nil
	})
}
