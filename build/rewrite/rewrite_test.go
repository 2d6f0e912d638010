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

package rewrite_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/irb"
	"github.com/gx-org/nnc/build/ir/ops"
	"github.com/gx-org/nnc/build/pattern"
	"github.com/gx-org/nnc/build/rewrite"
	"go.opentelemetry.io/otel/metric/noop"
)

func newFunction(t *testing.T, build func(b *irb.Builder, x *ir.Var) ir.Expr) *ir.Function {
	t.Helper()
	b := irb.New()
	x := b.Var("x", dtype.Float32, 2, 3)
	fn := b.Function("f", []*ir.Var{x}, build(b, x))
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	return fn
}

// replace returns a rule replacing the calls matched by p with the result of f
// applied to the single argument of the call.
func replace(name string, p pattern.OpPattern, f func(ir.Expr) (ir.Expr, error)) rewrite.Rule {
	arg := pattern.Any()
	return rewrite.NewRule(name, pattern.Call(p, arg), func(ctx *rewrite.Context, res *pattern.MatchResult) (ir.Expr, error) {
		var w pattern.Wrapper
		w.Bind(res)
		x, err := pattern.Capture[ir.Expr](&w, arg)
		if err != nil {
			return nil, err
		}
		return f(x)
	})
}

func unary(op ir.Op) func(ir.Expr) (ir.Expr, error) {
	return func(x ir.Expr) (ir.Expr, error) {
		return ir.NewCall(op, x)
	}
}

func TestNoopClosure(t *testing.T) {
	fn := newFunction(t, func(b *irb.Builder, x *ir.Var) ir.Expr {
		return b.Relu(b.Add(x, b.Neg(x)))
	})
	never := replace("never", pattern.IsConv2D(), unary(ops.Relu{}))
	declines := rewrite.NewRule("declines", pattern.Any(), func(*rewrite.Context, *pattern.MatchResult) (ir.Expr, error) {
		return nil, nil
	})
	identity := rewrite.NewRule("identity", pattern.Any(), func(_ *rewrite.Context, res *pattern.MatchResult) (ir.Expr, error) {
		return res.Root(), nil
	})
	tests := [][]rewrite.Rule{
		nil,
		{never},
		{declines, identity, never},
	}
	for i, rules := range tests {
		got, stats, err := rewrite.Run(context.Background(), fn, rules)
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		if got != fn {
			t.Errorf("test %d: got a new function %s but want the same function", i, got)
		}
		if !stats.Fixpoint || stats.Iterations != 0 || stats.Total() != 0 {
			t.Errorf("test %d: incorrect stats %+v", i, stats)
		}
	}
}

func TestFixpointAndCap(t *testing.T) {
	fn := newFunction(t, func(b *irb.Builder, x *ir.Var) ir.Expr {
		return b.Relu(x)
	})
	toSigmoid := replace("to-sigmoid", pattern.IsRelu(), unary(ops.Sigmoid{}))
	toRelu := replace("to-relu", pattern.IsSigmoid(), unary(ops.Relu{}))

	got, stats, err := rewrite.Run(context.Background(), fn, []rewrite.Rule{toSigmoid})
	if err != nil {
		t.Fatal(err)
	}
	if !stats.Fixpoint || stats.Iterations != 1 || stats.Applied["to-sigmoid"] != 1 {
		t.Errorf("incorrect stats %+v", stats)
	}
	call, ok := got.Body().(*ir.Call)
	if !ok || call.Op() != (ops.Sigmoid{}) {
		t.Errorf("got body %s but want a sigmoid", got.Body())
	}

	got, stats, err = rewrite.Run(context.Background(), fn, []rewrite.Rule{toSigmoid, toRelu}, rewrite.WithMaxIterations(5), rewrite.WithMeter(noop.NewMeterProvider().Meter("test")))
	if err != nil {
		t.Fatal(err)
	}
	if stats.Fixpoint || stats.Iterations != 5 {
		t.Errorf("incorrect stats %+v", stats)
	}
	if stats.Applied["to-sigmoid"] != 3 || stats.Applied["to-relu"] != 2 {
		t.Errorf("incorrect rule counts %v", stats.Applied)
	}
	if call, ok := got.Body().(*ir.Call); !ok || call.Op() != (ops.Sigmoid{}) {
		t.Errorf("got body %s but want a sigmoid", got.Body())
	}
}

func TestSharingPreserved(t *testing.T) {
	var untouched ir.Expr
	fn := newFunction(t, func(b *irb.Builder, x *ir.Var) ir.Expr {
		shared := b.Sigmoid(x)
		untouched = b.Exp(x)
		return b.Add(b.Mul(shared, untouched), b.Sub(shared, untouched))
	})
	got, _, err := rewrite.Run(context.Background(), fn, []rewrite.Rule{
		replace("to-relu", pattern.IsSigmoid(), unary(ops.Relu{})),
	})
	if err != nil {
		t.Fatal(err)
	}
	add := got.Body().(*ir.Call)
	mul, sub := add.ArgAt(0).(*ir.Call), add.ArgAt(1).(*ir.Call)
	if mul.ArgAt(0) != sub.ArgAt(0) {
		t.Errorf("replacement of a shared node is not shared: %s and %s", mul.ArgAt(0), sub.ArgAt(0))
	}
	if relu, ok := mul.ArgAt(0).(*ir.Call); !ok || relu.Op() != (ops.Relu{}) {
		t.Errorf("got %s but want a relu", mul.ArgAt(0))
	}
	if mul.ArgAt(1) != untouched || sub.ArgAt(1) != untouched {
		t.Errorf("untouched node has been rebuilt")
	}
	if got.Params()[0] != fn.Params()[0] {
		t.Errorf("function parameters have been rebuilt")
	}
}

func TestDescendantsReplacedFirst(t *testing.T) {
	fn := newFunction(t, func(b *irb.Builder, x *ir.Var) ir.Expr {
		return b.Neg(b.Neg(x))
	})
	var tried []string
	negVar := pattern.IsUnaryCall(pattern.IsUnaryOp(ops.Neg), pattern.Any())
	rule := rewrite.NewRule("neg-to-exp", negVar, func(ctx *rewrite.Context, res *pattern.MatchResult) (ir.Expr, error) {
		call := res.Root().(*ir.Call)
		tried = append(tried, call.ArgAt(0).String())
		if _, isVar := call.ArgAt(0).(*ir.Var); !isVar {
			return nil, nil
		}
		return ir.NewCall(ops.Unary{Op: ops.Exp}, call.ArgAt(0))
	})
	_, stats, err := rewrite.Run(context.Background(), fn, []rewrite.Rule{rule})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Iterations != 1 || stats.Applied["neg-to-exp"] != 1 {
		t.Errorf("incorrect stats %+v", stats)
	}
	// The outer call is not tried in the first iteration.
	if len(tried) != 2 || tried[0] != "x" {
		t.Errorf("incorrect rule attempts: %v", tried)
	}
}

func TestRuleError(t *testing.T) {
	fn := newFunction(t, func(b *irb.Builder, x *ir.Var) ir.Expr {
		return b.Relu(x)
	})
	errTest := errors.New("test error")
	rule := rewrite.NewRule("failing", pattern.IsRelu(), func(*rewrite.Context, *pattern.MatchResult) (ir.Expr, error) {
		return nil, errTest
	})
	_, _, err := rewrite.Run(context.Background(), fn, []rewrite.Rule{rule})
	if !errors.Is(err, errTest) {
		t.Fatalf("got error %v but want %v", err, errTest)
	}
	if !strings.Contains(err.Error(), "failing") {
		t.Errorf("error %q does not name the rule", err.Error())
	}
}

func TestTypesAvailableToRules(t *testing.T) {
	fn := newFunction(t, func(b *irb.Builder, x *ir.Var) ir.Expr {
		return b.Relu(x)
	})
	var got ir.Type
	rule := rewrite.NewRule("types", pattern.IsRelu(), func(ctx *rewrite.Context, res *pattern.MatchResult) (ir.Expr, error) {
		got = ctx.TypeOf(res.Root())
		return nil, nil
	})
	if _, _, err := rewrite.Run(context.Background(), fn, []rewrite.Rule{rule}); err != nil {
		t.Fatal(err)
	}
	if got == nil || got.String() != "float32[2,3]" {
		t.Errorf("got type %v but want float32[2,3]", got)
	}
}
