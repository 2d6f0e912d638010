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

package rules_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/irb"
	"github.com/gx-org/nnc/build/ir/ops"
	"github.com/gx-org/nnc/build/rewrite"
	"github.com/gx-org/nnc/build/rewrite/rules"
	"github.com/gx-org/nnc/golang/backend/kernels"
	"github.com/gx-org/nnc/interp/evaluator"
)

func run(t *testing.T, fn *ir.Function, rs []rewrite.Rule) (*ir.Function, *rewrite.Stats) {
	t.Helper()
	got, stats, err := rewrite.Run(context.Background(), fn, rs, rewrite.WithEvaluator(evaluator.New(kernels.New())))
	if err != nil {
		t.Fatal(err)
	}
	return got, stats
}

func TestSimplify(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32, 2, 3)
	relu := b.Relu(x)
	notIdentity := b.Transpose(x, irb.Ints(b, 1, 0))
	broadcastZero := b.Add(b.Var("v", dtype.Float32, 3), irb.Tensor(b, make([]float32, 6), 2, 3))
	reshape := b.Reshape(b.Reshape(x, irb.Ints(b, 3, 2)), irb.Ints(b, 6))
	copyDim := b.Reshape(b.Reshape(x, irb.Ints(b, 3, 2)), irb.Ints(b, 0, -1))
	tests := []struct {
		body ir.Expr
		// want is the expected body. If nil, the body is not modified.
		want ir.Expr
		rule string
	}{
		{body: b.Add(x, irb.Scalar[float32](0)), want: x, rule: rules.AddZeroName},
		{body: b.Add(irb.Tensor(b, []float32{0, 0, 0}, 3), x), want: x, rule: rules.AddZeroName},
		{body: b.Add(x, irb.Scalar[float32](1))},
		{body: broadcastZero},
		{body: b.Mul(irb.Scalar[float32](1), x), want: x, rule: rules.MulOneName},
		{body: b.Mul(x, irb.Scalar[float32](0))},
		{body: b.Neg(b.Neg(x)), want: x, rule: rules.NegNegName},
		{body: b.Relu(relu), want: relu, rule: rules.ReluReluName},
		{body: b.Cast(x, dtype.Float32), want: x, rule: rules.CastNoopName},
		{body: b.Cast(x, dtype.Float64)},
		{body: b.Transpose(x, irb.Ints(b, 0, 1)), want: x, rule: rules.TransposeIdentityName},
		{body: notIdentity},
		{body: reshape, rule: rules.ReshapeReshapeName},
		{body: copyDim},
	}
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	for i, test := range tests {
		fn := ir.NewFunction("f", []*ir.Var{x}, test.body)
		got, stats := run(t, fn, rules.Simplify())
		if test.rule == "" {
			if got != fn {
				t.Errorf("test %d: %s has been modified to %s", i, test.body, got.Body())
			}
			continue
		}
		if stats.Applied[test.rule] != 1 {
			t.Errorf("test %d: rule %s not applied: %v", i, test.rule, stats.Applied)
		}
		if test.want != nil && got.Body() != test.want {
			t.Errorf("test %d: got %s but want %s", i, got.Body(), test.want)
		}
	}
}

func TestReshapeReshape(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32, 2, 3)
	shape := irb.Ints(b, 6)
	body := b.Reshape(b.Reshape(x, irb.Ints(b, 3, 2)), shape)
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	got, _ := run(t, ir.NewFunction("f", []*ir.Var{x}, body), rules.Simplify())
	call, ok := got.Body().(*ir.Call)
	if !ok || call.Op() != (ops.Reshape{}) {
		t.Fatalf("got %s but want a reshape", got.Body())
	}
	if call.ArgAt(0) != x || call.ArgAt(1) != shape {
		t.Errorf("got %s but want Reshape(x, %s)", call, shape)
	}
}

func TestFoldConstants(t *testing.T) {
	b := irb.New()
	end := b.Add(irb.Scalar[int32](4), irb.Scalar[int32](6))
	body := b.Range(irb.Scalar[int32](0), end, irb.Scalar[int32](2))
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	got, stats := run(t, ir.NewFunction("f", nil, body), rules.Default())
	c, ok := got.Body().(*ir.Const)
	if !ok {
		t.Fatalf("got %s but want a constant", got.Body())
	}
	vals, err := ir.ToSlice[int32](c.Value())
	if err != nil {
		t.Fatal(err)
	}
	if want := []int32{0, 2, 4, 6, 8}; !cmp.Equal(vals, want) {
		t.Errorf("got %v but want %v", vals, want)
	}
	if stats.Applied[rules.FoldConstantsName] != 2 || stats.Iterations != 2 || !stats.Fixpoint {
		t.Errorf("incorrect stats %+v", stats)
	}
}

func TestFoldDeclines(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32, 2)
	conv := b.Conv2D(ops.PadConstant,
		irb.Tensor(b, make([]float32, 16), 1, 1, 4, 4),
		irb.Tensor(b, make([]float32, 9), 1, 1, 3, 3),
		irb.Tensor(b, make([]float32, 1), 1),
		irb.Ints(b, 1, 1),
		irb.Ints(b, 0, 0, 0, 0),
		irb.Ints(b, 1, 1),
		irb.Scalar[int64](1),
		irb.Tensor(b, []float32{0, 6}, 2),
	)
	tests := []ir.Expr{
		b.Add(x, irb.Scalar[float32](2)),
		b.Div(irb.Scalar[int32](1), irb.Scalar[int32](0)),
		conv,
		b.Range(irb.Scalar[int32](0), irb.Scalar[int32](2_000_000_000), irb.Scalar[int32](1)),
	}
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	for i, body := range tests {
		fn := ir.NewFunction("f", []*ir.Var{x}, body)
		got, stats := run(t, fn, rules.FoldConstants())
		if got != fn || stats.Total() != 0 {
			t.Errorf("test %d: %s has been folded into %s", i, body, got.Body())
		}
	}
}

func TestFoldRequiresEvaluator(t *testing.T) {
	b := irb.New()
	body := b.Add(irb.Scalar[int32](4), irb.Scalar[int32](6))
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	_, _, err := rewrite.Run(context.Background(), ir.NewFunction("f", nil, body), rules.FoldConstants())
	if err == nil {
		t.Errorf("expected an error")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		sets     []string
		disabled []string
		want     []string
	}{
		{
			sets: []string{rules.FoldSet},
			want: []string{rules.FoldConstantsName},
		},
		{
			sets:     []string{rules.DefaultSet, rules.FoldSet},
			disabled: []string{rules.NegNegName, rules.ReluReluName},
			want: []string{
				rules.AddZeroName,
				rules.MulOneName,
				rules.ReshapeReshapeName,
				rules.CastNoopName,
				rules.TransposeIdentityName,
				rules.FoldConstantsName,
			},
		},
	}
	for i, test := range tests {
		rs, err := rules.Lookup(test.sets, test.disabled)
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		var got []string
		for _, r := range rs {
			got = append(got, r.Name())
		}
		if !cmp.Equal(got, test.want) {
			t.Errorf("test %d: got %v but want %v", i, got, test.want)
		}
	}
	if _, err := rules.Lookup([]string{"unknown"}, nil); err == nil {
		t.Errorf("expected an error for an unknown rule set")
	}
}
