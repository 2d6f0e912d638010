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

package pattern_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/infer"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/irb"
	"github.com/gx-org/nnc/build/ir/ops"
	"github.com/gx-org/nnc/build/pattern"
)

func TestMatch(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32, 2)
	y := b.Var("y", dtype.Float32, 2)
	one := irb.Scalar[float32](1)
	add := b.Add(x, y)
	mul := b.Mul(x, y)
	addSame := b.Add(x, x)
	addOne := b.Add(x, one)
	cast := b.Cast(x, dtype.Int32)
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	same := pattern.Any()
	tests := []struct {
		pattern pattern.Pattern
		expr    ir.Expr
		want    bool
	}{
		{pattern: pattern.IsBinaryOp(ops.Add), expr: add, want: true},
		{pattern: pattern.IsBinaryOp(ops.Add), expr: mul, want: false},
		{pattern: pattern.IsBinaryOp(ops.Mul), expr: mul, want: true},
		{pattern: pattern.IsBinary(), expr: mul, want: true},
		{pattern: pattern.IsBinary(), expr: x, want: false},
		{pattern: pattern.IsUnary(), expr: add, want: false},
		{pattern: pattern.IsBinaryInstance(ops.Binary{Op: ops.Add}), expr: add, want: true},
		{pattern: pattern.IsBinaryInstance(ops.Binary{Op: ops.Add}), expr: mul, want: false},
		{pattern: pattern.IsBinaryWith(func(op ops.Binary) bool { return op.Op != ops.Add }), expr: mul, want: true},
		{pattern: pattern.IsCastDType(dtype.Int32), expr: cast, want: true},
		{pattern: pattern.IsCastDType(dtype.Int64), expr: cast, want: false},
		{pattern: pattern.IsBinaryCall(nil, same, same), expr: addSame, want: true},
		{pattern: pattern.IsBinaryCall(nil, same, same), expr: add, want: false},
		{pattern: pattern.IsBinaryCall(nil, pattern.Var(), pattern.Const()), expr: addOne, want: true},
		{pattern: pattern.IsBinaryCall(nil, pattern.Var(), pattern.IsConstFilledWith(1)), expr: addOne, want: true},
		{pattern: pattern.IsBinaryCall(nil, pattern.Var(), pattern.IsConstFilledWith(0)), expr: addOne, want: false},
		{pattern: pattern.IsBinaryCall(nil, pattern.Var(), pattern.IsConstValue(irb.Scalar[float32](1))), expr: addOne, want: true},
		{pattern: pattern.IsBinaryCall(nil, pattern.Var(), pattern.IsConstValue(irb.Scalar[float64](1))), expr: addOne, want: false},
		{pattern: pattern.IsBinaryCall(nil, pattern.VarWith(func(v *ir.Var) bool { return v.Name() == "y" }), pattern.Any()), expr: add, want: false},
		{pattern: pattern.Call(pattern.IsBinary()), expr: add, want: true},
		{pattern: pattern.Call(pattern.IsBinary(), pattern.Any()), expr: add, want: false},
		{pattern: pattern.Alt(pattern.IsUnary(), pattern.IsBinaryOp(ops.Mul)), expr: mul, want: true},
		{pattern: pattern.Alt(pattern.IsUnary(), pattern.IsBinaryOp(ops.Mul)), expr: add, want: false},
	}
	for i, test := range tests {
		res, got := pattern.Match(test.pattern, test.expr, nil)
		if got != test.want {
			t.Errorf("test %d: matching %s against %s: got %v but want %v", i, test.pattern, test.expr, got, test.want)
			continue
		}
		if !got {
			if res != nil {
				t.Errorf("test %d: got a non-nil result for a failed match", i)
			}
			continue
		}
		if res.Root() != test.expr {
			t.Errorf("test %d: got root %s but want %s", i, res.Root(), test.expr)
		}
		if bound, ok := res.Get(test.pattern); !ok || bound != test.expr {
			t.Errorf("test %d: root pattern bound to %v but want %s", i, bound, test.expr)
		}
	}
}

func TestIdentityConsistency(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32, 2)
	shared := b.Neg(x)
	sameNode := b.Add(shared, shared)
	sameStructure := b.Add(b.Neg(x), b.Neg(x))
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	operand := pattern.IsUnaryCall(nil, pattern.Var())
	p := pattern.IsBinaryCall(nil, operand, operand)
	res, ok := pattern.Match(p, sameNode, nil)
	if !ok {
		t.Fatalf("%s does not match %s", p, sameNode)
	}
	if got, _ := res.Get(operand); got != shared {
		t.Errorf("got %v bound to the operand but want %s", got, shared)
	}
	if _, ok := pattern.Match(p, sameStructure, nil); ok {
		t.Errorf("%s matches %s: operands are not the same node", p, sameStructure)
	}
}

func TestAltRollback(t *testing.T) {
	b := irb.New()
	v := b.Var("v", dtype.Float32, 2)
	expr := b.Add(v, irb.Scalar[float32](1))
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	x, y, z := pattern.Var(), pattern.Any(), pattern.Const()
	p := pattern.Alt(
		pattern.IsBinaryCall(pattern.IsBinaryOp(ops.Add), x, pattern.IsConstFilledWith(0)),
		pattern.IsBinaryCall(pattern.IsBinaryOp(ops.Add), y, z),
	)
	res, ok := pattern.Match(p, expr, nil)
	if !ok {
		t.Fatalf("%s does not match %s", p, expr)
	}
	if got, ok := res.Get(x); ok {
		t.Errorf("pattern of a failed alternative bound to %s", got)
	}
	if got, _ := res.Get(y); got != v {
		t.Errorf("got %v but want %s", got, v)
	}
	// Alt, the call of the second alternative, its target, y, and z.
	if res.Len() != 5 {
		t.Errorf("got %d bindings but want 5", res.Len())
	}
}

func TestTypeConstraint(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32, 2, 3)
	n := b.Var("n", dtype.Int32, 2, 3)
	fx := b.Neg(x)
	fi := b.Neg(n)
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	types, err := infer.New().Exprs(fx, fi)
	if err != nil {
		t.Fatal(err)
	}
	floats := pattern.IsUnaryCall(nil, pattern.AnyOf(pattern.HasDType(dtype.Float32)))
	ranked := pattern.AnyOf(pattern.HasRank(2))
	tests := []struct {
		pattern pattern.Pattern
		expr    ir.Expr
		types   pattern.TypeLookup
		want    bool
	}{
		{pattern: floats, expr: fx, types: types.TypeOf, want: true},
		{pattern: floats, expr: fi, types: types.TypeOf, want: false},
		{pattern: floats, expr: fx, types: nil, want: false},
		{pattern: ranked, expr: fi, types: types.TypeOf, want: true},
		{pattern: pattern.AnyOf(pattern.HasRank(1)), expr: fi, types: types.TypeOf, want: false},
		{pattern: pattern.AnyOf(pattern.HasFixedShape), expr: fi, types: types.TypeOf, want: true},
		{pattern: pattern.AnyOf(ir.IsIntegral), expr: fi, types: types.TypeOf, want: true},
	}
	for i, test := range tests {
		_, got := pattern.Match(test.pattern, test.expr, test.types)
		if got != test.want {
			t.Errorf("test %d: matching %s against %s: got %v but want %v", i, test.pattern, test.expr, got, test.want)
		}
	}
}

func TestMatchAll(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32, 2)
	root := b.Mul(b.Add(x, x), b.Add(b.Neg(x), x))
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	var roots []ir.Expr
	for res := range pattern.MatchAll(pattern.IsBinaryOp(ops.Add), nil, root) {
		roots = append(roots, res.Root())
	}
	if len(roots) != 2 {
		t.Errorf("got %d matches but want 2: %v", len(roots), roots)
	}
	count := 0
	for range pattern.MatchAll(pattern.IsBinary(), nil, root) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("iteration did not stop")
	}
}

func TestCapture(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32, 2)
	expr := b.Cast(x, dtype.Int32)
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	target, input := pattern.IsCast(), pattern.Any()
	unused := pattern.Const()
	p := pattern.IsCastCall(target, input)

	var w pattern.Wrapper
	if _, err := pattern.Capture[*ir.Var](&w, input); !errors.Is(err, pattern.ErrNotBound) {
		t.Errorf("got error %v but want %v", err, pattern.ErrNotBound)
	}
	res, ok := pattern.Match(p, expr, nil)
	if !ok {
		t.Fatalf("%s does not match %s", p, expr)
	}
	w.Bind(res)
	v, err := pattern.Capture[*ir.Var](&w, input)
	if err != nil {
		t.Fatal(err)
	}
	if v != x {
		t.Errorf("got %s but want %s", v, x)
	}
	if _, err := pattern.Capture[*ir.Const](&w, input); !errors.Is(err, pattern.ErrWrongKind) {
		t.Errorf("got error %v but want %v", err, pattern.ErrWrongKind)
	}
	if _, err := pattern.Capture[ir.Expr](&w, unused); !errors.Is(err, pattern.ErrNotCaptured) {
		t.Errorf("got error %v but want %v", err, pattern.ErrNotCaptured)
	}
	op, err := pattern.CaptureOp[ops.Cast](&w, target)
	if err != nil {
		t.Fatal(err)
	}
	if op.DType != dtype.Int32 {
		t.Errorf("got cast to %s but want %s", op.DType, dtype.Int32)
	}
	if _, err := pattern.CaptureOp[ops.Binary](&w, target); !errors.Is(err, pattern.ErrWrongKind) {
		t.Errorf("got error %v but want %v", err, pattern.ErrWrongKind)
	}
	w.Bind(nil)
	if _, err := pattern.Capture[*ir.Var](&w, input); !errors.Is(err, pattern.ErrNotBound) {
		t.Errorf("got error %v but want %v", err, pattern.ErrNotBound)
	}
}

func TestForKind(t *testing.T) {
	for info := range ops.All() {
		p := pattern.ForKind(info.Kind)
		if p == nil {
			t.Errorf("no pattern for %s", info.Kind)
			continue
		}
		if p.OpKind() != info.Kind {
			t.Errorf("pattern for %s has kind %s", info.Kind, p.OpKind())
		}
		if !p.MatchOp(info.Zero) {
			t.Errorf("pattern %s does not match %s", p, info.Zero)
		}
	}
	if p := pattern.ForKind(ir.InvalidOpKind); p != nil {
		t.Errorf("got pattern %s for an invalid kind", p)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		pattern pattern.Pattern
		want    string
	}{
		{pattern: pattern.IsBinaryOp(ops.Add), want: "Binary[Add]"},
		{pattern: pattern.IsBinaryCall(pattern.IsBinaryOp(ops.Add), pattern.Any(), pattern.Const()), want: "Binary[Add](_, Const)"},
		{pattern: pattern.IsReluCall(nil, pattern.AnyOf(ir.IsFloat)), want: "Relu(_:float)"},
		{pattern: pattern.Alt(pattern.IsRelu(), pattern.IsSigmoid()), want: "Relu|Sigmoid"},
		{pattern: pattern.Tuple(pattern.Var(), pattern.Var()), want: "(Var, Var)"},
	}
	for i, test := range tests {
		if got := test.pattern.String(); got != test.want {
			t.Errorf("test %d: got %q but want %q", i, got, test.want)
		}
	}
}
