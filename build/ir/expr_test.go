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

package ir_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/irb"
	"github.com/gx-org/nnc/build/ir/ops"
)

func TestNewCallArity(t *testing.T) {
	x := ir.NewVar("x", ir.NewTensorType(dtype.Float32, 2))
	tests := []struct {
		op   ir.Op
		args []ir.Expr
		ok   bool
	}{
		{op: ops.Binary{Op: ops.Add}, args: []ir.Expr{x, x}, ok: true},
		{op: ops.Binary{Op: ops.Add}, args: []ir.Expr{x}, ok: false},
		{op: ops.Relu{}, args: []ir.Expr{x, x}, ok: false},
		{op: ops.Range{}, args: []ir.Expr{x, x, x}, ok: true},
		{op: ops.Relu{}, args: []ir.Expr{nil}, ok: false},
		{op: nil, args: nil, ok: false},
	}
	for i, test := range tests {
		call, err := ir.NewCall(test.op, test.args...)
		if test.ok != (err == nil) {
			t.Errorf("test %d: unexpected result: call=%v err=%v", i, call, err)
		}
	}
}

func TestCallArg(t *testing.T) {
	b := irb.New()
	begin := irb.Scalar[int32](0)
	end := irb.Scalar[int32](10)
	step := irb.Scalar[int32](2)
	call := b.Range(begin, end, step).(*ir.Call)
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	if call.Arg(ops.RangeEnd) != end {
		t.Errorf("incorrect argument for end")
	}
	if call.Arg(ops.GatherAxis) != nil {
		t.Errorf("a parameter of another operator should not return an argument")
	}
	args := call.Args()
	args[0] = nil
	if call.ArgAt(0) != begin {
		t.Errorf("modifying the returned arguments should not modify the call")
	}
}

func TestSameOp(t *testing.T) {
	tests := []struct {
		a, b ir.Op
		want bool
	}{
		{a: ops.Binary{Op: ops.Add}, b: ops.Binary{Op: ops.Add}, want: true},
		{a: ops.Binary{Op: ops.Add}, b: ops.Binary{Op: ops.Mul}, want: false},
		{a: ops.Cast{DType: dtype.Float32}, b: ops.Cast{DType: dtype.Float32}, want: true},
		{a: ops.Relu{}, b: ops.Sigmoid{}, want: false},
		{a: ops.Pad{Mode: ops.PadEdge}, b: ops.Pad{Mode: ops.PadReflect}, want: false},
	}
	for i, test := range tests {
		if got := ir.SameOp(test.a, test.b); got != test.want {
			t.Errorf("test %d: SameOp(%s, %s) = %t but want %t", i, test.a.Name(), test.b.Name(), got, test.want)
		}
	}
}

func TestPostOrder(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32, 2)
	neg := b.Neg(x)
	sum := b.Add(neg, neg)
	root := b.Mul(sum, neg)
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	got := slices.Collect(ir.PostOrder(root))
	want := []ir.Expr{x, neg, sum, root}
	if !slices.Equal(got, want) {
		t.Errorf("incorrect order:\ngot:  %v\nwant: %v", got, want)
	}
	var first []ir.Expr
	for x := range ir.PostOrder(root) {
		first = append(first, x)
		break
	}
	if len(first) != 1 {
		t.Errorf("iteration did not stop")
	}
}

func TestRebuildPreservesSharing(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32, 2)
	y := b.Var("y", dtype.Float32, 2)
	shared := b.Exp(x)
	left := b.Add(shared, y)
	right := b.Mul(shared, y)
	untouched := b.Sigmoid(y)
	root := b.Tuple(left, right, untouched)
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	replacement := b.Relu(x)
	got, err := ir.Rebuild(root, ir.Replacements{shared: replacement})
	if err != nil {
		t.Fatal(err)
	}
	if got == root {
		t.Fatalf("root should have been rebuilt")
	}
	tuple := got.(*ir.Tuple)
	newLeft := tuple.Field(0).(*ir.Call)
	newRight := tuple.Field(1).(*ir.Call)
	if newLeft.ArgAt(0) != replacement || newRight.ArgAt(0) != replacement {
		t.Errorf("all parents should see the replacement")
	}
	if newLeft.ArgAt(1) != y || newRight.ArgAt(1) != y {
		t.Errorf("untouched operands should keep their identity")
	}
	if tuple.Field(2) != untouched {
		t.Errorf("untouched subgraphs should keep their identity")
	}
	// The original graph is not modified.
	if left.(*ir.Call).ArgAt(0) != shared {
		t.Errorf("original graph has been modified")
	}
}

func TestRebuildNoChange(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32)
	root := b.Neg(x)
	other := b.Exp(x)
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	got, err := ir.Rebuild(root, ir.Replacements{other: x})
	if err != nil {
		t.Fatal(err)
	}
	if got != root {
		t.Errorf("graph without replaced nodes should be returned as is")
	}
	fn := ir.NewFunction("f", []*ir.Var{x}, root)
	gotFn, err := ir.RebuildFunction(fn, nil)
	if err != nil {
		t.Fatal(err)
	}
	if gotFn != fn {
		t.Errorf("function without replaced nodes should be returned as is")
	}
}

func TestString(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32, 2)
	neg := b.Neg(x)
	root := b.Add(neg, irb.Scalar[float32](1))
	fn := b.Function("f", []*ir.Var{x}, b.Mul(root, neg))
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	want := strings.TrimSpace(`
func f(x float32[2]) {
	%0 = Neg(x)
	%1 = Add(%0, float32(1))
	%2 = Mul(%1, %0)
	return %2
}
`)
	if got := ir.String(fn); got != want {
		t.Errorf("incorrect dump:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
