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

package api_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/api"
	"github.com/gx-org/nnc/api/options"
	"github.com/gx-org/nnc/build/fmterr"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/irb"
	"github.com/gx-org/nnc/build/ir/ops"
	"github.com/gx-org/nnc/build/rewrite/rules"
	"go.uber.org/multierr"
)

// newFunction returns relu(relu(x + 0)) + range(0, 4+2, 2) where x has type float32[3].
func newFunction(t *testing.T) (*ir.Function, *ir.Var) {
	t.Helper()
	b := irb.New()
	x := b.Var("x", dtype.Float32, 3)
	relu := b.Relu(b.Relu(b.Add(x, irb.Scalar[float32](0))))
	rng := b.Cast(b.Range(irb.Scalar[int32](0), b.Add(irb.Scalar[int32](4), irb.Scalar[int32](2)), irb.Scalar[int32](2)), dtype.Float32)
	fn := b.Function("f", []*ir.Var{x}, b.Add(relu, rng))
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	return fn, x
}

func TestCompile(t *testing.T) {
	fn, x := newFunction(t)
	compiler, err := api.NewCompiler(options.WithDebug(true))
	if err != nil {
		t.Fatal(err)
	}
	mod, err := compiler.Compile(context.Background(), fn)
	if err != nil {
		t.Fatal(err)
	}
	if len(mod.Functions) != 1 || len(mod.Types) != 1 || len(mod.Stats) != 1 {
		t.Fatalf("incorrect module: %d functions, %d types, %d stats", len(mod.Functions), len(mod.Types), len(mod.Stats))
	}
	got, types, ok := mod.Lookup("f")
	if !ok {
		t.Fatalf("function f not found in the compiled module")
	}
	if got.Params()[0] != x {
		t.Errorf("function parameters have been rebuilt")
	}
	for node, typ := range types.All() {
		if !ir.IsValid(typ) {
			t.Errorf("node %s has invalid type %s", node, typ)
		}
	}
	if typ := types.TypeOf(got.Body()); typ.String() != "float32[3]" {
		t.Errorf("got type %s but want float32[3]", typ)
	}
	// add(relu(x), const)
	add := got.Body().(*ir.Call)
	relu, ok := add.ArgAt(0).(*ir.Call)
	if !ok || relu.ArgAt(0) != x {
		t.Errorf("got %s but want relu(x) as first argument", add.ArgAt(0))
	}
	if _, ok := add.ArgAt(1).(*ir.Const); !ok {
		t.Errorf("got %s but want a constant as second argument", add.ArgAt(1))
	}
	stats := mod.Stats[0]
	if !stats.Fixpoint {
		t.Errorf("rewrite did not reach a fixpoint")
	}
	for _, name := range []string{rules.AddZeroName, rules.ReluReluName, rules.FoldConstantsName} {
		if stats.Applied[name] == 0 {
			t.Errorf("rule %s has not been applied: %v", name, stats.Applied)
		}
	}
	if _, _, ok := mod.Lookup("g"); ok {
		t.Errorf("function g found in the compiled module")
	}
}

func TestCompileWithoutRules(t *testing.T) {
	fn, _ := newFunction(t)
	compiler, err := api.NewCompiler(options.WithRuleSets())
	if err != nil {
		t.Fatal(err)
	}
	mod, err := compiler.Compile(context.Background(), fn)
	if err != nil {
		t.Fatal(err)
	}
	if mod.Functions[0] != fn {
		t.Errorf("function has been modified without any rule")
	}
	if stats := mod.Stats[0]; !stats.Fixpoint || stats.Total() != 0 {
		t.Errorf("incorrect stats %+v", stats)
	}
}

func TestCompileDisabledRules(t *testing.T) {
	fn, _ := newFunction(t)
	compiler, err := api.NewCompiler(options.WithDisabledRules(rules.ReluReluName))
	if err != nil {
		t.Fatal(err)
	}
	mod, err := compiler.Compile(context.Background(), fn)
	if err != nil {
		t.Fatal(err)
	}
	if n := mod.Stats[0].Applied[rules.ReluReluName]; n != 0 {
		t.Errorf("disabled rule %s applied %d times", rules.ReluReluName, n)
	}
}

func TestCompileDynamicConvolution(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32, 1, 3, ir.DynamicDim, ir.DynamicDim)
	conv := b.Conv2D(ops.PadConstant,
		x,
		irb.Tensor(b, make([]float32, 8*3*3*3), 8, 3, 3, 3),
		irb.Tensor(b, make([]float32, 8), 8),
		irb.Ints(b, 1, 1),
		irb.Ints(b, 0, 0, 0, 0),
		irb.Ints(b, 1, 1),
		irb.Scalar[int64](1),
		irb.Tensor(b, []float32{0, 6}, 2),
	)
	fn := b.Function("conv", []*ir.Var{x}, b.Reshape(conv, b.ShapeOf(conv)))
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	compiler, err := api.NewCompiler()
	if err != nil {
		t.Fatal(err)
	}
	mod, err := compiler.Compile(context.Background(), fn)
	if err != nil {
		t.Fatalf("cannot compile a convolution with dynamic dimensions: %v", err)
	}
	_, types, _ := mod.Lookup("conv")
	if typ := types.TypeOf(mod.Functions[0].Body()); !ir.IsValid(typ) {
		t.Errorf("got invalid type %s", typ)
	}
}

func TestCompileInvalid(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Float32, 2, 3)
	axis := b.Var("axis", dtype.Int32)
	gather := b.Gather(x, axis, irb.Ints(b, 0))
	invalid := b.Function("invalid", []*ir.Var{x, axis}, b.Neg(gather))
	valid := b.Function("valid", []*ir.Var{x}, b.Neg(x))
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	compiler, err := api.NewCompiler()
	if err != nil {
		t.Fatal(err)
	}
	mod, err := compiler.Compile(context.Background(), valid, invalid)
	if err == nil {
		t.Fatal("expected an error")
	}
	if mod != nil {
		t.Errorf("got a partially compiled module")
	}
	if !strings.Contains(err.Error(), "invalid") {
		t.Errorf("error %q does not name the function", err.Error())
	}
	errs := multierr.Errors(errors.Cause(err))
	if len(errs) != 1 {
		t.Fatalf("got %d errors but want 1: %v", len(errs), err)
	}
	var nodeErr *fmterr.NodeError
	if !errors.As(errs[0], &nodeErr) {
		t.Fatalf("error %v is not a node error", errs[0])
	}
	if nodeErr.Kind != "Gather" || !strings.Contains(nodeErr.Reason, "axis") {
		t.Errorf("incorrect error %v", nodeErr)
	}
}

func TestNewCompilerErrors(t *testing.T) {
	tests := [][]options.Option{
		{options.WithMaxIterations(-1)},
		{options.WithRuleSets(rules.DefaultSet, "unknown")},
	}
	for i, opts := range tests {
		if _, err := api.NewCompiler(opts...); err == nil {
			t.Errorf("test %d: expected an error", i)
		}
	}
	compiler, err := api.NewCompiler()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := compiler.Compile(context.Background(), nil); err == nil {
		t.Errorf("expected an error when compiling a nil function")
	}
}
