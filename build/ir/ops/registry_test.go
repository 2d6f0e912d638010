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

package ops_test

import (
	"testing"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/ops"
)

func TestRegistryCoversAllKinds(t *testing.T) {
	count := 0
	for info := range ops.All() {
		count++
		if info.Zero.Kind() != info.Kind {
			t.Errorf("%s: zero value has kind %s", info.Name, info.Zero.Kind())
		}
		if info.Name != info.Kind.String() {
			t.Errorf("%s: name does not match kind %s", info.Name, info.Kind)
		}
		if info.Params.Len() == 0 {
			t.Errorf("%s: no parameters declared", info.Name)
		}
		for i, param := range info.Params.All() {
			if param.Index != i {
				t.Errorf("%s: parameter %s has index %d but is at position %d", info.Name, param.Name, param.Index, i)
			}
			if param.Kind != info.Kind {
				t.Errorf("%s: parameter %s declared for kind %s", info.Name, param.Name, param.Kind)
			}
		}
		if ops.Lookup(info.Kind) != info {
			t.Errorf("%s: lookup returns a different description", info.Name)
		}
	}
	if want := ops.NumKinds - 1; count != want {
		t.Errorf("registry has %d operators but want %d", count, want)
	}
	if ops.Lookup(ir.InvalidOpKind) != nil {
		t.Errorf("invalid kind should not be registered")
	}
}

func TestParamsAreShared(t *testing.T) {
	a := ops.Binary{Op: ops.Add}.Params()
	b := ops.Binary{Op: ops.Mul}.Params()
	for i := range a.Len() {
		if a.At(i) != b.At(i) {
			t.Errorf("parameter %d is not shared between instances of the same kind", i)
		}
	}
	if a.At(1) != ops.BinaryRHS {
		t.Errorf("parameter 1 of Binary should be %s", ops.BinaryRHS)
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		op   ir.Op
		name string
		str  string
	}{
		{op: ops.Binary{Op: ops.Add}, name: "Binary[Add]", str: "Add"},
		{op: ops.Unary{Op: ops.LogicalNot}, name: "Unary[LogicalNot]", str: "LogicalNot"},
		{op: ops.Reduce{Op: ops.ReduceSum}, name: "Reduce[Sum]", str: "ReduceSum"},
		{op: ops.ReduceArg{Op: ops.ArgMax}, name: "ReduceArg[ArgMax]", str: "ArgMax"},
		{op: ops.Cast{DType: dtype.Float32}, name: "Cast[float32]", str: "Cast[float32]"},
		{op: ops.Pad{Mode: ops.PadReflect}, name: "Pad[Reflect]", str: "Pad[Reflect]"},
		{op: ops.Range{}, name: "Range", str: "Range"},
		{op: ops.Binary{Op: ops.BinaryOp(42)}, name: "Binary[invalid(42)]", str: "invalid(42)"},
	}
	for i, test := range tests {
		if got := test.op.Name(); got != test.name {
			t.Errorf("test %d: got name %q but want %q", i, got, test.name)
		}
		if got := test.op.String(); got != test.str {
			t.Errorf("test %d: got string %q but want %q", i, got, test.str)
		}
	}
}
