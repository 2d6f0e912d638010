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

package main

import (
	"strings"
	"testing"

	"github.com/gx-org/nnc/build/ir/ops"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		groups []string
		want   []string
		absent []string
	}{
		{
			want: []string{
				"// Code generated by genpatterns. DO NOT EDIT.",
				`"github.com/gx-org/backend/dtype"`,
				"func IsBinaryCall(target *BinaryPattern, lhs, rhs Pattern) *CallPattern {",
				"func IsCastDType(v dtype.DataType) *CastPattern {",
				"func IsConv2DCall(target *Conv2DPattern, input, weights, bias, stride, padding, dilation, groups, fusedClamp Pattern) *CallPattern {",
				"func IsClampCall(target *ClampPattern, input, minValue, maxValue Pattern) *CallPattern {",
				"case ir.RangeKind:",
			},
			absent: []string{"min, max Pattern"},
		},
		{
			groups: []string{ops.NNGroup},
			want:   []string{"func IsRelu() *ReluPattern {"},
			absent: []string{"BinaryPattern", `"github.com/gx-org/backend/dtype"`},
		},
	}
	for i, test := range tests {
		infos, err := selectOps(test.groups)
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		src, err := Generate(infos)
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		for _, want := range test.want {
			if !strings.Contains(string(src), want) {
				t.Errorf("test %d: generated source does not contain %q", i, want)
			}
		}
		for _, absent := range test.absent {
			if strings.Contains(string(src), absent) {
				t.Errorf("test %d: generated source contains %q", i, absent)
			}
		}
	}
}

func TestParamName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "input", want: "input"},
		{name: "min", want: "minValue"},
		{name: "max", want: "maxValue"},
		{name: "len", want: "lenValue"},
		{name: "type", want: "typeValue"},
		{name: "target", want: "targetValue"},
		{name: "initValue", want: "initValue"},
	}
	for i, test := range tests {
		if got := paramName(test.name); got != test.want {
			t.Errorf("test %d: paramName(%q) = %q but want %q", i, test.name, got, test.want)
		}
	}
}

func TestSelectOpsUnknownGroup(t *testing.T) {
	if _, err := selectOps([]string{"unknown"}); err == nil {
		t.Errorf("expected an error for an unknown group")
	}
}
