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

package nncflag_test

import (
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/nnc/tools/nncflag"
)

func TestStringList(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{
			args: nil,
			want: nil,
		},
		{
			args: []string{"-groups=math"},
			want: []string{"math"},
		},
		{
			args: []string{"-groups", "math, nn,,", "-groups=tensors,math"},
			want: []string{"math", "nn", "tensors"},
		},
	}
	for i, test := range tests {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		got := nncflag.StringListVar(fs, "groups", "")
		if err := fs.Parse(test.args); err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		if !cmp.Equal(*got, test.want) {
			t.Errorf("test %d: got %v but want %v", i, *got, test.want)
		}
	}
}
