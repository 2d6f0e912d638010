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

package options_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gx-org/nnc/api/options"
	"github.com/gx-org/nnc/build/rewrite"
	"github.com/gx-org/nnc/build/rewrite/rules"
)

var ignoreBackend = cmpopts.IgnoreFields(options.Config{}, "Backend")

func TestNew(t *testing.T) {
	tests := []struct {
		opts []options.Option
		want options.Config
	}{
		{
			want: options.Config{
				MaxIterations: rewrite.DefaultMaxIterations,
				RuleSets:      []string{rules.DefaultSet},
			},
		},
		{
			opts: []options.Option{
				options.WithMaxIterations(3),
				options.WithRuleSets(rules.FoldSet),
				options.WithDisabledRules(rules.NegNegName),
				options.WithDisabledRules(rules.CastNoopName),
				options.WithDebug(true),
			},
			want: options.Config{
				MaxIterations: 3,
				RuleSets:      []string{rules.FoldSet},
				DisabledRules: []string{rules.NegNegName, rules.CastNoopName},
				Debug:         true,
			},
		},
	}
	for i, test := range tests {
		got := options.New(test.opts...)
		if diff := cmp.Diff(&test.want, got, ignoreBackend); diff != "" {
			t.Errorf("test %d: unexpected configuration:\n%s", i, diff)
		}
		if err := got.Validate(); err != nil {
			t.Errorf("test %d: %v", i, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		opts []options.Option
		err  string
	}{
		{
			opts: []options.Option{options.WithMaxIterations(0)},
			err:  "must be positive",
		},
		{
			opts: []options.Option{options.WithRuleSets("unknown")},
			err:  "unknown rule set",
		},
	}
	for i, test := range tests {
		err := options.New(test.opts...).Validate()
		if err == nil {
			t.Errorf("test %d: expected an error", i)
			continue
		}
		if !strings.Contains(err.Error(), test.err) {
			t.Errorf("test %d: error %q does not contain %q", i, err.Error(), test.err)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		src  string
		want options.Config
	}{
		{
			src: `version: v1`,
			want: options.Config{
				MaxIterations: rewrite.DefaultMaxIterations,
				RuleSets:      []string{rules.DefaultSet},
			},
		},
		{
			src: `
version: v1.2.0
maxIterations: 8
rules: [simplify]
disabledRules:
  - relu-relu
debug: true
`,
			want: options.Config{
				MaxIterations: 8,
				RuleSets:      []string{rules.SimplifySet},
				DisabledRules: []string{rules.ReluReluName},
				Debug:         true,
			},
		},
		{
			src: `
version: v1
rules: []
`,
			want: options.Config{
				MaxIterations: rewrite.DefaultMaxIterations,
				RuleSets:      []string{},
			},
		},
	}
	for i, test := range tests {
		opts, err := options.Parse([]byte(test.src))
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		got := options.New(opts...)
		if diff := cmp.Diff(&test.want, got, ignoreBackend); diff != "" {
			t.Errorf("test %d: unexpected configuration:\n%s", i, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src string
		err string
	}{
		{src: ``, err: "missing configuration version"},
		{src: `maxIterations: 3`, err: "missing configuration version"},
		{src: `version: one`, err: "invalid configuration version"},
		{src: `version: v2.0.0`, err: "not supported"},
		{src: "version: v1\nunknown: 3", err: "cannot parse"},
		{src: "version: v1\nmaxIterations: many", err: "cannot parse"},
	}
	for i, test := range tests {
		_, err := options.Parse([]byte(test.src))
		if err == nil {
			t.Errorf("test %d: expected an error", i)
			continue
		}
		if !strings.Contains(err.Error(), test.err) {
			t.Errorf("test %d: error %q does not contain %q", i, err.Error(), test.err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nnc.yaml")
	if err := os.WriteFile(path, []byte("version: v1\nmaxIterations: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	opts, err := options.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := options.New(opts...).MaxIterations; got != 2 {
		t.Errorf("got %d iterations but want 2", got)
	}
	if _, err := options.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
