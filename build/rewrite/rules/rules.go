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

// Package rules provides the built-in rewrite rules.
package rules

import (
	"maps"
	"slices"

	"github.com/pkg/errors"
	"github.com/gx-org/nnc/build/rewrite"
)

// Names of the rule sets.
const (
	FoldSet     = "fold"
	SimplifySet = "simplify"
	DefaultSet  = "default"
)

var sets = map[string]func() []rewrite.Rule{
	FoldSet:     FoldConstants,
	SimplifySet: Simplify,
	DefaultSet:  Default,
}

// Default returns the simplification rules followed by constant folding.
func Default() []rewrite.Rule {
	return append(Simplify(), FoldConstants()...)
}

// SetNames returns the names of the rule sets, sorted.
func SetNames() []string {
	return slices.Sorted(maps.Keys(sets))
}

// Lookup returns the rules of the sets given their names, in order.
// Rules appearing in several sets are only included once and rules
// with a name in disabled are skipped.
func Lookup(names []string, disabled []string) ([]rewrite.Rule, error) {
	seen := make(map[string]bool)
	for _, name := range disabled {
		seen[name] = true
	}
	var rules []rewrite.Rule
	for _, name := range names {
		set, ok := sets[name]
		if !ok {
			return nil, errors.Errorf("unknown rule set %q. Available rule sets are %v", name, SetNames())
		}
		for _, rule := range set() {
			if seen[rule.Name()] {
				continue
			}
			seen[rule.Name()] = true
			rules = append(rules, rule)
		}
	}
	return rules, nil
}
