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

package pattern

import (
	"iter"

	"github.com/gx-org/nnc/base/ordered"
	"github.com/gx-org/nnc/build/ir"
)

// MatchResult maps the nodes of a pattern to the expressions they matched.
// A result is only valid for the match attempt that created it.
type MatchResult struct {
	root     ir.Expr
	bindings *ordered.Map[Pattern, ir.Expr]
}

// Root returns the expression matched by the root of the pattern.
func (r *MatchResult) Root() ir.Expr {
	return r.root
}

// Get returns the expression bound to a pattern node.
func (r *MatchResult) Get(p Pattern) (ir.Expr, bool) {
	return r.bindings.Load(p)
}

// Len returns the number of pattern nodes bound.
func (r *MatchResult) Len() int {
	return r.bindings.Len()
}

// All returns an iterator over the bindings,
// in the order the pattern nodes have been bound.
func (r *MatchResult) All() iter.Seq2[Pattern, ir.Expr] {
	return r.bindings.All()
}
