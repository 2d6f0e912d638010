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

// TypeLookup returns the type inferred for an expression, or nil if unknown.
type TypeLookup func(ir.Expr) ir.Type

type matcher struct {
	types    TypeLookup
	bindings *ordered.Map[Pattern, ir.Expr]
}

// Match matches a pattern against an expression.
// Types are used to check the type constraints declared by the pattern nodes:
// a node with a constraint never matches an expression without a known type.
// Returns false, and no result, if the pattern does not match.
func Match(p Pattern, expr ir.Expr, types TypeLookup) (*MatchResult, bool) {
	m := &matcher{
		types:    types,
		bindings: ordered.NewMap[Pattern, ir.Expr](),
	}
	if !m.match(p, expr) {
		return nil, false
	}
	return &MatchResult{root: expr, bindings: m.bindings}, true
}

// MatchAll matches a pattern against all the nodes reachable from roots,
// operands first, and yields the successful results.
func MatchAll(p Pattern, types TypeLookup, roots ...ir.Expr) iter.Seq[*MatchResult] {
	return func(yield func(*MatchResult) bool) {
		for node := range ir.PostOrder(roots...) {
			res, ok := Match(p, node, types)
			if !ok {
				continue
			}
			if !yield(res) {
				return
			}
		}
	}
}

// match binds p to expr if p matches expr.
// A pattern already bound only matches the expression it is bound to.
// All the bindings made while trying to match p are discarded if the match fails.
func (m *matcher) match(p Pattern, expr ir.Expr) bool {
	if p == nil || expr == nil {
		return false
	}
	if bound, ok := m.bindings.Load(p); ok {
		return bound == expr
	}
	mark := m.bindings.Mark()
	m.bindings.Store(p, expr)
	if !p.matchNode(m, expr) {
		m.bindings.Rollback(mark)
		return false
	}
	return true
}

func (m *matcher) checkType(c *ir.Constraint, expr ir.Expr) bool {
	if c == nil {
		return true
	}
	if m.types == nil {
		return false
	}
	typ := m.types(expr)
	if !ir.IsValid(typ) {
		return false
	}
	return c.Check(typ)
}

func (m *matcher) matchOp(p OpPattern, expr ir.Expr) bool {
	call, ok := expr.(*ir.Call)
	if !ok {
		return false
	}
	if call.Op().Kind() != p.OpKind() || !p.MatchOp(call.Op()) {
		return false
	}
	return m.checkType(p.constraint(), expr)
}
