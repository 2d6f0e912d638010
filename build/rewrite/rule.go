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

package rewrite

import (
	"context"

	"github.com/gx-org/nnc/build/infer"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/pattern"
	"github.com/gx-org/nnc/interp/evaluator"
)

type (
	// Rule replaces the expressions matching a pattern.
	Rule interface {
		// Name of the rule, used in logs, metrics, and errors.
		Name() string
		// Pattern matched by the rule.
		Pattern() pattern.Pattern
		// Rewrite returns the expression replacing the root of a match.
		// Returning a nil expression and no error declines the match.
		Rewrite(ctx *Context, res *pattern.MatchResult) (ir.Expr, error)
	}

	// Func computes the replacement of a match.
	Func func(ctx *Context, res *pattern.MatchResult) (ir.Expr, error)

	funcRule struct {
		name    string
		pattern pattern.Pattern
		fn      Func
	}

	// Context gives rules access to the state of the current iteration.
	Context struct {
		ctx   context.Context
		types *infer.Result
		eval  *evaluator.Evaluator
	}
)

// NewRule returns a rule given its name, its pattern, and a function
// computing the replacement.
func NewRule(name string, p pattern.Pattern, fn Func) Rule {
	return &funcRule{name: name, pattern: p, fn: fn}
}

func (r *funcRule) Name() string {
	return r.name
}

func (r *funcRule) Pattern() pattern.Pattern {
	return r.pattern
}

func (r *funcRule) Rewrite(ctx *Context, res *pattern.MatchResult) (ir.Expr, error) {
	return r.fn(ctx, res)
}

func (r *funcRule) String() string {
	return r.name + ": " + r.pattern.String()
}

// Context returns the context of the run.
func (ctx *Context) Context() context.Context {
	return ctx.ctx
}

// TypeOf returns the type inferred for an expression at the beginning
// of the current iteration. Expressions built by rules have no type.
func (ctx *Context) TypeOf(expr ir.Expr) ir.Type {
	return ctx.types.TypeOf(expr)
}

// Types returns the lookup function of the types of the current iteration.
func (ctx *Context) Types() pattern.TypeLookup {
	return ctx.types.TypeOf
}

// Evaluator returns the evaluator used to fold constants.
// Returns nil if the run has not been configured with an evaluator.
func (ctx *Context) Evaluator() *evaluator.Evaluator {
	return ctx.eval
}
