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

package rules

import (
	"github.com/pkg/errors"
	"github.com/gx-org/nnc/build/fmterr"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/ops"
	"github.com/gx-org/nnc/build/pattern"
	"github.com/gx-org/nnc/build/rewrite"
	"github.com/gx-org/nnc/interp/evaluator"
	"goa.design/clue/log"
)

// FoldConstantsName is the name of the rule folding constants.
const FoldConstantsName = "fold-constants"

// anyCall matches a call to any operator.
func anyCall() pattern.Pattern {
	var alts []pattern.Pattern
	for info := range ops.All() {
		alts = append(alts, pattern.ForKind(info.Kind))
	}
	return pattern.Alt(alts...)
}

func isConstant(expr ir.Expr) bool {
	switch exprT := expr.(type) {
	case *ir.Const:
		return true
	case *ir.Tuple:
		for _, field := range exprT.Fields() {
			if !isConstant(field) {
				return false
			}
		}
		return true
	}
	return false
}

// FoldConstants returns a rule replacing calls for which all the arguments
// are constants by the result of the call.
// Calls the evaluator does not support are left as is.
func FoldConstants() []rewrite.Rule {
	return []rewrite.Rule{rewrite.NewRule(FoldConstantsName, anyCall(), foldConstants)}
}

func foldConstants(ctx *rewrite.Context, res *pattern.MatchResult) (ir.Expr, error) {
	call, ok := res.Root().(*ir.Call)
	if !ok {
		return nil, fmterr.Internalf("matched %T but want a call", res.Root())
	}
	for _, arg := range call.Args() {
		if !isConstant(arg) {
			return nil, nil
		}
	}
	if !ir.IsValid(ctx.TypeOf(call)) {
		return nil, nil
	}
	eval := ctx.Evaluator()
	if eval == nil {
		return nil, errors.Errorf("folding constants requires an evaluator")
	}
	c, err := eval.Eval(call)
	switch {
	case err == nil:
		return c, nil
	case errors.Is(err, evaluator.ErrNotConstant):
		return nil, nil
	case fmterr.IsInternal(err):
		return nil, err
	}
	log.Debug(ctx.Context(),
		log.KV{K: "msg", V: "cannot fold constant"},
		log.KV{K: "op", V: call.Op().Name()},
		log.KV{K: "err", V: err.Error()},
	)
	return nil, nil
}
