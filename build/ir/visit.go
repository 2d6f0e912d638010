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

package ir

import (
	"iter"

	"github.com/pkg/errors"
)

// PostOrder returns an iterator over all the nodes reachable from the roots.
// Operands are visited before the nodes using them and each node is visited once.
func PostOrder(roots ...Expr) iter.Seq[Expr] {
	return func(yield func(Expr) bool) {
		visited := make(map[Expr]bool)
		var visit func(Expr) bool
		visit = func(x Expr) bool {
			if x == nil || visited[x] {
				return true
			}
			visited[x] = true
			for _, op := range x.Operands() {
				if !visit(op) {
					return false
				}
			}
			return yield(x)
		}
		for _, root := range roots {
			if !visit(root) {
				return
			}
		}
	}
}

// Replacements maps nodes to the nodes replacing them.
type Replacements map[Expr]Expr

// Rebuild returns the graph rooted at root where the nodes in the replacement
// map have been substituted. Parents of substituted nodes are rebuilt.
// Nodes for which no operand changed are kept, preserving the identity of
// untouched subgraphs and the sharing between nodes.
// The input graph is not modified. A replacement node is used as is.
func Rebuild(root Expr, replacements Replacements) (Expr, error) {
	if len(replacements) == 0 {
		return root, nil
	}
	rb := &rebuilder{
		replacements: replacements,
		done:         make(map[Expr]Expr),
	}
	return rb.rebuild(root)
}

// RebuildFunction rebuilds the body of a function.
// The function is returned as is if its body has not changed.
func RebuildFunction(fn *Function, replacements Replacements) (*Function, error) {
	body, err := Rebuild(fn.Body(), replacements)
	if err != nil {
		return nil, err
	}
	if body == fn.Body() {
		return fn, nil
	}
	return NewFunction(fn.Name(), fn.Params(), body), nil
}

type rebuilder struct {
	replacements Replacements
	done         map[Expr]Expr
}

func (rb *rebuilder) rebuildAll(xs []Expr) ([]Expr, bool, error) {
	changed := false
	r := make([]Expr, len(xs))
	for i, x := range xs {
		var err error
		r[i], err = rb.rebuild(x)
		if err != nil {
			return nil, false, err
		}
		changed = changed || r[i] != x
	}
	return r, changed, nil
}

func (rb *rebuilder) rebuild(x Expr) (Expr, error) {
	if r, ok := rb.done[x]; ok {
		return r, nil
	}
	if r, ok := rb.replacements[x]; ok {
		rb.done[x] = r
		return r, nil
	}
	var r Expr
	switch xT := x.(type) {
	case *Var, *Const:
		r = x
	case *Call:
		args, changed, err := rb.rebuildAll(xT.args)
		if err != nil {
			return nil, err
		}
		r = x
		if changed {
			if r, err = NewCall(xT.op, args...); err != nil {
				return nil, err
			}
		}
	case *Tuple:
		fields, changed, err := rb.rebuildAll(xT.fields)
		if err != nil {
			return nil, err
		}
		r = x
		if changed {
			r = NewTuple(fields...)
		}
	case *Function:
		body, err := rb.rebuild(xT.body)
		if err != nil {
			return nil, err
		}
		r = x
		if body != xT.body {
			r = NewFunction(xT.name, xT.params, body)
		}
	default:
		return nil, errors.Errorf("cannot rebuild node %T: not supported", x)
	}
	rb.done[x] = r
	return r, nil
}
