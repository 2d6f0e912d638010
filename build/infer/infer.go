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

// Package infer computes the type of every node of an IR graph.
//
// Inference never fails on an ill-typed graph: nodes for which no type can be
// inferred are given an InvalidType explaining why. Errors are only returned
// for defects of the compiler.
package infer

import (
	"iter"

	"github.com/gx-org/nnc/build/fmterr"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/irkind"
	"github.com/gx-org/nnc/interp/evaluator"
)

type (
	// Option configures the inference engine.
	Option func(*Engine)

	// Engine infers types.
	Engine struct {
		eval  *evaluator.Evaluator
		trace func(*ir.Call)
	}

	// Result stores the types inferred during a pass.
	Result struct {
		types map[ir.Expr]ir.Type
		order []ir.Expr
	}
)

// WithEvaluator sets the evaluator used to fold operands that are not
// constant nodes but whose value can be computed at compile time.
func WithEvaluator(eval *evaluator.Evaluator) Option {
	return func(e *Engine) {
		e.eval = eval
	}
}

// WithTrace sets a function called every time the inference rule of
// an operator is executed.
func WithTrace(trace func(*ir.Call)) Option {
	return func(e *Engine) {
		e.trace = trace
	}
}

// New returns a new inference engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Exprs infers the types of all the nodes reachable from roots.
func (e *Engine) Exprs(roots ...ir.Expr) (*Result, error) {
	p := e.newPass()
	for node := range ir.PostOrder(roots...) {
		if err := p.infer(node); err != nil {
			return nil, err
		}
	}
	return p.res, nil
}

// Function infers the types of the nodes of a function.
func (e *Engine) Function(fn *ir.Function) (*Result, error) {
	return e.Exprs(fn)
}

// Functions infers the types of the nodes of several functions in a single pass.
func (e *Engine) Functions(fns ...*ir.Function) (*Result, error) {
	roots := make([]ir.Expr, len(fns))
	for i, fn := range fns {
		roots[i] = fn
	}
	return e.Exprs(roots...)
}

// Function infers the types of the nodes of a function.
func Function(fn *ir.Function, opts ...Option) (*Result, error) {
	return New(opts...).Function(fn)
}

type pass struct {
	engine *Engine
	eval   *evaluator.Evaluator
	res    *Result
	err    error
}

func (e *Engine) newPass() *pass {
	p := &pass{
		engine: e,
		res:    &Result{types: make(map[ir.Expr]ir.Type)},
	}
	if e.eval != nil {
		p.eval = evaluator.New(e.eval.Backend(), evaluator.WithTypes(p.res.TypeOf))
	}
	return p
}

func (p *pass) infer(node ir.Expr) error {
	if _, done := p.res.types[node]; done {
		return nil
	}
	var typ ir.Type
	switch nodeT := node.(type) {
	case *ir.Var:
		typ = nodeT.Type()
	case *ir.Const:
		typ = nodeT.Type()
	case *ir.Tuple:
		fields := make([]ir.Type, nodeT.Len())
		for i := range fields {
			fields[i] = p.res.types[nodeT.Field(i)]
		}
		typ = &ir.TupleType{Fields: fields}
	case *ir.Function:
		params := make([]ir.Type, len(nodeT.Params()))
		for i, param := range nodeT.Params() {
			params[i] = p.res.types[param]
		}
		typ = &ir.CallableType{Params: params, Result: p.res.types[nodeT.Body()]}
	case *ir.Call:
		typ = p.call(nodeT)
	default:
		return fmterr.Internalf("cannot infer the type of %T", node)
	}
	if p.err != nil {
		return p.err
	}
	if typ == nil {
		return fmterr.Internal(fmterr.Errorf(node, "no type inferred"))
	}
	p.res.types[node] = typ
	p.res.order = append(p.res.order, node)
	return nil
}

func (p *pass) call(call *ir.Call) ir.Type {
	kind := call.Op().Kind()
	if !kind.IsValid() {
		p.err = fmterr.Internal(fmterr.Errorf(call, "invalid operator kind"))
		return nil
	}
	r := rules[kind]
	if r == nil {
		p.err = fmterr.Internal(fmterr.Errorf(call, "no inference rule"))
		return nil
	}
	ctx := &Context{pass: p, call: call}
	for _, param := range call.Op().Params().All() {
		typ := ctx.ArgumentType(param)
		if typ == nil {
			p.err = fmterr.Internal(fmterr.Errorf(call, "argument %s has not been inferred", param.Name))
			return nil
		}
		if !ir.IsValid(typ) {
			return ir.Invalidf("argument %s is invalid", param.Name)
		}
		if typ.Kind() == irkind.Any {
			return ir.AnyType()
		}
		if !param.Accept(typ) {
			return ir.Invalidf("argument %s: type %s does not satisfy %s", param.Name, typ, param.Constraint.Name)
		}
	}
	if p.engine.trace != nil {
		p.engine.trace(call)
	}
	return r(ctx)
}

// TypeOf returns the type of a node or nil if the node has not been visited.
func (r *Result) TypeOf(expr ir.Expr) ir.Type {
	return r.types[expr]
}

// Len returns the number of nodes typed by the pass.
func (r *Result) Len() int {
	return len(r.order)
}

// All returns an iterator over the nodes and their types in post order.
func (r *Result) All() iter.Seq2[ir.Expr, ir.Type] {
	return func(yield func(ir.Expr, ir.Type) bool) {
		for _, node := range r.order {
			if !yield(node, r.types[node]) {
				return
			}
		}
	}
}

// Invalid returns an iterator over the nodes with an invalid type in post order.
func (r *Result) Invalid() iter.Seq2[ir.Expr, *ir.InvalidType] {
	return func(yield func(ir.Expr, *ir.InvalidType) bool) {
		for _, node := range r.order {
			invalid, ok := r.types[node].(*ir.InvalidType)
			if !ok {
				continue
			}
			if !yield(node, invalid) {
				return
			}
		}
	}
}

// Check returns an error if a node has an invalid type.
// Only the nodes at the origin of an invalid type are reported:
// nodes invalid because one of their operands is invalid are skipped.
func (r *Result) Check() error {
	var errs fmterr.Errors
	for node, invalid := range r.Invalid() {
		if r.hasInvalidOperand(node) {
			continue
		}
		errs.Append(fmterr.Errorf(node, "%s", invalid.Reason))
	}
	return errs.ToError()
}

func (r *Result) hasInvalidOperand(node ir.Expr) bool {
	for _, op := range node.Operands() {
		if !ir.IsValid(r.types[op]) {
			return true
		}
	}
	return false
}
