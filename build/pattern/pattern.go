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

// Package pattern describes subgraphs of the IR and matches them against expressions.
//
// A pattern is a tree of nodes. Every node of the tree is a binding site:
// when a match succeeds, the result maps each pattern node to the expression
// it matched. The same pattern node used twice in a tree must match the same
// expression (pointer identity).
//
// Patterns for operators are generated from the operator registry
// (see ops.gen.go).
package pattern

//go:generate go run ../../tools/genpatterns -output ops.gen.go

import (
	"fmt"
	"strings"

	"github.com/gx-org/nnc/build/ir"
)

type (
	// Pattern matches an expression.
	// The set of patterns is closed: only this package implements Pattern.
	Pattern interface {
		// matchNode matches the node itself. Sub-patterns are matched through
		// the matcher so that they are bound.
		matchNode(m *matcher, expr ir.Expr) bool
		String() string
	}

	// OpPattern matches a call given its operator.
	// An OpPattern is also a Pattern matching a call regardless of its arguments.
	OpPattern interface {
		Pattern
		// OpKind returns the kind of operators matched by the pattern.
		OpKind() ir.OpKind
		// MatchOp returns true if an operator is matched by the pattern.
		MatchOp(ir.Op) bool
		constraint() *ir.Constraint
	}

	// VarPattern matches a variable.
	VarPattern struct {
		// Cond is an optional predicate over the variable.
		Cond func(*ir.Var) bool
		// Type optionally constrains the type of the variable.
		Type *ir.Constraint
	}

	// ConstPattern matches a constant.
	ConstPattern struct {
		// Cond is an optional predicate over the constant.
		Cond func(*ir.Const) bool
		// Type optionally constrains the type of the constant.
		Type *ir.Constraint

		desc string
	}

	// WildcardPattern matches any expression.
	WildcardPattern struct {
		// Type optionally constrains the type of the expression.
		Type *ir.Constraint
	}

	// CallPattern matches a call and its arguments.
	CallPattern struct {
		// Target matches the call node.
		Target OpPattern
		// Args match the arguments of the call, positionally.
		// If Args is nil, the arguments are not inspected.
		Args []Pattern
	}

	// TuplePattern matches a tuple and its fields.
	TuplePattern struct {
		// Fields match the fields of the tuple, positionally.
		Fields []Pattern
		// Type optionally constrains the type of the tuple.
		Type *ir.Constraint
	}

	// AltPattern matches the first alternative matching an expression.
	// Bindings made by alternatives that failed are discarded.
	AltPattern struct {
		Alts []Pattern
	}
)

var (
	_ Pattern = (*VarPattern)(nil)
	_ Pattern = (*ConstPattern)(nil)
	_ Pattern = (*WildcardPattern)(nil)
	_ Pattern = (*CallPattern)(nil)
	_ Pattern = (*TuplePattern)(nil)
	_ Pattern = (*AltPattern)(nil)
)

// Var matches any variable.
func Var() *VarPattern {
	return &VarPattern{}
}

// VarWith matches variables for which cond returns true.
func VarWith(cond func(*ir.Var) bool) *VarPattern {
	return &VarPattern{Cond: cond}
}

func (p *VarPattern) matchNode(m *matcher, expr ir.Expr) bool {
	v, ok := expr.(*ir.Var)
	if !ok {
		return false
	}
	if p.Cond != nil && !p.Cond(v) {
		return false
	}
	return m.checkType(p.Type, expr)
}

func (p *VarPattern) String() string {
	return "Var" + constraintString(p.Type)
}

// Const matches any constant.
func Const() *ConstPattern {
	return &ConstPattern{}
}

// ConstWith matches constants for which cond returns true.
func ConstWith(cond func(*ir.Const) bool) *ConstPattern {
	return &ConstPattern{Cond: cond}
}

// IsConstValue matches constants equal to c, that is with the same type and the same values.
func IsConstValue(c *ir.Const) *ConstPattern {
	return &ConstPattern{
		Cond: func(other *ir.Const) bool {
			return ir.ConstEqual(c, other)
		},
		desc: c.String(),
	}
}

// IsConstFilledWith matches numerical constants for which all elements are equal to v.
func IsConstFilledWith(v float64) *ConstPattern {
	return &ConstPattern{
		Cond: func(c *ir.Const) bool {
			vals, err := ir.ValuesAs[float64](c.Value())
			if err != nil {
				return false
			}
			for _, val := range vals {
				if val != v {
					return false
				}
			}
			return true
		},
		desc: fmt.Sprintf("filled(%v)", v),
	}
}

func (p *ConstPattern) matchNode(m *matcher, expr ir.Expr) bool {
	c, ok := expr.(*ir.Const)
	if !ok {
		return false
	}
	if p.Cond != nil && !p.Cond(c) {
		return false
	}
	return m.checkType(p.Type, expr)
}

func (p *ConstPattern) String() string {
	if p.desc != "" {
		return "Const(" + p.desc + ")" + constraintString(p.Type)
	}
	return "Const" + constraintString(p.Type)
}

// Any matches any expression.
func Any() *WildcardPattern {
	return &WildcardPattern{}
}

// AnyOf matches any expression with a type satisfying a constraint.
func AnyOf(c *ir.Constraint) *WildcardPattern {
	return &WildcardPattern{Type: c}
}

func (p *WildcardPattern) matchNode(m *matcher, expr ir.Expr) bool {
	return m.checkType(p.Type, expr)
}

func (p *WildcardPattern) String() string {
	return "_" + constraintString(p.Type)
}

// Call matches a call for which target matches the operator
// and args match the arguments.
func Call(target OpPattern, args ...Pattern) *CallPattern {
	return &CallPattern{Target: target, Args: args}
}

func (p *CallPattern) matchNode(m *matcher, expr ir.Expr) bool {
	if p.Target == nil || !m.match(p.Target, expr) {
		return false
	}
	if p.Args == nil {
		return true
	}
	call := expr.(*ir.Call)
	if len(p.Args) != call.NumArgs() {
		return false
	}
	for i, arg := range p.Args {
		if !m.match(arg, call.ArgAt(i)) {
			return false
		}
	}
	return true
}

func (p *CallPattern) String() string {
	if p.Args == nil {
		return fmt.Sprint(p.Target)
	}
	return fmt.Sprintf("%s(%s)", p.Target, joinPatterns(p.Args))
}

// Tuple matches a tuple with fields matching the given patterns.
func Tuple(fields ...Pattern) *TuplePattern {
	return &TuplePattern{Fields: fields}
}

func (p *TuplePattern) matchNode(m *matcher, expr ir.Expr) bool {
	tpl, ok := expr.(*ir.Tuple)
	if !ok || tpl.Len() != len(p.Fields) {
		return false
	}
	if !m.checkType(p.Type, expr) {
		return false
	}
	for i, field := range p.Fields {
		if !m.match(field, tpl.Field(i)) {
			return false
		}
	}
	return true
}

func (p *TuplePattern) String() string {
	return fmt.Sprintf("(%s)%s", joinPatterns(p.Fields), constraintString(p.Type))
}

// Alt matches the first of the alternatives matching an expression.
func Alt(alts ...Pattern) *AltPattern {
	return &AltPattern{Alts: alts}
}

func (p *AltPattern) matchNode(m *matcher, expr ir.Expr) bool {
	for _, alt := range p.Alts {
		if m.match(alt, expr) {
			return true
		}
	}
	return false
}

func (p *AltPattern) String() string {
	ss := make([]string, len(p.Alts))
	for i, alt := range p.Alts {
		ss[i] = alt.String()
	}
	return strings.Join(ss, "|")
}

func joinPatterns(ps []Pattern) string {
	ss := make([]string, len(ps))
	for i, p := range ps {
		ss[i] = fmt.Sprint(p)
	}
	return strings.Join(ss, ", ")
}

func constraintString(c *ir.Constraint) string {
	if c == nil {
		return ""
	}
	return ":" + c.Name
}

func opPatternString(kind ir.OpKind, discs []string, c *ir.Constraint) string {
	s := kind.String()
	if len(discs) > 0 {
		s += "[" + strings.Join(discs, ",") + "]"
	}
	return s + constraintString(c)
}
