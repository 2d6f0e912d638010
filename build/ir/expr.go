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

// Package ir is the nnc intermediate representation (IR) of neural network graphs.
//
// Expressions form a directed acyclic graph: a node can be the operand of
// several parents and nodes are distinguished by their identity.
// All nodes are immutable once constructed. Transformations build new nodes.
package ir

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

type (
	// Expr is a node of the graph.
	Expr interface {
		node()
		// Operands returns the direct operands of the node.
		Operands() []Expr
		// String returns a short representation of the node.
		String() string
	}

	// Var is a named input of a graph.
	Var struct {
		name string
		typ  Type
	}

	// Const is a literal tensor embedded in the graph.
	Const struct {
		value *Tensor
	}

	// Call applies an operator to a list of arguments.
	Call struct {
		op   Op
		args []Expr
	}

	// Tuple aggregates expressions.
	Tuple struct {
		fields []Expr
	}

	// Function is a named list of parameters and a body.
	Function struct {
		name   string
		params []*Var
		body   Expr
	}
)

var (
	_ Expr = (*Var)(nil)
	_ Expr = (*Const)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Tuple)(nil)
	_ Expr = (*Function)(nil)
)

// NewVar returns a new variable.
// A nil type annotation declares a variable of any type.
func NewVar(name string, typ Type) *Var {
	if typ == nil {
		typ = AnyType()
	}
	return &Var{name: name, typ: typ}
}

func (*Var) node() {}

// Name of the variable.
func (v *Var) Name() string { return v.name }

// Type annotation of the variable.
func (v *Var) Type() Type { return v.typ }

// Operands of a variable. Always empty.
func (*Var) Operands() []Expr { return nil }

func (v *Var) String() string { return v.name }

// NewConst returns a constant node for a tensor.
func NewConst(value *Tensor) *Const {
	return &Const{value: value}
}

func (*Const) node() {}

// Value returns the tensor stored by the constant.
func (c *Const) Value() *Tensor { return c.value }

// Type of the constant.
func (c *Const) Type() *TensorType { return c.value.Type() }

// Operands of a constant. Always empty.
func (*Const) Operands() []Expr { return nil }

func (c *Const) String() string { return c.value.String() }

// ConstEqual returns true if two constants have the same data type, shape, and content.
func ConstEqual(a, b *Const) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.value.Equal(b.value)
}

// NewCall returns a call of an operator.
// It only checks that the number of arguments matches the operator parameters.
func NewCall(op Op, args ...Expr) (*Call, error) {
	if op == nil {
		return nil, errors.Errorf("cannot call a nil operator")
	}
	if want := op.Params().Len(); len(args) != want {
		return nil, errors.Errorf("%s expects %d argument(s) but got %d", op.Name(), want, len(args))
	}
	for i, arg := range args {
		if arg == nil {
			return nil, errors.Errorf("%s: argument %s is nil", op.Name(), op.Params().At(i).Name)
		}
	}
	return &Call{op: op, args: slices.Clone(args)}, nil
}

func (*Call) node() {}

// Op returns the operator applied by the call.
func (c *Call) Op() Op { return c.op }

// Args returns the arguments of the call.
func (c *Call) Args() []Expr { return slices.Clone(c.args) }

// NumArgs returns the number of arguments.
func (c *Call) NumArgs() int { return len(c.args) }

// ArgAt returns the ith argument.
func (c *Call) ArgAt(i int) Expr { return c.args[i] }

// Arg returns the argument bound to a parameter of the operator.
// It returns nil if the parameter does not belong to the operator of the call.
func (c *Call) Arg(param *ParameterInfo) Expr {
	if param.Kind != c.op.Kind() || param.Index < 0 || param.Index >= len(c.args) {
		return nil
	}
	return c.args[param.Index]
}

// Operands returns the arguments of the call.
func (c *Call) Operands() []Expr { return c.Args() }

func (c *Call) String() string {
	args := make([]string, len(c.args))
	for i, arg := range c.args {
		args[i] = shortString(arg)
	}
	return fmt.Sprintf("%s(%s)", c.op.String(), strings.Join(args, ", "))
}

// NewTuple returns a tuple of expressions.
func NewTuple(fields ...Expr) *Tuple {
	return &Tuple{fields: slices.Clone(fields)}
}

func (*Tuple) node() {}

// Fields returns the expressions of the tuple.
func (t *Tuple) Fields() []Expr { return slices.Clone(t.fields) }

// Len returns the number of fields.
func (t *Tuple) Len() int { return len(t.fields) }

// Field returns the ith field.
func (t *Tuple) Field(i int) Expr { return t.fields[i] }

// Operands returns the fields of the tuple.
func (t *Tuple) Operands() []Expr { return t.Fields() }

func (t *Tuple) String() string {
	fields := make([]string, len(t.fields))
	for i, field := range t.fields {
		fields[i] = shortString(field)
	}
	return "(" + strings.Join(fields, ", ") + ")"
}

// NewFunction returns a new function.
func NewFunction(name string, params []*Var, body Expr) *Function {
	return &Function{name: name, params: slices.Clone(params), body: body}
}

func (*Function) node() {}

// Name of the function.
func (f *Function) Name() string { return f.name }

// Params returns the parameters of the function.
func (f *Function) Params() []*Var { return slices.Clone(f.params) }

// Body of the function.
func (f *Function) Body() Expr { return f.body }

// Operands returns the parameters followed by the body.
func (f *Function) Operands() []Expr {
	ops := make([]Expr, 0, len(f.params)+1)
	for _, param := range f.params {
		ops = append(ops, param)
	}
	return append(ops, f.body)
}

func (f *Function) String() string {
	params := make([]string, len(f.params))
	for i, param := range f.params {
		params[i] = param.Name()
	}
	return fmt.Sprintf("func %s(%s)", f.name, strings.Join(params, ", "))
}

func shortString(x Expr) string {
	switch xT := x.(type) {
	case *Var:
		return xT.Name()
	case *Const:
		return xT.String()
	case *Call:
		return xT.Op().String() + "(...)"
	case *Tuple:
		return "(...)"
	case *Function:
		return xT.Name()
	}
	return fmt.Sprintf("%T", x)
}
