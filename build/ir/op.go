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
	"fmt"
	"iter"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir/irkind"
)

type (
	// Op is an operator applied by a call.
	// Concrete operators are comparable values: two operators are the same
	// if they are equal with the == operator.
	Op interface {
		// Kind of the operator.
		Kind() OpKind
		// Name of the operator, including its discriminating fields.
		Name() string
		// Params returns the formal parameters of the operator.
		Params() Params
		// String representation of the operator.
		String() string
	}

	// ParameterInfo describes a formal parameter of an operator.
	ParameterInfo struct {
		// Kind of the operator declaring the parameter.
		Kind OpKind
		// Index of the parameter in the argument list.
		Index int
		// Name of the parameter.
		Name string
		// Constraint the type of the argument must satisfy. Can be nil.
		Constraint *Constraint
	}

	// Params is a read-only list of parameters.
	Params struct {
		list []*ParameterInfo
	}

	// Constraint is a named predicate over a type.
	Constraint struct {
		Name  string
		Check func(Type) bool
	}
)

// SameOp returns true if two operators are the same operator.
func SameOp(a, b Op) bool {
	return a == b
}

// NewParams returns a list of parameters.
func NewParams(list ...*ParameterInfo) Params {
	return Params{list: list}
}

// Len returns the number of parameters.
func (p Params) Len() int {
	return len(p.list)
}

// At returns the ith parameter.
func (p Params) At(i int) *ParameterInfo {
	return p.list[i]
}

// All returns an iterator over the parameters.
func (p Params) All() iter.Seq2[int, *ParameterInfo] {
	return func(yield func(int, *ParameterInfo) bool) {
		for i, param := range p.list {
			if !yield(i, param) {
				return
			}
		}
	}
}

// String representation of the parameter.
func (p *ParameterInfo) String() string {
	if p.Constraint == nil {
		return p.Name
	}
	return fmt.Sprintf("%s:%s", p.Name, p.Constraint.Name)
}

// Accept returns true if a type satisfies the constraint of the parameter.
func (p *ParameterInfo) Accept(typ Type) bool {
	if p.Constraint == nil {
		return true
	}
	return p.Constraint.Check(typ)
}

func tensorWith(typ Type, f func(*TensorType) bool) bool {
	tensor, ok := typ.(*TensorType)
	if !ok {
		return false
	}
	return f(tensor)
}

// Type constraints for operator parameters.
var (
	IsTensor = &Constraint{Name: "tensor", Check: func(typ Type) bool {
		_, ok := typ.(*TensorType)
		return ok
	}}
	IsTuple = &Constraint{Name: "tuple", Check: func(typ Type) bool {
		_, ok := typ.(*TupleType)
		return ok
	}}
	IsIntegral = &Constraint{Name: "integral", Check: func(typ Type) bool {
		return tensorWith(typ, func(t *TensorType) bool {
			return irkind.IsIntegral(t.DType)
		})
	}}
	IsFloat = &Constraint{Name: "float", Check: func(typ Type) bool {
		return tensorWith(typ, func(t *TensorType) bool {
			return irkind.IsFloat(t.DType)
		})
	}}
	IsIntegralScalar = &Constraint{Name: "integral scalar", Check: func(typ Type) bool {
		return tensorWith(typ, func(t *TensorType) bool {
			return irkind.IsIntegral(t.DType) && t.Shape.IsScalarCompatible()
		})
	}}
	IsBoolScalar = &Constraint{Name: "bool scalar", Check: func(typ Type) bool {
		return tensorWith(typ, func(t *TensorType) bool {
			return t.DType == dtype.Bool && t.Shape.IsScalarCompatible()
		})
	}}
)
