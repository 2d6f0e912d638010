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
	"slices"
	"strings"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir/irkind"
)

type (
	// Type of a node in the graph.
	Type interface {
		node()
		Kind() irkind.Kind
		Equal(Type) bool
		String() string
	}

	// TensorType is the type of a multi-dimensional array.
	// A scalar is a tensor with a ranked shape without axes.
	TensorType struct {
		DType dtype.DataType
		Shape Shape
	}

	// TupleType is the type of a tuple.
	TupleType struct {
		Fields []Type
	}

	// CallableType is the type of a function.
	CallableType struct {
		Params []Type
		Result Type
	}

	anyType struct{}

	// InvalidType is the type of a node for which inference failed.
	// It is a regular result that can be inspected.
	InvalidType struct {
		Reason string
	}
)

var (
	_ Type = (*TensorType)(nil)
	_ Type = (*TupleType)(nil)
	_ Type = (*CallableType)(nil)
	_ Type = anyType{}
	_ Type = (*InvalidType)(nil)
)

// NewTensorType returns a tensor type with a ranked shape.
func NewTensorType(dt dtype.DataType, dims ...Dim) *TensorType {
	return &TensorType{DType: dt, Shape: NewShape(dims...)}
}

// ScalarType returns the type of a scalar.
func ScalarType(dt dtype.DataType) *TensorType {
	return &TensorType{DType: dt}
}

func (*TensorType) node() {}

// Kind of the type.
func (*TensorType) Kind() irkind.Kind { return irkind.Tensor }

// Equal returns true if other is a tensor type with the same data type and shape.
func (t *TensorType) Equal(other Type) bool {
	o, ok := other.(*TensorType)
	if !ok {
		return false
	}
	return t.DType == o.DType && t.Shape.Equal(o.Shape)
}

// String representation of the type.
func (t *TensorType) String() string {
	return t.DType.String() + t.Shape.String()
}

func (*TupleType) node() {}

// Kind of the type.
func (*TupleType) Kind() irkind.Kind { return irkind.Tuple }

// Equal returns true if other is a tuple type with equal fields.
func (t *TupleType) Equal(other Type) bool {
	o, ok := other.(*TupleType)
	if !ok {
		return false
	}
	return slices.EqualFunc(t.Fields, o.Fields, Type.Equal)
}

// String representation of the type.
func (t *TupleType) String() string {
	return "(" + typeList(t.Fields) + ")"
}

func (*CallableType) node() {}

// Kind of the type.
func (*CallableType) Kind() irkind.Kind { return irkind.Callable }

// Equal returns true if other is a callable type with the same signature.
func (t *CallableType) Equal(other Type) bool {
	o, ok := other.(*CallableType)
	if !ok {
		return false
	}
	if !slices.EqualFunc(t.Params, o.Params, Type.Equal) {
		return false
	}
	if t.Result == nil || o.Result == nil {
		return t.Result == o.Result
	}
	return t.Result.Equal(o.Result)
}

// String representation of the type.
func (t *CallableType) String() string {
	result := "nil"
	if t.Result != nil {
		result = t.Result.String()
	}
	return fmt.Sprintf("func(%s) %s", typeList(t.Params), result)
}

// AnyType returns the type of a variable without a declared type.
func AnyType() Type {
	return anyType{}
}

func (anyType) node() {}

func (anyType) Kind() irkind.Kind { return irkind.Any }

func (anyType) Equal(other Type) bool {
	_, ok := other.(anyType)
	return ok
}

func (anyType) String() string { return "any" }

// Invalidf returns an invalid type with a formatted reason.
func Invalidf(format string, a ...any) *InvalidType {
	return &InvalidType{Reason: fmt.Sprintf(format, a...)}
}

func (*InvalidType) node() {}

// Kind of the type.
func (*InvalidType) Kind() irkind.Kind { return irkind.Invalid }

// Equal returns true if other is an invalid type with the same reason.
func (t *InvalidType) Equal(other Type) bool {
	o, ok := other.(*InvalidType)
	if !ok {
		return false
	}
	return t.Reason == o.Reason
}

// String representation of the type.
func (t *InvalidType) String() string {
	return "invalid(" + t.Reason + ")"
}

// IsValid returns true if the type and all the types it contains are valid.
func IsValid(typ Type) bool {
	switch typT := typ.(type) {
	case nil:
		return false
	case *InvalidType:
		return false
	case *TupleType:
		for _, field := range typT.Fields {
			if !IsValid(field) {
				return false
			}
		}
	case *CallableType:
		for _, param := range typT.Params {
			if !IsValid(param) {
				return false
			}
		}
		return IsValid(typT.Result)
	}
	return true
}

func typeList(types []Type) string {
	ss := make([]string, len(types))
	for i, typ := range types {
		if typ == nil {
			ss[i] = "nil"
			continue
		}
		ss[i] = typ.String()
	}
	return strings.Join(ss, ", ")
}
