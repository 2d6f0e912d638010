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

// Package irkind defines kinds for the nnc intermediate representation (IR)
// and classifies the element data types of tensors.
package irkind

import "github.com/gx-org/backend/dtype"

// Kind of a type.
type Kind uint

// Kind of types supported by the IR.
const (
	// Invalid is the kind of a type for which inference failed.
	Invalid Kind = iota
	// Any is the kind of a type that has not been declared.
	Any
	// Tensor is the kind of a multi-dimensional array (including scalars).
	Tensor
	// Tuple is the kind of an aggregation of values.
	Tuple
	// Callable is the kind of a function.
	Callable

	// Max value for a Kind constant.
	Max
)

// String returns a string representation of a kind.
func (k Kind) String() string {
	switch k {
	case Any:
		return "any"
	case Tensor:
		return "tensor"
	case Tuple:
		return "tuple"
	case Callable:
		return "callable"
	}
	return "invalid"
}

// DTypeFromString returns a data type given its name.
// It returns dtype.Invalid if the name is unknown.
func DTypeFromString(ident string) dtype.DataType {
	switch ident {
	case "bool":
		return dtype.Bool
	case "bfloat16":
		return dtype.Bfloat16
	case "float32":
		return dtype.Float32
	case "float64":
		return dtype.Float64
	case "int32":
		return dtype.Int32
	case "int64":
		return dtype.Int64
	case "uint32":
		return dtype.Uint32
	case "uint64":
		return dtype.Uint64
	default:
		return dtype.Invalid
	}
}

// IsIntegral returns true if the data type is an integer.
func IsIntegral(dt dtype.DataType) bool {
	switch dt {
	case dtype.Int32, dtype.Int64, dtype.Uint32, dtype.Uint64:
		return true
	}
	return false
}

// IsSigned returns true if the data type is a signed integer or a float.
func IsSigned(dt dtype.DataType) bool {
	switch dt {
	case dtype.Int32, dtype.Int64:
		return true
	}
	return IsFloat(dt)
}

// IsFloat returns true if the data type is a float.
func IsFloat(dt dtype.DataType) bool {
	switch dt {
	case dtype.Bfloat16, dtype.Float32, dtype.Float64:
		return true
	}
	return false
}

// IsNumeric returns true if arithmetic is defined on the data type.
func IsNumeric(dt dtype.DataType) bool {
	return IsIntegral(dt) || IsFloat(dt)
}
