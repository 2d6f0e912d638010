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
	"fmt"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/ir"
)

func tensorConstraint(name string, check func(*ir.TensorType) bool) *ir.Constraint {
	return &ir.Constraint{Name: name, Check: func(typ ir.Type) bool {
		tensor, ok := typ.(*ir.TensorType)
		return ok && check(tensor)
	}}
}

// HasDType constrains a node to be a tensor of a given data type.
func HasDType(dt dtype.DataType) *ir.Constraint {
	return tensorConstraint(dt.String(), func(t *ir.TensorType) bool {
		return t.DType == dt
	})
}

// HasRank constrains a node to be a ranked tensor with a given number of axes.
func HasRank(rank int) *ir.Constraint {
	return tensorConstraint(fmt.Sprintf("rank%d", rank), func(t *ir.TensorType) bool {
		return t.Shape.IsRanked() && t.Shape.Rank() == rank
	})
}

// HasFixedShape constrains a node to be a tensor without dynamic axes.
var HasFixedShape = tensorConstraint("fixed", func(t *ir.TensorType) bool {
	return t.Shape.IsFixed()
})

