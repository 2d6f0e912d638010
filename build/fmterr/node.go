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

package fmterr

import (
	"fmt"
	"runtime/debug"

	"github.com/gx-org/nnc/build/ir"
)

// NodeError is an error attached to a node of a graph.
type NodeError struct {
	// Node for which the error has been reported.
	Node ir.Expr
	// Kind of the node: the operator kind for calls, the Go type otherwise.
	Kind string
	// Reason of the error.
	Reason string
}

// NodeKind returns the kind of a node as reported in errors.
func NodeKind(node ir.Expr) string {
	switch nodeT := node.(type) {
	case *ir.Call:
		return nodeT.Op().Kind().String()
	case *ir.Var:
		return "Var"
	case *ir.Const:
		return "Const"
	case *ir.Tuple:
		return "Tuple"
	case *ir.Function:
		return "Function"
	}
	return fmt.Sprintf("%T", node)
}

// Errorf returns an error attached to a node.
func Errorf(node ir.Expr, format string, a ...any) *NodeError {
	return &NodeError{
		Node:   node,
		Kind:   NodeKind(node),
		Reason: fmt.Sprintf(format, a...),
	}
}

func (err *NodeError) Error() (s string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s = fmt.Sprintf("recovered from panic when building error message: %v:\n%s", r, string(debug.Stack()))
	}()
	return fmt.Sprintf("%s node %s: %s", err.Kind, err.Node.String(), err.Reason)
}
