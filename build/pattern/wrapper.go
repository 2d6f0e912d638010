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
	"github.com/pkg/errors"
	"github.com/gx-org/nnc/build/ir"
)

var (
	// ErrNotBound is returned when capturing from a wrapper without a match result.
	ErrNotBound = errors.New("wrapper not bound to a match result")
	// ErrNotCaptured is returned when a pattern node has no binding in a match result.
	ErrNotCaptured = errors.New("pattern not captured")
	// ErrWrongKind is returned when a captured node does not have the requested kind.
	ErrWrongKind = errors.New("captured node of the wrong kind")
)

// Wrapper gives access to the nodes captured by a match.
// Rules hold a wrapper and bind it to the result of a match before
// reading the captured nodes.
type Wrapper struct {
	res *MatchResult
}

// Bind the wrapper to a match result.
// Binding to nil unbinds the wrapper.
func (w *Wrapper) Bind(res *MatchResult) {
	w.res = res
}

// Result returns the match result the wrapper is bound to.
func (w *Wrapper) Result() (*MatchResult, error) {
	if w == nil || w.res == nil {
		return nil, ErrNotBound
	}
	return w.res, nil
}

// Capture returns the node bound to a pattern node as a T.
func Capture[T ir.Expr](w *Wrapper, p Pattern) (T, error) {
	var zero T
	res, err := w.Result()
	if err != nil {
		return zero, err
	}
	expr, ok := res.Get(p)
	if !ok {
		return zero, errors.Wrapf(ErrNotCaptured, "pattern %s", p)
	}
	exprT, ok := expr.(T)
	if !ok {
		return zero, errors.Wrapf(ErrWrongKind, "pattern %s captured %T but want %T", p, expr, zero)
	}
	return exprT, nil
}

// CaptureOp returns the operator of the call bound to a pattern node.
func CaptureOp[T ir.Op](w *Wrapper, p Pattern) (T, error) {
	var zero T
	call, err := Capture[*ir.Call](w, p)
	if err != nil {
		return zero, err
	}
	op, ok := call.Op().(T)
	if !ok {
		return zero, errors.Wrapf(ErrWrongKind, "pattern %s captured operator %T but want %T", p, call.Op(), zero)
	}
	return op, nil
}
