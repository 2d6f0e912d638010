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

package fmterr_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/nnc/build/fmterr"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/irb"
)

func TestNodeError(t *testing.T) {
	b := irb.New()
	x := b.Var("x", dtype.Int32)
	call := b.Range(x, irb.Scalar[int32](10), irb.Scalar[int32](2))
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}
	err := fmterr.Errorf(call, "Range begin, end, step should be constant")
	if err.Kind != "Range" {
		t.Errorf("incorrect kind: got %q but want %q", err.Kind, "Range")
	}
	want := "Range node Range(x, int32(10), int32(2)): Range begin, end, step should be constant"
	if got := err.Error(); got != want {
		t.Errorf("incorrect error message:\ngot:  %s\nwant: %s", got, want)
	}
	if got := fmterr.NodeKind(x); got != "Var" {
		t.Errorf("incorrect kind for a variable: got %q", got)
	}
}

func TestInternal(t *testing.T) {
	err := fmterr.Internalf("missing rule for %s", ir.RangeKind)
	if !fmterr.IsInternal(err) {
		t.Errorf("error %v not marked as internal", err)
	}
	wrapped := errors.Wrap(err, "inference")
	if !fmterr.IsInternal(wrapped) {
		t.Errorf("wrapped error %v not marked as internal", wrapped)
	}
	if fmterr.IsInternal(errors.New("user error")) {
		t.Errorf("user error marked as internal")
	}
	if !strings.Contains(err.Error(), "missing rule for Range") {
		t.Errorf("internal error %q does not contain its cause", err.Error())
	}
	if fmterr.Internal(nil) != nil {
		t.Errorf("Internal(nil) should be nil")
	}
}

func TestErrors(t *testing.T) {
	errs := &fmterr.Errors{}
	if !errs.Empty() || errs.ToError() != nil {
		t.Fatalf("new set of errors should be empty")
	}
	errs.Append(errors.New("first"))
	errs.Push(fmterr.PrefixWith("function %s: ", "f"))
	errs.Append(errors.New("second"))
	errs.Append(errors.New("third"))
	if errs.Empty() {
		t.Errorf("errors in a context should make the set non-empty")
	}
	errs.Pop()
	got := []string{}
	for _, err := range errs.Errors() {
		got = append(got, err.Error())
	}
	want := []string{"first", "function f: second", "function f: third"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("incorrect errors:\ngot:  %v\nwant: %v", got, want)
	}
	if errs.Append(nil); len(errs.Errors()) != 3 {
		t.Errorf("appending nil should not add an error")
	}
}
