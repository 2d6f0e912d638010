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

package tmpl_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/gx-org/nnc/base/tmpl"
)

func TestIterate(t *testing.T) {
	type field struct {
		Name  string
		Types []string
	}
	fields := []field{
		{Name: "A", Types: []string{"int", "bool"}},
		{Name: "B"},
	}
	src, err := tmpl.Iterate(slices.Values(fields), tmpl.Must("field", `{{lower .Name}}({{join .Types ", "}});`))
	if err != nil {
		t.Fatal(err)
	}
	if want := "a(int, bool);b();"; src != want {
		t.Errorf("got %q but want %q", src, want)
	}
	if _, err := tmpl.Iterate(slices.Values(fields), tmpl.Must("field", `{{.Unknown}}`)); err == nil {
		t.Errorf("expected an error for an unknown field")
	}
}

func TestExecute(t *testing.T) {
	got, err := tmpl.Execute(tmpl.Must("name", `package {{.}}`), "pattern")
	if err != nil {
		t.Fatal(err)
	}
	if got != "package pattern" {
		t.Errorf("got %q but want %q", got, "package pattern")
	}
}

func TestFormatGo(t *testing.T) {
	got, err := tmpl.FormatGo("package p\n\nfunc  f( )  {\n}\n")
	if err != nil {
		t.Fatal(err)
	}
	if want := "package p\n\nfunc f() {\n}\n"; string(got) != want {
		t.Errorf("got %q but want %q", got, want)
	}
	_, err = tmpl.FormatGo("package p\nfunc {")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "   2 func {") {
		t.Errorf("error %q does not contain the numbered source", err.Error())
	}
}
