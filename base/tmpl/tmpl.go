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

// Package tmpl provides helpers to generate Go source code with templates.
package tmpl

import (
	"fmt"
	"go/format"
	"iter"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// Funcs are the functions available to the templates parsed by Must.
var Funcs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
}

// Must parses a template with Funcs and panics if the template is invalid.
func Must(name, src string) *template.Template {
	return template.Must(template.New(name).Funcs(Funcs).Parse(src))
}

// Execute runs a template and returns its output.
func Execute(tmpl *template.Template, data any) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Errorf("cannot execute template %s: %v", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// Iterate runs a template over a sequence of objects.
// The result is the concatenation of all the outputs.
func Iterate[T any](objs iter.Seq[T], tmpl *template.Template) (string, error) {
	var buf strings.Builder
	for obj := range objs {
		if err := tmpl.Execute(&buf, obj); err != nil {
			return "", errors.Errorf("cannot generate code for %#v: %v", obj, err)
		}
	}
	return buf.String(), nil
}

// FormatGo formats Go source code.
// The error includes the numbered source if the code cannot be parsed.
func FormatGo(src string) ([]byte, error) {
	out, err := format.Source([]byte(src))
	if err == nil {
		return out, nil
	}
	var numbered strings.Builder
	for i, line := range strings.Split(src, "\n") {
		fmt.Fprintf(&numbered, "%4d %s\n", i+1, line)
	}
	return nil, errors.Errorf("cannot format generated source: %v\n%s", err, numbered.String())
}
