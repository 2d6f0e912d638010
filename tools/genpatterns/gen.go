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

package main

import (
	"go/token"
	"go/types"
	"slices"
	"strings"

	"github.com/gx-org/nnc/base/tmpl"
	"github.com/gx-org/nnc/build/ir/ops"
)

const license = `// Copyright 2025 Google LLC
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
`

const fileSource = `{{.License}}
// Code generated by genpatterns. DO NOT EDIT.

package pattern

import (
{{- if .UsesDType}}
	"github.com/gx-org/backend/dtype"
{{- end}}
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/ops"
)
{{.Ops}}
// ForKind returns a pattern matching any operator of a given kind.
// Returns nil if the kind is unknown.
func ForKind(kind ir.OpKind) OpPattern {
	switch kind {
{{- range .Infos}}
	case ir.{{.Name}}Kind:
		return Is{{.Name}}()
{{- end}}
	}
	return nil
}
`

const opSource = `
// {{.Name}}Pattern matches calls to {{.Name}} operators.
type {{.Name}}Pattern struct {
	// Cond is an optional predicate over the operator.
	Cond func(ops.{{.Name}}) bool
{{- range .Discriminators}}
	// {{.Name}} optionally constrains the {{.Name}} field of the operator.
	{{.Name}} *{{.GoType}}
{{- end}}
	// Type optionally constrains the type of the call.
	Type *ir.Constraint
}

var _ OpPattern = (*{{.Name}}Pattern)(nil)

// Is{{.Name}} matches any {{.Name}} call.
func Is{{.Name}}() *{{.Name}}Pattern {
	return &{{.Name}}Pattern{}
}

// Is{{.Name}}With matches {{.Name}} calls with an operator for which cond returns true.
func Is{{.Name}}With(cond func(ops.{{.Name}}) bool) *{{.Name}}Pattern {
	return &{{.Name}}Pattern{Cond: cond}
}

// Is{{.Name}}Instance matches {{.Name}} calls with an operator equal to op.
func Is{{.Name}}Instance(op ops.{{.Name}}) *{{.Name}}Pattern {
	return Is{{.Name}}With(func(other ops.{{.Name}}) bool { return other == op })
}
{{range .Discriminators}}
// Is{{$.Name}}{{.Name}} matches {{$.Name}} calls with an operator {{.Name}} field equal to v.
func Is{{$.Name}}{{.Name}}(v {{.GoType}}) *{{$.Name}}Pattern {
	return &{{$.Name}}Pattern{ {{- .Name}}: &v}
}
{{end}}
// Is{{.Name}}Call matches {{.Name}} calls with arguments matching the given patterns.
// A nil target matches any {{.Name}} operator.
func Is{{.Name}}Call(target *{{.Name}}Pattern, {{join .ParamNames ", "}} Pattern) *CallPattern {
	if target == nil {
		target = Is{{.Name}}()
	}
	return &CallPattern{Target: target, Args: []Pattern{ {{- join .ParamNames ", "}}}}
}

// OpKind returns the kind of the operators matched by the pattern.
func (*{{.Name}}Pattern) OpKind() ir.OpKind { return ir.{{.Name}}Kind }

// MatchOp returns true if an operator is matched by the pattern.
func (p *{{.Name}}Pattern) MatchOp(op ir.Op) bool {
	opT, ok := op.(ops.{{.Name}})
	if !ok {
		return false
	}
{{- range .Discriminators}}
	if p.{{.Name}} != nil && opT.{{.Name}} != *p.{{.Name}} {
		return false
	}
{{- end}}
	return p.Cond == nil || p.Cond(opT)
}

func (p *{{.Name}}Pattern) constraint() *ir.Constraint { return p.Type }

func (p *{{.Name}}Pattern) matchNode(m *matcher, expr ir.Expr) bool { return m.matchOp(p, expr) }

func (p *{{.Name}}Pattern) String() string {
	var discs []string
{{- range .Discriminators}}
	if p.{{.Name}} != nil {
		discs = append(discs, p.{{.Name}}.String())
	}
{{- end}}
	return opPatternString(ir.{{.Name}}Kind, discs, p.Type)
}
`

var (
	fileTmpl = tmpl.Must("file", fileSource)
	opTmpl   = tmpl.Must("op", opSource)
)

type opData struct {
	*ops.Info
	// ParamNames are the names of the parameters of the operator.
	ParamNames []string
}

func newOpData(info *ops.Info) opData {
	names := make([]string, info.Params.Len())
	for i, param := range info.Params.All() {
		names[i] = paramName(param.Name)
	}
	return opData{Info: info, ParamNames: names}
}

// paramName returns the name of the Go parameter of an operator parameter.
// Names shadowing a predeclared identifier, a keyword, or the target
// parameter are suffixed with Value.
func paramName(name string) string {
	if name == "target" || token.IsKeyword(name) || types.Universe.Lookup(name) != nil {
		return name + "Value"
	}
	return name
}

// Generate returns the formatted Go source of the patterns matching operators.
func Generate(infos []*ops.Info) ([]byte, error) {
	data := make([]opData, len(infos))
	usesDType := false
	for i, info := range infos {
		data[i] = newOpData(info)
		for _, disc := range info.Discriminators {
			usesDType = usesDType || strings.HasPrefix(disc.GoType, "dtype.")
		}
	}
	opsSrc, err := tmpl.Iterate(slices.Values(data), opTmpl)
	if err != nil {
		return nil, err
	}
	src, err := tmpl.Execute(fileTmpl, struct {
		License   string
		UsesDType bool
		Ops       string
		Infos     []*ops.Info
	}{
		License:   license,
		UsesDType: usesDType,
		Ops:       opsSrc,
		Infos:     infos,
	})
	if err != nil {
		return nil, err
	}
	return tmpl.FormatGo(src)
}
