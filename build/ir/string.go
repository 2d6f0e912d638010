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
	"strings"

	"github.com/gx-org/nnc/base/uname"
)

type printer struct {
	w     strings.Builder
	names *uname.Unique
	ids   map[Expr]string
}

// String returns a textual dump of the graph rooted at the given nodes.
// Calls and tuples are named %0, %1, ... in the order in which they are computed.
// Names are stable for a given graph.
func String(roots ...Expr) string {
	p := &printer{
		names: uname.New(),
		ids:   make(map[Expr]string),
	}
	for _, root := range roots {
		p.print(root)
	}
	return strings.TrimSuffix(p.w.String(), "\n")
}

func (p *printer) ref(x Expr) string {
	if id, ok := p.ids[x]; ok {
		return id
	}
	switch xT := x.(type) {
	case *Var:
		id := p.names.Name(xT.Name())
		p.ids[x] = id
		return id
	case *Const:
		return xT.String()
	}
	return "?"
}

func (p *printer) refs(xs []Expr) string {
	ss := make([]string, len(xs))
	for i, x := range xs {
		ss[i] = p.ref(x)
	}
	return strings.Join(ss, ", ")
}

func (p *printer) body(root Expr, indent string) {
	for x := range PostOrder(root) {
		if _, done := p.ids[x]; done {
			continue
		}
		switch xT := x.(type) {
		case *Call:
			id := p.names.Next()
			fmt.Fprintf(&p.w, "%s%s = %s(%s)\n", indent, id, xT.Op().String(), p.refs(xT.args))
			p.ids[x] = id
		case *Tuple:
			id := p.names.Next()
			fmt.Fprintf(&p.w, "%s%s = (%s)\n", indent, id, p.refs(xT.fields))
			p.ids[x] = id
		case *Function:
			p.ids[x] = p.names.Name(xT.Name())
		}
	}
}

func (p *printer) print(root Expr) {
	fn, ok := root.(*Function)
	if !ok {
		p.body(root, "")
		fmt.Fprintf(&p.w, "return %s\n", p.ref(root))
		return
	}
	params := make([]string, len(fn.params))
	for i, param := range fn.params {
		typ := ""
		if param.Type().Kind() != AnyType().Kind() {
			typ = " " + param.Type().String()
		}
		params[i] = p.ref(param) + typ
	}
	fmt.Fprintf(&p.w, "func %s(%s) {\n", fn.Name(), strings.Join(params, ", "))
	p.body(fn.Body(), "\t")
	fmt.Fprintf(&p.w, "\treturn %s\n}\n", p.ref(fn.Body()))
}
