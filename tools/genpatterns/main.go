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

// Utility genpatterns generates the patterns matching the operators of the IR.
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/pkg/errors"
	"github.com/gx-org/nnc/build/ir/ops"
	"github.com/gx-org/nnc/tools/nncflag"
)

var (
	output = flag.String("output", "", "file in which the source is written. The source is written on the standard output if empty")
	groups = nncflag.StringList("groups", "operator groups for which patterns are generated. All groups if empty")
)

func exit(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func main() {
	flag.Parse()
	infos, err := selectOps(*groups)
	if err != nil {
		exit("%v", err)
	}
	src, err := Generate(infos)
	if err != nil {
		exit("%+v", err)
	}
	if *output == "" {
		os.Stdout.Write(src)
		return
	}
	if err := os.WriteFile(*output, src, 0644); err != nil {
		exit("cannot write %s: %v", *output, err)
	}
}

func selectOps(groups []string) ([]*ops.Info, error) {
	known := make(map[string]bool)
	var infos []*ops.Info
	for info := range ops.All() {
		known[info.Group] = true
		if len(groups) > 0 && !slices.Contains(groups, info.Group) {
			continue
		}
		infos = append(infos, info)
	}
	for _, group := range groups {
		if !known[group] {
			return nil, errors.Errorf("unknown operator group %q", group)
		}
	}
	return infos, nil
}
