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

package uname_test

import (
	"testing"

	"github.com/gx-org/nnc/base/uname"
)

func TestName(t *testing.T) {
	unames := uname.New()
	unames.Register("b_1")
	tests := []struct {
		name, want string
	}{
		{name: "a", want: "a"},
		{name: "a", want: "a_1"},
		{name: "a", want: "a_2"},
		{name: "b", want: "b"},
		{name: "b", want: "b_2"},
		{name: "", want: "%0"},
	}
	for i, test := range tests {
		got := unames.Name(test.name)
		if got != test.want {
			t.Errorf("test %d: for name %s, got %s but want %s", i, test.name, got, test.want)
		}
	}
}

func TestNext(t *testing.T) {
	unames := uname.New()
	unames.Register("%1")
	var got []string
	for range 3 {
		got = append(got, unames.Next())
	}
	want := []string{"%0", "%2", "%3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %s but want %s", i, got[i], want[i])
		}
	}
}
