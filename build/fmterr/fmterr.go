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

// Package fmterr provides helpers to attach errors to nodes of a graph,
// mark compiler defects, and accumulate errors while compiling.
package fmterr

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// PrefixWith returns a function to prefix errors with a formatted string.
func PrefixWith(s string, o ...any) func(err error) error {
	return func(err error) error {
		return fmt.Errorf("%s%w", fmt.Sprintf(s, o...), err)
	}
}

type internalError struct {
	err error
}

// Internal marks an error as a defect of the compiler.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return internalError{err: errors.WithStack(err)}
}

// Internalf returns a formatted compiler defect.
func Internalf(format string, a ...any) error {
	return internalError{err: errors.Errorf(format, a...)}
}

// IsInternal returns true if an error in the chain is a compiler defect.
func IsInternal(err error) bool {
	var internal internalError
	return errors.As(err, &internal)
}

func (err internalError) Error() string {
	return "nnc internal error. This is a bug in nnc. Please report it. Error: " + err.err.Error()
}

func (err internalError) Unwrap() error {
	return err.err
}

func (err internalError) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

func formatVerbose(err error, s fmt.State) {
	io.WriteString(s, err.Error())
	var withSt interface {
		StackTrace() errors.StackTrace
	}
	if !errors.As(err, &withSt) {
		return
	}
	fmt.Fprintf(s, "\nError generated at:%+v\n", withSt.StackTrace())
}

func format(err error, s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			formatVerbose(err, s)
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, err.Error())
	case 'q':
		fmt.Fprintf(s, "%q", err.Error())
	}
}
