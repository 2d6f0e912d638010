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

package infer

import (
	"github.com/pkg/errors"
	"github.com/gx-org/nnc/build/fmterr"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/interp/evaluator"
)

// Context gives inference rules access to the arguments of a call.
type Context struct {
	pass *pass
	call *ir.Call
}

type rule func(ctx *Context) ir.Type

// Call returns the call being inferred.
func (ctx *Context) Call() *ir.Call {
	return ctx.call
}

// ArgumentType returns the type of the argument bound to a parameter.
func (ctx *Context) ArgumentType(param *ir.ParameterInfo) ir.Type {
	arg := ctx.call.Arg(param)
	if arg == nil {
		return nil
	}
	return ctx.pass.res.types[arg]
}

// CheckArgumentType returns the type of an argument as a specific type.
// An invalid type is returned if the argument type is not a T.
func CheckArgumentType[T ir.Type](ctx *Context, param *ir.ParameterInfo) (T, *ir.InvalidType) {
	typ := ctx.ArgumentType(param)
	typT, ok := typ.(T)
	if !ok {
		var zero T
		return zero, ir.Invalidf("argument %s: got %s but want a %T", param.Name, typ, zero)
	}
	return typT, nil
}

// Tensor returns the type of a tensor argument.
func (ctx *Context) Tensor(param *ir.ParameterInfo) (*ir.TensorType, *ir.InvalidType) {
	return CheckArgumentType[*ir.TensorType](ctx, param)
}

// ArgumentConst returns the value of an argument if it is known at compile time.
// Arguments which are not constant nodes are folded when the inference engine
// has been configured with an evaluator.
func (ctx *Context) ArgumentConst(param *ir.ParameterInfo) (*ir.Const, bool) {
	arg := ctx.call.Arg(param)
	if c, ok := arg.(*ir.Const); ok {
		return c, true
	}
	if ctx.pass.eval == nil || arg == nil {
		return nil, false
	}
	c, err := ctx.pass.eval.Eval(arg)
	switch {
	case err == nil:
		return c, true
	case errors.Is(err, evaluator.ErrUnsupported):
		ctx.pass.err = fmterr.Internal(errors.Wrapf(err, "cannot fold argument %s of %s", param.Name, ctx.call.Op()))
	}
	return nil, false
}

// ArgumentInts returns the integer values of a constant argument.
func (ctx *Context) ArgumentInts(param *ir.ParameterInfo) ([]int, bool, *ir.InvalidType) {
	c, ok := ctx.ArgumentConst(param)
	if !ok {
		return nil, false, nil
	}
	vals, err := ir.IntValues(c)
	if err != nil {
		return nil, false, ir.Invalidf("argument %s: %v", param.Name, err)
	}
	ints := make([]int, len(vals))
	for i, v := range vals {
		ints[i] = int(v)
	}
	return ints, true, nil
}

// ArgumentInt returns the value of a constant integral scalar argument.
func (ctx *Context) ArgumentInt(param *ir.ParameterInfo) (int, bool, *ir.InvalidType) {
	c, ok := ctx.ArgumentConst(param)
	if !ok {
		return 0, false, nil
	}
	v, err := ir.IntScalar(c)
	if err != nil {
		return 0, false, ir.Invalidf("argument %s: %v", param.Name, err)
	}
	return int(v), true, nil
}

// ArgumentBool returns the value of a constant boolean scalar argument.
func (ctx *Context) ArgumentBool(param *ir.ParameterInfo) (bool, bool, *ir.InvalidType) {
	c, ok := ctx.ArgumentConst(param)
	if !ok {
		return false, false, nil
	}
	v, err := ir.BoolScalar(c)
	if err != nil {
		return false, false, ir.Invalidf("argument %s: %v", param.Name, err)
	}
	return v, true, nil
}
