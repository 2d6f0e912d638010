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
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/ir/ops"
)

// convDim returns the length of a spatial output axis of a convolution.
func convDim(in, kernel ir.Dim, padBegin, padEnd, stride, dilation int) ir.Dim {
	if in.IsDynamic() || kernel.IsDynamic() || stride <= 0 {
		return ir.DynamicDim
	}
	return ir.Dim((int(in)+padBegin+padEnd-dilation*(int(kernel)-1)-1)/stride + 1)
}

// inferConv2D infers the type of a 2D convolution on NCHW tensors.
// Weights are laid out as [outChannels, inChannels/groups, kernelH, kernelW].
// Padding lists the pads as [top, left, bottom, right].
func inferConv2D(ctx *Context) ir.Type {
	x, invalid := ctx.Tensor(ops.Conv2DInput)
	if invalid != nil {
		return invalid
	}
	w, invalid := ctx.Tensor(ops.Conv2DWeights)
	if invalid != nil {
		return invalid
	}
	if x.DType != w.DType {
		return ir.Invalidf("data type mismatch: %s and %s", x.DType, w.DType)
	}
	if !x.Shape.IsRanked() || !w.Shape.IsRanked() {
		return &ir.TensorType{DType: x.DType, Shape: ir.DynamicShape(4)}
	}
	if x.Shape.Rank() != 4 || w.Shape.Rank() != 4 {
		return ir.Invalidf("Conv2D requires an input and weights of rank 4 but got %s and %s", x, w)
	}
	n, outChannels := x.Shape.Dim(0), w.Shape.Dim(0)
	stride, okStride, invalid := ctx.ArgumentInts(ops.Conv2DStride)
	if invalid != nil {
		return invalid
	}
	padding, okPadding, invalid := ctx.ArgumentInts(ops.Conv2DPadding)
	if invalid != nil {
		return invalid
	}
	dilation, okDilation, invalid := ctx.ArgumentInts(ops.Conv2DDilation)
	if invalid != nil {
		return invalid
	}
	if !okStride || !okPadding || !okDilation {
		return ir.NewTensorType(x.DType, n, outChannels, ir.DynamicDim, ir.DynamicDim)
	}
	if len(stride) != 2 || len(padding) != 4 || len(dilation) != 2 {
		return ir.Invalidf("Conv2D requires 2 strides, 4 pads, and 2 dilations but got %v, %v, and %v", stride, padding, dilation)
	}
	h := convDim(x.Shape.Dim(2), w.Shape.Dim(2), padding[0], padding[2], stride[0], dilation[0])
	wd := convDim(x.Shape.Dim(3), w.Shape.Dim(3), padding[1], padding[3], stride[1], dilation[1])
	if (!h.IsDynamic() && h <= 0) || (!wd.IsDynamic() && wd <= 0) {
		return ir.Invalidf("Conv2D output of %s with kernel %s is empty", x, w)
	}
	return ir.NewTensorType(x.DType, n, outChannels, h, wd)
}
