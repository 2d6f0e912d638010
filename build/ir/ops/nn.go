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

package ops

import "github.com/gx-org/nnc/build/ir"

type (
	// Conv2D is a two dimensional convolution over NCHW tensors.
	// Weights are laid out as [outChannels, inChannels/groups, kernelH, kernelW].
	Conv2D struct{ Mode PadMode }

	// Relu computes max(x, 0) elementwise.
	Relu struct{}

	// Sigmoid computes 1/(1+exp(-x)) elementwise.
	Sigmoid struct{}

	// LeakyRelu computes x if x > 0, alpha*x otherwise.
	LeakyRelu struct{}
)

// Parameters of neural network operators.
var (
	Conv2DInput      = param(ir.Conv2DKind, 0, "input", ir.IsTensor)
	Conv2DWeights    = param(ir.Conv2DKind, 1, "weights", ir.IsTensor)
	Conv2DBias       = param(ir.Conv2DKind, 2, "bias", ir.IsTensor)
	Conv2DStride     = param(ir.Conv2DKind, 3, "stride", ir.IsIntegral)
	Conv2DPadding    = param(ir.Conv2DKind, 4, "padding", ir.IsIntegral)
	Conv2DDilation   = param(ir.Conv2DKind, 5, "dilation", ir.IsIntegral)
	Conv2DGroups     = param(ir.Conv2DKind, 6, "groups", ir.IsIntegralScalar)
	Conv2DFusedClamp = param(ir.Conv2DKind, 7, "fusedClamp", ir.IsTensor)

	ReluInput = param(ir.ReluKind, 0, "input", ir.IsTensor)

	SigmoidInput = param(ir.SigmoidKind, 0, "input", ir.IsTensor)

	LeakyReluInput = param(ir.LeakyReluKind, 0, "input", ir.IsTensor)
	LeakyReluAlpha = param(ir.LeakyReluKind, 1, "alpha", ir.IsFloat)
)

var (
	conv2DParams = ir.NewParams(
		Conv2DInput, Conv2DWeights, Conv2DBias,
		Conv2DStride, Conv2DPadding, Conv2DDilation,
		Conv2DGroups, Conv2DFusedClamp,
	)
	reluParams      = ir.NewParams(ReluInput)
	sigmoidParams   = ir.NewParams(SigmoidInput)
	leakyReluParams = ir.NewParams(LeakyReluInput, LeakyReluAlpha)
)

// Kind of the operator.
func (Conv2D) Kind() ir.OpKind { return ir.Conv2DKind }

// Name of the operator.
func (op Conv2D) Name() string { return discriminated(ir.Conv2DKind, op.Mode) }

// Params returns the formal parameters of the operator.
func (Conv2D) Params() ir.Params { return conv2DParams }

func (op Conv2D) String() string { return op.Name() }

// Kind of the operator.
func (Relu) Kind() ir.OpKind { return ir.ReluKind }

// Name of the operator.
func (Relu) Name() string { return ir.ReluKind.String() }

// Params returns the formal parameters of the operator.
func (Relu) Params() ir.Params { return reluParams }

func (op Relu) String() string { return op.Name() }

// Kind of the operator.
func (Sigmoid) Kind() ir.OpKind { return ir.SigmoidKind }

// Name of the operator.
func (Sigmoid) Name() string { return ir.SigmoidKind.String() }

// Params returns the formal parameters of the operator.
func (Sigmoid) Params() ir.Params { return sigmoidParams }

func (op Sigmoid) String() string { return op.Name() }

// Kind of the operator.
func (LeakyRelu) Kind() ir.OpKind { return ir.LeakyReluKind }

// Name of the operator.
func (LeakyRelu) Name() string { return ir.LeakyReluKind.String() }

// Params returns the formal parameters of the operator.
func (LeakyRelu) Params() ir.Params { return leakyReluParams }

func (op LeakyRelu) String() string { return op.Name() }
