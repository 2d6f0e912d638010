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

// Package api compiles graphs built by importers into fully typed graphs.
//
// Each function goes through an initial type inference, the rewrite rules
// selected by the configuration until a fixpoint is reached, and a final
// type inference. Compilation fails if a node reachable from a function
// has no valid type.
package api

import (
	"context"

	"github.com/pkg/errors"
	"github.com/gx-org/nnc/api/options"
	"github.com/gx-org/nnc/build/infer"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/rewrite"
	"github.com/gx-org/nnc/golang/backend/kernels"
	"github.com/gx-org/nnc/interp/evaluator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"goa.design/clue/log"
)

const tracerName = "github.com/gx-org/nnc/api"

type (
	// Compiler compiles functions given a configuration.
	Compiler struct {
		cfg    *options.Config
		rules  []rewrite.Rule
		eval   *evaluator.Evaluator
		tracer trace.Tracer
	}

	// Module is the result of a compilation.
	// Types and Stats are indexed like Functions.
	Module struct {
		// Functions are the compiled functions.
		Functions []*ir.Function
		// Types are the types of the nodes of each compiled function.
		Types []*infer.Result
		// Stats report the rules applied to each function.
		Stats []*rewrite.Stats
	}
)

// NewCompiler returns a new compiler given a list of options.
func NewCompiler(opts ...options.Option) (*Compiler, error) {
	cfg := options.New(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	backend := cfg.Backend
	if backend == nil {
		backend = kernels.New()
	}
	return &Compiler{
		cfg:    cfg,
		rules:  rules,
		eval:   evaluator.New(backend),
		tracer: otel.Tracer(tracerName),
	}, nil
}

// Config returns the configuration of the compiler.
func (c *Compiler) Config() *options.Config {
	return c.cfg
}

// Compile a list of functions.
// No module is returned if one of the functions fails to compile.
func (c *Compiler) Compile(ctx context.Context, fns ...*ir.Function) (*Module, error) {
	if c.cfg.Debug {
		ctx = log.Context(ctx, log.WithDebug())
	}
	mod := &Module{}
	for _, fn := range fns {
		if fn == nil {
			return nil, errors.Errorf("cannot compile a nil function")
		}
		compiled, types, stats, err := c.compileFunction(ctx, fn)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot compile function %s", fn.Name())
		}
		mod.Functions = append(mod.Functions, compiled)
		mod.Types = append(mod.Types, types)
		mod.Stats = append(mod.Stats, stats)
	}
	return mod, nil
}

func (c *Compiler) compileFunction(ctx context.Context, fn *ir.Function) (_ *ir.Function, _ *infer.Result, _ *rewrite.Stats, err error) {
	ctx, span := c.tracer.Start(ctx, "nnc.compile",
		trace.WithAttributes(attribute.String("nnc.function", fn.Name())),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "compilation failed")
		}
		span.End()
	}()
	initial, err := c.infer(ctx, "nnc.infer.initial", fn)
	if err != nil {
		return nil, nil, nil, err
	}
	invalid := 0
	for range initial.Invalid() {
		invalid++
	}
	log.Debug(ctx,
		log.KV{K: "msg", V: "initial inference"},
		log.KV{K: "function", V: fn.Name()},
		log.KV{K: "nodes", V: initial.Len()},
		log.KV{K: "invalid", V: invalid},
	)
	rewritten, stats, err := c.rewrite(ctx, fn)
	if err != nil {
		return nil, nil, nil, err
	}
	final, err := c.infer(ctx, "nnc.infer.final", rewritten)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := final.Check(); err != nil {
		return nil, nil, nil, err
	}
	log.Debug(ctx,
		log.KV{K: "msg", V: "function compiled"},
		log.KV{K: "function", V: fn.Name()},
		log.KV{K: "iterations", V: stats.Iterations},
		log.KV{K: "applied", V: stats.Total()},
		log.KV{K: "fixpoint", V: stats.Fixpoint},
	)
	return rewritten, final, stats, nil
}

func (c *Compiler) infer(ctx context.Context, name string, fn *ir.Function) (*infer.Result, error) {
	_, span := c.tracer.Start(ctx, name)
	defer span.End()
	res, err := infer.New(infer.WithEvaluator(c.eval)).Function(fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "type inference failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("nnc.nodes", res.Len()))
	return res, nil
}

func (c *Compiler) rewrite(ctx context.Context, fn *ir.Function) (*ir.Function, *rewrite.Stats, error) {
	ctx, span := c.tracer.Start(ctx, "nnc.rewrite")
	defer span.End()
	rewritten, stats, err := rewrite.Run(ctx, fn, c.rules,
		rewrite.WithMaxIterations(c.cfg.MaxIterations),
		rewrite.WithEvaluator(c.eval),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rewrite failed")
		return nil, nil, err
	}
	span.SetAttributes(
		attribute.Int("nnc.iterations", stats.Iterations),
		attribute.Int("nnc.applied", stats.Total()),
		attribute.Bool("nnc.fixpoint", stats.Fixpoint),
	)
	if !stats.Fixpoint {
		log.Print(ctx,
			log.KV{K: "msg", V: "rewrite stopped before reaching a fixpoint"},
			log.KV{K: "function", V: fn.Name()},
			log.KV{K: "iterations", V: stats.Iterations},
		)
	}
	return rewritten, stats, nil
}

// Lookup returns a compiled function and its types given its name.
func (m *Module) Lookup(name string) (*ir.Function, *infer.Result, bool) {
	for i, fn := range m.Functions {
		if fn.Name() == name {
			return fn, m.Types[i], true
		}
	}
	return nil, nil, false
}
