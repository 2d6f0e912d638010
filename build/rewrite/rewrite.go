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

// Package rewrite applies rules to a graph until no rule applies anymore.
//
// Each iteration infers the types of the graph, scans its nodes operands
// first, and tries the rules in order on every node. The first rule
// returning a replacement wins. A node is not tried if one of its
// descendants has been replaced in the same iteration. All the
// replacements of an iteration are then spliced in the graph at once.
package rewrite

import (
	"context"

	"github.com/pkg/errors"
	"github.com/gx-org/nnc/build/fmterr"
	"github.com/gx-org/nnc/build/infer"
	"github.com/gx-org/nnc/build/ir"
	"github.com/gx-org/nnc/build/pattern"
	"github.com/gx-org/nnc/interp/evaluator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"goa.design/clue/log"
)

// DefaultMaxIterations is the maximum number of iterations of a run
// if no other value is specified.
const DefaultMaxIterations = 64

// AppliedMetric is the name of the counter incremented every time a rule is applied.
const AppliedMetric = "nnc.rewrite.applied"

type (
	// Option configures a run.
	Option func(*runner)

	// Stats reports what happened during a run.
	Stats struct {
		// Iterations is the number of iterations in which at least one rule applied.
		Iterations int
		// Applied counts the number of times each rule has been applied.
		Applied map[string]int
		// Fixpoint is true if the run stopped because no rule applied anymore.
		// It is false if the run stopped because the maximum number of iterations has been reached.
		Fixpoint bool
	}

	runner struct {
		maxIterations int
		eval          *evaluator.Evaluator
		meter         metric.Meter
	}
)

// WithMaxIterations sets the maximum number of iterations of a run.
func WithMaxIterations(n int) Option {
	return func(r *runner) {
		r.maxIterations = n
	}
}

// WithEvaluator sets the evaluator used by type inference and by rules folding constants.
func WithEvaluator(eval *evaluator.Evaluator) Option {
	return func(r *runner) {
		r.eval = eval
	}
}

// WithMeter sets the meter used to record metrics.
// The global meter provider is used by default.
func WithMeter(meter metric.Meter) Option {
	return func(r *runner) {
		r.meter = meter
	}
}

// Total returns the total number of rules applied.
func (s *Stats) Total() int {
	total := 0
	for _, n := range s.Applied {
		total += n
	}
	return total
}

// Run applies a list of rules to a function until no rule applies
// or the maximum number of iterations has been reached.
// The function is returned as is if no rule applied.
func Run(ctx context.Context, fn *ir.Function, rules []Rule, opts ...Option) (*ir.Function, *Stats, error) {
	r := &runner{maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(r)
	}
	if r.meter == nil {
		r.meter = otel.Meter("github.com/gx-org/nnc/build/rewrite")
	}
	applied, err := r.meter.Int64Counter(AppliedMetric,
		metric.WithDescription("Number of rewrite rules applied."),
	)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot create counter %s", AppliedMetric)
	}
	stats := &Stats{Applied: make(map[string]int)}
	for stats.Iterations < r.maxIterations {
		types, err := infer.New(infer.WithEvaluator(r.eval)).Function(fn)
		if err != nil {
			return nil, stats, err
		}
		it := &iteration{
			rules:        rules,
			ctx:          &Context{ctx: ctx, types: types, eval: r.eval},
			replacements: make(ir.Replacements),
			dirty:        make(map[ir.Expr]bool),
		}
		if err := it.scan(fn); err != nil {
			return nil, stats, err
		}
		if len(it.replacements) == 0 {
			stats.Fixpoint = true
			return fn, stats, nil
		}
		stats.Iterations++
		for _, name := range it.applied {
			stats.Applied[name]++
			applied.Add(ctx, 1, metric.WithAttributes(attribute.String("rule", name)))
		}
		next, err := ir.RebuildFunction(fn, it.replacements)
		if err != nil {
			return nil, stats, fmterr.Internal(errors.Wrapf(err, "cannot splice replacements in %s", fn.Name()))
		}
		fn = next
	}
	log.Debug(ctx,
		log.KV{K: "msg", V: "rewrite stopped before reaching a fixpoint"},
		log.KV{K: "function", V: fn.Name()},
		log.KV{K: "iterations", V: stats.Iterations},
	)
	return fn, stats, nil
}

type iteration struct {
	rules        []Rule
	ctx          *Context
	replacements ir.Replacements
	dirty        map[ir.Expr]bool
	applied      []string
}

// isDirty returns true if one of the descendants of a node has been replaced.
// Operands are always scanned before the nodes using them.
func (it *iteration) isDirty(node ir.Expr) bool {
	for _, op := range node.Operands() {
		if it.dirty[op] {
			return true
		}
	}
	return false
}

func (it *iteration) scan(fn *ir.Function) error {
	for node := range ir.PostOrder(fn.Body()) {
		if it.isDirty(node) {
			it.dirty[node] = true
			continue
		}
		replaced, err := it.tryRules(node)
		if err != nil {
			return err
		}
		it.dirty[node] = replaced
	}
	return nil
}

func (it *iteration) tryRules(node ir.Expr) (bool, error) {
	for _, rule := range it.rules {
		res, ok := pattern.Match(rule.Pattern(), node, it.ctx.Types())
		if !ok {
			continue
		}
		repl, err := rule.Rewrite(it.ctx, res)
		if err != nil {
			return false, errors.Wrapf(err, "rule %s failed on %s", rule.Name(), fmterr.NodeKind(node))
		}
		if repl == nil || repl == node {
			continue
		}
		it.replacements[node] = repl
		it.applied = append(it.applied, rule.Name())
		log.Debug(it.ctx.ctx,
			log.KV{K: "msg", V: "rule applied"},
			log.KV{K: "rule", V: rule.Name()},
			log.KV{K: "node", V: fmterr.NodeKind(node)},
		)
		return true, nil
	}
	return false, nil
}
