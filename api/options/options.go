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

// Package options specifies options for the compiler.
package options

import (
	"github.com/pkg/errors"
	"github.com/gx-org/nnc/build/rewrite"
	"github.com/gx-org/nnc/build/rewrite/rules"
	"github.com/gx-org/nnc/interp/evaluator"
)

type (
	// Option configures the compiler.
	Option func(*Config)

	// Config is the configuration of the compiler.
	Config struct {
		// MaxIterations is the maximum number of rewrite iterations per function.
		MaxIterations int
		// RuleSets are the names of the rule sets applied to the functions.
		RuleSets []string
		// DisabledRules are the names of the rules never applied.
		DisabledRules []string
		// Backend evaluates operators when folding constants.
		// The Go kernels are used if nil.
		Backend evaluator.NumericBackend
		// Debug enables debug logs.
		Debug bool
	}
)

// New returns the default configuration modified by a list of options.
func New(opts ...Option) *Config {
	cfg := &Config{
		MaxIterations: rewrite.DefaultMaxIterations,
		RuleSets:      []string{rules.DefaultSet},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate returns an error if the configuration cannot be used.
func (cfg *Config) Validate() error {
	if cfg.MaxIterations <= 0 {
		return errors.Errorf("maximum number of iterations must be positive: got %d", cfg.MaxIterations)
	}
	_, err := cfg.Rules()
	return err
}

// Rules returns the rules selected by the configuration.
func (cfg *Config) Rules() ([]rewrite.Rule, error) {
	return rules.Lookup(cfg.RuleSets, cfg.DisabledRules)
}

// WithMaxIterations sets the maximum number of rewrite iterations per function.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		cfg.MaxIterations = n
	}
}

// WithRuleSets replaces the rule sets applied to the functions.
// No rule is applied if no set is given.
func WithRuleSets(names ...string) Option {
	return func(cfg *Config) {
		cfg.RuleSets = names
	}
}

// WithDisabledRules disables rules given their names.
func WithDisabledRules(names ...string) Option {
	return func(cfg *Config) {
		cfg.DisabledRules = append(cfg.DisabledRules, names...)
	}
}

// WithBackend sets the numerical backend used to fold constants.
func WithBackend(backend evaluator.NumericBackend) Option {
	return func(cfg *Config) {
		cfg.Backend = backend
	}
}

// WithDebug enables or disables debug logs.
func WithDebug(debug bool) Option {
	return func(cfg *Config) {
		cfg.Debug = debug
	}
}
