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

package options

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Version is the version of the configuration files supported by the compiler.
const Version = "v1"

// file is the content of a configuration file.
type file struct {
	Version       string   `yaml:"version"`
	MaxIterations *int     `yaml:"maxIterations"`
	Rules         []string `yaml:"rules"`
	DisabledRules []string `yaml:"disabledRules"`
	Debug         *bool    `yaml:"debug"`
}

// LoadFile reads a YAML configuration file and returns the options it sets.
func LoadFile(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read configuration file")
	}
	opts, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return opts, nil
}

// Parse parses a YAML configuration and returns the options it sets.
// Fields absent from the configuration do not generate an option.
func Parse(data []byte) ([]Option, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f file
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "cannot parse configuration")
	}
	if err := checkVersion(f.Version); err != nil {
		return nil, err
	}
	var opts []Option
	if f.MaxIterations != nil {
		opts = append(opts, WithMaxIterations(*f.MaxIterations))
	}
	if f.Rules != nil {
		opts = append(opts, WithRuleSets(f.Rules...))
	}
	if len(f.DisabledRules) > 0 {
		opts = append(opts, WithDisabledRules(f.DisabledRules...))
	}
	if f.Debug != nil {
		opts = append(opts, WithDebug(*f.Debug))
	}
	return opts, nil
}

func checkVersion(v string) error {
	if v == "" {
		return errors.Errorf("missing configuration version: want %s", Version)
	}
	if !semver.IsValid(v) {
		return errors.Errorf("invalid configuration version %q", v)
	}
	if semver.Major(v) != Version {
		return errors.Errorf("configuration version %s not supported: want %s", v, Version)
	}
	return nil
}
