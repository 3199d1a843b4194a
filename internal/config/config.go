// Package config loads the aritygen configuration.
//
// Configuration comes from built-in defaults, an optional TOML or YAML file
// and command line flags, in increasing order of precedence. Environment
// variables are not consulted.
package config

import (
	"path"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/sdboyer/aritygen"
)

// MaxSupportedArity bounds max_arity.
const MaxSupportedArity = 64

// Keys of the configuration file.
const (
	KeyOutputDir       = "output_dir"
	KeyMaxArity        = "max_arity"
	KeyFunctionPackage = "function_package"
	KeyTuplePackage    = "tuple_package"
	KeyHeader          = "header"
	KeyCharset         = "charset"
	KeyFormat          = "format"
)

// DefaultHeader is placed at the top of every generated file.
const DefaultHeader = `// Copyright 2026 The aritygen Authors
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

// Code generated by aritygen. DO NOT EDIT.`

// Config drives one generation run.
type Config struct {
	// OutputDir is the root all package paths are relative to.
	OutputDir string `mapstructure:"output_dir" toml:"output_dir"`
	// MaxArity is the highest arity generated; arities start at 0.
	MaxArity int `mapstructure:"max_arity" toml:"max_arity"`
	// FunctionPackage is the slash-separated path of the function package.
	FunctionPackage string `mapstructure:"function_package" toml:"function_package"`
	// TuplePackage is the slash-separated path of the tuple package.
	TuplePackage string `mapstructure:"tuple_package" toml:"tuple_package"`
	// Header is placed at the top of every generated file.
	Header string `mapstructure:"header" toml:"header,multiline"`
	// Charset is the encoding generated files are written in.
	Charset string `mapstructure:"charset" toml:"charset"`
	// Format runs generated files through gofmt.
	Format bool `mapstructure:"format" toml:"format"`
}

// SetDefaults registers the default value of every key with v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutputDir, "gen")
	v.SetDefault(KeyMaxArity, 13)
	v.SetDefault(KeyFunctionPackage, "function")
	v.SetDefault(KeyTuplePackage, "tuple")
	v.SetDefault(KeyHeader, DefaultHeader)
	v.SetDefault(KeyCharset, aritygen.DefaultCharset)
	v.SetDefault(KeyFormat, true)
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v, "")
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the configuration file at configPath, if non-empty, into v and
// returns the validated result. Defaults must already be registered with v,
// and flags bound to it.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first problem with c.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	if c.MaxArity < 0 || c.MaxArity > MaxSupportedArity {
		return errors.WithHintf(errors.Newf("max_arity %d out of range", c.MaxArity),
			"max_arity must be between 0 and %d", MaxSupportedArity)
	}
	for key, p := range map[string]string{
		KeyFunctionPackage: c.FunctionPackage,
		KeyTuplePackage:    c.TuplePackage,
	} {
		if err := validatePackagePath(p); err != nil {
			return errors.Wrapf(err, "invalid %s", key)
		}
	}
	if path.Clean(c.FunctionPackage) == path.Clean(c.TuplePackage) {
		return errors.WithHint(errors.Newf("function_package and tuple_package are both %q", c.FunctionPackage),
			"both families declare Of0 to OfN factories, so they need separate packages")
	}
	if _, err := aritygen.Encode(c.Charset); err != nil {
		return errors.WithHint(err, "use an encoding name from the WHATWG Encoding Standard, such as utf-8")
	}
	return nil
}

func validatePackagePath(p string) error {
	if p == "" {
		return errors.New("package path must not be empty")
	}
	if path.IsAbs(p) || path.Clean(p) != p || strings.HasPrefix(p, "..") {
		return errors.Newf("package path %q must be a clean relative path", p)
	}
	name := path.Base(p)
	for i, r := range name {
		if r == '_' || ('a' <= r && r <= 'z') || (i > 0 && '0' <= r && r <= '9') {
			continue
		}
		return errors.Newf("%q is not a valid Go package name", name)
	}
	return nil
}
