// Package config loads and validates the workspace configuration that
// feeds internal/compiler's CompilerOptions. Loading a YAML config file
// and validating its shape is ambient tooling around the core pipeline
// (lists workspace config loading among the external
// collaborators), kept here rather than folded into internal/compiler so
// the core pipeline's CompilerOptions stays a plain Go value a caller can
// also construct directly without ever touching a file.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/tsoniclang/tsonic/internal/validate"
)

// CasePolicy mirrors validate.CasePolicy for YAML decoding, since the
// validate package's type carries no yaml struct tags of its own (it is
// the core pipeline's internal vocabulary, not a serialization format).
type CasePolicy string

// NamingPolicy is the YAML-shaped counterpart of validate.NamingPolicy
//.
type NamingPolicy struct {
	Classes     CasePolicy `yaml:"classes" validate:"omitempty,oneof=pascal camel snake none"`
	Methods     CasePolicy `yaml:"methods" validate:"omitempty,oneof=pascal camel snake none"`
	Properties  CasePolicy `yaml:"properties" validate:"omitempty,oneof=pascal camel snake none"`
	Fields      CasePolicy `yaml:"fields" validate:"omitempty,oneof=pascal camel snake none"`
	EnumMembers CasePolicy `yaml:"enumMembers" validate:"omitempty,oneof=pascal camel snake none"`
}

// ToValidate converts to the validate package's own NamingPolicy,
// defaulting any blank bucket to validate.DefaultNamingPolicy()'s choice.
func (n NamingPolicy) ToValidate() validate.NamingPolicy {
	def := validate.DefaultNamingPolicy()
	pick := func(v CasePolicy, fallback validate.CasePolicy) validate.CasePolicy {
		if v == "" {
			return fallback
		}
		return validate.CasePolicy(v)
	}
	return validate.NamingPolicy{
		Classes:     pick(n.Classes, def.Classes),
		Methods:     pick(n.Methods, def.Methods),
		Properties:  pick(n.Properties, def.Properties),
		Fields:      pick(n.Fields, def.Fields),
		EnumMembers: pick(n.EnumMembers, def.EnumMembers),
	}
}

// Config is the on-disk shape of a workspace's tsonic.config.yaml
// (`options`, minus the fields (moduleMap, exportMap,
// bindingsRegistry, clrResolver) that only exist once the compiler has
// started resolving a real source tree and so are never user-authored).
type Config struct {
	SourceRoot    string       `yaml:"sourceRoot" validate:"required"`
	RootNamespace string       `yaml:"rootNamespace" validate:"required"`
	Runtime       string       `yaml:"runtime" validate:"required,oneof=dotnet js"`
	NamingPolicy  NamingPolicy `yaml:"namingPolicy"`
	IsEntryPoint  bool         `yaml:"isEntryPoint"`
	EntryPoint    string       `yaml:"entryPoint" validate:"required_if=IsEntryPoint true"`
	NugetPackages []Package    `yaml:"nugetPackages" validate:"dive"`
}

// Package is one bound external dependency the config declares, resolved
// against internal/bindingcache before compilation starts.
type Package struct {
	Name    string `yaml:"name" validate:"required"`
	Version string `yaml:"version" validate:"required"`
}

var validatorInstance = validator.New()

// Load reads and validates a workspace config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse validates a config's already-read YAML bytes; Load's indirection
// exists so tests can exercise validation without touching the
// filesystem.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validatorInstance.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// RuntimeMode converts the config's string runtime field to the validate
// package's RuntimeMode, defaulting to dotnet (config validation already
// rejects any other value).
func (c *Config) RuntimeMode() validate.RuntimeMode {
	if c.Runtime == string(validate.RuntimeJS) {
		return validate.RuntimeJS
	}
	return validate.RuntimeDotnet
}
