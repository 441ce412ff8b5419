// Package config loads the run configuration from a cam.yaml file.
//
// The configuration declares the free identifiers of otherwise-open
// terms: their types for the inference context and their machine values
// for the pre-seeded environment, plus switches for type checking,
// tracing, and the compiled-chunk cache.
//
// Example:
//
//	typecheck: true
//	context:
//	  true: Bool
//	  inc: Int -> Int
//	globals:
//	  - name: y
//	    value: 7
//	cache: .cam-cache.db
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/cam/internal/parser"
	"github.com/funvibe/cam/internal/typesystem"
)

// Config represents the top-level cam.yaml configuration.
type Config struct {
	// Typecheck enables the inference stage before compilation.
	Typecheck bool `yaml:"typecheck"`

	// Trace enables the machine's per-transition trace output.
	Trace bool `yaml:"trace"`

	// StepLimit aborts a traced run after that many transitions.
	// 0 means no limit.
	StepLimit int `yaml:"step_limit,omitempty"`

	// Cache is the path of the compiled-chunk cache database. Empty
	// disables caching.
	Cache string `yaml:"cache,omitempty"`

	// Context maps free identifiers to type expressions ("Bool",
	// "Int -> Int") for the inference context.
	Context map[string]string `yaml:"context,omitempty"`

	// Globals declares free identifiers with their machine values, in
	// declaration order. Order matters: it fixes the lexical indices
	// the resolver assigns to these names.
	Globals []Global `yaml:"globals,omitempty"`
}

// Global is one pre-seeded machine binding.
type Global struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

// Load reads and decodes a cam.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// TypingContext parses the declared type expressions into a typing
// context. Globals without an explicit context entry are typed Int,
// since machine globals are integer values.
func (c *Config) TypingContext() (map[string]typesystem.Type, error) {
	ctx := make(map[string]typesystem.Type, len(c.Context)+len(c.Globals))
	for _, g := range c.Globals {
		ctx[g.Name] = typesystem.IntType
	}
	for name, expr := range c.Context {
		t, err := parser.ParseTypeString(expr)
		if err != nil {
			return nil, fmt.Errorf("context entry %q: %w", name, err)
		}
		ctx[name] = t
	}
	return ctx, nil
}

// GlobalNames returns the declared global names in declaration order.
func (c *Config) GlobalNames() []string {
	names := make([]string, len(c.Globals))
	for i, g := range c.Globals {
		names[i] = g.Name
	}
	return names
}
