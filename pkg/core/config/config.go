// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     config
// Description: Tool configuration loaded from TOML or YAML files with
//              environment overrides and file watching
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/pl2/foundation/core/error"
)

// Environment variables
const (
	EnvConfig        = "PL2_CONFIG"
	EnvMaxTokens     = "PL2_MAX_TOKENS"
	EnvErrorCapacity = "PL2_ERROR_CAPACITY"
	EnvLogLevel      = "PL2_LOG_LEVEL"
)

// Config holds the complete tool configuration
type Config struct {
	Engine EngineConfig `toml:"engine" yaml:"engine"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Run    RunConfig    `toml:"run" yaml:"run"`
	Demo   DemoConfig   `toml:"demo" yaml:"demo"`
}

// EngineConfig holds parser and executor limits
type EngineConfig struct {
	MaxTokens     int `toml:"max_tokens" yaml:"max_tokens"`
	ErrorCapacity int `toml:"error_capacity" yaml:"error_capacity"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// RunConfig holds script run settings
type RunConfig struct {
	Timeout  Duration `toml:"timeout" yaml:"timeout"`
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// DemoConfig holds settings of the bundled demo language
type DemoConfig struct {
	Lenient bool              `toml:"lenient" yaml:"lenient"`
	Vars    map[string]string `toml:"vars" yaml:"vars"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerror.New("config file not found").
				WithCode(mdwerror.CodeMissingConfig).
				WithDetail("path", path).
				WithOperation("config.Load")
		}
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path).
			WithOperation("config.Load")
	}

	cfg, err := decode(path, data)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte) (*Config, error) {
	var cfg Config
	var unknown []string

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, parseError(err, path)
		}
		for _, key := range md.Undecoded() {
			unknown = append(unknown, key.String())
		}
	case ".yaml", ".yml":
		var raw map[string]interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, parseError(err, path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, parseError(err, path)
		}
		unknown = unknownYAMLKeys(raw)
	default:
		return nil, mdwerror.Newf("unsupported config format %q", ext).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("path", path).
			WithOperation("config.Load")
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, mdwerror.Newf("unknown config keys: %s", strings.Join(unknown, ", ")).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("path", path).
			WithOperation("config.Load")
	}
	return &cfg, nil
}

func parseError(err error, path string) error {
	return mdwerror.Wrap(err, "failed to parse config").
		WithCode(mdwerror.CodeInvalidConfig).
		WithDetail("path", path).
		WithOperation("config.Load")
}

// sections lists the known keys per top-level YAML section. Demo vars are
// free-form.
var sections = map[string][]string{
	"engine": {"max_tokens", "error_capacity"},
	"log":    {"level", "format"},
	"run":    {"timeout", "debounce"},
	"demo":   {"lenient", "vars"},
}

func unknownYAMLKeys(doc map[string]interface{}) []string {
	var unknown []string
	for section, value := range doc {
		known, ok := sections[section]
		if !ok {
			unknown = append(unknown, section)
			continue
		}
		fields, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		for key := range fields {
			if !contains(known, key) {
				unknown = append(unknown, section+"."+key)
			}
		}
	}
	return unknown
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// LoadFromEnv loads configuration from the PL2_CONFIG environment variable
// or the first existing default location
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		path = findDefault()
	}

	if path == "" {
		return nil, mdwerror.New("no config file found, set PL2_CONFIG or create pl2.toml").
			WithCode(mdwerror.CodeMissingConfig).
			WithOperation("config.LoadFromEnv")
	}

	return Load(path)
}

// LoadOrDefault loads path, or the environment's config when path is
// empty. A missing default config yields Default with environment
// overrides applied.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	cfg, err := LoadFromEnv()
	if err == nil {
		return cfg, nil
	}
	if !mdwerror.HasCode(err, mdwerror.CodeMissingConfig) || os.Getenv(EnvConfig) != "" {
		return nil, err
	}

	cfg = Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findDefault() string {
	defaultPaths := []string{
		"./pl2.toml",
		"./pl2.yaml",
		"./configs/pl2.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		defaultPaths = append(defaultPaths,
			filepath.Join(home, ".config/pl2/config.toml"),
			filepath.Join(home, ".config/pl2/config.yaml"),
		)
	}

	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Engine
	if c.Engine.MaxTokens == 0 {
		c.Engine.MaxTokens = 64
	}
	if c.Engine.ErrorCapacity == 0 {
		c.Engine.ErrorCapacity = 512
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}

	// Run
	if c.Run.Debounce.Duration == 0 {
		c.Run.Debounce.Duration = 100 * time.Millisecond
	}

	// Demo
	if c.Demo.Vars == nil {
		c.Demo.Vars = make(map[string]string)
	}
}

// applyEnv applies PL2_* overrides
func (c *Config) applyEnv() error {
	ints := []struct {
		name   string
		target *int
	}{
		{EnvMaxTokens, &c.Engine.MaxTokens},
		{EnvErrorCapacity, &c.Engine.ErrorCapacity},
	}
	for _, v := range ints {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return mdwerror.Wrap(err, "invalid environment override").
				WithCode(mdwerror.CodeInvalidConfig).
				WithDetail("variable", v.name).
				WithOperation("config.applyEnv")
		}
		*v.target = n
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
	return nil
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	for k, v := range c.Demo.Vars {
		c.Demo.Vars[k] = os.ExpandEnv(v)
	}
}

// Validate checks that the limits fit the engine's 16-bit counters
func (c *Config) Validate() error {
	limits := []struct {
		name  string
		value int
	}{
		{"engine.max_tokens", c.Engine.MaxTokens},
		{"engine.error_capacity", c.Engine.ErrorCapacity},
	}
	for _, l := range limits {
		if l.value < 1 || l.value > math.MaxUint16 {
			return mdwerror.Newf("%s must be between 1 and %d, got %d", l.name, math.MaxUint16, l.value).
				WithCode(mdwerror.CodeInvalidConfig).
				WithDetail("key", l.name).
				WithOperation("config.Validate")
		}
	}
	if c.Run.Timeout.Duration < 0 {
		return mdwerror.New("run.timeout must not be negative").
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("key", "run.timeout").
			WithOperation("config.Validate")
	}
	return nil
}

// ErrorCapacity returns the engine error capacity as the engine's type
func (c *Config) ErrorCapacity() uint16 {
	return uint16(c.Engine.ErrorCapacity)
}
