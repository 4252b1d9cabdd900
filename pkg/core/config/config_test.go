package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/pl2/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"hours", "2h", 2 * time.Hour, false},
		{"negative", "-1s", -time.Second, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"seconds", 30 * time.Second, "30s"},
		{"minutes", 5 * time.Minute, "5m0s"},
		{"hours", 2 * time.Hour, "2h0m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Duration{tt.duration}
			result, err := d.MarshalText()

			if err != nil {
				t.Errorf("MarshalText() error = %v", err)
				return
			}

			if string(result) != tt.expected {
				t.Errorf("MarshalText() = %v, want %v", string(result), tt.expected)
			}
		})
	}
}

func TestDuration_YAML(t *testing.T) {
	var run RunConfig
	if err := yaml.Unmarshal([]byte("timeout: 1m30s\n"), &run); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if run.Timeout.Duration != 90*time.Second {
		t.Errorf("Timeout = %v, want 1m30s", run.Timeout.Duration)
	}

	if err := yaml.Unmarshal([]byte("timeout: [1, 2]\n"), &run); err == nil {
		t.Error("Unmarshal() accepted a sequence as duration")
	}

	out, err := yaml.Marshal(RunConfig{Timeout: Duration{2 * time.Second}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), "timeout: 2s") {
		t.Errorf("Marshal() = %q", out)
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"Engine.MaxTokens", cfg.Engine.MaxTokens, 64},
		{"Engine.ErrorCapacity", cfg.Engine.ErrorCapacity, 512},
		{"Log.Level", cfg.Log.Level, "warn"},
		{"Log.Format", cfg.Log.Format, "console"},
		{"Run.Debounce", cfg.Run.Debounce.Duration, 100 * time.Millisecond},
		{"Run.Timeout", cfg.Run.Timeout.Duration, time.Duration(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if cfg.Demo.Vars == nil {
		t.Error("Demo.Vars should be initialized")
	}
}

func TestConfig_applyDefaultsKeepsValues(t *testing.T) {
	cfg := &Config{Engine: EngineConfig{MaxTokens: 8}, Log: LogConfig{Level: "debug"}}
	cfg.applyDefaults()

	if cfg.Engine.MaxTokens != 8 || cfg.Log.Level != "debug" {
		t.Errorf("applyDefaults() overwrote values: %+v", cfg)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
	if cfg.ErrorCapacity() != 512 {
		t.Errorf("ErrorCapacity() = %d, want 512", cfg.ErrorCapacity())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"max uint16 capacity", func(c *Config) { c.Engine.ErrorCapacity = 65535 }, false},
		{"capacity too large", func(c *Config) { c.Engine.ErrorCapacity = 65536 }, true},
		{"zero tokens", func(c *Config) { c.Engine.MaxTokens = 0 }, true},
		{"negative tokens", func(c *Config) { c.Engine.MaxTokens = -1 }, true},
		{"negative timeout", func(c *Config) { c.Run.Timeout.Duration = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
				t.Errorf("Validate() code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeInvalidConfig)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/pl2.toml")
	if !mdwerror.HasCode(err, mdwerror.CodeMissingConfig) {
		t.Errorf("Load() error = %v, want %v", err, mdwerror.CodeMissingConfig)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "pl2.toml",
			content: `
[engine]
max_tokens = 16

[log]
level = "debug"

[run]
timeout = "5s"

[demo]
lenient = true

[demo.vars]
user = "ada"
`,
		},
		{
			name: "yaml",
			file: "pl2.yml",
			content: `
engine:
  max_tokens: 16
log:
  level: debug
run:
  timeout: 5s
demo:
  lenient: true
  vars:
    user: ada
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if cfg.Engine.MaxTokens != 16 {
				t.Errorf("Engine.MaxTokens = %v, want 16", cfg.Engine.MaxTokens)
			}
			if cfg.Log.Level != "debug" {
				t.Errorf("Log.Level = %v, want debug", cfg.Log.Level)
			}
			if cfg.Run.Timeout.Duration != 5*time.Second {
				t.Errorf("Run.Timeout = %v, want 5s", cfg.Run.Timeout.Duration)
			}
			if !cfg.Demo.Lenient || cfg.Demo.Vars["user"] != "ada" {
				t.Errorf("Demo = %+v", cfg.Demo)
			}

			// Check defaults were applied for missing values
			if cfg.Engine.ErrorCapacity != 512 {
				t.Errorf("Engine.ErrorCapacity = %v, want 512 (default)", cfg.Engine.ErrorCapacity)
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"toml syntax", "pl2.toml", "[engine\n", "failed to parse"},
		{"yaml syntax", "pl2.yaml", "engine: [\n", "failed to parse"},
		{"unknown toml key", "pl2.toml", "[engine]\nmax_token = 3\n", "engine.max_token"},
		{"unknown yaml section", "pl2.yaml", "server:\n  port: 1\n", "server"},
		{"unknown yaml key", "pl2.yaml", "log:\n  colour: red\n", "log.colour"},
		{"unsupported extension", "pl2.json", "{}", "unsupported config format"},
		{"limit out of range", "pl2.toml", "[engine]\nerror_capacity = 70000\n", "engine.error_capacity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want %q", err, tt.want)
			}
			if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
				t.Errorf("Load() code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeInvalidConfig)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvMaxTokens, "9")
	t.Setenv(EnvErrorCapacity, "128")
	t.Setenv(EnvLogLevel, "trace")

	cfg, err := Load(writeFile(t, "pl2.toml", "[engine]\nmax_tokens = 16\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.MaxTokens != 9 || cfg.Engine.ErrorCapacity != 128 || cfg.Log.Level != "trace" {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	t.Setenv(EnvMaxTokens, "many")
	if _, err := Load(writeFile(t, "pl2.toml", "")); !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("Load() error = %v, want invalid override", err)
	}
}

func TestConfig_expandEnvVars(t *testing.T) {
	t.Setenv("TEST_PL2_USER", "grace")

	cfg := &Config{Demo: DemoConfig{Vars: map[string]string{"user": "$TEST_PL2_USER"}}}
	cfg.expandEnvVars()

	if cfg.Demo.Vars["user"] != "grace" {
		t.Errorf("user = %v, want grace", cfg.Demo.Vars["user"])
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeFile(t, "custom.toml", "[log]\nformat = \"json\"\n")
	t.Setenv(EnvConfig, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %v, want json", cfg.Log.Format)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	_, err := LoadFromEnv()
	if !mdwerror.HasCode(err, mdwerror.CodeMissingConfig) {
		t.Errorf("LoadFromEnv() error = %v, want %v", err, mdwerror.CodeMissingConfig)
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv(EnvErrorCapacity, "64")

	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Engine.ErrorCapacity != 64 || cfg.Engine.MaxTokens != 64 {
		t.Errorf("LoadOrDefault() = %+v", cfg.Engine)
	}

	t.Setenv(EnvConfig, "/nonexistent/pl2.toml")
	if _, err := LoadOrDefault(""); err == nil {
		t.Error("LoadOrDefault() ignored an explicit missing PL2_CONFIG")
	}
}

func TestWatch(t *testing.T) {
	path := writeFile(t, "script.pl2", "echo one\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := Watch(ctx, path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("echo two\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change signal within 5s")
	}

	cancel()
	for range changes {
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := Watch(context.Background(), "/nonexistent/dir/script.pl2", time.Millisecond)
	if !mdwerror.HasCode(err, mdwerror.CodeWatchFailed) {
		t.Errorf("Watch() error = %v, want %v", err, mdwerror.CodeWatchFailed)
	}
}
