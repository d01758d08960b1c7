// Package config loads tinyscript settings from a TOML or YAML file plus
// environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"tinyscript/pkg/compiler"
)

// Environment variables consulted by LoadFromEnv and applyEnvOverrides.
const (
	EnvConfigPath = "TINYSCRIPT_CONFIG"
	EnvLogLevel   = "TINYSCRIPT_LOG_LEVEL"
	EnvMaxDepth   = "TINYSCRIPT_MAX_DEPTH"
)

// Config holds the complete tool configuration
type Config struct {
	Compiler CompilerConfig `toml:"compiler" yaml:"compiler"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

// CompilerConfig holds front-end limits and scanner behaviour
type CompilerConfig struct {
	MaxDepth          int  `toml:"max_depth" yaml:"max_depth"`
	CombinedOperators bool `toml:"combined_operators" yaml:"combined_operators"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // text or json
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file, or YAML when the extension is
// .yaml or .yml.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by TINYSCRIPT_CONFIG, falling back to
// ./tinyscript.toml and then to defaults. Environment overrides apply in
// every case.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		for _, p := range []string{"./tinyscript.toml", "./tinyscript.yaml"} {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		cfg := Default()
		if err := cfg.applyEnvOverrides(); err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}

	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Compiler.MaxDepth == 0 {
		c.Compiler.MaxDepth = compiler.DefaultMaxDepth
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) applyEnvOverrides() error {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.Log.Level = lvl
	}
	if v := os.Getenv(EnvMaxDepth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxDepth, v, err)
		}
		c.Compiler.MaxDepth = n
	}
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Compiler.MaxDepth < 1 {
		return fmt.Errorf("compiler.max_depth must be positive, got %d", c.Compiler.MaxDepth)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// CompilerOptions converts the compiler section into pipeline options.
func (c *Config) CompilerOptions(logger *slog.Logger) compiler.Options {
	return compiler.Options{
		MaxDepth:          c.Compiler.MaxDepth,
		CombinedOperators: c.Compiler.CombinedOperators,
		Logger:            logger,
	}
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
