package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyscript/pkg/compiler"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, compiler.DefaultMaxDepth, cfg.Compiler.MaxDepth)
	assert.False(t, cfg.Compiler.CombinedOperators)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		depth    int
		combined bool
		level    string
	}{
		{
			name: "toml",
			file: "tinyscript.toml",
			content: `
[compiler]
max_depth = 64
combined_operators = true

[log]
level = "debug"
`,
			depth: 64, combined: true, level: "debug",
		},
		{
			name: "yaml",
			file: "tinyscript.yaml",
			content: `
compiler:
  max_depth: 32
log:
  level: warn
  format: json
`,
			depth: 32, combined: false, level: "warn",
		},
		{
			name:    "empty toml gets defaults",
			file:    "empty.toml",
			content: "",
			depth:   compiler.DefaultMaxDepth, combined: false, level: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.depth, cfg.Compiler.MaxDepth)
			assert.Equal(t, tt.combined, cfg.Compiler.CombinedOperators)
			assert.Equal(t, tt.level, cfg.Log.Level)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorContains(t, err, "config file not found")
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.toml", "[compiler\nmax_depth = "))
		assert.ErrorContains(t, err, "failed to parse config")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.yml", "compiler: [unclosed"))
		assert.ErrorContains(t, err, "failed to parse config")
	})

	t.Run("negative depth", func(t *testing.T) {
		_, err := Load(writeFile(t, "neg.toml", "[compiler]\nmax_depth = -1\n"))
		assert.ErrorContains(t, err, "max_depth must be positive")
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := Load(writeFile(t, "fmt.toml", "[log]\nformat = \"xml\"\n"))
		assert.ErrorContains(t, err, "log.format")
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("overrides file values", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "error")
		t.Setenv(EnvMaxDepth, "10")
		cfg, err := Load(writeFile(t, "c.toml", "[compiler]\nmax_depth = 64\n"))
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.Compiler.MaxDepth)
		assert.Equal(t, "error", cfg.Log.Level)
	})

	t.Run("invalid depth", func(t *testing.T) {
		t.Setenv(EnvMaxDepth, "deep")
		_, err := Load(writeFile(t, "c.toml", ""))
		assert.ErrorContains(t, err, EnvMaxDepth)
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "loud")
		_, err := Load(writeFile(t, "c.toml", ""))
		assert.ErrorContains(t, err, "unknown log level")
	})
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		t.Setenv(EnvConfigPath, writeFile(t, "x.toml", "[compiler]\nmax_depth = 7\n"))
		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Compiler.MaxDepth)
	})

	t.Run("defaults when nothing is found", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		chdir(t, t.TempDir())
		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, compiler.DefaultMaxDepth, cfg.Compiler.MaxDepth)
	})
}

func TestCompilerOptions(t *testing.T) {
	cfg := Default()
	cfg.Compiler.CombinedOperators = true
	logger := slog.Default()

	opts := cfg.CompilerOptions(logger)
	assert.Equal(t, compiler.DefaultMaxDepth, opts.MaxDepth)
	assert.True(t, opts.CombinedOperators)
	assert.Same(t, logger, opts.Logger)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
