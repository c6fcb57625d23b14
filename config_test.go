package snapjs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/goccy/go-yaml"

	"github.com/shibukawa/snapjs/transform"
)

func TestDefaultConfig(t *testing.T) {
	config := getDefaultConfig()

	assert.True(t, config.Transform.SlicesEnabled())
	assert.True(t, config.Transform.TopLevelAwaitEnabled())
	assert.Equal(t, DefaultCacheSize, config.Transform.CacheEntries())
	assert.Equal(t, "  ", config.Printer.Indent)
	assert.Equal(t, []string{"js", "javascript", "mjs", "node"}, config.Markdown.Languages)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
}

func TestTransformConfig_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		value    *bool
		expected bool
	}{
		{"unset", nil, true},
		{"explicit true", boolPtr(true), true},
		{"explicit false", boolPtr(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := TransformConfig{Slices: tt.value, TopLevelAwait: tt.value}
			assert.Equal(t, tt.expected, cfg.SlicesEnabled())
			assert.Equal(t, tt.expected, cfg.TopLevelAwaitEnabled())
		})
	}
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, getDefaultConfig(), config)
}

func TestLoadConfig_PartialConfigGetsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "snapjs.yaml")

	configContent := `
transform:
  top_level_await: false
log:
  level: debug
`

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.True(t, config.Transform.SlicesEnabled())
	assert.False(t, config.Transform.TopLevelAwaitEnabled())
	assert.Equal(t, "  ", config.Printer.Indent)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, 4, len(config.Markdown.Languages))
	assert.Equal(t, DefaultCacheSize, config.Transform.CacheEntries())
}

func TestLoadConfig_CacheCanBeDisabled(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "snapjs.yaml")

	err := os.WriteFile(configPath, []byte("transform:\n  cache_size: 0\nmarkdown:\n  languages: [js, js, jsx]\n"), 0644)
	assert.NoError(t, err)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, 0, config.Transform.CacheEntries())
	assert.Equal(t, []string{"js", "jsx"}, config.Markdown.Languages)
}

func TestLoadConfig_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("SNAPJS_TEST_LEVEL", "warn")
	t.Setenv("SNAPJS_TEST_LANG", "jsx")

	configPath := filepath.Join(t.TempDir(), "snapjs.yaml")

	configContent := `
markdown:
  languages: ["js", "${SNAPJS_TEST_LANG}"]
log:
  level: $SNAPJS_TEST_LEVEL
`

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, []string{"js", "jsx"}, config.Markdown.Languages)
	assert.Equal(t, "warn", config.Log.Level)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SNAPJS_TEST_A", "alpha")

	tests := []struct {
		input    string
		expected string
	}{
		{"${SNAPJS_TEST_A}", "alpha"},
		{"$SNAPJS_TEST_A/b", "alpha/b"},
		{"x-${SNAPJS_TEST_UNSET}-y", "x--y"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}

func TestConfig_PipelineOptions(t *testing.T) {
	config := getDefaultConfig()
	config.Transform.Slices = boolPtr(false)
	config.Printer.Indent = "\t"

	pipeline := transform.NewPipeline(config.PipelineOptions()...)

	result, err := pipeline.Run("a[1:2]")
	assert.NoError(t, err)
	assert.False(t, result.Changed())
	assert.Equal(t, "a[1:2]", result.Code)

	result, err = pipeline.Run("if (x) { await f() }")
	assert.NoError(t, err)
	assert.True(t, result.Wrapped)
	assert.Contains(t, result.Code, "\n\tif (x) {\n\t\tawait f();\n\t}\n")
}

func TestDefaultConfigYAML(t *testing.T) {
	data, err := DefaultConfigYAML()
	assert.NoError(t, err)

	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	assert.NoError(t, err)
	assert.Equal(t, getDefaultConfig(), &config)
	assert.True(t, strings.Contains(string(data), "top_level_await: true"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&buf, LogConfig{Level: "warn", Format: "json"})
	logger.Info("hidden")
	logger.Warn("shown", "slices", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"slices":2`)

	buf.Reset()
	NewLogger(&buf, LogConfig{Level: "DEBUG"}).Debug("step")
	assert.Contains(t, buf.String(), "level=DEBUG msg=step")
}

func TestWriteDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), DefaultConfigFile)

	err := WriteDefaultConfig(configPath, false)
	assert.NoError(t, err)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, getDefaultConfig(), config)

	err = WriteDefaultConfig(configPath, false)
	assert.IsError(t, err, ErrConfigFileExists)

	err = WriteDefaultConfig(configPath, true)
	assert.NoError(t, err)
}
