package snapjs

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/samber/lo"

	"github.com/shibukawa/snapjs/markdown"
	"github.com/shibukawa/snapjs/printer"
	"github.com/shibukawa/snapjs/transform"
)

// DefaultConfigFile is the configuration file looked up by the CLI.
const DefaultConfigFile = "snapjs.yaml"

// DefaultCacheSize is the number of pipeline results kept by default.
const DefaultCacheSize = 128

// Config represents the snapjs configuration
type Config struct {
	Transform TransformConfig `yaml:"transform"`
	Printer   PrinterConfig   `yaml:"printer"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Log       LogConfig       `yaml:"log"`
}

// TransformConfig selects the transformers run by the pipeline
type TransformConfig struct {
	// Pointers tell an omitted key (enabled) from an explicit false
	Slices        *bool `yaml:"slices,omitempty"`
	TopLevelAwait *bool `yaml:"top_level_await,omitempty"`
	// Number of distinct snippets whose results are kept; 0 disables the cache
	CacheSize     *int  `yaml:"cache_size,omitempty"`
}

// SlicesEnabled returns true unless slice lowering is explicitly disabled
func (t TransformConfig) SlicesEnabled() bool {
	return t.Slices == nil || *t.Slices
}

// TopLevelAwaitEnabled returns true unless the await wrapper is explicitly disabled
func (t TransformConfig) TopLevelAwaitEnabled() bool {
	return t.TopLevelAwait == nil || *t.TopLevelAwait
}

// CacheEntries returns the configured cache size, DefaultCacheSize when unset
func (t TransformConfig) CacheEntries() int {
	if t.CacheSize == nil {
		return DefaultCacheSize
	}

	return *t.CacheSize
}

// PrinterConfig represents code printing settings
type PrinterConfig struct {
	Indent string `yaml:"indent"`
}

// MarkdownConfig represents Markdown rewriting settings
type MarkdownConfig struct {
	// Fence info strings treated as JavaScript
	Languages []string `yaml:"languages"`
}

// LogConfig represents logger settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Strict mode rejects unknown keys
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Variables are expanded before validation so an indent can come from the environment
	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDefaults(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	if size := config.Transform.CacheSize; size != nil && *size < 0 {
		return fmt.Errorf("%w: transform.cache_size must be non-negative, got %d", ErrConfigValidation, *size)
	}

	if strings.TrimSpace(config.Printer.Indent) != "" {
		return fmt.Errorf("%w: printer.indent must contain only whitespace, got %q", ErrConfigValidation, config.Printer.Indent)
	}

	for _, lang := range config.Markdown.Languages {
		if strings.TrimSpace(lang) == "" || strings.ContainsAny(lang, " \t`") {
			return fmt.Errorf("%w: markdown.languages: invalid language %q", ErrConfigValidation, lang)
		}
	}

	if config.Log.Level != "" {
		validLevels := map[string]bool{
			"debug": true,
			"info":  true,
			"warn":  true,
			"error": true,
		}
		if !validLevels[strings.ToLower(config.Log.Level)] {
			return fmt.Errorf("%w: log.level '%s' is invalid: must be one of debug, info, warn, error", ErrConfigValidation, config.Log.Level)
		}
	}

	if config.Log.Format != "" {
		validFormats := map[string]bool{
			"text": true,
			"json": true,
		}
		if !validFormats[strings.ToLower(config.Log.Format)] {
			return fmt.Errorf("%w: log.format '%s' is invalid: must be one of text, json", ErrConfigValidation, config.Log.Format)
		}
	}

	return nil
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *int {
	return &i
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Transform: TransformConfig{
			Slices:        boolPtr(true),
			TopLevelAwait: boolPtr(true),
			CacheSize:     intPtr(DefaultCacheSize),
		},
		Printer: PrinterConfig{
			Indent: printer.DefaultIndent,
		},
		Markdown: MarkdownConfig{
			Languages: append([]string(nil), markdown.DefaultLanguages...),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	if config.Transform.Slices == nil {
		config.Transform.Slices = boolPtr(true)
	}

	if config.Transform.TopLevelAwait == nil {
		config.Transform.TopLevelAwait = boolPtr(true)
	}

	if config.Transform.CacheSize == nil {
		config.Transform.CacheSize = intPtr(DefaultCacheSize)
	}

	if config.Printer.Indent == "" {
		config.Printer.Indent = printer.DefaultIndent
	}

	if len(config.Markdown.Languages) == 0 {
		config.Markdown.Languages = append([]string(nil), markdown.DefaultLanguages...)
	}

	config.Markdown.Languages = lo.Uniq(config.Markdown.Languages)

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}

	if config.Log.Format == "" {
		config.Log.Format = "text"
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareEnvVar   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return bareEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in the string fields of config
func expandConfigEnvVars(config *Config) {
	config.Printer.Indent = expandEnvVars(config.Printer.Indent)

	for i, lang := range config.Markdown.Languages {
		config.Markdown.Languages[i] = expandEnvVars(lang)
	}

	config.Log.Level = expandEnvVars(config.Log.Level)
	config.Log.Format = expandEnvVars(config.Log.Format)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// PipelineOptions returns the pipeline options described by the configuration.
func (c *Config) PipelineOptions() []transform.PipelineOption {
	return []transform.PipelineOption{
		transform.WithSlices(c.Transform.SlicesEnabled()),
		transform.WithTopLevelAwait(c.Transform.TopLevelAwaitEnabled()),
		transform.WithIndent(c.Printer.Indent),
		transform.WithCacheSize(c.Transform.CacheEntries()),
	}
}

// DefaultConfigYAML renders the default configuration, as written by `snapjs init`.
func DefaultConfigYAML() ([]byte, error) {
	data, err := yaml.Marshal(getDefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default config: %w", err)
	}

	return data, nil
}

// WriteDefaultConfig writes the default configuration to path. An existing file is only
// replaced when force is set.
func WriteDefaultConfig(path string, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%w: %s", ErrConfigFileExists, path)
	}

	data, err := DefaultConfigYAML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
