// Package config loads the `.sicilian.toml`/`.sicilian.yml` file that
// configures the `scan` and `compare` commands: a viper-backed struct
// with a discovery walk up the directory tree and CLI-flag-over-file
// merge semantics.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/sicilian/internal/constants"
	"github.com/spf13/viper"
)

// Default values for the scan/compare surface.
const (
	// DefaultMaxGoroutines is used when config or flags don't override it.
	DefaultMaxGoroutines = 4

	// DefaultTimeoutSeconds bounds one scan invocation.
	DefaultTimeoutSeconds = 300

	// DefaultNonceMode mirrors the reference scheme's per-invocation
	// secrets.token_hex nonce (SPEC_FULL.md §4.1 Open Question).
	DefaultNonceMode = "random"

	// DefaultIgnoreFile is the gitignore-syntax exclusion file scans honor.
	DefaultIgnoreFile = ".sicilianignore"
)

// Config is the root configuration for the sicilian CLI.
type Config struct {
	Scan        ScanConfig        `json:"scan" mapstructure:"scan" yaml:"scan"`
	Output      OutputConfig      `json:"output" mapstructure:"output" yaml:"output"`
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// ScanConfig holds configuration for corpus discovery and signing.
type ScanConfig struct {
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
	Recursive       bool     `json:"recursive" mapstructure:"recursive" yaml:"recursive"`
	FollowSymlinks  bool     `json:"follow_symlinks" mapstructure:"follow_symlinks" yaml:"follow_symlinks"`
	IgnoreFile      string   `json:"ignore_file" mapstructure:"ignore_file" yaml:"ignore_file"`
	NonceMode       string   `json:"nonce_mode" mapstructure:"nonce_mode" yaml:"nonce_mode"`
}

// OutputConfig holds configuration for report rendering.
type OutputConfig struct {
	Format string `json:"format" mapstructure:"format" yaml:"format"`
}

// PerformanceConfig bounds the corpus scanner's concurrency.
type PerformanceConfig struct {
	MaxGoroutines  int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx", "**/*.mjs", "**/*.cjs"},
			ExcludePatterns: []string{
				"node_modules", "vendor", "dist", "build", "out", ".output",
				".next", ".nuxt", ".vercel", ".cache", ".turbo", "coverage", ".git",
				"*.min.js", "*.min.mjs", "*.min.cjs", "*.bundle.js", "*.map",
			},
			Recursive:      true,
			FollowSymlinks: false,
			IgnoreFile:     DefaultIgnoreFile,
			NonceMode:      DefaultNonceMode,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  DefaultMaxGoroutines,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// LoadConfig loads configuration from file or returns the default config.
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context,
// discovering a config file near targetPath when configPath is empty.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = discoverConfigFile(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// discoverConfigFile finds the appropriate config file path.
func discoverConfigFile(targetPath string) string {
	return findDefaultConfig(targetPath)
}

// loadConfigFromFile reads and parses a configuration file.
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// New viper instance per load to avoid race conditions across
	// concurrent invocations.
	v := viper.New()
	cfg := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory.
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common
// locations, searching from targetPath upward to the filesystem root,
// then the current directory, then XDG config locations.
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"sicilian.toml",
		".sicilian.toml",
		"sicilian.yaml",
		"sicilian.yml",
		".sicilian.yml",
		"sicilian.json",
		".sicilian.json",
	}

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			if info, statErr := os.Stat(absPath); statErr == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if cfg := searchConfigInDirectory(dir, candidates); cfg != "" {
					return cfg
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	if cfg := searchConfigInDirectory(".", candidates); cfg != "" {
		return cfg
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if cfg := searchConfigInDirectory(filepath.Join(xdgConfig, "sicilian"), candidates); cfg != "" {
			return cfg
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "sicilian")
		if cfg := searchConfigInDirectory(configDir, candidates); cfg != "" {
			return cfg
		}
		if cfg := searchConfigInDirectory(home, candidates); cfg != "" {
			return cfg
		}
	}

	if envConfig := os.Getenv(constants.EnvVarPrefix + "_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	validFormats := map[string]bool{"text": true, "json": true, "yaml": true, "csv": true}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format %q, must be one of: text, json, yaml, csv", c.Output.Format)
	}

	validNonceModes := map[string]bool{"random": true, "derived": true}
	if !validNonceModes[c.Scan.NonceMode] {
		return fmt.Errorf("invalid scan.nonce_mode %q, must be one of: random, derived", c.Scan.NonceMode)
	}

	if len(c.Scan.IncludePatterns) == 0 {
		return fmt.Errorf("scan.include_patterns cannot be empty")
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}

	if c.Performance.TimeoutSeconds <= 0 {
		return fmt.Errorf("performance.timeout_seconds must be > 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(cfg *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("scan", cfg.Scan)
	v.Set("output", cfg.Output)
	v.Set("performance", cfg.Performance)

	return v.WriteConfig()
}
