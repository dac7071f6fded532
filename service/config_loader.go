package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/sicilian/domain"
	"github.com/ludo-technologies/sicilian/internal/config"
)

// ConfigurationLoaderImpl loads `.sicilian.toml`-style configuration and
// converts it to a domain.SignatureRequest.
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service.
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path.
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.SignatureRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration file: %w", err)
	}
	return c.convertToSignatureRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration, discovering a
// config file near the current directory first.
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.SignatureRequest {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err == nil {
		return c.convertToSignatureRequest(cfg)
	}
	return c.convertToSignatureRequest(config.DefaultConfig())
}

// FindDefaultConfigFile searches for a default configuration file,
// walking from the current directory up to the filesystem root.
func (c *ConfigurationLoaderImpl) FindDefaultConfigFile() string {
	configFiles := []string{
		"sicilian.toml",
		".sicilian.toml",
		"sicilian.yaml",
		"sicilian.yml",
		".sicilian.yml",
		"sicilian.json",
		".sicilian.json",
	}

	for _, file := range configFiles {
		if _, err := os.Stat(file); err == nil {
			return file
		}
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, file := range configFiles {
			configPath := filepath.Join(currentDir, file)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// MergeConfig merges CLI flags (override) with a loaded configuration
// (base). Only values that differ from their known zero-value default
// are taken from override.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.SignatureRequest, override *domain.SignatureRequest) *domain.SignatureRequest {
	merged := *base

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.Format != "" {
		merged.Format = override.Format
	}
	if override.NonceMode != "" {
		merged.NonceMode = override.NonceMode
	}
	if override.MaxConcurrency > 0 {
		merged.MaxConcurrency = override.MaxConcurrency
	}
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}

	return &merged
}

// convertToSignatureRequest converts a loaded config.Config to a
// domain.SignatureRequest. Paths are always supplied by the caller
// (command-line arguments), never read from config.
func (c *ConfigurationLoaderImpl) convertToSignatureRequest(cfg *config.Config) *domain.SignatureRequest {
	return &domain.SignatureRequest{
		Paths:           []string{},
		Recursive:       cfg.Scan.Recursive,
		IncludePatterns: cfg.Scan.IncludePatterns,
		ExcludePatterns: cfg.Scan.ExcludePatterns,
		NonceMode:       domain.NonceMode(cfg.Scan.NonceMode),
		Format:          domain.OutputFormat(cfg.Output.Format),
		MaxConcurrency:  cfg.Performance.MaxGoroutines,
	}
}

// ValidateConfig validates a signature request's configuration-derived fields.
func (c *ConfigurationLoaderImpl) ValidateConfig(req *domain.SignatureRequest) error {
	validFormats := map[domain.OutputFormat]bool{
		domain.FormatText: true, domain.FormatJSON: true, domain.FormatYAML: true, domain.FormatCSV: true,
	}
	if !validFormats[req.Format] {
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml, csv)", req.Format)
	}

	validNonceModes := map[domain.NonceMode]bool{domain.NonceModeRandom: true, domain.NonceModeDerived: true}
	if !validNonceModes[req.NonceMode] {
		return fmt.Errorf("invalid nonce mode: %s (must be one of: random, derived)", req.NonceMode)
	}

	if req.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency cannot be negative, got %d", req.MaxConcurrency)
	}

	return nil
}
