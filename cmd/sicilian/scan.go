package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ludo-technologies/sicilian/app"
	"github.com/ludo-technologies/sicilian/domain"
	"github.com/ludo-technologies/sicilian/internal/config"
	"github.com/ludo-technologies/sicilian/service"
	"github.com/spf13/cobra"
)

var (
	scanRecursive      bool
	scanFormat         string
	scanNonceMode      string
	scanInclude        []string
	scanExclude        []string
	scanMaxConcurrency int
	scanConfigPath     string
	scanNoProgress     bool
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <path...>",
		Short: "Sign every JavaScript/TypeScript file under the given paths",
		Long: `Walks the given paths, computes a structural signature for every
JavaScript/TypeScript file found, and writes a report of path -> digest.

Configuration is loaded from .sicilian.toml (or .json/.yaml variants)
near the current directory when present; CLI flags override it.

Examples:
  sicilian scan src/
  sicilian scan --format json src/ > report.json`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         runScan,
	}

	cmd.Flags().BoolVar(&scanRecursive, "recursive", true, "Recurse into subdirectories")
	cmd.Flags().StringVarP(&scanFormat, "format", "f", "", "Output format: text, json, yaml, csv")
	cmd.Flags().StringVar(&scanNonceMode, "nonce-mode", "", "Parameter nonce mode: random, derived")
	cmd.Flags().StringSliceVar(&scanInclude, "include", nil, "Glob patterns to include")
	cmd.Flags().StringSliceVar(&scanExclude, "exclude", nil, "Glob patterns to exclude")
	cmd.Flags().IntVarP(&scanMaxConcurrency, "max-concurrency", "j", 0, "Maximum concurrent file signings")
	cmd.Flags().StringVarP(&scanConfigPath, "config", "c", "", "Path to config file")
	cmd.Flags().BoolVar(&scanNoProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	report, format, err := executeScan(cmd, args)
	if err != nil {
		return err
	}
	return writeScanReport(report, format)
}

// executeScan loads configuration, merges it with CLI flags, and runs
// ScanUseCase. It is shared by runScan and runCompare so both commands
// apply the same configuration/merge precedence.
func executeScan(cmd *cobra.Command, args []string) (*domain.SignatureReport, domain.OutputFormat, error) {
	loader := service.NewConfigurationLoader()

	base := loader.LoadDefaultConfig()
	if scanConfigPath != "" {
		loaded, err := loader.LoadConfig(scanConfigPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load configuration: %w", err)
		}
		base = loaded
	}

	override := &domain.SignatureRequest{
		Paths:           args,
		Format:          domain.OutputFormat(scanFormat),
		NonceMode:       domain.NonceMode(scanNonceMode),
		IncludePatterns: scanInclude,
		ExcludePatterns: scanExclude,
		MaxConcurrency:  scanMaxConcurrency,
	}
	req := loader.MergeConfig(base, override)
	req.Paths = args
	req.Recursive = scanRecursive

	if err := loader.ValidateConfig(req); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}

	pm := service.NewProgressManager(!scanNoProgress)
	executor := service.NewParallelExecutorWithProgress(&config.PerformanceConfig{
		MaxGoroutines:  req.MaxConcurrency,
		TimeoutSeconds: config.DefaultTimeoutSeconds,
	}, pm)

	uc := app.NewScanUseCase(executor, pm)
	report, err := uc.Execute(context.Background(), app.ScanConfig{
		NonceMode:       req.NonceMode,
		Format:          req.Format,
		Recursive:       req.Recursive,
		IncludePatterns: req.IncludePatterns,
		ExcludePatterns: req.ExcludePatterns,
		MaxConcurrency:  req.MaxConcurrency,
		EnableProgress:  !scanNoProgress,
	}, req.Paths)
	if err != nil {
		return nil, "", err
	}

	return report, req.Format, nil
}

func writeScanReport(report *domain.SignatureReport, format domain.OutputFormat) error {
	formatter := service.NewOutputFormatter()
	return formatter.FormatScan(os.Stdout, *report, format)
}
