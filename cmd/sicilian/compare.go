package main

import (
	"os"

	"github.com/ludo-technologies/sicilian/domain"
	"github.com/ludo-technologies/sicilian/service"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <path...>",
		Short: "Scan and report groups of structurally identical files",
		Long: `Runs the same corpus scan as 'scan', then groups results by exact
digest equality. Exits 0 when no duplicate clusters are found, 1 when
at least one cluster exists, making it suitable for CI pipelines.

Examples:
  sicilian compare src/
  sicilian compare --format json src/`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         runCompare,
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

func runCompare(cmd *cobra.Command, args []string) error {
	report, format, err := executeScan(cmd, args)
	if err != nil {
		return err
	}

	detector := service.NewDuplicateDetector()
	clusters := detector.Detect(report.Results)
	dupReport := domain.DuplicateReport{Scan: *report, Duplicates: clusters}

	formatter := service.NewOutputFormatter()
	if err := formatter.FormatCompare(os.Stdout, dupReport, format); err != nil {
		return err
	}

	if len(clusters) > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}
