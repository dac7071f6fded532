package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/sicilian/internal/constants"
	"github.com/ludo-technologies/sicilian/internal/version"
	"github.com/spf13/cobra"
)

var Version = version.Version

func main() {
	rootCmd := &cobra.Command{
		Use:   constants.ToolName,
		Short: "sicilian - structural signatures for JavaScript/TypeScript",
		Long: `sicilian computes a structural signature for JavaScript and TypeScript
source: a digest invariant to identifier renaming and object-literal
property reordering, used to fingerprint and compare code shape rather
than text.`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && runAsSignWhenPiped() {
				return runSign(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*ExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ExitError carries a specific process exit code through cobra's error
// return path, for CI-friendly exit codes (nonzero when compare finds
// duplicates).
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("sicilian version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
