package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ludo-technologies/sicilian/engine"
	"github.com/spf13/cobra"
)

// signCmd implements a literal stdin-to-digest contract: no flags, no
// env vars, exit 0 on success and non-zero on parse/IO failure.
func signCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign",
		Short: "Print the structural signature of a program read from stdin",
		Long: `Reads a UTF-8 JavaScript program from stdin and prints its 64-character
structural signature to stdout. Invariant to identifier renaming and
object-literal property reordering.

Example:
  sicilian sign < script.js
  sicilian < script.js`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runSign(in io.Reader, out io.Writer) error {
	source, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	digest, err := engine.Sign(context.Background(), source, engine.Options{Filename: "<stdin>"})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, digest)
	return err
}

// runAsSignWhenPiped implements the root command's default action: a
// bare `sicilian` invocation with stdin piped and no subcommand behaves
// exactly like `sicilian sign`, matching the original `sicilian.py < script.js`
// invocation shape.
func runAsSignWhenPiped() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) == 0
}
