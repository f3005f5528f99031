// Package cli provides the command-line interface for Tessera.
package cli

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tessera/internal/version"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	verbose bool
	quiet   bool
	logger  hclog.Logger
}

// NewRootCmd builds the tessera command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "tessera",
		Short: "Turn images into paintable mosaic tile matrices",
		Long: `Tessera converts an image into a grid of square tiles for a physical mosaic.

Each tile gets its RGB, CMYK, HSL and hex values plus a recipe for mixing it
from five base paints (cyan, magenta, yellow, black and white). The palette
can optionally be reduced with median cut so fewer distinct paints are needed.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose && opts.quiet {
				return fmt.Errorf("--verbose and --quiet cannot be used together")
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose, opts.quiet)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newGenerateCmd(opts),
		newInventoryCmd(opts),
		newInspectCmd(opts),
		newPaletteCmd(opts),
		newPigmentsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// newLogger returns the process logger: Debug when verbose, Error when quiet, Info otherwise.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "tessera",
		Output: w,
		Level:  level,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
