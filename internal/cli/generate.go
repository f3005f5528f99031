package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tessera/internal/compression"
	"github.com/jmylchreest/tessera/internal/config"
	"github.com/jmylchreest/tessera/internal/output"
)

func newGenerateCmd(ro *rootOptions) *cobra.Command {
	var (
		mf matrixFlags
		of outputFlags
	)

	cmd := &cobra.Command{
		Use:   "generate [image|directory|url]",
		Short: "Generate a tile matrix with paint mixing instructions",
		Long: `Generate samples an image into a grid of square tiles and writes, for every
tile, its colour values and a CMYK+white mixing recipe.

The argument can be an image file, a directory (the first image in it is
used) or an http(s) URL. Without an argument the "input" directory is used
and created if it does not exist yet.

Output files are named <stem>-<timestamp>_matrix.txt, <stem>-<timestamp>_matrix.json
and <stem>-<timestamp>.png inside the output directory.`,
		Example: `  # 60x40cm mosaic from 2cm tiles
  tessera generate photo.jpg --width 60 --height 40

  # Limit the mosaic to 24 paints and write only JSON
  tessera generate photo.jpg --width 60 --height 40 --colours 24 --format json

  # Keep the exact size even if the image gets distorted
  tessera generate photo.jpg --width 50 --height 50 --no-aspect`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := config.DefaultInputDir
			if len(args) == 1 {
				source = args[0]
			} else {
				created, err := ensureInputDir(source)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "Created %q directory. Place an image in it and run again.\n", source)
					return nil
				}
			}

			cfg, err := config.NewBuilder().WithEnv().Build()
			if err != nil {
				return err
			}
			mf.apply(cmd.Flags(), &cfg)
			of.apply(cmd.Flags(), &cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			width, height, err := newDimensionPrompter(cmd).resolve(mf.width, mf.height)
			if err != nil {
				return err
			}

			p, err := process(cmd.Context(), ro.logger, source, width, height, cfg)
			if err != nil {
				return err
			}

			formats, err := output.ParseFormats(cfg.Formats)
			if err != nil {
				return err
			}
			codec, err := compression.ParseCodec(cfg.Compression)
			if err != nil {
				return err
			}
			w := &output.Writer{
				Dir:          cfg.OutputDir,
				Formats:      formats,
				Codec:        codec,
				PreviewScale: cfg.PreviewScale,
				Logger:       ro.logger,
			}
			written, err := w.Write(output.Job{Source: p.source, Result: p.result, Plan: &p.plan})
			if err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}

			if !ro.quiet {
				printGenerateSummary(cmd.OutOrStdout(), p, written)
			}
			return nil
		},
	}

	mf.register(cmd.Flags())
	of.register(cmd.Flags())
	return cmd
}

// ensureInputDir creates dir when it does not exist and reports whether it did.
func ensureInputDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return false, fmt.Errorf("%s is not a directory", dir)
		}
		return false, nil
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - input directory is user-visible
			return false, fmt.Errorf("failed to create input directory: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("failed to access input directory: %w", err)
	}
}

func printGenerateSummary(w io.Writer, p *processed, written []string) {
	plan := p.plan
	fmt.Fprintf(w, "Source:      %s (%dx%d px)\n", p.source, p.width, p.height)
	fmt.Fprintf(w, "Grid:        %d rows x %d columns (%d tiles of %gcm)\n", plan.Rows, plan.Cols, plan.Tiles(), plan.TileSize)
	fmt.Fprintf(w, "Output size: %.1fcm x %.1fcm\n", plan.TiledWidth(), plan.TiledHeight())
	if plan.Adjusted() {
		fmt.Fprintf(w, "Note:        requested %gcm x %gcm, adjusted to %.1fcm x %.1fcm to keep the aspect ratio\n",
			plan.RequestedWidth, plan.RequestedHeight, plan.Width, plan.Height)
	}
	if p.result.Palette != nil {
		fmt.Fprintf(w, "Palette:     %d colours\n", p.result.Palette.Len())
	}
	fmt.Fprintf(w, "Paints:      %d distinct colours\n", len(p.result.Inventory))
	fmt.Fprintln(w)
	for _, path := range written {
		fmt.Fprintf(w, "Wrote %s\n", path)
	}
}
