package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tessera/internal/colour"
	"github.com/jmylchreest/tessera/internal/compression"
	"github.com/jmylchreest/tessera/internal/output"
)

func newInspectCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <matrix.json[.xz|.gz]>",
		Short: "Show the paint inventory of a generated JSON matrix",
		Long: `Inspect reads a JSON matrix written by generate, optionally compressed with
xz or gzip, and prints its grid and paint inventory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := readSummaryFile(args[0])
			if err != nil {
				return err
			}
			ro.logger.Debug("read matrix summary", "path", args[0], "paints", len(summary.Inventory))

			out := cmd.OutOrStdout()
			printSummaryHeader(out, summary)
			f, _ := out.(*os.File)
			fmt.Fprint(out, renderInventory(summary.Inventory, colour.SupportsANSIColours(f)))
			return nil
		},
	}
}

func readSummaryFile(path string) (*output.Summary, error) {
	file, err := os.Open(path) // #nosec G304 - user-specified matrix file
	if err != nil {
		return nil, fmt.Errorf("failed to open matrix: %w", err)
	}
	defer file.Close()

	r, err := compression.NewReader(file, compression.DetectCodec(path))
	if err != nil {
		return nil, err
	}
	return output.ReadSummary(r)
}

func printSummaryHeader(w io.Writer, s *output.Summary) {
	if s.Source != "" {
		fmt.Fprintf(w, "Source:  %s\n", s.Source)
	}
	fmt.Fprintf(w, "Grid:    %d rows x %d columns\n", s.Dimensions.Rows, s.Dimensions.Columns)
	if s.Layout != nil {
		fmt.Fprintf(w, "Size:    %.1fcm x %.1fcm (%gcm tiles)\n", s.Layout.TiledWidth(), s.Layout.TiledHeight(), s.Layout.TileSize)
	}
	if len(s.Palette) > 0 {
		fmt.Fprintf(w, "Palette: %d colours\n", len(s.Palette))
	}
	fmt.Fprintln(w)
}
