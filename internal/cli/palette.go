package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tessera/internal/colour"
	"github.com/jmylchreest/tessera/internal/image"
	httputil "github.com/jmylchreest/tessera/internal/util/http"
)

func newPaletteCmd(ro *rootOptions) *cobra.Command {
	var (
		count     int
		algorithm string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "palette <image|directory|url>",
		Short: "Extract a palette from the whole image",
		Long: `Palette runs median cut over every pixel of the image, before any tiling,
and prints the resulting colours. Use it to judge how many paints an image
needs before running generate with --colours.`,
		Example: `  tessera palette photo.jpg --colours 12
  tessera palette photo.jpg --format hex`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec := colour.ExtractorConfig{Algorithm: colour.Algorithm(algorithm), ColourCount: count}
			if err := ec.Validate(); err != nil {
				return err
			}
			switch format {
			case listFormatTable, listFormatJSON, "hex":
			default:
				return fmt.Errorf("invalid format %q (valid formats: table, json, hex)", format)
			}

			path, err := image.ResolveImagePath(args[0])
			if err != nil {
				return fmt.Errorf("failed to resolve image: %w", err)
			}
			if err := image.ValidateImagePath(path); err != nil {
				return fmt.Errorf("invalid image path: %w", err)
			}
			img, err := image.NewSmartLoader(httputil.FetchOptions{}).Load(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("failed to load image: %w", err)
			}

			extractor, err := colour.NewExtractor(ec.Algorithm, ro.logger)
			if err != nil {
				return err
			}
			palette, err := extractor.Extract(img, ec.ColourCount)
			if err != nil {
				return fmt.Errorf("failed to extract palette: %w", err)
			}

			out := cmd.OutOrStdout()
			switch format {
			case listFormatJSON:
				data, err := palette.ToJSON()
				if err != nil {
					return fmt.Errorf("failed to encode palette: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "hex":
				fmt.Fprintln(out, strings.Join(palette.ToHex(), "\n"))
			default:
				f, _ := out.(*os.File)
				fmt.Fprint(out, renderPalette(palette, colour.SupportsANSIColours(f)))
			}
			return nil
		},
	}

	defaults := colour.DefaultExtractorConfig()
	cmd.Flags().IntVarP(&count, "colours", "c", defaults.ColourCount, "number of colours to extract (1-256)")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", string(defaults.Algorithm), fmt.Sprintf("extraction algorithm %v", colour.ValidAlgorithms()))
	cmd.Flags().StringVar(&format, "format", listFormatTable, "output format (table, json, hex)")
	return cmd
}

func renderPalette(p *colour.Palette, swatches bool) string {
	table := NewTable([]string{"#", "HEX", "RGB", "HSL", "MIX"})
	table.SetColumnAlignRight(0)
	for i, c := range p.All() {
		hex := c.Hex()
		if swatches {
			hex = colour.FormatColourWithPreview(c, 4)
		}
		hsl := colour.RGBToHSL(c)
		table.AddRow([]string{
			fmt.Sprintf("%d", i+1),
			hex,
			fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B),
			fmt.Sprintf("%.1f,%.1f%%,%.1f%%", hsl.H, hsl.S, hsl.L),
			colour.Mix(c).Instruction(),
		})
	}
	return table.Render()
}
