package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tessera/internal/colour"
	"github.com/jmylchreest/tessera/internal/config"
)

const (
	listFormatTable = "table"
	listFormatJSON  = "json"
)

func newInventoryCmd(ro *rootOptions) *cobra.Command {
	var (
		mf     matrixFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "inventory <image|directory|url>",
		Short: "List the paints needed for an image without writing files",
		Long: `Inventory runs the same tiling as generate and prints every distinct paint
colour, its mixing recipe and how many tiles use it, most used first.`,
		Example: `  tessera inventory photo.jpg --width 60 --height 40 --colours 16
  tessera inventory photo.jpg --width 60 --height 40 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != listFormatTable && format != listFormatJSON {
				return fmt.Errorf("invalid format %q (valid formats: %s, %s)", format, listFormatTable, listFormatJSON)
			}

			cfg, err := config.NewBuilder().WithEnv().Build()
			if err != nil {
				return err
			}
			mf.apply(cmd.Flags(), &cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			width, height, err := newDimensionPrompter(cmd).resolve(mf.width, mf.height)
			if err != nil {
				return err
			}

			p, err := process(cmd.Context(), ro.logger, args[0], width, height, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == listFormatJSON {
				return writeInventoryJSON(out, p.result.Inventory)
			}
			f, _ := out.(*os.File)
			fmt.Fprint(out, renderInventory(p.result.Inventory, colour.SupportsANSIColours(f)))
			return nil
		},
	}

	mf.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", listFormatTable, "output format (table, json)")
	return cmd
}

type inventoryReport struct {
	Stats     colour.InventoryStats `json:"stats"`
	Inventory []colour.PaintEntry   `json:"inventory"`
}

func writeInventoryJSON(w io.Writer, entries []colour.PaintEntry) error {
	if entries == nil {
		entries = []colour.PaintEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(inventoryReport{Stats: colour.Stats(entries), Inventory: entries}); err != nil {
		return fmt.Errorf("failed to encode inventory: %w", err)
	}
	return nil
}

// renderInventory formats entries as a table followed by a totals line.
// With swatches the hex column carries a coloured block.
func renderInventory(entries []colour.PaintEntry, swatches bool) string {
	table := NewTable([]string{"#", "HEX", "RGB", "CMYK", "MIX", "TILES", "SHARE"})
	table.SetColumnAlignRight(0)
	table.SetColumnAlignRight(5)
	table.SetColumnAlignRight(6)
	table.SetColumnMaxWidth(4, 48)

	stats := colour.Stats(entries)
	for i, e := range entries {
		share := 0.0
		if stats.TotalTiles > 0 {
			share = float64(e.Count) * 100 / float64(stats.TotalTiles)
		}
		hex := e.Hex
		if swatches {
			hex = colour.FormatColourWithPreview(e.Colour, 4)
		}
		table.AddRow([]string{
			strconv.Itoa(i + 1),
			hex,
			fmt.Sprintf("%d,%d,%d", e.RGB[0], e.RGB[1], e.RGB[2]),
			fmt.Sprintf("%.1f,%.1f,%.1f,%.1f", e.CMYK.C, e.CMYK.M, e.CMYK.Y, e.CMYK.K),
			colour.Mix(e.Colour).Instruction(),
			strconv.Itoa(e.Count),
			fmt.Sprintf("%.1f%%", share),
		})
	}

	return table.Render() + fmt.Sprintf("\n%d distinct paints, %d tiles\n", stats.UniqueColours, stats.TotalTiles)
}
