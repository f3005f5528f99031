package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tessera/internal/colour"
)

func newPigmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pigments",
		Short: "List the base paints every mix is made from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			f, _ := out.(*os.File)
			fmt.Fprint(out, renderPigments(colour.Pigments(), colour.SupportsANSIColours(f)))
			return nil
		},
	}
}

func renderPigments(pigments []colour.PigmentSwatch, swatches bool) string {
	table := NewTable([]string{"PIGMENT", "HEX", "RGB", "CMYK"})
	for _, p := range pigments {
		name := p.Name
		if swatches {
			name = colour.ColourPreviewWithText(p.RGB, p.Name, 9)
		}
		table.AddRow([]string{
			name,
			p.Hex,
			fmt.Sprintf("%d,%d,%d", p.RGB.R, p.RGB.G, p.RGB.B),
			fmt.Sprintf("%.1f,%.1f,%.1f,%.1f", p.CMYK.C, p.CMYK.M, p.CMYK.Y, p.CMYK.K),
		})
	}
	return table.Render()
}
