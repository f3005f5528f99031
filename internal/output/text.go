// Package output serialises annotated tile matrices as text, JSON and PNG previews.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/tessera/internal/colour"
)

// WriteText writes m as one line per row with a header listing the base
// pigments to purchase. Each tile is written as
// R,G,B[C:c%,M:m%,Y:y%,K:k%] #HEX {Mix: ...}.
func WriteText(w io.Writer, m *colour.AnnotatedMatrix, pigments []colour.PigmentSwatch) error {
	if m == nil {
		return fmt.Errorf("%w: matrix cannot be nil", colour.ErrInvalidArgument)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# RGB Colour Matrix with Paint Mixing Instructions")
	fmt.Fprintf(bw, "# Matrix dimensions: %d rows x %d columns\n", m.Rows, m.Cols)
	fmt.Fprintln(bw, "# Format: R,G,B[CMYK] #HEX {mix_instruction}")
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "# BASE COLOURS TO PURCHASE:")
	for _, p := range pigments {
		fmt.Fprintf(bw, "# - %s: RGB[%d, %d, %d] %s CMYK(%.1f%%,%.1f%%,%.1f%%,%.1f%%)\n",
			strings.ToUpper(p.Name), p.RGB.R, p.RGB.G, p.RGB.B, p.Hex,
			p.CMYK.C, p.CMYK.M, p.CMYK.Y, p.CMYK.K)
	}
	fmt.Fprintln(bw)

	for i, row := range m.Cells {
		fmt.Fprintf(bw, "# Row %d\n", i+1)
		for j, cell := range row {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(FormatCell(cell))
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write text matrix: %w", err)
	}
	return nil
}

// FormatCell renders a single tile in the text matrix format.
func FormatCell(cell colour.AnnotatedCell) string {
	c := cell.Colour
	return fmt.Sprintf("%d,%d,%d[%s] %s {%s}", c.R, c.G, c.B, cell.CMYK, cell.Hex, cell.Mix.Instruction())
}
