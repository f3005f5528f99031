package output

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/tessera/internal/colour"
)

// DefaultPreviewScale is the edge length in pixels of one tile in the preview.
const DefaultPreviewScale = 10

// RenderPreview draws m with each tile as a scale x scale block.
func RenderPreview(m colour.Matrix, scale int) (*image.RGBA, error) {
	rows, cols, err := m.Dims()
	if err != nil {
		return nil, err
	}
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: cannot render an empty matrix", colour.ErrInvalidArgument)
	}
	if scale < 1 {
		return nil, fmt.Errorf("%w: preview scale must be at least 1, got %d", colour.ErrInvalidArgument, scale)
	}

	small := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y, row := range m {
		for x, c := range row {
			small.SetRGBA(x, y, c.RGBA())
		}
	}
	if scale == 1 {
		return small, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols*scale, rows*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)
	return dst, nil
}

// WritePreview encodes the rendered preview of m as PNG.
func WritePreview(w io.Writer, m colour.Matrix, scale int) error {
	img, err := RenderPreview(m, scale)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}
