package image

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"
	"github.com/nfnt/resize"

	"github.com/jmylchreest/tessera/internal/colour"
)

// MatrixOptions controls how an image is sampled into tiles.
type MatrixOptions struct {
	// Blur is the Gaussian sigma applied before resampling. Zero disables it.
	Blur float32
}

// ToMatrix samples img into a rows x cols grid of colours. Each tile is the
// Lanczos-resampled colour of the area it covers, truncated to 8 bits.
func ToMatrix(img image.Image, rows, cols int, opts MatrixOptions) (colour.Matrix, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image cannot be nil", colour.ErrInvalidArgument)
	}
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: matrix must be at least 1x1, got %dx%d", colour.ErrInvalidArgument, rows, cols)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", colour.ErrInvalidArgument)
	}
	if opts.Blur < 0 {
		return nil, fmt.Errorf("%w: blur sigma must not be negative, got %g", colour.ErrInvalidArgument, opts.Blur)
	}

	src := img
	if opts.Blur > 0 {
		g := gift.New(gift.GaussianBlur(opts.Blur))
		blurred := image.NewRGBA(g.Bounds(img.Bounds()))
		g.Draw(blurred, img)
		src = blurred
	}

	resized := resize.Resize(uint(cols), uint(rows), src, resize.Lanczos3) // #nosec G115 - validated positive above
	bounds := resized.Bounds()

	m := make(colour.Matrix, rows)
	for y := range rows {
		m[y] = make([]colour.RGB, cols)
		for x := range cols {
			m[y][x] = colour.ToRGB(resized.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return m, nil
}
