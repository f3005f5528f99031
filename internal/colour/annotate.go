package colour

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// DefaultTargetSize is the palette size used when quantization is requested without one.
const DefaultTargetSize = 32

// Matrix is a rows x columns grid of colours, one per tile.
type Matrix [][]RGB

// Dims returns the number of rows and columns. Ragged matrices are an error.
func (m Matrix) Dims() (rows, cols int, err error) {
	rows = len(m)
	if rows == 0 {
		return 0, 0, nil
	}
	cols = len(m[0])
	for i, row := range m {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidArgument, i, len(row), cols)
		}
	}
	return rows, cols, nil
}

// AnnotatedCell is a tile colour together with its derived colour-model values and mix.
type AnnotatedCell struct {
	Colour RGB        `json:"-"`
	RGB    [3]uint8   `json:"rgb"`
	Hex    string     `json:"hex"`
	CMYK   CMYK       `json:"cmyk"`
	HSL    HSL        `json:"hsl"`
	Mix    PigmentMix `json:"mix"`
}

// AnnotateColour computes every derived field for c.
func AnnotateColour(c RGB) AnnotatedCell {
	return AnnotatedCell{
		Colour: c,
		RGB:    c.Triplet(),
		Hex:    c.Hex(),
		CMYK:   RGBToCMYK(c),
		HSL:    RGBToHSL(c),
		Mix:    Mix(c),
	}
}

// AnnotatedMatrix has the same shape as the raw matrix it was built from.
type AnnotatedMatrix struct {
	Rows  int
	Cols  int
	Cells [][]AnnotatedCell
}

// Colours returns the final tile colours as a Matrix.
func (m *AnnotatedMatrix) Colours() Matrix {
	out := make(Matrix, len(m.Cells))
	for i, row := range m.Cells {
		out[i] = make([]RGB, len(row))
		for j, cell := range row {
			out[i][j] = cell.Colour
		}
	}
	return out
}

// AnnotateConfig selects whether the matrix is quantized and to how many colours.
type AnnotateConfig struct {
	Quantize   bool
	TargetSize int
}

// Result is everything produced for one matrix.
// Palette is nil when quantization was not requested.
type Result struct {
	Matrix    *AnnotatedMatrix
	Palette   *Palette
	Inventory []PaintEntry
}

// Annotator turns raw tile matrices into annotated matrices and paint inventories.
// It holds no per-call state and is safe for concurrent use.
type Annotator struct {
	logger  hclog.Logger
	workers int
}

// AnnotatorOption configures an Annotator.
type AnnotatorOption func(*Annotator)

// WithLogger sets the logger used for debug output.
func WithLogger(logger hclog.Logger) AnnotatorOption {
	return func(a *Annotator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithWorkers annotates rows on n goroutines. Values below 2 run sequentially.
func WithWorkers(n int) AnnotatorOption {
	return func(a *Annotator) {
		a.workers = n
	}
}

// NewAnnotator creates an Annotator.
func NewAnnotator(opts ...AnnotatorOption) *Annotator {
	a := &Annotator{
		logger:  hclog.NewNullLogger(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Annotate maps every cell of raw to its final colour, optionally through a
// median-cut palette, and annotates it. The inventory is built from the result.
func (a *Annotator) Annotate(raw Matrix, cfg AnnotateConfig) (*Result, error) {
	rows, cols, err := raw.Dims()
	if err != nil {
		return nil, err
	}

	res := &Result{}
	mapColour := func(c RGB) RGB { return c }

	if cfg.Quantize {
		if cfg.TargetSize < 1 {
			return nil, fmt.Errorf("%w: palette size must be at least 1, got %d", ErrInvalidArgument, cfg.TargetSize)
		}
		weighted := WeightedColours(raw)
		a.logger.Debug("quantizing matrix", "rows", rows, "cols", cols, "distinct", len(weighted), "target", cfg.TargetSize)

		palette, err := NewMedianCutQuantizer(a.logger).Quantize(weighted, cfg.TargetSize)
		if err != nil {
			return nil, fmt.Errorf("failed to quantize matrix: %w", err)
		}
		res.Palette = palette
		mapColour = palette.Nearest
	}

	res.Matrix = a.annotateCells(raw, rows, cols, mapColour)
	res.Inventory = BuildInventory(res.Matrix)

	a.logger.Debug("matrix annotated", "tiles", rows*cols, "paints", len(res.Inventory))
	return res, nil
}

// annotateCells builds the annotated grid. Each distinct source colour is mapped
// and annotated once, then rows are filled in parallel when configured.
func (a *Annotator) annotateCells(raw Matrix, rows, cols int, mapColour func(RGB) RGB) *AnnotatedMatrix {
	cache := make(map[RGB]AnnotatedCell)
	for _, row := range raw {
		for _, c := range row {
			if _, ok := cache[c]; !ok {
				cache[c] = AnnotateColour(mapColour(c))
			}
		}
	}

	out := &AnnotatedMatrix{Rows: rows, Cols: cols, Cells: make([][]AnnotatedCell, rows)}
	fill := func(i int) {
		cells := make([]AnnotatedCell, cols)
		for j, c := range raw[i] {
			cells[j] = cache[c]
		}
		out.Cells[i] = cells
	}

	if a.workers < 2 || rows < 2 {
		for i := range rows {
			fill(i)
		}
		return out
	}

	// The cache is read-only from here on.
	next := make(chan int)
	var wg sync.WaitGroup
	for range min(a.workers, rows) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				fill(i)
			}
		}()
	}
	for i := range rows {
		next <- i
	}
	close(next)
	wg.Wait()

	return out
}
