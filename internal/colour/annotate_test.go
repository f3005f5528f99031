package colour

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func uniformMatrix(c RGB, rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]RGB, cols)
		for j := range m[i] {
			m[i][j] = c
		}
	}
	return m
}

// spreadMatrix fills a rows x cols grid with colours that are all distinct.
func spreadMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]RGB, cols)
		for j := range m[i] {
			n := i*cols + j
			m[i][j] = RGB{R: uint8((37 * n) % 256), G: uint8((91 * n) % 256), B: uint8((53 * n) % 256)}
		}
	}
	return m
}

func TestAnnotateUniform(t *testing.T) {
	c := RGB{R: 10, G: 20, B: 30}
	res, err := NewAnnotator().Annotate(uniformMatrix(c, 5, 10), AnnotateConfig{})
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}

	if res.Palette != nil {
		t.Errorf("Annotate() palette = %v, want nil without quantization", res.Palette)
	}
	if res.Matrix.Rows != 5 || res.Matrix.Cols != 10 {
		t.Errorf("Annotate() dims = %dx%d, want 5x10", res.Matrix.Rows, res.Matrix.Cols)
	}
	if len(res.Inventory) != 1 {
		t.Fatalf("Annotate() inventory has %d entries, want 1", len(res.Inventory))
	}
	if got := res.Inventory[0]; got.Count != 50 || got.Hex != "#0A141E" {
		t.Errorf("Annotate() inventory entry = %+v, want count 50 hex #0A141E", got)
	}

	cell := res.Matrix.Cells[2][3]
	if cell.Hex != "#0A141E" || cell.CMYK != RGBToCMYK(c) || cell.Mix != Mix(c) {
		t.Errorf("Annotate() cell = %+v, want fields derived from %v", cell, c)
	}
}

func TestAnnotateQuantizesToPalette(t *testing.T) {
	raw := spreadMatrix(10, 20)
	if n := len(WeightedColours(raw)); n != 200 {
		t.Fatalf("spreadMatrix produced %d distinct colours, want 200", n)
	}

	res, err := NewAnnotator().Annotate(raw, AnnotateConfig{Quantize: true, TargetSize: 64})
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	if res.Palette.Len() != 64 {
		t.Errorf("Annotate() palette length = %d, want 64", res.Palette.Len())
	}

	for i, row := range res.Matrix.Cells {
		for j, cell := range row {
			if !res.Palette.Contains(cell.Colour) {
				t.Fatalf("cell (%d, %d) = %v is not in the palette", i, j, cell.Colour)
			}
			if want := res.Palette.Nearest(raw[i][j]); cell.Colour != want {
				t.Fatalf("cell (%d, %d) = %v, want nearest palette colour %v", i, j, cell.Colour, want)
			}
		}
	}

	if len(res.Inventory) > 64 {
		t.Errorf("Annotate() inventory has %d entries, want at most 64", len(res.Inventory))
	}
	if got := Stats(res.Inventory).TotalTiles; got != 200 {
		t.Errorf("inventory total = %d, want 200", got)
	}
}

func TestAnnotateFewColoursUnchanged(t *testing.T) {
	raw := spreadMatrix(2, 5)

	res, err := NewAnnotator().Annotate(raw, AnnotateConfig{Quantize: true, TargetSize: 64})
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	if res.Palette.Len() != 10 {
		t.Errorf("Annotate() palette length = %d, want 10", res.Palette.Len())
	}
	if diff := cmp.Diff(raw, res.Matrix.Colours()); diff != "" {
		t.Errorf("Annotate() changed colours (-want +got):\n%s", diff)
	}
}

func TestAnnotateInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  Matrix
		cfg  AnnotateConfig
	}{
		{
			name: "ragged rows",
			raw:  Matrix{{{R: 1}, {R: 2}}, {{R: 3}}},
		},
		{
			name: "zero palette size",
			raw:  uniformMatrix(RGB{R: 1}, 2, 2),
			cfg:  AnnotateConfig{Quantize: true, TargetSize: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAnnotator().Annotate(tt.raw, tt.cfg); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Annotate() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestAnnotateEmpty(t *testing.T) {
	res, err := NewAnnotator().Annotate(Matrix{}, AnnotateConfig{})
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	if res.Matrix.Rows != 0 || len(res.Inventory) != 0 {
		t.Errorf("Annotate() on empty matrix = %+v, want empty result", res)
	}

	if _, err := NewAnnotator().Annotate(Matrix{}, AnnotateConfig{Quantize: true, TargetSize: 4}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Annotate() quantizing empty matrix error = %v, want ErrInvalidArgument", err)
	}
}

func TestAnnotateWorkersMatchSequential(t *testing.T) {
	raw := spreadMatrix(30, 17)
	cfg := AnnotateConfig{Quantize: true, TargetSize: 16}

	seq, err := NewAnnotator().Annotate(raw, cfg)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	par, err := NewAnnotator(WithWorkers(4)).Annotate(raw, cfg)
	if err != nil {
		t.Fatalf("Annotate() with workers error = %v", err)
	}

	if diff := cmp.Diff(seq.Matrix, par.Matrix); diff != "" {
		t.Errorf("parallel matrix mismatch (-sequential +parallel):\n%s", diff)
	}
	if diff := cmp.Diff(seq.Inventory, par.Inventory); diff != "" {
		t.Errorf("parallel inventory mismatch (-sequential +parallel):\n%s", diff)
	}
}
