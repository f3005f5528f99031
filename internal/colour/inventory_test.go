package colour

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func annotatedFrom(m Matrix) *AnnotatedMatrix {
	out := &AnnotatedMatrix{Rows: len(m), Cells: make([][]AnnotatedCell, len(m))}
	for i, row := range m {
		out.Cols = len(row)
		for _, c := range row {
			out.Cells[i] = append(out.Cells[i], AnnotateColour(c))
		}
	}
	return out
}

func TestBuildInventory(t *testing.T) {
	a, b, c := RGB{R: 10}, RGB{G: 10}, RGB{B: 10}

	tests := []struct {
		name       string
		matrix     Matrix
		wantOrder  []RGB
		wantCounts []int
	}{
		{
			name:       "sorted by count",
			matrix:     Matrix{{b, a, c}, {a, c, b}, {c, c, a}},
			wantOrder:  []RGB{c, a, b},
			wantCounts: []int{4, 3, 2},
		},
		{
			name:       "ties keep first-seen order",
			matrix:     Matrix{{b, a}, {c, a}, {c, b}},
			wantOrder:  []RGB{b, a, c},
			wantCounts: []int{2, 2, 2},
		},
		{
			name:       "single colour",
			matrix:     Matrix{{a, a}, {a, a}},
			wantOrder:  []RGB{a},
			wantCounts: []int{4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := BuildInventory(annotatedFrom(tt.matrix))

			var order []RGB
			var counts []int
			for _, e := range entries {
				order = append(order, e.Colour)
				counts = append(counts, e.Count)
			}
			if diff := cmp.Diff(tt.wantOrder, order); diff != "" {
				t.Errorf("BuildInventory() order mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantCounts, counts); diff != "" {
				t.Errorf("BuildInventory() counts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildInventoryFields(t *testing.T) {
	c := RGB{R: 10, G: 20, B: 30}
	entries := BuildInventory(annotatedFrom(Matrix{{c}}))
	if len(entries) != 1 {
		t.Fatalf("BuildInventory() returned %d entries, want 1", len(entries))
	}

	want := PaintEntry{
		Colour: c,
		RGB:    [3]uint8{10, 20, 30},
		Hex:    "#0A141E",
		CMYK:   RGBToCMYK(c),
		HSL:    RGBToHSL(c),
		Count:  1,
	}
	if diff := cmp.Diff(want, entries[0]); diff != "" {
		t.Errorf("BuildInventory() entry mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildInventoryNil(t *testing.T) {
	if got := BuildInventory(nil); got != nil {
		t.Errorf("BuildInventory(nil) = %v, want nil", got)
	}
}

func TestStats(t *testing.T) {
	entries := []PaintEntry{{Count: 5}, {Count: 3}, {Count: 1}}
	want := InventoryStats{UniqueColours: 3, TotalTiles: 9}
	if got := Stats(entries); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}
