package colour

import (
	"encoding/json"
	"fmt"
	"strings"
)

// linearScanLimit is the palette size up to which Nearest scans instead of using the KD-tree.
const linearScanLimit = 16

// Palette is an ordered, immutable set of representative colours.
// Order is creation order, which is also the tie-break order for Nearest.
type Palette struct {
	colours []RGB
	index   map[RGB]int
	tree    *colourNode
}

// NewPalette creates a Palette from the given colours, dropping exact duplicates
// while keeping first-seen order.
func NewPalette(colours []RGB) *Palette {
	p := &Palette{
		colours: make([]RGB, 0, len(colours)),
		index:   make(map[RGB]int, len(colours)),
	}
	for _, c := range colours {
		if _, ok := p.index[c]; ok {
			continue
		}
		p.index[c] = len(p.colours)
		p.colours = append(p.colours, c)
	}
	if len(p.colours) > linearScanLimit {
		p.tree = buildKDTree(p.colours)
	}
	return p
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.colours)
}

// Colours returns a copy of the palette colours in creation order.
func (p *Palette) Colours() []RGB {
	out := make([]RGB, len(p.colours))
	copy(out, p.colours)
	return out
}

// Contains reports whether c is exactly one of the palette colours.
func (p *Palette) Contains(c RGB) bool {
	_, ok := p.index[c]
	return ok
}

// Get returns the colour at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (RGB, error) {
	if index < 0 || index >= len(p.colours) {
		return RGB{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.colours))
	}
	return p.colours[index], nil
}

// All returns an iterator over all colours in the palette.
func (p *Palette) All() func(func(int, RGB) bool) {
	return func(yield func(int, RGB) bool) {
		for i, c := range p.colours {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Nearest returns the palette colour with the smallest Euclidean RGB distance to c.
// Ties go to the entry created first. The palette must not be empty.
func (p *Palette) Nearest(c RGB) RGB {
	if i, ok := p.index[c]; ok {
		return p.colours[i]
	}
	if p.tree != nil {
		return p.colours[p.tree.nearest(c)]
	}
	return p.colours[nearestLinear(p.colours, c)]
}

// nearestLinear scans every colour and returns the index of the closest one.
func nearestLinear(colours []RGB, c RGB) int {
	best, bestDist := 0, int(^uint(0)>>1)
	for i, pc := range colours {
		if d := distSq(pc, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// distSq is the squared Euclidean distance, which orders identically to the distance itself.
func distSq(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColours := make([]string, len(p.colours))
	for i, c := range p.colours {
		hexColours[i] = c.Hex()
	}
	return hexColours
}

// ColourJSON represents a colour in JSON output format.
type ColourJSON struct {
	Hex string `json:"hex"`
	RGB RGB    `json:"rgb"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count   int          `json:"count"`
	Colours []ColourJSON `json:"colours"`
}

// JSON returns the serialisable form of the palette.
func (p *Palette) JSON() PaletteJSON {
	colours := make([]ColourJSON, len(p.colours))
	for i, c := range p.colours {
		colours[i] = ColourJSON{Hex: c.Hex(), RGB: c}
	}
	return PaletteJSON{Count: len(colours), Colours: colours}
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.JSON(), "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.colours) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p.colours))
	for i, c := range p.colours {
		fmt.Fprintf(&sb, "  %2d: %s (%s)\n", i+1, c.Hex(), c.String())
	}
	return sb.String()
}
