package colour

import "sort"

// PaintEntry is one distinct paint colour required by the mosaic and how many tiles use it.
type PaintEntry struct {
	Colour RGB      `json:"-"`
	RGB    [3]uint8 `json:"rgb"`
	Hex    string   `json:"hex"`
	CMYK   CMYK     `json:"cmyk"`
	HSL    HSL      `json:"hsl"`
	Count  int      `json:"count"`
}

// BuildInventory counts every tile of m by exact colour. Entries are sorted by
// count descending with ties kept in first-seen (row-major) order.
func BuildInventory(m *AnnotatedMatrix) []PaintEntry {
	if m == nil {
		return nil
	}

	index := make(map[RGB]int)
	var entries []PaintEntry
	for _, row := range m.Cells {
		for _, cell := range row {
			if i, ok := index[cell.Colour]; ok {
				entries[i].Count++
				continue
			}
			index[cell.Colour] = len(entries)
			entries = append(entries, PaintEntry{Colour: cell.Colour, Count: 1})
		}
	}

	for i := range entries {
		c := entries[i].Colour
		entries[i].RGB = c.Triplet()
		entries[i].Hex = c.Hex()
		entries[i].CMYK = RGBToCMYK(c)
		entries[i].HSL = RGBToHSL(c)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// InventoryStats summarises an inventory.
type InventoryStats struct {
	UniqueColours int `json:"unique_colours"`
	TotalTiles    int `json:"total_tiles"`
}

// Stats returns the number of distinct paints and the total tile count.
func Stats(entries []PaintEntry) InventoryStats {
	s := InventoryStats{UniqueColours: len(entries)}
	for _, e := range entries {
		s.TotalTiles += e.Count
	}
	return s
}
