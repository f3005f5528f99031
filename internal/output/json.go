package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmylchreest/tessera/internal/colour"
	"github.com/jmylchreest/tessera/internal/layout"
)

// Dimensions is the matrix shape.
type Dimensions struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Document is the JSON representation of one processed image.
type Document struct {
	Source     string                   `json:"source,omitempty"`
	Dimensions Dimensions               `json:"dimensions"`
	Layout     *layout.Plan             `json:"layout,omitempty"`
	Pigments   []colour.PigmentSwatch   `json:"pigments"`
	Palette    []string                 `json:"palette,omitempty"`
	Stats      colour.InventoryStats    `json:"stats"`
	Inventory  []colour.PaintEntry      `json:"inventory"`
	Matrix     [][]colour.AnnotatedCell `json:"matrix"`
}

// NewDocument assembles a Document from an annotation result. plan may be nil.
func NewDocument(source string, res *colour.Result, plan *layout.Plan) (*Document, error) {
	if res == nil || res.Matrix == nil {
		return nil, fmt.Errorf("%w: result has no matrix", colour.ErrInvalidArgument)
	}

	doc := &Document{
		Source:     source,
		Dimensions: Dimensions{Rows: res.Matrix.Rows, Columns: res.Matrix.Cols},
		Layout:     plan,
		Pigments:   colour.Pigments(),
		Stats:      colour.Stats(res.Inventory),
		Inventory:  res.Inventory,
		Matrix:     res.Matrix.Cells,
	}
	if res.Palette != nil {
		doc.Palette = res.Palette.ToHex()
	}
	if doc.Inventory == nil {
		doc.Inventory = []colour.PaintEntry{}
	}
	if doc.Matrix == nil {
		doc.Matrix = [][]colour.AnnotatedCell{}
	}
	return doc, nil
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON matrix: %w", err)
	}
	return nil
}

// Summary is the part of a Document that can be read back without the matrix.
type Summary struct {
	Source     string              `json:"source"`
	Dimensions Dimensions          `json:"dimensions"`
	Layout     *layout.Plan        `json:"layout"`
	Palette    []string            `json:"palette"`
	Inventory  []colour.PaintEntry `json:"inventory"`
}

type summaryDoc struct {
	Summary
	// Matrix is skipped rather than decoded.
	Matrix json.RawMessage `json:"matrix"`
}

// ReadSummary decodes the header and inventory of a JSON document written by WriteJSON.
func ReadSummary(r io.Reader) (*Summary, error) {
	var doc summaryDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode JSON matrix: %w", err)
	}
	for i := range doc.Inventory {
		rgb := doc.Inventory[i].RGB
		doc.Inventory[i].Colour = colour.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
	}
	return &doc.Summary, nil
}
