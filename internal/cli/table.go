package cli

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiPattern matches SGR escape sequences such as colour swatches.
var ansiPattern = regexp.MustCompile("\033\\[[0-9;]*m")

// Table formats rows into aligned columns. Cell widths ignore ANSI colour
// escapes so swatches line up with plain text.
type Table struct {
	headers    []string
	rows       [][]string
	padding    int
	maxWidths  map[int]int // Maximum width per column index (0 = no limit)
	alignRight map[int]bool
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:    headers,
		rows:       make([][]string, 0),
		padding:    2,
		maxWidths:  make(map[int]int),
		alignRight: make(map[int]bool),
	}
}

// SetColumnMaxWidth sets a maximum width for a specific column.
// Text longer than this will be wrapped to multiple lines.
func (t *Table) SetColumnMaxWidth(colIndex int, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// SetColumnAlignRight right-aligns a column, for counts and percentages.
func (t *Table) SetColumnAlignRight(colIndex int) {
	t.alignRight[colIndex] = true
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	if len(row) == len(t.headers) {
		t.rows = append(t.rows, row)
		return
	}
	newRow := make([]string, len(t.headers))
	copy(newRow, row)
	t.rows = append(t.rows, newRow)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	wrappedRows := make([][][]string, len(t.rows))
	for rowIdx, row := range t.rows {
		wrappedRows[rowIdx] = make([][]string, len(row))
		for colIdx, cell := range row {
			if maxWidth := t.maxWidths[colIdx]; maxWidth > 0 {
				wrappedRows[rowIdx][colIdx] = wrapText(cell, maxWidth)
			} else {
				wrappedRows[rowIdx][colIdx] = []string{cell}
			}
		}
	}

	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = visibleWidth(h)
	}
	for _, wrappedRow := range wrappedRows {
		for i, wrappedCell := range wrappedRow {
			for _, line := range wrappedCell {
				colWidths[i] = max(colWidths[i], visibleWidth(line))
			}
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var result strings.Builder
	writeLine := func(parts []string) {
		result.WriteString(strings.Join(parts, gap))
		result.WriteString("\n")
	}

	headerParts := make([]string, len(t.headers))
	for i, h := range t.headers {
		headerParts[i] = t.pad(i, h, colWidths[i])
	}
	writeLine(headerParts)

	sepParts := make([]string, len(t.headers))
	for i, w := range colWidths {
		sepParts[i] = strings.Repeat("-", w)
	}
	writeLine(sepParts)

	for _, wrappedRow := range wrappedRows {
		maxLines := 1
		for _, wrappedCell := range wrappedRow {
			maxLines = max(maxLines, len(wrappedCell))
		}

		for lineIdx := range maxLines {
			rowParts := make([]string, len(t.headers))
			for colIdx := range t.headers {
				cell := ""
				if lineIdx < len(wrappedRow[colIdx]) {
					cell = wrappedRow[colIdx][lineIdx]
				}
				rowParts[colIdx] = t.pad(colIdx, cell, colWidths[colIdx])
			}
			writeLine(rowParts)
		}
	}

	return result.String()
}

func (t *Table) pad(col int, s string, width int) string {
	if t.alignRight[col] {
		return padLeft(s, width)
	}
	return padRight(s, width)
}

// visibleWidth returns the number of runes in s excluding ANSI escapes.
func visibleWidth(s string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(s, ""))
}

// padRight pads a string with spaces on the right to reach the desired width.
// If the string is already longer than or equal to the width, it is returned unchanged.
func padRight(s string, width int) string {
	if n := visibleWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := visibleWidth(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

// wrapText wraps text to fit within the specified width, breaking at word boundaries.
func wrapText(text string, width int) []string {
	if width <= 0 || visibleWidth(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	currentLine := ""
	for _, word := range words {
		// Split words that are longer than the column on their own.
		for len(word) > width {
			if currentLine != "" {
				lines = append(lines, currentLine)
				currentLine = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}

		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if len(testLine) <= width {
			currentLine = testLine
			continue
		}
		if currentLine != "" {
			lines = append(lines, currentLine)
		}
		currentLine = word
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}
