// Package models defines data structures for spreadsheet row normalization.
package models

// Grid is the untyped cell data returned for a tab's range.
// Row 0 is the header row; the remaining rows are data rows.
type Grid [][]string

// Cell returns the cell at (row, col), or "" when the row is short or missing.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// DataRows returns the number of rows after the header row.
func (g Grid) DataRows() int {
	if len(g) < 2 {
		return 0
	}
	return len(g) - 1
}
