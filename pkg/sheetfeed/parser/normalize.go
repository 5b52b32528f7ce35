// Package parser turns raw sheet grids into normalized records.
package parser

import (
	"strings"
	"unicode"

	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Field keys that receive special typing.
const (
	KeyTags  = "tags"
	KeyImage = "image"
)

// PlaceholderImage replaces an empty image cell.
const PlaceholderImage = "https://via.placeholder.com/400x200/1a1a1a/007A33?text=No+Image"

// LocalImagePrefix is prepended to bare image filenames.
const LocalImagePrefix = "/images/"

// NormalizeRows converts a raw grid into records, one per data row.
// A nil grid or a grid with fewer than 2 rows yields an empty slice.
func NormalizeRows(grid models.Grid) []models.Record {
	if len(grid) < 2 {
		return []models.Record{}
	}

	keys := HeaderKeys(grid[0])
	hasImage := false
	for _, k := range keys {
		if k == KeyImage {
			hasImage = true
			break
		}
	}

	records := make([]models.Record, 0, len(grid)-1)
	for rowIdx := 1; rowIdx < len(grid); rowIdx++ {
		rec := make(models.Record, len(keys))
		for colIdx, key := range keys {
			value := trimCell(grid.Cell(rowIdx, colIdx))
			if key == KeyTags {
				rec[key] = SplitTags(value)
			} else {
				rec[key] = value
			}
		}

		// Gated on the header, so an empty cell still gets the placeholder.
		if hasImage {
			rec[KeyImage] = ResolveImage(rec.Text(KeyImage))
		}

		records = append(records, rec)
	}

	return records
}

// NormalizeTable normalizes grid and records its column order under name.
func NormalizeTable(name string, grid models.Grid) models.Table {
	table := models.Table{
		Name:    name,
		Records: NormalizeRows(grid),
	}
	if len(grid) > 0 {
		table.Columns = UniqueKeys(HeaderKeys(grid[0]))
	}
	return table
}

// HeaderKeys lower-cases and trims each header cell.
func HeaderKeys(header []string) []string {
	lower := cases.Lower(language.Und)
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = lower.String(trimCell(h))
	}
	return keys
}

// UniqueKeys drops repeated keys, keeping the first position of each.
func UniqueKeys(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// SplitTags splits a comma separated cell. An empty cell yields an empty slice.
func SplitTags(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	for i, p := range parts {
		parts[i] = trimCell(p)
	}
	return parts
}

// ResolveImage applies the image fallback and local-asset rewrite.
func ResolveImage(value string) string {
	switch {
	case value == "":
		return PlaceholderImage
	case strings.HasPrefix(value, "http"):
		return value
	default:
		return LocalImagePrefix + trimCell(value)
	}
}

// trimCell strips surrounding whitespace and byte order marks, which
// sheets imported from CSV often carry in their first header cell.
func trimCell(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
