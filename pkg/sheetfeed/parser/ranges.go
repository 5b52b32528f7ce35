package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/models"
	"github.com/xuri/excelize/v2"
)

// Range holds 1-based cell bounds for an A1 reference.
// R2 is 0 when the reference leaves the end row open (e.g. "A1:Z").
type Range struct {
	// Sheet is the optional tab prefix of the reference.
	Sheet string
	C1    int
	R1    int
	C2    int
	R2    int
}

// ParseRange parses an A1 reference such as A1:Z, $A$1:$D$10 or 'My Tab'!B2:F.
func ParseRange(ref string) (Range, error) {
	var rng Range

	ref = strings.TrimSpace(ref)
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		rng.Sheet = strings.Trim(ref[:idx], "'")
		ref = ref[idx+1:]
	}

	// Remove $ signs
	ref = strings.ReplaceAll(ref, "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) != 2 {
		return rng, fmt.Errorf("invalid range %q: expected START:END", ref)
	}

	col, row, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return rng, fmt.Errorf("invalid range start %q: %w", parts[0], err)
	}
	rng.C1, rng.R1 = col, row

	if isColumnOnly(parts[1]) {
		col, err := excelize.ColumnNameToNumber(parts[1])
		if err != nil {
			return rng, fmt.Errorf("invalid range end %q: %w", parts[1], err)
		}
		rng.C2 = col
	} else {
		col, row, err := excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return rng, fmt.Errorf("invalid range end %q: %w", parts[1], err)
		}
		rng.C2, rng.R2 = col, row
	}

	if rng.C2 < rng.C1 || (rng.R2 != 0 && rng.R2 < rng.R1) {
		return rng, fmt.Errorf("invalid range %q: end precedes start", ref)
	}

	return rng, nil
}

// String formats the bounds back into A1 notation without the sheet prefix.
func (r Range) String() string {
	start, _ := excelize.CoordinatesToCellName(r.C1, r.R1)
	if r.R2 == 0 {
		end, _ := excelize.ColumnNumberToName(r.C2)
		return start + ":" + end
	}
	end, _ := excelize.CoordinatesToCellName(r.C2, r.R2)
	return start + ":" + end
}

// Clip returns the part of grid that falls inside the range.
// The grid is assumed to start at A1.
func (r Range) Clip(grid models.Grid) models.Grid {
	var out models.Grid
	for rowIdx, row := range grid {
		rowNum := rowIdx + 1
		if rowNum < r.R1 {
			continue
		}
		if r.R2 != 0 && rowNum > r.R2 {
			break
		}

		var cells []string
		for colIdx := r.C1 - 1; colIdx < r.C2 && colIdx < len(row); colIdx++ {
			cells = append(cells, row[colIdx])
		}
		out = append(out, cells)
	}
	return out
}

func isColumnOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsLetter(c) {
			return false
		}
	}
	return true
}
