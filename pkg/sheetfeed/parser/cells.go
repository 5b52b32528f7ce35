package parser

import (
	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/models"
	"github.com/xuri/excelize/v2"
)

// ReadGrid reads the formatted cell text of a worksheet as a raw grid,
// restricted to rng. Trailing empty rows and cells are not returned,
// matching what the values endpoint sends.
func ReadGrid(f *excelize.File, sheetName string, rng Range) (models.Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	grid := rng.Clip(models.Grid(rows))
	return trimTrailing(grid), nil
}

// trimTrailing drops empty cells at the end of each row and empty rows at
// the end of the grid.
func trimTrailing(grid models.Grid) models.Grid {
	for i, row := range grid {
		end := len(row)
		for end > 0 && row[end-1] == "" {
			end--
		}
		grid[i] = row[:end]
	}

	end := len(grid)
	for end > 0 && len(grid[end-1]) == 0 {
		end--
	}
	return grid[:end]
}
