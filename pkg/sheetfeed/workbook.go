package sheetfeed

import (
	"fmt"

	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/models"
	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/parser"
	"github.com/xuri/excelize/v2"
)

// StageRead is reported when a local workbook tab cannot be read.
const StageRead = "read"

// ExtractWorkbook normalizes tabs of a local xlsx file, restricted to the
// A1 range rangeRef. With no tabs, every sheet is read in workbook order.
func ExtractWorkbook(path, rangeRef string, tabs ...string) ([]models.Table, error) {
	rng, err := parser.ParseRange(rangeRef)
	if err != nil {
		return nil, &ConfigError{Field: "range", Err: err}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if len(tabs) == 0 {
		tabs = f.GetSheetList()
	}

	tables := make([]models.Table, 0, len(tabs))
	for _, tab := range tabs {
		grid, err := parser.ReadGrid(f, tab, rng)
		if err != nil {
			return nil, NewFetchError(tab, StageRead, err)
		}
		tables = append(tables, parser.NormalizeTable(tab, grid))
	}

	return tables, nil
}
