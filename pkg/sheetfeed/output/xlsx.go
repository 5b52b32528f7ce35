package output

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/models"
	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/parser"
	"github.com/xuri/excelize/v2"
)

// TableStyle is the Excel table style applied to exported tabs.
const TableStyle = "TableStyleMedium2"

// TableGrid renders a table back into a grid: the column keys as the
// header row, then one row per record. Tags are joined with ", ".
func TableGrid(table models.Table) models.Grid {
	grid := make(models.Grid, 0, len(table.Records)+1)
	grid = append(grid, append([]string(nil), table.Columns...))

	for _, rec := range table.Records {
		row := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			switch v := rec[col].(type) {
			case string:
				row[i] = v
			case []string:
				row[i] = strings.Join(v, ", ")
			case nil:
			default:
				row[i] = fmt.Sprint(v)
			}
		}
		grid = append(grid, row)
	}

	return grid
}

// WriteWorkbook writes each table to its own worksheet of a new xlsx file
// and marks the populated cells as an Excel table.
func WriteWorkbook(path string, tables []models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	names := make(map[string]bool, len(tables))
	for i, table := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), table.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", table.Name, err)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", table.Name, err)
		}

		if err := writeTable(f, table, uniqueTableName(table.Name, names)); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", table.Name, err)
		}
	}

	return f.SaveAs(path)
}

func writeTable(f *excelize.File, table models.Table, name string) error {
	grid := TableGrid(table)
	for rowIdx, row := range grid {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(table.Name, cell, &cells); err != nil {
			return err
		}
	}

	// A table needs a header plus at least one data row.
	width := headerWidth(table.Columns)
	if width == 0 || len(table.Records) == 0 {
		return nil
	}
	rng := parser.Range{C1: 1, R1: 1, C2: width, R2: len(grid)}

	return f.AddTable(table.Name, &excelize.Table{
		Range:     rng.String(),
		Name:      name,
		StyleName: TableStyle,
	})
}

// headerWidth returns the 1-based index of the last non-empty header key.
func headerWidth(columns []string) int {
	for i := len(columns) - 1; i >= 0; i-- {
		if columns[i] != "" {
			return i + 1
		}
	}
	return 0
}

// uniqueTableName returns tableName(tab), suffixed with a number when the
// name is already taken in used.
func uniqueTableName(tab string, used map[string]bool) string {
	base := tableName(tab)
	name := base
	for n := 2; used[strings.ToLower(name)]; n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	used[strings.ToLower(name)] = true
	return name
}

// tableName derives a valid Excel table name from a tab name.
func tableName(tab string) string {
	var b strings.Builder
	b.WriteString("tbl_")
	for _, r := range tab {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
