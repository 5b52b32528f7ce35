// Package output serializes normalized tables.
package output

import (
	"encoding/json"

	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/models"
)

// ToJSON marshals v, indented when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// RecordsByTab maps each table name to its records.
func RecordsByTab(tables []models.Table) map[string][]models.Record {
	out := make(map[string][]models.Record, len(tables))
	for _, t := range tables {
		records := t.Records
		if records == nil {
			records = []models.Record{}
		}
		out[t.Name] = records
	}
	return out
}

// TablesToJSON renders tables as an object keyed by tab name.
func TablesToJSON(tables []models.Table, pretty bool) ([]byte, error) {
	return ToJSON(RecordsByTab(tables), pretty)
}
