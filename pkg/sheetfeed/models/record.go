package models

// Record is one normalized data row keyed by header key.
// Values are string, except the "tags" field which is []string.
type Record map[string]interface{}

// Text returns the string value stored under key, or "" if the key is
// absent or not textual.
func (r Record) Text(key string) string {
	s, _ := r[key].(string)
	return s
}

// Tags returns the split "tags" field, or nil when the sheet has no tags column.
func (r Record) Tags() []string {
	tags, _ := r["tags"].([]string)
	return tags
}

// Has reports whether the record carries a field for key.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Table is a normalized tab: the header keys in column order plus records.
type Table struct {
	// Name is the tab name the table was read from.
	Name string `json:"name"`
	// Columns lists header keys in column order. Duplicate keys appear once.
	Columns []string `json:"columns"`
	// Records contains one record per data row, in row order.
	Records []Record `json:"records"`
}
