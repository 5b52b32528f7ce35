package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/models"
)

func TestNormalizeRowsEmpty(t *testing.T) {
	tests := []struct {
		name string
		grid models.Grid
	}{
		{"nil", nil},
		{"no rows", models.Grid{}},
		{"header only", models.Grid{{"Title", "Image"}}},
	}

	for _, tt := range tests {
		got := NormalizeRows(tt.grid)
		if got == nil || len(got) != 0 {
			t.Errorf("%s: NormalizeRows = %#v, expected empty non-nil slice", tt.name, got)
		}
	}
}

func TestNormalizeRows(t *testing.T) {
	grid := models.Grid{
		{"Title", "Tags", "Image"},
		{"Hello", "x, y", ""},
	}

	want := []models.Record{{
		"title": "Hello",
		"tags":  []string{"x", "y"},
		"image": PlaceholderImage,
	}}
	if diff := cmp.Diff(want, NormalizeRows(grid)); diff != "" {
		t.Errorf("NormalizeRows mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeRowsPreservesOrderAndCount(t *testing.T) {
	grid := models.Grid{
		{"Name"},
		{"first"},
		{"second"},
		{},
		{"fourth"},
	}

	got := NormalizeRows(grid)
	if len(got) != 4 {
		t.Fatalf("Expected 4 records, got %d", len(got))
	}
	for i, name := range []string{"first", "second", "", "fourth"} {
		if got[i].Text("name") != name {
			t.Errorf("record %d: name = %q, expected %q", i, got[i].Text("name"), name)
		}
	}
}

func TestNormalizeRowsByteOrderMark(t *testing.T) {
	grid := models.Grid{
		{"\ufeffTitle", "Image"},
		{"\ufeffHello ", "\ufeff"},
	}

	want := []models.Record{{"title": "Hello", "image": PlaceholderImage}}
	if diff := cmp.Diff(want, NormalizeRows(grid)); diff != "" {
		t.Errorf("NormalizeRows mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeRowsShortRows(t *testing.T) {
	grid := models.Grid{
		{"Title", "Date", "Body"},
		{"only title"},
	}

	want := []models.Record{{"title": "only title", "date": "", "body": ""}}
	if diff := cmp.Diff(want, NormalizeRows(grid)); diff != "" {
		t.Errorf("NormalizeRows mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeRowsDuplicateHeaders(t *testing.T) {
	grid := models.Grid{
		{"Title", " TITLE "},
		{"first", "second"},
	}

	got := NormalizeRows(grid)
	if got[0].Text("title") != "second" {
		t.Errorf("Expected last column to win, got %q", got[0].Text("title"))
	}
	if len(got[0]) != 1 {
		t.Errorf("Expected a single field, got %v", got[0])
	}
}

func TestNormalizeRowsImagePolicy(t *testing.T) {
	tests := []struct {
		cell     string
		expected string
	}{
		{"", PlaceholderImage},
		{"cover.png", "/images/cover.png"},
		{"  cover.png ", "/images/cover.png"},
		{"https://cdn.example.com/x.jpg", "https://cdn.example.com/x.jpg"},
		{"http://example.com/y.gif", "http://example.com/y.gif"},
	}

	for _, tt := range tests {
		got := NormalizeRows(models.Grid{{"Image"}, {tt.cell}})
		if got[0].Text("image") != tt.expected {
			t.Errorf("image cell %q = %q, expected %q", tt.cell, got[0].Text("image"), tt.expected)
		}
	}
}

func TestNormalizeRowsImageMissingCell(t *testing.T) {
	grid := models.Grid{
		{"Title", "Image"},
		{"no image cell"},
	}

	got := NormalizeRows(grid)
	if got[0].Text("image") != PlaceholderImage {
		t.Errorf("Expected placeholder for missing cell, got %q", got[0].Text("image"))
	}
}

func TestNormalizeRowsWithoutImageHeader(t *testing.T) {
	grid := models.Grid{
		{"Title", "Picture"},
		{"t", "cover.png", "extra"},
	}

	got := NormalizeRows(grid)
	if got[0].Has("image") {
		t.Errorf("Expected no image field, got %v", got[0])
	}
	if got[0].Text("picture") != "cover.png" {
		t.Errorf("Expected picture to pass through, got %q", got[0].Text("picture"))
	}
	if len(got[0]) != 2 {
		t.Errorf("Expected cells beyond the header to be ignored, got %v", got[0])
	}
}

func TestHeaderKeys(t *testing.T) {
	got := HeaderKeys([]string{" Tags ", "IMAGE", "Release Date", "", "\ufeffTitle"})
	want := []string{"tags", "image", "release date", "", "title"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("HeaderKeys mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{"", []string{}},
		{"solo", []string{"solo"}},
		{"a,,b", []string{"a", "", "b"}},
		{"a,\u00a0b\ufeff", []string{"a", "b"}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.expected, SplitTags(tt.input)); diff != "" {
			t.Errorf("SplitTags(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestNormalizeTable(t *testing.T) {
	grid := models.Grid{
		{"Title", "Tags", "title"},
		{"a", "", "b"},
	}

	table := NormalizeTable("Posts", grid)
	if table.Name != "Posts" {
		t.Errorf("Expected name Posts, got %q", table.Name)
	}
	if diff := cmp.Diff([]string{"title", "tags"}, table.Columns); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}
	want := []models.Record{{"title": "b", "tags": []string{}}}
	if diff := cmp.Diff(want, table.Records); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}
}
