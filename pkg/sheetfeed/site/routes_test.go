package site

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/models"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path   string
		name   string
		params map[string]string
	}{
		{"/", "home", nil},
		{"", "home", nil},
		{"/game", "game", nil},
		{"/songs/", "songs", nil},
		{"/blog", "blog", nil},
		{"/blog/42", "blog-post", map[string]string{"id": "42"}},
		{"/blog/42?ref=home", "blog-post", map[string]string{"id": "42"}},
		{"/empathy", "empathy", nil},
		{"/empathy/survey/adult", "empathy-survey", map[string]string{"type": "adult"}},
		{"/empathy/zero", "empathy-zero", nil},
		{"/blog/42/comments", "not-found", map[string]string{"pathMatch": "blog/42/comments"}},
		{"/nope", "not-found", map[string]string{"pathMatch": "nope"}},
	}

	for _, tt := range tests {
		m := Resolve(tt.path)
		if m.Route.Name != tt.name {
			t.Errorf("Resolve(%q) = %q, expected %q", tt.path, m.Route.Name, tt.name)
			continue
		}
		if diff := cmp.Diff(tt.params, m.Params); diff != "" {
			t.Errorf("Resolve(%q) params mismatch (-want +got):\n%s", tt.path, diff)
		}
	}
}

func TestLookup(t *testing.T) {
	r, ok := Lookup("songs")
	if !ok || r.Tab != "Songs" {
		t.Errorf("Lookup(songs) = %+v, %v", r, ok)
	}
	if _, ok := Lookup("missing"); ok {
		t.Error("Expected Lookup(missing) to fail")
	}
}

func TestFindRecord(t *testing.T) {
	records := []models.Record{
		{"id": "1", "title": "First"},
		{"id": "2", "title": "Second"},
	}

	rec, ok := FindRecord(records, "id", "2")
	if !ok || rec.Text("title") != "Second" {
		t.Errorf("FindRecord = %v, %v", rec, ok)
	}
	if _, ok := FindRecord(records, "id", "3"); ok {
		t.Error("Expected no record for id 3")
	}
}
