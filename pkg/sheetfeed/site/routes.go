// Package site holds the route table of the content site and resolves
// request paths to views and the sheet tabs that back them.
package site

import (
	"strings"

	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/models"
)

// Route is one entry of the route table.
type Route struct {
	// Name is the route name used by links.
	Name string `json:"name"`
	// Pattern is the path pattern. ":name" segments capture one segment;
	// "*" captures the rest of the path.
	Pattern string `json:"pattern"`
	// View is the view rendered for the route.
	View string `json:"view"`
	// Tab is the sheet tab feeding the view, if any.
	Tab string `json:"tab,omitempty"`
	// Param names the path param used to select a single record.
	Param string `json:"param,omitempty"`
}

// Match is a resolved route.
type Match struct {
	Route  Route             `json:"route"`
	Params map[string]string `json:"params,omitempty"`
}

// Routes is the site's route table, in match order.
var Routes = []Route{
	{Name: "empathy", Pattern: "/empathy", View: "EmpathyHome"},
	{Name: "empathy-survey", Pattern: "/empathy/survey/:type", View: "SurveyView"}, // type is "adult" or "child"
	{Name: "empathy-zero", Pattern: "/empathy/zero", View: "ZeroDegrees"},
	{Name: "home", Pattern: "/", View: "HomeView"},
	{Name: "game", Pattern: "/game", View: "GameView"},
	{Name: "songs", Pattern: "/songs", View: "SongsView", Tab: "Songs"},
	{Name: "blog", Pattern: "/blog", View: "BlogView", Tab: "Posts"},
	{Name: "blog-post", Pattern: "/blog/:id", View: "BlogPost", Tab: "Posts", Param: "id"},
	{Name: "not-found", Pattern: "/*", View: "NotFoundView"},
}

// Resolve matches path against Routes. The catch-all guarantees a match.
func Resolve(path string) Match {
	segs := splitPath(path)
	for _, r := range Routes {
		if params, ok := match(splitPath(r.Pattern), segs); ok {
			return Match{Route: r, Params: params}
		}
	}
	return Match{}
}

// Lookup returns the route with the given name.
func Lookup(name string) (Route, bool) {
	for _, r := range Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// FindRecord returns the first record whose key field equals value.
func FindRecord(records []models.Record, key, value string) (models.Record, bool) {
	for _, rec := range records {
		if rec.Text(key) == value {
			return rec, true
		}
	}
	return nil, false
}

func match(pattern, segs []string) (map[string]string, bool) {
	var params map[string]string
	for i, p := range pattern {
		if p == "*" {
			if params == nil {
				params = make(map[string]string)
			}
			params["pathMatch"] = strings.Join(segs[i:], "/")
			return params, true
		}
		if i >= len(segs) {
			return nil, false
		}
		if strings.HasPrefix(p, ":") {
			if params == nil {
				params = make(map[string]string)
			}
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	if len(pattern) != len(segs) {
		return nil, false
	}
	return params, true
}

func splitPath(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
