package main

import (
	"strconv"
	"strings"

	"github.com/gobwas/glob"
)

// ProjectFilter matches projects against a search query. Queries containing
// glob metacharacters ("kitchen*", "bath?room") compile as patterns; plain
// text matches as a substring. Matching is case-insensitive across title,
// category, location and year.
type ProjectFilter struct {
	query   string
	matcher glob.Glob
}

// NewProjectFilter compiles a query. An empty query matches everything; an
// invalid pattern falls back to substring matching.
func NewProjectFilter(query string) ProjectFilter {
	f := ProjectFilter{query: strings.ToLower(strings.TrimSpace(query))}
	if f.query == "" {
		return f
	}
	pattern := f.query
	if !strings.ContainsAny(pattern, "*?[]{}") {
		pattern = "*" + pattern + "*"
	}
	if g, err := glob.Compile(pattern); err == nil {
		f.matcher = g
	}
	return f
}

// Query returns the raw query text.
func (f ProjectFilter) Query() string { return f.query }

// Empty reports whether the filter matches everything.
func (f ProjectFilter) Empty() bool { return f.query == "" }

// Match reports whether the project matches the query.
func (f ProjectFilter) Match(p Project) bool {
	if f.Empty() {
		return true
	}
	fields := []string{p.Title, p.Category, p.Location}
	if p.Year > 0 {
		fields = append(fields, strconv.Itoa(p.Year))
	}
	for _, field := range fields {
		field = strings.ToLower(field)
		if f.matcher != nil {
			if f.matcher.Match(field) {
				return true
			}
		} else if strings.Contains(field, f.query) {
			return true
		}
	}
	return false
}

// FilterProjects returns the projects matching query, preserving order.
func FilterProjects(projects []Project, query string) []Project {
	f := NewProjectFilter(query)
	if f.Empty() {
		return projects
	}
	var out []Project
	for _, p := range projects {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
