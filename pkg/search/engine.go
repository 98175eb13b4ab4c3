// Package search answers substring queries over a catalog, narrowing the
// previous answer while the query is only being extended.
package search

import (
	"sort"
	"strings"

	"tableflip.dev/ideabook/pkg/catalog"
)

// AnyCategory disables the category filter, as does "".
const AnyCategory = "All"

// Engine keeps the last query and its answer between calls. It is not safe
// for concurrent use.
type Engine struct {
	catalog *catalog.Catalog

	searched     bool
	lastQuery    string
	lastCategory string
	results      map[string]struct{}
}

func New(c *catalog.Catalog) *Engine {
	e := &Engine{}
	e.Reset(c)
	return e
}

// Reset installs a new snapshot and forgets the previous query.
func (e *Engine) Reset(c *catalog.Catalog) {
	if c == nil {
		c = catalog.New(nil, nil)
	}
	e.catalog = c
	e.searched = false
	e.lastQuery = ""
	e.lastCategory = ""
	e.results = make(map[string]struct{})
}

// LastQuery is the query of the previous Search call.
func (e *Engine) LastQuery() string { return e.lastQuery }

// Search returns, sorted, the ideas of category whose name contains query
// ignoring case, together with every idea of a tag whose id contains query.
//
// When query extends the previous query under the same category the
// previous answer is narrowed instead of rescanning every name. Tag matches
// are added without applying the name test in both cases.
func (e *Engine) Search(query, category string) []string {
	q := strings.ToUpper(query)
	filter := normalizeCategory(category)

	switch {
	case q == "":
		e.results = e.scanNames("", filter)
	case e.searched && filter == e.lastCategory && strings.HasPrefix(q, strings.ToUpper(e.lastQuery)):
		for name := range e.results {
			if !strings.Contains(strings.ToUpper(name), q) {
				delete(e.results, name)
			}
		}
		e.unionTags(q)
	default:
		e.results = e.scanNames(q, filter)
		e.unionTags(q)
	}

	e.searched = true
	e.lastQuery = query
	e.lastCategory = filter
	return e.sorted()
}

func (e *Engine) scanNames(q, filter string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, name := range e.catalog.Names() {
		if !matchCategory(filter, e.catalog.Category(name)) {
			continue
		}
		if q == "" || strings.Contains(strings.ToUpper(name), q) {
			out[name] = struct{}{}
		}
	}
	return out
}

// unionTags adds the ideas of every tag matching q, whether or not their
// names or categories match.
func (e *Engine) unionTags(q string) {
	for _, t := range e.catalog.Tags() {
		if !strings.Contains(strings.ToUpper(t.ID), q) {
			continue
		}
		for _, name := range t.Ideas() {
			e.results[name] = struct{}{}
		}
	}
}

func (e *Engine) sorted() []string {
	out := make([]string, 0, len(e.results))
	for name := range e.results {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normalizeCategory(category string) string {
	if strings.EqualFold(category, AnyCategory) {
		return ""
	}
	return category
}

func matchCategory(filter, category string) bool {
	return filter == "" || strings.EqualFold(filter, category)
}
