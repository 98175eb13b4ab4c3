// Package catalog rebuilds the in-memory view of every idea and tag from
// storage.
package catalog

import (
	"sort"
	"strings"

	"tableflip.dev/ideabook/pkg/tag"
)

// Catalog is a snapshot of idea names, their categories and the tag
// universe. It is never updated in place; scan again for a fresh one.
type Catalog struct {
	ideas map[string]string
	tags  []*tag.Tag
}

// New builds a catalog from an idea name to category map and a tag list.
func New(ideas map[string]string, tags []*tag.Tag) *Catalog {
	if ideas == nil {
		ideas = map[string]string{}
	}
	return &Catalog{ideas: ideas, tags: tags}
}

// Names returns every idea name in lexicographic order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.ideas))
	for name := range c.ideas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Category returns the category of the named idea, or "" when unknown.
func (c *Catalog) Category(name string) string {
	return c.ideas[name]
}

// Find looks an idea up ignoring case and returns its stored spelling.
func (c *Catalog) Find(name string) (string, string, bool) {
	if category, ok := c.ideas[name]; ok {
		return name, category, true
	}
	for n, category := range c.ideas {
		if strings.EqualFold(n, name) {
			return n, category, true
		}
	}
	return "", "", false
}

// Tags returns the tag universe ordered by id.
func (c *Catalog) Tags() []*tag.Tag { return c.tags }

// Len is the number of ideas.
func (c *Catalog) Len() int { return len(c.ideas) }
