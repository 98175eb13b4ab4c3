// Package tag maintains the inverted index from tag to the ideas carrying it.
package tag

import (
	"sort"
	"strings"
)

// Tag is one label and the ideas filed under it, each with its category.
type Tag struct {
	ID string

	entries []entry
}

type entry struct {
	idea     string
	category string
}

// New returns an empty tag.
func New(id string) *Tag {
	return &Tag{ID: id}
}

// Add records idea under category. It reports false, and changes nothing,
// when an idea of the same name (ignoring case) is already present.
func (t *Tag) Add(idea, category string) bool {
	if t.index(idea) >= 0 {
		return false
	}
	t.entries = append(t.entries, entry{idea: idea, category: category})
	return true
}

// Remove drops idea from the tag and reports whether it was present.
func (t *Tag) Remove(idea string) bool {
	i := t.index(idea)
	if i < 0 {
		return false
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	return true
}

func (t *Tag) Has(idea string) bool {
	return t.index(idea) >= 0
}

// Ideas returns the idea names in lexicographic order.
func (t *Tag) Ideas() []string {
	names := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		names = append(names, e.idea)
	}
	sort.Strings(names)
	return names
}

// Category returns the category recorded for idea, or "" when absent.
func (t *Tag) Category(idea string) string {
	if i := t.index(idea); i >= 0 {
		return t.entries[i].category
	}
	return ""
}

func (t *Tag) Len() int { return len(t.entries) }

func (t *Tag) index(idea string) int {
	for i, e := range t.entries {
		if strings.EqualFold(e.idea, idea) {
			return i
		}
	}
	return -1
}

func sortTags(tags []*Tag) {
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].ID < tags[j].ID
	})
}
