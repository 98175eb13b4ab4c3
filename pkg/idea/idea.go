// Package idea holds the idea record, its XML codec and the per-idea file
// store.
package idea

import (
	"strings"
	"time"
)

// Idea is a single note filed under a category.
type Idea struct {
	name     string
	category string
	body     string
	tags     []string
	created  time.Time
	modified time.Time

	wasModified bool
}

// New builds an idea whose modified time equals created. A zero created
// time means now.
func New(name, category, body string, tags []string, created time.Time) *Idea {
	if created.IsZero() {
		created = Now()
	}
	return &Idea{
		name:     name,
		category: category,
		body:     body,
		tags:     normalizeTags(tags),
		created:  created,
		modified: created,
	}
}

// Now is the clock used to stamp ideas, truncated to the precision the
// file format keeps.
func Now() time.Time {
	return time.Now().Truncate(time.Second)
}

func (i *Idea) Name() string        { return i.name }
func (i *Idea) Category() string    { return i.category }
func (i *Idea) Body() string        { return i.body }
func (i *Idea) Created() time.Time  { return i.created }
func (i *Idea) Modified() time.Time { return i.modified }

// WasModified reports whether any setter ran since construction.
func (i *Idea) WasModified() bool { return i.wasModified }

// Tags returns a copy of the tag list.
func (i *Idea) Tags() []string {
	return append([]string(nil), i.tags...)
}

// TagsCommaSeparated joins the tags the way they are stored.
func (i *Idea) TagsCommaSeparated() string {
	return strings.Join(i.tags, ", ")
}

func (i *Idea) SetName(name string) {
	i.name = name
	i.touch()
}

func (i *Idea) SetCategory(category string) {
	i.category = category
	i.touch()
}

// Respell replaces the category with a spelling equal to it ignoring case.
// The idea is not marked modified.
func (i *Idea) Respell(category string) {
	if strings.EqualFold(i.category, category) {
		i.category = category
	}
}

func (i *Idea) SetBody(body string) {
	i.body = body
	i.touch()
}

func (i *Idea) SetTags(tags []string) {
	i.tags = normalizeTags(tags)
	i.touch()
}

func (i *Idea) touch() {
	now := Now()
	if now.Before(i.created) {
		now = i.created
	}
	i.modified = now
	i.wasModified = true
}

// Clone returns an independent copy.
func (i *Idea) Clone() *Idea {
	cp := *i
	cp.tags = i.Tags()
	return &cp
}

// SameIdentity reports whether both ideas live at the same storage path.
func (i *Idea) SameIdentity(other *Idea) bool {
	return strings.EqualFold(i.name, other.name) && i.category == other.category
}

// SplitTags parses a comma separated tag list.
func SplitTags(s string) []string {
	return normalizeTags(strings.Split(s, ","))
}

// normalizeTags trims, drops empties and removes duplicates ignoring case
// while keeping the first spelling and the original order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToUpper(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
