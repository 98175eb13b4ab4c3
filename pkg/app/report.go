package app

import (
	"context"
	"sort"
)

// ReportSection groups idea names by category.
type ReportSection struct {
	Category string   `json:"category" yaml:"category"`
	Ideas    []string `json:"ideas" yaml:"ideas"`
}

// ReportResult summarizes what is stored.
type ReportResult struct {
	Root     string          `json:"root" yaml:"root"`
	Sections []ReportSection `json:"sections" yaml:"sections"`
	Ideas    int             `json:"ideas" yaml:"ideas"`
	Tags     int             `json:"tags" yaml:"tags"`
}

// Report lists every category, including empty ones, with its ideas.
func (s *Service) Report(ctx context.Context) (ReportResult, error) {
	c, err := s.Catalog(ctx)
	if c == nil {
		return ReportResult{}, err
	}

	grouped := make(map[string][]string)
	for _, name := range s.categories.Names() {
		grouped[name] = nil
	}
	for _, name := range c.Names() {
		cat := c.Category(name)
		grouped[cat] = append(grouped[cat], name)
	}

	res := ReportResult{Root: s.root, Ideas: c.Len(), Tags: len(c.Tags())}
	for cat, ideas := range grouped {
		sort.Strings(ideas)
		res.Sections = append(res.Sections, ReportSection{Category: cat, Ideas: ideas})
	}
	sort.Slice(res.Sections, func(i, j int) bool {
		return res.Sections[i].Category < res.Sections[j].Category
	})
	return res, err
}
