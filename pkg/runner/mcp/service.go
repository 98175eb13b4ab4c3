// Package mcp provides the Model Context Protocol server integration for ideabook.
package mcp

import (
	"context"
	"errors"
	"strings"
	"sync"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/errdefs"
	"tableflip.dev/ideabook/pkg/idea"
)

// Service adapts app.Service for concurrent MCP requests.
type Service struct {
	// app.Service is single threaded.
	mu  sync.Mutex
	app *app.Service
}

// CategorySummary describes a category and how many ideas it holds.
type CategorySummary struct {
	Name      string `json:"name"`
	IdeaCount int    `json:"ideaCount"`
}

// SearchResult is the answer to a search.
type SearchResult struct {
	Query    string    `json:"query"`
	Category string    `json:"category,omitempty"`
	Hits     []app.Hit `json:"hits"`
	Count    int       `json:"count"`
}

// CreateIdeaOptions captures the parameters used to create a new idea.
type CreateIdeaOptions struct {
	Name     string
	Category string
	Tags     []string
	Body     string
}

// NewService builds a service wrapper around svc.
func NewService(svc *app.Service) *Service {
	return &Service{app: svc}
}

func (s *Service) ready() error {
	if s.app == nil {
		return errors.New("ideabook is not configured")
	}
	return nil
}

// ListCategories returns every category with its idea count.
func (s *Service) ListCategories(ctx context.Context) ([]CategorySummary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.app.Report(ctx)
	if err != nil && len(r.Sections) == 0 {
		return nil, err
	}
	out := make([]CategorySummary, 0, len(r.Sections))
	for _, sec := range r.Sections {
		out = append(out, CategorySummary{Name: sec.Category, IdeaCount: len(sec.Ideas)})
	}
	return out, nil
}

// Search runs query against the catalog. The catalog is rescanned first so
// changes made by other processes are seen.
func (s *Service) Search(ctx context.Context, query, category string) (SearchResult, error) {
	if err := s.ready(); err != nil {
		return SearchResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.app.Scan(ctx)
	if c == nil {
		return SearchResult{}, err
	}
	names, err := s.app.Search(ctx, strings.TrimSpace(query), category)
	if err != nil {
		return SearchResult{}, err
	}
	res := SearchResult{Query: query, Category: category, Hits: make([]app.Hit, 0, len(names))}
	for _, n := range names {
		res.Hits = append(res.Hits, app.Hit{Name: n, Category: c.Category(n)})
	}
	res.Count = len(res.Hits)
	return res, nil
}

// Idea returns a single idea by name.
func (s *Service) Idea(ctx context.Context, name string) (app.IdeaView, error) {
	if err := s.ready(); err != nil {
		return app.IdeaView{}, err
	}
	if strings.TrimSpace(name) == "" {
		return app.IdeaView{}, errdefs.Invalid("idea name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.app.LoadIdea(ctx, name)
	if err != nil {
		return app.IdeaView{}, err
	}
	return app.ViewOf(i), nil
}

// ListTags returns every tag with its ideas.
func (s *Service) ListTags(ctx context.Context) ([]app.TagView, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tags, err := s.app.Tags(ctx)
	if err != nil && len(tags) == 0 {
		return nil, err
	}
	return app.TagViews(tags), nil
}

// Tag returns a single tag. An unknown tag is empty.
func (s *Service) Tag(ctx context.Context, id string) (app.TagView, error) {
	if err := s.ready(); err != nil {
		return app.TagView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.app.Tag(ctx, id)
	if err != nil && !errdefs.IsNotFound(err) {
		return app.TagView{}, err
	}
	return app.TagViewOf(t), nil
}

// CreateIdea saves a new idea.
func (s *Service) CreateIdea(ctx context.Context, opts CreateIdeaOptions) (app.IdeaView, error) {
	if err := s.ready(); err != nil {
		return app.IdeaView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := idea.New(strings.TrimSpace(opts.Name), strings.TrimSpace(opts.Category), opts.Body, opts.Tags, idea.Now())
	if err := s.app.SaveIdea(ctx, i); err != nil {
		return app.IdeaView{}, err
	}
	return app.ViewOf(i), nil
}
