package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"tableflip.dev/ideabook/pkg/catalog"
	"tableflip.dev/ideabook/pkg/category"
	"tableflip.dev/ideabook/pkg/draft"
	"tableflip.dev/ideabook/pkg/errdefs"
	"tableflip.dev/ideabook/pkg/idea"
	"tableflip.dev/ideabook/pkg/layout"
	"tableflip.dev/ideabook/pkg/notify"
	"tableflip.dev/ideabook/pkg/search"
	"tableflip.dev/ideabook/pkg/store"
	"tableflip.dev/ideabook/pkg/tag"
)

// Service provides the high-level operations on ideas, categories and tags.
// It keeps the tag index consistent with idea records so UIs and CLIs can
// share logic. A Service is meant for a single caller at a time.
type Service struct {
	fs       afero.Fs
	root     string
	notifier notify.Notifier
	logger   *zap.Logger

	categories *category.Store
	ideas      *idea.Store
	tags       *tag.Index
	scanner    *catalog.Scanner
	drafts     *draft.Store

	engine  *search.Engine
	catalog *catalog.Catalog
}

// Deps are the collaborators a Service is assembled from. Nil stores are
// built over Fs and Root.
type Deps struct {
	Fs       afero.Fs
	Root     string
	Notifier notify.Notifier
	Logger   *zap.Logger

	Categories *category.Store
	Ideas      *idea.Store
	TagBackend tag.Backend
	Drafts     *draft.Store
}

// New assembles a Service. The category list is not loaded; see Open.
func New(d Deps) *Service {
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	if d.Notifier == nil {
		d.Notifier = notify.Discard
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Categories == nil {
		d.Categories = category.New(d.Fs, d.Root,
			category.WithNotifier(d.Notifier), category.WithLogger(d.Logger))
	}
	if d.Ideas == nil {
		d.Ideas = idea.NewStore(d.Fs, d.Root, d.Logger)
	}
	if d.TagBackend == nil {
		d.TagBackend = tag.NewFileBackend(d.Fs, d.Root)
	}
	if d.Drafts == nil {
		d.Drafts = draft.NewStore(d.Fs, d.Root)
	}

	tags := tag.NewIndex(d.TagBackend, d.Logger)
	return &Service{
		fs:         d.Fs,
		root:       d.Root,
		notifier:   d.Notifier,
		logger:     d.Logger,
		categories: d.Categories,
		ideas:      d.Ideas,
		tags:       tags,
		scanner:    catalog.NewScanner(d.Fs, d.Root, tags, d.Logger),
		drafts:     d.Drafts,
		engine:     search.New(nil),
	}
}

// Option adjusts how Open assembles a Service.
type Option func(*Deps)

func WithFs(fs afero.Fs) Option {
	return func(d *Deps) { d.Fs = fs }
}

func WithNotifier(n notify.Notifier) Option {
	return func(d *Deps) { d.Notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(d *Deps) { d.Logger = l }
}

// Open builds a Service from configuration and loads the category list.
// A category list that could only be partly read is reported but does not
// fail Open.
func Open(cfg store.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		var err error
		cfg, err = store.LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	d := Deps{Root: cfg.Root()}
	for _, o := range opts {
		o(&d)
	}
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	if d.Notifier == nil {
		d.Notifier = notify.Discard
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	catOpts := []category.Option{category.WithNotifier(d.Notifier), category.WithLogger(d.Logger)}
	if defaults := cfg.DefaultCategories(); len(defaults) > 0 {
		catOpts = append(catOpts, category.WithDefaults(defaults...))
	}
	d.Categories = category.New(d.Fs, d.Root, catOpts...)

	switch cfg.TagBackend() {
	case store.BackendDiskv:
		// diskv always works on the real filesystem.
		d.TagBackend = tag.NewDiskvBackend(layout.Layout{Root: d.Root}.TagKVDir())
	default:
		d.TagBackend = tag.NewFileBackend(d.Fs, d.Root)
	}

	s := New(d)
	if err := s.categories.Load(); err != nil && !errdefs.IsIO(err) {
		return nil, err
	}
	return s, nil
}

// Root is the storage root.
func (s *Service) Root() string { return s.root }

// Categories returns the category names in lexicographic order.
func (s *Service) Categories(ctx context.Context) []string {
	return s.categories.Names()
}

// AddCategory registers a category and persists the list.
func (s *Service) AddCategory(ctx context.Context, name string) error {
	if err := s.categories.Add(name, true); err != nil {
		return s.fail("add category", err)
	}
	s.invalidate()
	return nil
}

// DeleteCategory asks for confirmation, drops every idea of the category
// from its tags and then deletes the category with its ideas. It reports
// whether the category was deleted. An unknown category is a no-op.
func (s *Service) DeleteCategory(ctx context.Context, name string, c notify.Confirmer) (bool, error) {
	stored, ok := s.categories.Has(name)
	if !ok {
		return false, nil
	}
	if c == nil {
		c = notify.Always(false)
	}
	yes, err := c.Confirm(fmt.Sprintf("Are you sure you want to delete the category %q and every idea in it?", stored))
	if err != nil || !yes {
		return false, err
	}

	ideas, err := s.scanner.Scan()
	if err != nil {
		return false, s.fail("delete category", err)
	}
	var errs []error
	for name, cat := range ideas {
		if cat != stored {
			continue
		}
		old, err := s.ideas.Load(name, cat)
		if err != nil && !errdefs.IsMalformedDate(err) {
			errs = append(errs, err)
			continue
		}
		if err := tag.Reconcile(s.tags, old, nil); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.report("untag ideas of deleted category", err)
	}

	if err := s.categories.Delete(stored); err != nil {
		return false, s.fail("delete category", err)
	}
	s.invalidate()
	return true, nil
}

// SaveIdea stores a new idea and files it under its tags.
func (s *Service) SaveIdea(ctx context.Context, i *idea.Idea) error {
	if err := s.useStoredCategory(i); err != nil {
		return s.fail("save idea", err)
	}
	if err := s.ideas.Save(i); err != nil {
		return s.fail("save idea", err)
	}
	s.invalidate()
	if err := tag.Reconcile(s.tags, nil, i); err != nil {
		return s.fail("tag idea", err)
	}
	return nil
}

// EditIdea replaces old with updated. On a duplicate name nothing changes.
func (s *Service) EditIdea(ctx context.Context, old, updated *idea.Idea) error {
	if err := s.useStoredCategory(updated); err != nil {
		return s.fail("edit idea", err)
	}
	if err := s.ideas.Edit(old, updated); err != nil {
		return s.fail("edit idea", err)
	}
	s.invalidate()
	if err := tag.Reconcile(s.tags, old, updated); err != nil {
		return s.fail("retag idea", err)
	}
	return nil
}

// DeleteIdea removes an idea from its tags and deletes its record. A
// missing idea is a no-op.
func (s *Service) DeleteIdea(ctx context.Context, name, category string) error {
	old, err := s.ideas.Load(name, category)
	switch {
	case errdefs.IsNotFound(err):
		return nil
	case err != nil && !errdefs.IsMalformedDate(err):
		return s.fail("delete idea", err)
	}
	if err := tag.Reconcile(s.tags, old, nil); err != nil {
		s.report("untag idea", err)
	}
	if err := s.ideas.Delete(old.Name(), old.Category()); err != nil {
		return s.fail("delete idea", err)
	}
	s.invalidate()
	return nil
}

// LoadIdea finds an idea by name in any category. A malformed timestamp is
// reported and the idea returned.
func (s *Service) LoadIdea(ctx context.Context, name string) (*idea.Idea, error) {
	stored, category, ok, err := s.ideas.Find(name)
	if err != nil {
		return nil, s.fail("find idea", err)
	}
	if !ok {
		return nil, errdefs.NotFound("idea", name)
	}
	i, err := s.ideas.Load(stored, category)
	if errdefs.IsMalformedDate(err) {
		s.report("load idea", err)
		return i, nil
	}
	if err != nil {
		return nil, s.fail("load idea", err)
	}
	return i, nil
}

// AddIdeaToTag tags the named idea, updating its record and the index.
func (s *Service) AddIdeaToTag(ctx context.Context, tagID, name string) error {
	if err := layout.ValidateTag(tagID); err != nil {
		return err
	}
	old, err := s.LoadIdea(ctx, name)
	if err != nil {
		return err
	}
	for _, t := range old.Tags() {
		if strings.EqualFold(t, tagID) {
			return s.tags.AddIdeaToTag(t, old.Name(), old.Category())
		}
	}
	updated := old.Clone()
	updated.SetTags(append(old.Tags(), tagID))
	return s.EditIdea(ctx, old, updated)
}

// RemoveIdeaFromTag untags the named idea. A missing association is a
// no-op.
func (s *Service) RemoveIdeaFromTag(ctx context.Context, tagID, name string) error {
	old, err := s.LoadIdea(ctx, name)
	if errdefs.IsNotFound(err) {
		return s.tags.RemoveIdeaFromTag(tagID, name)
	}
	if err != nil {
		return err
	}
	var kept []string
	for _, t := range old.Tags() {
		if !strings.EqualFold(t, tagID) {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(old.Tags()) {
		return s.tags.RemoveIdeaFromTag(tagID, old.Name())
	}
	updated := old.Clone()
	updated.SetTags(kept)
	return s.EditIdea(ctx, old, updated)
}

// Tags returns every tag ordered by id.
func (s *Service) Tags(ctx context.Context) ([]*tag.Tag, error) {
	tags, err := s.tags.LoadAll()
	if err != nil {
		s.report("load tags", err)
	}
	return tags, err
}

// Tag returns a single tag. A missing tag is an empty tag and ErrNotFound.
func (s *Service) Tag(ctx context.Context, id string) (*tag.Tag, error) {
	return s.tags.LoadTag(id)
}

// Scan rebuilds the catalog from storage and restarts searching over it.
func (s *Service) Scan(ctx context.Context) (*catalog.Catalog, error) {
	c, err := s.scanner.Snapshot()
	if err != nil {
		s.report("scan catalog", err)
	}
	s.catalog = c
	s.engine.Reset(c)
	return c, err
}

// Search runs an incremental search, scanning the catalog first when it
// has not been built yet or storage changed through this Service.
func (s *Service) Search(ctx context.Context, query, category string) ([]string, error) {
	if s.catalog == nil {
		if _, err := s.Scan(ctx); err != nil && s.catalog == nil {
			return nil, err
		}
	}
	return s.engine.Search(query, category), nil
}

// Catalog returns the current snapshot, scanning if needed.
func (s *Service) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	if s.catalog != nil {
		return s.catalog, nil
	}
	return s.Scan(ctx)
}

// SaveDraft keeps an unfinished idea for later.
func (s *Service) SaveDraft(ctx context.Context, d draft.Draft) error {
	if err := s.drafts.Save(d); err != nil {
		return s.fail("save draft", err)
	}
	return nil
}

// OfferDraft offers a stored draft back once; see draft.Store.Offer.
func (s *Service) OfferDraft(ctx context.Context, c notify.Confirmer) (draft.Draft, bool, error) {
	if c == nil {
		c = notify.Always(false)
	}
	d, ok, err := s.drafts.Offer(c)
	if err != nil {
		s.report("restore draft", err)
	}
	return d, ok, err
}

func (s *Service) useStoredCategory(i *idea.Idea) error {
	if i == nil {
		return errdefs.Invalid("idea is required")
	}
	stored, ok := s.categories.Has(i.Category())
	if !ok {
		return errdefs.NotFound("category", i.Category())
	}
	i.Respell(stored)
	return nil
}

// invalidate drops the cached catalog so the next search rescans.
func (s *Service) invalidate() {
	s.catalog = nil
}

// fail reports err to the user and returns it.
func (s *Service) fail(op string, err error) error {
	s.report(op, err)
	return err
}

func (s *Service) report(op string, err error) {
	switch {
	case errdefs.IsDuplicate(err):
		s.logger.Info(op, zap.Error(err))
		s.notifier.Info(err.Error())
	case errdefs.IsInvalid(err), errdefs.IsNotFound(err):
		s.logger.Debug(op, zap.Error(err))
	default:
		s.logger.Warn(op, zap.Error(err))
		s.notifier.Warn(op + ": " + err.Error())
	}
}
