package app

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"tableflip.dev/ideabook/pkg/errdefs"
	"tableflip.dev/ideabook/pkg/notify"
	"tableflip.dev/ideabook/pkg/tag"
)

// Purge prompts for storage removal, asked twice since it cannot be undone.
const (
	PurgeQuestion        = "Delete every idea, tag and category?"
	PurgeConfirmQuestion = "This cannot be reversed. Are you absolutely sure?"
)

// RecoverResult summarizes a Recover run.
type RecoverResult struct {
	// Categories lists folders registered as categories.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	// Ideas is the number of idea records re-indexed.
	Ideas int `json:"ideas" yaml:"ideas"`
	// Tags is the number of tags in the rebuilt index.
	Tags int `json:"tags" yaml:"tags"`
	// Skipped lists idea records that could not be read.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Recover registers category folders missing from the category list and
// rebuilds the whole tag index from the idea records.
func (s *Service) Recover(ctx context.Context) (RecoverResult, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return RecoverResult{}, err
		}
	}

	var res RecoverResult
	added, err := s.categories.Recover()
	if err != nil {
		return res, s.fail("recover categories", err)
	}
	res.Categories = added

	ideas, err := s.scanner.Scan()
	if err != nil {
		return res, s.fail("recover ideas", err)
	}
	if err := s.tags.Clear(); err != nil {
		return res, s.fail("clear tags", err)
	}

	names := make([]string, 0, len(ideas))
	for name := range ideas {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		i, err := s.ideas.Load(name, ideas[name])
		if err != nil && !errdefs.IsMalformedDate(err) {
			s.logger.Warn("skip idea", zap.String("idea", name), zap.Error(err))
			res.Skipped = append(res.Skipped, name)
			continue
		}
		if err := tag.Reconcile(s.tags, nil, i); err != nil {
			errs = append(errs, err)
			continue
		}
		res.Ideas++
	}

	tags, err := s.tags.LoadAll()
	res.Tags = len(tags)
	if err != nil {
		errs = append(errs, err)
	}
	s.invalidate()
	if err := errors.Join(errs...); err != nil {
		return res, s.fail("rebuild tags", err)
	}
	return res, nil
}

// Purge removes the storage root after two confirmations and starts over
// with the default categories. It reports whether anything was removed.
func (s *Service) Purge(ctx context.Context, c notify.Confirmer) (bool, error) {
	if c == nil {
		return false, nil
	}
	for _, q := range []string{PurgeQuestion, PurgeConfirmQuestion} {
		yes, err := c.Confirm(q)
		if err != nil || !yes {
			return false, err
		}
	}

	// Tag backends may cache, so empty them before the files go.
	if err := s.tags.Clear(); err != nil {
		s.report("clear tags", err)
	}
	if err := s.fs.RemoveAll(s.root); err != nil {
		return false, s.fail("purge", errdefs.IO("remove", s.root, err))
	}
	s.logger.Info("purged storage", zap.String("root", s.root))

	s.categories.Clear()
	s.invalidate()
	if err := s.categories.Load(); err != nil {
		return true, s.fail("reseed categories", err)
	}
	return true, nil
}
