package tag

import (
	"errors"
	"strings"

	"tableflip.dev/ideabook/pkg/idea"
)

// Reconcile brings the index in line with an idea that changed from old to
// updated. A nil old means the idea is new; a nil updated means it was
// deleted.
//
// Tags only in old lose the idea, tags only in updated gain it. Tags in both
// are left alone unless the idea was renamed or moved, in which case their
// entry is rewritten. Every tag is attempted; failures are joined.
func Reconcile(ix *Index, old, updated *idea.Idea) error {
	if old == nil && updated == nil {
		return nil
	}

	var oldTags, newTags []string
	if old != nil {
		oldTags = old.Tags()
	}
	if updated != nil {
		newTags = updated.Tags()
	}
	removed := difference(oldTags, newTags)
	added := difference(newTags, oldTags)
	kept := intersection(newTags, oldTags)

	var errs []error
	for _, t := range removed {
		if err := ix.RemoveIdeaFromTag(t, old.Name()); err != nil {
			errs = append(errs, err)
		}
	}
	for _, t := range added {
		if err := ix.AddIdeaToTag(t, updated.Name(), updated.Category()); err != nil {
			errs = append(errs, err)
		}
	}
	if old != nil && updated != nil && moved(old, updated) {
		for _, t := range kept {
			if err := ix.RenameIdeaInTag(t, old.Name(), updated.Name(), updated.Category()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func moved(old, updated *idea.Idea) bool {
	return old.Name() != updated.Name() || old.Category() != updated.Category()
}

// difference returns the tags of a not in b, ignoring case.
func difference(a, b []string) []string {
	in := keys(b)
	var out []string
	for _, t := range a {
		if _, ok := in[strings.ToUpper(t)]; !ok {
			out = append(out, t)
		}
	}
	return out
}

func intersection(a, b []string) []string {
	in := keys(b)
	var out []string
	for _, t := range a {
		if _, ok := in[strings.ToUpper(t)]; ok {
			out = append(out, t)
		}
	}
	return out
}

func keys(tags []string) map[string]struct{} {
	m := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		m[strings.ToUpper(t)] = struct{}{}
	}
	return m
}
