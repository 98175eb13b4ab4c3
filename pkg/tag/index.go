package tag

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/ideabook/pkg/errdefs"
	"tableflip.dev/ideabook/pkg/layout"
)

// Index applies idea/tag associations to a Backend. Tag ids are matched
// ignoring case; a tag keeps the spelling it was first stored with.
type Index struct {
	backend Backend
	logger  *zap.Logger
}

// NewIndex returns an Index over backend. A nil logger is replaced by a
// no-op one.
func NewIndex(backend Backend, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{backend: backend, logger: logger}
}

// AddIdeaToTag records idea (filed under category) in tagID, creating the
// tag when it does not exist. An idea already in the tag leaves storage
// untouched.
func (ix *Index) AddIdeaToTag(tagID, idea, category string) error {
	if err := validateTagArgs(tagID, idea); err != nil {
		return err
	}
	if category == "" {
		return errdefs.Invalid("category is required")
	}

	id, err := ix.resolve(tagID)
	if err != nil {
		return err
	}
	t, err := ix.backend.Read(id)
	switch {
	case errdefs.IsNotFound(err):
		t = New(id)
	case err != nil:
		ix.logger.Warn("read tag", zap.String("tag", id), zap.Error(err))
		return err
	}

	if !t.Add(idea, category) {
		return nil
	}
	return ix.write(t)
}

// RemoveIdeaFromTag drops idea from tagID. Removing the last idea deletes
// the tag. A missing tag or an idea not in the tag is a no-op.
func (ix *Index) RemoveIdeaFromTag(tagID, idea string) error {
	if err := validateTagArgs(tagID, idea); err != nil {
		return err
	}

	id, err := ix.resolve(tagID)
	if err != nil {
		return err
	}
	t, err := ix.backend.Read(id)
	switch {
	case errdefs.IsNotFound(err):
		return nil
	case err != nil:
		ix.logger.Warn("read tag", zap.String("tag", id), zap.Error(err))
		return err
	}

	if !t.Remove(idea) {
		return nil
	}
	if t.Len() == 0 {
		if err := ix.backend.Delete(t.ID); err != nil {
			ix.logger.Error("delete tag", zap.String("tag", t.ID), zap.Error(err))
			return err
		}
		return nil
	}
	return ix.write(t)
}

// RenameIdeaInTag rewrites the entry of an idea that was renamed or moved
// to another category. A missing entry is added.
func (ix *Index) RenameIdeaInTag(tagID, oldName, newName, newCategory string) error {
	if err := validateTagArgs(tagID, newName); err != nil {
		return err
	}
	if newCategory == "" {
		return errdefs.Invalid("category is required")
	}

	id, err := ix.resolve(tagID)
	if err != nil {
		return err
	}
	t, err := ix.backend.Read(id)
	switch {
	case errdefs.IsNotFound(err):
		t = New(id)
	case err != nil:
		ix.logger.Warn("read tag", zap.String("tag", id), zap.Error(err))
		return err
	}

	t.Remove(oldName)
	t.Remove(newName)
	t.Add(newName, newCategory)
	return ix.write(t)
}

// LoadTag returns the stored tag. A missing tag yields an empty tag with
// that id and an error wrapping errdefs.ErrNotFound.
func (ix *Index) LoadTag(tagID string) (*Tag, error) {
	id, err := ix.resolve(tagID)
	if err != nil {
		return New(tagID), err
	}
	t, err := ix.backend.Read(id)
	if err != nil {
		return New(id), err
	}
	return t, nil
}

// LoadAll returns every stored tag ordered by id. Tags that fail to load
// are skipped and their errors joined into the returned error.
func (ix *Index) LoadAll() ([]*Tag, error) {
	ids, err := ix.backend.IDs()
	if err != nil {
		ix.logger.Warn("list tags", zap.Error(err))
		return nil, err
	}
	tags := make([]*Tag, 0, len(ids))
	var errs []error
	for _, id := range ids {
		t, err := ix.backend.Read(id)
		if err != nil {
			ix.logger.Warn("load tag", zap.String("tag", id), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		tags = append(tags, t)
	}
	sortTags(tags)
	return tags, errors.Join(errs...)
}

// Clear deletes every stored tag.
func (ix *Index) Clear() error {
	ids, err := ix.backend.IDs()
	if err != nil {
		return err
	}
	var errs []error
	for _, id := range ids {
		if err := ix.backend.Delete(id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// resolve maps tagID onto the spelling of an existing tag, if any.
func (ix *Index) resolve(tagID string) (string, error) {
	ids, err := ix.backend.IDs()
	if err != nil {
		ix.logger.Warn("list tags", zap.Error(err))
		return "", err
	}
	for _, id := range ids {
		if strings.EqualFold(id, tagID) {
			return id, nil
		}
	}
	return tagID, nil
}

func (ix *Index) write(t *Tag) error {
	if err := ix.backend.Write(t); err != nil {
		ix.logger.Error("write tag", zap.String("tag", t.ID), zap.Error(err))
		return err
	}
	return nil
}

func validateTagArgs(tagID, idea string) error {
	if err := layout.ValidateTag(tagID); err != nil {
		return err
	}
	if idea == "" {
		return errdefs.Invalid("idea name is required")
	}
	return nil
}
