package idea

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"tableflip.dev/ideabook/pkg/errdefs"
	"tableflip.dev/ideabook/pkg/layout"
	"tableflip.dev/ideabook/pkg/walk"
)

// Store persists one file per idea below the storage root.
type Store struct {
	fs     afero.Fs
	layout layout.Layout
	logger *zap.Logger
}

// NewStore returns a Store rooted at root. A nil logger is replaced by a
// no-op one.
func NewStore(fs afero.Fs, root string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{fs: fs, layout: layout.Layout{Root: root}, logger: logger}
}

// Save writes a new idea. Idea names are unique across every category, so
// a file of the same name anywhere below the root fails with
// errdefs.ErrDuplicateName and nothing is written.
func (s *Store) Save(i *Idea) error {
	if err := validate(i); err != nil {
		return err
	}
	if err := s.ensureCategory(i.category); err != nil {
		return err
	}
	if err := s.checkDuplicate(i.name); err != nil {
		return err
	}
	return s.write(i)
}

// Edit replaces old with updated. When the name is unchanged (ignoring
// case) the old file is removed first, which also covers a category move.
// A rename is checked for duplicates like Save and the old file is removed
// once the new one is written.
func (s *Store) Edit(old, updated *Idea) error {
	if old == nil {
		return errdefs.Invalid("original idea is required")
	}
	if err := validate(updated); err != nil {
		return err
	}
	if err := s.ensureCategory(updated.category); err != nil {
		return err
	}

	oldPath := s.layout.IdeaPath(old.category, old.name)
	if strings.EqualFold(old.name, updated.name) {
		if err := s.remove(oldPath); err != nil {
			return err
		}
		return s.write(updated)
	}

	if err := s.checkDuplicate(updated.name); err != nil {
		return err
	}
	if err := s.write(updated); err != nil {
		return err
	}
	return s.remove(oldPath)
}

// Load reads the idea stored as (name, category). A missing file returns an
// idea with only name and category set together with an ErrNotFound. A
// malformed timestamp returns the idea and an ErrMalformedDate.
func (s *Store) Load(name, category string) (*Idea, error) {
	stub := &Idea{name: name, category: category}
	if name == "" || category == "" {
		return stub, errdefs.Invalid("idea name and category are required")
	}

	path := s.layout.IdeaPath(category, name)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return stub, errdefs.NotFound("idea", name)
		}
		s.logger.Warn("read idea", zap.String("path", path), zap.Error(err))
		return stub, errdefs.IO("read", path, err)
	}

	i, err := Decode(data)
	if i == nil {
		s.logger.Warn("parse idea", zap.String("path", path), zap.Error(err))
		return stub, errdefs.IO("parse", path, err)
	}
	// The path is the storage identity; trust it over the document.
	i.name, i.category = name, category
	if err != nil {
		s.logger.Warn("idea date substituted", zap.String("path", path), zap.Error(err))
	}
	return i, err
}

// Delete removes the idea file. A missing file is not an error.
func (s *Store) Delete(name, category string) error {
	if name == "" || category == "" {
		return errdefs.Invalid("idea name and category are required")
	}
	return s.remove(s.layout.IdeaPath(category, name))
}

// Exists reports the category an idea is filed under.
func (s *Store) Exists(name string) (string, bool, error) {
	_, category, ok, err := s.Find(name)
	return category, ok, err
}

// Find looks an idea up ignoring case and returns the name it is stored
// under together with its category.
func (s *Store) Find(name string) (string, string, bool, error) {
	path, ok, err := walk.FindFile(s.fs, s.layout.Root, layout.IdeaFileName(name))
	if err != nil || !ok {
		return "", "", false, err
	}
	stored, _ := layout.IdeaNameFromFile(filepath.Base(path))
	return stored, filepath.Base(filepath.Dir(path)), true, nil
}

func (s *Store) checkDuplicate(name string) error {
	path, found, err := walk.FindFile(s.fs, s.layout.Root, layout.IdeaFileName(name))
	if err != nil {
		return err
	}
	if found {
		s.logger.Info("duplicate idea name", zap.String("name", name), zap.String("existing", path))
		return &duplicateError{name: name, path: path}
	}
	return nil
}

func (s *Store) ensureCategory(category string) error {
	dir := s.layout.CategoryDir(category)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return errdefs.IO("mkdir", dir, err)
	}
	return nil
}

func (s *Store) write(i *Idea) error {
	data, err := Encode(i)
	if err != nil {
		return err
	}
	path := s.layout.IdeaPath(i.category, i.name)
	if err := s.remove(path); err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		s.logger.Error("write idea", zap.String("path", path), zap.Error(err))
		return errdefs.IO("write", path, err)
	}
	return nil
}

func (s *Store) remove(path string) error {
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Error("remove idea", zap.String("path", path), zap.Error(err))
		return errdefs.IO("remove", path, err)
	}
	return nil
}

func validate(i *Idea) error {
	if i == nil {
		return errdefs.Invalid("idea is required")
	}
	if err := layout.ValidateIdeaName(i.name); err != nil {
		return err
	}
	if err := layout.ValidateCategory(i.category); err != nil {
		return err
	}
	if strings.EqualFold(i.category, layout.ConfigDir) {
		return errdefs.Invalid("category %q is reserved", i.category)
	}
	for _, t := range i.tags {
		if err := layout.ValidateTag(t); err != nil {
			return err
		}
	}
	return nil
}

type duplicateError struct {
	name string
	path string
}

func (e *duplicateError) Error() string {
	return "idea: an idea named " + e.name + " already exists"
}

func (e *duplicateError) Unwrap() error { return errdefs.ErrDuplicateName }
