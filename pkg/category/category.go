// Package category owns the set of category names and their storage
// folders.
package category

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"tableflip.dev/ideabook/pkg/errdefs"
	"tableflip.dev/ideabook/pkg/layout"
	"tableflip.dev/ideabook/pkg/notify"
	"tableflip.dev/ideabook/pkg/walk"
)

// DefaultNames seeds the category list on first run.
var DefaultNames = []string{"Miscellaneous"}

// LoadWarning is shown when the category list could only be partly read.
const LoadWarning = "Error loading some files. Consider 'recover' if data is missing"

// Store keeps category names in memory and mirrors them to a flat file.
type Store struct {
	fs       afero.Fs
	layout   layout.Layout
	defaults []string
	notifier notify.Notifier
	logger   *zap.Logger

	names map[string]string // upper-cased key -> name as entered
}

// Option configures a Store.
type Option func(*Store)

func WithDefaults(names ...string) Option {
	return func(s *Store) { s.defaults = names }
}

func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates an empty Store rooted at root. Call Load to read the list.
func New(fs afero.Fs, root string, opts ...Option) *Store {
	s := &Store{
		fs:       fs,
		layout:   layout.Layout{Root: root},
		defaults: DefaultNames,
		notifier: notify.Discard,
		logger:   zap.NewNop(),
		names:    make(map[string]string),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load reads the category list. A missing file seeds the defaults and
// persists them. A read failure keeps whatever was parsed, warns the user
// and returns an ErrIO the caller may continue past.
func (s *Store) Load() error {
	path := s.layout.CategoryFile()
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.seed()
		}
		s.logger.Warn("read category list", zap.String("path", path), zap.Error(err))
		s.notifier.Warn(LoadWarning)
		return errdefs.IO("read", path, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		key := strings.ToUpper(name)
		if _, ok := s.names[key]; !ok {
			s.names[key] = name
		}
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn("parse category list", zap.String("path", path), zap.Error(err))
		s.notifier.Warn(LoadWarning)
		return errdefs.IO("parse", path, err)
	}
	return nil
}

func (s *Store) seed() error {
	for _, name := range s.defaults {
		if err := s.Add(name, false); err != nil && !errdefs.IsDuplicate(err) {
			return err
		}
	}
	return s.save()
}

// Names returns the categories in lexicographic order.
func (s *Store) Names() []string {
	out := make([]string, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Has looks a category up ignoring case and returns its stored spelling.
func (s *Store) Has(name string) (string, bool) {
	stored, ok := s.names[strings.ToUpper(strings.TrimSpace(name))]
	return stored, ok
}

// Add registers a category and creates its folder. When persist is true the
// category list file is rewritten.
func (s *Store) Add(name string, persist bool) error {
	name = strings.TrimSpace(name)
	if err := layout.ValidateCategory(name); err != nil {
		return err
	}
	if strings.EqualFold(name, layout.ConfigDir) {
		return errdefs.Invalid("category %q is reserved", name)
	}
	if existing, ok := s.Has(name); ok {
		s.notifier.Info("This category already exists")
		return &nameError{name: existing, err: errdefs.ErrAlreadyExists}
	}

	dir := s.layout.CategoryDir(name)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		s.logger.Error("create category folder", zap.String("path", dir), zap.Error(err))
		s.notifier.Warn("An unknown error occurred creating category. Try again")
		return errdefs.IO("mkdir", dir, err)
	}

	s.names[strings.ToUpper(name)] = name
	if persist {
		return s.save()
	}
	return nil
}

// Delete removes a category together with every idea filed under it. An
// unknown category is a successful no-op.
func (s *Store) Delete(name string) error {
	stored, ok := s.Has(name)
	if !ok {
		return nil
	}

	dir := s.layout.CategoryDir(stored)
	files, err := walk.Files(s.fs, dir, func(path string, info os.FileInfo) bool {
		_, isIdea := layout.IdeaNameFromFile(info.Name())
		return isIdea
	})
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := s.fs.Remove(f); err != nil && !os.IsNotExist(err) {
			s.logger.Error("delete idea", zap.String("path", f), zap.Error(err))
			return errdefs.IO("remove", f, err)
		}
	}
	if err := s.fs.RemoveAll(dir); err != nil {
		s.logger.Error("delete category folder", zap.String("path", dir), zap.Error(err))
		return errdefs.IO("remove", dir, err)
	}

	delete(s.names, strings.ToUpper(stored))
	return s.save()
}

// Recover registers every folder under the root that is not yet a known
// category and returns the names it added.
func (s *Store) Recover() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.layout.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errdefs.IO("read dir", s.layout.Root, err)
	}

	var added []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.EqualFold(entry.Name(), layout.ConfigDir) {
			continue
		}
		if _, ok := s.Has(entry.Name()); ok {
			continue
		}
		if err := layout.ValidateCategory(entry.Name()); err != nil {
			s.logger.Warn("skip folder", zap.String("name", entry.Name()), zap.Error(err))
			continue
		}
		s.names[strings.ToUpper(entry.Name())] = entry.Name()
		added = append(added, entry.Name())
	}
	if len(added) == 0 {
		return nil, nil
	}
	return added, s.save()
}

// Clear forgets every category without touching storage. A following Load
// reads the list again, seeding the defaults if it is gone.
func (s *Store) Clear() {
	s.names = make(map[string]string)
}

func (s *Store) save() error {
	dir := s.layout.ConfigPath()
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		s.notifier.Warn(LoadWarning)
		return errdefs.IO("mkdir", dir, err)
	}

	var buf bytes.Buffer
	for _, name := range s.Names() {
		buf.WriteString(name)
		buf.WriteByte('\n')
	}

	path := s.layout.CategoryFile()
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, buf.Bytes(), 0o644); err != nil {
		s.logger.Error("write category list", zap.String("path", tmp), zap.Error(err))
		s.notifier.Warn(LoadWarning)
		return errdefs.IO("write", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return errdefs.IO("rename", filepath.Base(tmp), err)
	}
	return nil
}

type nameError struct {
	name string
	err  error
}

func (e *nameError) Error() string { return "category " + e.name + ": " + e.err.Error() }
func (e *nameError) Unwrap() error { return e.err }
