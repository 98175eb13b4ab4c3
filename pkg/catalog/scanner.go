package catalog

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"tableflip.dev/ideabook/pkg/layout"
	"tableflip.dev/ideabook/pkg/tag"
	"tableflip.dev/ideabook/pkg/walk"
)

// Scanner walks the storage tree to rebuild catalogs.
type Scanner struct {
	fs     afero.Fs
	layout layout.Layout
	index  *tag.Index
	logger *zap.Logger
}

func NewScanner(fs afero.Fs, root string, index *tag.Index, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{fs: fs, layout: layout.Layout{Root: root}, index: index, logger: logger}
}

// Scan maps every idea file below the root to its category, the name of
// the directory holding it. The config directory is not searched.
func (s *Scanner) Scan() (map[string]string, error) {
	ideas := make(map[string]string)
	config := s.layout.ConfigPath()
	err := walk.Walk(s.fs, s.layout.Root, func(path string, info os.FileInfo) error {
		if info.IsDir() {
			if path == config {
				return walk.SkipDir
			}
			return nil
		}
		name, ok := layout.IdeaNameFromFile(info.Name())
		if !ok {
			return nil
		}
		category := filepath.Base(filepath.Dir(path))
		if prev, dup := ideas[name]; dup {
			s.logger.Warn("idea filed twice", zap.String("idea", name),
				zap.String("category", prev), zap.String("duplicate", category))
			return nil
		}
		ideas[name] = category
		return nil
	})
	if err != nil {
		s.logger.Warn("scan ideas", zap.String("root", s.layout.Root), zap.Error(err))
		return ideas, err
	}
	return ideas, nil
}

// ScanTags loads the tag universe.
func (s *Scanner) ScanTags() ([]*tag.Tag, error) {
	return s.index.LoadAll()
}

// Snapshot performs a full rebuild. A partial catalog is returned together
// with any error met on the way.
func (s *Scanner) Snapshot() (*Catalog, error) {
	ideas, ideaErr := s.Scan()
	if ideaErr != nil {
		return New(ideas, nil), ideaErr
	}
	tags, err := s.ScanTags()
	return New(ideas, tags), err
}
