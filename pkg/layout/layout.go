// Package layout derives on-disk locations for ideas, tags, categories and
// drafts from the storage root, and validates the names used in them.
package layout

import (
	"path/filepath"
	"regexp"
	"strings"

	"tableflip.dev/ideabook/pkg/errdefs"
)

const (
	IdeaExt       = ".idea"
	TagExt        = ".tag"
	ConfigDir     = "config"
	TagDir        = "tags"
	TagKVDir      = "tags.kv"
	CategoryFile  = "categories.inf"
	DraftFile     = "submit.dat"
	DateLayout    = "2006/01/02 15:04:05"
	MaxCategory   = 16
	MaxIdeaName   = 32
	MaxTagLength  = 32
	DefaultFolder = "Ideabook"
)

var (
	categoryPattern = regexp.MustCompile(`^[- a-zA-Z0-9]+$`)
	ideaPattern     = regexp.MustCompile(`^[- a-zA-Z0-9!@#$%&.,+]+$`)
	tagPattern      = regexp.MustCompile(`^[- a-zA-Z0-9!@#$%&.+]+$`)
)

// Layout resolves paths below a storage root.
type Layout struct {
	Root string
}

func (l Layout) CategoryDir(category string) string {
	return filepath.Join(l.Root, category)
}

func (l Layout) IdeaPath(category, name string) string {
	return filepath.Join(l.Root, category, name+IdeaExt)
}

func (l Layout) ConfigPath() string {
	return filepath.Join(l.Root, ConfigDir)
}

func (l Layout) TagDir() string {
	return filepath.Join(l.Root, ConfigDir, TagDir)
}

func (l Layout) TagPath(id string) string {
	return filepath.Join(l.TagDir(), id+TagExt)
}

func (l Layout) TagKVDir() string {
	return filepath.Join(l.Root, ConfigDir, TagKVDir)
}

func (l Layout) CategoryFile() string {
	return filepath.Join(l.Root, ConfigDir, CategoryFile)
}

func (l Layout) DraftPath() string {
	return filepath.Join(l.Root, ConfigDir, DraftFile)
}

// IdeaFileName is the file name an idea is stored under.
func IdeaFileName(name string) string {
	return name + IdeaExt
}

// IdeaNameFromFile reports the idea name for a file name, or false when the
// file is not an idea record.
func IdeaNameFromFile(file string) (string, bool) {
	if !strings.HasSuffix(file, IdeaExt) || len(file) == len(IdeaExt) {
		return "", false
	}
	return strings.TrimSuffix(file, IdeaExt), true
}

// TagIDFromFile reports the tag id for a file name, or false when the file
// is not a tag document.
func TagIDFromFile(file string) (string, bool) {
	if !strings.HasSuffix(file, TagExt) || len(file) == len(TagExt) {
		return "", false
	}
	return strings.TrimSuffix(file, TagExt), true
}

func ValidateCategory(name string) error {
	return validate("category", name, MaxCategory, categoryPattern)
}

func ValidateIdeaName(name string) error {
	return validate("idea name", name, MaxIdeaName, ideaPattern)
}

func ValidateTag(id string) error {
	return validate("tag", id, MaxTagLength, tagPattern)
}

func validate(kind, value string, max int, pattern *regexp.Regexp) error {
	switch {
	case strings.TrimSpace(value) == "":
		return errdefs.Invalid("%s is required", kind)
	case strings.Trim(value, ".") == "":
		return errdefs.Invalid("%s %q is not a usable file name", kind, value)
	case len(value) > max:
		return errdefs.Invalid("%s %q is longer than %d characters", kind, value, max)
	case !pattern.MatchString(value):
		return errdefs.Invalid("%s %q contains unsupported characters", kind, value)
	}
	return nil
}
