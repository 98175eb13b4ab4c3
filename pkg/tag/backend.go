package tag

import (
	"os"
	"sort"

	"github.com/spf13/afero"

	"tableflip.dev/ideabook/pkg/errdefs"
	"tableflip.dev/ideabook/pkg/layout"
)

// Backend stores tag documents by id.
type Backend interface {
	// Read returns the stored tag, or an error wrapping errdefs.ErrNotFound.
	Read(id string) (*Tag, error)
	// Write replaces the stored document for t.ID.
	Write(t *Tag) error
	// Delete removes the tag. A missing tag is not an error.
	Delete(id string) error
	// IDs lists every stored tag id in lexicographic order.
	IDs() ([]string, error)
}

// FileBackend keeps one XML file per tag in the tag directory.
type FileBackend struct {
	fs     afero.Fs
	layout layout.Layout
}

var _ Backend = (*FileBackend)(nil)

func NewFileBackend(fs afero.Fs, root string) *FileBackend {
	return &FileBackend{fs: fs, layout: layout.Layout{Root: root}}
}

func (b *FileBackend) Read(id string) (*Tag, error) {
	path := b.layout.TagPath(id)
	data, err := afero.ReadFile(b.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errdefs.NotFound("tag", id)
		}
		return nil, errdefs.IO("read", path, err)
	}
	t, err := Decode(id, data)
	if err != nil {
		return nil, errdefs.IO("parse", path, err)
	}
	return t, nil
}

func (b *FileBackend) Write(t *Tag) error {
	data, err := Encode(t)
	if err != nil {
		return err
	}
	dir := b.layout.TagDir()
	if err := b.fs.MkdirAll(dir, 0o755); err != nil {
		return errdefs.IO("mkdir", dir, err)
	}
	path := b.layout.TagPath(t.ID)
	if err := b.Delete(t.ID); err != nil {
		return err
	}
	if err := afero.WriteFile(b.fs, path, data, 0o644); err != nil {
		return errdefs.IO("write", path, err)
	}
	return nil
}

func (b *FileBackend) Delete(id string) error {
	path := b.layout.TagPath(id)
	if err := b.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return errdefs.IO("remove", path, err)
	}
	return nil
}

// IDs lists the tag directory without recursing.
func (b *FileBackend) IDs() ([]string, error) {
	dir := b.layout.TagDir()
	infos, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errdefs.IO("list", dir, err)
	}
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if id, ok := layout.TagIDFromFile(info.Name()); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
