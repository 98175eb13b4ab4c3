package tag

import (
	"sort"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/ideabook/pkg/errdefs"
)

// DiskvBackend keeps tag documents in a diskv store with a flat key space,
// one key per tag id.
type DiskvBackend struct {
	d        *diskv.Diskv
	basePath string
}

var _ Backend = (*DiskvBackend)(nil)

// NewDiskvBackend opens (or lazily creates) the store at basePath.
func NewDiskvBackend(basePath string) *DiskvBackend {
	return &DiskvBackend{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}
}

func (b *DiskvBackend) Read(id string) (*Tag, error) {
	if !b.d.Has(id) {
		return nil, errdefs.NotFound("tag", id)
	}
	val, err := b.d.Read(id)
	if err != nil {
		return nil, errdefs.IO("read", b.basePath+":"+id, err)
	}
	t, err := Decode(id, val)
	if err != nil {
		return nil, errdefs.IO("parse", b.basePath+":"+id, err)
	}
	return t, nil
}

func (b *DiskvBackend) Write(t *Tag) error {
	data, err := Encode(t)
	if err != nil {
		return err
	}
	if err := b.d.Write(t.ID, data); err != nil {
		return errdefs.IO("write", b.basePath+":"+t.ID, err)
	}
	return nil
}

func (b *DiskvBackend) Delete(id string) error {
	if !b.d.Has(id) {
		return nil
	}
	if err := b.d.Erase(id); err != nil {
		return errdefs.IO("erase", b.basePath+":"+id, err)
	}
	return nil
}

func (b *DiskvBackend) IDs() ([]string, error) {
	ids := make([]string, 0)
	for key := range b.d.Keys(nil) {
		ids = append(ids, key)
	}
	sort.Strings(ids)
	return ids, nil
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
