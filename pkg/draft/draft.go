// Package draft keeps a single unfinished idea so it can be offered back
// on the next start.
package draft

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"tableflip.dev/ideabook/pkg/errdefs"
	"tableflip.dev/ideabook/pkg/layout"
	"tableflip.dev/ideabook/pkg/notify"
)

// OfferQuestion is asked before a stored draft is restored.
const OfferQuestion = "An unfinished idea was found. Would you like to load it and continue editing?"

// Draft holds the raw fields of an idea that was never saved.
type Draft struct {
	Name     string `xml:"ideaname,omitempty" json:"name,omitempty" yaml:"name,omitempty"`
	Category string `xml:"ideacategory,omitempty" json:"category,omitempty" yaml:"category,omitempty"`
	Tags     string `xml:"ideatag,omitempty" json:"tags,omitempty" yaml:"tags,omitempty"`
	Body     string `xml:"ideabody,omitempty" json:"body,omitempty" yaml:"body,omitempty"`
}

// Empty reports whether there is nothing worth keeping. The category alone
// is not worth keeping since it always has a value in the form.
func (d Draft) Empty() bool {
	return d.Name == "" && d.Tags == "" && d.Body == ""
}

func (d Draft) trimmed() Draft {
	return Draft{
		Name:     strings.TrimSpace(d.Name),
		Category: strings.TrimSpace(d.Category),
		Tags:     strings.TrimSpace(d.Tags),
		Body:     strings.TrimSpace(d.Body),
	}
}

type document struct {
	XMLName xml.Name `xml:"data"`
	Content Draft    `xml:"content"`
}

// Store reads and writes the draft file.
type Store struct {
	fs   afero.Fs
	path string
}

func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, path: layout.Layout{Root: root}.DraftPath()}
}

// Save replaces the stored draft. An empty draft is not written.
func (s *Store) Save(d Draft) error {
	d = d.trimmed()
	if d.Empty() {
		return nil
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(document{Content: d}); err != nil {
		return fmt.Errorf("draft: encode: %w", err)
	}
	buf.WriteByte('\n')

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errdefs.IO("mkdir", filepath.Dir(s.path), err)
	}
	if err := s.Discard(); err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, s.path, buf.Bytes(), 0o644); err != nil {
		return errdefs.IO("write", s.path, err)
	}
	return nil
}

// Load returns the stored draft and whether one exists.
func (s *Store) Load() (Draft, bool, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Draft{}, false, nil
		}
		return Draft{}, false, errdefs.IO("read", s.path, err)
	}
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Draft{}, false, errdefs.IO("parse", s.path, err)
	}
	return doc.Content.trimmed(), true, nil
}

// Discard removes the draft file. A missing file is not an error.
func (s *Store) Discard() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errdefs.IO("remove", s.path, err)
	}
	return nil
}

// Offer asks whether a stored draft should be restored and returns it when
// accepted. The draft is discarded afterwards whatever the answer, and also
// when it cannot be parsed.
func (s *Store) Offer(c notify.Confirmer) (Draft, bool, error) {
	d, ok, err := s.Load()
	if !ok && err == nil {
		return Draft{}, false, nil
	}
	defer func() { _ = s.Discard() }()
	if err != nil {
		return Draft{}, false, err
	}

	yes, err := c.Confirm(OfferQuestion)
	if err != nil || !yes {
		return Draft{}, false, err
	}
	return d, true, nil
}
