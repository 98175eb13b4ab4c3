package idea

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"tableflip.dev/ideabook/pkg/errdefs"
	"tableflip.dev/ideabook/pkg/layout"
)

type document struct {
	XMLName xml.Name `xml:"idea"`
	Content content  `xml:"content"`
}

type content struct {
	Name     string `xml:"name"`
	Category string `xml:"category"`
	Tags     string `xml:"tags"`
	Body     string `xml:"body"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}

// FormatTime renders t in the stored timestamp layout.
func FormatTime(t time.Time) string {
	return t.Local().Format(layout.DateLayout)
}

// ParseTime reads a stored timestamp in local time.
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(layout.DateLayout, s, time.Local)
}

// Encode serializes an idea to its XML document.
func Encode(i *Idea) ([]byte, error) {
	doc := document{Content: content{
		Name:     i.name,
		Category: i.category,
		Tags:     i.TagsCommaSeparated(),
		Body:     i.body,
		Created:  FormatTime(i.created),
		Modified: FormatTime(i.modified),
	}}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("idea: encode %q: %w", i.name, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Decode parses an XML document. When a timestamp cannot be parsed the
// current time is substituted for it and the returned error wraps
// errdefs.ErrMalformedDate; the idea is still usable in that case.
func Decode(data []byte) (*Idea, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("idea: decode: %w", err)
	}
	c := doc.Content

	i := &Idea{
		name:     c.Name,
		category: c.Category,
		body:     c.Body,
		tags:     SplitTags(c.Tags),
	}

	var dateErr error
	var err error
	if i.created, err = ParseTime(c.Created); err != nil {
		i.created = Now()
		dateErr = fmt.Errorf("idea %q: created %q: %w", c.Name, c.Created, errdefs.ErrMalformedDate)
	}
	if i.modified, err = ParseTime(c.Modified); err != nil {
		i.modified = Now()
		if dateErr == nil {
			dateErr = fmt.Errorf("idea %q: modified %q: %w", c.Name, c.Modified, errdefs.ErrMalformedDate)
		}
	}
	if i.modified.Before(i.created) {
		i.modified = i.created
	}
	return i, dateErr
}
