package tag

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

type document struct {
	XMLName xml.Name `xml:"tag"`
	Content content  `xml:"content"`
}

type content struct {
	Ideas []string `xml:"idea"`
}

// Encode serializes a tag as a list of "idea:category" elements.
func Encode(t *Tag) ([]byte, error) {
	doc := document{}
	for _, e := range t.entries {
		doc.Content.Ideas = append(doc.Content.Ideas, e.idea+":"+e.category)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("tag: encode %q: %w", t.ID, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Decode parses a tag document stored under id. Entries without a category
// separator are dropped.
func Decode(id string, data []byte) (*Tag, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("tag: decode %q: %w", id, err)
	}
	t := New(id)
	for _, raw := range doc.Content.Ideas {
		name, category, ok := strings.Cut(strings.TrimSpace(raw), ":")
		if !ok || name == "" {
			continue
		}
		t.Add(name, category)
	}
	return t, nil
}
