package app

import (
	"time"

	"tableflip.dev/ideabook/pkg/idea"
	"tableflip.dev/ideabook/pkg/tag"
)

// IdeaView is a transport-friendly projection of an idea.
type IdeaView struct {
	Name     string    `json:"name" yaml:"name"`
	Category string    `json:"category" yaml:"category"`
	Tags     []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Body     string    `json:"body,omitempty" yaml:"body,omitempty"`
	Created  time.Time `json:"created" yaml:"created"`
	Modified time.Time `json:"modified" yaml:"modified"`
}

// ViewOf projects i.
func ViewOf(i *idea.Idea) IdeaView {
	return IdeaView{
		Name:     i.Name(),
		Category: i.Category(),
		Tags:     i.Tags(),
		Body:     i.Body(),
		Created:  i.Created(),
		Modified: i.Modified(),
	}
}

// TagEntry is one idea filed under a tag.
type TagEntry struct {
	Idea     string `json:"idea" yaml:"idea"`
	Category string `json:"category" yaml:"category"`
}

// TagView is a transport-friendly projection of a tag.
type TagView struct {
	ID    string     `json:"id" yaml:"id"`
	Ideas []TagEntry `json:"ideas" yaml:"ideas"`
}

// TagViewOf projects t.
func TagViewOf(t *tag.Tag) TagView {
	v := TagView{ID: t.ID, Ideas: make([]TagEntry, 0, t.Len())}
	for _, name := range t.Ideas() {
		v.Ideas = append(v.Ideas, TagEntry{Idea: name, Category: t.Category(name)})
	}
	return v
}

// TagViews projects every tag in order.
func TagViews(tags []*tag.Tag) []TagView {
	out := make([]TagView, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagViewOf(t))
	}
	return out
}

// Hit is a search result with the category it was found in.
type Hit struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}
