package layout

import (
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/ideabook/pkg/errdefs"
)

func TestPaths(t *testing.T) {
	l := Layout{Root: "/data/Ideabook"}
	tests := []struct {
		got, want string
	}{
		{l.IdeaPath("Novel", "Dragons"), filepath.Join("/data/Ideabook", "Novel", "Dragons.idea")},
		{l.TagPath("fantasy"), filepath.Join("/data/Ideabook", "config", "tags", "fantasy.tag")},
		{l.CategoryFile(), filepath.Join("/data/Ideabook", "config", "categories.inf")},
		{l.DraftPath(), filepath.Join("/data/Ideabook", "config", "submit.dat")},
		{l.TagKVDir(), filepath.Join("/data/Ideabook", "config", "tags.kv")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestNameFromFile(t *testing.T) {
	if name, ok := IdeaNameFromFile("Dragons.idea"); !ok || name != "Dragons" {
		t.Errorf("IdeaNameFromFile: %q %v", name, ok)
	}
	for _, f := range []string{".idea", "Dragons.tag", "notes.txt"} {
		if _, ok := IdeaNameFromFile(f); ok {
			t.Errorf("IdeaNameFromFile(%q) should not match", f)
		}
	}
	if id, ok := TagIDFromFile("epic.tag"); !ok || id != "epic" {
		t.Errorf("TagIDFromFile: %q %v", id, ok)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) error
		in   string
		ok   bool
	}{
		{"category", ValidateCategory, "Short Story", true},
		{"category hyphen", ValidateCategory, "Sci-Fi", true},
		{"category too long", ValidateCategory, strings.Repeat("a", MaxCategory+1), false},
		{"category punctuation", ValidateCategory, "Novel!", false},
		{"idea", ValidateIdeaName, "Dragons, part 2!", true},
		{"idea slash", ValidateIdeaName, "a/b", false},
		{"idea dots", ValidateIdeaName, "..", false},
		{"idea blank", ValidateIdeaName, "   ", false},
		{"tag", ValidateTag, "sci-fi", true},
		{"tag comma", ValidateTag, "a,b", false},
		{"tag too long", ValidateTag, strings.Repeat("t", MaxTagLength+1), false},
	}
	for _, tt := range tests {
		err := tt.fn(tt.in)
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && !errdefs.IsInvalid(err) {
			t.Errorf("%s: expected invalid argument, got %v", tt.name, err)
		}
	}
}
