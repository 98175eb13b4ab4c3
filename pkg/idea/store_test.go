package idea

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"

	"tableflip.dev/ideabook/pkg/errdefs"
)

const root = "/data/Ideabook"

func newStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewStore(fs, root, nil), fs
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newStore(t)
	created := time.Date(2020, 2, 28, 8, 0, 0, 0, time.Local)
	in := New("Rocket", "Novel", "to the moon", []string{"space", "fuel"}, created)

	if err := s.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := s.Load("Rocket", "Novel")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Body() != "to the moon" || out.TagsCommaSeparated() != "space, fuel" {
		t.Fatalf("unexpected idea %+v", out)
	}
	if !out.Created().Equal(created) || !out.Modified().Equal(created) {
		t.Fatalf("unexpected dates %v %v", out.Created(), out.Modified())
	}
}

func TestSaveDuplicateAcrossCategories(t *testing.T) {
	s, fs := newStore(t)
	if err := s.Save(New("Rocket", "Novel", "original", nil, time.Time{})); err != nil {
		t.Fatalf("save: %v", err)
	}
	before, _ := afero.ReadFile(fs, root+"/Novel/Rocket.idea")

	err := s.Save(New("rocket", "Poem", "impostor", nil, time.Time{}))
	if !errdefs.IsDuplicate(err) {
		t.Fatalf("expected duplicate name, got %v", err)
	}
	if _, err := fs.Stat(root + "/Poem/rocket.idea"); !os.IsNotExist(err) {
		t.Fatalf("duplicate should not be written")
	}
	after, _ := afero.ReadFile(fs, root+"/Novel/Rocket.idea")
	if !bytes.Equal(before, after) {
		t.Fatalf("existing file changed")
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	s, fs := newStore(t)
	tests := []*Idea{
		nil,
		New("", "Novel", "", nil, time.Time{}),
		New("Rocket", "", "", nil, time.Time{}),
		New("Rocket:2", "Novel", "", nil, time.Time{}),
		New("Rocket", "Novel", "", []string{"bad,tag:x"}, time.Time{}),
		New("Rocket", "config", "", nil, time.Time{}),
	}
	for _, tt := range tests {
		if err := s.Save(tt); !errdefs.IsInvalid(err) {
			t.Fatalf("Save(%+v) = %v, want invalid argument", tt, err)
		}
	}
	if ok, _ := afero.Exists(fs, root); ok {
		t.Fatalf("invalid saves should not touch storage")
	}
}

func TestEditMovesCategory(t *testing.T) {
	s, fs := newStore(t)
	old := New("Rocket", "Novel", "b", nil, time.Time{})
	_ = s.Save(old)

	updated := old.Clone()
	updated.SetCategory("Poem")
	if err := s.Edit(old, updated); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, err := fs.Stat(root + "/Novel/Rocket.idea"); !os.IsNotExist(err) {
		t.Fatalf("old file should be gone")
	}
	if _, err := s.Load("Rocket", "Poem"); err != nil {
		t.Fatalf("moved idea not loadable: %v", err)
	}
}

func TestEditRenameRemovesOldFile(t *testing.T) {
	s, fs := newStore(t)
	old := New("Rocket", "Novel", "b", nil, time.Time{})
	_ = s.Save(old)

	updated := old.Clone()
	updated.SetName("Spaceship")
	if err := s.Edit(old, updated); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, err := fs.Stat(root + "/Novel/Rocket.idea"); !os.IsNotExist(err) {
		t.Fatalf("old file should be gone after rename")
	}
	if cat, ok, _ := s.Exists("Spaceship"); !ok || cat != "Novel" {
		t.Fatalf("renamed idea not found: %q %v", cat, ok)
	}
}

func TestEditRenameDuplicateLeavesState(t *testing.T) {
	s, fs := newStore(t)
	old := New("Rocket", "Novel", "b", nil, time.Time{})
	_ = s.Save(old)
	_ = s.Save(New("Boat", "Poem", "c", nil, time.Time{}))

	updated := old.Clone()
	updated.SetName("boat")
	if err := s.Edit(old, updated); !errdefs.IsDuplicate(err) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	if ok, _ := afero.Exists(fs, root+"/Novel/Rocket.idea"); !ok {
		t.Fatalf("original should be untouched")
	}
}

func TestLoadMissingIsLenient(t *testing.T) {
	s, _ := newStore(t)
	i, err := s.Load("Ghost", "Novel")
	if !errdefs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if i == nil || i.Name() != "Ghost" || i.Category() != "Novel" {
		t.Fatalf("expected stub idea, got %+v", i)
	}
	if !i.Created().IsZero() || i.Body() != "" || len(i.Tags()) != 0 {
		t.Fatalf("stub should have unset fields: %+v", i)
	}
}

func TestLoadMalformedDate(t *testing.T) {
	s, fs := newStore(t)
	doc := `<idea><content><name>Rocket</name><category>Novel</category><tags>space</tags>` +
		`<body>b</body><created>2014/07/26 10:30:00</created><modified>soon</modified></content></idea>`
	_ = afero.WriteFile(fs, root+"/Novel/Rocket.idea", []byte(doc), 0o644)

	i, err := s.Load("Rocket", "Novel")
	if !errdefs.IsMalformedDate(err) {
		t.Fatalf("expected malformed date, got %v", err)
	}
	if i.Body() != "b" || i.TagsCommaSeparated() != "space" {
		t.Fatalf("rest of the record should load: %+v", i)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s, fs := newStore(t)
	_ = s.Save(New("Rocket", "Novel", "b", nil, time.Time{}))
	if err := s.Delete("Rocket", "Novel"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete("Rocket", "Novel"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if ok, _ := afero.Exists(fs, root+"/Novel/Rocket.idea"); ok {
		t.Fatalf("file still present")
	}
}

func TestFindIgnoresCase(t *testing.T) {
	s, _ := newStore(t)
	_ = s.Save(New("Rocket", "Novel", "b", nil, time.Time{}))

	name, category, ok, err := s.Find("ROCKET")
	if err != nil || !ok || name != "Rocket" || category != "Novel" {
		t.Fatalf("find: %q %q %v %v", name, category, ok, err)
	}
	if _, ok, _ := s.Exists("Boat"); ok {
		t.Fatalf("unexpected idea")
	}
}
