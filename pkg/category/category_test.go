package category

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/spf13/afero"

	"tableflip.dev/ideabook/pkg/errdefs"
	"tableflip.dev/ideabook/pkg/notify"
)

const root = "/data/Ideabook"

// failingOpenFs refuses to open one path.
type failingOpenFs struct {
	afero.Fs
	path string
}

func (f failingOpenFs) Open(name string) (afero.File, error) {
	if name == f.path {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}

func TestLoadSeedsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, root, WithDefaults("Miscellaneous", "Novel"))
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := s.Names(); !reflect.DeepEqual(got, []string{"Miscellaneous", "Novel"}) {
		t.Fatalf("unexpected names %v", got)
	}
	data, err := afero.ReadFile(fs, root+"/config/categories.inf")
	if err != nil {
		t.Fatalf("category file not written: %v", err)
	}
	if string(data) != "Miscellaneous\nNovel\n" {
		t.Fatalf("unexpected file content %q", data)
	}
	if ok, _ := afero.DirExists(fs, root+"/Novel"); !ok {
		t.Fatalf("seeded category folder missing")
	}
}

func TestLoadReadsExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, root+"/config/categories.inf", []byte("Zoo\n\nAlpha\nzoo\n"), 0o644)

	s := New(fs, root)
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := s.Names(); !reflect.DeepEqual(got, []string{"Alpha", "Zoo"}) {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestLoadFailsSoft(t *testing.T) {
	fs := failingOpenFs{Fs: afero.NewMemMapFs(), path: root + "/config/categories.inf"}
	_ = afero.WriteFile(fs.Fs, root+"/config/categories.inf", []byte("Novel\n"), 0o644)

	rec := &notify.Recorder{}
	s := New(fs, root, WithNotifier(rec))
	err := s.Load()
	if !errdefs.IsIO(err) {
		t.Fatalf("expected io error, got %v", err)
	}
	if rec.Warned() != 1 {
		t.Fatalf("expected one warning, got %v", rec.Warnings)
	}
	if len(s.Names()) != 0 {
		t.Fatalf("expected no names, got %v", s.Names())
	}
}

func TestAddRejectsDuplicatesIgnoringCase(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, root)
	if err := s.Add("Novel", true); err != nil {
		t.Fatalf("add: %v", err)
	}

	err := s.Add("novel", true)
	if !errors.Is(err, errdefs.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
	if !errdefs.IsDuplicate(err) {
		t.Fatalf("already exists should also be a duplicate name")
	}
	if got := s.Names(); !reflect.DeepEqual(got, []string{"Novel"}) {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestAddValidates(t *testing.T) {
	s := New(afero.NewMemMapFs(), root)
	for _, bad := range []string{"", "   ", "this name is far too long", "semi;colon", "config"} {
		if err := s.Add(bad, false); !errdefs.IsInvalid(err) {
			t.Fatalf("Add(%q) = %v, want invalid argument", bad, err)
		}
	}
}

func TestAddFolderFailureLeavesSetUntouched(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	s := New(fs, root)
	if err := s.Add("Novel", false); !errdefs.IsIO(err) {
		t.Fatalf("expected io error, got %v", err)
	}
	if len(s.Names()) != 0 {
		t.Fatalf("expected empty set, got %v", s.Names())
	}
}

func TestDeleteCascades(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, root)
	_ = s.Add("Novel", true)
	_ = s.Add("Poem", true)
	_ = afero.WriteFile(fs, root+"/Novel/X.idea", []byte("x"), 0o644)
	_ = afero.WriteFile(fs, root+"/Novel/Y.idea", []byte("y"), 0o644)

	if err := s.Delete("novel"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, p := range []string{root + "/Novel/X.idea", root + "/Novel/Y.idea", root + "/Novel"} {
		if _, err := fs.Stat(p); !os.IsNotExist(err) {
			t.Fatalf("%s still present (err=%v)", p, err)
		}
	}
	if got := s.Names(); !reflect.DeepEqual(got, []string{"Poem"}) {
		t.Fatalf("unexpected names %v", got)
	}
	data, _ := afero.ReadFile(fs, root+"/config/categories.inf")
	if string(data) != "Poem\n" {
		t.Fatalf("category file not rewritten: %q", data)
	}
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, root)
	if err := s.Delete("Ghost"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if _, err := fs.Stat(root + "/config/categories.inf"); !os.IsNotExist(err) {
		t.Fatalf("no-op delete should not write anything")
	}
}

func TestRecoverRegistersFolders(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll(root+"/Lost", 0o755)
	_ = fs.MkdirAll(root+"/config/tags", 0o755)

	s := New(fs, root)
	added, err := s.Recover()
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if !reflect.DeepEqual(added, []string{"Lost"}) {
		t.Fatalf("unexpected recovered names %v", added)
	}
	if _, ok := s.Has("lost"); !ok {
		t.Fatalf("recovered category not registered")
	}
}
