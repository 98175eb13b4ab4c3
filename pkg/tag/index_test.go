package tag

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/afero"

	"tableflip.dev/ideabook/pkg/errdefs"
	"tableflip.dev/ideabook/pkg/idea"
)

const root = "/data/Ideabook"

// recording counts writes and deletes per tag id.
type recording struct {
	Backend
	writes  map[string]int
	deletes map[string]int
}

func newRecording(b Backend) *recording {
	return &recording{Backend: b, writes: map[string]int{}, deletes: map[string]int{}}
}

func (r *recording) Write(t *Tag) error {
	r.writes[t.ID]++
	return r.Backend.Write(t)
}

func (r *recording) Delete(id string) error {
	r.deletes[id]++
	return r.Backend.Delete(id)
}

func (r *recording) reset() {
	r.writes = map[string]int{}
	r.deletes = map[string]int{}
}

func newIndex(t *testing.T) (*Index, *recording, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	rec := newRecording(NewFileBackend(fs, root))
	return NewIndex(rec, nil), rec, fs
}

func TestAddCreatesAndAppends(t *testing.T) {
	ix, rec, fs := newIndex(t)

	if err := ix.AddIdeaToTag("space", "Rocket", "Novel"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if ok, _ := afero.Exists(fs, root+"/config/tags/space.tag"); !ok {
		t.Fatalf("tag file not created")
	}
	if err := ix.AddIdeaToTag("SPACE", "Boat", "Poem"); err != nil {
		t.Fatalf("add: %v", err)
	}
	rec.reset()
	if err := ix.AddIdeaToTag("Space", "rocket", "Novel"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(rec.writes) != 0 {
		t.Fatalf("existing entry should not rewrite the tag: %v", rec.writes)
	}

	tg, err := ix.LoadTag("space")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(tg.Ideas(), []string{"Boat", "Rocket"}) {
		t.Fatalf("unexpected ideas %v", tg.Ideas())
	}
	ids, _ := rec.IDs()
	if !reflect.DeepEqual(ids, []string{"space"}) {
		t.Fatalf("tag id should keep its first spelling, got %v", ids)
	}
}

func TestRemoveLastIdeaDeletesTag(t *testing.T) {
	ix, _, fs := newIndex(t)
	_ = ix.AddIdeaToTag("space", "Rocket", "Novel")
	_ = ix.AddIdeaToTag("space", "Boat", "Poem")

	if err := ix.RemoveIdeaFromTag("space", "boat"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	tg, _ := ix.LoadTag("space")
	if !reflect.DeepEqual(tg.Ideas(), []string{"Rocket"}) {
		t.Fatalf("unexpected ideas %v", tg.Ideas())
	}

	if err := ix.RemoveIdeaFromTag("space", "Rocket"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ok, _ := afero.Exists(fs, root+"/config/tags/space.tag"); ok {
		t.Fatalf("empty tag should be deleted")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	ix, rec, _ := newIndex(t)
	if err := ix.RemoveIdeaFromTag("ghost", "Rocket"); err != nil {
		t.Fatalf("missing tag: %v", err)
	}
	_ = ix.AddIdeaToTag("space", "Rocket", "Novel")
	rec.reset()
	if err := ix.RemoveIdeaFromTag("space", "Boat"); err != nil {
		t.Fatalf("missing idea: %v", err)
	}
	if len(rec.writes)+len(rec.deletes) != 0 {
		t.Fatalf("no-op remove touched storage: %v %v", rec.writes, rec.deletes)
	}
}

func TestLoadTagMissing(t *testing.T) {
	ix, _, _ := newIndex(t)
	tg, err := ix.LoadTag("ghost")
	if !errdefs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if tg == nil || tg.ID != "ghost" || tg.Len() != 0 {
		t.Fatalf("expected empty tag, got %+v", tg)
	}
}

func TestLoadAllOrderedAndSkipsBroken(t *testing.T) {
	ix, _, fs := newIndex(t)
	_ = ix.AddIdeaToTag("zeta", "Rocket", "Novel")
	_ = ix.AddIdeaToTag("alpha", "Boat", "Poem")
	_ = afero.WriteFile(fs, root+"/config/tags/broken.tag", []byte("<tag><content>"), 0o644)
	_ = afero.WriteFile(fs, root+"/config/tags/notes.txt", []byte("ignored"), 0o644)

	tags, err := ix.LoadAll()
	if !errdefs.IsIO(err) {
		t.Fatalf("expected broken tag to be reported, got %v", err)
	}
	var ids []string
	for _, tg := range tags {
		ids = append(ids, tg.ID)
	}
	if !reflect.DeepEqual(ids, []string{"alpha", "zeta"}) {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestReconcileTagDiff(t *testing.T) {
	ix, rec, fs := newIndex(t)
	old := idea.New("Rocket", "Novel", "", []string{"a", "b"}, time.Time{})
	if err := Reconcile(ix, nil, old); err != nil {
		t.Fatalf("reconcile new: %v", err)
	}
	bPath := root + "/config/tags/b.tag"
	before, _ := fs.Stat(bPath)
	beforeData, _ := afero.ReadFile(fs, bPath)

	updated := old.Clone()
	updated.SetTags([]string{"b", "c"})
	rec.reset()
	if err := Reconcile(ix, old, updated); err != nil {
		t.Fatalf("reconcile edit: %v", err)
	}

	if ok, _ := afero.Exists(fs, root+"/config/tags/a.tag"); ok {
		t.Fatalf("tag a should be deleted")
	}
	if rec.writes["b"] != 0 || rec.deletes["b"] != 0 {
		t.Fatalf("tag b should be untouched")
	}
	after, _ := fs.Stat(bPath)
	afterData, _ := afero.ReadFile(fs, bPath)
	if !after.ModTime().Equal(before.ModTime()) || string(afterData) != string(beforeData) {
		t.Fatalf("tag b file changed")
	}
	b, _ := ix.LoadTag("b")
	if b.Len() != 1 || !b.Has("Rocket") {
		t.Fatalf("idea should be in b exactly once: %v", b.Ideas())
	}
	c, err := ix.LoadTag("c")
	if err != nil || !c.Has("Rocket") {
		t.Fatalf("idea should be added to c: %v %v", c.Ideas(), err)
	}
}

func TestReconcileKeepsOtherIdeasInRemovedTag(t *testing.T) {
	ix, _, _ := newIndex(t)
	_ = ix.AddIdeaToTag("a", "Boat", "Poem")
	old := idea.New("Rocket", "Novel", "", []string{"a"}, time.Time{})
	_ = Reconcile(ix, nil, old)

	updated := old.Clone()
	updated.SetTags(nil)
	if err := Reconcile(ix, old, updated); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	a, err := ix.LoadTag("a")
	if err != nil || !reflect.DeepEqual(a.Ideas(), []string{"Boat"}) {
		t.Fatalf("unexpected tag a: %v %v", a.Ideas(), err)
	}
}

func TestReconcileMoveRewritesKeptTags(t *testing.T) {
	ix, rec, _ := newIndex(t)
	old := idea.New("Rocket", "Novel", "", []string{"space"}, time.Time{})
	_ = Reconcile(ix, nil, old)

	updated := old.Clone()
	updated.SetName("Spaceship")
	updated.SetCategory("Poem")
	rec.reset()
	if err := Reconcile(ix, old, updated); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if rec.writes["space"] != 1 {
		t.Fatalf("kept tag should be rewritten once, got %d", rec.writes["space"])
	}
	tg, _ := ix.LoadTag("space")
	if !reflect.DeepEqual(tg.Ideas(), []string{"Spaceship"}) || tg.Category("Spaceship") != "Poem" {
		t.Fatalf("entry not moved: %v %q", tg.Ideas(), tg.Category("Spaceship"))
	}
}

func TestReconcileDelete(t *testing.T) {
	ix, _, _ := newIndex(t)
	old := idea.New("Rocket", "Novel", "", []string{"a", "b"}, time.Time{})
	_ = Reconcile(ix, nil, old)

	if err := Reconcile(ix, old, nil); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	tags, err := ix.LoadAll()
	if err != nil || len(tags) != 0 {
		t.Fatalf("expected no tags, got %v %v", tags, err)
	}
}

func TestDiskvBackend(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tags.kv")
	ix := NewIndex(NewDiskvBackend(dir), nil)

	if err := ix.AddIdeaToTag("space", "Rocket", "Novel"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := ix.AddIdeaToTag("Space", "Boat", "Poem"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := ix.AddIdeaToTag("fuel", "Rocket", "Novel"); err != nil {
		t.Fatalf("add: %v", err)
	}

	tags, err := ix.LoadAll()
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(tags) != 2 || tags[0].ID != "fuel" || tags[1].ID != "space" {
		t.Fatalf("unexpected tags %+v", tags)
	}
	if !reflect.DeepEqual(tags[1].Ideas(), []string{"Boat", "Rocket"}) {
		t.Fatalf("unexpected ideas %v", tags[1].Ideas())
	}

	if err := ix.RemoveIdeaFromTag("fuel", "Rocket"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := ix.LoadTag("fuel"); !errdefs.IsNotFound(err) {
		t.Fatalf("expected fuel to be erased, got %v", err)
	}

	reopened := NewIndex(NewDiskvBackend(dir), nil)
	tg, err := reopened.LoadTag("SPACE")
	if err != nil || tg.Len() != 2 {
		t.Fatalf("store not persisted: %+v %v", tg, err)
	}
	if err := reopened.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if ids, _ := NewDiskvBackend(dir).IDs(); len(ids) != 0 {
		t.Fatalf("expected empty store, got %v", ids)
	}
}
