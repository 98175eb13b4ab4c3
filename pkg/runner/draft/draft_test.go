package draft

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/draft"
	"tableflip.dev/ideabook/pkg/notify"
	"tableflip.dev/ideabook/pkg/printers"
	"tableflip.dev/ideabook/pkg/store"
)

func init() {
	color.NoColor = true
}

func newService(t *testing.T) *app.Service {
	t.Helper()
	cfg := &store.Settings{RootDir: "/data/Ideabook", Categories: []string{"Novel"}}
	svc, err := app.Open(cfg, app.WithFs(afero.NewMemMapFs()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return svc
}

func TestRestoreSubmits(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	var buf bytes.Buffer
	pp := &printers.PrettyPrint{Out: &buf}

	save := Save{Service: svc, Draft: draft.Draft{Name: "Dragons", Category: "Novel", Tags: "fantasy", Body: "fire"}, Printer: pp}
	if err := save.Do(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	restore := Restore{Service: svc, Confirmer: notify.Always(true), Submit: true, Printer: pp}
	if err := restore.Do(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	i, err := svc.LoadIdea(ctx, "Dragons")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if i.Body() != "fire" || i.TagsCommaSeparated() != "fantasy" {
		t.Errorf("unexpected idea %q %q", i.Body(), i.TagsCommaSeparated())
	}

	buf.Reset()
	if err := restore.Do(ctx); err != nil {
		t.Fatalf("second restore: %v", err)
	}
	if !strings.Contains(buf.String(), "No draft restored.") {
		t.Errorf("draft should be offered once, got %q", buf.String())
	}
}

func TestRestoreKeepsInvalidDraft(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	pp := &printers.PrettyPrint{Out: &bytes.Buffer{}}

	// No category that exists, so submitting fails.
	if err := (&Save{Service: svc, Draft: draft.Draft{Name: "Dragons", Category: "Poem"}, Printer: pp}).Do(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	restore := Restore{Service: svc, Confirmer: notify.Always(true), Submit: true, Printer: pp}
	if err := restore.Do(ctx); err == nil {
		t.Fatalf("expected submit to fail")
	}

	var buf bytes.Buffer
	show := Restore{Service: svc, Confirmer: notify.Always(true), Printer: &printers.PrettyPrint{Out: &buf}}
	if err := show.Do(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !strings.Contains(buf.String(), "Dragons") {
		t.Errorf("draft should have been kept, got %q", buf.String())
	}
}

func TestSaveEmpty(t *testing.T) {
	var buf bytes.Buffer
	save := Save{Service: newService(t), Draft: draft.Draft{Category: "Novel"}, Printer: &printers.PrettyPrint{Out: &buf}}
	if err := save.Do(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(buf.String(), "Nothing to keep.") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
