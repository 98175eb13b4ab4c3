package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/afero"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/idea"
	"tableflip.dev/ideabook/pkg/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := &store.Settings{RootDir: "/data/Ideabook", Categories: []string{"Novel", "Poem"}}
	a, err := app.Open(cfg, app.WithFs(afero.NewMemMapFs()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	for _, i := range []*idea.Idea{
		idea.New("Dragons", "Novel", "fire", []string{"fantasy"}, idea.Now()),
		idea.New("Elves", "Poem", "", []string{"fantasy", "forest"}, idea.Now()),
		idea.New("Robots", "Novel", "", nil, idea.Now()),
	} {
		if err := a.SaveIdea(ctx, i); err != nil {
			t.Fatalf("save %s: %v", i.Name(), err)
		}
	}
	return NewService(a)
}

func TestServiceListCategories(t *testing.T) {
	svc := newTestService(t)
	got, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []CategorySummary{{Name: "Novel", IdeaCount: 2}, {Name: "Poem", IdeaCount: 1}}
	if len(got) != len(want) {
		t.Fatalf("unexpected summaries %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("summary %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestServiceSearch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Search(ctx, "fant", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Count != 2 {
		t.Fatalf("expected both fantasy ideas, got %+v", res.Hits)
	}

	res, err = svc.Search(ctx, "", "Novel")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, h := range res.Hits {
		if h.Category != "Novel" {
			t.Errorf("hit %+v outside Novel", h)
		}
	}
	if res.Count != 2 {
		t.Errorf("expected two novels, got %+v", res.Hits)
	}
}

func TestServiceIdea(t *testing.T) {
	svc := newTestService(t)
	view, err := svc.Idea(context.Background(), "dragons")
	if err != nil {
		t.Fatalf("idea: %v", err)
	}
	if view.Name != "Dragons" || view.Category != "Novel" || view.Body != "fire" {
		t.Errorf("unexpected view %+v", view)
	}
	if _, err := svc.Idea(context.Background(), "Unicorns"); err == nil {
		t.Errorf("expected missing idea error")
	}
	if _, err := svc.Idea(context.Background(), "  "); err == nil {
		t.Errorf("expected empty name error")
	}
}

func TestServiceTags(t *testing.T) {
	svc := newTestService(t)
	tags, err := svc.ListTags(context.Background())
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if len(tags) != 2 || tags[0].ID != "fantasy" || len(tags[0].Ideas) != 2 {
		t.Fatalf("unexpected tags %+v", tags)
	}

	missing, err := svc.Tag(context.Background(), "space")
	if err != nil {
		t.Fatalf("missing tag: %v", err)
	}
	if len(missing.Ideas) != 0 {
		t.Errorf("expected empty tag, got %+v", missing)
	}
}

func TestServiceCreateIdea(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	view, err := svc.CreateIdea(ctx, CreateIdeaOptions{Name: "Ghosts", Category: "poem", Tags: []string{"spooky"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Category != "Poem" {
		t.Errorf("expected stored category spelling, got %q", view.Category)
	}
	if _, err := svc.CreateIdea(ctx, CreateIdeaOptions{Name: "ghosts", Category: "Novel"}); err == nil {
		t.Errorf("expected duplicate error")
	}
}

func TestServiceUnconfigured(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.ListCategories(context.Background()); err == nil {
		t.Errorf("expected error without app")
	}
}

func callTool(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatalf("empty result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content %T", res.Content[0])
	}
	return res, text.Text
}

func TestSearchIdeasTool(t *testing.T) {
	svc := newTestService(t)
	res, text := callTool(t, searchIdeas(svc), map[string]any{"query": "rob"})
	if res.IsError {
		t.Fatalf("tool error: %s", text)
	}
	var got SearchResult
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Count != 1 || got.Hits[0].Name != "Robots" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestGetIdeaToolRequiresName(t *testing.T) {
	svc := newTestService(t)
	res, text := callTool(t, getIdea(svc), map[string]any{})
	if !res.IsError {
		t.Fatalf("expected tool error, got %s", text)
	}
	if !strings.Contains(text, "name") {
		t.Errorf("error should name the argument: %s", text)
	}
}

func TestServerRegisters(t *testing.T) {
	svc := newTestService(t)
	srv := Runner{Service: svc.app}.Server()
	if srv == nil {
		t.Fatalf("expected server")
	}
}
