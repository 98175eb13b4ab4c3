package search

import (
	"context"
	"errors"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/commands/options"
	"tableflip.dev/ideabook/pkg/printers"
)

var errNoService = errors.New("search: no service")

type Search struct {
	Service     *app.Service
	Query       string
	Category    string
	Interactive bool
	Output      *options.OutputOptions
	Printer     *printers.PrettyPrint
}

func (n *Search) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	if n.Interactive {
		return n.interactive(ctx)
	}

	hits, err := n.Service.Search(ctx, n.Query, n.Category)
	if err != nil {
		return err
	}
	categoryOf, err := n.categories(ctx)
	if err != nil {
		return err
	}
	out := make([]app.Hit, 0, len(hits))
	for _, h := range hits {
		out = append(out, app.Hit{Name: h, Category: categoryOf(h)})
	}
	return n.Output.Print(out, func() {
		n.Printer.Hits(n.Query, hits, categoryOf)
	})
}

func (n *Search) categories(ctx context.Context) (func(string) string, error) {
	c, err := n.Service.Catalog(ctx)
	if c == nil {
		return nil, err
	}
	return c.Category, nil
}

// interactive narrows the list while typing; every keystroke goes through
// the same engine so an extended query only filters the previous results.
func (n *Search) interactive(ctx context.Context) error {
	all, err := n.Service.Search(ctx, "", n.Category)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		n.Printer.Names("Ideas", nil)
		return nil
	}

	m := &matcher{search: func(q string) []string {
		hits, _ := n.Service.Search(ctx, q, n.Category)
		return hits
	}}

	prompt := promptui.Select{
		Label:             "Search ideas",
		Items:             all,
		Size:              12,
		Searcher:          m.match(all),
		StartInSearchMode: true,
	}
	_, picked, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		return err
	}

	i, err := n.Service.LoadIdea(ctx, picked)
	if err != nil {
		return err
	}
	return n.Output.Print(app.ViewOf(i), func() {
		n.Printer.Idea(i)
	})
}

// matcher memoizes the hit set of the current input.
type matcher struct {
	search func(string) []string

	input string
	ready bool
	hits  map[string]struct{}
}

func (m *matcher) match(items []string) func(string, int) bool {
	return func(input string, index int) bool {
		input = strings.TrimSpace(input)
		if !m.ready || input != m.input {
			m.input = input
			m.ready = true
			m.hits = make(map[string]struct{})
			for _, h := range m.search(input) {
				m.hits[h] = struct{}{}
			}
		}
		_, ok := m.hits[items[index]]
		return ok
	}
}
