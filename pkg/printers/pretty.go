package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/draft"
	"tableflip.dev/ideabook/pkg/idea"
	"tableflip.dev/ideabook/pkg/tag"
)

const timeLayout = "2006-01-02 15:04"

// PrettyPrint renders for humans. A nil PrettyPrint writes to color.Output.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) Writer() io.Writer {
	if pp != nil && pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(pp.Writer(), format, a...)
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Writer(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.Writer(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	pp.counted(title, count, "idea", "ideas")
}

func (pp *PrettyPrint) counted(title string, count int, one, many string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.Writer(), title)
	_, _ = c.Fprintf(pp.Writer(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.Writer(), " "+one)
	default:
		_, _ = c.Fprintln(pp.Writer(), " "+many)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.Writer(), " none\n\n")
}

// Names prints the ideas filed under title.
func (pp *PrettyPrint) Names(title string, names []string) {
	pp.TitleWithCount(title, len(names))
	pp.list(names)
}

// Categories prints the category list.
func (pp *PrettyPrint) Categories(names []string) {
	pp.counted("Categories", len(names), "category", "categories")
	pp.list(names)
}

func (pp *PrettyPrint) list(names []string) {
	if len(names) == 0 {
		pp.none()
		return
	}
	for _, n := range names {
		_, _ = fmt.Fprintf(pp.Writer(), "  %s\n", n)
	}
	pp.NewLine()
}

// Hits prints search results with their category.
func (pp *PrettyPrint) Hits(query string, hits []string, categoryOf func(string) string) {
	title := "Ideas"
	if query != "" {
		title = fmt.Sprintf("Ideas matching %q", query)
	}
	pp.TitleWithCount(title, len(hits))
	if len(hits) == 0 {
		pp.none()
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	table := uitable.New()
	table.MaxColWidth = 60
	for _, h := range hits {
		table.AddRow("  "+h, y.Sprint(categoryOf(h)))
	}
	_, _ = fmt.Fprintln(pp.Writer(), table)
	pp.NewLine()
}

// Idea prints every field of a record.
func (pp *PrettyPrint) Idea(i *idea.Idea) {
	pp.Title(i.Name())
	f := color.New(color.Faint)

	table := uitable.New()
	table.AddRow(f.Sprint("category"), i.Category())
	tags := i.TagsCommaSeparated()
	if tags == "" {
		tags = f.Sprint("none")
	}
	table.AddRow(f.Sprint("tags"), tags)
	table.AddRow(f.Sprint("created"), i.Created().Local().Format(timeLayout))
	table.AddRow(f.Sprint("modified"), i.Modified().Local().Format(timeLayout))
	_, _ = fmt.Fprintln(pp.Writer(), table)

	if body := strings.TrimSpace(i.Body()); body != "" {
		pp.NewLine()
		_, _ = fmt.Fprintln(pp.Writer(), body)
	}
	pp.NewLine()
}

// Tags prints one row per tag with the ideas it holds.
func (pp *PrettyPrint) Tags(tags []*tag.Tag) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.Writer(), "Tags")
	if len(tags) == 0 {
		pp.none()
		return
	}
	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	for _, tg := range tags {
		table.AddRow("  "+tg.ID, fmt.Sprintf("%d", tg.Len()), strings.Join(tg.Ideas(), ", "))
	}
	_, _ = fmt.Fprintln(pp.Writer(), table)
	pp.NewLine()
}

// Tag prints the ideas of a single tag.
func (pp *PrettyPrint) Tag(tg *tag.Tag) {
	pp.TitleWithCount(tg.ID, tg.Len())
	if tg.Len() == 0 {
		pp.none()
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	table := uitable.New()
	for _, name := range tg.Ideas() {
		table.AddRow("  "+name, y.Sprint(tg.Category(name)))
	}
	_, _ = fmt.Fprintln(pp.Writer(), table)
	pp.NewLine()
}

// Report prints every category with the ideas filed under it.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.Writer(), "%s: %d ideas, %d tags\n\n", r.Root, r.Ideas, r.Tags)
	for _, s := range r.Sections {
		pp.Names(s.Category, s.Ideas)
	}
}

// Recovered prints the outcome of a recover run.
func (pp *PrettyPrint) Recovered(r app.RecoverResult) {
	pp.Title("Recovered")
	table := uitable.New()
	table.AddRow("  categories added", len(r.Categories))
	table.AddRow("  ideas indexed", r.Ideas)
	table.AddRow("  tags", r.Tags)
	_, _ = fmt.Fprintln(pp.Writer(), table)
	if len(r.Skipped) > 0 {
		w := color.New(color.FgYellow)
		_, _ = w.Fprintf(pp.Writer(), "  skipped: %s\n", strings.Join(r.Skipped, ", "))
	}
	pp.NewLine()
}

// Draft prints the fields of an unsaved idea.
func (pp *PrettyPrint) Draft(d draft.Draft) {
	pp.Title("Draft")
	f := color.New(color.Faint)
	table := uitable.New()
	table.AddRow(f.Sprint("name"), d.Name)
	table.AddRow(f.Sprint("category"), d.Category)
	table.AddRow(f.Sprint("tags"), d.Tags)
	_, _ = fmt.Fprintln(pp.Writer(), table)
	if d.Body != "" {
		pp.NewLine()
		_, _ = fmt.Fprintln(pp.Writer(), d.Body)
	}
	pp.NewLine()
}
