package tags

import (
	"context"
	"errors"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/commands/options"
	"tableflip.dev/ideabook/pkg/errdefs"
	"tableflip.dev/ideabook/pkg/printers"
)

var errNoService = errors.New("tags: no service")

type List struct {
	Service *app.Service
	Output  *options.OutputOptions
	Printer *printers.PrettyPrint
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	// Broken tags are skipped and reported; the rest still print.
	all, err := n.Service.Tags(ctx)
	if perr := n.Output.Print(app.TagViews(all), func() {
		n.Printer.Tags(all)
	}); perr != nil {
		return perr
	}
	return err
}

type Show struct {
	Service *app.Service
	ID      string
	Output  *options.OutputOptions
	Printer *printers.PrettyPrint
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	t, err := n.Service.Tag(ctx, n.ID)
	if err != nil && !errdefs.IsNotFound(err) {
		return err
	}
	return n.Output.Print(app.TagViewOf(t), func() {
		n.Printer.Tag(t)
	})
}

// Add files Idea under the tag ID.
type Add struct {
	Service *app.Service
	ID      string
	Idea    string
	Printer *printers.PrettyPrint
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	if err := n.Service.AddIdeaToTag(ctx, n.ID, n.Idea); err != nil {
		return err
	}
	n.Printer.Printf("Tagged %s with %s.\n", n.Idea, n.ID)
	return nil
}

type Remove struct {
	Service *app.Service
	ID      string
	Idea    string
	Printer *printers.PrettyPrint
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	if err := n.Service.RemoveIdeaFromTag(ctx, n.ID, n.Idea); err != nil {
		return err
	}
	n.Printer.Printf("Removed %s from %s.\n", n.Idea, n.ID)
	return nil
}
