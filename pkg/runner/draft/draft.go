package draft

import (
	"context"
	"errors"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/commands/options"
	"tableflip.dev/ideabook/pkg/draft"
	"tableflip.dev/ideabook/pkg/idea"
	"tableflip.dev/ideabook/pkg/notify"
	"tableflip.dev/ideabook/pkg/printers"
)

var errNoService = errors.New("draft: no service")

type Save struct {
	Service *app.Service
	Draft   draft.Draft
	Printer *printers.PrettyPrint
}

func (n *Save) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	if n.Draft.Empty() {
		n.Printer.Printf("Nothing to keep.\n")
		return nil
	}
	if err := n.Service.SaveDraft(ctx, n.Draft); err != nil {
		return err
	}
	n.Printer.Printf("Draft kept for later.\n")
	return nil
}

// Restore offers the stored draft once. With Submit an accepted draft is
// saved as an idea.
type Restore struct {
	Service   *app.Service
	Confirmer notify.Confirmer
	Submit    bool
	Output    *options.OutputOptions
	Printer   *printers.PrettyPrint
}

func (n *Restore) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	d, ok, err := n.Service.OfferDraft(ctx, n.Confirmer)
	if err != nil {
		return err
	}
	if !ok {
		n.Printer.Printf("No draft restored.\n")
		return nil
	}

	if n.Submit {
		i := idea.New(d.Name, d.Category, d.Body, idea.SplitTags(d.Tags), idea.Now())
		if err := n.Service.SaveIdea(ctx, i); err != nil {
			// Keep what was typed when it cannot be saved yet.
			_ = n.Service.SaveDraft(ctx, d)
			return err
		}
		n.Printer.Printf("Saved %s in %s.\n", i.Name(), i.Category())
		return nil
	}

	return n.Output.Print(d, func() {
		n.Printer.Draft(d)
	})
}
