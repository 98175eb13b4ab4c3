package maintenance

import (
	"context"
	"errors"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/commands/options"
	"tableflip.dev/ideabook/pkg/notify"
	"tableflip.dev/ideabook/pkg/printers"
)

var errNoService = errors.New("maintenance: no service")

// Recover rebuilds the category list and tag index from the idea files.
type Recover struct {
	Service *app.Service
	Output  *options.OutputOptions
	Printer *printers.PrettyPrint
}

func (n *Recover) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	r, err := n.Service.Recover(ctx)
	if perr := n.Output.Print(r, func() {
		n.Printer.Recovered(r)
	}); perr != nil {
		return perr
	}
	return err
}

// Purge removes all stored data.
type Purge struct {
	Service   *app.Service
	Confirmer notify.Confirmer
	Printer   *printers.PrettyPrint
}

func (n *Purge) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	purged, err := n.Service.Purge(ctx, n.Confirmer)
	if err != nil {
		return err
	}
	if purged {
		n.Printer.Printf("Removed %s.\n", n.Service.Root())
	} else {
		n.Printer.Printf("Nothing was removed.\n")
	}
	return nil
}
