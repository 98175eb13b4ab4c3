package category

import (
	"context"
	"errors"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/commands/options"
	"tableflip.dev/ideabook/pkg/notify"
	"tableflip.dev/ideabook/pkg/printers"
)

var errNoService = errors.New("category: no service")

type List struct {
	Service *app.Service
	Output  *options.OutputOptions
	Printer *printers.PrettyPrint
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	names := n.Service.Categories(ctx)
	return n.Output.Print(names, func() {
		n.Printer.Categories(names)
	})
}

type Add struct {
	Service *app.Service
	Name    string
	Printer *printers.PrettyPrint
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	if err := n.Service.AddCategory(ctx, n.Name); err != nil {
		return err
	}
	n.Printer.Printf("Added category %s.\n", n.Name)
	return nil
}

type Delete struct {
	Service   *app.Service
	Name      string
	Confirmer notify.Confirmer
	Printer   *printers.PrettyPrint
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	deleted, err := n.Service.DeleteCategory(ctx, n.Name, n.Confirmer)
	if err != nil {
		return err
	}
	if deleted {
		n.Printer.Printf("Deleted category %s.\n", n.Name)
	} else {
		n.Printer.Printf("Category %s was not deleted.\n", n.Name)
	}
	return nil
}
