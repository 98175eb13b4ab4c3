package idea

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/commands/options"
	"tableflip.dev/ideabook/pkg/idea"
	"tableflip.dev/ideabook/pkg/notify"
	"tableflip.dev/ideabook/pkg/printers"
)

var errNoService = errors.New("idea: no service")

type Add struct {
	Service  *app.Service
	Name     string
	Category string
	Tags     []string
	Body     string
	Printer  *printers.PrettyPrint
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	i := idea.New(n.Name, n.Category, n.Body, n.Tags, idea.Now())
	if err := n.Service.SaveIdea(ctx, i); err != nil {
		return err
	}
	n.Printer.Printf("Saved %s in %s.\n", i.Name(), i.Category())
	return nil
}

// Edit changes only the fields that are set.
type Edit struct {
	Service  *app.Service
	Name     string
	Rename   string
	Category string
	Tags     *[]string
	Body     *string
	Printer  *printers.PrettyPrint
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	old, err := n.Service.LoadIdea(ctx, n.Name)
	if err != nil {
		return err
	}
	updated := old.Clone()
	if n.Rename != "" && n.Rename != old.Name() {
		updated.SetName(n.Rename)
	}
	if n.Category != "" && n.Category != old.Category() {
		updated.SetCategory(n.Category)
	}
	if n.Tags != nil {
		updated.SetTags(*n.Tags)
	}
	if n.Body != nil {
		updated.SetBody(*n.Body)
	}
	if !updated.WasModified() {
		n.Printer.Printf("Nothing to change for %s.\n", old.Name())
		return nil
	}
	if err := n.Service.EditIdea(ctx, old, updated); err != nil {
		return err
	}
	n.Printer.Printf("Updated %s.\n", updated.Name())
	return nil
}

type Show struct {
	Service *app.Service
	Name    string
	Output  *options.OutputOptions
	Printer *printers.PrettyPrint
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	i, err := n.Service.LoadIdea(ctx, n.Name)
	if err != nil {
		return err
	}
	return n.Output.Print(app.ViewOf(i), func() {
		n.Printer.Idea(i)
	})
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
	i, err := n.Service.LoadIdea(ctx, n.Name)
	if err != nil {
		return err
	}
	c := n.Confirmer
	if c == nil {
		c = notify.Always(false)
	}
	yes, err := c.Confirm(fmt.Sprintf("Are you sure you want to delete %q?", i.Name()))
	if err != nil {
		return err
	}
	if !yes {
		n.Printer.Printf("%s was not deleted.\n", i.Name())
		return nil
	}
	if err := n.Service.DeleteIdea(ctx, i.Name(), i.Category()); err != nil {
		return err
	}
	n.Printer.Printf("Deleted %s.\n", i.Name())
	return nil
}
