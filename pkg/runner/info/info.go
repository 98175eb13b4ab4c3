package info

import (
	"context"
	"errors"
	"os"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/commands/options"
	"tableflip.dev/ideabook/pkg/printers"
	"tableflip.dev/ideabook/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
	Output  *options.OutputOptions
	Printer *printers.PrettyPrint
}

func (n *Info) Do(ctx context.Context) error {
	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Service == nil {
		return errors.New("failed to open the idea book")
	}

	r, err := n.Service.Report(ctx)
	if err != nil && len(r.Sections) == 0 {
		return err
	}

	return n.Output.Print(r, func() {
		if override := os.Getenv("IDEABOOK_CONFIG_PATH"); override != "" {
			n.Printer.Printf("IDEABOOK_CONFIG_PATH found on env, using %s\n", override)
		} else {
			n.Printer.Printf("IDEABOOK_CONFIG_PATH env var not set\n")
		}
		n.Printer.Printf("Config.root: %s\n", n.Config.Root())
		n.Printer.Printf("Config.tags.backend: %s\n", n.Config.TagBackend())
		n.Printer.NewLine()
		n.Printer.Report(r)
		if err != nil {
			n.Printer.Printf("some ideas could not be read: %v\n", err)
		}
	})
}
