package watch

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/catalog"
	"tableflip.dev/ideabook/pkg/printers"
)

// Watch prints storage changes made by other processes until ctx is done.
type Watch struct {
	Service *app.Service
	Logger  *zap.Logger
	Printer *printers.PrettyPrint
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("watch: no service")
	}
	events, err := catalog.Watch(ctx, n.Service.Root(), n.Logger)
	if err != nil {
		return err
	}
	n.Printer.Printf("Watching %s, interrupt to stop.\n", n.Service.Root())

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			n.report(ctx, ev)
		}
	}
}

func (n *Watch) report(ctx context.Context, ev catalog.Event) {
	stamp := time.Now().Format("15:04:05")
	c, err := n.Service.Scan(ctx)
	if c == nil {
		n.Printer.Printf("%s %s changed, rescan failed: %v\n", stamp, ev.Type, err)
		return
	}
	switch ev.Type {
	case catalog.EventCategoryChanged:
		n.Printer.Printf("%s %s changed, %d ideas\n", stamp, ev.Category, c.Len())
	default:
		n.Printer.Printf("%s %s changed, %d ideas, %d tags\n", stamp, ev.Type, c.Len(), len(c.Tags()))
	}
}
