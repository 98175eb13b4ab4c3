package commands

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/ideabook/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report changes other programs make to storage.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			s := watch.Watch{Service: svc, Logger: logger.Named("watch")}
			return s.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
