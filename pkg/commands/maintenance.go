package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ideabook/pkg/commands/options"
	"tableflip.dev/ideabook/pkg/runner/maintenance"
)

func addRecover(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Rebuild the category list and tags from the idea files.",
		Long: `Recover registers every category folder found in storage and rewrites
the tag index from the tags recorded in each idea.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return output.HandleError(err)
			}
			defer func() { _ = logger.Sync() }()

			s := maintenance.Recover{Service: svc, Output: output}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addPurge(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every idea, tag and category.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			s := maintenance.Purge{Service: svc, Confirmer: co.Confirmer()}
			return s.Do(cmd.Context())
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
