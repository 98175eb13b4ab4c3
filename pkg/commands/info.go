package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ideabook/pkg/commands/options"
	"tableflip.dev/ideabook/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about categories and where ideas are stored.",
		Example: `
ideabook info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, cfg, logger, err := openService()
			if err != nil {
				return output.HandleError(err)
			}
			defer func() { _ = logger.Sync() }()

			s := info.Info{
				Config:  cfg,
				Service: svc,
				Output:  output,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
