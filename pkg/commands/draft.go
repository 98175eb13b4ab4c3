package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/ideabook/pkg/commands/options"
	pkgdraft "tableflip.dev/ideabook/pkg/draft"
	"tableflip.dev/ideabook/pkg/runner/draft"
)

func addDraft(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Keep an unfinished idea and pick it up later.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addDraftSave(cmd)
	addDraftRestore(cmd)

	topLevel.AddCommand(cmd)
}

func addDraftSave(topLevel *cobra.Command) {
	co := &options.CategoryOptions{}
	io := &options.IdeaOptions{}

	cmd := &cobra.Command{
		Use:   "save [name...]",
		Short: "Keep what was typed so far.",
		Example: `
ideabook draft save Dragons --category Novel --body "Half a thought"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			body, err := io.ReadBody(cmd.InOrStdin())
			if err != nil {
				return err
			}
			svc, _, logger, err := openService()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			s := draft.Save{
				Service: svc,
				Draft: pkgdraft.Draft{
					Name:     strings.Join(args, " "),
					Category: co.Category,
					Tags:     io.Tags,
					Body:     body,
				},
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddCategoryArgs(cmd, co, "Category picked so far.")
	options.AddIdeaArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addDraftRestore(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}
	submit := false

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Offer the kept draft once; it is discarded afterwards.",
		Example: `
ideabook draft restore
ideabook draft restore --save --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return output.HandleError(err)
			}
			defer func() { _ = logger.Sync() }()

			s := draft.Restore{
				Service:   svc,
				Confirmer: co.Confirmer(),
				Submit:    submit,
				Output:    output,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&submit, "save", false, "Save the restored draft as an idea.")
	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
