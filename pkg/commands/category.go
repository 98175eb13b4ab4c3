package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ideabook/pkg/commands/options"
	"tableflip.dev/ideabook/pkg/runner/category"
)

func addCategory(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories", "cat"},
		Short:   "List, add and delete categories.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addCategoryList(cmd)
	addCategoryAdd(cmd)
	addCategoryDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addCategoryList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every category.",
		Example: `
ideabook category list
ideabook category list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return output.HandleError(err)
			}
			defer func() { _ = logger.Sync() }()

			s := category.List{Service: svc, Output: output}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addCategoryAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category.",
		Example: `
ideabook category add Screenplay
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			s := category.Add{Service: svc, Name: args[0]}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func addCategoryDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a category with every idea in it.",
		Example: `
ideabook category delete Screenplay
ideabook category delete Screenplay --yes
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: categoryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			s := category.Delete{Service: svc, Name: args[0], Confirmer: co.Confirmer()}
			return s.Do(cmd.Context())
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
