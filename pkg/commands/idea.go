package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/ideabook/pkg/commands/options"
	"tableflip.dev/ideabook/pkg/runner/idea"
)

func addIdea(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "idea",
		Short: "Add, edit, show and delete ideas.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addIdeaAdd(cmd)
	addIdeaEdit(cmd)
	addIdeaShow(cmd)
	addIdeaDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addIdeaAdd(topLevel *cobra.Command) {
	co := &options.CategoryOptions{}
	io := &options.IdeaOptions{}

	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add an idea to a category.",
		Example: `
ideabook idea add Dragons --category Novel --tags "fantasy, epic" --body "A story about dragons."
ideabook idea add Ballad of the Sea -c Poem -f notes.txt
`,
		Args: cobra.MinimumNArgs(1),
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

			s := idea.Add{
				Service:  svc,
				Name:     strings.Join(args, " "),
				Category: co.Category,
				Tags:     io.TagList(),
				Body:     body,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddCategoryArgs(cmd, co, "Category that holds the idea.")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletions)
	options.AddIdeaArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addIdeaEdit(topLevel *cobra.Command) {
	co := &options.CategoryOptions{}
	io := &options.IdeaOptions{}

	cmd := &cobra.Command{
		Use:   "edit <name...>",
		Short: "Change the name, category, tags or text of an idea.",
		Example: `
ideabook idea edit Dragons --name "Dragon Riders"
ideabook idea edit Dragons --category Poem --tags "fantasy"
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: ideaCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s := idea.Edit{
				Name:     strings.Join(args, " "),
				Rename:   io.Name,
				Category: co.Category,
			}
			if cmd.Flags().Changed("tags") {
				tags := io.TagList()
				s.Tags = &tags
			}
			if cmd.Flags().Changed("body") || cmd.Flags().Changed("body-file") {
				body, err := io.ReadBody(cmd.InOrStdin())
				if err != nil {
					return err
				}
				s.Body = &body
			}

			svc, _, logger, err := openService()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			s.Service = svc
			return s.Do(cmd.Context())
		},
	}

	options.AddCategoryArgs(cmd, co, "Move the idea to this category.")
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletions)
	options.AddIdeaArgs(cmd, io)
	options.AddRenameArg(cmd, io)
	topLevel.AddCommand(cmd)
}

func addIdeaShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <name...>",
		Short: "Show an idea.",
		Example: `
ideabook idea show Dragons
ideabook idea show dragons -o yaml
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: ideaCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return output.HandleError(err)
			}
			defer func() { _ = logger.Sync() }()

			s := idea.Show{Service: svc, Name: strings.Join(args, " "), Output: output}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addIdeaDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "delete <name...>",
		Aliases: []string{"rm"},
		Short:   "Delete an idea and drop it from its tags.",
		Example: `
ideabook idea delete Dragons
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: ideaCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			s := idea.Delete{Service: svc, Name: strings.Join(args, " "), Confirmer: co.Confirmer()}
			return s.Do(cmd.Context())
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
