package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/ideabook/pkg/commands/options"
	"tableflip.dev/ideabook/pkg/runner/tags"
)

func addTag(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "tag",
		Aliases: []string{"tags"},
		Short:   "List tags and file ideas under them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTagList(cmd)
	addTagShow(cmd)
	addTagAdd(cmd)
	addTagRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addTagList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every tag with its ideas.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return output.HandleError(err)
			}
			defer func() { _ = logger.Sync() }()

			s := tags.List{Service: svc, Output: output}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addTagShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <tag>",
		Short: "Show the ideas filed under a tag.",
		Example: `
ideabook tag show fantasy
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return output.HandleError(err)
			}
			defer func() { _ = logger.Sync() }()

			s := tags.Show{Service: svc, ID: args[0], Output: output}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addTagAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <tag> <idea...>",
		Short: "Tag an idea.",
		Example: `
ideabook tag add epic Dragons
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			s := tags.Add{Service: svc, ID: args[0], Idea: strings.Join(args[1:], " ")}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func addTagRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove <tag> <idea...>",
		Aliases: []string{"rm"},
		Short:   "Remove a tag from an idea.",
		Example: `
ideabook tag remove epic Dragons
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			s := tags.Remove{Service: svc, ID: args[0], Idea: strings.Join(args[1:], " ")}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
