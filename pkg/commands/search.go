package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/ideabook/pkg/commands/options"
	"tableflip.dev/ideabook/pkg/runner/search"
)

func addSearch(topLevel *cobra.Command) {
	co := &options.CategoryOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Find ideas by name or tag.",
		Long: `Search lists the ideas whose name contains the query, ignoring case,
plus every idea filed under a tag whose name contains it.`,
		Example: `
ideabook search drag
ideabook search --category Novel
ideabook search -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, logger, err := openService()
			if err != nil {
				return output.HandleError(err)
			}
			defer func() { _ = logger.Sync() }()

			s := search.Search{
				Service:     svc,
				Query:       strings.Join(args, " "),
				Category:    co.Category,
				Interactive: i.Interactive,
				Output:      output,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddCategoryArgs(cmd, co, "Only search this category; All searches every category.")
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletions)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
