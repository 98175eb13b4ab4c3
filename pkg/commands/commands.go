package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/ideabook/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	logs   = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "ideabook",
		Short: base.Wrap80("Keep ideas in categories, tag them and find them again while typing."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddLogArgs(cmd, logs)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addCategory(topLevel)
	addIdea(topLevel)
	addTag(topLevel)
	addSearch(topLevel)
	addDraft(topLevel)
	addInfo(topLevel)
	addRecover(topLevel)
	addPurge(topLevel)
	addWatch(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
