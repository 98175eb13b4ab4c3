package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(ideabook completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(ideabook completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// completionService opens the idea book quietly for shell completion.
func completionService() *app.Service {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil
	}
	svc, err := app.Open(cfg)
	if err != nil {
		return nil
	}
	return svc
}

func categoryCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	svc := completionService()
	if svc == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return withPrefix(svc.Categories(context.Background()), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func ideaCompletions(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc := completionService()
	if svc == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	c, _ := svc.Catalog(context.Background())
	if c == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return withPrefix(c.Names(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func withPrefix(names []string, prefix string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.HasPrefix(strings.ToUpper(n), strings.ToUpper(prefix)) {
			out = append(out, n)
		}
	}
	return out
}
