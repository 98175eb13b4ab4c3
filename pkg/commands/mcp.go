package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ideabook/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server on stdio that exposes categories, ideas, tags and
search through the Model Context Protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, logger, err := openService()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			runner := mcp.Runner{
				Service: svc,
				Name:    "ideabook",
				Version: version,
			}
			return runner.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
