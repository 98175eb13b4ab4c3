// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// CategoryOptions captures category selection flags for commands.
type CategoryOptions struct {
	Category string
}

// AddCategoryArgs wires the category flag on the provided command.
func AddCategoryArgs(cmd *cobra.Command, o *CategoryOptions, usage string) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "", usage)
}
